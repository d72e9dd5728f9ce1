// Package emodb enumerates the Berlin Database of Emotional Speech.
//
// All recordings sit in one flat wav/ folder and carry everything in their
// name: 03a02Wb.wav is speaker 03, text a02, emotion W (Ärger), version b.
package emodb

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
)

// Name is the registry name of the corpus.
const Name = "EMODB"

// WavDir is the folder under the root that holds every recording.
const WavDir = "wav"

const (
	speakerDigits = 2
	emotionOffset = 5
)

// Codes maps the German emotion letters to canonical codes.
var Codes = map[byte]string{
	'W': emotion.Angry,     // Ärger
	'T': emotion.Sad,       // Trauer
	'F': emotion.Happy,     // Freude
	'N': emotion.Neutral,   // Neutral
	'A': emotion.Fearful,   // Angst
	'E': emotion.Disgusted, // Ekel
	'L': emotion.Bored,     // Langeweile
}

// DefaultEmotions covers all seven EMODB classes.
var DefaultEmotions = emotion.MustMap(
	emotion.Entry{Code: emotion.Angry, Label: 0},
	emotion.Entry{Code: emotion.Sad, Label: 1},
	emotion.Entry{Code: emotion.Happy, Label: 2},
	emotion.Entry{Code: emotion.Neutral, Label: 3},
	emotion.Entry{Code: emotion.Fearful, Label: 4},
	emotion.Entry{Code: emotion.Disgusted, Label: 5},
	emotion.Entry{Code: emotion.Bored, Label: 6},
)

// Filename is a parsed EMODB recording name.
type Filename struct {
	Speaker string // two-digit speaker number
	Emotion string // canonical code
}

// ParseFilename splits an EMODB file name. It fails when the name is too
// short, the speaker prefix is not numeric, or the emotion letter is unknown.
func ParseFilename(name string) (Filename, error) {
	stem := corpus.Stem(filepath.Base(name))
	if len(stem) <= emotionOffset {
		return Filename{}, fmt.Errorf("emodb: %q is too short", name)
	}
	speaker := stem[:speakerDigits]
	if _, err := strconv.Atoi(speaker); err != nil {
		return Filename{}, fmt.Errorf("emodb: %q has no numeric speaker prefix", name)
	}
	code, ok := Codes[stem[emotionOffset]]
	if !ok {
		return Filename{}, fmt.Errorf("emodb: %q has unknown emotion letter %q: %w", name, stem[emotionOffset], corpus.ErrUnknownEmotion)
	}
	return Filename{Speaker: speaker, Emotion: code}, nil
}

// SpeakerID appends the speaker's gender letter: even numbers are female.
func SpeakerID(speaker string) string {
	n, err := strconv.Atoi(speaker)
	if err == nil && n%2 == 0 {
		return speaker + "F"
	}
	return speaker + "M"
}

// Corpus enumerates an EMODB root.
type Corpus struct {
	root     string
	emotions emotion.Map
	logger   *slog.Logger
}

var _ corpus.Corpus = (*Corpus)(nil)

// New builds the pipeline for the directory containing wav/.
func New(root string, opts ...corpus.Option) *Corpus {
	o := corpus.Apply(DefaultEmotions, opts)
	return &Corpus{
		root:     root,
		emotions: o.Emotions,
		logger:   logging.NewComponentLogger(o.Logger, "emodb"),
	}
}

func (c *Corpus) Name() string { return Name }

func (c *Corpus) Root() string { return c.root }

func (c *Corpus) Emotions() emotion.Map { return c.emotions }

func (c *Corpus) Classes() emotion.Legend { return emotion.BuildLegend(c.emotions, nil) }

// Files reads wav/ and returns samples keyed by speaker. Names that do not
// parse and emotions outside the map are skipped.
func (c *Corpus) Files(ctx context.Context) (*corpus.Mapping, error) {
	dir := filepath.Join(c.root, WavDir)
	wavs, err := corpus.ReadDir(dir, corpus.WavFiles)
	if err != nil {
		return nil, fmt.Errorf("emodb: read %s: %w", dir, err)
	}

	mapping := corpus.NewMapping()
	for _, wav := range wavs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := wav.Name()
		path := filepath.Join(dir, name)
		parsed, err := ParseFilename(name)
		if err != nil {
			c.logger.Debug("file name skipped", logging.String(logging.FieldPath, path), logging.Error(err))
			continue
		}
		label, ok := c.emotions.Lookup(parsed.Emotion)
		if !ok {
			continue
		}
		mapping.Add(SpeakerID(parsed.Speaker), corpus.Sample{Path: path, Label: label})
	}
	corpus.LogSummary(c.logger, mapping)
	return mapping, nil
}

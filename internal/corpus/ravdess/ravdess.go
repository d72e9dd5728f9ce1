// Package ravdess enumerates the speech portion of the Ryerson Audio-Visual
// Database of Emotional Speech and Song.
//
// The root holds Actor_01 through Actor_24. Each recording is named with
// seven hyphen-separated numeric fields:
//
//	modality-channel-emotion-intensity-statement-repetition-actor.wav
//
// The emotion field ("01".."08") is looked up in the emotion map directly.
package ravdess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
)

// Name is the registry name of the corpus.
const Name = "RAVDESS"

const actorCount = 24

// Actors lists the actor directories, Actor_01 through Actor_24.
var Actors = func() []string {
	actors := make([]string, 0, actorCount)
	for i := 1; i <= actorCount; i++ {
		actors = append(actors, fmt.Sprintf("Actor_%02d", i))
	}
	return actors
}()

// CodeNames gives the canonical name of each emotion field value.
var CodeNames = map[string]string{
	"01": emotion.Neutral,
	"02": emotion.Calm,
	"03": emotion.Happy,
	"04": emotion.Sad,
	"05": emotion.Angry,
	"06": emotion.Fearful,
	"07": emotion.Disgusted,
	"08": emotion.Surprised,
}

// DefaultEmotions keeps all eight classes, label = code - 1.
var DefaultEmotions = emotion.MustMap(
	emotion.Entry{Code: "01", Label: 0},
	emotion.Entry{Code: "02", Label: 1},
	emotion.Entry{Code: "03", Label: 2},
	emotion.Entry{Code: "04", Label: 3},
	emotion.Entry{Code: "05", Label: 4},
	emotion.Entry{Code: "06", Label: 5},
	emotion.Entry{Code: "07", Label: 6},
	emotion.Entry{Code: "08", Label: 7},
)

// Fields is a parsed RAVDESS recording name.
type Fields struct {
	Modality   string
	Channel    string
	Emotion    string
	Intensity  string
	Statement  string
	Repetition string
	Actor      string
}

const fieldCount = 7

// ParseFilename splits a RAVDESS file name into its seven fields.
func ParseFilename(name string) (Fields, error) {
	parts := strings.Split(corpus.Stem(filepath.Base(name)), "-")
	if len(parts) != fieldCount {
		return Fields{}, fmt.Errorf("ravdess: %q has %d fields, want %d", name, len(parts), fieldCount)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return Fields{}, fmt.Errorf("ravdess: %q has non-numeric field %q", name, part)
		}
	}
	return Fields{
		Modality:   parts[0],
		Channel:    parts[1],
		Emotion:    parts[2],
		Intensity:  parts[3],
		Statement:  parts[4],
		Repetition: parts[5],
		Actor:      parts[6],
	}, nil
}

// SpeakerID appends the actor's gender letter: even-numbered actors are female.
func SpeakerID(actor string) string {
	n, err := strconv.Atoi(actor)
	if err == nil && n%2 == 0 {
		return actor + "F"
	}
	return actor + "M"
}

// CodeName returns the canonical name for an emotion field value, or the
// value itself when it is not a known code.
func CodeName(code string) string {
	if name, ok := CodeNames[code]; ok {
		return name
	}
	return code
}

// Corpus enumerates a RAVDESS root.
type Corpus struct {
	root     string
	emotions emotion.Map
	logger   *slog.Logger
}

var _ corpus.Corpus = (*Corpus)(nil)

// New builds the pipeline for the directory containing the actor folders.
func New(root string, opts ...corpus.Option) *Corpus {
	o := corpus.Apply(DefaultEmotions, opts)
	return &Corpus{
		root:     root,
		emotions: o.Emotions,
		logger:   logging.NewComponentLogger(o.Logger, "ravdess"),
	}
}

func (c *Corpus) Name() string { return Name }

func (c *Corpus) Root() string { return c.root }

func (c *Corpus) Emotions() emotion.Map { return c.emotions }

// Classes names each label by emotion rather than by numeric code.
func (c *Corpus) Classes() emotion.Legend { return emotion.BuildLegend(c.emotions, CodeName) }

// Files reads every actor directory. A missing actor directory is skipped
// with a warning.
func (c *Corpus) Files(ctx context.Context) (*corpus.Mapping, error) {
	if _, err := os.Stat(c.root); err != nil {
		return nil, fmt.Errorf("ravdess: %w", err)
	}

	mapping := corpus.NewMapping()
	for _, actor := range Actors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := filepath.Join(c.root, actor)
		wavs, err := corpus.ReadDir(dir, corpus.WavFiles)
		if err != nil {
			hint := "check the actor folder permissions"
			if errors.Is(err, os.ErrNotExist) {
				hint = "restore the missing actor folder"
			}
			logging.WarnWithContext(c.logger, "actor folder unreadable", "ravdess_actor_missing",
				logging.String(logging.FieldPath, dir),
				logging.String(logging.FieldErrorHint, hint),
				logging.Error(err),
			)
			continue
		}
		for _, wav := range wavs {
			path := filepath.Join(dir, wav.Name())
			fields, err := ParseFilename(wav.Name())
			if err != nil {
				c.logger.Debug("file name skipped", logging.String(logging.FieldPath, path), logging.Error(err))
				continue
			}
			label, ok := c.emotions.Lookup(fields.Emotion)
			if !ok {
				continue
			}
			mapping.Add(SpeakerID(fields.Actor), corpus.Sample{Path: path, Label: label})
		}
	}
	corpus.LogSummary(c.logger, mapping)
	return mapping, nil
}

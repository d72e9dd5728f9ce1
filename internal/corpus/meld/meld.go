package meld

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
	"sercorpus/internal/transcode"
)

// Name is the registry name of the corpus.
const Name = "MELD"

// Corpus enumerates a MELD root.
type Corpus struct {
	root          string
	emotions      emotion.Map
	scheme        string
	testThreshold int

	transcodeBeforeLoad bool
	transcode           transcode.Settings
	transcodeOptions    []transcode.Option

	base   *slog.Logger
	logger *slog.Logger
}

var _ corpus.Corpus = (*Corpus)(nil)

// New builds the pipeline. The cast scheme is used unless
// corpus.WithSpeakerScheme(SchemeSequential) is passed; a zero test
// threshold means DefaultTestThreshold.
func New(root string, opts ...corpus.Option) *Corpus {
	o := corpus.Apply(DefaultEmotions, opts)
	scheme := strings.ToLower(strings.TrimSpace(o.SpeakerScheme))
	if scheme == "" {
		scheme = SchemeCast
	}
	threshold := o.TestThreshold
	if threshold <= 0 {
		threshold = DefaultTestThreshold
	}
	return &Corpus{
		root:                root,
		emotions:            o.Emotions,
		scheme:              scheme,
		testThreshold:       threshold,
		transcodeBeforeLoad: o.TranscodeBeforeLoad,
		transcode:           o.Transcode,
		transcodeOptions:    o.TranscodeOptions,
		base:                o.Logger,
		logger:              logging.NewComponentLogger(o.Logger, "meld"),
	}
}

func (c *Corpus) Name() string { return Name }

func (c *Corpus) Root() string { return c.root }

func (c *Corpus) Emotions() emotion.Map { return c.emotions }

func (c *Corpus) Classes() emotion.Legend { return emotion.BuildLegend(c.emotions, nil) }

// SpeakerScheme returns the effective scheme.
func (c *Corpus) SpeakerScheme() string { return c.scheme }

// Files reads the train, dev and test manifests in that order. Rows whose
// clip is missing are skipped. An emotion word outside Emotions fails the
// whole call with corpus.ErrUnknownEmotion since it means the manifests are
// not the release this pipeline knows.
func (c *Corpus) Files(ctx context.Context) (*corpus.Mapping, error) {
	if c.scheme != SchemeCast && c.scheme != SchemeSequential {
		return nil, fmt.Errorf("meld: unknown speaker scheme %q", c.scheme)
	}
	if _, err := os.Stat(c.root); err != nil {
		return nil, fmt.Errorf("meld: %w", err)
	}
	if c.transcodeBeforeLoad {
		if _, err := c.Transcode(ctx); err != nil {
			return nil, err
		}
	}

	mapping := corpus.NewMapping()
	emitted := 0
	for _, split := range Splits {
		manifest := filepath.Join(c.root, split.Manifest)
		rows, err := ReadManifest(manifest)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logging.WarnWithContext(c.logger, "manifest missing", "meld_manifest_missing",
					logging.String("split", split.Name),
					logging.String(logging.FieldPath, manifest),
				)
				continue
			}
			return nil, fmt.Errorf("meld: %w", err)
		}

		audioDir := filepath.Join(c.root, split.AudioDir)
		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path := filepath.Join(audioDir, WavName(row.DialogueID, row.UtteranceID))
			if !isFile(path) {
				continue
			}
			code, ok := Canonical(row.Emotion)
			if !ok {
				return nil, fmt.Errorf("meld: %s line %d: emotion %q: %w", manifest, row.Line, row.Emotion, corpus.ErrUnknownEmotion)
			}
			label, ok := c.emotions.Lookup(code)
			if !ok {
				continue
			}
			mapping.Add(c.speaker(row, emitted), corpus.Sample{Path: path, Label: label})
			emitted++
		}
	}

	corpus.LogSummary(c.logger, mapping)
	if c.scheme == SchemeSequential {
		c.logger.Info("partition sizes",
			logging.Int(PartitionTest, len(mapping.Samples(PartitionTest))),
			logging.Int(PartitionTrain, len(mapping.Samples(PartitionTrain))),
		)
	}
	return mapping, nil
}

func (c *Corpus) speaker(row Row, index int) string {
	if c.scheme == SchemeSequential {
		return SequentialPartition(index, c.testThreshold)
	}
	return SpeakerID(row.Speaker)
}

// Transcode converts the clips of the given splits (all of them when none
// are named) to wav. Per-clip failures are in the reports; a split whose
// clip directory is missing is skipped.
func (c *Corpus) Transcode(ctx context.Context, splits ...Split) ([]transcode.Report, error) {
	if len(splits) == 0 {
		splits = Splits
	}
	opts := append([]transcode.Option{transcode.WithLogger(c.base)}, c.transcodeOptions...)
	batch := transcode.NewBatch(c.transcode, opts...)

	reports := make([]transcode.Report, 0, len(splits))
	for _, split := range splits {
		dir := filepath.Join(c.root, split.AudioDir)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logging.WarnWithContext(c.logger, "clip directory missing", "meld_clip_dir_missing",
				logging.String("split", split.Name),
				logging.String(logging.FieldPath, dir),
				logging.String(logging.FieldImpact, "split was not transcoded"),
			)
			continue
		}
		report, err := batch.Run(ctx, dir)
		if err != nil {
			return reports, fmt.Errorf("meld: transcode %s: %w", split.Name, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

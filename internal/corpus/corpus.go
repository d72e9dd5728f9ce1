package corpus

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
	"sercorpus/internal/transcode"
)

// ErrUnknownEmotion marks an emotion value that a corpus's fixed vocabulary
// does not cover. It means the on-disk corpus does not match the version the
// pipeline was written for.
var ErrUnknownEmotion = errors.New("emotion not in corpus vocabulary")

// WavExt is the audio extension every pipeline emits.
const WavExt = ".wav"

// Corpus is implemented by each ingestion pipeline.
type Corpus interface {
	// Name is the registry name, e.g. "IEMOCAP".
	Name() string
	// Root is the corpus directory the pipeline reads.
	Root() string
	// Emotions is the effective emotion map.
	Emotions() emotion.Map
	// Classes collapses the emotion map into a legend.
	Classes() emotion.Legend
	// Files walks the corpus and returns a freshly built mapping.
	Files(ctx context.Context) (*Mapping, error)
}

// Options carries construction settings shared by all pipelines. Fields that a
// corpus does not use are ignored.
type Options struct {
	Emotions emotion.Map
	Logger   *slog.Logger

	// IEMOCAP: also read scripted conversations.
	IncludeScripted bool

	// MELD: speaker scheme, sequential test threshold, and transcoding.
	SpeakerScheme       string
	TestThreshold       int
	TranscodeBeforeLoad bool
	Transcode           transcode.Settings
	TranscodeOptions    []transcode.Option
}

// Option customizes Options.
type Option func(*Options)

// WithEmotions overrides the corpus default emotion map. A zero map keeps the default.
func WithEmotions(m emotion.Map) Option {
	return func(o *Options) { o.Emotions = m }
}

// WithLogger sets the logger pipelines report through.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithIncludeScripted makes IEMOCAP read scripted conversations too.
func WithIncludeScripted(include bool) Option {
	return func(o *Options) { o.IncludeScripted = include }
}

// WithSpeakerScheme selects MELD's speaker bucketing ("cast" or "sequential").
func WithSpeakerScheme(scheme string) Option {
	return func(o *Options) { o.SpeakerScheme = scheme }
}

// WithTestThreshold sets how many leading MELD samples the sequential scheme
// assigns to "test".
func WithTestThreshold(n int) Option {
	return func(o *Options) { o.TestThreshold = n }
}

// WithTranscode configures MELD's transcoding step.
func WithTranscode(settings transcode.Settings, before bool, opts ...transcode.Option) Option {
	return func(o *Options) {
		o.Transcode = settings
		o.TranscodeBeforeLoad = before
		o.TranscodeOptions = opts
	}
}

// Apply folds opts over defaults. The default emotion map is used when none
// was supplied.
func Apply(defaults emotion.Map, opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Emotions.IsZero() {
		o.Emotions = defaults
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// IsWav reports whether name carries the audio extension emitted by pipelines.
func IsWav(name string) bool {
	return filepath.Ext(name) == WavExt
}

// Stem returns name without its extension.
func Stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// ReadDir lists dir, keeping only entries accepted by keep. A nil keep keeps
// everything. Entries come back in lexical order. Symlinks are reported as
// their targets under the link's name; dangling links are dropped.
func ReadDir(dir string, keep func(os.DirEntry) bool) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := entries[:0]
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			entry = fs.FileInfoToDirEntry(info)
		}
		if keep == nil || keep(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Dirs keeps directories.
func Dirs(entry os.DirEntry) bool { return entry.IsDir() }

// WavFiles keeps regular .wav files.
func WavFiles(entry os.DirEntry) bool { return !entry.IsDir() && IsWav(entry.Name()) }

// LogSummary reports the aggregate counts of an enumeration.
func LogSummary(logger *slog.Logger, m *Mapping) {
	logger.Info("corpus enumerated",
		logging.Int("total_files", m.Total()),
		logging.Int("speakers", m.Len()),
	)
}

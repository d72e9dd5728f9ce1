package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"sercorpus/internal/logging"
	"sercorpus/internal/transcode/state"
)

// ErrLocked is returned when another batch holds the root's lock file.
var ErrLocked = errors.New("transcode batch already running")

// Failure records one source that could not be converted.
type Failure struct {
	Source string
	Err    error
}

// Report summarizes a batch.
type Report struct {
	RunID      string
	Root       string
	Discovered int
	Converted  int
	Skipped    int
	Bytes      int64
	Failures   []Failure
	FailureLog string
	Elapsed    time.Duration
}

// FailedSources lists the failed source paths in discovery order.
func (r Report) FailedSources() []string {
	out := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		out = append(out, failure.Source)
	}
	return out
}

// Prober selects the audio stream to extract from a source. It returns
// ErrNoAudioStream when the source carries no audio.
type Prober func(ctx context.Context, path string) (Probe, error)

// Converter performs one conversion.
type Converter func(ctx context.Context, job Job) error

// Batch converts every matching source under a root directory.
type Batch struct {
	settings Settings
	logger   *slog.Logger
	store    *state.Store
	probe    Prober
	convert  Converter
	newRunID func() string
}

// Option customizes a Batch.
type Option func(*Batch)

// WithLogger routes batch records to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Batch) { b.logger = logger }
}

// WithStateStore enables skipping of sources converted by an earlier run.
func WithStateStore(store *state.Store) Option {
	return func(b *Batch) { b.store = store }
}

// WithProber replaces the ffprobe-based stream selection.
func WithProber(probe Prober) Option {
	return func(b *Batch) { b.probe = probe }
}

// WithConverter replaces the ffmpeg-based conversion.
func WithConverter(convert Converter) Option {
	return func(b *Batch) { b.convert = convert }
}

// NewBatch builds a batch driver. Empty settings fields take their defaults.
func NewBatch(settings Settings, opts ...Option) *Batch {
	b := &Batch{
		settings: settings.withDefaults(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.NewComponentLogger(b.logger, "transcode")
	if b.probe == nil {
		binary := b.settings.FFprobeBinary
		b.probe = func(ctx context.Context, path string) (Probe, error) {
			return ProbeAudio(ctx, binary, path)
		}
	}
	if b.convert == nil {
		binary := b.settings.FFmpegBinary
		b.convert = func(ctx context.Context, job Job) error {
			return Convert(ctx, binary, job)
		}
	}
	return b
}

// Settings returns the effective settings.
func (b *Batch) Settings() Settings { return b.settings }

// Run converts every source under root. Per-file failures are collected in
// the report; the returned error covers only setup problems, the failure log
// write, and cancellation.
func (b *Batch) Run(ctx context.Context, root string) (Report, error) {
	started := time.Now()
	report := Report{RunID: b.newRunID(), Root: root}
	logger := b.logger.With(logging.String(logging.FieldRunID, report.RunID), logging.String(logging.FieldPath, root))

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return report, fmt.Errorf("%s: %w", root, ErrLocked)
	}
	// The lock file is never unlinked so every batch locks the same inode.
	defer func() { _ = lock.Unlock() }()

	sources, err := Discover(root, b.settings.Extension)
	if err != nil {
		return report, err
	}
	report.Discovered = len(sources)
	logger.Info("transcode batch started", logging.Int("sources", len(sources)))

	var runErr error
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		skipped, size, err := b.processOne(ctx, report.RunID, source)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				runErr = ctxErr
				break
			}
			report.Failures = append(report.Failures, Failure{Source: source, Err: err})
			logger.Warn("transcode failed",
				logging.String(logging.FieldPath, source),
				logging.Error(err),
				logging.String(logging.FieldEventType, "transcode_failed"),
				logging.String(logging.FieldImpact, "source excluded from the corpus"),
			)
		case skipped:
			report.Skipped++
			logger.Debug("transcode skipped, already current", logging.String(logging.FieldPath, source))
		default:
			report.Converted++
			report.Bytes += size
			logger.Debug("transcoded", logging.String(logging.FieldPath, source))
		}
		if runErr != nil {
			break
		}
	}

	if len(report.Failures) > 0 {
		report.FailureLog = filepath.Join(root, b.settings.FailureLogName)
		if err := WriteFailureLog(report.FailureLog, report.Failures); err != nil {
			return report, err
		}
		logging.WarnWithContext(logger, "transcode batch finished with failures", "transcode_failures",
			logging.Int("failed", len(report.Failures)),
			logging.String("failure_log", report.FailureLog),
			logging.String(logging.FieldErrorHint, "inspect the failure log; clips without audio cannot be converted"),
		)
	}
	report.Elapsed = time.Since(started)
	logger.Info("transcode batch finished",
		logging.Int("converted", report.Converted),
		logging.Int("skipped", report.Skipped),
		logging.Int("failed", len(report.Failures)),
		logging.Duration("elapsed", report.Elapsed),
	)
	return report, runErr
}

func (b *Batch) processOne(ctx context.Context, runID, source string) (bool, int64, error) {
	info, err := os.Stat(source)
	if err != nil {
		return false, 0, fmt.Errorf("stat source: %w", err)
	}
	dest := DestPath(source)

	if b.store != nil && !b.settings.Force {
		rec, ok, err := b.store.Lookup(ctx, source)
		if err != nil {
			return false, 0, err
		}
		if ok && rec.Matches(info.Size(), info.ModTime()) {
			if _, err := os.Stat(dest); err == nil {
				return true, 0, nil
			}
		}
	}

	probe, err := b.probe(ctx, source)
	if err != nil {
		return false, 0, err
	}
	b.logger.Debug("audio stream selected",
		logging.String(logging.FieldPath, source),
		logging.String("stream", probe.Label()),
		logging.Int("audio_streams", probe.Candidates),
		logging.Any("duration_seconds", probe.Duration),
	)

	job := Job{
		Source:     source,
		Dest:       dest,
		SampleRate: b.settings.SampleRate,
		Channels:   b.settings.Channels,
		Stream:     probe.MapSpec(),
	}
	if err := b.convert(ctx, job); err != nil {
		if b.store != nil {
			_ = b.store.Forget(ctx, source)
		}
		return false, 0, err
	}

	var size int64
	if out, err := os.Stat(dest); err == nil {
		size = out.Size()
	}
	if b.store != nil {
		rec := state.Record{Source: source, Dest: dest, Size: info.Size(), ModTime: info.ModTime(), RunID: runID}
		if err := b.store.Put(ctx, rec); err != nil {
			b.logger.Warn("record conversion failed", logging.String(logging.FieldPath, source), logging.Error(err))
		}
	}
	return false, size, nil
}

// DestPath returns the .wav path written next to source.
func DestPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".wav"
}

// Discover walks root recursively and returns files whose extension matches
// ext (case-insensitive), in lexical order.
func Discover(root, ext string) ([]string, error) {
	ext = strings.ToLower(ext)
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(d.Name())) == ext {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover sources in %s: %w", root, err)
	}
	return sources, nil
}

// WriteFailureLog writes one failed source path per line to path.
func WriteFailureLog(path string, failures []Failure) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write failure log: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, failure := range failures {
		if _, err := w.WriteString(failure.Source + "\n"); err != nil {
			return fmt.Errorf("write failure log: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write failure log: %w", err)
	}
	return file.Close()
}

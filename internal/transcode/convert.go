package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"sercorpus/internal/media/audio"
	"sercorpus/internal/media/ffprobe"
)

// ErrNoAudioStream marks sources that carry no audio track.
var ErrNoAudioStream = errors.New("no audio stream")

// Job describes a single conversion.
type Job struct {
	Source     string
	Dest       string
	SampleRate int
	Channels   int
	// Stream is an ffmpeg stream specifier such as "0:a:1". Empty lets
	// ffmpeg pick its default audio stream.
	Stream string
}

func (j Job) args() []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", j.Source,
	}
	if j.Stream != "" {
		args = append(args, "-map", j.Stream)
	}
	return append(args,
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(j.Channels),
		"-ar", strconv.Itoa(j.SampleRate),
		"-c:a", "pcm_s16le",
		j.Dest,
	)
}

// Convert runs ffmpeg for job. The source is never modified; a partially
// written destination is removed when ffmpeg fails.
func Convert(ctx context.Context, ffmpegBinary string, job Job) error {
	if strings.TrimSpace(job.Source) == "" || strings.TrimSpace(job.Dest) == "" {
		return errors.New("convert: source and destination are required")
	}
	if job.Source == job.Dest {
		return fmt.Errorf("convert: destination would overwrite source %s", job.Source)
	}
	if job.SampleRate <= 0 {
		return fmt.Errorf("convert: invalid sample rate %d", job.SampleRate)
	}
	if job.Channels <= 0 {
		return fmt.Errorf("convert: invalid channel count %d", job.Channels)
	}
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, job.args()...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.Remove(job.Dest)
		return fmt.Errorf("ffmpeg convert: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Probe is the outcome of inspecting one source.
type Probe struct {
	audio.Selection
	// Duration is the container duration in seconds, 0 when unknown.
	Duration float64
}

// ProbeAudio inspects path and selects the audio stream to extract. It
// returns ErrNoAudioStream when the container carries no audio.
func ProbeAudio(ctx context.Context, ffprobeBinary, path string) (Probe, error) {
	result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return Probe{}, err
	}
	if !result.HasAudio() {
		return Probe{}, ErrNoAudioStream
	}
	selection, _ := audio.Select(result.AudioStreams())
	return Probe{Selection: selection, Duration: result.DurationSeconds()}, nil
}

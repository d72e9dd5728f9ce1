package transcode

import "strings"

const (
	DefaultSampleRate     = 16000
	DefaultChannels       = 1
	DefaultExtension      = ".mp4"
	DefaultFailureLogName = "failed_convert_list.txt"
	lockFileName          = ".sercorpus-transcode.lock"
)

// Settings controls a batch.
type Settings struct {
	FFmpegBinary   string
	FFprobeBinary  string
	SampleRate     int
	Channels       int
	Extension      string
	FailureLogName string
	// Force converts every source even when the state store says it is current.
	Force bool
}

// DefaultSettings returns mono 16 kHz conversion of .mp4 sources.
func DefaultSettings() Settings {
	return Settings{
		FFmpegBinary:   "ffmpeg",
		FFprobeBinary:  "ffprobe",
		SampleRate:     DefaultSampleRate,
		Channels:       DefaultChannels,
		Extension:      DefaultExtension,
		FailureLogName: DefaultFailureLogName,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if strings.TrimSpace(s.FFmpegBinary) == "" {
		s.FFmpegBinary = d.FFmpegBinary
	}
	if strings.TrimSpace(s.FFprobeBinary) == "" {
		s.FFprobeBinary = d.FFprobeBinary
	}
	if s.SampleRate <= 0 {
		s.SampleRate = d.SampleRate
	}
	if s.Channels <= 0 {
		s.Channels = d.Channels
	}
	s.Extension = strings.ToLower(strings.TrimSpace(s.Extension))
	if s.Extension == "" {
		s.Extension = d.Extension
	}
	if !strings.HasPrefix(s.Extension, ".") {
		s.Extension = "." + s.Extension
	}
	if strings.TrimSpace(s.FailureLogName) == "" {
		s.FailureLogName = d.FailureLogName
	}
	return s
}

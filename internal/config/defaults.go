package config

const (
	defaultConfigPath     = "~/.config/sercorpus/config.toml"
	defaultLogDir         = "~/.local/share/sercorpus/logs"
	defaultStateDir       = "~/.local/share/sercorpus/state"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultSpeakerScheme  = SpeakerSchemeCast
	defaultTestThreshold  = 548
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultSampleRate     = 16000
	defaultChannels       = 1
	defaultExtension      = ".mp4"
	defaultFailureLogName = "failed_convert_list.txt"
)

// MELD speaker schemes.
const (
	SpeakerSchemeCast       = "cast"
	SpeakerSchemeSequential = "sequential"
)

// Default returns a Config populated with repository defaults. Corpus roots
// are empty; emotion lists are empty so each corpus uses its built-in map.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		MELD: MELD{
			SpeakerScheme: defaultSpeakerScheme,
			TestThreshold: defaultTestThreshold,
		},
		Transcode: Transcode{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			SampleRate:     defaultSampleRate,
			Channels:       defaultChannels,
			Extension:      defaultExtension,
			FailureLogName: defaultFailureLogName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sercorpus/internal/emotion"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories sercorpus writes to.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// CorpusSection is the part every corpus section shares.
type CorpusSection struct {
	Root     string   `toml:"root"`
	Emotions []string `toml:"emotions"`
}

// IEMOCAP configures the IEMOCAP pipeline.
type IEMOCAP struct {
	Root            string   `toml:"root"`
	Emotions        []string `toml:"emotions"`
	IncludeScripted bool     `toml:"include_scripted"`
}

// MELD configures the MELD pipeline.
type MELD struct {
	Root     string   `toml:"root"`
	Emotions []string `toml:"emotions"`
	// SpeakerScheme is "cast" (core cast plus "others") or "sequential"
	// (leading samples become "test", the rest "train").
	SpeakerScheme       string `toml:"speaker_scheme"`
	TestThreshold       int    `toml:"test_threshold"`
	TranscodeBeforeLoad bool   `toml:"transcode_before_load"`
}

// Transcode configures MELD's container-to-wav conversion.
type Transcode struct {
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
	SampleRate     int    `toml:"sample_rate"`
	Channels       int    `toml:"channels"`
	Extension      string `toml:"extension"`
	FailureLogName string `toml:"failure_log_name"`
	UseState       bool   `toml:"use_state"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sercorpus.
//
// Configuration sections:
//   - Paths: log and state directories
//   - IEMOCAP, EMODB, RAVDESS, MELD: corpus roots and emotion maps
//   - Transcode: ffmpeg/ffprobe binaries and output format for MELD clips
//   - Logging: log format and level
type Config struct {
	Paths     Paths         `toml:"paths"`
	IEMOCAP   IEMOCAP       `toml:"iemocap"`
	EMODB     CorpusSection `toml:"emodb"`
	RAVDESS   CorpusSection `toml:"ravdess"`
	MELD      MELD          `toml:"meld"`
	Transcode Transcode     `toml:"transcode"`
	Logging   Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sercorpus.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CorpusNames lists the corpus sections in a fixed order.
func CorpusNames() []string {
	return []string{"IEMOCAP", "EMODB", "RAVDESS", "MELD"}
}

// Corpus returns the shared part of the named corpus section.
func (c *Config) Corpus(name string) (CorpusSection, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "IEMOCAP":
		return CorpusSection{Root: c.IEMOCAP.Root, Emotions: c.IEMOCAP.Emotions}, true
	case "EMODB":
		return c.EMODB, true
	case "RAVDESS":
		return c.RAVDESS, true
	case "MELD":
		return CorpusSection{Root: c.MELD.Root, Emotions: c.MELD.Emotions}, true
	default:
		return CorpusSection{}, false
	}
}

// SetCorpus replaces the shared part of the named corpus section.
func (c *Config) SetCorpus(name string, section CorpusSection) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "IEMOCAP":
		c.IEMOCAP.Root, c.IEMOCAP.Emotions = section.Root, section.Emotions
	case "EMODB":
		c.EMODB = section
	case "RAVDESS":
		c.RAVDESS = section
	case "MELD":
		c.MELD.Root, c.MELD.Emotions = section.Root, section.Emotions
	}
}

// EmotionMap parses the named corpus's emotion override. A zero map means the
// corpus default applies.
func (c *Config) EmotionMap(name string) (emotion.Map, error) {
	section, ok := c.Corpus(name)
	if !ok {
		return emotion.Map{}, fmt.Errorf("unknown corpus %q", name)
	}
	m, err := emotion.ParseMap(section.Emotions)
	if err != nil {
		return emotion.Map{}, fmt.Errorf("%s.emotions: %w", strings.ToLower(name), err)
	}
	return m, nil
}

// TranscodeStatePath returns the conversion state database location, or ""
// when the state store is disabled.
func (c *Config) TranscodeStatePath() string {
	if !c.Transcode.UseState || strings.TrimSpace(c.Paths.StateDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.StateDir, "transcode.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

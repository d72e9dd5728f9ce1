package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCorpora(); err != nil {
		return err
	}
	c.normalizeTranscode()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCorpora() error {
	for _, name := range CorpusNames() {
		section, _ := c.Corpus(name)
		root := strings.TrimSpace(section.Root)
		if root == "" {
			if value, ok := os.LookupEnv(name + "_ROOT"); ok {
				root = strings.TrimSpace(value)
			}
		}
		if root != "" {
			expanded, err := expandPath(root)
			if err != nil {
				return fmt.Errorf("%s.root: %w", strings.ToLower(name), err)
			}
			root = expanded
		}
		section.Root = root
		c.SetCorpus(name, section)
	}
	c.MELD.SpeakerScheme = strings.ToLower(strings.TrimSpace(c.MELD.SpeakerScheme))
	if c.MELD.SpeakerScheme == "" {
		c.MELD.SpeakerScheme = defaultSpeakerScheme
	}
	return nil
}

func (c *Config) normalizeTranscode() {
	t := &c.Transcode
	t.FFmpegBinary = strings.TrimSpace(t.FFmpegBinary)
	if t.FFmpegBinary == "" {
		t.FFmpegBinary = defaultFFmpegBinary
	}
	t.FFprobeBinary = strings.TrimSpace(t.FFprobeBinary)
	if t.FFprobeBinary == "" {
		t.FFprobeBinary = defaultFFprobeBinary
	}
	t.Extension = strings.ToLower(strings.TrimSpace(t.Extension))
	if t.Extension == "" {
		t.Extension = defaultExtension
	}
	if !strings.HasPrefix(t.Extension, ".") {
		t.Extension = "." + t.Extension
	}
	t.FailureLogName = strings.TrimSpace(t.FailureLogName)
	if t.FailureLogName == "" {
		t.FailureLogName = defaultFailureLogName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

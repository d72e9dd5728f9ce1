package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEmotions(); err != nil {
		return err
	}
	if err := c.validateMELD(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEmotions() error {
	for _, name := range CorpusNames() {
		if _, err := c.EmotionMap(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateMELD() error {
	switch c.MELD.SpeakerScheme {
	case SpeakerSchemeCast, SpeakerSchemeSequential:
	default:
		return fmt.Errorf("meld.speaker_scheme must be %q or %q, got %q", SpeakerSchemeCast, SpeakerSchemeSequential, c.MELD.SpeakerScheme)
	}
	if c.MELD.TestThreshold < 1 {
		return errors.New("meld.test_threshold must be positive")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.SampleRate <= 0 {
		return errors.New("transcode.sample_rate must be positive")
	}
	if c.Transcode.Channels < 1 {
		return errors.New("transcode.channels must be at least 1")
	}
	if c.Transcode.Extension == ".wav" {
		return errors.New("transcode.extension must not be .wav")
	}
	if strings.ContainsRune(c.Transcode.FailureLogName, filepath.Separator) {
		return errors.New("transcode.failure_log_name must be a file name, not a path")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

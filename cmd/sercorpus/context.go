package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sercorpus/internal/config"
	"sercorpus/internal/corpus"
	"sercorpus/internal/emotion"
	"sercorpus/internal/logging"
	"sercorpus/internal/registry"
	"sercorpus/internal/transcode"
	"sercorpus/internal/transcode/state"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// corpusFlags carries per-command overrides of the corpus config sections.
type corpusFlags struct {
	root            string
	emotions        []string
	includeScripted bool
	speakerScheme   string
}

func (f *corpusFlags) bindRoot(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", "", "Corpus root directory (overrides config)")
}

func (f *corpusFlags) bindEmotions(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.emotions, "emotions", nil, "Emotion map as code:label pairs, e.g. ang:0,sad:1,hap:2,exc:2,neu:3")
}

// openedCorpus is a pipeline plus whatever it holds open.
type openedCorpus struct {
	corpus.Corpus
	close func() error
}

func (o openedCorpus) Close() error {
	if o.close == nil {
		return nil
	}
	return o.close()
}

// openCorpus resolves name through the registry and builds the pipeline from
// config merged with flags. requireRoot rejects a missing root directory.
func (c *commandContext) openCorpus(cmd *cobra.Command, name string, flags corpusFlags, requireRoot bool) (openedCorpus, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return openedCorpus{}, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return openedCorpus{}, err
	}
	entry, err := registry.Lookup(name)
	if err != nil {
		return openedCorpus{}, err
	}

	root, err := resolveRoot(cfg, entry.Name, flags.root)
	if err != nil {
		return openedCorpus{}, err
	}
	if requireRoot && root == "" {
		return openedCorpus{}, fmt.Errorf("no root for %s: pass --root, set [%s] root in the config, or export %s_ROOT",
			entry.Name, strings.ToLower(entry.Name), entry.Name)
	}

	emotions, err := resolveEmotions(cfg, entry.Name, flags.emotions)
	if err != nil {
		return openedCorpus{}, err
	}

	scheme := cfg.MELD.SpeakerScheme
	if strings.TrimSpace(flags.speakerScheme) != "" {
		scheme = flags.speakerScheme
	}
	includeScripted := cfg.IEMOCAP.IncludeScripted
	if cmd.Flags().Changed("include-scripted") {
		includeScripted = flags.includeScripted
	}

	opts := []corpus.Option{
		corpus.WithEmotions(emotions),
		corpus.WithLogger(logger),
		corpus.WithIncludeScripted(includeScripted),
		corpus.WithSpeakerScheme(scheme),
		corpus.WithTestThreshold(cfg.MELD.TestThreshold),
	}

	opened := openedCorpus{}
	if cfg.MELD.TranscodeBeforeLoad {
		transcodeOpts, closeStore, err := c.transcodeOptions(cfg)
		if err != nil {
			return openedCorpus{}, err
		}
		opened.close = closeStore
		opts = append(opts, corpus.WithTranscode(transcodeSettings(cfg, false), true, transcodeOpts...))
	}

	opened.Corpus = entry.New(root, opts...)
	return opened, nil
}

// transcodeOptions opens the conversion state store when it is enabled.
func (c *commandContext) transcodeOptions(cfg *config.Config) ([]transcode.Option, func() error, error) {
	path := cfg.TranscodeStatePath()
	if path == "" {
		return nil, nil, nil
	}
	store, err := state.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open transcode state: %w", err)
	}
	return []transcode.Option{transcode.WithStateStore(store)}, store.Close, nil
}

func resolveRoot(cfg *config.Config, name, flagRoot string) (string, error) {
	if strings.TrimSpace(flagRoot) != "" {
		return config.ExpandPath(strings.TrimSpace(flagRoot))
	}
	section, _ := cfg.Corpus(name)
	return section.Root, nil
}

func resolveEmotions(cfg *config.Config, name string, flagEmotions []string) (emotion.Map, error) {
	if len(flagEmotions) > 0 {
		m, err := emotion.ParseMap(flagEmotions)
		if err != nil {
			return emotion.Map{}, fmt.Errorf("--emotions: %w", err)
		}
		return m, nil
	}
	return cfg.EmotionMap(name)
}

func transcodeSettings(cfg *config.Config, force bool) transcode.Settings {
	return transcode.Settings{
		FFmpegBinary:   cfg.Transcode.FFmpegBinary,
		FFprobeBinary:  cfg.Transcode.FFprobeBinary,
		SampleRate:     cfg.Transcode.SampleRate,
		Channels:       cfg.Transcode.Channels,
		Extension:      cfg.Transcode.Extension,
		FailureLogName: cfg.Transcode.FailureLogName,
		Force:          force,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

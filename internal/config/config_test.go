package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"sercorpus/internal/config"
)

func clearCorpusEnv(t *testing.T) {
	t.Helper()
	for _, name := range config.CorpusNames() {
		t.Setenv(name+"_ROOT", "")
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearCorpusEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "sercorpus", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.MELD.SpeakerScheme != config.SpeakerSchemeCast {
		t.Fatalf("expected cast scheme by default, got %q", cfg.MELD.SpeakerScheme)
	}
	if cfg.MELD.TestThreshold != 548 {
		t.Fatalf("unexpected test threshold: %d", cfg.MELD.TestThreshold)
	}
	if cfg.Transcode.SampleRate != 16000 || cfg.Transcode.Channels != 1 {
		t.Fatalf("unexpected transcode defaults: %+v", cfg.Transcode)
	}
	if cfg.Transcode.FailureLogName != "failed_convert_list.txt" {
		t.Fatalf("unexpected failure log name: %q", cfg.Transcode.FailureLogName)
	}
	if cfg.TranscodeStatePath() != "" {
		t.Fatal("expected state store disabled by default")
	}
}

func TestLoadCustomConfig(t *testing.T) {
	clearCorpusEnv(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[paths]
log_dir = "` + filepath.Join(dir, "logs") + `"
state_dir = "` + filepath.Join(dir, "state") + `"

[iemocap]
root = "` + filepath.Join(dir, "IEMOCAP") + `"
emotions = ["ang:0", "neu:1"]
include_scripted = true

[meld]
root = "` + filepath.Join(dir, "MELD") + `"
speaker_scheme = "Sequential"
test_threshold = 10

[transcode]
extension = "mkv"
use_state = true

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if !cfg.IEMOCAP.IncludeScripted {
		t.Fatal("expected include_scripted to be true")
	}
	m, err := cfg.EmotionMap("iemocap")
	if err != nil {
		t.Fatalf("EmotionMap: %v", err)
	}
	if diff := cmp.Diff([]string{"ang", "neu"}, m.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if cfg.MELD.SpeakerScheme != config.SpeakerSchemeSequential || cfg.MELD.TestThreshold != 10 {
		t.Fatalf("unexpected meld section: %+v", cfg.MELD)
	}
	if cfg.Transcode.Extension != ".mkv" {
		t.Fatalf("expected normalized extension, got %q", cfg.Transcode.Extension)
	}
	if got := cfg.TranscodeStatePath(); got != filepath.Join(dir, "state", "transcode.db") {
		t.Fatalf("unexpected state path: %q", got)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	clearCorpusEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[emodb]\nrooot = \"/x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestCorpusRootFallsBackToEnvironment(t *testing.T) {
	clearCorpusEnv(t)
	root := t.TempDir()
	t.Setenv("RAVDESS_ROOT", root)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RAVDESS.Root != root {
		t.Fatalf("expected env root %q, got %q", root, cfg.RAVDESS.Root)
	}
	if cfg.EMODB.Root != "" {
		t.Fatalf("expected empty emodb root, got %q", cfg.EMODB.Root)
	}
}

func TestCorpusAccessors(t *testing.T) {
	cfg := config.Default()
	cfg.SetCorpus("meld", config.CorpusSection{Root: "/data/MELD", Emotions: []string{"neu:0"}})

	section, ok := cfg.Corpus("MELD")
	if !ok {
		t.Fatal("expected MELD section")
	}
	if section.Root != "/data/MELD" || cfg.MELD.Root != "/data/MELD" {
		t.Fatalf("unexpected MELD root: %+v", section)
	}
	if cfg.MELD.SpeakerScheme != config.SpeakerSchemeCast {
		t.Fatal("SetCorpus must not touch corpus-specific fields")
	}
	if _, ok := cfg.Corpus("CREMA-D"); ok {
		t.Fatal("expected unknown corpus to be rejected")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad emotion", func(c *config.Config) { c.EMODB.Emotions = []string{"ang"} }, "emodb.emotions"},
		{"duplicate code", func(c *config.Config) { c.RAVDESS.Emotions = []string{"01:0", "01:1"} }, "ravdess.emotions"},
		{"scheme", func(c *config.Config) { c.MELD.SpeakerScheme = "random" }, "speaker_scheme"},
		{"threshold", func(c *config.Config) { c.MELD.TestThreshold = -1 }, "test_threshold"},
		{"sample rate", func(c *config.Config) { c.Transcode.SampleRate = 0 }, "sample_rate"},
		{"channels", func(c *config.Config) { c.Transcode.Channels = 0 }, "channels"},
		{"wav extension", func(c *config.Config) { c.Transcode.Extension = ".wav" }, "extension"},
		{"failure log path", func(c *config.Config) { c.Transcode.FailureLogName = "logs/failed.txt" }, "failure_log_name"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesPaths(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	clearCorpusEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/corpora/EMODB")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "corpora", "EMODB") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

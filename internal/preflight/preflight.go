package preflight

import (
	"context"
	"strings"

	"sercorpus/internal/config"
	"sercorpus/internal/corpus/meld"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for the named corpora. With no names, every
// corpus whose root is configured is checked.
func RunAll(ctx context.Context, cfg *config.Config, names ...string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	if cfg.TranscodeStatePath() != "" {
		results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	}

	explicit := len(names) > 0
	if !explicit {
		names = config.CorpusNames()
	}
	for _, name := range names {
		section, ok := cfg.Corpus(name)
		if !ok {
			results = append(results, Result{Name: name, Detail: "unknown corpus"})
			continue
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		if section.Root == "" && !explicit {
			continue
		}
		results = append(results, CheckCorpus(name, section.Root))
		if name == meld.Name && section.Root != "" {
			results = append(results, CheckMELDClips(section.Root)...)
			results = append(results, CheckAudioTools(ctx, cfg.Transcode.FFmpegBinary, cfg.Transcode.FFprobeBinary)...)
		}
	}
	return results
}

package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"sercorpus/internal/corpus/emodb"
	"sercorpus/internal/corpus/iemocap"
	"sercorpus/internal/corpus/meld"
	"sercorpus/internal/corpus/ravdess"
	"sercorpus/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadable verifies that the directory exists and can be listed.
func CheckReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, ok string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, ok)}
}

// layoutMarkers names an entry each corpus root must contain.
var layoutMarkers = map[string]string{
	iemocap.Name: iemocap.Sessions[0],
	emodb.Name:   emodb.WavDir,
	ravdess.Name: ravdess.Actors[0],
	meld.Name:    meld.Splits[0].Manifest,
}

// CheckCorpus verifies that root is readable and looks like the named corpus.
func CheckCorpus(name, root string) Result {
	label := name + " root"
	if root == "" {
		return Result{Name: label, Detail: fmt.Sprintf("not configured (set [%s] root or %s_ROOT)", strings.ToLower(name), name)}
	}
	result := CheckReadable(label, root)
	if !result.Passed {
		return result
	}
	marker, ok := layoutMarkers[name]
	if !ok {
		return result
	}
	if _, err := os.Stat(filepath.Join(root, marker)); err != nil {
		return Result{Name: label, Detail: fmt.Sprintf("%s (error: %s not found; is this %s?)", root, marker, name)}
	}
	return result
}

// CheckMELDClips verifies that each clip directory present can take the
// converted wav files.
func CheckMELDClips(root string) []Result {
	results := make([]Result, 0, len(meld.Splits))
	for _, split := range meld.Splits {
		dir := filepath.Join(root, split.AudioDir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			results = append(results, Result{Name: "MELD " + split.Name + " clips", Passed: true, Detail: dir + " (absent, split skipped)"})
			continue
		}
		results = append(results, CheckDirectoryAccess("MELD "+split.Name+" clips", dir))
	}
	return results
}

// CheckAudioTools verifies ffmpeg and ffprobe and reports their versions.
func CheckAudioTools(ctx context.Context, ffmpegBinary, ffprobeBinary string) []Result {
	statuses := deps.CheckBinaries(deps.AudioTools(ffmpegBinary, ffprobeBinary))
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		if !status.Available {
			results = append(results, Result{Name: status.Name, Detail: status.Detail})
			continue
		}
		version, err := deps.Version(ctx, status.Path)
		if err != nil {
			results = append(results, Result{Name: status.Name, Detail: fmt.Sprintf("%s (error: %v)", status.Path, err)})
			continue
		}
		results = append(results, Result{Name: status.Name, Passed: true, Detail: version})
	}
	return results
}

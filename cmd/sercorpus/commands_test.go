package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sercorpus/internal/logs"
	"sercorpus/internal/testsupport"
)

func writeEMODB(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testsupport.WriteWavs(t, filepath.Join(root, "wav"), "03a01Fa.wav", "03a02Wb.wav", "08b01Lc.wav")
	return root
}

func TestCorporaListsRegistry(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"corpora"}, env.configPath)
	if err != nil {
		t.Fatalf("corpora: %v", err)
	}
	for _, name := range []string{"EMODB", "IEMOCAP", "MELD", "RAVDESS"} {
		requireContains(t, out, name)
	}
	requireContains(t, out, "ang:0,sad:1,hap:2,exc:2,neu:3")
}

func TestFilesTable(t *testing.T) {
	root := writeEMODB(t)
	env := setupCLITestEnv(t, testsupport.WithCorpusRoot("EMODB", root))

	out, _, err := runCLI(t, []string{"files", "emodb"}, env.configPath)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	requireContains(t, out, "03M")
	requireContains(t, out, "08F")
	requireContains(t, out, "bor")
	requireContains(t, out, "total")
}

func TestFilesJSON(t *testing.T) {
	root := writeEMODB(t)
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"files", "EMODB", "--root", root, "--emotions", "ang:0,hap:1", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	var payload struct {
		Speakers []struct {
			ID      string `json:"id"`
			Samples []struct {
				Path  string `json:"path"`
				Label int    `json:"label"`
			} `json:"samples"`
		} `json:"speakers"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(payload.Speakers) != 1 || payload.Speakers[0].ID != "03M" {
		t.Fatalf("unexpected speakers: %+v", payload.Speakers)
	}
	labels := []int{payload.Speakers[0].Samples[0].Label, payload.Speakers[0].Samples[1].Label}
	if diff := cmp.Diff([]int{1, 0}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesRequiresRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"files", "ravdess"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "RAVDESS_ROOT") {
		t.Fatalf("expected missing root error, got %v", err)
	}
}

func TestFilesUnknownCorpus(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"files", "crema-d", "--root", t.TempDir()}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown corpus") {
		t.Fatalf("expected unknown corpus error, got %v", err)
	}
}

func TestFilesRejectsBadEmotionFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"files", "emodb", "--root", t.TempDir(), "--emotions", "ang"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--emotions") {
		t.Fatalf("expected emotion flag error, got %v", err)
	}
}

func TestClasses(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"classes", "iemocap"}, env.configPath)
	if err != nil {
		t.Fatalf("classes: %v", err)
	}
	requireContains(t, out, "hap+exc")

	out, _, err = runCLI(t, []string{"classes", "ravdess", "--emotions", "05:1,01:0", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("classes json: %v", err)
	}
	var legend []struct {
		Label int    `json:"label"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &legend); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(legend) != 2 || legend[0].Name != "neu" || legend[1].Name != "ang" {
		t.Fatalf("unexpected legend: %+v", legend)
	}
}

func writeFFStubs(t *testing.T, dir string) (string, string) {
	t.Helper()
	ffprobe := testsupport.WriteStub(t, dir, "ffprobe", `for last; do :; done
case "$last" in
*silent*) echo '{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"}],"format":{}}' ;;
*) echo '{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{}}' ;;
esac
`)
	ffmpeg := testsupport.WriteStub(t, dir, "ffmpeg", `for last; do :; done
printf 'RIFF' > "$last"
`)
	return ffmpeg, ffprobe
}

func TestTranscodeCommand(t *testing.T) {
	root := t.TempDir()
	train := filepath.Join(root, "train_splits")
	testsupport.WriteText(t, filepath.Join(train, "dia0_utt0.mp4"), "video")
	testsupport.WriteText(t, filepath.Join(train, "dia0_utt1_silent.mp4"), "video")
	testsupport.WriteText(t, filepath.Join(root, "dev_splits_complete", "dia1_utt0.mp4"), "video")

	env := setupCLITestEnv(t, testsupport.WithCorpusRoot("MELD", root))
	env.cfg.Transcode.FFmpegBinary, env.cfg.Transcode.FFprobeBinary = writeFFStubs(t, filepath.Join(env.baseDir, "bin"))
	env.cfg.Transcode.UseState = true
	env.writeConfig(t)

	out, _, err := runCLI(t, []string{"transcode", "--split", "train"}, env.configPath)
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	requireContains(t, out, train)
	requireContains(t, out, "1 failed clips listed in "+filepath.Join(train, "failed_convert_list.txt"))

	if _, err := os.Stat(filepath.Join(train, "dia0_utt0.wav")); err != nil {
		t.Fatalf("expected converted wav: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "dev_splits_complete", "dia1_utt0.wav")); !os.IsNotExist(err) {
		t.Fatalf("dev split must not be converted, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.StateDir, "transcode.db")); err != nil {
		t.Fatalf("expected state database: %v", err)
	}

	if _, _, err := runCLI(t, []string{"transcode", "--split", "holdout"}, env.configPath); err == nil {
		t.Fatal("expected unknown split error")
	}
}

func TestCheckCommand(t *testing.T) {
	root := writeEMODB(t)
	env := setupCLITestEnv(t, testsupport.WithCorpusRoot("EMODB", root))

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "EMODB root")

	out, _, err = runCLI(t, []string{"check", "iemocap"}, env.configPath)
	if err == nil {
		t.Fatal("expected failure for unconfigured IEMOCAP")
	}
	requireContains(t, out, "FAIL")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "MELD root: not set")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log entries available")

	testsupport.WriteText(t, logs.Path(env.cfg.Paths.LogDir), "first\nsecond\nthird\n")
	out, _, err = runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if diff := cmp.Diff("second\nthird\n", out); diff != "" {
		t.Fatalf("logs output mismatch (-want +got):\n%s", diff)
	}
}

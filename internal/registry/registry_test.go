package registry_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sercorpus/internal/corpus"
	"sercorpus/internal/corpus/emodb"
	"sercorpus/internal/emotion"
	"sercorpus/internal/registry"
	"sercorpus/internal/testsupport"
)

func TestNames(t *testing.T) {
	want := []string{"EMODB", "IEMOCAP", "MELD", "RAVDESS"}
	if diff := cmp.Diff(want, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"ravdess", "RAVDESS", " Ravdess "} {
		c, err := registry.New(name, "/data/RAVDESS")
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if c.Name() != "RAVDESS" || c.Root() != "/data/RAVDESS" {
			t.Fatalf("unexpected corpus: %s %s", c.Name(), c.Root())
		}
	}
}

func TestNewUnknownCorpus(t *testing.T) {
	_, err := registry.New("CREMA-D", "/data")
	if !errors.Is(err, registry.ErrUnknownCorpus) {
		t.Fatalf("expected ErrUnknownCorpus, got %v", err)
	}
}

func TestDefaultsMatchPipelines(t *testing.T) {
	for _, name := range registry.Names() {
		entry, err := registry.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		c := entry.New(t.TempDir())
		if diff := cmp.Diff(entry.Defaults.Strings(), c.Emotions().Strings()); diff != "" {
			t.Fatalf("%s defaults mismatch (-want +got):\n%s", name, diff)
		}
		if len(c.Classes()) == 0 {
			t.Fatalf("%s has an empty legend", name)
		}
	}
}

func TestEmotionOverrideThroughRegistry(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteWavs(t, filepath.Join(root, "wav"), "03a02Wb.wav", "03a01Fa.wav")
	override := emotion.MustMap(emotion.Entry{Code: "hap", Label: 0})

	c, err := registry.New(emodb.Name, root, corpus.WithEmotions(override))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, err := c.Files(context.Background())
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	for _, bucket := range m.All() {
		for _, sample := range bucket.Samples {
			if !override.HasLabel(sample.Label) {
				t.Fatalf("label %d not in override map", sample.Label)
			}
		}
	}
	if m.Total() != 1 {
		t.Fatalf("expected one happy sample, got %d", m.Total())
	}
}

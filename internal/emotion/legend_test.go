package emotion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildLegendMergesSharedLabels(t *testing.T) {
	m := MustMap(
		Entry{Code: "ang", Label: 0},
		Entry{Code: "sad", Label: 1},
		Entry{Code: "hap", Label: 2},
		Entry{Code: "exc", Label: 2},
		Entry{Code: "neu", Label: 3},
	)
	got := BuildLegend(m, nil)
	want := Legend{
		{Label: 0, Name: "ang"},
		{Label: 1, Name: "sad"},
		{Label: 2, Name: "hap+exc"},
		{Label: 3, Name: "neu"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(got, BuildLegend(m, nil)); diff != "" {
		t.Fatalf("legend not stable across calls (-first +second):\n%s", diff)
	}
}

func TestBuildLegendFollowsMapOrder(t *testing.T) {
	m := MustMap(
		Entry{Code: "neu", Label: 3},
		Entry{Code: "exc", Label: 2},
		Entry{Code: "ang", Label: 0},
		Entry{Code: "hap", Label: 2},
	)
	legend := BuildLegend(m, nil)
	if legend.String() != "neu, exc+hap, ang" {
		t.Fatalf("unexpected legend order %q", legend.String())
	}
	if diff := cmp.Diff([]string{"ang", "exc+hap", "neu"}, legend.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if name, ok := legend.Name(2); !ok || name != "exc+hap" {
		t.Fatalf("expected label 2 -> exc+hap, got %q (ok=%v)", name, ok)
	}
	if _, ok := legend.Name(7); ok {
		t.Fatal("expected unknown label lookup to fail")
	}
}

func TestBuildLegendRename(t *testing.T) {
	m := MustMap(Entry{Code: "01", Label: 0}, Entry{Code: "02", Label: 0})
	names := map[string]string{"01": "neu", "02": "cal"}
	legend := BuildLegend(m, func(code string) string { return names[code] })
	if diff := cmp.Diff(Legend{{Label: 0, Name: "neu+cal"}}, legend); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"happiness":  Happy,
		"ANGER":      Angry,
		" neu ":      Neutral,
		"excitement": Excited,
		"others":     Other,
	}
	for input, want := range cases {
		got, ok := Canonical(input)
		if !ok || got != want {
			t.Fatalf("Canonical(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}
	if _, ok := Canonical("xxx"); ok {
		t.Fatal("expected xxx to be unrecognized")
	}
}

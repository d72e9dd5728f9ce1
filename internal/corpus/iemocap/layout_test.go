package iemocap_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sercorpus/internal/corpus/iemocap"
)

func TestIsImprovised(t *testing.T) {
	tests := []struct {
		folder string
		want   bool
	}{
		{"Ses01F_impro01", true},
		{"Ses05M_impro08", true},
		{"Ses01F_script01_1", false},
		{"Ses01", false},
		{"impro_Ses01F", false},
	}
	for _, tt := range tests {
		if got := iemocap.IsImprovised(tt.folder); got != tt.want {
			t.Fatalf("IsImprovised(%q) = %v, want %v", tt.folder, got, tt.want)
		}
	}
}

func TestGenderOf(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Ses01F_impro01_F000.wav", "F", true},
		{"Ses01F_impro01_M012.wav", "M", true},
		{"/data/IEMOCAP/Session2/sentences/wav/Ses02M_script01_1/Ses02M_script01_1_M003.wav", "M", true},
		{"Ses01F_impro01_X000.wav", "", false},
		{"a.wav", "", false},
	}
	for _, tt := range tests {
		got, ok := iemocap.GenderOf(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("GenderOf(%q) = %q,%v want %q,%v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSpeakerIDAndSessions(t *testing.T) {
	if got := iemocap.SpeakerID("Session1", "F"); got != "1F" {
		t.Fatalf("SpeakerID = %q, want 1F", got)
	}
	if got := iemocap.SpeakerID("Session5", "M"); got != "5M" {
		t.Fatalf("SpeakerID = %q, want 5M", got)
	}
	if !iemocap.IsSession("Session3") || iemocap.IsSession("Session6") || iemocap.IsSession("session1") {
		t.Fatal("unexpected session allow-list result")
	}
}

func TestParseEvaluation(t *testing.T) {
	input := strings.Join([]string{
		"% [START_TIME - END_TIME] TURN_NAME EMOTION [V, A, D]",
		"",
		"[6.2901 - 8.2357]\tSes01F_impro01_F000\tneu\t[2.5000, 2.5000, 2.5000]",
		"C-E2:\tNeutral;\t()",
		"A-E3:\tval 3; act 2; dom  2;\t()",
		"",
		"[10.0100 - 11.3925]\tSes01F_impro01_F001\tfru\t[2.0000, 3.5000, 3.5000]",
		"[broken]",
	}, "\n")

	got, err := iemocap.ParseEvaluation(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEvaluation: %v", err)
	}
	want := map[string]string{
		"Ses01F_impro01_F000": "neu",
		"Ses01F_impro01_F001": "fru",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

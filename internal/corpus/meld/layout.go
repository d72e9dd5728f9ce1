package meld

import (
	"fmt"
	"strings"
)

// Split is one MELD partition with its manifest and clip directory.
type Split struct {
	Name     string
	Manifest string
	AudioDir string
}

// Splits lists the partitions in the order they are read.
var Splits = []Split{
	{Name: "train", Manifest: "train_sent_emo.csv", AudioDir: "train_splits"},
	{Name: "dev", Manifest: "dev_sent_emo.csv", AudioDir: "dev_splits_complete"},
	{Name: "test", Manifest: "test_sent_emo.csv", AudioDir: "output_repeated_splits_test"},
}

// SplitByName finds a split by case-insensitive name.
func SplitByName(name string) (Split, bool) {
	for _, split := range Splits {
		if strings.EqualFold(split.Name, strings.TrimSpace(name)) {
			return split, true
		}
	}
	return Split{}, false
}

// WavName is the clip file name for a manifest row.
func WavName(dialogueID, utteranceID int) string {
	return fmt.Sprintf("dia%d_utt%d.wav", dialogueID, utteranceID)
}

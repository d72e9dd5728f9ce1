package meld

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"sercorpus/internal/emotion"
)

// Speaker schemes.
const (
	// SchemeCast keeps the six main characters and pools everyone else.
	SchemeCast = "cast"
	// SchemeSequential puts the first emitted samples in "test" and the
	// remainder in "train".
	SchemeSequential = "sequential"
)

// Bucket identifiers produced by the schemes.
const (
	Others         = "others"
	PartitionTest  = "test"
	PartitionTrain = "train"
)

// DefaultTestThreshold is the number of leading samples the sequential
// scheme assigns to "test".
const DefaultTestThreshold = 548

// CoreCast lists the speakers that keep their own bucket.
var CoreCast = []string{"Chandler", "Phoebe", "Monica", "Ross", "Joey", "Rachel"}

// Emotions maps the manifest's emotion words to canonical codes. The table
// covers every value MELD uses.
var Emotions = map[string]string{
	"neutral":  emotion.Neutral,
	"joy":      emotion.Happy,
	"sadness":  emotion.Sad,
	"anger":    emotion.Angry,
	"surprise": emotion.Surprised,
	"fear":     emotion.Fearful,
	"disgust":  emotion.Disgusted,
}

// DefaultEmotions keeps all seven classes.
var DefaultEmotions = emotion.MustMap(
	emotion.Entry{Code: emotion.Neutral, Label: 0},
	emotion.Entry{Code: emotion.Happy, Label: 1},
	emotion.Entry{Code: emotion.Sad, Label: 2},
	emotion.Entry{Code: emotion.Angry, Label: 3},
	emotion.Entry{Code: emotion.Surprised, Label: 4},
	emotion.Entry{Code: emotion.Fearful, Label: 5},
	emotion.Entry{Code: emotion.Disgusted, Label: 6},
)

// Canonical resolves a manifest emotion word.
func Canonical(value string) (string, bool) {
	code, ok := Emotions[strings.ToLower(clean(value))]
	return code, ok
}

// SpeakerID returns the speaker's own name for core cast members and Others
// for everyone else.
func SpeakerID(speaker string) string {
	speaker = clean(speaker)
	if slices.Contains(CoreCast, speaker) {
		return speaker
	}
	return Others
}

// SequentialPartition returns the bucket for the sample at position index
// (zero-based, counted over emitted samples) under the sequential scheme.
func SequentialPartition(index, threshold int) string {
	if index < threshold {
		return PartitionTest
	}
	return PartitionTrain
}

func clean(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

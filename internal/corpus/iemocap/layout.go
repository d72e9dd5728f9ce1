package iemocap

import "strings"

// Sessions lists the session directories the pipeline reads.
var Sessions = []string{"Session1", "Session2", "Session3", "Session4", "Session5"}

const (
	wavSubdir   = "sentences/wav"
	labelSubdir = "dialog/EmoEvaluation"
	labelExt    = ".txt"

	// Conversation folders are named like Ses01F_impro01 or Ses01F_script01_1;
	// the recording kind sits at a fixed offset.
	improOffset = 7
	improMarker = "impro"

	// The gender letter is the eighth character from the end of a wav file
	// name: Ses01F_impro01_F000.wav.
	genderOffsetFromEnd = 8
)

// IsSession reports whether name is one of the five session directories.
func IsSession(name string) bool {
	for _, session := range Sessions {
		if session == name {
			return true
		}
	}
	return false
}

// IsImprovised reports whether a conversation folder holds an improvised
// recording rather than a scripted one.
func IsImprovised(conversation string) bool {
	end := improOffset + len(improMarker)
	return len(conversation) >= end && conversation[improOffset:end] == improMarker
}

// GenderOf returns "M" or "F" for a wav file name or path.
func GenderOf(filename string) (string, bool) {
	if len(filename) < genderOffsetFromEnd {
		return "", false
	}
	switch letter := filename[len(filename)-genderOffsetFromEnd]; letter {
	case 'M', 'F':
		return string(letter), true
	default:
		return "", false
	}
}

// SpeakerID joins the session number with a gender letter: ("Session1", "F") -> "1F".
func SpeakerID(session, gender string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		return gender
	}
	return session[len(session)-1:] + gender
}

package emotion

import "strings"

// Canonical emotion codes used across corpora.
const (
	Neutral    = "neu"
	Happy      = "hap"
	Sad        = "sad"
	Angry      = "ang"
	Surprised  = "sur"
	Fearful    = "fea"
	Disgusted  = "dis"
	Frustrated = "fru"
	Excited    = "exc"
	Other      = "oth"
	Bored      = "bor"
	Calm       = "cal"
)

var vocabulary = []struct {
	code    string
	aliases []string
}{
	{Neutral, []string{"neu", "neutral"}},
	{Happy, []string{"hap", "happy", "happiness"}},
	{Sad, []string{"sad", "sadness"}},
	{Angry, []string{"ang", "angry", "anger"}},
	{Surprised, []string{"sur", "surprise", "surprised"}},
	{Fearful, []string{"fea", "fear"}},
	{Disgusted, []string{"dis", "disgust", "disgusted"}},
	{Frustrated, []string{"fru", "frustrated", "frustration"}},
	{Excited, []string{"exc", "excited", "excitement"}},
	{Other, []string{"oth", "other", "others"}},
}

var aliasIndex = func() map[string]string {
	index := make(map[string]string)
	for _, word := range vocabulary {
		for _, alias := range word.aliases {
			index[alias] = word.code
		}
	}
	return index
}()

// Canonical resolves value (a code or spelled-out emotion, any case) to its
// canonical code.
func Canonical(value string) (string, bool) {
	code, ok := aliasIndex[strings.ToLower(strings.TrimSpace(value))]
	return code, ok
}

// CanonicalCodes lists the canonical vocabulary in declaration order.
func CanonicalCodes() []string {
	codes := make([]string, 0, len(vocabulary))
	for _, word := range vocabulary {
		codes = append(codes, word.code)
	}
	return codes
}

package audio

import (
	"strconv"
	"strings"

	"sercorpus/internal/media/ffprobe"
)

// Selection is the audio stream chosen for extraction.
type Selection struct {
	Stream ffprobe.Stream
	// Ordinal is the position among audio streams, as used by ffmpeg's
	// "0:a:N" stream specifier.
	Ordinal int
	// Candidates is the number of audio streams considered.
	Candidates int
}

// MapSpec returns the ffmpeg -map argument for the selection.
func (s Selection) MapSpec() string {
	return "0:a:" + strconv.Itoa(s.Ordinal)
}

// Label returns a short human-readable summary of the stream.
func (s Selection) Label() string {
	parts := make([]string, 0, 4)
	if lang := tagValue(s.Stream.Tags, "language", "LANGUAGE"); lang != "" {
		parts = append(parts, strings.ToLower(lang))
	}
	codec := s.Stream.CodecLong
	if codec == "" {
		codec = s.Stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if channels := channelCount(s.Stream); channels > 0 {
		parts = append(parts, strconv.Itoa(channels)+"ch")
	}
	if title := tagValue(s.Stream.Tags, "title", "TITLE"); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}

// Select ranks the audio streams and returns the best one. ok is false when
// streams contain no audio.
func Select(streams []ffprobe.Stream) (Selection, bool) {
	var (
		best      Selection
		bestScore = -1
		ordinal   int
	)
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		score := scoreStream(stream)
		if score > bestScore {
			best = Selection{Stream: stream, Ordinal: ordinal}
			bestScore = score
		}
		ordinal++
	}
	best.Candidates = ordinal
	return best, bestScore >= 0
}

// scoreStream orders the criteria by weight so a higher tier always wins over
// any combination of lower ones. Ties keep the earlier stream.
func scoreStream(stream ffprobe.Stream) int {
	score := 0
	if !isCommentary(stream) {
		score += 10000
	}
	if stream.Disposition["default"] == 1 {
		score += 1000
	}
	if lang := normalizeLanguage(stream.Tags); lang == "" || strings.HasPrefix(lang, "en") || lang == "und" {
		score += 100
	}
	if detectLossless(stream) {
		score += 10
	}
	score += min(channelCount(stream), 9)
	return score
}

func isCommentary(stream ffprobe.Stream) bool {
	if stream.Disposition["comment"] == 1 || stream.Disposition["visual_impaired"] == 1 {
		return true
	}
	title := strings.ToLower(tagValue(stream.Tags, "title", "TITLE", "handler_name", "HANDLER_NAME"))
	return strings.Contains(title, "commentary") || strings.Contains(title, "description")
}

func normalizeLanguage(tags map[string]string) string {
	return strings.ToLower(tagValue(tags, "language", "LANGUAGE", "Language", "language_ietf", "LANG"))
}

func tagValue(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 0
	case layout == "mono":
		return 1
	case layout == "stereo":
		return 2
	}
	total := 0
	for _, part := range strings.Split(layout, ".") {
		part = strings.Trim(part, "abcdefghijklmnopqrstuvwxyz ()")
		if n, err := strconv.Atoi(part); err == nil {
			total += n
		}
	}
	return total
}

func detectLossless(stream ffprobe.Stream) bool {
	name := strings.ToLower(stream.CodecName)
	if strings.HasPrefix(name, "pcm_") {
		return true
	}
	switch name {
	case "flac", "alac", "truehd", "mlp", "wavpack":
		return true
	}
	long := strings.ToLower(stream.CodecLong)
	return strings.Contains(long, "lossless") || strings.Contains(long, "master audio")
}

package audio

import (
	"testing"

	"sercorpus/internal/media/ffprobe"
)

func TestSelectSingleTrack(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 0, CodecType: "video", CodecName: "h264"},
		{Index: 1, CodecType: "audio", CodecName: "aac", Channels: 2},
	}
	sel, ok := Select(streams)
	if !ok {
		t.Fatal("expected an audio selection")
	}
	if sel.Stream.Index != 1 || sel.Ordinal != 0 || sel.Candidates != 1 {
		t.Fatalf("unexpected selection %+v", sel)
	}
	if got := sel.MapSpec(); got != "0:a:0" {
		t.Fatalf("MapSpec = %q", got)
	}
}

func TestSelectWithoutAudio(t *testing.T) {
	if _, ok := Select([]ffprobe.Stream{{Index: 0, CodecType: "video"}}); ok {
		t.Fatal("expected no selection for a video-only container")
	}
	if _, ok := Select(nil); ok {
		t.Fatal("expected no selection for an empty stream list")
	}
}

func TestSelectSkipsCommentary(t *testing.T) {
	streams := []ffprobe.Stream{
		{
			Index:       1,
			CodecType:   "audio",
			CodecName:   "flac",
			Channels:    6,
			Tags:        map[string]string{"language": "eng", "title": "Director Commentary"},
			Disposition: map[string]int{"default": 1},
		},
		{Index: 2, CodecType: "audio", CodecName: "aac", Channels: 2, Tags: map[string]string{"language": "eng"}},
	}
	sel, ok := Select(streams)
	if !ok || sel.Stream.Index != 2 || sel.Ordinal != 1 {
		t.Fatalf("expected dialogue track, got %+v", sel)
	}
}

func TestSelectPrefersDefaultDisposition(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "pcm_s16le", Channels: 6},
		{Index: 2, CodecType: "audio", CodecName: "aac", Channels: 2, Disposition: map[string]int{"default": 1}},
	}
	sel, _ := Select(streams)
	if sel.Stream.Index != 2 {
		t.Fatalf("expected default track, got index %d", sel.Stream.Index)
	}
}

func TestSelectPrefersEnglishThenLossless(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "flac", Channels: 2, Tags: map[string]string{"language": "spa"}},
		{Index: 2, CodecType: "audio", CodecName: "aac", Channels: 2, Tags: map[string]string{"language": "eng"}},
		{Index: 3, CodecType: "audio", CodecName: "pcm_s24le", Channels: 2, Tags: map[string]string{"language": "eng"}},
	}
	sel, _ := Select(streams)
	if sel.Stream.Index != 3 || sel.Ordinal != 2 {
		t.Fatalf("expected lossless English track, got %+v", sel)
	}
}

func TestSelectTieKeepsEarlierStream(t *testing.T) {
	streams := []ffprobe.Stream{
		{Index: 1, CodecType: "audio", CodecName: "aac", ChannelLayout: "stereo"},
		{Index: 2, CodecType: "audio", CodecName: "aac", ChannelLayout: "stereo"},
	}
	sel, _ := Select(streams)
	if sel.Stream.Index != 1 {
		t.Fatalf("expected first stream on tie, got %d", sel.Stream.Index)
	}
}

func TestChannelCountFromLayout(t *testing.T) {
	cases := map[string]int{"mono": 1, "stereo": 2, "5.1(side)": 6, "7.1": 8, "": 0}
	for layout, want := range cases {
		if got := channelCount(ffprobe.Stream{ChannelLayout: layout}); got != want {
			t.Errorf("channelCount(%q) = %d, want %d", layout, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	sel := Selection{Stream: ffprobe.Stream{
		CodecName: "aac",
		Channels:  2,
		Tags:      map[string]string{"language": "ENG", "title": "Main"},
	}}
	if got, want := sel.Label(), "eng | aac | 2ch | Main"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
	if got := (Selection{}).Label(); got != "audio" {
		t.Fatalf("empty Label = %q", got)
	}
}

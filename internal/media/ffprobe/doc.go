// Package ffprobe runs ffprobe against a media container and decodes the
// stream list it reports.
//
// The transcoder uses it to tell apart MELD clips that carry an audio track
// from clips that only hold video.
package ffprobe

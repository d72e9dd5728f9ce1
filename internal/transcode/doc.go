// Package transcode converts container video clips into standalone mono PCM
// WAV files with ffmpeg.
//
// Convert is the per-file operation: one source, one destination, no shared
// state. Batch is the driver: it discovers sources under a root, probes each
// one for an audio stream, converts it next to the original, and collects
// per-file failures into a Report instead of aborting. When any file failed,
// the batch writes a plain-text failure log (one source path per line) into
// the scanned root.
//
// A batch holds an exclusive lock file in the root for its duration and may
// record successful conversions in a state store so unchanged sources are
// skipped on the next run.
package transcode

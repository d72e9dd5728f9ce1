// Package meld enumerates the Multimodal EmotionLines Dataset.
//
// The root holds three CSV manifests (train, dev, test) and the matching clip
// directories. Each manifest row names a speaker, an emotion word, and the
// dialogue and utterance numbers that locate dia<D>_utt<U>.wav in the split's
// directory. Clips ship as video containers; Transcode extracts mono PCM wav
// files next to them.
package meld

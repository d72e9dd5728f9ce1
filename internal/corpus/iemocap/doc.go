// Package iemocap enumerates the IEMOCAP corpus.
//
// The corpus root holds Session1 through Session5. Each session keeps its
// utterance audio under sentences/wav/<conversation>/<utterance>.wav and one
// EmoEvaluation label file per conversation under
// dialog/EmoEvaluation/<conversation>.txt. Speakers are identified by session
// number plus gender letter ("1F", "3M").
package iemocap

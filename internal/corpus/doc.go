// Package corpus defines the data model every speech-emotion corpus pipeline
// produces and the capability interface the pipelines implement.
//
// A pipeline walks one corpus on disk and returns a Mapping: speaker
// identifier to the ordered list of Samples (wav path, integer label)
// discovered for that speaker. Mappings are built fresh on every call and
// belong to the caller.
//
// The corpus-specific pipelines live in the iemocap, emodb, ravdess and meld
// subpackages; the registry package selects one by name.
package corpus

// Package logging assembles the slog loggers used by sercorpus.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides attribute helpers so corpus pipelines and the
// transcoder tag records with the same keys. NewNop gives tests and wiring
// code a logger that cannot fail.
package logging

// Package preflight provides readiness checks for corpus roots, writable
// directories, and the audio tools sercorpus depends on.
//
// The CLI "sercorpus check" command renders RunAll's results as a table.
// Each corpus is only checked when its root is configured or requested.
package preflight

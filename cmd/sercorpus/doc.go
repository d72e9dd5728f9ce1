// Package main hosts the sercorpus CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, selects a corpus
// through the registry, and renders enumeration results, class legends,
// transcoding reports, and preflight checks. Parsing and traversal live in
// the internal packages; commands here only wire flags to them.
package main

// Package config loads, normalizes, and validates sercorpus configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// IEMOCAP_ROOT. Each corpus has its own section holding its root directory
// and an optional emotion map override written as ordered "code:label"
// strings.
package config

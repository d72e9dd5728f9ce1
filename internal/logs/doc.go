// Package logs reads the sercorpus log file for the `sercorpus logs` command.
//
// Last returns the trailing lines of the file with bounded memory. Follow
// polls from a byte offset and emits lines as they are appended, restarting
// from the top when the file is truncated. Both treat a missing file as
// empty so the command works before the first logged run.
package logs

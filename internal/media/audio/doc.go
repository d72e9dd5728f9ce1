// Package audio picks the audio stream that a MELD clip is downmixed from.
//
// Clips normally carry a single track, but re-encoded or remuxed copies can
// carry several. Candidates are ranked by:
//  1. Commentary or descriptive tracks last
//  2. The container's default disposition
//  3. English or untagged language
//  4. Lossless codecs over lossy
//  5. Channel count, then container order
//
// Primary entry point:
//   - Select: returns the chosen stream and its position among audio streams
package audio

// Package emotion holds the emotion vocabulary shared by every corpus
// pipeline.
//
// It has no filesystem dependencies so label resolution can be tested on its
// own.
//
// Key types:
//   - Map: ordered, immutable mapping from emotion code to integer class label
//   - Legend: integer label back to the "+"-joined codes merged into it
//
// Primary entry points:
//   - NewMap / ParseMap: build a Map from entries or "code:label" strings
//   - BuildLegend: collapse a Map into a Legend
//   - Canonical: resolve an alias such as "happiness" to its canonical code
package emotion

package corpus

import (
	"encoding/json"
	"slices"
)

// Sample is one labelled audio file.
type Sample struct {
	Path  string `json:"path"`
	Label int    `json:"label"`
}

// Mapping groups samples by speaker identifier. Speakers keep the order in
// which they were first seen and samples keep discovery order.
type Mapping struct {
	order   []string
	buckets map[string][]Sample
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{buckets: make(map[string][]Sample)}
}

// Add appends sample to speaker's bucket, creating the bucket on first use.
func (m *Mapping) Add(speaker string, sample Sample) {
	if m.buckets == nil {
		m.buckets = make(map[string][]Sample)
	}
	if _, ok := m.buckets[speaker]; !ok {
		m.order = append(m.order, speaker)
	}
	m.buckets[speaker] = append(m.buckets[speaker], sample)
}

// Speakers returns speaker identifiers in first-seen order.
func (m *Mapping) Speakers() []string {
	return slices.Clone(m.order)
}

// Samples returns a copy of speaker's bucket.
func (m *Mapping) Samples(speaker string) []Sample {
	return slices.Clone(m.buckets[speaker])
}

// Has reports whether speaker has a bucket.
func (m *Mapping) Has(speaker string) bool {
	_, ok := m.buckets[speaker]
	return ok
}

// Len returns the number of speakers.
func (m *Mapping) Len() int { return len(m.order) }

// Total returns the number of samples across all speakers.
func (m *Mapping) Total() int {
	total := 0
	for _, samples := range m.buckets {
		total += len(samples)
	}
	return total
}

// LabelCounts returns how many samples carry each label.
func (m *Mapping) LabelCounts() map[int]int {
	counts := make(map[int]int)
	for _, samples := range m.buckets {
		for _, sample := range samples {
			counts[sample.Label]++
		}
	}
	return counts
}

// Bucket is one speaker with its samples, as used by All and JSON output.
type Bucket struct {
	Speaker string   `json:"id"`
	Samples []Sample `json:"samples"`
}

// All returns every bucket in speaker order.
func (m *Mapping) All() []Bucket {
	out := make([]Bucket, 0, len(m.order))
	for _, speaker := range m.order {
		out = append(out, Bucket{Speaker: speaker, Samples: slices.Clone(m.buckets[speaker])})
	}
	return out
}

// MarshalJSON renders the mapping as {"speakers":[{"id":..,"samples":[..]}]}
// so speaker order survives serialization.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Speakers []Bucket `json:"speakers"`
	}{Speakers: m.All()})
}

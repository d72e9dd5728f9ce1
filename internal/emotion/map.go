package emotion

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Entry pairs an emotion code with the integer class label it maps to.
type Entry struct {
	Code  string
	Label int
}

// Map is an ordered mapping from emotion code to class label. Several codes may
// share a label, which merges their classes. The zero value is an empty map.
// A Map is never mutated after construction, so copies share storage safely.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap validates entries and builds a Map that preserves their order.
func NewMap(entries ...Entry) (Map, error) {
	m := Map{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			return Map{}, errors.New("emotion map: empty code")
		}
		if entry.Label < 0 {
			return Map{}, fmt.Errorf("emotion map: negative label %d for %q", entry.Label, code)
		}
		if _, dup := m.index[code]; dup {
			return Map{}, fmt.Errorf("emotion map: duplicate code %q", code)
		}
		m.index[code] = entry.Label
		m.entries = append(m.entries, Entry{Code: code, Label: entry.Label})
	}
	return m, nil
}

// MustMap is NewMap for package-level defaults; it panics on invalid input.
func MustMap(entries ...Entry) Map {
	m, err := NewMap(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMap builds a Map from "code:label" strings. Items may also be
// comma-separated within one string, which is how the CLI passes them.
func ParseMap(specs []string) (Map, error) {
	var entries []Entry
	for _, value := range specs {
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			code, rawLabel, ok := strings.Cut(item, ":")
			if !ok {
				return Map{}, fmt.Errorf("emotion map: %q is not code:label", item)
			}
			label, err := strconv.Atoi(strings.TrimSpace(rawLabel))
			if err != nil {
				return Map{}, fmt.Errorf("emotion map: label for %q: %w", strings.TrimSpace(code), err)
			}
			entries = append(entries, Entry{Code: code, Label: label})
		}
	}
	return NewMap(entries...)
}

// Lookup returns the label configured for code.
func (m Map) Lookup(code string) (int, bool) {
	label, ok := m.index[code]
	return label, ok
}

// Contains reports whether code is part of the configured emotion set.
func (m Map) Contains(code string) bool {
	_, ok := m.index[code]
	return ok
}

// HasLabel reports whether any code maps to label.
func (m Map) HasLabel(label int) bool {
	for _, entry := range m.entries {
		if entry.Label == label {
			return true
		}
	}
	return false
}

// Entries returns the entries in configuration order.
func (m Map) Entries() []Entry {
	return slices.Clone(m.entries)
}

// Codes returns the configured codes in configuration order.
func (m Map) Codes() []string {
	codes := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		codes = append(codes, entry.Code)
	}
	return codes
}

// Labels returns the distinct labels in ascending order.
func (m Map) Labels() []int {
	labels := make([]int, 0, len(m.entries))
	for _, entry := range m.entries {
		if !slices.Contains(labels, entry.Label) {
			labels = append(labels, entry.Label)
		}
	}
	slices.Sort(labels)
	return labels
}

// Len returns the number of codes.
func (m Map) Len() int { return len(m.entries) }

// IsZero reports whether the map has no entries.
func (m Map) IsZero() bool { return len(m.entries) == 0 }

// Strings renders the map back into "code:label" items, the inverse of ParseMap.
func (m Map) Strings() []string {
	out := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry.Code+":"+strconv.Itoa(entry.Label))
	}
	return out
}

func (m Map) String() string {
	return strings.Join(m.Strings(), ",")
}

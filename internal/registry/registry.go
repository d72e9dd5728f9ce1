// Package registry maps corpus names to their pipeline constructors.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"sercorpus/internal/corpus"
	"sercorpus/internal/corpus/emodb"
	"sercorpus/internal/corpus/iemocap"
	"sercorpus/internal/corpus/meld"
	"sercorpus/internal/corpus/ravdess"
	"sercorpus/internal/emotion"
)

// ErrUnknownCorpus is returned for names not in the registry.
var ErrUnknownCorpus = errors.New("unknown corpus")

// Constructor builds a pipeline for a corpus root.
type Constructor func(root string, opts ...corpus.Option) corpus.Corpus

// Entry describes one registered corpus.
type Entry struct {
	Name     string
	New      Constructor
	Defaults emotion.Map
}

var entries = []Entry{
	{Name: iemocap.Name, Defaults: iemocap.DefaultEmotions, New: func(root string, opts ...corpus.Option) corpus.Corpus {
		return iemocap.New(root, opts...)
	}},
	{Name: emodb.Name, Defaults: emodb.DefaultEmotions, New: func(root string, opts ...corpus.Option) corpus.Corpus {
		return emodb.New(root, opts...)
	}},
	{Name: ravdess.Name, Defaults: ravdess.DefaultEmotions, New: func(root string, opts ...corpus.Option) corpus.Corpus {
		return ravdess.New(root, opts...)
	}},
	{Name: meld.Name, Defaults: meld.DefaultEmotions, New: func(root string, opts ...corpus.Option) corpus.Corpus {
		return meld.New(root, opts...)
	}},
}

// Names lists the registered corpora in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a corpus by case-insensitive name.
func Lookup(name string) (Entry, error) {
	for _, entry := range entries {
		if strings.EqualFold(entry.Name, strings.TrimSpace(name)) {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownCorpus, name, strings.Join(Names(), ", "))
}

// New selects a corpus by name and builds its pipeline.
func New(name, root string, opts ...corpus.Option) (corpus.Corpus, error) {
	entry, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.New(root, opts...), nil
}

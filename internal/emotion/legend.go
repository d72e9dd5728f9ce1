package emotion

import (
	"slices"
	"strings"
)

// Class is one legend row: a label and the codes merged into it.
type Class struct {
	Label int    `json:"label"`
	Name  string `json:"name"`
}

// Legend lists classes in the order their labels first appear in the Map.
type Legend []Class

// BuildLegend collapses m into a Legend. Codes sharing a label are joined with
// "+" in map order. rename translates a code into its display name; nil keeps
// the code as is.
func BuildLegend(m Map, rename func(code string) string) Legend {
	legend := make(Legend, 0, m.Len())
	position := make(map[int]int, m.Len())
	for _, entry := range m.entries {
		name := entry.Code
		if rename != nil {
			name = rename(entry.Code)
		}
		if i, seen := position[entry.Label]; seen {
			legend[i].Name += "+" + name
			continue
		}
		position[entry.Label] = len(legend)
		legend = append(legend, Class{Label: entry.Label, Name: name})
	}
	return legend
}

// Name returns the legend entry for label.
func (l Legend) Name(label int) (string, bool) {
	for _, class := range l {
		if class.Label == label {
			return class.Name, true
		}
	}
	return "", false
}

// Sorted returns a copy ordered by label.
func (l Legend) Sorted() Legend {
	out := slices.Clone(l)
	slices.SortStableFunc(out, func(a, b Class) int { return a.Label - b.Label })
	return out
}

// Names returns the class names ordered by label, suitable as a list of
// one-hot column names.
func (l Legend) Names() []string {
	sorted := l.Sorted()
	names := make([]string, 0, len(sorted))
	for _, class := range sorted {
		names = append(names, class.Name)
	}
	return names
}

func (l Legend) String() string {
	parts := make([]string, 0, len(l))
	for _, class := range l {
		parts = append(parts, class.Name)
	}
	return strings.Join(parts, ", ")
}

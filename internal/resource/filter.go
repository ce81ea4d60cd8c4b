package resource

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items where any of fields contains term, ignoring case.
// The input is never modified and the result never aliases it. An empty term
// returns a copy of all items.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	out := make([]T, 0, len(items))
	for _, it := range items {
		if needle == "" || matches(fold, fields(it), needle) {
			out = append(out, it)
		}
	}
	return out
}

func matches(fold cases.Caser, haystack []string, needle string) bool {
	for _, h := range haystack {
		if h != "" && strings.Contains(fold.String(h), needle) {
			return true
		}
	}
	return false
}

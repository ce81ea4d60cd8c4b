package resource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nameFields(r rec) []string { return []string{r.Name, r.ID} }

func TestFilter(t *testing.T) {
	t.Parallel()

	items := []rec{
		{ID: "1", Name: "Brand Identity"},
		{ID: "2", Name: "Website Redesign"},
		{ID: "3", Name: "STRASSE campaign"},
	}

	t.Run("case insensitive substring", func(t *testing.T) {
		require.Equal(t, []rec{items[1]}, Filter(items, "website", nameFields))
		require.Equal(t, []rec{items[0]}, Filter(items, "IDENT", nameFields))
	})

	t.Run("folds case", func(t *testing.T) {
		require.Equal(t, []rec{items[2]}, Filter(items, "strasse", nameFields))
	})

	t.Run("matches any field", func(t *testing.T) {
		require.Equal(t, []rec{items[2]}, Filter(items, "3", nameFields))
	})

	t.Run("empty term returns a copy", func(t *testing.T) {
		got := Filter(items, "  ", nameFields)
		require.Equal(t, items, got)
		got[0].Name = "changed"
		require.Equal(t, "Brand Identity", items[0].Name)
	})

	t.Run("pure", func(t *testing.T) {
		before := append([]rec(nil), items...)
		a := Filter(items, "re", nameFields)
		b := Filter(items, "re", nameFields)
		require.Equal(t, a, b)
		require.Equal(t, before, items)
	})

	t.Run("no match", func(t *testing.T) {
		got := Filter(items, "zzz", nameFields)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

package resource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectionMethodsNeverAlias(t *testing.T) {
	t.Parallel()

	base := NewCollection([]rec{{ID: "1"}, {ID: "2"}}, Pagination{Count: 2})

	prepended := base.Prepend(rec{ID: "0"})
	spliced := base.Splice(rec{ID: "1", Name: "x"})
	removed := base.Remove("1")

	require.Equal(t, []rec{{ID: "1"}, {ID: "2"}}, base.Items)
	require.Equal(t, []rec{{ID: "0"}, {ID: "1"}, {ID: "2"}}, prepended.Items)
	require.Equal(t, []rec{{ID: "1", Name: "x"}, {ID: "2"}}, spliced.Items)
	require.Equal(t, []rec{{ID: "2"}}, removed.Items)
	require.Equal(t, 2, removed.Pagination.Count)

	spliced.Items[1].Name = "mutated"
	require.Empty(t, base.Items[1].Name)
}

func TestCollectionSpliceMissingKey(t *testing.T) {
	t.Parallel()

	base := NewCollection([]rec{{ID: "1"}}, Pagination{})
	require.Equal(t, base.Items, base.Splice(rec{ID: "404"}).Items)
}

func TestCollectionFindAndCount(t *testing.T) {
	t.Parallel()

	c := NewCollection([]rec{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "a"}}, Pagination{})

	got, ok := c.Find("2")
	require.True(t, ok)
	require.Equal(t, "b", got.Name)

	_, ok = c.Find("9")
	require.False(t, ok)

	require.Equal(t, 2, c.Count(func(r rec) bool { return r.Name == "a" }))
}

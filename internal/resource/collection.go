package resource

// Keyed is implemented by every record held in a Collection.
type Keyed interface {
	Key() string
}

// Pagination passes through the server supplied cursors untouched.
type Pagination struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// Collection is an ordered, immutable list of records. Every method returns a
// new Collection with its own backing array.
type Collection[T Keyed] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewCollection copies items into a fresh collection.
func NewCollection[T Keyed](items []T, p Pagination) Collection[T] {
	out := make([]T, len(items))
	copy(out, items)
	return Collection[T]{Items: out, Pagination: p}
}

func (c Collection[T]) Len() int { return len(c.Items) }

// ReplaceAll is the merge rule for list fetches.
func (c Collection[T]) ReplaceAll(items []T, p Pagination) Collection[T] {
	return NewCollection(items, p)
}

// Prepend is the merge rule for creates.
func (c Collection[T]) Prepend(item T) Collection[T] {
	out := make([]T, 0, len(c.Items)+1)
	out = append(out, item)
	out = append(out, c.Items...)
	return Collection[T]{Items: out, Pagination: c.Pagination}
}

// Splice replaces the record with the same key. A missing key leaves the
// items unchanged.
func (c Collection[T]) Splice(item T) Collection[T] {
	key := item.Key()
	out := make([]T, len(c.Items))
	for i, it := range c.Items {
		if it.Key() == key {
			out[i] = item
			continue
		}
		out[i] = it
	}
	return Collection[T]{Items: out, Pagination: c.Pagination}
}

// Remove drops the record with key.
func (c Collection[T]) Remove(key string) Collection[T] {
	out := make([]T, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Key() != key {
			out = append(out, it)
		}
	}
	return Collection[T]{Items: out, Pagination: c.Pagination}
}

// Find returns the record with key.
func (c Collection[T]) Find(key string) (T, bool) {
	for _, it := range c.Items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Count returns how many records satisfy pred.
func (c Collection[T]) Count(pred func(T) bool) int {
	n := 0
	for _, it := range c.Items {
		if pred(it) {
			n++
		}
	}
	return n
}

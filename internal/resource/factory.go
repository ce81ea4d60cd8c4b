package resource

import (
	"context"

	"github.com/aussiebroadwan/ideadesk/pkg/apiclient"
)

// Lens selects a collection inside a slice state.
type Lens[S any, T Keyed] func(state *S) *Collection[T]

// Writes returns an Op.Writes for the collections selected by lenses.
func Writes[S any](lenses ...func(state *S) any) func(state *S) []any {
	return func(state *S) []any {
		out := make([]any, len(lenses))
		for i, l := range lenses {
			out[i] = l(state)
		}
		return out
	}
}

// writes is the Op.Writes of a single lens.
func (l Lens[S, T]) writes() func(state *S) []any {
	return func(state *S) []any { return []any{l(state)} }
}

// Empty is the result of operations that return no body.
type Empty struct{}

// Lifecycle kinds shared by every collection.
const (
	KindFetch  = "fetch"
	KindCreate = "create"
	KindUpdate = "update"
	KindDelete = "delete"
)

// ListOp fetches a page and replaces the collection with it.
func ListOp[S any, T Keyed](
	kind string,
	lens Lens[S, T],
	run func(ctx context.Context) (apiclient.Page[T], error),
) Op[S, apiclient.Page[T]] {
	return Op[S, apiclient.Page[T]]{
		Kind:     kind,
		Run:      run,
		Writes:   lens.writes(),
		Replaces: true,
		Reduce: func(state *S, page apiclient.Page[T]) {
			c := lens(state)
			*c = c.ReplaceAll(page.Items, Pagination{
				Count:    page.Count,
				Next:     page.Next,
				Previous: page.Previous,
			})
		},
	}
}

// CreateOp creates a record and prepends it.
func CreateOp[S any, T Keyed](
	kind string,
	lens Lens[S, T],
	run func(ctx context.Context) (T, error),
	success string,
) Op[S, T] {
	return Op[S, T]{
		Kind:    kind,
		Success: success,
		Run:     run,
		Writes:  lens.writes(),
		Reduce: func(state *S, item T) {
			c := lens(state)
			*c = c.Prepend(item)
		},
	}
}

// UpdateOp replaces the record keyed target with the server's copy. Domain
// actions such as publish or activate use it too.
func UpdateOp[S any, T Keyed](
	kind, target string,
	lens Lens[S, T],
	run func(ctx context.Context) (T, error),
	success string,
) Op[S, T] {
	return Op[S, T]{
		Kind:    kind,
		Target:  target,
		Success: success,
		Run:     run,
		Writes:  lens.writes(),
		Reduce: func(state *S, item T) {
			c := lens(state)
			*c = c.Splice(item)
		},
	}
}

// DeleteOp removes the record keyed target once the server confirms.
func DeleteOp[S any, T Keyed](
	kind, target string,
	lens Lens[S, T],
	run func(ctx context.Context) error,
	success string,
) Op[S, Empty] {
	return Op[S, Empty]{
		Kind:    kind,
		Target:  target,
		Success: success,
		Writes:  lens.writes(),
		Run: func(ctx context.Context) (Empty, error) {
			return Empty{}, run(ctx)
		},
		Reduce: func(state *S, _ Empty) {
			c := lens(state)
			*c = c.Remove(target)
		},
	}
}

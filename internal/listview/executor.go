package listview

import (
	"context"

	"github.com/northlight-bi/northlight/internal/shared"
)

// Page is one fetched window of a list view, the same shape whether the
// pipeline ran in memory or was pushed down into the store.
type Page[T any] struct {
	Rows []T               `json:"rows"`
	Meta shared.Pagination `json:"meta"`
}

// Executor resolves a view state into a page of rows. Two back-ends satisfy
// it: InMemory below, which materializes the entity once and runs the
// pipeline in process, and the orders repository, which rebuilds a
// parameterized query with WHERE/ORDER BY/LIMIT/OFFSET from the same state.
// Which one an entity uses is a configuration decision, not an API one.
type Executor[T any] interface {
	Fetch(ctx context.Context, st State) (Page[T], error)
}

// InMemory is the fetch-once back-end used by products and customers.
type InMemory[T any] struct {
	Load func(ctx context.Context) ([]T, error)
	Desc Descriptor[T]
}

// Fetch loads the full entity list and applies filter, sort and paginate.
// The reported total counts the filtered set, not the full one.
func (e *InMemory[T]) Fetch(ctx context.Context, st State) (Page[T], error) {
	rows, err := e.Load(ctx)
	if err != nil {
		return Page[T]{}, err
	}
	filtered := ApplyFilters(rows, st, e.Desc)
	sorted := ApplySort(filtered, st, e.Desc)
	return Page[T]{
		Rows: Paginate(sorted, st),
		Meta: shared.NewPagination(st.Page, st.PerPage, len(filtered)),
	}, nil
}

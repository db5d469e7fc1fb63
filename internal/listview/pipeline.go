package listview

import (
	"sort"
	"strings"
)

// Descriptor parameterizes the generic pipeline for one entity type: which
// text fields the search query matches, which categorical dimensions can be
// filtered, and how each sortable column orders.
type Descriptor[T any] struct {
	// SearchFields yield the text matched case-insensitively by the search
	// query. An entity's set is fixed.
	SearchFields []func(T) string
	// Categorical maps a filter dimension to its exact-match accessor.
	Categorical map[string]func(T) string
	// Columns maps a sort column to its ascending comparator.
	Columns map[string]func(a, b T) bool
	// SortBy and SortDesc give the entity's initial sort.
	SortBy   string
	SortDesc bool
	// PerPage is the entity's fixed page size.
	PerPage int
}

// DefaultState builds the initial view state for the entity.
func (d Descriptor[T]) DefaultState() State {
	return State{SortBy: d.SortBy, SortDesc: d.SortDesc, Page: 1, PerPage: d.PerPage}
}

// ApplyFilters narrows rows to those matching the search query on any search
// field and every active categorical filter, preserving source order. An
// empty query and All-valued filters are no-ops.
func ApplyFilters[T any](rows []T, st State, d Descriptor[T]) []T {
	query := strings.ToLower(strings.TrimSpace(st.Search))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if query != "" && !matchesSearch(row, query, d.SearchFields) {
			continue
		}
		if !matchesFilters(row, st, d.Categorical) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesSearch[T any](row T, query string, fields []func(T) string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(row)), query) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](row T, st State, categorical map[string]func(T) string) bool {
	for name, accessor := range categorical {
		want := st.Filter(name)
		if want == All {
			continue
		}
		if accessor(row) != want {
			return false
		}
	}
	return true
}

// ApplySort stably sorts a copy of rows by the state's sort column. Ties keep
// their original relative order. Unknown columns leave the order untouched.
func ApplySort[T any](rows []T, st State, d Descriptor[T]) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	less, ok := d.Columns[st.SortBy]
	if !ok {
		return out
	}
	if st.SortDesc {
		asc := less
		less = func(a, b T) bool { return asc(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Paginate slices out the 1-based page for the state's page size. Pages past
// the end return an empty slice rather than erroring.
func Paginate[T any](rows []T, st State) []T {
	page := st.Page
	if page < 1 {
		page = 1
	}
	perPage := st.PerPage
	if perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(rows) {
		return []T{}
	}
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Package listview implements the filter/sort/paginate pipeline shared by
// every entity browsing screen. The mutable part is a single serializable
// State struct; the transforms over it are pure and independently testable.
package listview

import "math"

// All is the sentinel for an inactive categorical filter. It is reserved and
// must never collide with a real category, country, city or status value.
const All = "All"

// State captures everything a list screen remembers between requests: the
// free-text search, the active categorical filters, the sort column and
// direction, and the current page. Total holds the row count as of the last
// fetch so page navigation can clamp without refetching.
type State struct {
	Search   string            `json:"search"`
	Filters  map[string]string `json:"filters,omitempty"`
	SortBy   string            `json:"sort_by"`
	SortDesc bool              `json:"sort_desc"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	Total    int               `json:"total"`
}

// Filter returns the active value for a categorical dimension, defaulting to
// the All sentinel when unset.
func (s State) Filter(name string) string {
	if v, ok := s.Filters[name]; ok && v != "" {
		return v
	}
	return All
}

// TotalPages derives the page count from the last observed total. Zero rows
// yield zero pages.
func (s State) TotalPages() int {
	if s.PerPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(s.Total) / float64(s.PerPage)))
}

// WithSearch sets the search query and resets to the first page.
func (s State) WithSearch(query string) State {
	s.Search = query
	s.Page = 1
	return s
}

// WithFilter sets a categorical filter and resets to the first page.
func (s State) WithFilter(name, value string) State {
	filters := make(map[string]string, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	if value == "" {
		value = All
	}
	filters[name] = value
	s.Filters = filters
	s.Page = 1
	return s
}

// WithSort selects a sort column. Re-selecting the current column toggles
// the direction; a new column starts ascending. Either way the view returns
// to the first page.
func (s State) WithSort(column string) State {
	if column == s.SortBy {
		s.SortDesc = !s.SortDesc
	} else {
		s.SortBy = column
		s.SortDesc = false
	}
	s.Page = 1
	return s
}

// Next advances one page, clamped to the last known page count.
func (s State) Next() State {
	if s.Page < s.TotalPages() {
		s.Page++
	}
	return s
}

// Prev steps back one page, never below the first.
func (s State) Prev() State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

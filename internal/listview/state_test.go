package listview

import "testing"

func TestFilterDefaultsToAll(t *testing.T) {
	st := State{}
	if got := st.Filter("category"); got != All {
		t.Fatalf("expected All, got %q", got)
	}

	st = st.WithFilter("category", "Beverages")
	if got := st.Filter("category"); got != "Beverages" {
		t.Fatalf("expected Beverages, got %q", got)
	}
	if got := st.Filter("country"); got != All {
		t.Fatalf("unset dimension should stay All, got %q", got)
	}
}

func TestWithSearchResetsPage(t *testing.T) {
	st := State{Page: 4, PerPage: 10}
	st = st.WithSearch("chai")
	if st.Search != "chai" || st.Page != 1 {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestWithFilterResetsPageAndCopies(t *testing.T) {
	original := State{Page: 3, Filters: map[string]string{"country": "Germany"}}
	updated := original.WithFilter("city", "Berlin")

	if updated.Page != 1 {
		t.Fatalf("expected page reset, got %d", updated.Page)
	}
	if updated.Filters["country"] != "Germany" || updated.Filters["city"] != "Berlin" {
		t.Fatalf("unexpected filters: %+v", updated.Filters)
	}
	if _, ok := original.Filters["city"]; ok {
		t.Fatalf("WithFilter must not mutate the original map")
	}
}

func TestWithSortToggleSemantics(t *testing.T) {
	st := State{SortBy: "order_id", SortDesc: true, Page: 5}

	st = st.WithSort("order_date")
	if st.SortBy != "order_date" || st.SortDesc {
		t.Fatalf("new column should start ascending: %+v", st)
	}
	if st.Page != 1 {
		t.Fatalf("sort change should reset page, got %d", st.Page)
	}

	st = st.WithSort("order_date")
	if !st.SortDesc {
		t.Fatalf("same column should toggle to descending")
	}
	st = st.WithSort("order_date")
	if st.SortDesc {
		t.Fatalf("same column should toggle back to ascending")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 12, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		st := State{Total: tc.total, PerPage: tc.perPage}
		if got := st.TotalPages(); got != tc.want {
			t.Fatalf("TotalPages(total=%d, perPage=%d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}

func TestNextPrevClamp(t *testing.T) {
	st := State{Page: 1, PerPage: 10, Total: 25}

	st = st.Next()
	st = st.Next()
	if st.Page != 3 {
		t.Fatalf("expected page 3, got %d", st.Page)
	}
	st = st.Next()
	if st.Page != 3 {
		t.Fatalf("Next past the end must no-op, got %d", st.Page)
	}

	st.Page = 1
	st = st.Prev()
	if st.Page != 1 {
		t.Fatalf("Prev at the start must no-op, got %d", st.Page)
	}
}

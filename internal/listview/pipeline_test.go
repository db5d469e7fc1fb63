package listview

import (
	"context"
	"testing"
)

type item struct {
	Name     string
	Category string
	Price    float64
}

func itemDescriptor() Descriptor[item] {
	return Descriptor[item]{
		SearchFields: []func(item) string{
			func(i item) string { return i.Name },
			func(i item) string { return i.Category },
		},
		Categorical: map[string]func(item) string{
			"category": func(i item) string { return i.Category },
		},
		Columns: map[string]func(a, b item) bool{
			"name":  func(a, b item) bool { return a.Name < b.Name },
			"price": func(a, b item) bool { return a.Price < b.Price },
		},
		SortBy:  "name",
		PerPage: 2,
	}
}

func testItems() []item {
	return []item{
		{Name: "Chai", Category: "Beverages", Price: 18},
		{Name: "Chang", Category: "Beverages", Price: 19},
		{Name: "Ikura", Category: "Seafood", Price: 31},
		{Name: "Aniseed Syrup", Category: "Condiments", Price: 10},
	}
}

func TestApplyFiltersSearchIsCaseInsensitive(t *testing.T) {
	d := itemDescriptor()
	got := ApplyFilters(testItems(), State{Search: "  CHA "}, d)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Chai" || got[1].Name != "Chang" {
		t.Fatalf("search must preserve source order, got %+v", got)
	}
}

func TestApplyFiltersSearchMatchesAnyField(t *testing.T) {
	d := itemDescriptor()
	got := ApplyFilters(testItems(), State{Search: "seafood"}, d)
	if len(got) != 1 || got[0].Name != "Ikura" {
		t.Fatalf("expected category text to match, got %+v", got)
	}
}

func TestApplyFiltersCategoricalAndSearchCombine(t *testing.T) {
	d := itemDescriptor()
	st := State{Search: "ch", Filters: map[string]string{"category": "Beverages"}}
	got := ApplyFilters(testItems(), st, d)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %+v", got)
	}

	st.Filters["category"] = "Seafood"
	got = ApplyFilters(testItems(), st, d)
	if len(got) != 0 {
		t.Fatalf("conditions AND together, got %+v", got)
	}
}

func TestApplyFiltersAllIsNoop(t *testing.T) {
	d := itemDescriptor()
	st := State{Filters: map[string]string{"category": All}}
	got := ApplyFilters(testItems(), st, d)
	if len(got) != len(testItems()) {
		t.Fatalf("All filter must not narrow, got %d rows", len(got))
	}
}

func TestApplySortDirectionsAndStability(t *testing.T) {
	d := itemDescriptor()
	rows := testItems()

	asc := ApplySort(rows, State{SortBy: "price"}, d)
	if asc[0].Name != "Aniseed Syrup" || asc[3].Name != "Ikura" {
		t.Fatalf("unexpected ascending order: %+v", asc)
	}

	desc := ApplySort(rows, State{SortBy: "price", SortDesc: true}, d)
	if desc[0].Name != "Ikura" || desc[3].Name != "Aniseed Syrup" {
		t.Fatalf("unexpected descending order: %+v", desc)
	}

	// The input must stay untouched.
	if rows[0].Name != "Chai" {
		t.Fatalf("ApplySort must sort a copy, input mutated: %+v", rows)
	}
}

func TestApplySortUnknownColumnKeepsOrder(t *testing.T) {
	d := itemDescriptor()
	got := ApplySort(testItems(), State{SortBy: "nonsense"}, d)
	if got[0].Name != "Chai" || got[3].Name != "Aniseed Syrup" {
		t.Fatalf("unknown column must keep order, got %+v", got)
	}
}

func TestPaginateWindows(t *testing.T) {
	st := State{Page: 1, PerPage: 3}
	rows := testItems()

	first := Paginate(rows, st)
	if len(first) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(first))
	}

	st.Page = 2
	second := Paginate(rows, st)
	if len(second) != 1 || second[0].Name != "Aniseed Syrup" {
		t.Fatalf("unexpected second page: %+v", second)
	}

	st.Page = 9
	past := Paginate(rows, st)
	if past == nil || len(past) != 0 {
		t.Fatalf("past-the-end page must be empty, got %#v", past)
	}
}

func TestInMemoryFetchReportsFilteredTotal(t *testing.T) {
	exec := &InMemory[item]{
		Load: func(ctx context.Context) ([]item, error) { return testItems(), nil },
		Desc: itemDescriptor(),
	}

	st := State{Search: "ch", SortBy: "name", Page: 1, PerPage: 2}
	page, err := exec.Fetch(context.Background(), st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Meta.Total != 2 {
		t.Fatalf("total must count the filtered set, got %d", page.Meta.Total)
	}
	if len(page.Rows) != 2 || page.Rows[0].Name != "Chai" {
		t.Fatalf("unexpected page: %+v", page.Rows)
	}
}

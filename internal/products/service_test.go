package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-bi/northlight/internal/listview"
)

type mockRepository struct {
	rows       []Row
	categories []string
	stats      Stats
}

func (m *mockRepository) FetchAll(ctx context.Context) ([]Row, error)      { return m.rows, nil }
func (m *mockRepository) Categories(ctx context.Context) ([]string, error) { return m.categories, nil }
func (m *mockRepository) Stats(ctx context.Context) (Stats, error)         { return m.stats, nil }

func strptr(s string) *string { return &s }

func catalogRows() []Row {
	return []Row{
		{ID: 1, Name: "Chai", CategoryName: strptr("Beverages"), SupplierName: strptr("Exotic Liquids"), UnitPrice: 18, UnitsInStock: 39},
		{ID: 3, Name: "Aniseed Syrup", CategoryName: strptr("Condiments"), SupplierName: strptr("Exotic Liquids"), UnitPrice: 10, UnitsInStock: 0},
		{ID: 5, Name: "Ikura", CategoryName: strptr("Seafood"), SupplierName: strptr("Tokyo Traders"), UnitPrice: 31, UnitsInStock: 6},
		{ID: 6, Name: "Longlife Tofu", CategoryName: nil, SupplierName: nil, UnitPrice: 10, UnitsInStock: 4},
	}
}

func TestDeriveInventoryStatus(t *testing.T) {
	cases := []struct {
		stock int
		want  string
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{9, StatusLowStock},
		{10, StatusInStock},
		{100, StatusInStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveInventoryStatus(tc.stock), "stock %d", tc.stock)
	}
}

func TestFetchAppliesDisplayFallbacks(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	page, err := svc.Fetch(context.Background(), svc.DefaultState())
	require.NoError(t, err)
	require.Len(t, page.Rows, 4)

	var tofu Product
	for _, p := range page.Rows {
		if p.Name == "Longlife Tofu" {
			tofu = p
		}
	}
	assert.Equal(t, "Uncategorized", tofu.CategoryName)
	assert.Equal(t, "Unknown", tofu.SupplierName)
	assert.Equal(t, StatusLowStock, tofu.InventoryStatus)
}

func TestFetchDefaultSortIsNameAscending(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	page, err := svc.Fetch(context.Background(), svc.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, "Aniseed Syrup", page.Rows[0].Name)
	assert.Equal(t, "Longlife Tofu", page.Rows[len(page.Rows)-1].Name)
}

func TestFetchSearchMatchesSupplier(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	st := svc.DefaultState().WithSearch("tokyo")
	page, err := svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Ikura", page.Rows[0].Name)
}

func TestFetchCategoryFilter(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	st := svc.DefaultState().WithFilter(FilterCategory, "Beverages")
	page, err := svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Chai", page.Rows[0].Name)
	assert.Equal(t, 1, page.Meta.Total)
}

func TestFetchFallbackCategoryIsFilterable(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	st := svc.DefaultState().WithFilter(FilterCategory, "Uncategorized")
	page, err := svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Longlife Tofu", page.Rows[0].Name)
}

func TestFetchSortByPriceDescending(t *testing.T) {
	svc := NewService(&mockRepository{rows: catalogRows()}, 12)

	st := listview.State{SortBy: SortByPrice, SortDesc: true, Page: 1, PerPage: 12}
	page, err := svc.Fetch(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "Ikura", page.Rows[0].Name)
}

func TestFetchEmptyCatalog(t *testing.T) {
	svc := NewService(&mockRepository{}, 12)

	page, err := svc.Fetch(context.Background(), svc.DefaultState())
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Zero(t, page.Meta.Total)
	assert.Zero(t, page.Meta.TotalPages)
}

func TestCategoriesPrependsAll(t *testing.T) {
	svc := NewService(&mockRepository{categories: []string{"Beverages", "Seafood"}}, 12)

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{listview.All, "Beverages", "Seafood"}, got)
}

func TestDefaultStateUsesConfiguredPageSize(t *testing.T) {
	svc := NewService(&mockRepository{}, 0)
	assert.Equal(t, DefaultPerPage, svc.DefaultState().PerPage)
	assert.Equal(t, SortByName, svc.DefaultState().SortBy)
	assert.False(t, svc.DefaultState().SortDesc)
}

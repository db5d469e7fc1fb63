package products

import (
	"context"

	"github.com/northlight-bi/northlight/internal/listview"
)

// DefaultPerPage is the catalog's fixed page size.
const DefaultPerPage = 12

// FilterCategory names the categorical filter dimension of the catalog view.
const FilterCategory = "category"

// Service routes the catalog list through the in-memory pipeline.
type Service struct {
	repo Repository
	list *listview.InMemory[Product]
}

var _ listview.Executor[Product] = (*Service)(nil)

// NewService constructs the products service. perPage <= 0 falls back to the
// default page size.
func NewService(repo Repository, perPage int) *Service {
	s := &Service{repo: repo}
	s.list = &listview.InMemory[Product]{Load: s.loadAll, Desc: NewDescriptor(perPage)}
	return s
}

// NewDescriptor wires the catalog columns into the generic pipeline. Search
// matches product, category and supplier names; the category dimension
// filters exactly.
func NewDescriptor(perPage int) listview.Descriptor[Product] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return listview.Descriptor[Product]{
		SearchFields: []func(Product) string{
			func(p Product) string { return p.Name },
			func(p Product) string { return p.CategoryName },
			func(p Product) string { return p.SupplierName },
		},
		Categorical: map[string]func(Product) string{
			FilterCategory: func(p Product) string { return p.CategoryName },
		},
		Columns: map[string]func(a, b Product) bool{
			SortByName:     func(a, b Product) bool { return a.Name < b.Name },
			SortByCategory: func(a, b Product) bool { return a.CategoryName < b.CategoryName },
			SortBySupplier: func(a, b Product) bool { return a.SupplierName < b.SupplierName },
			SortByPrice:    func(a, b Product) bool { return a.UnitPrice < b.UnitPrice },
			SortByStock:    func(a, b Product) bool { return a.UnitsInStock < b.UnitsInStock },
		},
		SortBy:  SortByName,
		PerPage: perPage,
	}
}

// DefaultState is the catalog's initial view state.
func (s *Service) DefaultState() listview.State {
	return s.list.Desc.DefaultState()
}

// Fetch resolves a view state into one catalog page.
func (s *Service) Fetch(ctx context.Context, st listview.State) (listview.Page[Product], error) {
	return s.list.Fetch(ctx, st)
}

func (s *Service) loadAll(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProduct(row))
	}
	return out, nil
}

// Categories lists the filter dropdown values, the All sentinel first.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	names, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{listview.All}, names...), nil
}

// Stats returns the catalog-wide summary block.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func toProduct(row Row) Product {
	category := "Uncategorized"
	if row.CategoryName != nil && *row.CategoryName != "" {
		category = *row.CategoryName
	}
	supplier := "Unknown"
	if row.SupplierName != nil && *row.SupplierName != "" {
		supplier = *row.SupplierName
	}
	return Product{
		ID:              row.ID,
		Name:            row.Name,
		CategoryName:    category,
		SupplierName:    supplier,
		UnitPrice:       row.UnitPrice,
		UnitsInStock:    row.UnitsInStock,
		InventoryStatus: DeriveInventoryStatus(row.UnitsInStock),
	}
}

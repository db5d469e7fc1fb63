package customers

import (
	"context"

	"github.com/northlight-bi/northlight/internal/analytics"
	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/shared"
)

// DefaultPerPage is the directory's fixed page size.
const DefaultPerPage = 12

// Service routes the directory list through the in-memory pipeline and
// derives each customer's segment from its aggregates.
type Service struct {
	repo         Repository
	list         *listview.InMemory[Customer]
	vipThreshold float64
}

var _ listview.Executor[Customer] = (*Service)(nil)

// NewService constructs the customers service. perPage and vipThreshold fall
// back to their defaults when unset.
func NewService(repo Repository, perPage int, vipThreshold float64) *Service {
	if vipThreshold <= 0 {
		vipThreshold = analytics.DefaultVIPThreshold
	}
	s := &Service{repo: repo, vipThreshold: vipThreshold}
	s.list = &listview.InMemory[Customer]{Load: s.loadAll, Desc: NewDescriptor(perPage)}
	return s
}

// NewDescriptor wires the directory columns into the generic pipeline.
// Search matches company, contact, city and country; country, city and
// segment filter exactly.
func NewDescriptor(perPage int) listview.Descriptor[Customer] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return listview.Descriptor[Customer]{
		SearchFields: []func(Customer) string{
			func(c Customer) string { return c.CompanyName },
			func(c Customer) string { return c.ContactName },
			func(c Customer) string { return c.City },
			func(c Customer) string { return c.Country },
		},
		Categorical: map[string]func(Customer) string{
			FilterCountry: func(c Customer) string { return c.Country },
			FilterCity:    func(c Customer) string { return c.City },
			FilterSegment: func(c Customer) string { return c.Segment },
		},
		Columns: map[string]func(a, b Customer) bool{
			SortByCompany: func(a, b Customer) bool { return a.CompanyName < b.CompanyName },
			SortByContact: func(a, b Customer) bool { return a.ContactName < b.ContactName },
			SortByCity:    func(a, b Customer) bool { return a.City < b.City },
			SortByCountry: func(a, b Customer) bool { return a.Country < b.Country },
			SortByOrders:  func(a, b Customer) bool { return a.TotalOrders < b.TotalOrders },
			SortByRevenue: func(a, b Customer) bool { return a.TotalRevenue < b.TotalRevenue },
			SortBySegment: func(a, b Customer) bool { return a.Segment < b.Segment },
		},
		SortBy:  SortByCompany,
		PerPage: perPage,
	}
}

// DefaultState is the directory's initial view state.
func (s *Service) DefaultState() listview.State {
	return s.list.Desc.DefaultState()
}

// Fetch resolves a view state into one directory page.
func (s *Service) Fetch(ctx context.Context, st listview.State) (listview.Page[Customer], error) {
	return s.list.Fetch(ctx, st)
}

func (s *Service) loadAll(ctx context.Context) ([]Customer, error) {
	rows, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.toCustomer(row))
	}
	return out, nil
}

// Countries lists the country dropdown values, the All sentinel first.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	values, err := s.repo.Countries(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{listview.All}, values...), nil
}

// Cities lists the city dropdown values, the All sentinel first.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	values, err := s.repo.Cities(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{listview.All}, values...), nil
}

// Detail resolves one customer with its full order history, newest first.
func (s *Service) Detail(ctx context.Context, id string) (*Detail, error) {
	row, err := s.repo.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &Detail{
		ID:          row.ID,
		CompanyName: row.CompanyName,
		ContactName: row.ContactName,
		City:        row.City,
		Country:     row.Country,
		Orders:      make([]HistoryOrder, 0, len(row.Orders)),
	}
	for _, order := range row.Orders {
		status := analytics.StatusPending
		if order.ShippedDate != nil {
			status = analytics.StatusShipped
		}
		detail.Orders = append(detail.Orders, HistoryOrder{
			OrderID:     order.OrderID,
			OrderDate:   shared.FormatDate(order.OrderDate),
			ShippedDate: shared.FormatDatePtr(order.ShippedDate),
			TotalAmount: order.TotalAmount,
			Status:      status,
		})
	}
	return detail, nil
}

// Stats returns the directory-wide summary block. The per-customer average
// is zero when there are no customers.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	row, err := s.repo.Stats(ctx, s.vipThreshold)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalCustomers:        row.TotalCustomers,
		TotalRevenue:          row.TotalRevenue,
		AvgRevenuePerCustomer: shared.SafeDiv(row.TotalRevenue, float64(row.TotalCustomers)),
		VIPCustomers:          row.VIPCustomers,
		NewCustomers:          row.NewCustomers,
		CountriesServed:       row.CountriesServed,
	}, nil
}

func (s *Service) toCustomer(row Row) Customer {
	lastOrder := NeverOrdered
	if row.LastOrderDate != nil {
		lastOrder = shared.FormatDate(*row.LastOrderDate)
	}
	return Customer{
		ID:            row.ID,
		CompanyName:   row.CompanyName,
		ContactName:   row.ContactName,
		City:          row.City,
		Country:       row.Country,
		TotalOrders:   row.TotalOrders,
		TotalRevenue:  row.TotalRevenue,
		LastOrderDate: lastOrder,
		Segment:       analytics.ClassifySegment(row.TotalOrders, row.TotalRevenue, s.vipThreshold),
	}
}

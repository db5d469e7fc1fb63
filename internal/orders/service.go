package orders

import (
	"context"

	"github.com/northlight-bi/northlight/internal/analytics"
	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/shared"
)

// DefaultPerPage is the orders list page size.
const DefaultPerPage = 10

// Service derives display rows from the repository's raw aggregates.
type Service struct {
	repo Repository
}

// The push-down repository satisfies the same list contract as the
// in-memory entities.
var _ listview.Executor[Order] = (*Service)(nil)

// NewService wires the orders repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// DefaultState is the initial orders view: newest orders first.
func DefaultState(perPage int) listview.State {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return listview.State{SortBy: SortByID, SortDesc: true, Page: 1, PerPage: perPage}
}

func toOrder(row SummaryRow) Order {
	status := analytics.StatusPending
	if row.ShippedDate != nil {
		status = analytics.StatusShipped
	}
	return Order{
		ID:           row.ID,
		CustomerName: row.CustomerName,
		EmployeeName: row.EmployeeName,
		OrderDate:    shared.FormatDate(row.OrderDate),
		ShippedDate:  shared.FormatDatePtr(row.ShippedDate),
		Status:       status,
		TotalRevenue: row.TotalRevenue,
	}
}

// Fetch resolves the view state by re-issuing the parameterized query
// against the store.
func (s *Service) Fetch(ctx context.Context, st listview.State) (listview.Page[Order], error) {
	rows, total, err := s.repo.List(ctx, st)
	if err != nil {
		return listview.Page[Order]{}, err
	}
	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOrder(row))
	}
	return listview.Page[Order]{
		Rows: out,
		Meta: shared.NewPagination(st.Page, st.PerPage, total),
	}, nil
}

// Detail loads one order with its lines and the order-level revenue total,
// which is distinct from freight. A missing id yields shared.ErrNotFound.
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	row, err := s.repo.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &Detail{
		Order:       toOrder(row.SummaryRow),
		Items:       make([]Line, 0, len(row.Lines)),
		Freight:     row.Freight,
		ShipCity:    row.ShipCity,
		ShipCountry: row.ShipCountry,
	}
	var total float64
	for _, line := range row.Lines {
		lineTotal := line.UnitPrice * float64(line.Quantity) * (1 - line.Discount)
		total += lineTotal
		detail.Items = append(detail.Items, Line{
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Discount:    line.Discount,
			Total:       lineTotal,
		})
	}
	detail.TotalRevenue = total
	return detail, nil
}

// Stats computes the orders KPI aggregate.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	row, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalOrders:       row.TotalOrders,
		TotalRevenue:      row.TotalRevenue,
		AverageOrderValue: shared.SafeDiv(row.TotalRevenue, float64(row.TotalOrders)),
		ShippedOrders:     row.ShippedOrders,
		PendingOrders:     row.TotalOrders - row.ShippedOrders,
	}, nil
}

package analytics

import (
	"context"
	"sort"

	"github.com/northlight-bi/northlight/internal/shared"
)

// RevenueTrend returns monthly revenue and order counts ascending by month.
func (s *Service) RevenueTrend(ctx context.Context, rng shared.DateRange) ([]TrendPoint, error) {
	rows, err := s.repo.MonthlyRevenue(ctx, rng)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TrendPoint{Month: row.Month, Revenue: row.Revenue, OrderCount: row.OrderCount})
	}
	return points, nil
}

// OrderVolume returns monthly order counts over the full history.
func (s *Service) OrderVolume(ctx context.Context) ([]OrderVolumePoint, error) {
	return s.repo.MonthlyOrderVolume(ctx)
}

// CategoryProfitability models profit per category from revenue and the
// configured COGS ratio, revenue descending.
func (s *Service) CategoryProfitability(ctx context.Context, rng shared.DateRange) ([]CategoryProfit, error) {
	rows, err := s.repo.CategoryRevenue(ctx, rng)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryProfit, 0, len(rows))
	for _, row := range rows {
		cost := row.Revenue * s.opts.COGSRatio
		out = append(out, CategoryProfit{
			Category:     row.Category,
			Revenue:      row.Revenue,
			Cost:         cost,
			ProfitMargin: shared.SafeDiv(row.Revenue-cost, row.Revenue) * 100,
			TotalUnits:   row.Units,
		})
	}
	return out, nil
}

// CustomerSegments classifies every customer, including those with no
// orders, and rolls the segments up into summaries. With at least one
// customer all three segments are reported so the partition stays visible
// even when a segment is empty.
func (s *Service) CustomerSegments(ctx context.Context, rng shared.DateRange) ([]SegmentSummary, error) {
	rows, err := s.repo.CustomerAggregates(ctx, rng)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []SegmentSummary{}, nil
	}
	totals := map[string]*SegmentSummary{}
	for _, seg := range []string{SegmentNew, SegmentRegular, SegmentVIP} {
		totals[seg] = &SegmentSummary{Segment: seg}
	}
	for _, row := range rows {
		seg := totals[ClassifySegment(row.Orders, row.Revenue, s.opts.VIPThreshold)]
		seg.Count++
		seg.TotalRevenue += row.Revenue
	}
	out := make([]SegmentSummary, 0, 3)
	for _, name := range []string{SegmentNew, SegmentRegular, SegmentVIP} {
		seg := totals[name]
		seg.AvgRevenue = shared.SafeDiv(seg.TotalRevenue, float64(seg.Count))
		out = append(out, *seg)
	}
	return out, nil
}

// TopCustomers ranks customers by lifetime revenue, approximating CLV as
// average revenue per order.
func (s *Service) TopCustomers(ctx context.Context, rng shared.DateRange, limit int) ([]TopCustomer, error) {
	rows, err := s.repo.CustomerAggregates(ctx, rng)
	if err != nil {
		return nil, err
	}
	sorted := make([]CustomerAggregateRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Revenue > sorted[j].Revenue })
	if limit <= 0 {
		limit = DefaultTopCustomers
	}
	if limit > len(sorted) {
		limit = len(sorted)
	}
	out := make([]TopCustomer, 0, limit)
	for _, row := range sorted[:limit] {
		orders := row.Orders
		if orders < 1 {
			orders = 1
		}
		out = append(out, TopCustomer{
			Name:    row.Name,
			Revenue: row.Revenue,
			Orders:  row.Orders,
			CLV:     row.Revenue / float64(orders),
		})
	}
	return out, nil
}

// EmployeePerformance reports sales per employee with a score relative to
// the top seller. Employees without orders are excluded.
func (s *Service) EmployeePerformance(ctx context.Context, rng shared.DateRange) ([]EmployeeStat, error) {
	rows, err := s.repo.EmployeeSales(ctx, rng)
	if err != nil {
		return nil, err
	}
	var maxSales float64
	for _, row := range rows {
		if row.TotalSales > maxSales {
			maxSales = row.TotalSales
		}
	}
	out := make([]EmployeeStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, EmployeeStat{
			Name:             row.Name,
			TotalSales:       row.TotalSales,
			Orders:           row.Orders,
			AvgOrderValue:    shared.SafeDiv(row.TotalSales, float64(row.Orders)),
			PerformanceScore: shared.SafeDiv(row.TotalSales, maxSales) * 100,
		})
	}
	return out, nil
}

// SeasonalPatterns returns quarterly revenue chronologically with growth
// against the preceding quarter: 0 for the first quarter or when the
// previous quarter had no revenue.
func (s *Service) SeasonalPatterns(ctx context.Context, rng shared.DateRange) ([]SeasonPoint, error) {
	rows, err := s.repo.QuarterlyRevenue(ctx, rng)
	if err != nil {
		return nil, err
	}
	out := make([]SeasonPoint, 0, len(rows))
	for i, row := range rows {
		point := SeasonPoint{Year: row.Year, Quarter: row.Quarter, Revenue: row.Revenue}
		if i > 0 {
			prev := rows[i-1].Revenue
			point.GrowthRate = shared.SafeDiv(row.Revenue-prev, prev) * 100
		}
		out = append(out, point)
	}
	return out, nil
}

// CountrySales aggregates revenue by order ship country, descending.
func (s *Service) CountrySales(ctx context.Context, rng shared.DateRange, limit int) ([]CountrySales, error) {
	if limit <= 0 {
		limit = DefaultTopCountries
	}
	return s.repo.CountryRevenue(ctx, rng, limit)
}

// TopProductsByRevenue ranks products by summed line revenue.
func (s *Service) TopProductsByRevenue(ctx context.Context, rng shared.DateRange, limit int) ([]ProductRevenueRank, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	return s.repo.ProductRevenue(ctx, rng, limit)
}

// TopProductsByQuantity ranks products by units sold.
func (s *Service) TopProductsByQuantity(ctx context.Context, rng shared.DateRange, limit int) ([]ProductQuantityRank, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}
	rows, err := s.repo.ProductQuantity(ctx, rng, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ProductQuantityRank, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProductQuantityRank{Name: row.Name, Quantity: row.Quantity})
	}
	return out, nil
}

// OrderStatusBreakdown splits orders in range into shipped and pending.
func (s *Service) OrderStatusBreakdown(ctx context.Context, rng shared.DateRange) ([]StatusCount, error) {
	total, err := s.repo.OrderCount(ctx, rng)
	if err != nil {
		return nil, err
	}
	shipped, err := s.repo.ShippedOrderCount(ctx, rng)
	if err != nil {
		return nil, err
	}
	return []StatusCount{
		{Status: StatusShipped, Count: shipped},
		{Status: StatusPending, Count: total - shipped},
	}, nil
}

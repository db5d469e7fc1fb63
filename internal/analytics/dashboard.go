package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/northlight-bi/northlight/internal/shared"
)

// The dashboard shows a shorter customer leaderboard than the standalone
// CLV report.
const dashboardTopCustomers = 5

// Dashboard assembles every panel of the main dashboard for one date range.
// The panels are independent units of work and run concurrently; a failure
// in any one fails the whole call without corrupting the others.
func (s *Service) Dashboard(ctx context.Context, rng shared.DateRange) (*Dashboard, error) {
	var out Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tiles, err := s.kpiTiles(ctx, rng)
		if err == nil {
			out.KPIs = tiles
		}
		return err
	})
	g.Go(func() error {
		points, err := s.RevenueTrend(ctx, rng)
		if err == nil {
			out.RevenueTrend = points
		}
		return err
	})
	g.Go(func() error {
		ranks, err := s.TopProductsByRevenue(ctx, rng, DefaultTopProducts)
		if err == nil {
			out.TopProducts = ranks
		}
		return err
	})
	g.Go(func() error {
		categories, err := s.CategoryProfitability(ctx, rng)
		if err == nil {
			out.CategoryPerformance = categories
		}
		return err
	})
	g.Go(func() error {
		customers, err := s.TopCustomers(ctx, rng, dashboardTopCustomers)
		if err == nil {
			out.TopCustomers = customers
		}
		return err
	})
	g.Go(func() error {
		employees, err := s.EmployeePerformance(ctx, rng)
		if err == nil {
			out.EmployeePerformance = employees
		}
		return err
	})
	g.Go(func() error {
		countries, err := s.CountrySales(ctx, rng, DefaultTopCountries)
		if err == nil {
			out.GeoSales = countries
		}
		return err
	})
	g.Go(func() error {
		statuses, err := s.OrderStatusBreakdown(ctx, rng)
		if err == nil {
			out.OrderStatuses = statuses
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// kpiTiles resolves the four headline tiles. The reads are sequential to keep
// a reproducible query order within the unit of work.
func (s *Service) kpiTiles(ctx context.Context, rng shared.DateRange) ([]KPITile, error) {
	revenue, err := s.repo.TotalRevenue(ctx, rng)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.OrderCount(ctx, rng)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.OrderingCustomerCount(ctx, rng)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ProductCount(ctx)
	if err != nil {
		return nil, err
	}
	return []KPITile{
		{Title: "Total Revenue", Value: shared.FormatCurrency(revenue), Icon: "dollar-sign", Color: "text-green-500"},
		{Title: "Total Orders", Value: shared.FormatCount(orders), Icon: "shopping-cart", Color: "text-blue-500"},
		{Title: "Total Customers", Value: shared.FormatCount(customers), Icon: "users", Color: "text-purple-500"},
		{Title: "Total Products", Value: shared.FormatCount(products), Icon: "package", Color: "text-orange-500"},
	}, nil
}

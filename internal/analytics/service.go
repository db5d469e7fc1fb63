package analytics

import (
	"context"

	"github.com/northlight-bi/northlight/internal/shared"
)

// Raw row shapes returned by the data access layer. Each report's derivation
// from them happens in the service so it stays testable without a store.
type (
	// MonthlyRevenueRow is one month of summed line revenue.
	MonthlyRevenueRow struct {
		Month      string
		Revenue    float64
		OrderCount int
	}

	// CategoryRevenueRow carries summed revenue and line-item row counts per
	// category, revenue descending.
	CategoryRevenueRow struct {
		Category string
		Revenue  float64
		Units    int
	}

	// CustomerAggregateRow is the left-join aggregate for one customer;
	// customers with no orders appear with zero counts.
	CustomerAggregateRow struct {
		CustomerID string
		Name       string
		Orders     int
		Revenue    float64
	}

	// EmployeeSalesRow is the inner-join sales aggregate for one employee,
	// total sales descending.
	EmployeeSalesRow struct {
		Name       string
		TotalSales float64
		Orders     int
	}

	// QuarterRevenueRow is one calendar quarter of revenue in chronological
	// order.
	QuarterRevenueRow struct {
		Year    int
		Quarter int
		Revenue float64
	}

	// ProductQuantityRow is summed units sold per product.
	ProductQuantityRow struct {
		Name     string
		Quantity int
	}
)

// Repository is the read-only query surface the aggregation engine depends
// on. All revenue figures share the line revenue formula
// unit_price * quantity * (1 - discount).
type Repository interface {
	MonthlyRevenue(ctx context.Context, rng shared.DateRange) ([]MonthlyRevenueRow, error)
	MonthlyOrderVolume(ctx context.Context) ([]OrderVolumePoint, error)
	CategoryRevenue(ctx context.Context, rng shared.DateRange) ([]CategoryRevenueRow, error)
	CustomerAggregates(ctx context.Context, rng shared.DateRange) ([]CustomerAggregateRow, error)
	EmployeeSales(ctx context.Context, rng shared.DateRange) ([]EmployeeSalesRow, error)
	QuarterlyRevenue(ctx context.Context, rng shared.DateRange) ([]QuarterRevenueRow, error)
	CountryRevenue(ctx context.Context, rng shared.DateRange, limit int) ([]CountrySales, error)
	ProductRevenue(ctx context.Context, rng shared.DateRange, limit int) ([]ProductRevenueRank, error)
	ProductQuantity(ctx context.Context, rng shared.DateRange, limit int) ([]ProductQuantityRow, error)
	TotalRevenue(ctx context.Context, rng shared.DateRange) (float64, error)
	OrderCount(ctx context.Context, rng shared.DateRange) (int, error)
	ShippedOrderCount(ctx context.Context, rng shared.DateRange) (int, error)
	OrderingCustomerCount(ctx context.Context, rng shared.DateRange) (int, error)
	ProductCount(ctx context.Context) (int, error)
}

// Default result sizes for the ranked reports.
const (
	DefaultTopProducts  = 5
	DefaultTopCustomers = 10
	DefaultTopCountries = 10
)

// Business defaults used when Options leaves a knob unset.
const (
	DefaultVIPThreshold = 5000
	DefaultCOGSRatio    = 0.70
)

// Options carries the tunable business assumptions behind the reports.
type Options struct {
	// VIPThreshold is the lifetime revenue above which a customer is VIP.
	VIPThreshold float64
	// COGSRatio models cost of goods sold as a fraction of revenue.
	COGSRatio float64
}

func (o Options) withDefaults() Options {
	if o.VIPThreshold <= 0 {
		o.VIPThreshold = DefaultVIPThreshold
	}
	if o.COGSRatio <= 0 {
		o.COGSRatio = DefaultCOGSRatio
	}
	return o
}

// Service computes every analytical report from the repository's aggregates.
// Results are recomputed on every call; nothing is cached.
type Service struct {
	repo Repository
	opts Options
}

// NewService wires a Repository with report options.
func NewService(repo Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts.withDefaults()}
}

// ClassifySegment maps a customer's aggregate order count and lifetime
// revenue to its segment. The mapping is exhaustive and mutually exclusive.
func ClassifySegment(orders int, revenue, vipThreshold float64) string {
	switch {
	case orders == 0:
		return SegmentNew
	case revenue > vipThreshold:
		return SegmentVIP
	default:
		return SegmentRegular
	}
}

package analytics

// Customer segments partition the customer set: New means no orders yet, VIP
// means lifetime revenue above the configured threshold, Regular is the rest.
const (
	SegmentNew     = "New"
	SegmentRegular = "Regular"
	SegmentVIP     = "VIP"
)

// Order statuses are derived per read from the shipped date.
const (
	StatusShipped = "Shipped"
	StatusPending = "Pending"
)

// TrendPoint is one calendar month of revenue. Months with no orders are
// omitted, not zero-filled.
type TrendPoint struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
}

// CategoryProfit reports modeled profitability per product category. Cost is
// revenue times the configured COGS ratio; the schema carries no per-product
// cost data.
type CategoryProfit struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	ProfitMargin float64 `json:"profit_margin"`
	TotalUnits   int     `json:"total_units"`
}

// SegmentSummary aggregates one customer segment.
type SegmentSummary struct {
	Segment      string  `json:"segment"`
	Count        int     `json:"count"`
	AvgRevenue   float64 `json:"avg_revenue"`
	TotalRevenue float64 `json:"total_revenue"`
}

// TopCustomer ranks a customer by lifetime revenue. CLV approximates customer
// lifetime value as average revenue per order.
type TopCustomer struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	CLV     float64 `json:"clv"`
}

// EmployeeStat reports sales performance per employee. PerformanceScore is
// relative to the best performer in the same result set, not an absolute
// metric.
type EmployeeStat struct {
	Name             string  `json:"name"`
	TotalSales       float64 `json:"total_sales"`
	Orders           int     `json:"orders"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	PerformanceScore float64 `json:"performance_score"`
}

// SeasonPoint is one calendar quarter of revenue with growth against the
// immediately preceding quarter in the sequence.
type SeasonPoint struct {
	Year       int     `json:"year"`
	Quarter    int     `json:"quarter"`
	Revenue    float64 `json:"revenue"`
	GrowthRate float64 `json:"growth_rate"`
}

// CountrySales aggregates revenue by order ship country.
type CountrySales struct {
	Country string  `json:"country"`
	Revenue float64 `json:"revenue"`
}

// ProductRevenueRank ranks a product by revenue.
type ProductRevenueRank struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// ProductQuantityRank ranks a product by units sold. The revenue and quantity
// rankings can disagree, so both are first-class reports.
type ProductQuantityRank struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderVolumePoint is one calendar month of order counts across the full
// history, regardless of any date filter.
type OrderVolumePoint struct {
	Month  string `json:"month"`
	Orders int    `json:"orders"`
}

// StatusCount is one slice of the order status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// KPITile is the presentation contract for one dashboard tile. Value carries
// the formatted string; chart payloads elsewhere keep raw floats.
type KPITile struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Dashboard bundles everything the main dashboard screen renders for one
// date range.
type Dashboard struct {
	KPIs                []KPITile            `json:"kpis"`
	RevenueTrend        []TrendPoint         `json:"revenue_trend"`
	TopProducts         []ProductRevenueRank `json:"top_products"`
	CategoryPerformance []CategoryProfit     `json:"category_performance"`
	TopCustomers        []TopCustomer        `json:"top_customers"`
	EmployeePerformance []EmployeeStat       `json:"employee_performance"`
	GeoSales            []CountrySales       `json:"geo_sales"`
	OrderStatuses       []StatusCount        `json:"order_statuses"`
}

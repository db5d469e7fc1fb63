package orders

import "time"

// Sortable columns accepted by the push-down list query.
const (
	SortByID           = "order_id"
	SortByCustomer     = "customer_name"
	SortByEmployee     = "employee_name"
	SortByOrderDate    = "order_date"
	SortByStatus       = "status"
	SortByTotalRevenue = "total_revenue"
)

// Order is one row of the orders list view. Dates are pre-formatted for
// display; an order that has not shipped keeps a nil shipped date.
type Order struct {
	ID           int64   `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	EmployeeName string  `json:"employee_name"`
	OrderDate    string  `json:"order_date"`
	ShippedDate  *string `json:"shipped_date"`
	Status       string  `json:"status"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Line is one order line with its discounted revenue.
type Line struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// Detail is the full drill-down for one order. TotalRevenue sums the line
// revenues and is distinct from the freight cost.
type Detail struct {
	Order
	Items       []Line  `json:"items"`
	Freight     float64 `json:"freight"`
	ShipCity    string  `json:"ship_city"`
	ShipCountry string  `json:"ship_country"`
}

// Stats is the fixed-shape KPI aggregate for the orders screen.
type Stats struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	ShippedOrders     int     `json:"shipped_orders"`
	PendingOrders     int     `json:"pending_orders"`
}

// Raw rows scanned by the repository, before display formatting.
type (
	// SummaryRow is one aggregated order row from the push-down query.
	SummaryRow struct {
		ID           int64
		CustomerName string
		EmployeeName string
		OrderDate    time.Time
		ShippedDate  *time.Time
		TotalRevenue float64
	}

	// LineRow is one order line as stored.
	LineRow struct {
		ProductName string
		UnitPrice   float64
		Quantity    int
		Discount    float64
	}

	// DetailRow is the order header joined with its lines.
	DetailRow struct {
		SummaryRow
		Freight     float64
		ShipCity    string
		ShipCountry string
		Lines       []LineRow
	}

	// StatsRow carries the stats aggregates before derived fields.
	StatsRow struct {
		TotalOrders   int
		TotalRevenue  float64
		ShippedOrders int
	}
)

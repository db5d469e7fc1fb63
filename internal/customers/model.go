package customers

import "time"

// Sortable directory columns.
const (
	SortByCompany = "company_name"
	SortByContact = "contact_name"
	SortByCity    = "city"
	SortByCountry = "country"
	SortByOrders  = "total_orders"
	SortByRevenue = "total_revenue"
	SortBySegment = "customer_segment"
)

// Filter dimensions of the directory view.
const (
	FilterCountry = "country"
	FilterCity    = "city"
	FilterSegment = "segment"
)

// NeverOrdered is the display value for customers without a single order.
const NeverOrdered = "Never"

// Customer is one directory row as the list view renders it, aggregates
// included.
type Customer struct {
	ID            string  `json:"customer_id"`
	CompanyName   string  `json:"company_name"`
	ContactName   string  `json:"contact_name"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	LastOrderDate string  `json:"last_order_date"`
	Segment       string  `json:"customer_segment"`
}

// HistoryOrder is one order in a customer's purchase history.
type HistoryOrder struct {
	OrderID     int64   `json:"order_id"`
	OrderDate   string  `json:"order_date"`
	ShippedDate *string `json:"shipped_date"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// Detail is the customer header plus full order history, newest first.
type Detail struct {
	ID          string         `json:"customer_id"`
	CompanyName string         `json:"company_name"`
	ContactName string         `json:"contact_name"`
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Orders      []HistoryOrder `json:"orders"`
}

// Stats is the directory-wide summary block.
type Stats struct {
	TotalCustomers        int     `json:"total_customers"`
	TotalRevenue          float64 `json:"total_revenue"`
	AvgRevenuePerCustomer float64 `json:"avg_revenue_per_customer"`
	VIPCustomers          int     `json:"vip_customers"`
	NewCustomers          int     `json:"new_customers"`
	CountriesServed       int     `json:"countries_served"`
}

// Row is a customer with order aggregates as scanned from the store.
type Row struct {
	ID            string
	CompanyName   string
	ContactName   string
	City          string
	Country       string
	TotalOrders   int
	TotalRevenue  float64
	LastOrderDate *time.Time
}

// HistoryRow is one history order as scanned from the store.
type HistoryRow struct {
	OrderID     int64
	OrderDate   time.Time
	ShippedDate *time.Time
	TotalAmount float64
}

// DetailRow is a customer header with raw history rows.
type DetailRow struct {
	ID          string
	CompanyName string
	ContactName string
	City        string
	Country     string
	Orders      []HistoryRow
}

// StatsRow holds the stats counters computed in the store. The average is
// derived in the service.
type StatsRow struct {
	TotalCustomers  int
	TotalRevenue    float64
	VIPCustomers    int
	NewCustomers    int
	CountriesServed int
}

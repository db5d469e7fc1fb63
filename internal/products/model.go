package products

// Inventory status labels derived from the stock level.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusInStock    = "In Stock"
)

// lowStockThreshold marks the stock level below which a product counts as
// running low.
const lowStockThreshold = 10

// Sortable catalog columns.
const (
	SortByName     = "product_name"
	SortByCategory = "category_name"
	SortBySupplier = "supplier_name"
	SortByPrice    = "unit_price"
	SortByStock    = "units_in_stock"
)

// Product is one catalog row as the list view renders it. Category and
// supplier carry display fallbacks, never empty strings.
type Product struct {
	ID              int64   `json:"product_id"`
	Name            string  `json:"product_name"`
	CategoryName    string  `json:"category_name"`
	SupplierName    string  `json:"supplier_name"`
	UnitPrice       float64 `json:"unit_price"`
	UnitsInStock    int     `json:"units_in_stock"`
	InventoryStatus string  `json:"inventory_status"`
}

// Stats is the catalog-wide summary block.
type Stats struct {
	TotalProducts       int     `json:"total_products"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	LowStockCount       int     `json:"low_stock_products"`
	OutOfStockCount     int     `json:"out_of_stock_products"`
	CategoriesCount     int     `json:"categories_count"`
}

// Row is a product as scanned from the store, before display fallbacks.
type Row struct {
	ID           int64
	Name         string
	CategoryName *string
	SupplierName *string
	UnitPrice    float64
	UnitsInStock int
}

// DeriveInventoryStatus maps a stock level onto its status label.
func DeriveInventoryStatus(unitsInStock int) string {
	switch {
	case unitsInStock == 0:
		return StatusOutOfStock
	case unitsInStock < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

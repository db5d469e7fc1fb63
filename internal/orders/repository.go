package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/platform/db"
	"github.com/northlight-bi/northlight/internal/shared"
)

// Repository is the push-down view of the orders tables: the list query is
// rebuilt from the view state instead of filtering in memory.
type Repository interface {
	List(ctx context.Context, st listview.State) ([]SummaryRow, int, error)
	Detail(ctx context.Context, id int64) (*DetailRow, error)
	Stats(ctx context.Context) (StatsRow, error)
}

// sortColumns whitelists the ORDER BY targets reachable from a view state.
var sortColumns = map[string]string{
	SortByID:           "o.id",
	SortByCustomer:     "c.company_name",
	SortByEmployee:     "employee_name",
	SortByOrderDate:    "o.order_date",
	SortByStatus:       "(o.shipped_date IS NOT NULL)",
	SortByTotalRevenue: "total_revenue",
}

type repository struct {
	pool *pgxpool.Pool
	run  db.Runner
}

// NewRepository constructs the orders repository with a per-query timeout.
func NewRepository(pool *pgxpool.Pool, queryTimeout time.Duration) Repository {
	return &repository{pool: pool, run: db.Runner{Timeout: queryTimeout}}
}

// buildFilters renders the WHERE conditions shared by the list and count
// queries.
func buildFilters(st listview.State) (conditions []string, args []any) {
	argPos := 1
	if q := strings.TrimSpace(st.Search); q != "" {
		pattern := "%" + q + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(o.id::text ILIKE $%d OR c.company_name ILIKE $%d OR (e.first_name || ' ' || e.last_name) ILIKE $%d)",
			argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}
	switch st.Filter("status") {
	case "Shipped":
		conditions = append(conditions, "o.shipped_date IS NOT NULL")
	case "Pending":
		conditions = append(conditions, "o.shipped_date IS NULL")
	}
	return conditions, args
}

func (r *repository) List(ctx context.Context, st listview.State) ([]SummaryRow, int, error) {
	conditions, args := buildFilters(st)
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN employees e ON e.id = o.employee_id` + whereClause

	var total int
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	})
	if err != nil {
		return nil, 0, err
	}

	orderExpr, ok := sortColumns[st.SortBy]
	if !ok {
		orderExpr = sortColumns[SortByID]
	}
	direction := "ASC"
	if st.SortDesc {
		direction = "DESC"
	}

	perPage := st.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := st.Page
	if page < 1 {
		page = 1
	}

	listQuery := fmt.Sprintf(`
		SELECT o.id,
		       c.company_name,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       o.order_date,
		       o.shipped_date,
		       SUM(oi.unit_price * oi.quantity * (1 - oi.discount)) AS total_revenue
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN employees e ON e.id = o.employee_id
		JOIN order_items oi ON oi.order_id = o.id
		%s
		GROUP BY o.id, c.company_name, employee_name
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderExpr, direction, len(args)+1, len(args)+2)
	listArgs := append(append([]any{}, args...), perPage, (page-1)*perPage)

	var rows []SummaryRow
	err = r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, listQuery, listArgs...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row SummaryRow
			if err := result.Scan(&row.ID, &row.CustomerName, &row.EmployeeName, &row.OrderDate, &row.ShippedDate, &row.TotalRevenue); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Detail(ctx context.Context, id int64) (*DetailRow, error) {
	const query = `
		SELECT o.id,
		       c.company_name,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       o.order_date,
		       o.shipped_date,
		       o.freight,
		       o.ship_city,
		       o.ship_country,
		       p.name,
		       oi.unit_price,
		       oi.quantity,
		       oi.discount
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		JOIN employees e ON e.id = o.employee_id
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.id = $1`

	var detail *DetailRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		detail = nil
		result, err := r.pool.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var header SummaryRow
			var line LineRow
			var freight float64
			var shipCity, shipCountry string
			if err := result.Scan(&header.ID, &header.CustomerName, &header.EmployeeName,
				&header.OrderDate, &header.ShippedDate, &freight, &shipCity, &shipCountry,
				&line.ProductName, &line.UnitPrice, &line.Quantity, &line.Discount); err != nil {
				return err
			}
			if detail == nil {
				detail = &DetailRow{
					SummaryRow:  header,
					Freight:     freight,
					ShipCity:    shipCity,
					ShipCountry: shipCountry,
				}
			}
			detail.Lines = append(detail.Lines, line)
		}
		if err := result.Err(); err != nil {
			return err
		}
		if detail == nil {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (r *repository) Stats(ctx context.Context) (StatsRow, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM orders),
		       (SELECT COALESCE(SUM(unit_price * quantity * (1 - discount)), 0) FROM order_items),
		       (SELECT COUNT(*) FROM orders WHERE shipped_date IS NOT NULL)`

	var stats StatsRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query).Scan(&stats.TotalOrders, &stats.TotalRevenue, &stats.ShippedOrders)
	})
	if err != nil {
		return StatsRow{}, err
	}
	return stats, nil
}

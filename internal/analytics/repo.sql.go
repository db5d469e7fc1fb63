package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northlight-bi/northlight/internal/platform/db"
	"github.com/northlight-bi/northlight/internal/shared"
)

// lineRevenue is the single money formula shared by every aggregate query.
const lineRevenue = "oi.unit_price * oi.quantity * (1 - oi.discount)"

// PgRepository runs the aggregate queries against PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
	run  db.Runner
}

var _ Repository = (*PgRepository)(nil)

// NewPgRepository constructs the analytics repository with a per-query
// timeout.
func NewPgRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *PgRepository {
	return &PgRepository{pool: pool, run: db.Runner{Timeout: queryTimeout}}
}

// rangeClause renders the inclusive order-date filter, continuing the
// numbered-argument sequence at argPos.
func rangeClause(rng shared.DateRange, argPos int) (clause string, args []any) {
	if rng.Start != "" {
		clause += fmt.Sprintf(" AND o.order_date >= $%d::date", argPos)
		args = append(args, rng.Start)
		argPos++
	}
	if rng.End != "" {
		clause += fmt.Sprintf(" AND o.order_date <= $%d::date", argPos)
		args = append(args, rng.End)
	}
	return clause, args
}

// MonthlyRevenue sums line revenue and counts orders per calendar month.
func (r *PgRepository) MonthlyRevenue(ctx context.Context, rng shared.DateRange) ([]MonthlyRevenueRow, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT to_char(o.order_date, 'YYYY-MM') AS month,
		       SUM(` + lineRevenue + `) AS revenue,
		       COUNT(DISTINCT o.id) AS order_count
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE TRUE` + clause + `
		GROUP BY month
		ORDER BY month`

	var rows []MonthlyRevenueRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row MonthlyRevenueRow
			if err := result.Scan(&row.Month, &row.Revenue, &row.OrderCount); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyOrderVolume counts orders per calendar month over the full history.
func (r *PgRepository) MonthlyOrderVolume(ctx context.Context) ([]OrderVolumePoint, error) {
	const query = `
		SELECT to_char(o.order_date, 'YYYY-MM') AS month,
		       COUNT(o.id) AS orders
		FROM orders o
		GROUP BY month
		ORDER BY month`

	var rows []OrderVolumePoint
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row OrderVolumePoint
			if err := result.Scan(&row.Month, &row.Orders); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryRevenue sums revenue and counts line items per category, revenue
// descending.
func (r *PgRepository) CategoryRevenue(ctx context.Context, rng shared.DateRange) ([]CategoryRevenueRow, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT c.name,
		       SUM(` + lineRevenue + `) AS revenue,
		       COUNT(*) AS units
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN orders o ON o.id = oi.order_id
		WHERE TRUE` + clause + `
		GROUP BY c.name
		ORDER BY revenue DESC`

	var rows []CategoryRevenueRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row CategoryRevenueRow
			if err := result.Scan(&row.Category, &row.Revenue, &row.Units); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CustomerAggregates left-joins every customer to its orders, so customers
// with no orders appear with zero counts.
func (r *PgRepository) CustomerAggregates(ctx context.Context, rng shared.DateRange) ([]CustomerAggregateRow, error) {
	clause, args := rangeClause(rng, 1)
	// The range conditions live in the join so unmatched customers survive.
	query := `
		SELECT c.id, c.company_name,
		       COUNT(DISTINCT o.id) AS orders,
		       COALESCE(SUM(` + lineRevenue + `), 0) AS revenue
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id` + clause + `
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY c.id, c.company_name
		ORDER BY c.company_name`

	var rows []CustomerAggregateRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row CustomerAggregateRow
			if err := result.Scan(&row.CustomerID, &row.Name, &row.Orders, &row.Revenue); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// EmployeeSales inner-joins employees to their orders; employees with no
// orders do not appear.
func (r *PgRepository) EmployeeSales(ctx context.Context, rng shared.DateRange) ([]EmployeeSalesRow, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT e.first_name || ' ' || e.last_name AS name,
		       SUM(` + lineRevenue + `) AS total_sales,
		       COUNT(DISTINCT o.id) AS orders
		FROM employees e
		JOIN orders o ON o.employee_id = e.id
		JOIN order_items oi ON oi.order_id = o.id
		WHERE TRUE` + clause + `
		GROUP BY name
		ORDER BY total_sales DESC`

	var rows []EmployeeSalesRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row EmployeeSalesRow
			if err := result.Scan(&row.Name, &row.TotalSales, &row.Orders); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// QuarterlyRevenue sums revenue per calendar quarter in chronological order.
func (r *PgRepository) QuarterlyRevenue(ctx context.Context, rng shared.DateRange) ([]QuarterRevenueRow, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT EXTRACT(YEAR FROM o.order_date)::int AS year,
		       EXTRACT(QUARTER FROM o.order_date)::int AS quarter,
		       SUM(` + lineRevenue + `) AS revenue
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE TRUE` + clause + `
		GROUP BY year, quarter
		ORDER BY year, quarter`

	var rows []QuarterRevenueRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row QuarterRevenueRow
			if err := result.Scan(&row.Year, &row.Quarter, &row.Revenue); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountryRevenue sums revenue by order ship country, descending.
func (r *PgRepository) CountryRevenue(ctx context.Context, rng shared.DateRange, limit int) ([]CountrySales, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT o.ship_country, SUM(` + lineRevenue + `) AS revenue
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE TRUE` + clause + `
		GROUP BY o.ship_country
		ORDER BY revenue DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	var rows []CountrySales
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row CountrySales
			if err := result.Scan(&row.Country, &row.Revenue); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductRevenue ranks products by summed line revenue.
func (r *PgRepository) ProductRevenue(ctx context.Context, rng shared.DateRange, limit int) ([]ProductRevenueRank, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT p.name, SUM(` + lineRevenue + `) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE TRUE` + clause + `
		GROUP BY p.name
		ORDER BY revenue DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	var rows []ProductRevenueRank
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row ProductRevenueRank
			if err := result.Scan(&row.Name, &row.Revenue); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductQuantity ranks products by units sold.
func (r *PgRepository) ProductQuantity(ctx context.Context, rng shared.DateRange, limit int) ([]ProductQuantityRow, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT p.name, SUM(oi.quantity)::int AS quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE TRUE` + clause + `
		GROUP BY p.name
		ORDER BY quantity DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	var rows []ProductQuantityRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row ProductQuantityRow
			if err := result.Scan(&row.Name, &row.Quantity); err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalRevenue sums line revenue for orders in range.
func (r *PgRepository) TotalRevenue(ctx context.Context, rng shared.DateRange) (float64, error) {
	clause, args := rangeClause(rng, 1)
	query := `
		SELECT COALESCE(SUM(` + lineRevenue + `), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE TRUE` + clause

	var total float64
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// OrderCount counts orders in range.
func (r *PgRepository) OrderCount(ctx context.Context, rng shared.DateRange) (int, error) {
	clause, args := rangeClause(rng, 1)
	query := `SELECT COUNT(*) FROM orders o WHERE TRUE` + clause

	var count int
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ShippedOrderCount counts orders in range with a shipped date.
func (r *PgRepository) ShippedOrderCount(ctx context.Context, rng shared.DateRange) (int, error) {
	clause, args := rangeClause(rng, 1)
	query := `SELECT COUNT(*) FROM orders o WHERE o.shipped_date IS NOT NULL` + clause

	var count int
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// OrderingCustomerCount counts distinct customers with orders in range.
func (r *PgRepository) OrderingCustomerCount(ctx context.Context, rng shared.DateRange) (int, error) {
	clause, args := rangeClause(rng, 1)
	query := `SELECT COUNT(DISTINCT o.customer_id) FROM orders o WHERE TRUE` + clause

	var count int
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ProductCount counts the product catalog.
func (r *PgRepository) ProductCount(ctx context.Context) (int, error) {
	var count int
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

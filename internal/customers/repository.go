package customers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northlight-bi/northlight/internal/platform/db"
	"github.com/northlight-bi/northlight/internal/shared"
)

// Repository reads the customer directory. Like the product catalog, the
// list is fetched whole and filtered in process.
type Repository interface {
	FetchAll(ctx context.Context) ([]Row, error)
	Countries(ctx context.Context) ([]string, error)
	Cities(ctx context.Context) ([]string, error)
	Detail(ctx context.Context, id string) (*DetailRow, error)
	Stats(ctx context.Context, vipThreshold float64) (StatsRow, error)
}

type repository struct {
	pool *pgxpool.Pool
	run  db.Runner
}

// NewRepository constructs the customers repository with a per-query timeout.
func NewRepository(pool *pgxpool.Pool, queryTimeout time.Duration) Repository {
	return &repository{pool: pool, run: db.Runner{Timeout: queryTimeout}}
}

func (r *repository) FetchAll(ctx context.Context) ([]Row, error) {
	const query = `
		SELECT c.id,
		       c.company_name,
		       c.contact_name,
		       c.city,
		       c.country,
		       COUNT(DISTINCT o.id),
		       COALESCE(SUM(oi.unit_price * oi.quantity * (1 - oi.discount)), 0),
		       MAX(o.order_date)
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY c.id, c.company_name, c.contact_name, c.city, c.country
		ORDER BY c.company_name`

	var rows []Row
	err := r.run.Do(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		result, err := r.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row Row
			if err := result.Scan(&row.ID, &row.CompanyName, &row.ContactName, &row.City, &row.Country,
				&row.TotalOrders, &row.TotalRevenue, &row.LastOrderDate); err != nil {
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

func (r *repository) Countries(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT country FROM customers ORDER BY country`)
}

func (r *repository) Cities(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT city FROM customers ORDER BY city`)
}

func (r *repository) distinct(ctx context.Context, query string) ([]string, error) {
	var values []string
	err := r.run.Do(ctx, func(ctx context.Context) error {
		values = values[:0]
		result, err := r.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var value string
			if err := result.Scan(&value); err != nil {
				return err
			}
			values = append(values, value)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repository) Detail(ctx context.Context, id string) (*DetailRow, error) {
	const headerQuery = `
		SELECT c.id, c.company_name, c.contact_name, c.city, c.country
		FROM customers c
		WHERE c.id = $1`

	const historyQuery = `
		SELECT o.id,
		       o.order_date,
		       o.shipped_date,
		       COALESCE(SUM(oi.unit_price * oi.quantity * (1 - oi.discount)), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.customer_id = $1
		GROUP BY o.id
		ORDER BY o.order_date DESC`

	var detail *DetailRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		detail = nil
		var header DetailRow
		err := r.pool.QueryRow(ctx, headerQuery, id).Scan(
			&header.ID, &header.CompanyName, &header.ContactName, &header.City, &header.Country)
		if err != nil {
			return err
		}

		result, err := r.pool.Query(ctx, historyQuery, id)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var row HistoryRow
			if err := result.Scan(&row.OrderID, &row.OrderDate, &row.ShippedDate, &row.TotalAmount); err != nil {
				return err
			}
			header.Orders = append(header.Orders, row)
		}
		if err := result.Err(); err != nil {
			return err
		}
		detail = &header
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

func (r *repository) Stats(ctx context.Context, vipThreshold float64) (StatsRow, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM customers),
		       (SELECT COALESCE(SUM(unit_price * quantity * (1 - discount)), 0) FROM order_items),
		       (SELECT COUNT(*) FROM (
		               SELECT o.customer_id
		               FROM orders o
		               JOIN order_items oi ON oi.order_id = o.id
		               GROUP BY o.customer_id
		               HAVING SUM(oi.unit_price * oi.quantity * (1 - oi.discount)) > $1
		        ) vips),
		       (SELECT COUNT(*)
		        FROM customers c
		        LEFT JOIN orders o ON o.customer_id = c.id
		        WHERE o.id IS NULL),
		       (SELECT COUNT(DISTINCT country) FROM customers)`

	var stats StatsRow
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, vipThreshold).Scan(
			&stats.TotalCustomers,
			&stats.TotalRevenue,
			&stats.VIPCustomers,
			&stats.NewCustomers,
			&stats.CountriesServed,
		)
	})
	if err != nil {
		return StatsRow{}, err
	}
	return stats, nil
}

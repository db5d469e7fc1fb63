package products

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northlight-bi/northlight/internal/platform/db"
)

// Repository reads the product catalog. The list is fetched whole; the
// filter/sort/paginate pipeline runs in process.
type Repository interface {
	FetchAll(ctx context.Context) ([]Row, error)
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (Stats, error)
}

type repository struct {
	pool *pgxpool.Pool
	run  db.Runner
}

// NewRepository constructs the products repository with a per-query timeout.
func NewRepository(pool *pgxpool.Pool, queryTimeout time.Duration) Repository {
	return &repository{pool: pool, run: db.Runner{Timeout: queryTimeout}}
}

func (r *repository) FetchAll(ctx context.Context) ([]Row, error) {
	const query = `
		SELECT p.id,
		       p.name,
		       c.name,
		       s.company_name,
		       COALESCE(p.unit_price, 0),
		       COALESCE(p.units_in_stock, 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name`

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
			if err := result.Scan(&row.ID, &row.Name, &row.CategoryName, &row.SupplierName, &row.UnitPrice, &row.UnitsInStock); err != nil {
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

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT name FROM categories ORDER BY name`

	var names []string
	err := r.run.Do(ctx, func(ctx context.Context) error {
		names = names[:0]
		result, err := r.pool.Query(ctx, query)
		if err != nil {
			return err
		}
		defer result.Close()
		for result.Next() {
			var name string
			if err := result.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return result.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM products),
		       (SELECT COALESCE(SUM(unit_price * units_in_stock), 0) FROM products),
		       (SELECT COUNT(*) FROM products WHERE units_in_stock > 0 AND units_in_stock < 10),
		       (SELECT COUNT(*) FROM products WHERE units_in_stock = 0),
		       (SELECT COUNT(*) FROM categories)`

	var stats Stats
	err := r.run.Do(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query).Scan(
			&stats.TotalProducts,
			&stats.TotalInventoryValue,
			&stats.LowStockCount,
			&stats.OutOfStockCount,
			&stats.CategoriesCount,
		)
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

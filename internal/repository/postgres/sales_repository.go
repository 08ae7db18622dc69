package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// SalesRepository serves per-SKU sales history from a Postgres sales table.
// It implements the same fallback-to-broader-history policy as the CSV feature
// store: a location filter only applies when rows exist for that location.
type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

type historyRow struct {
	Date     time.Time `db:"date"`
	Quantity float64   `db:"quantity"`
}

func (r *SalesRepository) GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error) {
	useLocation := false
	if location != "" {
		var count int
		err := r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM sales WHERE sku = $1 AND location = $2`, sku, location)
		if err != nil {
			return nil, fmt.Errorf("check location rows for %s: %w", sku, err)
		}
		useLocation = count > 0
	}

	query := `SELECT date, SUM(quantity) AS quantity
		FROM sales
		WHERE sku = $1
		GROUP BY date
		ORDER BY date ASC`
	args := []any{sku}

	if useLocation {
		query = `SELECT date, SUM(quantity) AS quantity
			FROM sales
			WHERE sku = $1 AND location = $2
			GROUP BY date
			ORDER BY date ASC`
		args = append(args, location)
	}

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load history for %s: %w", sku, err)
	}

	series := make(domain.TimeSeries, 0, len(rows))
	for _, row := range rows {
		series = append(series, domain.SeriesPoint{
			Date:     domain.DateOf(row.Date),
			Quantity: row.Quantity,
		})
	}
	return series, nil
}

package repositories

import (
	"context"

	"buildstock/internal/models"

	"github.com/jackc/pgx/v5"
)

// LegacyStockRepository is the read-only legacy ledger. Rows are keyed by
// (material, free-text location); the reconciler joins them to warehouses by
// testing whether a warehouse's city appears in the location string. There is
// no write path: legacy records cannot carry last-alert timestamps.
type LegacyStockRepository interface {
	FindByMaterialAndCity(ctx context.Context, material, city string) ([]*models.LegacyStockRecord, error)
	ListBelowThreshold(ctx context.Context) ([]*models.LegacyStockRecord, error)
}

type legacyStockRepo struct {
	db DB
}

func NewLegacyStockRepository(db DB) LegacyStockRepository {
	return &legacyStockRepo{db: db}
}

func (r *legacyStockRepo) FindByMaterialAndCity(ctx context.Context, material, city string) ([]*models.LegacyStockRecord, error) {
	// Case-insensitive material match, city as a case-insensitive substring
	// of the location text. This is a best-effort join, not a foreign key.
	query := `
		SELECT id, material, location, quantity, threshold, unit, last_updated
		FROM legacy_stock
		WHERE LOWER(material) = LOWER($1) AND location ILIKE '%' || $2 || '%'
		ORDER BY last_updated DESC
	`
	rows, err := r.db.Query(ctx, query, material, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLegacyStockRecords(rows)
}

func (r *legacyStockRepo) ListBelowThreshold(ctx context.Context) ([]*models.LegacyStockRecord, error) {
	query := `
		SELECT id, material, location, quantity, threshold, unit, last_updated
		FROM legacy_stock
		WHERE quantity < threshold
		ORDER BY last_updated DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLegacyStockRecords(rows)
}

func scanLegacyStockRecords(rows pgx.Rows) ([]*models.LegacyStockRecord, error) {
	var records []*models.LegacyStockRecord
	for rows.Next() {
		record := &models.LegacyStockRecord{}
		if err := rows.Scan(&record.ID, &record.Material, &record.Location, &record.Quantity,
			&record.Threshold, &record.Unit, &record.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

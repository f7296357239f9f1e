package repositories

import (
	"context"
	"time"

	"buildstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StockRepository is the primary warehouse-material ledger. It is keyed by
// (warehouse_id, material) with a case-sensitive material match and is the
// only ledger that persists last-alert timestamps.
type StockRepository interface {
	Upsert(ctx context.Context, record *models.StockRecord) error
	GetByWarehouseAndMaterial(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error)
	List(ctx context.Context, limit, offset int) ([]*models.StockRecord, error)
	ListBelowThreshold(ctx context.Context) ([]*models.StockRecord, error)
	StampLastAlert(ctx context.Context, warehouseID uuid.UUID, material string, at time.Time) error
	Delete(ctx context.Context, warehouseID uuid.UUID, material string) error
}

type stockRepo struct {
	db DB
}

func NewStockRepository(db DB) StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) Upsert(ctx context.Context, record *models.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, warehouse_id, material, quantity, threshold, unit, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (warehouse_id, material) DO UPDATE SET quantity = EXCLUDED.quantity, threshold = EXCLUDED.threshold, unit = EXCLUDED.unit, last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.WarehouseID, record.Material, record.Quantity, record.Threshold, record.Unit)
	return err
}

func (r *stockRepo) GetByWarehouseAndMaterial(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error) {
	record := &models.StockRecord{}
	query := `
		SELECT id, warehouse_id, material, quantity, threshold, unit, last_alert_at, last_updated
		FROM stock_records
		WHERE warehouse_id = $1 AND material = $2
	`
	err := r.db.QueryRow(ctx, query, warehouseID, material).Scan(&record.ID, &record.WarehouseID, &record.Material,
		&record.Quantity, &record.Threshold, &record.Unit, &record.LastAlertAt, &record.LastUpdated)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *stockRepo) List(ctx context.Context, limit, offset int) ([]*models.StockRecord, error) {
	query := `
		SELECT id, warehouse_id, material, quantity, threshold, unit, last_alert_at, last_updated
		FROM stock_records
		ORDER BY last_updated DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStockRecords(rows)
}

func (r *stockRepo) ListBelowThreshold(ctx context.Context) ([]*models.StockRecord, error) {
	query := `
		SELECT id, warehouse_id, material, quantity, threshold, unit, last_alert_at, last_updated
		FROM stock_records
		WHERE quantity < threshold
		ORDER BY quantity / NULLIF(threshold, 0) ASC NULLS FIRST
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStockRecords(rows)
}

func (r *stockRepo) StampLastAlert(ctx context.Context, warehouseID uuid.UUID, material string, at time.Time) error {
	query := `UPDATE stock_records SET last_alert_at = $1 WHERE warehouse_id = $2 AND material = $3`
	_, err := r.db.Exec(ctx, query, at, warehouseID, material)
	return err
}

func (r *stockRepo) Delete(ctx context.Context, warehouseID uuid.UUID, material string) error {
	query := `DELETE FROM stock_records WHERE warehouse_id = $1 AND material = $2`
	_, err := r.db.Exec(ctx, query, warehouseID, material)
	return err
}

func scanStockRecords(rows pgx.Rows) ([]*models.StockRecord, error) {
	var records []*models.StockRecord
	for rows.Next() {
		record := &models.StockRecord{}
		if err := rows.Scan(&record.ID, &record.WarehouseID, &record.Material, &record.Quantity,
			&record.Threshold, &record.Unit, &record.LastAlertAt, &record.LastUpdated); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

package repositories

import (
	"context"

	"buildstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)
	ListOperational(ctx context.Context) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db DB
}

func NewWarehouseRepository(db DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, address, city, state, latitude, longitude, capacity, used_capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, warehouse.ID, warehouse.Name, warehouse.Address, warehouse.City, warehouse.State,
		warehouse.Latitude, warehouse.Longitude, warehouse.Capacity, warehouse.UsedCapacity, warehouse.Status)
	return err
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	query := `
		SELECT id, name, address, city, state, latitude, longitude, capacity, used_capacity, status, created_at, updated_at
		FROM warehouses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&warehouse.ID, &warehouse.Name, &warehouse.Address, &warehouse.City,
		&warehouse.State, &warehouse.Latitude, &warehouse.Longitude, &warehouse.Capacity, &warehouse.UsedCapacity,
		&warehouse.Status, &warehouse.CreatedAt, &warehouse.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $1, address = $2, city = $3, state = $4, latitude = $5, longitude = $6, capacity = $7, used_capacity = $8, status = $9, updated_at = NOW()
		WHERE id = $10
	`
	_, err := r.db.Exec(ctx, query, warehouse.Name, warehouse.Address, warehouse.City, warehouse.State,
		warehouse.Latitude, warehouse.Longitude, warehouse.Capacity, warehouse.UsedCapacity, warehouse.Status, warehouse.ID)
	return err
}

func (r *warehouseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE warehouses SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *warehouseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM warehouses WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *warehouseRepo) List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	query := `
		SELECT id, name, address, city, state, latitude, longitude, capacity, used_capacity, status, created_at, updated_at
		FROM warehouses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWarehouses(rows)
}

func (r *warehouseRepo) ListOperational(ctx context.Context) ([]*models.Warehouse, error) {
	query := `
		SELECT id, name, address, city, state, latitude, longitude, capacity, used_capacity, status, created_at, updated_at
		FROM warehouses
		WHERE status = 'operational'
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWarehouses(rows)
}

func scanWarehouses(rows pgx.Rows) ([]*models.Warehouse, error) {
	var warehouses []*models.Warehouse
	for rows.Next() {
		warehouse := &models.Warehouse{}
		if err := rows.Scan(&warehouse.ID, &warehouse.Name, &warehouse.Address, &warehouse.City, &warehouse.State,
			&warehouse.Latitude, &warehouse.Longitude, &warehouse.Capacity, &warehouse.UsedCapacity,
			&warehouse.Status, &warehouse.CreatedAt, &warehouse.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	return warehouses, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"buildstock/internal/caching"
	"buildstock/internal/models"
	"buildstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WarehouseService owns the warehouse registry: validation on writes and
// cache invalidation so the reconciler never serves a stale warehouse.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, warehouse *models.Warehouse) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error
	ListWarehouses(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
	cacheSvc      caching.CacheService
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository, cacheSvc caching.CacheService) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		cacheSvc:      cacheSvc,
	}
}

func (s *warehouseService) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error {
	if err := validateWarehouse(warehouse); err != nil {
		return err
	}
	if warehouse.ID == uuid.Nil {
		warehouse.ID = uuid.New()
	}
	if warehouse.Status == "" {
		warehouse.Status = models.WarehouseOperational
	}
	return s.warehouseRepo.Create(ctx, warehouse)
}

func (s *warehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownWarehouse
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) UpdateWarehouse(ctx context.Context, warehouse *models.Warehouse) error {
	if err := validateWarehouse(warehouse); err != nil {
		return err
	}
	if _, err := s.GetWarehouse(ctx, warehouse.ID); err != nil {
		return err
	}
	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return err
	}
	s.invalidate(ctx, warehouse.ID)
	return nil
}

func (s *warehouseService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.ValidWarehouseStatus(status) {
		return fmt.Errorf("invalid warehouse status: %s", status)
	}
	if _, err := s.GetWarehouse(ctx, id); err != nil {
		return err
	}
	if err := s.warehouseRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *warehouseService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetWarehouse(ctx, id); err != nil {
		return err
	}
	if err := s.warehouseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *warehouseService) ListWarehouses(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.warehouseRepo.List(ctx, limit, offset)
}

func (s *warehouseService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheSvc.DeleteWarehouse(ctx, id); err != nil {
		log.Printf("Failed to invalidate warehouse cache for %s: %v", id.String(), err)
	}
}

func validateWarehouse(warehouse *models.Warehouse) error {
	if warehouse.Name == "" {
		return fmt.Errorf("warehouse name is required")
	}
	if warehouse.City == "" {
		return fmt.Errorf("warehouse city is required")
	}
	if warehouse.Latitude != nil && (*warehouse.Latitude < -90 || *warehouse.Latitude > 90) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if warehouse.Longitude != nil && (*warehouse.Longitude < -180 || *warehouse.Longitude > 180) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if (warehouse.Latitude == nil) != (warehouse.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be provided together")
	}
	if warehouse.Status != "" && !models.ValidWarehouseStatus(warehouse.Status) {
		return fmt.Errorf("invalid warehouse status: %s", warehouse.Status)
	}
	return nil
}

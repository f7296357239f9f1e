package services

import (
	"context"
	"errors"
	"fmt"

	"buildstock/internal/models"
	"buildstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StockService manages writes to the primary ledger. The legacy ledger has no
// write path here; it is migrated data and stays read-only.
type StockService interface {
	UpsertStock(ctx context.Context, record *models.StockRecord) error
	GetStock(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error)
	ListStock(ctx context.Context, limit, offset int) ([]*models.StockRecord, error)
	ListLowStock(ctx context.Context) ([]*models.StockRecord, error)
	DeleteStock(ctx context.Context, warehouseID uuid.UUID, material string) error
}

type stockService struct {
	stockRepo     repositories.StockRepository
	warehouseRepo repositories.WarehouseRepository
}

func NewStockService(stockRepo repositories.StockRepository, warehouseRepo repositories.WarehouseRepository) StockService {
	return &stockService{
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *stockService) UpsertStock(ctx context.Context, record *models.StockRecord) error {
	if record.Material == "" {
		return fmt.Errorf("material is required")
	}
	if record.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if record.Threshold < 0 {
		return fmt.Errorf("threshold cannot be negative")
	}

	if _, err := s.warehouseRepo.GetByID(ctx, record.WarehouseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnknownWarehouse
		}
		return err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return s.stockRepo.Upsert(ctx, record)
}

func (s *stockService) GetStock(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error) {
	record, err := s.stockRepo.GetByWarehouseAndMaterial(ctx, warehouseID, material)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotTracked
		}
		return nil, err
	}
	record.Source = models.SourcePrimary
	record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
	return record, nil
}

func (s *stockService) ListStock(ctx context.Context, limit, offset int) ([]*models.StockRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	records, err := s.stockRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.Source = models.SourcePrimary
		record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
	}
	return records, nil
}

func (s *stockService) ListLowStock(ctx context.Context) ([]*models.StockRecord, error) {
	records, err := s.stockRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.Source = models.SourcePrimary
		record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
	}
	return records, nil
}

func (s *stockService) DeleteStock(ctx context.Context, warehouseID uuid.UUID, material string) error {
	return s.stockRepo.Delete(ctx, warehouseID, material)
}

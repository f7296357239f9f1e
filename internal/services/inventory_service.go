package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"buildstock/internal/caching"
	"buildstock/internal/models"
	"buildstock/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotTracked means the (warehouse, material) pair exists in neither
	// ledger. This is distinct from zero stock and is never coerced into a
	// shortage.
	ErrNotTracked = errors.New("material is not tracked at this warehouse")

	// ErrUnknownWarehouse means the referenced warehouse id does not resolve
	// in the registry.
	ErrUnknownWarehouse = errors.New("warehouse not found")
)

const warehouseCacheTTL = 5 * time.Minute

// InventoryService reconciles the primary and legacy stock ledgers into one
// logical view of what each warehouse holds of each material. The primary
// ledger always wins when both have a record for the same pair.
type InventoryService interface {
	Lookup(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error)
	AllShortages(ctx context.Context) ([]*models.StockRecord, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
}

type inventoryService struct {
	stockRepo     repositories.StockRepository
	legacyRepo    repositories.LegacyStockRepository
	warehouseRepo repositories.WarehouseRepository
	cacheSvc      caching.CacheService
}

func NewInventoryService(stockRepo repositories.StockRepository, legacyRepo repositories.LegacyStockRepository,
	warehouseRepo repositories.WarehouseRepository, cacheSvc caching.CacheService) InventoryService {
	return &inventoryService{
		stockRepo:     stockRepo,
		legacyRepo:    legacyRepo,
		warehouseRepo: warehouseRepo,
		cacheSvc:      cacheSvc,
	}
}

// GetWarehouse resolves a warehouse through the cache, falling back to the
// registry on a miss.
func (s *inventoryService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	if cached, err := s.cacheSvc.GetWarehouse(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownWarehouse
		}
		return nil, err
	}

	if err := s.cacheSvc.SetWarehouse(ctx, warehouse, warehouseCacheTTL); err != nil {
		log.Printf("Failed to cache warehouse %s: %v", id.String(), err)
	}

	return warehouse, nil
}

// Lookup returns the logical stock view for (warehouse, material): the
// primary-ledger record when one exists, otherwise a record synthesized from
// the legacy ledger via the city-substring join. Legacy-sourced records are
// read-only and keep the legacy ledger's own severity boundaries.
func (s *inventoryService) Lookup(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error) {
	warehouse, err := s.GetWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	record, err := s.stockRepo.GetByWarehouseAndMaterial(ctx, warehouseID, material)
	if err == nil {
		record.Source = models.SourcePrimary
		record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if warehouse.City == "" {
		// Without a city there is nothing to join the legacy ledger on.
		return nil, ErrNotTracked
	}

	matches, err := s.legacyRepo.FindByMaterialAndCity(ctx, material, warehouse.City)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNotTracked
	}
	if len(matches) > 1 {
		log.Printf("WARN: ambiguous legacy match for material %q in city %q: %d rows, using most recent",
			material, warehouse.City, len(matches))
	}

	return synthesizeLegacyRecord(matches[0], warehouse.ID), nil
}

// AllShortages scans both ledgers for records below threshold, deduplicated
// by (warehouse, material) with primary-source precedence. Legacy rows whose
// location matches no warehouse city are invisible to the sweep.
func (s *inventoryService) AllShortages(ctx context.Context) ([]*models.StockRecord, error) {
	primary, err := s.stockRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}

	var shortages []*models.StockRecord
	seen := make(map[string]bool)
	for _, record := range primary {
		record.Source = models.SourcePrimary
		record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
		seen[shortageKey(record.WarehouseID, record.Material)] = true
		shortages = append(shortages, record)
	}

	legacy, err := s.legacyRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	if len(legacy) == 0 {
		return shortages, nil
	}

	warehouses, err := s.warehouseRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, err
	}

	for _, record := range legacy {
		warehouse := matchWarehouseByLocation(warehouses, record.Location)
		if warehouse == nil {
			log.Printf("WARN: legacy shortage for %q at %q matches no warehouse city, skipping",
				record.Material, record.Location)
			continue
		}
		key := shortageKey(warehouse.ID, record.Material)
		if seen[key] {
			continue
		}
		seen[key] = true
		shortages = append(shortages, synthesizeLegacyRecord(record, warehouse.ID))
	}

	return shortages, nil
}

func synthesizeLegacyRecord(record *models.LegacyStockRecord, warehouseID uuid.UUID) *models.StockRecord {
	return &models.StockRecord{
		ID:          record.ID,
		WarehouseID: warehouseID,
		Material:    record.Material,
		Quantity:    record.Quantity,
		Threshold:   record.Threshold,
		Unit:        record.Unit,
		Severity:    models.ClassifyLegacySeverity(record.Quantity, record.Threshold),
		Source:      models.SourceLegacy,
		LastUpdated: record.LastUpdated,
	}
}

// matchWarehouseByLocation finds the warehouse whose city appears as a
// case-insensitive substring of the free-text location. Ambiguous matches
// are logged and resolved to the first hit.
func matchWarehouseByLocation(warehouses []*models.Warehouse, location string) *models.Warehouse {
	loc := strings.ToLower(location)

	var matched *models.Warehouse
	count := 0
	for _, warehouse := range warehouses {
		if warehouse.City == "" {
			continue
		}
		if strings.Contains(loc, strings.ToLower(warehouse.City)) {
			if matched == nil {
				matched = warehouse
			}
			count++
		}
	}

	if count > 1 {
		log.Printf("WARN: location %q matches %d warehouse cities, using %q", location, count, matched.Name)
	}

	return matched
}

func shortageKey(warehouseID uuid.UUID, material string) string {
	return warehouseID.String() + "|" + strings.ToLower(material)
}

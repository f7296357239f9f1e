package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"buildstock/internal/caching"
	"buildstock/internal/models"
	"buildstock/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultDispatchTimeout = 10 * time.Second

	procurementFallbackAction = "No nearby warehouses available - initiate procurement"
)

// AlertConfig tunes the orchestrator. Zero values fall back to defaults;
// a zero AlertCooldown keeps the last-alert timestamp advisory-only and
// never suppresses a dispatch.
type AlertConfig struct {
	SearchRadiusKm  float64
	DispatchTimeout time.Duration
	AlertCooldown   time.Duration
}

// AlertService runs the shortage-check workflow: resolve the stock view,
// short-circuit when sufficient, locate resupply candidates, stamp the
// last-alert timestamp, and hand the alert to the notification collaborator.
// Detection and ranking failures surface to the caller; notification
// delivery failures are logged and swallowed.
type AlertService interface {
	CheckStock(ctx context.Context, warehouseID uuid.UUID, material string) (*models.CheckResult, error)
	RunSweep(ctx context.Context) (*models.SweepResult, error)
}

type alertService struct {
	inventorySvc InventoryService
	resupplySvc  ResupplyService
	stockRepo    repositories.StockRepository
	notifier     NotificationService
	archive      AlertArchiveService
	cacheSvc     caching.CacheService
	config       AlertConfig

	// Serializes last-alert write-back per (warehouse, material) key so a
	// scheduled sweep and an API-triggered check cannot race the update.
	stampLocks sync.Map
}

func NewAlertService(inventorySvc InventoryService, resupplySvc ResupplyService,
	stockRepo repositories.StockRepository, notifier NotificationService,
	archive AlertArchiveService, cacheSvc caching.CacheService, config AlertConfig) AlertService {

	if config.SearchRadiusKm <= 0 {
		config.SearchRadiusKm = DefaultSearchRadiusKm
	}
	if config.DispatchTimeout <= 0 {
		config.DispatchTimeout = defaultDispatchTimeout
	}

	return &alertService{
		inventorySvc: inventorySvc,
		resupplySvc:  resupplySvc,
		stockRepo:    stockRepo,
		notifier:     notifier,
		archive:      archive,
		cacheSvc:     cacheSvc,
		config:       config,
	}
}

func (s *alertService) CheckStock(ctx context.Context, warehouseID uuid.UUID, material string) (*models.CheckResult, error) {
	record, err := s.inventorySvc.Lookup(ctx, warehouseID, material)
	if err != nil {
		return nil, err
	}

	if record.Quantity >= record.Threshold {
		return &models.CheckResult{
			Status: models.StatusSufficient,
			Sufficient: &models.SufficientStatus{
				Status:       models.StatusSufficient,
				WarehouseID:  warehouseID,
				Material:     record.Material,
				Quantity:     record.Quantity,
				Threshold:    record.Threshold,
				StockPercent: models.StockPercent(record.Quantity, record.Threshold),
			},
		}, nil
	}

	warehouse, err := s.inventorySvc.GetWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	alert := buildAlertRecord(warehouse, record, s.config.SearchRadiusKm)
	result := &models.CheckResult{Status: models.StatusShortageDetected, Alert: alert}

	candidates, err := s.resupplySvc.FindResupply(ctx, warehouse, record.Material, s.config.SearchRadiusKm)
	if err != nil {
		if errors.Is(err, ErrInvalidGeometry) {
			// Detection stands; only the ranking step failed. Return both
			// so the caller gets the finding and the geometry error.
			alert.RecommendedAction = procurementFallbackAction
			return result, err
		}
		return nil, err
	}
	alert.Candidates = candidates
	alert.RecommendedAction = recommendedAction(candidates)

	suppressed := false
	if record.Source == models.SourcePrimary {
		suppressed = s.stampLastAlert(ctx, record)
	}

	if !suppressed {
		s.dispatch(ctx, alert)
	}

	return result, nil
}

// RunSweep iterates every shortage across the network sequentially and
// collects the resulting alerts. Per-item failures are recorded and do not
// stop the sweep.
func (s *alertService) RunSweep(ctx context.Context) (*models.SweepResult, error) {
	shortages, err := s.inventorySvc.AllShortages(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.SweepResult{
		CheckedAt:     time.Now().UTC(),
		ShortageCount: len(shortages),
	}

	if len(shortages) == 0 {
		result.Status = models.StatusAllSufficient
		s.saveSweepResult(ctx, result)
		return result, nil
	}

	result.Status = models.StatusShortageDetected
	for _, record := range shortages {
		check, err := s.CheckStock(ctx, record.WarehouseID, record.Material)
		if err != nil {
			// Geometry failures still carry the detection result.
			if check != nil && check.Alert != nil {
				result.Alerts = append(result.Alerts, check.Alert)
			}
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s/%s: %v", record.WarehouseID.String(), record.Material, err))
			continue
		}
		if check.Alert != nil {
			result.Alerts = append(result.Alerts, check.Alert)
		}
	}

	s.saveSweepResult(ctx, result)
	return result, nil
}

// stampLastAlert records when this shortage last produced a dispatch and
// reports whether dispatch should be suppressed under the configured
// cooldown. With no cooldown the stamp is pure bookkeeping.
func (s *alertService) stampLastAlert(ctx context.Context, record *models.StockRecord) bool {
	key := record.WarehouseID.String() + "|" + record.Material
	v, _ := s.stampLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	if s.config.AlertCooldown > 0 && record.LastAlertAt != nil &&
		time.Since(*record.LastAlertAt) < s.config.AlertCooldown {
		log.Printf("Alert for %s at warehouse %s suppressed, last dispatched %s ago",
			record.Material, record.WarehouseID.String(), time.Since(*record.LastAlertAt).Round(time.Second))
		return true
	}

	now := time.Now().UTC()
	if err := s.stockRepo.StampLastAlert(ctx, record.WarehouseID, record.Material, now); err != nil {
		log.Printf("Failed to stamp last alert for %s at warehouse %s: %v",
			record.Material, record.WarehouseID.String(), err)
	}
	record.LastAlertAt = &now
	return false
}

// dispatch hands the alert to the notification channel and the archive.
// Both are best-effort: a delivery failure must never mask the shortage
// finding, so errors are logged and the check result is returned regardless.
func (s *alertService) dispatch(ctx context.Context, alert *models.AlertRecord) {
	dispatchCtx, cancel := context.WithTimeout(ctx, s.config.DispatchTimeout)
	defer cancel()

	if err := s.notifier.DispatchAlert(dispatchCtx, alert); err != nil {
		log.Printf("Alert notification delivery failed for %s at %s: %v",
			alert.Material.Name, alert.Warehouse.Name, err)
	}

	if s.archive != nil {
		if err := s.archive.ArchiveAlert(dispatchCtx, alert); err != nil {
			log.Printf("Failed to archive alert for %s at %s: %v",
				alert.Material.Name, alert.Warehouse.Name, err)
		}
	}
}

func (s *alertService) saveSweepResult(ctx context.Context, result *models.SweepResult) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.SetLastSweep(ctx, result); err != nil {
		log.Printf("Failed to cache sweep result: %v", err)
	}
}

func buildAlertRecord(warehouse *models.Warehouse, record *models.StockRecord, radiusKm float64) *models.AlertRecord {
	state := ""
	if warehouse.State != nil {
		state = *warehouse.State
	}

	return &models.AlertRecord{
		Status:    models.StatusShortageDetected,
		Severity:  record.Severity,
		Timestamp: time.Now().UTC(),
		Warehouse: models.AlertWarehouse{
			ID:        warehouse.ID,
			Name:      warehouse.Name,
			City:      warehouse.City,
			State:     state,
			Latitude:  warehouse.Latitude,
			Longitude: warehouse.Longitude,
		},
		Material: models.AlertMaterial{
			Name:         record.Material,
			Unit:         record.Unit,
			Available:    record.Quantity,
			Required:     record.Threshold,
			Shortage:     record.ShortageAmount(),
			StockPercent: models.StockPercent(record.Quantity, record.Threshold),
		},
		SearchRadiusKm: radiusKm,
	}
}

func recommendedAction(candidates []models.ResupplyCandidate) string {
	// Candidates are ordered can-supply first, so the head decides.
	if len(candidates) > 0 && candidates[0].CanSupply {
		return fmt.Sprintf("Transfer from %s (%.1f km away)", candidates[0].Name, candidates[0].DistanceKm)
	}
	return procurementFallbackAction
}

package services

import (
	"context"
	"errors"
	"sort"

	"buildstock/internal/geo"
	"buildstock/internal/models"
	"buildstock/internal/repositories"
)

// ErrInvalidGeometry means the shortage warehouse lacks usable coordinates,
// so no distance origin exists and candidates cannot be ranked.
var ErrInvalidGeometry = errors.New("source warehouse must have valid coordinates")

// DefaultSearchRadiusKm bounds the candidate search when no radius is given.
const DefaultSearchRadiusKm = 200.0

// ResupplyService ranks nearby warehouses as possible transfer sources for a
// shortage.
type ResupplyService interface {
	FindResupply(ctx context.Context, origin *models.Warehouse, material string, radiusKm float64) ([]models.ResupplyCandidate, error)
}

type resupplyService struct {
	warehouseRepo repositories.WarehouseRepository
	inventorySvc  InventoryService
	speedKmh      float64
}

func NewResupplyService(warehouseRepo repositories.WarehouseRepository, inventorySvc InventoryService) ResupplyService {
	return &resupplyService{
		warehouseRepo: warehouseRepo,
		inventorySvc:  inventorySvc,
		speedKmh:      geo.DefaultSpeedKmh,
	}
}

// FindResupply returns every operational, coordinate-bearing warehouse within
// radiusKm of the origin, ordered so that warehouses able to supply come
// first and each group is sorted by ascending distance. A candidate can
// supply only when its own stock strictly exceeds its own threshold; sitting
// exactly at threshold leaves no surplus to share. The full ranking is
// returned so callers can display fallbacks beyond the head.
func (s *resupplyService) FindResupply(ctx context.Context, origin *models.Warehouse, material string, radiusKm float64) ([]models.ResupplyCandidate, error) {
	if !origin.HasCoordinates() {
		return nil, ErrInvalidGeometry
	}
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	warehouses, err := s.warehouseRepo.ListOperational(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.ResupplyCandidate, 0, len(warehouses))
	for _, warehouse := range warehouses {
		if warehouse.ID == origin.ID || !warehouse.HasCoordinates() {
			continue
		}

		distance := geo.Distance(*origin.Latitude, *origin.Longitude, *warehouse.Latitude, *warehouse.Longitude)
		if distance > radiusKm {
			continue
		}

		candidate := models.ResupplyCandidate{
			WarehouseID: warehouse.ID,
			Name:        warehouse.Name,
			DistanceKm:  distance,
			TravelTime:  geo.TravelTime(distance, s.speedKmh),
		}

		record, err := s.inventorySvc.Lookup(ctx, warehouse.ID, material)
		switch {
		case err == nil:
			candidate.AvailableStock = record.Quantity
			candidate.CanSupply = record.Quantity > record.Threshold
		case errors.Is(err, ErrNotTracked) || errors.Is(err, ErrUnknownWarehouse):
			// Untracked at the candidate: it simply cannot supply.
		default:
			return nil, err
		}

		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CanSupply != candidates[j].CanSupply {
			return candidates[i].CanSupply
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, nil
}

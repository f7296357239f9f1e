package models

import (
	"time"

	"github.com/google/uuid"
)

// Check statuses returned by the alert workflow.
const (
	StatusSufficient       = "sufficient"
	StatusShortageDetected = "shortage_detected"
	StatusAllSufficient    = "all_sufficient"
)

// ResupplyCandidate is one ranked entry in a resupply recommendation.
// Produced fresh per shortage evaluation, never cached.
type ResupplyCandidate struct {
	WarehouseID    uuid.UUID `json:"warehouse_id"`
	Name           string    `json:"name"`
	DistanceKm     float64   `json:"distance_km"`
	TravelTime     string    `json:"travel_time"`
	AvailableStock float64   `json:"available_stock"`
	CanSupply      bool      `json:"can_supply"`
}

// AlertWarehouse describes the shortage site inside an alert payload.
type AlertWarehouse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

// AlertMaterial describes the short material inside an alert payload.
type AlertMaterial struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Available    float64 `json:"available"`
	Required     float64 `json:"required"`
	Shortage     float64 `json:"shortage"`
	StockPercent int     `json:"stock_percent"`
}

// AlertRecord is the payload handed to the notification collaborator and
// returned to the caller. It is not persisted; the primary ledger's
// last-alert timestamp is the only persisted side effect of a dispatch.
type AlertRecord struct {
	Status            string              `json:"status"`
	Severity          string              `json:"severity"`
	Timestamp         time.Time           `json:"timestamp"`
	Warehouse         AlertWarehouse      `json:"warehouse"`
	Material          AlertMaterial       `json:"material"`
	Candidates        []ResupplyCandidate `json:"resupply_candidates"`
	RecommendedAction string              `json:"recommended_action"`
	SearchRadiusKm    float64             `json:"search_radius_km"`
}

// SufficientStatus is returned when a checked record holds at least its
// threshold. No locator call and no dispatch happen in that case.
type SufficientStatus struct {
	Status       string    `json:"status"`
	WarehouseID  uuid.UUID `json:"warehouse_id"`
	Material     string    `json:"material"`
	Quantity     float64   `json:"quantity"`
	Threshold    float64   `json:"threshold"`
	StockPercent int       `json:"stock_percent"`
}

// CheckResult is the outcome of a single shortage check: exactly one of
// Sufficient or Alert is set, matching Status.
type CheckResult struct {
	Status     string            `json:"status"`
	Sufficient *SufficientStatus `json:"sufficient,omitempty"`
	Alert      *AlertRecord      `json:"alert,omitempty"`
}

// SweepResult collects the outcome of a full-network sweep.
type SweepResult struct {
	Status        string         `json:"status"`
	CheckedAt     time.Time      `json:"checked_at"`
	ShortageCount int            `json:"shortage_count"`
	Alerts        []*AlertRecord `json:"alerts,omitempty"`
	Errors        []string       `json:"errors,omitempty"`
}

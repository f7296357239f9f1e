package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Severity tiers for a stock level relative to its threshold.
const (
	SeverityNormal     = "normal"
	SeverityLow        = "low"
	SeverityCritical   = "critical"
	SeverityOutOfStock = "out_of_stock"
)

// Stock record sources. Primary-ledger records support last-alert write-back;
// legacy-ledger records are read-only.
const (
	SourcePrimary = "primary"
	SourceLegacy  = "legacy"
)

// StockRecord is the quantity of one material at one warehouse, from
// whichever of the two source ledgers produced it.
type StockRecord struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	WarehouseID uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	Material    string     `json:"material" db:"material"`
	Quantity    float64    `json:"quantity" db:"quantity"`
	Threshold   float64    `json:"threshold" db:"threshold"`
	Unit        string     `json:"unit" db:"unit"`
	Severity    string     `json:"severity"`
	Source      string     `json:"source"`
	LastAlertAt *time.Time `json:"last_alert_at,omitempty" db:"last_alert_at"`
	LastUpdated time.Time  `json:"last_updated" db:"last_updated"`
}

// LegacyStockRecord is a row from the legacy ledger. It carries a free-text
// location instead of a warehouse id; the reconciler joins it to a warehouse
// by city-substring match.
type LegacyStockRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Material    string    `json:"material" db:"material"`
	Location    string    `json:"location" db:"location"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	Threshold   float64   `json:"threshold" db:"threshold"`
	Unit        string    `json:"unit" db:"unit"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// ShortageAmount is threshold minus quantity when the record is short, else 0.
func (s *StockRecord) ShortageAmount() float64 {
	if s.Quantity >= s.Threshold {
		return 0
	}
	return s.Threshold - s.Quantity
}

// ClassifySeverity maps a primary-ledger stock level to its severity tier.
func ClassifySeverity(quantity, threshold float64) string {
	switch {
	case quantity == 0:
		return SeverityOutOfStock
	case quantity < 0.25*threshold:
		return SeverityCritical
	case quantity < threshold:
		return SeverityLow
	default:
		return SeverityNormal
	}
}

// ClassifyLegacySeverity maps a legacy-ledger stock level to its severity
// tier. The legacy ledger draws the critical boundary at 50% of threshold,
// not 25%; records read from it keep their own classification rather than
// being re-derived with the primary boundary.
func ClassifyLegacySeverity(quantity, threshold float64) string {
	switch {
	case quantity == 0:
		return SeverityOutOfStock
	case quantity < 0.5*threshold:
		return SeverityCritical
	case quantity < threshold:
		return SeverityLow
	default:
		return SeverityNormal
	}
}

// StockPercent is the rounded percentage of threshold currently held.
// A zero threshold counts as fully stocked.
func StockPercent(quantity, threshold float64) int {
	if threshold == 0 {
		return 100
	}
	return int(math.Round(quantity / threshold * 100))
}

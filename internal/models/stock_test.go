package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		want      string
	}{
		{"zero quantity", 0, 300, SeverityOutOfStock},
		{"below quarter", 74, 300, SeverityCritical},
		{"exactly quarter", 75, 300, SeverityLow},
		{"half threshold", 150, 300, SeverityLow},
		{"just below threshold", 299, 300, SeverityLow},
		{"at threshold", 300, 300, SeverityNormal},
		{"above threshold", 850, 300, SeverityNormal},
		{"zero threshold zero stock", 0, 0, SeverityOutOfStock},
		{"zero threshold with stock", 5, 0, SeverityNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.quantity, tt.threshold))
		})
	}
}

func TestClassifyLegacySeverity(t *testing.T) {
	// The legacy ledger draws its critical boundary at 50%, not 25%.
	tests := []struct {
		name      string
		quantity  float64
		threshold float64
		want      string
	}{
		{"zero quantity", 0, 300, SeverityOutOfStock},
		{"below half", 149, 300, SeverityCritical},
		{"exactly half", 150, 300, SeverityLow},
		{"just below threshold", 299, 300, SeverityLow},
		{"at threshold", 300, 300, SeverityNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLegacySeverity(tt.quantity, tt.threshold))
		})
	}
}

func TestClassifySeverity_BoundariesDiverge(t *testing.T) {
	// 40% of threshold is low for the primary ledger but critical for the
	// legacy ledger; reclassifying across sources would change meaning.
	assert.Equal(t, SeverityLow, ClassifySeverity(120, 300))
	assert.Equal(t, SeverityCritical, ClassifyLegacySeverity(120, 300))
}

func TestStockPercent(t *testing.T) {
	assert.Equal(t, 50, StockPercent(150, 300))
	assert.Equal(t, 100, StockPercent(300, 300))
	assert.Equal(t, 283, StockPercent(850, 300))
	assert.Equal(t, 0, StockPercent(0, 300))
	assert.Equal(t, 33, StockPercent(1, 3))
	assert.Equal(t, 100, StockPercent(0, 0)) // zero threshold counts as fully stocked
}

func TestShortageAmount(t *testing.T) {
	short := &StockRecord{Quantity: 150, Threshold: 300}
	assert.Equal(t, 150.0, short.ShortageAmount())

	ok := &StockRecord{Quantity: 300, Threshold: 300}
	assert.Equal(t, 0.0, ok.ShortageAmount())
}

func TestWarehouseHasCoordinates(t *testing.T) {
	lat, lon := 21.1458, 79.0882
	badLat := 95.0

	assert.True(t, (&Warehouse{Latitude: &lat, Longitude: &lon}).HasCoordinates())
	assert.False(t, (&Warehouse{Latitude: &lat}).HasCoordinates())
	assert.False(t, (&Warehouse{}).HasCoordinates())
	assert.False(t, (&Warehouse{Latitude: &badLat, Longitude: &lon}).HasCoordinates())
}

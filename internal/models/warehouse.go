package models

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse operational statuses
const (
	WarehouseOperational = "operational"
	WarehouseMaintenance = "maintenance"
	WarehouseFull        = "full"
	WarehouseClosed      = "closed"
)

type Warehouse struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      *string   `json:"address" db:"address"`
	City         string    `json:"city" db:"city"`
	State        *string   `json:"state" db:"state"`
	Latitude     *float64  `json:"latitude" db:"latitude"`
	Longitude    *float64  `json:"longitude" db:"longitude"`
	Capacity     *float64  `json:"capacity" db:"capacity"`
	UsedCapacity *float64  `json:"used_capacity" db:"used_capacity"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the warehouse can participate in geospatial
// search: both coordinates present and within valid ranges. A warehouse
// without usable coordinates is excluded from distance computation entirely.
func (w *Warehouse) HasCoordinates() bool {
	if w.Latitude == nil || w.Longitude == nil {
		return false
	}
	return *w.Latitude >= -90 && *w.Latitude <= 90 &&
		*w.Longitude >= -180 && *w.Longitude <= 180
}

// ValidWarehouseStatus reports whether s is one of the known statuses.
func ValidWarehouseStatus(s string) bool {
	switch s {
	case WarehouseOperational, WarehouseMaintenance, WarehouseFull, WarehouseClosed:
		return true
	}
	return false
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"buildstock/internal/caching"
	"buildstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ShortageHandlers exposes the shortage-check workflow over HTTP: single
// checks, the network-wide sweep, and the resupply preview.
type ShortageHandlers struct {
	alertService     services.AlertService
	inventoryService services.InventoryService
	resupplyService  services.ResupplyService
	cacheSvc         caching.CacheService
}

func NewShortageHandlers(alertService services.AlertService, inventoryService services.InventoryService,
	resupplyService services.ResupplyService, cacheSvc caching.CacheService) *ShortageHandlers {
	return &ShortageHandlers{
		alertService:     alertService,
		inventoryService: inventoryService,
		resupplyService:  resupplyService,
		cacheSvc:         cacheSvc,
	}
}

// CheckStockRequest identifies the (warehouse, material) pair to check.
type CheckStockRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Material    string `json:"material"`
}

// CheckStock runs a single shortage check and returns either a sufficiency
// payload or the full alert record.
func (h *ShortageHandlers) CheckStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req CheckStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Material == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Material is required")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	result, err := h.alertService.CheckStock(ctx, warehouseID, req.Material)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownWarehouse):
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		case errors.Is(err, services.ErrNotTracked):
			return echo.NewHTTPError(http.StatusNotFound, "Material is not tracked at this warehouse")
		case errors.Is(err, services.ErrInvalidGeometry):
			// The shortage finding is still valid; only candidate ranking
			// was impossible. Return the detection with the geometry error.
			return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  err.Error(),
				"result": result,
			})
		default:
			log.Printf("Stock check failed for %s/%s: %v", req.WarehouseID, req.Material, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Stock check failed")
		}
	}

	if result.Sufficient != nil {
		return c.JSON(http.StatusOK, result.Sufficient)
	}
	return c.JSON(http.StatusOK, result.Alert)
}

// RunSweep checks every shortage across the warehouse network.
func (h *ShortageHandlers) RunSweep(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.alertService.RunSweep(ctx)
	if err != nil {
		log.Printf("Network sweep failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Network sweep failed")
	}

	return c.JSON(http.StatusOK, result)
}

// LastSweep returns the most recent sweep result, if one is cached.
func (h *ShortageHandlers) LastSweep(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.cacheSvc.GetLastSweep(ctx)
	if err != nil {
		log.Printf("Failed to read last sweep from cache: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load last sweep")
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No sweep has run yet")
	}

	return c.JSON(http.StatusOK, result)
}

// ResupplyPreviewRequest represents query parameters for the resupply preview.
type ResupplyPreviewRequest struct {
	WarehouseID string  `query:"warehouse_id"`
	Material    string  `query:"material"`
	RadiusKm    float64 `query:"radius_km"`
}

// ResupplyPreview ranks transfer candidates for a pair without dispatching
// any alert. Useful for planning a transfer before stock actually runs short.
func (h *ShortageHandlers) ResupplyPreview(c echo.Context) error {
	ctx := c.Request().Context()

	var req ResupplyPreviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Material == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Material is required")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	warehouse, err := h.inventoryService.GetWarehouse(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		log.Printf("Failed to load warehouse %s: %v", req.WarehouseID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load warehouse")
	}

	candidates, err := h.resupplyService.FindResupply(ctx, warehouse, req.Material, req.RadiusKm)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGeometry) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		log.Printf("Resupply preview failed for %s/%s: %v", req.WarehouseID, req.Material, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Resupply preview failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouse_id": warehouseID,
		"material":     req.Material,
		"candidates":   candidates,
	})
}

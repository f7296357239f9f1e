package handlers

import (
	"errors"
	"log"
	"net/http"

	"buildstock/internal/models"
	"buildstock/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StockHandlers handles primary-ledger stock HTTP requests.
type StockHandlers struct {
	stockService     services.StockService
	inventoryService services.InventoryService
}

func NewStockHandlers(stockService services.StockService, inventoryService services.InventoryService) *StockHandlers {
	return &StockHandlers{
		stockService:     stockService,
		inventoryService: inventoryService,
	}
}

// UpsertStockRequest represents a stock level write.
type UpsertStockRequest struct {
	WarehouseID string  `json:"warehouse_id"`
	Material    string  `json:"material"`
	Quantity    float64 `json:"quantity"`
	Threshold   float64 `json:"threshold"`
	Unit        string  `json:"unit"`
}

func (h *StockHandlers) UpsertStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpsertStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	record := &models.StockRecord{
		WarehouseID: warehouseID,
		Material:    req.Material,
		Quantity:    req.Quantity,
		Threshold:   req.Threshold,
		Unit:        req.Unit,
	}

	if err := h.stockService.UpsertStock(ctx, record); err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record.Source = models.SourcePrimary
	record.Severity = models.ClassifySeverity(record.Quantity, record.Threshold)
	return c.JSON(http.StatusOK, record)
}

// ListStockRequest represents query parameters for listing stock records.
type ListStockRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *StockHandlers) ListStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	records, err := h.stockService.ListStock(ctx, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Failed to list stock records: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list stock records")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// ListLowStock returns every primary-ledger record below its threshold.
func (h *StockHandlers) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.stockService.ListLowStock(ctx)
	if err != nil {
		log.Printf("Failed to list low stock: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list low stock")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// GetStock resolves the reconciled stock view for one pair, falling back to
// the legacy ledger when the primary has no record.
func (h *StockHandlers) GetStock(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}
	material := c.Param("material")
	if material == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Material is required")
	}

	record, err := h.inventoryService.Lookup(ctx, warehouseID, material)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownWarehouse):
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		case errors.Is(err, services.ErrNotTracked):
			return echo.NewHTTPError(http.StatusNotFound, "Material is not tracked at this warehouse")
		default:
			log.Printf("Failed to look up stock for %s/%s: %v", warehouseID.String(), material, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up stock")
		}
	}

	return c.JSON(http.StatusOK, record)
}

func (h *StockHandlers) DeleteStock(c echo.Context) error {
	ctx := c.Request().Context()

	warehouseID, err := uuid.Parse(c.Param("warehouse_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}
	material := c.Param("material")
	if material == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Material is required")
	}

	if err := h.stockService.DeleteStock(ctx, warehouseID, material); err != nil {
		log.Printf("Failed to delete stock for %s/%s: %v", warehouseID.String(), material, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete stock record")
	}

	return c.NoContent(http.StatusNoContent)
}

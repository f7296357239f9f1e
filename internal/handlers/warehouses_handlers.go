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

// WarehouseHandlers handles warehouse registry HTTP requests.
type WarehouseHandlers struct {
	warehouseService services.WarehouseService
}

func NewWarehouseHandlers(warehouseService services.WarehouseService) *WarehouseHandlers {
	return &WarehouseHandlers{warehouseService: warehouseService}
}

// ListWarehousesRequest represents query parameters for listing warehouses.
type ListWarehousesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *WarehouseHandlers) ListWarehouses(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListWarehousesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	warehouses, err := h.warehouseService.ListWarehouses(ctx, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Failed to list warehouses: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list warehouses")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouses": warehouses,
		"count":      len(warehouses),
	})
}

// CreateWarehouseRequest represents the warehouse creation payload.
type CreateWarehouseRequest struct {
	Name         string   `json:"name"`
	Address      *string  `json:"address"`
	City         string   `json:"city"`
	State        *string  `json:"state"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Capacity     *float64 `json:"capacity"`
	UsedCapacity *float64 `json:"used_capacity"`
	Status       string   `json:"status"`
}

func (h *WarehouseHandlers) CreateWarehouse(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	warehouse := &models.Warehouse{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Capacity:     req.Capacity,
		UsedCapacity: req.UsedCapacity,
		Status:       req.Status,
	}

	if err := h.warehouseService.CreateWarehouse(ctx, warehouse); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, warehouse)
}

func (h *WarehouseHandlers) GetWarehouse(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	warehouse, err := h.warehouseService.GetWarehouse(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		log.Printf("Failed to get warehouse %s: %v", id.String(), err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get warehouse")
	}

	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandlers) UpdateWarehouse(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	var req CreateWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	warehouse := &models.Warehouse{
		ID:           id,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Capacity:     req.Capacity,
		UsedCapacity: req.UsedCapacity,
		Status:       req.Status,
	}

	if err := h.warehouseService.UpdateWarehouse(ctx, warehouse); err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, warehouse)
}

// UpdateStatusRequest carries a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *WarehouseHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.warehouseService.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":     id,
		"status": req.Status,
	})
}

func (h *WarehouseHandlers) DeleteWarehouse(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid warehouse id")
	}

	if err := h.warehouseService.DeleteWarehouse(ctx, id); err != nil {
		if errors.Is(err, services.ErrUnknownWarehouse) {
			return echo.NewHTTPError(http.StatusNotFound, "Warehouse not found")
		}
		log.Printf("Failed to delete warehouse %s: %v", id.String(), err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete warehouse")
	}

	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"time"

	"buildstock/internal/caching"
	"buildstock/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers reports liveness and dependency readiness.
type HealthHandlers struct {
	db       repositories.DB
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db repositories.DB, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// HealthStatus represents the overall health response.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck verifies database and cache connectivity. The cache being down
// degrades the report but is not fatal; checks fall through to the registry.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "unhealthy"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		if health.Status == "healthy" {
			health.Status = "degraded"
		}
	} else {
		health.Services["redis"] = "healthy"
	}

	code := http.StatusOK
	if health.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}

// Liveness is a bare process-up probe.
func (h *HealthHandlers) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
}

package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"buildstock/internal/caching"
	"buildstock/internal/handlers"
	"buildstock/internal/jobs/background"
	"buildstock/internal/repositories"
	"buildstock/internal/services"
	"buildstock/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envInt("REDIS_DB", 0)

	// MinIO configuration for the alert archive
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	alertBucket := os.Getenv("ALERT_ARCHIVE_BUCKET")
	if alertBucket == "" {
		alertBucket = "stock-alerts"
	}

	// Repositories
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	legacyRepo := repositories.NewLegacyStockRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	inventorySvc := services.NewInventoryService(stockRepo, legacyRepo, warehouseRepo, cacheSvc)
	resupplySvc := services.NewResupplyService(warehouseRepo, inventorySvc)
	warehouseSvc := services.NewWarehouseService(warehouseRepo, cacheSvc)
	stockSvc := services.NewStockService(stockRepo, warehouseRepo)
	notificationSvc := services.NewNotificationService(redisAddr, redisPassword, redisDB)

	var archiveSvc services.AlertArchiveService
	archiveSvc, err = services.NewAlertArchiveService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL, alertBucket)
	if err != nil {
		log.Printf("Alert archive unavailable, alerts will not be archived: %v", err)
		archiveSvc = nil
	} else if err := archiveSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("Failed to ensure alert archive bucket %q: %v", alertBucket, err)
	}

	alertSvc := services.NewAlertService(inventorySvc, resupplySvc, stockRepo, notificationSvc, archiveSvc, cacheSvc,
		services.AlertConfig{
			SearchRadiusKm:  envFloat("SEARCH_RADIUS_KM", 0),
			DispatchTimeout: time.Duration(envInt("DISPATCH_TIMEOUT_SECONDS", 0)) * time.Second,
			AlertCooldown:   time.Duration(envInt("ALERT_COOLDOWN_MINUTES", 0)) * time.Minute,
		})

	// Handlers
	shortageHandlers := handlers.NewShortageHandlers(alertSvc, inventorySvc, resupplySvc, cacheSvc)
	warehouseHandlers := handlers.NewWarehouseHandlers(warehouseSvc)
	stockHandlers := handlers.NewStockHandlers(stockSvc, inventorySvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// JWT configuration: JWKS endpoint when configured, shared secret otherwise
	jwtConfig := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(401, "Invalid token")
		},
	}
	if jwksURL := os.Getenv("JWKS_URL"); jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval:  time.Hour,
			RefreshRateLimit: time.Minute,
			RefreshErrorHandler: func(err error) {
				log.Printf("JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", jwksURL, err)
		}
		jwtConfig.KeyFunc = jwks.Keyfunc
	} else {
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = random.String(32)
			log.Printf("WARNING: JWT_SECRET not set, using generated secret")
		}
		jwtConfig.SigningKey = []byte(jwtSecret)
	}

	// Background sweep
	sweepInterval := time.Duration(envInt("SWEEP_INTERVAL_MINUTES", 30)) * time.Minute
	scheduler := background.NewJobScheduler(alertSvc, sweepInterval)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.Liveness)

	// Protected API routes
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(jwtConfig))

	v1.POST("/shortages/check", shortageHandlers.CheckStock)
	v1.POST("/shortages/sweep", shortageHandlers.RunSweep)
	v1.GET("/shortages/sweep/last", shortageHandlers.LastSweep)
	v1.GET("/shortages/resupply", shortageHandlers.ResupplyPreview)

	v1.GET("/warehouses", warehouseHandlers.ListWarehouses)
	v1.POST("/warehouses", warehouseHandlers.CreateWarehouse)
	v1.GET("/warehouses/:id", warehouseHandlers.GetWarehouse)
	v1.PUT("/warehouses/:id", warehouseHandlers.UpdateWarehouse)
	v1.PATCH("/warehouses/:id/status", warehouseHandlers.UpdateStatus)
	v1.DELETE("/warehouses/:id", warehouseHandlers.DeleteWarehouse)

	v1.POST("/stock", stockHandlers.UpsertStock)
	v1.GET("/stock", stockHandlers.ListStock)
	v1.GET("/stock/low", stockHandlers.ListLowStock)
	v1.GET("/stock/:warehouse_id/:material", stockHandlers.GetStock)
	v1.DELETE("/stock/:warehouse_id/:material", stockHandlers.DeleteStock)

	v1.GET("/notifications/config", notificationHandlers.GetConfig)
	v1.PUT("/notifications/config", notificationHandlers.UpdateConfig)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

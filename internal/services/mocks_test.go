package services

import (
	"context"
	"time"

	"buildstock/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service test suites.

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Upsert(ctx context.Context, record *models.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRepository) GetByWarehouseAndMaterial(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error) {
	args := m.Called(ctx, warehouseID, material)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockRecord), args.Error(1)
}

func (m *MockStockRepository) List(ctx context.Context, limit, offset int) ([]*models.StockRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockRecord), args.Error(1)
}

func (m *MockStockRepository) ListBelowThreshold(ctx context.Context) ([]*models.StockRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockRecord), args.Error(1)
}

func (m *MockStockRepository) StampLastAlert(ctx context.Context, warehouseID uuid.UUID, material string, at time.Time) error {
	args := m.Called(ctx, warehouseID, material, at)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, warehouseID uuid.UUID, material string) error {
	args := m.Called(ctx, warehouseID, material)
	return args.Error(0)
}

type MockLegacyStockRepository struct {
	mock.Mock
}

func (m *MockLegacyStockRepository) FindByMaterialAndCity(ctx context.Context, material, city string) ([]*models.LegacyStockRecord, error) {
	args := m.Called(ctx, material, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LegacyStockRecord), args.Error(1)
}

func (m *MockLegacyStockRepository) ListBelowThreshold(ctx context.Context) ([]*models.LegacyStockRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LegacyStockRecord), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) ListOperational(ctx context.Context) ([]*models.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockCacheService) SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error {
	args := m.Called(ctx, warehouse, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCacheService) SetLastSweep(ctx context.Context, result *models.SweepResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockCacheService) GetLastSweep(ctx context.Context) (*models.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SweepResult), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAllCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Lookup(ctx context.Context, warehouseID uuid.UUID, material string) (*models.StockRecord, error) {
	args := m.Called(ctx, warehouseID, material)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockRecord), args.Error(1)
}

func (m *MockInventoryService) AllShortages(ctx context.Context) ([]*models.StockRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StockRecord), args.Error(1)
}

func (m *MockInventoryService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

type MockResupplyService struct {
	mock.Mock
}

func (m *MockResupplyService) FindResupply(ctx context.Context, origin *models.Warehouse, material string, radiusKm float64) ([]models.ResupplyCandidate, error) {
	args := m.Called(ctx, origin, material, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResupplyCandidate), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) DispatchAlert(ctx context.Context, alert *models.AlertRecord) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockNotificationService) UpdateConfig(ctx context.Context, config *models.NotificationConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockNotificationService) GetConfig(ctx context.Context) (*models.NotificationConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationConfig), args.Error(1)
}

func (m *MockNotificationService) SendWebhook(ctx context.Context, url string, payload any) error {
	args := m.Called(ctx, url, payload)
	return args.Error(0)
}

func (m *MockNotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func (m *MockNotificationService) SendSMS(ctx context.Context, recipient, message string) error {
	args := m.Called(ctx, recipient, message)
	return args.Error(0)
}

type MockAlertArchiveService struct {
	mock.Mock
}

func (m *MockAlertArchiveService) ArchiveAlert(ctx context.Context, alert *models.AlertRecord) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertArchiveService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

package services

import (
	"context"
	"testing"
	"time"

	"buildstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockStockRepo     *MockStockRepository
	mockLegacyRepo    *MockLegacyStockRepository
	mockWarehouseRepo *MockWarehouseRepository
	mockCache         *MockCacheService
	service           InventoryService
	warehouseID       uuid.UUID
	warehouse         *models.Warehouse
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockStockRepo = &MockStockRepository{}
	suite.mockLegacyRepo = &MockLegacyStockRepository{}
	suite.mockWarehouseRepo = &MockWarehouseRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewInventoryService(suite.mockStockRepo, suite.mockLegacyRepo, suite.mockWarehouseRepo, suite.mockCache)
	suite.warehouseID = uuid.New()
	suite.warehouse = &models.Warehouse{
		ID:     suite.warehouseID,
		Name:   "Nagpur Central",
		City:   "Nagpur",
		Status: models.WarehouseOperational,
	}
}

func (suite *InventoryServiceTestSuite) TearDownTest() {
	suite.mockStockRepo.AssertExpectations(suite.T())
	suite.mockLegacyRepo.AssertExpectations(suite.T())
	suite.mockWarehouseRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func (suite *InventoryServiceTestSuite) expectWarehouseLoad() {
	suite.mockCache.On("GetWarehouse", mock.Anything, suite.warehouseID).Return(nil, nil).Once()
	suite.mockWarehouseRepo.On("GetByID", mock.Anything, suite.warehouseID).Return(suite.warehouse, nil).Once()
	suite.mockCache.On("SetWarehouse", mock.Anything, suite.warehouse, mock.Anything).Return(nil).Once()
}

func (suite *InventoryServiceTestSuite) TestLookup_PrimaryRecordWins() {
	suite.expectWarehouseLoad()
	record := &models.StockRecord{
		ID:          uuid.New(),
		WarehouseID: suite.warehouseID,
		Material:    "Cement",
		Quantity:    40,
		Threshold:   100,
	}
	suite.mockStockRepo.On("GetByWarehouseAndMaterial", mock.Anything, suite.warehouseID, "Cement").Return(record, nil).Once()

	got, err := suite.service.Lookup(context.Background(), suite.warehouseID, "Cement")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SourcePrimary, got.Source)
	// 40% of threshold is low under the primary boundary, not critical.
	assert.Equal(suite.T(), models.SeverityLow, got.Severity)
}

func (suite *InventoryServiceTestSuite) TestLookup_LegacyFallbackKeepsLegacySeverity() {
	suite.expectWarehouseLoad()
	suite.mockStockRepo.On("GetByWarehouseAndMaterial", mock.Anything, suite.warehouseID, "Cement").
		Return(nil, pgx.ErrNoRows).Once()
	legacyRecord := &models.LegacyStockRecord{
		ID:          uuid.New(),
		Material:    "cement",
		Location:    "Nagpur Industrial Area",
		Quantity:    40,
		Threshold:   100,
		Unit:        "bags",
		LastUpdated: time.Now(),
	}
	suite.mockLegacyRepo.On("FindByMaterialAndCity", mock.Anything, "Cement", "Nagpur").
		Return([]*models.LegacyStockRecord{legacyRecord}, nil).Once()

	got, err := suite.service.Lookup(context.Background(), suite.warehouseID, "Cement")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SourceLegacy, got.Source)
	assert.Equal(suite.T(), suite.warehouseID, got.WarehouseID)
	// 40% of threshold crosses the legacy 50% boundary.
	assert.Equal(suite.T(), models.SeverityCritical, got.Severity)
	assert.Equal(suite.T(), 40.0, got.Quantity)
}

func (suite *InventoryServiceTestSuite) TestLookup_NotTrackedAnywhere() {
	suite.expectWarehouseLoad()
	suite.mockStockRepo.On("GetByWarehouseAndMaterial", mock.Anything, suite.warehouseID, "Gravel").
		Return(nil, pgx.ErrNoRows).Once()
	suite.mockLegacyRepo.On("FindByMaterialAndCity", mock.Anything, "Gravel", "Nagpur").
		Return([]*models.LegacyStockRecord{}, nil).Once()

	got, err := suite.service.Lookup(context.Background(), suite.warehouseID, "Gravel")

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, ErrNotTracked)
}

func (suite *InventoryServiceTestSuite) TestLookup_NoCitySkipsLegacyJoin() {
	suite.warehouse.City = ""
	suite.expectWarehouseLoad()
	suite.mockStockRepo.On("GetByWarehouseAndMaterial", mock.Anything, suite.warehouseID, "Cement").
		Return(nil, pgx.ErrNoRows).Once()

	got, err := suite.service.Lookup(context.Background(), suite.warehouseID, "Cement")

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, ErrNotTracked)
}

func (suite *InventoryServiceTestSuite) TestGetWarehouse_UnknownID() {
	id := uuid.New()
	suite.mockCache.On("GetWarehouse", mock.Anything, id).Return(nil, nil).Once()
	suite.mockWarehouseRepo.On("GetByID", mock.Anything, id).Return(nil, pgx.ErrNoRows).Once()

	got, err := suite.service.GetWarehouse(context.Background(), id)

	assert.Nil(suite.T(), got)
	assert.ErrorIs(suite.T(), err, ErrUnknownWarehouse)
}

func (suite *InventoryServiceTestSuite) TestGetWarehouse_CacheHitSkipsRegistry() {
	suite.mockCache.On("GetWarehouse", mock.Anything, suite.warehouseID).Return(suite.warehouse, nil).Once()

	got, err := suite.service.GetWarehouse(context.Background(), suite.warehouseID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.warehouse, got)
}

func (suite *InventoryServiceTestSuite) TestAllShortages_DeduplicatesWithPrimaryPrecedence() {
	otherWarehouse := &models.Warehouse{
		ID:   uuid.New(),
		Name: "Pune Depot",
		City: "Pune",
	}

	primaryShortage := &models.StockRecord{
		ID:          uuid.New(),
		WarehouseID: suite.warehouseID,
		Material:    "Cement",
		Quantity:    10,
		Threshold:   100,
	}
	suite.mockStockRepo.On("ListBelowThreshold", mock.Anything).
		Return([]*models.StockRecord{primaryShortage}, nil).Once()

	legacyRows := []*models.LegacyStockRecord{
		// Same pair as the primary shortage, different case. Must be dropped.
		{ID: uuid.New(), Material: "cement", Location: "Nagpur Industrial Area", Quantity: 5, Threshold: 100},
		// Matches no warehouse city. Invisible to the sweep.
		{ID: uuid.New(), Material: "steel", Location: "Bhopal Yard", Quantity: 2, Threshold: 50},
		// New pair at another warehouse. Must be synthesized.
		{ID: uuid.New(), Material: "sand", Location: "Pune South Yard", Quantity: 20, Threshold: 60},
	}
	suite.mockLegacyRepo.On("ListBelowThreshold", mock.Anything).Return(legacyRows, nil).Once()
	suite.mockWarehouseRepo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Warehouse{suite.warehouse, otherWarehouse}, nil).Once()

	shortages, err := suite.service.AllShortages(context.Background())

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), shortages, 2)
	assert.Equal(suite.T(), models.SourcePrimary, shortages[0].Source)
	assert.Equal(suite.T(), "Cement", shortages[0].Material)
	assert.Equal(suite.T(), models.SourceLegacy, shortages[1].Source)
	assert.Equal(suite.T(), "sand", shortages[1].Material)
	assert.Equal(suite.T(), otherWarehouse.ID, shortages[1].WarehouseID)
}

func (suite *InventoryServiceTestSuite) TestAllShortages_NoLegacyRows() {
	suite.mockStockRepo.On("ListBelowThreshold", mock.Anything).
		Return([]*models.StockRecord{}, nil).Once()
	suite.mockLegacyRepo.On("ListBelowThreshold", mock.Anything).
		Return([]*models.LegacyStockRecord{}, nil).Once()

	shortages, err := suite.service.AllShortages(context.Background())

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), shortages)
}

package repositories

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LegacyStockRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    LegacyStockRepository
	context context.Context
}

func (suite *LegacyStockRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewLegacyStockRepository(mock)
	suite.context = context.Background()
}

func (suite *LegacyStockRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestLegacyStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(LegacyStockRepoTestSuite))
}

func (suite *LegacyStockRepoTestSuite) TestFindByMaterialAndCity_MostRecentFirst() {
	now := time.Now()
	older := now.Add(-48 * time.Hour)

	rows := pgxmock.NewRows([]string{"id", "material", "location", "quantity", "threshold", "unit", "last_updated"}).
		AddRow(uuid.New(), "cement", "Nagpur Industrial Area", 40.0, 100.0, "bags", now).
		AddRow(uuid.New(), "Cement", "Old Nagpur Depot", 20.0, 100.0, "bags", older)

	suite.mock.ExpectQuery(`FROM legacy_stock`).
		WithArgs("Cement", "Nagpur").
		WillReturnRows(rows)

	records, err := suite.repo.FindByMaterialAndCity(suite.context, "Cement", "Nagpur")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 2)
	assert.Equal(suite.T(), "Nagpur Industrial Area", records[0].Location)
}

func (suite *LegacyStockRepoTestSuite) TestFindByMaterialAndCity_NoMatch() {
	rows := pgxmock.NewRows([]string{"id", "material", "location", "quantity", "threshold", "unit", "last_updated"})

	suite.mock.ExpectQuery(`FROM legacy_stock`).
		WithArgs("Gravel", "Pune").
		WillReturnRows(rows)

	records, err := suite.repo.FindByMaterialAndCity(suite.context, "Gravel", "Pune")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), records)
}

func (suite *LegacyStockRepoTestSuite) TestListBelowThreshold() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "material", "location", "quantity", "threshold", "unit", "last_updated"}).
		AddRow(uuid.New(), "steel", "Pune South Yard", 5.0, 50.0, "tons", now)

	suite.mock.ExpectQuery(`WHERE quantity < threshold`).WillReturnRows(rows)

	records, err := suite.repo.ListBelowThreshold(suite.context)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1)
	assert.Equal(suite.T(), "steel", records[0].Material)
}

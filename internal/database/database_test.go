package database

import (
	"testing"

	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	m.Run()
}

func TestMigrate_SeedsSingleStateRow(t *testing.T) {
	db, err := Connect(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	// running twice must not add a second row
	require.NoError(t, Migrate(db))

	var count int64
	require.NoError(t, db.Model(&models.LedgerState{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var state models.LedgerState
	require.NoError(t, db.First(&state, models.LedgerStateID).Error)
	assert.True(t, state.TotalCollected.IsZero())
	assert.True(t, state.TotalExpenditure.IsZero())
	assert.False(t, state.HasFinancePin())
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect("oracle", "whatever")
	assert.Error(t, err)
}

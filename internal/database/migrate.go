package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every ledger table and seeds the aggregate row
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllTables()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	state := models.LedgerState{
		ID:               models.LedgerStateID,
		TotalCollected:   decimal.Zero,
		TotalExpenditure: decimal.Zero,
	}
	if err := db.Where("id = ?", models.LedgerStateID).FirstOrCreate(&state).Error; err != nil {
		return fmt.Errorf("failed to seed ledger state: %w", err)
	}
	return nil
}

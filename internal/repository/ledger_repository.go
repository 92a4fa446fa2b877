package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRepository owns the singleton aggregate row
type StateRepository interface {
	Get(ctx context.Context) (*models.LedgerState, error)
	// GetForUpdate reads the row and holds it until the transaction ends
	GetForUpdate(ctx context.Context) (*models.LedgerState, error)
	AddCollected(ctx context.Context, amount decimal.Decimal) error
	AddExpenditure(ctx context.Context, amount decimal.Decimal) error
	SetFinancePin(ctx context.Context, pin *string) error
	ResetTotals(ctx context.Context) error
	Replace(ctx context.Context, state *models.LedgerState) error
}

// stateRepository handles database operations for the ledger state
type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a new state repository
func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

// Get retrieves the aggregate row
func (r *stateRepository) Get(ctx context.Context) (*models.LedgerState, error) {
	var state models.LedgerState
	if err := r.db.WithContext(ctx).First(&state, models.LedgerStateID).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// GetForUpdate locks the row on Postgres; SQLite already serializes writers
func (r *stateRepository) GetForUpdate(ctx context.Context) (*models.LedgerState, error) {
	db := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var state models.LedgerState
	if err := db.First(&state, models.LedgerStateID).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// AddCollected increments total_collected in a single statement
func (r *stateRepository) AddCollected(ctx context.Context, amount decimal.Decimal) error {
	return r.increment(ctx, "total_collected", amount)
}

// AddExpenditure increments total_expenditure in a single statement
func (r *stateRepository) AddExpenditure(ctx context.Context, amount decimal.Decimal) error {
	return r.increment(ctx, "total_expenditure", amount)
}

func (r *stateRepository) increment(ctx context.Context, column string, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.LedgerState{}).
		Where("id = ?", models.LedgerStateID).
		Update(column, gorm.Expr(column+" + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetFinancePin overwrites the stored finance PIN
func (r *stateRepository) SetFinancePin(ctx context.Context, pin *string) error {
	return r.db.WithContext(ctx).
		Model(&models.LedgerState{}).
		Where("id = ?", models.LedgerStateID).
		Update("finance_pin", pin).Error
}

// ResetTotals zeroes both totals and keeps the finance PIN
func (r *stateRepository) ResetTotals(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.LedgerState{}).
		Where("id = ?", models.LedgerStateID).
		Updates(map[string]interface{}{
			"total_collected":   decimal.Zero,
			"total_expenditure": decimal.Zero,
		}).Error
}

// Replace overwrites every aggregate field, creating the row if needed
func (r *stateRepository) Replace(ctx context.Context, state *models.LedgerState) error {
	state.ID = models.LedgerStateID
	return r.db.WithContext(ctx).Save(state).Error
}

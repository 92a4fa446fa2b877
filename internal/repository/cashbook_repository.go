package repository

import (
	"context"

	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

// CashbookRepository defines data access for the append-only expenditure and income books
type CashbookRepository interface {
	CreateExpenditure(ctx context.Context, expenditure *models.Expenditure) error
	CreateIncome(ctx context.Context, income *models.Income) error
	ListExpenditures(ctx context.Context, query *ListQuery) ([]models.Expenditure, error)
	ListIncomes(ctx context.Context, query *ListQuery) ([]models.Income, error)
}

type cashbookRepository struct {
	db *gorm.DB
}

// NewCashbookRepository creates a new cashbook repository
func NewCashbookRepository(db *gorm.DB) CashbookRepository {
	return &cashbookRepository{db: db}
}

func (r *cashbookRepository) CreateExpenditure(ctx context.Context, expenditure *models.Expenditure) error {
	return createRecord(ctx, r.db, expenditure)
}

func (r *cashbookRepository) CreateIncome(ctx context.Context, income *models.Income) error {
	return createRecord(ctx, r.db, income)
}

func (r *cashbookRepository) ListExpenditures(ctx context.Context, query *ListQuery) ([]models.Expenditure, error) {
	return listRecords[models.Expenditure](ctx, r.db, query, "", "date ASC, time ASC, id ASC")
}

func (r *cashbookRepository) ListIncomes(ctx context.Context, query *ListQuery) ([]models.Income, error) {
	return listRecords[models.Income](ctx, r.db, query, "", "date ASC, time ASC, id ASC")
}

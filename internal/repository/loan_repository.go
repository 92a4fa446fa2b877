package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

// LoanSummary aggregates the loans that are not yet cleared
type LoanSummary struct {
	Count     int64
	Remaining decimal.Decimal
}

// LoanRepository defines data access for loans and their repayments
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	Exists(ctx context.Context, id string) (bool, error)
	FindByIDAndName(ctx context.Context, id, name string) (*models.Loan, error)
	FindOpenByName(ctx context.Context, name string) (*models.Loan, error)
	UpdateRemaining(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context, query *ListQuery) ([]models.Loan, error)
	OpenSummary(ctx context.Context) (*LoanSummary, error)

	CreateRepayment(ctx context.Context, repayment *models.Repayment) error
	ListRepayments(ctx context.Context, query *ListQuery) ([]models.Repayment, error)
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return createRecord(ctx, r.db, loan)
}

// Exists reports whether a loan id is already taken
func (r *loanRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByIDAndName retrieves a loan by id for the given borrower
func (r *loanRepository) FindByIDAndName(ctx context.Context, id, name string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("id = ? AND name = ?", id, name).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindOpenByName retrieves the borrower's loan that is not yet cleared
func (r *loanRepository) FindOpenByName(ctx context.Context, name string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("name = ? AND status <> ?", name, models.LoanStatusCleared).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// UpdateRemaining persists the remaining balance and status
func (r *loanRepository) UpdateRemaining(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", loan.ID).
		Updates(map[string]interface{}{
			"total_remaining": loan.TotalRemaining,
			"status":          loan.Status,
		}).Error
}

func (r *loanRepository) List(ctx context.Context, query *ListQuery) ([]models.Loan, error) {
	return listRecords[models.Loan](ctx, r.db, query, "name", "date ASC, id ASC")
}

// OpenSummary counts non-cleared loans and sums what they still owe
func (r *loanRepository) OpenSummary(ctx context.Context) (*LoanSummary, error) {
	var row struct {
		Count     int64
		Remaining decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("COUNT(*) as count, COALESCE(SUM(total_remaining), 0) as remaining").
		Where("status <> ?", models.LoanStatusCleared).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &LoanSummary{Count: row.Count, Remaining: row.Remaining}, nil
}

func (r *loanRepository) CreateRepayment(ctx context.Context, repayment *models.Repayment) error {
	return createRecord(ctx, r.db, repayment)
}

func (r *loanRepository) ListRepayments(ctx context.Context, query *ListQuery) ([]models.Repayment, error) {
	return listRecords[models.Repayment](ctx, r.db, query, "name", "date ASC, id ASC")
}

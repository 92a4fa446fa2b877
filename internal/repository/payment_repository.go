package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository defines data access for member payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	UpdateBalance(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, query *ListQuery) ([]models.Payment, error)
	SumByHouse(ctx context.Context) (map[string]decimal.Decimal, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return createRecord(ctx, r.db, payment)
}

func (r *paymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateBalance persists amount and balance only; required never changes
func (r *paymentRepository) UpdateBalance(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"amount":  payment.Amount,
			"balance": payment.Balance,
		}).Error
}

func (r *paymentRepository) List(ctx context.Context, query *ListQuery) ([]models.Payment, error) {
	return listRecords[models.Payment](ctx, r.db, query, "name", "date ASC, time ASC, id ASC")
}

// SumByHouse totals payment amounts per house
func (r *paymentRepository) SumByHouse(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []struct {
		House string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("house, COALESCE(SUM(amount), 0) as total").
		Group("house").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.House] = row.Total
	}
	return totals, nil
}

// MinisterPaymentRepository defines data access for minister dues
type MinisterPaymentRepository interface {
	Create(ctx context.Context, payment *models.MinisterPayment) error
	FindByID(ctx context.Context, id string) (*models.MinisterPayment, error)
	UpdateBalance(ctx context.Context, payment *models.MinisterPayment) error
	List(ctx context.Context, query *ListQuery) ([]models.MinisterPayment, error)
}

type ministerPaymentRepository struct {
	db *gorm.DB
}

// NewMinisterPaymentRepository creates a new minister payment repository
func NewMinisterPaymentRepository(db *gorm.DB) MinisterPaymentRepository {
	return &ministerPaymentRepository{db: db}
}

func (r *ministerPaymentRepository) Create(ctx context.Context, payment *models.MinisterPayment) error {
	return createRecord(ctx, r.db, payment)
}

func (r *ministerPaymentRepository) FindByID(ctx context.Context, id string) (*models.MinisterPayment, error) {
	var payment models.MinisterPayment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *ministerPaymentRepository) UpdateBalance(ctx context.Context, payment *models.MinisterPayment) error {
	return r.db.WithContext(ctx).
		Model(&models.MinisterPayment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"paid":    payment.Paid,
			"balance": payment.Balance,
		}).Error
}

func (r *ministerPaymentRepository) List(ctx context.Context, query *ListQuery) ([]models.MinisterPayment, error) {
	return listRecords[models.MinisterPayment](ctx, r.db, query, "name", "date ASC, id ASC")
}

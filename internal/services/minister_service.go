package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
)

const (
	opAddMinisterPayment    = "add_minister_payment"
	opSettleMinisterBalance = "settle_minister_balance"
)

// MinisterPaymentInput carries dues paid by a minister
type MinisterPaymentInput struct {
	Name   string
	Type   string
	Amount decimal.Decimal
	Date   string
}

// MinisterService records minister dues; it mirrors PaymentService
type MinisterService struct {
	*Ledger
}

// NewMinisterService creates a new minister service
func NewMinisterService(ledger *Ledger) *MinisterService {
	return &MinisterService{Ledger: ledger}
}

// Add records minister dues against the fixed price of the fee type
func (s *MinisterService) Add(ctx context.Context, id access.Identity, in MinisterPaymentInput) (receipt *Receipt, err error) {
	defer s.track(opAddMinisterPayment, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	if !required(in.Name, in.Type) {
		return nil, invalid("Fill minister payment fields")
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("Enter paid amount")
	}

	requiredAmount := s.rules.RequiredAmount(in.Type, in.Amount)
	payment := &models.MinisterPayment{
		ID:       models.NewID(models.TagMinisterPayment),
		Name:     in.Name,
		Type:     in.Type,
		Required: requiredAmount,
		Paid:     in.Amount,
		Balance:  rules.Balance(requiredAmount, in.Amount),
		Date:     date,
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Minister.Create(ctx, payment); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, payment.Paid)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddMinisterPayment, id, payment.ID, BookCollected, payment.Paid)

	return newReceipt("Minister Payment", payment.ID).
		add("Name", payment.Name).
		add("Type", payment.Type).
		add("Paid", FormatMoney(payment.Paid)).
		add("Required", FormatMoney(payment.Required)).
		add("Balance", FormatMoney(payment.Balance)).
		add("Date", payment.Date+" "+s.clock()), nil
}

// SettleBalance pays up to amount towards a minister's outstanding dues
func (s *MinisterService) SettleBalance(ctx context.Context, id access.Identity, paymentID string, amount decimal.Decimal) (receipt *Receipt, err error) {
	defer s.track(opSettleMinisterBalance, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}

	var (
		payment *models.MinisterPayment
		toPay   decimal.Decimal
	)
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		var err error
		payment, err = r.Minister.FindByID(ctx, paymentID)
		if err != nil {
			return lookupError(err, "Minister payment")
		}
		toPay = payment.Settle(amount)
		if !toPay.IsPositive() {
			return invalid("Invalid amount")
		}
		if err := r.Minister.UpdateBalance(ctx, payment); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, toPay)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opSettleMinisterBalance, id, payment.ID, BookCollected, toPay)

	return newReceipt("Minister Balance Payment", payment.ID).
		add("Name", payment.Name).
		add("Type", payment.Type).
		add("Paid", FormatMoney(toPay)).
		add("Remaining Balance", FormatMoney(payment.Balance)).
		add("Time", s.stamp()), nil
}

// List returns minister payments matching query
func (s *MinisterService) List(ctx context.Context, query *repository.ListQuery) ([]models.MinisterPayment, error) {
	return s.repos.Minister.List(ctx, query)
}

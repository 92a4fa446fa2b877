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
	opAddPayment    = "add_payment"
	opSettleBalance = "settle_balance"
)

// PaymentInput carries a member payment as entered at the desk
type PaymentInput struct {
	Name   string
	Class  string
	Stream string
	House  string
	Type   string
	Term   string
	Amount decimal.Decimal
	Date   string
}

// PaymentService records member payments and settles their balances
type PaymentService struct {
	*Ledger
}

// NewPaymentService creates a new payment service
func NewPaymentService(ledger *Ledger) *PaymentService {
	return &PaymentService{Ledger: ledger}
}

// Add records a payment against the fixed price of its type and adds it to the collected total
func (s *PaymentService) Add(ctx context.Context, id access.Identity, in PaymentInput) (receipt *Receipt, err error) {
	defer s.track(opAddPayment, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	if !required(in.Name, in.Class, in.Stream, in.House, in.Type) {
		return nil, invalid("Fill all required fields")
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("Enter amount paid")
	}

	requiredAmount := s.rules.RequiredAmount(in.Type, in.Amount)
	payment := &models.Payment{
		ID:       models.NewID(models.TagPayment),
		Name:     in.Name,
		Class:    in.Class,
		Stream:   in.Stream,
		House:    in.House,
		Type:     in.Type,
		Term:     in.Term,
		Amount:   in.Amount,
		Required: requiredAmount,
		Balance:  rules.Balance(requiredAmount, in.Amount),
		Date:     date,
		Time:     s.clock(),
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Payment.Create(ctx, payment); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, payment.Amount)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddPayment, id, payment.ID, BookCollected, payment.Amount)

	return newReceipt("Payment Receipt", payment.ID).
		add("Name", payment.Name).
		add("Class", payment.Class).
		add("Stream", payment.Stream).
		add("House", payment.House).
		add("Payment Type", payment.Type).
		add("Term", payment.Term).
		add("Amount Paid", FormatMoney(payment.Amount)).
		add("Required", FormatMoney(payment.Required)).
		add("Balance", FormatMoney(payment.Balance)).
		add("Date", payment.Date+" "+payment.Time).
		add("Timestamp", s.stamp()), nil
}

// SettleBalance pays up to amount towards a payment's outstanding balance
func (s *PaymentService) SettleBalance(ctx context.Context, id access.Identity, paymentID string, amount decimal.Decimal) (receipt *Receipt, err error) {
	defer s.track(opSettleBalance, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}

	var (
		payment *models.Payment
		toPay   decimal.Decimal
	)
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		var err error
		payment, err = r.Payment.FindByID(ctx, paymentID)
		if err != nil {
			return lookupError(err, "Record")
		}
		toPay = payment.Settle(amount)
		if !toPay.IsPositive() {
			return invalid("Invalid amount")
		}
		if err := r.Payment.UpdateBalance(ctx, payment); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, toPay)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opSettleBalance, id, payment.ID, BookCollected, toPay)

	return newReceipt("Balance Payment", payment.ID).
		add("Name", payment.Name).
		add("Paid", FormatMoney(toPay)).
		add("Remaining Balance", FormatMoney(payment.Balance)).
		add("Time", s.stamp()), nil
}

// List returns payments matching query
func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, error) {
	return s.repos.Payment.List(ctx, query)
}

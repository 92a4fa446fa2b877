package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
)

const (
	opAddExpenditure = "add_expenditure"
	opAddIncome      = "add_income"
)

// ExpenditureService records money leaving the cabinet
type ExpenditureService struct {
	*Ledger
}

// NewExpenditureService creates a new expenditure service
func NewExpenditureService(ledger *Ledger) *ExpenditureService {
	return &ExpenditureService{Ledger: ledger}
}

// Add records an expenditure and adds it to the expenditure total
func (s *ExpenditureService) Add(ctx context.Context, id access.Identity, description string, amount decimal.Decimal, date string) (receipt *Receipt, err error) {
	defer s.track(opAddExpenditure, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	date, err = s.dateOrToday("date", date)
	if err != nil {
		return nil, err
	}
	if !required(description) || !amount.IsPositive() {
		return nil, invalid("Fill expenditure fields")
	}

	expenditure := &models.Expenditure{
		ID:          models.NewID(models.TagExpenditure),
		Description: description,
		Amount:      amount,
		Date:        date,
		Time:        s.clock(),
	}
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Cashbook.CreateExpenditure(ctx, expenditure); err != nil {
			return err
		}
		return r.State.AddExpenditure(ctx, expenditure.Amount)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddExpenditure, id, expenditure.ID, BookExpenditure, expenditure.Amount)

	return newReceipt("Expenditure Receipt", expenditure.ID).
		add("Desc", expenditure.Description).
		add("Amount", FormatMoney(expenditure.Amount)).
		add("Date", expenditure.Date+" "+expenditure.Time), nil
}

// List returns expenditures matching query
func (s *ExpenditureService) List(ctx context.Context, query *repository.ListQuery) ([]models.Expenditure, error) {
	return s.repos.Cashbook.ListExpenditures(ctx, query)
}

// IncomeService records money entering the cabinet outside of priced payments
type IncomeService struct {
	*Ledger
}

// NewIncomeService creates a new income service
func NewIncomeService(ledger *Ledger) *IncomeService {
	return &IncomeService{Ledger: ledger}
}

// Add records an income and adds it to the collected total
func (s *IncomeService) Add(ctx context.Context, id access.Identity, source string, amount decimal.Decimal, date string) (receipt *Receipt, err error) {
	defer s.track(opAddIncome, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	date, err = s.dateOrToday("date", date)
	if err != nil {
		return nil, err
	}
	if !required(source) || !amount.IsPositive() {
		return nil, invalid("Fill income fields")
	}

	income := &models.Income{
		ID:     models.NewID(models.TagIncome),
		Source: source,
		Amount: amount,
		Date:   date,
		Time:   s.clock(),
	}
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := r.Cashbook.CreateIncome(ctx, income); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, income.Amount)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddIncome, id, income.ID, BookCollected, income.Amount)

	return newReceipt("Income Receipt", income.ID).
		add("Source", income.Source).
		add("Amount", FormatMoney(income.Amount)).
		add("Date", income.Date+" "+income.Time), nil
}

// List returns incomes matching query
func (s *IncomeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Income, error) {
	return s.repos.Cashbook.ListIncomes(ctx, query)
}

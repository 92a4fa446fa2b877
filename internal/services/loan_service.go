package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/sjperalta/cabinet-api/internal/statemachine"
	"gorm.io/gorm"
)

const (
	opAddLoan   = "add_loan"
	opRepayLoan = "repay_loan"
)

// precision of the interest_pct column
const interestPlaces = 4

// LoanInput carries a new loan. InterestPct is a percentage (10 = 10%);
// when not set the configured default applies.
type LoanInput struct {
	ID          string
	Name        string
	Amount      decimal.Decimal
	InterestPct decimal.NullDecimal
	DueDate     string
	Date        string
}

// RepaymentInput carries a repayment against a borrower's loan
type RepaymentInput struct {
	LoanID string
	Name   string
	Amount decimal.Decimal
	Date   string
}

// LoanService issues loans and takes repayments
type LoanService struct {
	*Ledger
}

// NewLoanService creates a new loan service
func NewLoanService(ledger *Ledger) *LoanService {
	return &LoanService{Ledger: ledger}
}

// Add disburses a loan; the principal is booked as an expenditure
func (s *LoanService) Add(ctx context.Context, id access.Identity, in LoanInput) (receipt *Receipt, err error) {
	defer s.track(opAddLoan, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	in.ID = strings.TrimSpace(in.ID)
	if !required(in.ID, in.Name, in.DueDate) || in.Amount.IsZero() {
		return nil, invalid("Fill loan fields with due date")
	}
	if in.Amount.IsNegative() {
		return nil, invalid("Loan amount must be positive")
	}
	if _, err := rules.ParseDate(in.DueDate); err != nil {
		return nil, invalid("Invalid due date: use YYYY-MM-DD")
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	pct := s.rules.DefaultLoanInterestPct()
	if in.InterestPct.Valid {
		pct = in.InterestPct.Decimal
	}
	if pct.IsNegative() {
		return nil, invalid("Interest cannot be negative")
	}
	if !pct.Equal(pct.Round(interestPlaces)) {
		return nil, invalid("Interest can have at most %d decimal places", interestPlaces)
	}

	total := rules.LoanTotal(in.Amount, pct)
	loan := &models.Loan{
		ID:             in.ID,
		Name:           in.Name,
		Principal:      in.Amount,
		InterestPct:    pct,
		Total:          total,
		TotalRemaining: total,
		Status:         models.LoanStatusActive,
		Date:           date,
		DueDate:        in.DueDate,
		Disbursed:      true,
	}
	disbursement := &models.Expenditure{
		ID:          models.NewID(models.TagExpenditure),
		Description: fmt.Sprintf("Loan disbursed %s to %s", loan.ID, loan.Name),
		Amount:      loan.Principal,
		Date:        date,
		Time:        s.clock(),
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		open, err := r.Loan.FindOpenByName(ctx, loan.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if open != nil {
			return conflict("This person has an active loan")
		}
		taken, err := r.Loan.Exists(ctx, loan.ID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("Loan ID %s already exists", loan.ID)
		}

		if err := r.Loan.Create(ctx, loan); err != nil {
			return err
		}
		if err := r.Cashbook.CreateExpenditure(ctx, disbursement); err != nil {
			return err
		}
		return r.State.AddExpenditure(ctx, loan.Principal)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddLoan, id, loan.ID, BookExpenditure, loan.Principal)

	return newReceipt("Loan Disbursement Receipt", loan.ID).
		add("Loan ID", loan.ID).
		add("Name", loan.Name).
		add("Principal", FormatMoney(loan.Principal)).
		add("Interest%", loan.InterestPct.String()).
		add("Total to Repay", FormatMoney(loan.Total)).
		add("Due Date", loan.DueDate).
		add("Disbursement Date", loan.Date+" "+disbursement.Time), nil
}

// Repay applies a repayment. A repayment made after the due date first adds the late penalty.
func (s *LoanService) Repay(ctx context.Context, id access.Identity, in RepaymentInput) (receipt *Receipt, err error) {
	defer s.track(opRepayLoan, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.LoanID, in.Name) || in.Amount.IsZero() {
		return nil, invalid("Fill loan repayment fields")
	}
	if in.Amount.IsNegative() {
		return nil, invalid("Repayment amount must be positive")
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	repaidOn, _ := rules.ParseDate(date)

	var (
		loan    *models.Loan
		penalty = decimal.Zero
		paid    decimal.Decimal
	)
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		var err error
		loan, err = r.Loan.FindByIDAndName(ctx, in.LoanID, in.Name)
		if err != nil {
			return lookupError(err, "Loan")
		}
		if !loan.MayRepay() {
			return conflict("Loan already cleared")
		}

		dueOn, err := rules.ParseDate(loan.DueDate)
		if err != nil {
			return fmt.Errorf("loan %s has a malformed due date: %w", loan.ID, err)
		}
		if rules.LatePenaltyDue(repaidOn, dueOn, loan.TotalRemaining) {
			penalty = s.rules.LoanLatePenalty(loan.TotalRemaining)
			loan.TotalRemaining = loan.TotalRemaining.Add(penalty)
			if err := r.Cashbook.CreateIncome(ctx, &models.Income{
				ID:     models.NewID(models.TagIncome),
				Source: fmt.Sprintf("Late penalty on loan %s", loan.ID),
				Amount: penalty,
				Date:   date,
				Time:   s.clock(),
			}); err != nil {
				return err
			}
			if err := r.State.AddCollected(ctx, penalty); err != nil {
				return err
			}
		}

		paid = decimal.Min(in.Amount, loan.TotalRemaining)
		if err := statemachine.NewLoanFSM(loan).ApplyRemaining(ctx, loan.TotalRemaining.Sub(paid)); err != nil {
			return err
		}
		if err := r.Loan.UpdateRemaining(ctx, loan); err != nil {
			return err
		}
		if err := r.Loan.CreateRepayment(ctx, &models.Repayment{
			ID:      models.NewID(models.TagRepayment),
			LoanID:  loan.ID,
			Name:    loan.Name,
			Paid:    paid,
			Balance: loan.TotalRemaining,
			Date:    date,
		}); err != nil {
			return err
		}
		if err := r.Cashbook.CreateIncome(ctx, &models.Income{
			ID:     models.NewID(models.TagIncome),
			Source: fmt.Sprintf("Loan repayment %s", loan.ID),
			Amount: paid,
			Date:   date,
			Time:   s.clock(),
		}); err != nil {
			return err
		}
		return r.State.AddCollected(ctx, paid)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opRepayLoan, id, loan.ID, BookCollected, paid.Add(penalty))

	receipt = newReceipt("Loan Repayment Receipt", loan.ID).
		add("Loan ID", loan.ID).
		add("Name", loan.Name)
	if penalty.IsPositive() {
		receipt.add("Late Penalty", FormatMoney(penalty))
	}
	return receipt.
		add("Paid", FormatMoney(paid)).
		add("Remaining", FormatMoney(loan.TotalRemaining)).
		add("Status", loan.Status).
		add("Date", date+" "+s.clock()), nil
}

// List returns loans matching query
func (s *LoanService) List(ctx context.Context, query *repository.ListQuery) ([]models.Loan, error) {
	return s.repos.Loan.List(ctx, query)
}

// Repayments returns repayments matching query
func (s *LoanService) Repayments(ctx context.Context, query *repository.ListQuery) ([]models.Repayment, error) {
	return s.repos.Loan.ListRepayments(ctx, query)
}

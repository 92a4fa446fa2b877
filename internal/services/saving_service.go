package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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
	opAddSaving = "add_saving"
	opWithdraw  = "process_withdrawal"
)

// SavingInput carries a new saving and its scheduled withdrawal date
type SavingInput struct {
	Name      string
	Amount    decimal.Decimal
	Date      string
	Scheduled string
}

// WithdrawalInput carries a withdrawal request against the saver's active saving
type WithdrawalInput struct {
	Name   string
	Amount decimal.Decimal
	Date   string
}

// WithdrawalQuote is what a saver could take out on a given date
type WithdrawalQuote struct {
	DaysHeld       int
	EarnedInterest decimal.Decimal
	Matured        bool
	Available      decimal.Decimal
}

// SavingService takes deposits into tiered savings and pays them out
type SavingService struct {
	*Ledger
}

// NewSavingService creates a new saving service
func NewSavingService(ledger *Ledger) *SavingService {
	return &SavingService{Ledger: ledger}
}

// Add opens a saving on the tier matching its amount and freezes the full-term interest
func (s *SavingService) Add(ctx context.Context, id access.Identity, in SavingInput) (receipt *Receipt, err error) {
	defer s.track(opAddSaving, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.Name, in.Scheduled) || in.Amount.IsZero() {
		return nil, invalid("Fill all savings fields")
	}
	dateSaved, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	savedOn, _ := rules.ParseDate(dateSaved)
	scheduledOn, err := rules.ParseDate(in.Scheduled)
	if err != nil {
		return nil, invalid("Invalid scheduled date: use YYYY-MM-DD")
	}

	tier, err := s.rules.SavingsTier(in.Amount)
	switch {
	case errors.Is(err, rules.ErrBelowMinimumSaving):
		return nil, invalid("Minimum saving is %s", FormatMoney(s.rules.Table().MinimumSaving))
	case errors.Is(err, rules.ErrNoTier):
		return nil, invalid("No tier found for this amount")
	case err != nil:
		return nil, err
	}

	days := rules.DaysBetween(savedOn, scheduledOn)
	saving := &models.Saving{
		ID:             models.NewID(models.TagSaving),
		Name:           in.Name,
		Amount:         in.Amount,
		DateSaved:      dateSaved,
		Scheduled:      in.Scheduled,
		TermWeeks:      tier.TermWeeks,
		InterestPct:    tier.InterestPct,
		InterestIfHeld: rules.FullTermInterest(in.Amount, tier.InterestPct, days, tier.TermWeeks),
		DaysScheduled:  days,
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		return r.Saving.Create(ctx, saving)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opAddSaving, id, saving.ID, "", saving.Amount)

	return newReceipt("Saving Order", saving.ID).
		add("Name", saving.Name).
		add("Amount", FormatMoney(saving.Amount)).
		add("Term weeks (tier)", strconv.Itoa(saving.TermWeeks)).
		add("Interest% (if held)", rules.Round(saving.InterestPct.Mul(decimal.NewFromInt(100))).String()+"%").
		add("Interest(if held)", FormatMoney(saving.InterestIfHeld)).
		add("Scheduled withdraw", saving.Scheduled).
		add("Saved on", saving.DateSaved+" "+s.clock()), nil
}

// Quote computes the payout available from saving if withdrawn on date
func Quote(saving *models.Saving, on time.Time) (WithdrawalQuote, error) {
	savedOn, err := rules.ParseDate(saving.DateSaved)
	if err != nil {
		return WithdrawalQuote{}, err
	}
	scheduledOn, err := rules.ParseDate(saving.Scheduled)
	if err != nil {
		return WithdrawalQuote{}, err
	}

	q := WithdrawalQuote{DaysHeld: rules.DaysBetween(savedOn, on)}
	q.EarnedInterest = rules.ProratedInterest(saving.Amount, saving.InterestPct, q.DaysHeld, saving.TermWeeks)
	q.Matured = !on.Before(scheduledOn)
	if q.Matured {
		q.Available = saving.Amount.Add(saving.InterestIfHeld)
	} else {
		q.Available = saving.Amount.Add(q.EarnedInterest)
	}
	return q, nil
}

// Withdraw pays out of the saver's active saving. Taking the whole payout closes the saving;
// anything less reduces the principal and keeps the original terms.
func (s *SavingService) Withdraw(ctx context.Context, id access.Identity, in WithdrawalInput) (receipt *Receipt, err error) {
	defer s.track(opWithdraw, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	if !required(in.Name) || in.Amount.IsZero() {
		return nil, invalid("Fill withdrawal fields")
	}
	if in.Amount.IsNegative() {
		return nil, invalid("Withdrawal amount must be positive")
	}
	date, err := s.dateOrToday("date", in.Date)
	if err != nil {
		return nil, err
	}
	actualOn, _ := rules.ParseDate(date)

	var (
		saving *models.Saving
		quote  WithdrawalQuote
	)
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		var err error
		saving, err = r.Saving.FindActiveByName(ctx, in.Name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("No active saving found for that name")
			}
			return fmt.Errorf("failed to load saving: %w", err)
		}

		quote, err = Quote(saving, actualOn)
		if err != nil {
			return fmt.Errorf("saving %s has malformed dates: %w", saving.ID, err)
		}
		if in.Amount.GreaterThan(quote.Available) {
			return conflict("Requested %s exceeds available %s", FormatMoney(in.Amount), FormatMoney(quote.Available))
		}

		if err := r.Cashbook.CreateExpenditure(ctx, &models.Expenditure{
			ID:          models.NewID(models.TagExpenditure),
			Description: fmt.Sprintf("Saving Withdrawal %s by %s", saving.ID, saving.Name),
			Amount:      in.Amount,
			Date:        date,
			Time:        s.clock(),
		}); err != nil {
			return err
		}
		if err := r.State.AddExpenditure(ctx, in.Amount); err != nil {
			return err
		}

		sfsm := statemachine.NewSavingFSM(saving)
		if in.Amount.Sub(quote.Available).Abs().LessThan(decimal.NewFromInt(1)) {
			err = sfsm.WithdrawFully(ctx)
		} else {
			err = sfsm.WithdrawPartially(in.Amount)
		}
		if err != nil {
			return err
		}
		return r.Saving.Update(ctx, saving)
	})
	if err != nil {
		return nil, err
	}
	s.committed(ctx, opWithdraw, id, saving.ID, BookExpenditure, in.Amount)

	return newReceipt("Saving Withdrawal Receipt", saving.ID).
		add("Name", saving.Name).
		add("Requested", FormatMoney(in.Amount)).
		add("Paid", FormatMoney(in.Amount)).
		add("Interest earned (days)", FormatMoney(quote.EarnedInterest)).
		add("Matured", strconv.FormatBool(quote.Matured)).
		add("Fully withdrawn", strconv.FormatBool(bool(saving.Withdrawn))).
		add("Date", date+" "+s.clock()), nil
}

// List returns savings matching query
func (s *SavingService) List(ctx context.Context, query *repository.ListQuery) ([]models.Saving, error) {
	return s.repos.Saving.List(ctx, query)
}

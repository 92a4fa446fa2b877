// Package rules holds the cabinet's pure financial calculations: price lookup,
// balances, loan totals and penalties, savings tiers and interest, and the
// attendance fine policy. Nothing here touches storage.
package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

var (
	ErrBelowMinimumSaving = errors.New("amount is below the minimum saving")
	ErrNoTier             = errors.New("no savings tier found for this amount")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidClock       = errors.New("time must be in HH:MM format")
)

var hundred = decimal.NewFromInt(100)

// Engine evaluates the cabinet rules against an injected Table
type Engine struct {
	table Table
}

// NewEngine validates the table and returns an engine bound to it
func NewEngine(table Table) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Engine{table: table}, nil
}

// MustEngine is NewEngine for tables known to be valid
func MustEngine(table Table) *Engine {
	e, err := NewEngine(table)
	if err != nil {
		panic(err)
	}
	return e
}

// Table returns a copy of the configuration the engine runs with
func (e *Engine) Table() Table {
	return e.table
}

// RequiredAmount looks up the fixed price for a payment or fee type.
// Unknown types require exactly what was paid, so they never carry a balance.
func (e *Engine) RequiredAmount(paymentType string, paid decimal.Decimal) decimal.Decimal {
	if price, ok := e.table.Prices[paymentType]; ok {
		return price
	}
	return paid
}

// SavingsTier selects the tier with the highest threshold not exceeding amount
func (e *Engine) SavingsTier(amount decimal.Decimal) (Tier, error) {
	if amount.LessThan(e.table.MinimumSaving) {
		return Tier{}, ErrBelowMinimumSaving
	}
	var (
		best  Tier
		found bool
	)
	for _, tier := range e.table.SavingsTiers {
		if amount.GreaterThanOrEqual(tier.MinThreshold) {
			best, found = tier, true
		}
	}
	if !found {
		return Tier{}, ErrNoTier
	}
	return best, nil
}

// LoanLatePenalty is the one-off surcharge applied to a late repayment
func (e *Engine) LoanLatePenalty(remaining decimal.Decimal) decimal.Decimal {
	return Round(remaining.Mul(e.table.LoanLatePenaltyPct))
}

// Attendance reports whether a check-in is late against meetingStart and the fine it carries.
// An empty meetingStart falls back to the configured default.
func (e *Engine) Attendance(checkIn, meetingStart string) (late bool, fine decimal.Decimal, err error) {
	if meetingStart == "" {
		meetingStart = e.table.MeetingStart
	}
	late, err = IsLate(checkIn, meetingStart)
	if err != nil {
		return false, decimal.Zero, err
	}
	if late {
		return true, e.table.LateFine, nil
	}
	return false, decimal.Zero, nil
}

// DefaultLoanInterestPct is used when a loan is issued without an explicit rate
func (e *Engine) DefaultLoanInterestPct() decimal.Decimal {
	return e.table.DefaultLoanInterestPct
}

// Houses returns the dashboard house labels
func (e *Engine) Houses() []string {
	return append([]string(nil), e.table.Houses...)
}

// Round rounds to whole currency units, half away from zero
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Balance is what is still owed; never negative
func Balance(required, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, required.Sub(paid))
}

// LoanTotal is principal plus simple interest, rounded
func LoanTotal(principal, interestPct decimal.Decimal) decimal.Decimal {
	return Round(principal.Add(principal.Mul(interestPct).Div(hundred)))
}

// LatePenaltyDue reports whether a repayment made on repaidOn attracts the late penalty
func LatePenaltyDue(repaidOn, dueOn time.Time, remaining decimal.Decimal) bool {
	return repaidOn.After(dueOn) && remaining.IsPositive()
}

// FullTermInterest is the interest frozen at saving time: the whole tier rate
// if the scheduled withdrawal covers the full term, nothing otherwise.
func FullTermInterest(amount, pct decimal.Decimal, daysScheduled, termWeeks int) decimal.Decimal {
	if daysScheduled >= termWeeks*7 {
		return Round(amount.Mul(pct))
	}
	return decimal.Zero
}

// ProratedInterest accrues the tier rate linearly over the term, capped at the full term
func ProratedInterest(amount, pct decimal.Decimal, daysHeld, termWeeks int) decimal.Decimal {
	termDays := termWeeks * 7
	if daysHeld <= 0 || termDays <= 0 {
		return decimal.Zero
	}
	held := min(daysHeld, termDays)
	return Round(amount.Mul(pct).Mul(decimal.NewFromInt(int64(held))).Div(decimal.NewFromInt(int64(termDays))))
}

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DaysBetween returns the whole days from one date to another, clamped at zero
func DaysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ParseClock parses an HH:MM wall-clock time
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, errH := strconv.Atoi(h)
	minute, errM := strconv.Atoi(m)
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour, minute, nil
}

// IsLate compares hour first, then minute
func IsLate(checkIn, meetingStart string) (bool, error) {
	hc, mc, err := ParseClock(checkIn)
	if err != nil {
		return false, err
	}
	hs, ms, err := ParseClock(meetingStart)
	if err != nil {
		return false, err
	}
	return hc > hs || (hc == hs && mc > ms), nil
}

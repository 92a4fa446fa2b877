package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Tier is one row of the savings tier table. InterestPct is a fraction (0.15 = 15%).
type Tier struct {
	MinThreshold decimal.Decimal `toml:"min" json:"min"`
	TermWeeks    int             `toml:"weeks" json:"weeks"`
	InterestPct  decimal.Decimal `toml:"pct" json:"pct"`
}

// TermDays returns the length of the tier's term in days
func (t Tier) TermDays() int {
	return t.TermWeeks * 7
}

// Table is the versioned static configuration consumed by the Engine
type Table struct {
	Version string `toml:"version" json:"version"`

	// Fixed prices by payment / fee type
	Prices map[string]decimal.Decimal `toml:"prices" json:"prices"`

	MinimumSaving decimal.Decimal `toml:"minimum_saving" json:"minimum_saving"`
	SavingsTiers  []Tier          `toml:"savings_tiers" json:"savings_tiers"`

	LateFine               decimal.Decimal `toml:"late_fine" json:"late_fine"`
	LoanLatePenaltyPct     decimal.Decimal `toml:"loan_late_penalty_pct" json:"loan_late_penalty_pct"`
	DefaultLoanInterestPct decimal.Decimal `toml:"default_loan_interest_pct" json:"default_loan_interest_pct"`
	MeetingStart           string          `toml:"meeting_start" json:"meeting_start"`

	// Houses reported on the dashboard chart, in display order
	Houses []string `toml:"houses" json:"houses"`
}

// DefaultTable returns the price and tier table the cabinet runs with out of the box
func DefaultTable() Table {
	return Table{
		Version: "2025.1",
		Prices: map[string]decimal.Decimal{
			"House Fee":  decimal.NewFromInt(10000),
			"Jersey":     decimal.NewFromInt(35000),
			"Tag":        decimal.NewFromInt(13000),
			"T-Shirt":    decimal.NewFromInt(25000),
			"Membership": decimal.NewFromInt(15000),
		},
		MinimumSaving: decimal.NewFromInt(10000),
		SavingsTiers: []Tier{
			{MinThreshold: decimal.NewFromInt(10000), TermWeeks: 4, InterestPct: decimal.RequireFromString("0.10")},
			{MinThreshold: decimal.NewFromInt(20000), TermWeeks: 6, InterestPct: decimal.RequireFromString("0.15")},
			{MinThreshold: decimal.NewFromInt(40000), TermWeeks: 8, InterestPct: decimal.RequireFromString("0.20")},
			{MinThreshold: decimal.NewFromInt(50000), TermWeeks: 12, InterestPct: decimal.RequireFromString("0.30")},
		},
		LateFine:               decimal.NewFromInt(5000),
		LoanLatePenaltyPct:     decimal.RequireFromString("0.05"),
		DefaultLoanInterestPct: decimal.NewFromInt(10),
		MeetingStart:           "09:00",
		Houses:                 []string{"Onyx", "Chrysotile", "Phinix", "Anonymous"},
	}
}

// Validate checks the table is usable and sorts the tiers ascending by threshold
func (t *Table) Validate() error {
	if len(t.SavingsTiers) == 0 {
		return errors.New("rules: at least one savings tier is required")
	}
	for i, tier := range t.SavingsTiers {
		if tier.TermWeeks <= 0 {
			return fmt.Errorf("rules: savings tier %d has non-positive term", i)
		}
		if tier.InterestPct.IsNegative() || tier.MinThreshold.IsNegative() {
			return fmt.Errorf("rules: savings tier %d has negative values", i)
		}
	}
	sort.SliceStable(t.SavingsTiers, func(i, j int) bool {
		return t.SavingsTiers[i].MinThreshold.LessThan(t.SavingsTiers[j].MinThreshold)
	})
	if t.MinimumSaving.IsZero() {
		t.MinimumSaving = t.SavingsTiers[0].MinThreshold
	}
	if t.LateFine.IsNegative() || t.LoanLatePenaltyPct.IsNegative() {
		return errors.New("rules: fines and penalties must not be negative")
	}
	if _, _, err := ParseClock(t.MeetingStart); err != nil {
		return fmt.Errorf("rules: meeting_start: %w", err)
	}
	if t.Prices == nil {
		t.Prices = map[string]decimal.Decimal{}
	}
	return nil
}

package models

import (
	"github.com/shopspring/decimal"
)

// Saving state names used by the saving state machine
const (
	SavingStateActive    = "active"
	SavingStateWithdrawn = "withdrawn"
)

// Saving is a member deposit earning tiered interest until the scheduled withdrawal date
type Saving struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	Name           string          `gorm:"not null;index" json:"name"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	DateSaved      string          `gorm:"column:date_saved;size:10;not null" json:"dateSaved"`
	Scheduled      string          `gorm:"column:sched;size:10;not null" json:"sched"`
	TermWeeks      int             `gorm:"column:term_weeks;not null" json:"termWeeks"`
	InterestPct    decimal.Decimal `gorm:"column:interest_pct;type:decimal(7,4);not null" json:"interestPct"`
	InterestIfHeld decimal.Decimal `gorm:"column:interest_if_held;type:decimal(15,2);not null" json:"interestIfHeld"`
	DaysScheduled  int             `gorm:"column:days_scheduled;not null" json:"daysScheduled"`
	Withdrawn      Flag            `gorm:"not null;index" json:"withdrawn"`
}

// TableName specifies the table name for Saving
func (Saving) TableName() string {
	return "savings"
}

// State returns the saving's lifecycle state
func (s *Saving) State() string {
	if s.Withdrawn {
		return SavingStateWithdrawn
	}
	return SavingStateActive
}

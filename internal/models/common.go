package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// LedgerStateID is the primary key of the singleton aggregate row
const LedgerStateID = 1

// Record ID tags
const (
	TagPayment         = "PAY"
	TagMinisterPayment = "MIN"
	TagExpenditure     = "EXP"
	TagIncome          = "INC"
	TagRepayment       = "REP"
	TagSaving          = "SAV"
	TagAttendance      = "ATT"
	TagDuty            = "DUTY"
	TagStudent         = "STU"
	TagMessage         = "MSG"
)

// LedgerState holds the running totals of the cabinet. There is exactly one row.
type LedgerState struct {
	ID               uint            `gorm:"primaryKey" json:"-"`
	TotalCollected   decimal.Decimal `gorm:"column:total_collected;type:decimal(15,2);not null;default:0" json:"totalCollected"`
	TotalExpenditure decimal.Decimal `gorm:"column:total_expenditure;type:decimal(15,2);not null;default:0" json:"totalExpenditure"`
	FinancePin       *string         `gorm:"column:finance_pin" json:"financePin"`
}

// TableName specifies the table name for LedgerState
func (LedgerState) TableName() string {
	return "ledger_state"
}

// HasFinancePin returns true once the Finance role has set its secondary PIN
func (s *LedgerState) HasFinancePin() bool {
	return s.FinancePin != nil && *s.FinancePin != ""
}

// NetBalance is what the cabinet holds before outstanding loans are deducted
func (s *LedgerState) NetBalance() decimal.Decimal {
	return s.TotalCollected.Sub(s.TotalExpenditure)
}

// NewID returns a collision-resistant record identifier prefixed with tag
func NewID(tag string) string {
	return tag + "-" + uuid.NewString()
}

// AllTables lists every ledger entity, in migration order
func AllTables() []interface{} {
	return []interface{}{
		&LedgerState{},
		&Payment{},
		&MinisterPayment{},
		&Expenditure{},
		&Income{},
		&Loan{},
		&Repayment{},
		&Saving{},
		&Attendance{},
		&Duty{},
		&Student{},
		&Message{},
	}
}

package models

import (
	"github.com/shopspring/decimal"
)

// Loan status constants
const (
	LoanStatusActive  = "Active"
	LoanStatusCleared = "Cleared"
)

// Loan represents money lent to a member. The ID is chosen by the cabinet.
type Loan struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	Name           string          `gorm:"not null;index" json:"name"`
	Principal      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal"`
	InterestPct    decimal.Decimal `gorm:"column:interest_pct;type:decimal(9,4);not null" json:"interestPct"`
	Total          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	TotalRemaining decimal.Decimal `gorm:"column:total_remaining;type:decimal(15,2);not null" json:"totalRemaining"`
	Status         string          `gorm:"size:16;not null;index" json:"status"`
	Date           string          `gorm:"size:10" json:"date"`
	DueDate        string          `gorm:"column:due_date;size:10;not null" json:"dueDate"`
	Disbursed      Flag            `gorm:"not null" json:"disbursed"`
}

// TableName specifies the table name for Loan
func (Loan) TableName() string {
	return "loans"
}

// IsCleared returns true once the loan has been fully repaid
func (l *Loan) IsCleared() bool {
	return l.Status == LoanStatusCleared
}

// MayRepay returns true if the loan still accepts repayments
func (l *Loan) MayRepay() bool {
	return l.Status == LoanStatusActive
}

// Repayment is one loan payment as recorded at the time it was made
type Repayment struct {
	ID      string          `gorm:"primaryKey;size:64" json:"id"`
	LoanID  string          `gorm:"column:loan_id;size:64;not null;index" json:"loanId"`
	Name    string          `gorm:"not null" json:"name"`
	Paid    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"paid"`
	Balance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	Date    string          `gorm:"size:10" json:"date"`
}

// TableName specifies the table name for Repayment
func (Repayment) TableName() string {
	return "repayments"
}

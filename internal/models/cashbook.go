package models

import (
	"github.com/shopspring/decimal"
)

// Expenditure is money leaving the cabinet. Append-only.
type Expenditure struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Description string          `gorm:"column:description;not null" json:"desc"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amt"`
	Date        string          `gorm:"size:10;index" json:"date"`
	Time        string          `gorm:"size:5" json:"time"`
}

// TableName specifies the table name for Expenditure
func (Expenditure) TableName() string {
	return "expenditures"
}

// Income is money entering the cabinet outside of priced payments. Append-only.
type Income struct {
	ID     string          `gorm:"primaryKey;size:64" json:"id"`
	Source string          `gorm:"not null" json:"source"`
	Amount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amt"`
	Date   string          `gorm:"size:10;index" json:"date"`
	Time   string          `gorm:"size:5" json:"time"`
}

// TableName specifies the table name for Income
func (Income) TableName() string {
	return "incomes"
}

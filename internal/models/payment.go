package models

import (
	"github.com/shopspring/decimal"
)

// Payment represents a member's payment for a priced item (house fee, jersey, ...)
type Payment struct {
	ID       string          `gorm:"primaryKey;size:64" json:"id"`
	Name     string          `gorm:"not null;index" json:"name"`
	Class    string          `gorm:"column:cls" json:"cls"`
	Stream   string          `json:"stream"`
	House    string          `gorm:"index" json:"house"`
	Type     string          `gorm:"not null" json:"type"`
	Term     string          `json:"term"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Required decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"required"`
	Balance  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	Date     string          `gorm:"size:10;index" json:"date"`
	Time     string          `gorm:"size:5" json:"time"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Settle applies up to requested against the outstanding balance and returns what was applied
func (p *Payment) Settle(requested decimal.Decimal) decimal.Decimal {
	toPay := decimal.Min(requested, p.Balance)
	if !toPay.IsPositive() {
		return decimal.Zero
	}
	p.Amount = p.Amount.Add(toPay)
	p.Balance = p.Balance.Sub(toPay)
	return toPay
}

// MinisterPayment represents dues paid by a cabinet minister
type MinisterPayment struct {
	ID       string          `gorm:"primaryKey;size:64" json:"id"`
	Name     string          `gorm:"not null;index" json:"name"`
	Type     string          `gorm:"not null" json:"type"`
	Required decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"required"`
	Paid     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"paid"`
	Balance  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	Date     string          `gorm:"size:10;index" json:"date"`
}

// TableName specifies the table name for MinisterPayment
func (MinisterPayment) TableName() string {
	return "minister_payments"
}

// Settle applies up to requested against the outstanding balance and returns what was applied
func (m *MinisterPayment) Settle(requested decimal.Decimal) decimal.Decimal {
	toPay := decimal.Min(requested, m.Balance)
	if !toPay.IsPositive() {
		return decimal.Zero
	}
	m.Paid = m.Paid.Add(toPay)
	m.Balance = m.Balance.Sub(toPay)
	return toPay
}

package models

import (
	"github.com/shopspring/decimal"
)

// Snapshot is the whole ledger as one document, used for backup and restore
type Snapshot struct {
	Payments         []Payment         `json:"payments"`
	Expenditures     []Expenditure     `json:"expenditures"`
	Loans            []Loan            `json:"loans"`
	Repayments       []Repayment       `json:"repayments"`
	Savings          []Saving          `json:"savings"`
	MinisterPayments []MinisterPayment `json:"ministerPayments"`
	Incomes          []Income          `json:"incomes"`
	Attendance       []Attendance      `json:"attendance"`
	Duties           []Duty            `json:"duties"`
	Students         []Student         `json:"students"`
	Messages         []Message         `json:"messages"`

	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	FinancePin       *string         `json:"financePin"`
}

// Normalize replaces nil slices with empty ones so exports always carry every array
func (s *Snapshot) Normalize() {
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
	if s.Expenditures == nil {
		s.Expenditures = []Expenditure{}
	}
	if s.Loans == nil {
		s.Loans = []Loan{}
	}
	if s.Repayments == nil {
		s.Repayments = []Repayment{}
	}
	if s.Savings == nil {
		s.Savings = []Saving{}
	}
	if s.MinisterPayments == nil {
		s.MinisterPayments = []MinisterPayment{}
	}
	if s.Incomes == nil {
		s.Incomes = []Income{}
	}
	if s.Attendance == nil {
		s.Attendance = []Attendance{}
	}
	if s.Duties == nil {
		s.Duties = []Duty{}
	}
	if s.Students == nil {
		s.Students = []Student{}
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
}

// RecordCount is the number of rows across every table in the snapshot
func (s *Snapshot) RecordCount() int {
	return len(s.Payments) + len(s.Expenditures) + len(s.Loans) + len(s.Repayments) +
		len(s.Savings) + len(s.MinisterPayments) + len(s.Incomes) + len(s.Attendance) +
		len(s.Duties) + len(s.Students) + len(s.Messages)
}

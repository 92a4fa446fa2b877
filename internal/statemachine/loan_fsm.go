package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"
)

const eventClear = "clear"

// LoanFSM wraps a loan with its state machine
type LoanFSM struct {
	loan *models.Loan
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine
func NewLoanFSM(loan *models.Loan) *LoanFSM {
	lfsm := &LoanFSM{
		loan: loan,
	}

	lfsm.fsm = fsm.NewFSM(
		loan.Status,
		fsm.Events{
			// Active → Cleared; Cleared is terminal
			{Name: eventClear, Src: []string{models.LoanStatusActive}, Dst: models.LoanStatusCleared},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// ApplyRemaining stores the new remaining balance and clears the loan once nothing is owed
func (l *LoanFSM) ApplyRemaining(ctx context.Context, remaining decimal.Decimal) error {
	if !l.loan.MayRepay() {
		return fmt.Errorf("loan %s cannot take repayments in current state: %s", l.loan.ID, l.loan.Status)
	}

	l.loan.TotalRemaining = decimal.Max(decimal.Zero, remaining)
	if l.loan.TotalRemaining.IsPositive() {
		return nil
	}

	if err := l.fsm.Event(ctx, eventClear); err != nil {
		return fmt.Errorf("failed to clear loan: %w", err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}

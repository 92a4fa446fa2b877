package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"
)

const eventWithdraw = "withdraw"

// SavingFSM wraps a saving with its state machine
type SavingFSM struct {
	saving *models.Saving
	fsm    *fsm.FSM
}

// NewSavingFSM creates a new saving state machine
func NewSavingFSM(saving *models.Saving) *SavingFSM {
	sfsm := &SavingFSM{
		saving: saving,
	}

	sfsm.fsm = fsm.NewFSM(
		saving.State(),
		fsm.Events{
			// active → withdrawn; withdrawn is terminal
			{Name: eventWithdraw, Src: []string{models.SavingStateActive}, Dst: models.SavingStateWithdrawn},
		},
		fsm.Callbacks{
			"enter_" + models.SavingStateWithdrawn: func(_ context.Context, e *fsm.Event) {
				sfsm.saving.Withdrawn = true
			},
		},
	)

	return sfsm
}

// WithdrawFully closes the saving
func (s *SavingFSM) WithdrawFully(ctx context.Context) error {
	if err := s.fsm.Event(ctx, eventWithdraw); err != nil {
		return fmt.Errorf("saving %s cannot be withdrawn in current state %s: %w", s.saving.ID, s.saving.State(), err)
	}
	return nil
}

// WithdrawPartially reduces the principal and keeps the saving active with its original terms
func (s *SavingFSM) WithdrawPartially(amount decimal.Decimal) error {
	if s.fsm.Current() != models.SavingStateActive {
		return fmt.Errorf("saving %s cannot be withdrawn in current state: %s", s.saving.ID, s.fsm.Current())
	}
	s.saving.Amount = decimal.Max(decimal.Zero, s.saving.Amount.Sub(amount))
	return nil
}

// Current returns the current state
func (s *SavingFSM) Current() string {
	return s.fsm.Current()
}

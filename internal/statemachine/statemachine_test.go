package statemachine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanFSM_ClearsAtZero(t *testing.T) {
	ctx := context.Background()
	loan := &models.Loan{ID: "L1", Status: models.LoanStatusActive, TotalRemaining: decimal.NewFromInt(110000)}
	lfsm := NewLoanFSM(loan)

	require.NoError(t, lfsm.ApplyRemaining(ctx, decimal.NewFromInt(60000)))
	assert.Equal(t, models.LoanStatusActive, loan.Status)
	assert.True(t, loan.TotalRemaining.Equal(decimal.NewFromInt(60000)))

	require.NoError(t, lfsm.ApplyRemaining(ctx, decimal.NewFromInt(-5)))
	assert.Equal(t, models.LoanStatusCleared, loan.Status)
	assert.True(t, loan.TotalRemaining.IsZero())
	assert.False(t, lfsm.Can(eventClear))
}

func TestLoanFSM_ClearedIsTerminal(t *testing.T) {
	loan := &models.Loan{ID: "L2", Status: models.LoanStatusCleared, TotalRemaining: decimal.Zero}
	lfsm := NewLoanFSM(loan)

	err := lfsm.ApplyRemaining(context.Background(), decimal.NewFromInt(100))
	assert.Error(t, err)
	assert.Equal(t, models.LoanStatusCleared, loan.Status)
	assert.True(t, loan.TotalRemaining.IsZero())
}

func TestSavingFSM(t *testing.T) {
	ctx := context.Background()
	saving := &models.Saving{ID: "S1", Amount: decimal.NewFromInt(20000)}
	sfsm := NewSavingFSM(saving)

	require.NoError(t, sfsm.WithdrawPartially(decimal.NewFromInt(5000)))
	assert.True(t, saving.Amount.Equal(decimal.NewFromInt(15000)))
	assert.False(t, bool(saving.Withdrawn))

	require.NoError(t, sfsm.WithdrawFully(ctx))
	assert.True(t, bool(saving.Withdrawn))
	assert.Equal(t, models.SavingStateWithdrawn, sfsm.Current())

	assert.Error(t, sfsm.WithdrawFully(ctx))
	assert.Error(t, sfsm.WithdrawPartially(decimal.NewFromInt(1)))
}

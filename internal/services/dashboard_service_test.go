package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Get(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)

	dash, err := env.svc.Dashboard.Get(ctx, patron)
	require.NoError(t, err)

	assert.Equal(t, "20,000", dash.TotalCollected)
	assert.Equal(t, "13,000", dash.TotalExpenditure)
	// 20,000 - 13,000 - 11,000 still owed on the open loan
	assert.Equal(t, "-4,000", dash.NetBalance)
	requireMoney(t, -4000, dash.Net)
	assert.Equal(t, int64(1), dash.ActiveLoansCount)

	assert.Equal(t, []string{"Onyx", "Chrysotile", "Phinix", "Anonymous"}, dash.HouseChart.Labels)
	require.Len(t, dash.HouseChart.Data, 4)
	requireMoney(t, 20000, dash.HouseChart.Data[0])
	for _, v := range dash.HouseChart.Data[1:] {
		assert.True(t, v.IsZero())
	}
}

func TestDashboardService_Get_ClearedLoansDoNotCount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Loan.Add(ctx, finance, LoanInput{ID: "L1", Name: "Brian", Amount: d(10000), DueDate: "2025-02-01"})
	require.NoError(t, err)
	_, err = env.svc.Loan.Repay(ctx, finance, RepaymentInput{LoanID: "L1", Name: "Brian", Amount: d(11000)})
	require.NoError(t, err)

	dash, err := env.svc.Dashboard.Get(ctx, finance)
	require.NoError(t, err)
	assert.Equal(t, int64(0), dash.ActiveLoansCount)
	assert.Equal(t, "1,000", dash.NetBalance)
}

func TestDashboardService_Get_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Dashboard.Get(ctx, nobody)
	var authErr *AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

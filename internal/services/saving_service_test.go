package services

import (
	"testing"

	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addStandardSaving(t *testing.T, env *testEnv) models.Saving {
	t.Helper()
	_, err := env.svc.Saving.Add(ctx, finance, SavingInput{
		Name:      "Amina",
		Amount:    d(20000),
		Date:      "2025-01-01",
		Scheduled: "2025-02-12",
	})
	require.NoError(t, err)

	savings, err := env.svc.Saving.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, savings, 1)
	return savings[0]
}

func TestSavingService_Add_PicksTierAndFreezesInterest(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Saving.Add(ctx, finance, SavingInput{
		Name:      "Amina",
		Amount:    d(20000),
		Date:      "2025-01-01",
		Scheduled: "2025-02-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "Saving Order", receipt.Title)
	assert.Equal(t, "6", receipt.Value("Term weeks (tier)"))
	assert.Equal(t, "15%", receipt.Value("Interest% (if held)"))
	assert.Equal(t, "3,000", receipt.Value("Interest(if held)"))

	savings, err := env.svc.Saving.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, savings, 1)
	assert.Equal(t, 42, savings[0].DaysScheduled)
	requireMoney(t, 3000, savings[0].InterestIfHeld)
	assert.False(t, bool(savings[0].Withdrawn))

	// deposits do not move the totals
	state := env.state(t)
	assert.True(t, state.TotalCollected.IsZero())
	assert.True(t, state.TotalExpenditure.IsZero())
}

func TestSavingService_Add_ShortScheduleEarnsNothingIfHeld(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Saving.Add(ctx, finance, SavingInput{
		Name:      "Amina",
		Amount:    d(50000),
		Date:      "2025-01-01",
		Scheduled: "2025-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "12", receipt.Value("Term weeks (tier)"))
	assert.Equal(t, "0", receipt.Value("Interest(if held)"))
}

func TestSavingService_Add_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Saving.Add(ctx, finance, SavingInput{Name: "Amina", Amount: d(5000), Scheduled: "2025-02-12"})
	assert.EqualError(t, err, "Minimum saving is 10,000")

	_, err = env.svc.Saving.Add(ctx, finance, SavingInput{Name: "Amina", Amount: d(20000)})
	assert.EqualError(t, err, "Fill all savings fields")

	_, err = env.svc.Saving.Add(ctx, finance, SavingInput{Name: "Amina", Amount: d(20000), Scheduled: "soon"})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	assert.Equal(t, int64(0), env.count(t, &models.Saving{}))
}

func TestQuote_BeforeAndAtMaturity(t *testing.T) {
	env := newTestEnv(t)
	saving := addStandardSaving(t, env)

	halfway, _ := rules.ParseDate("2025-01-22")
	q, err := Quote(&saving, halfway)
	require.NoError(t, err)
	assert.Equal(t, 21, q.DaysHeld)
	requireMoney(t, 1500, q.EarnedInterest)
	assert.False(t, q.Matured)
	requireMoney(t, 21500, q.Available)

	maturity, _ := rules.ParseDate("2025-02-12")
	q, err = Quote(&saving, maturity)
	require.NoError(t, err)
	assert.True(t, q.Matured)
	requireMoney(t, 23000, q.Available)
}

func TestSavingService_Withdraw_Partial(t *testing.T) {
	env := newTestEnv(t)
	saving := addStandardSaving(t, env)

	receipt, err := env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(10000), Date: "2025-01-22"})
	require.NoError(t, err)
	assert.Equal(t, "1,500", receipt.Value("Interest earned (days)"))
	assert.Equal(t, "false", receipt.Value("Matured"))
	assert.Equal(t, "false", receipt.Value("Fully withdrawn"))

	savings, err := env.svc.Saving.List(ctx, nil)
	require.NoError(t, err)
	requireMoney(t, 10000, savings[0].Amount)
	assert.False(t, bool(savings[0].Withdrawn))

	expenditures, err := env.svc.Expenditure.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, expenditures, 1)
	assert.Equal(t, "Saving Withdrawal "+saving.ID+" by Amina", expenditures[0].Description)
	requireMoney(t, 10000, env.state(t).TotalExpenditure)
}

func TestSavingService_Withdraw_FullPayoutClosesSaving(t *testing.T) {
	env := newTestEnv(t)
	addStandardSaving(t, env)

	receipt, err := env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(21500), Date: "2025-01-22"})
	require.NoError(t, err)
	assert.Equal(t, "true", receipt.Value("Fully withdrawn"))

	savings, err := env.svc.Saving.List(ctx, nil)
	require.NoError(t, err)
	assert.True(t, bool(savings[0].Withdrawn))
	requireMoney(t, 21500, env.state(t).TotalExpenditure)

	_, err = env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(100), Date: "2025-01-23"})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No active saving found for that name", err.Error())
}

func TestSavingService_Withdraw_MoreThanAvailable(t *testing.T) {
	env := newTestEnv(t)
	addStandardSaving(t, env)

	_, err := env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(25000), Date: "2025-01-22"})
	var stateErr *StateConflictError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "Requested 25,000 exceeds available 21,500", err.Error())

	assert.Equal(t, int64(0), env.count(t, &models.Expenditure{}))
	assert.True(t, env.state(t).TotalExpenditure.IsZero())
}

func TestSavingService_Withdraw_AtMaturityIncludesFullInterest(t *testing.T) {
	env := newTestEnv(t)
	addStandardSaving(t, env)

	receipt, err := env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(23000), Date: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "true", receipt.Value("Matured"))
	assert.Equal(t, "true", receipt.Value("Fully withdrawn"))
}

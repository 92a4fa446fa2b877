package services

import (
	"testing"

	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenditureService_Add(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Expenditure.Add(ctx, finance, "Chalk and markers", d(12500), "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "Chalk and markers", receipt.Value("Desc"))
	assert.Equal(t, "12,500", receipt.Value("Amount"))

	requireMoney(t, 12500, env.state(t).TotalExpenditure)

	list, err := env.svc.Expenditure.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-01-10", list[0].Date)
}

func TestExpenditureService_Add_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Expenditure.Add(ctx, finance, "", d(100), "")
	assert.EqualError(t, err, "Fill expenditure fields")
	_, err = env.svc.Expenditure.Add(ctx, finance, "Paper", d(0), "")
	assert.EqualError(t, err, "Fill expenditure fields")

	assert.Equal(t, int64(0), env.count(t, &models.Expenditure{}))
}

func TestIncomeService_Add(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Income.Add(ctx, finance, "Car wash", d(30000), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15 10:30", receipt.Value("Date"))
	requireMoney(t, 30000, env.state(t).TotalCollected)

	_, err = env.svc.Income.Add(ctx, finance, "Car wash", d(-5), "")
	assert.EqualError(t, err, "Fill income fields")
	requireMoney(t, 30000, env.state(t).TotalCollected)
}

func TestLedger_PublishesCommittedOperations(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Income.Add(ctx, finance, "Car wash", d(30000), "")
	require.NoError(t, err)
	_, err = env.svc.Income.Add(ctx, finance, "", d(30000), "")
	require.Error(t, err)

	published := env.recorder.Events()
	require.Len(t, published, 1)
	assert.Equal(t, opAddIncome, published[0].Operation)
	assert.Equal(t, "Finance", published[0].Actor)
	assert.Equal(t, BookCollected, published[0].Book)
	requireMoney(t, 30000, published[0].Amount)
}

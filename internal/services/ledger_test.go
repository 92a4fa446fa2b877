package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/events"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// brokenState fails every write to the totals
type brokenState struct {
	repository.StateRepository
}

func (brokenState) AddCollected(context.Context, decimal.Decimal) error {
	return errDiskFull
}

func (brokenState) AddExpenditure(context.Context, decimal.Decimal) error {
	return errDiskFull
}

// brokenUnitOfWork runs the real transaction with brokenState swapped in
type brokenUnitOfWork struct {
	inner repository.UnitOfWork
}

func (u brokenUnitOfWork) Do(ctx context.Context, fn func(*repository.Repositories) error) error {
	return u.inner.Do(ctx, func(r *repository.Repositories) error {
		r.State = brokenState{r.State}
		return fn(r)
	})
}

func (u brokenUnitOfWork) Read(ctx context.Context, fn func(*repository.Repositories) error) error {
	return u.inner.Read(ctx, fn)
}

func TestLedger_FailedTotalsRollBackRecord(t *testing.T) {
	env := newTestEnv(t)

	recorder := &events.Recorder{}
	ledger := NewLedger(
		brokenUnitOfWork{inner: repository.NewUnitOfWork(env.db)},
		repository.NewRepositories(env.db),
		access.NewGate(nil),
		rules.MustEngine(rules.DefaultTable()),
		recorder,
	)

	_, err := NewPaymentService(ledger).Add(ctx, finance, PaymentInput{Name: "Amina", Class: "S3", Stream: "East", House: "Onyx", Type: "Tag", Amount: d(13000)})
	require.ErrorIs(t, err, errDiskFull)
	assert.False(t, IsDomainError(err))

	_, err = NewExpenditureService(ledger).Add(ctx, finance, "Chalk", d(3000), "")
	require.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, int64(0), env.count(t, &models.Payment{}))
	assert.Equal(t, int64(0), env.count(t, &models.Expenditure{}))
	assert.Empty(t, recorder.Events())
}

func TestNewLedger_NilPublisher(t *testing.T) {
	env := newTestEnv(t)

	ledger := NewLedger(repository.NewUnitOfWork(env.db), repository.NewRepositories(env.db), access.NewGate(nil), rules.MustEngine(rules.DefaultTable()), nil)
	_, err := NewIncomeService(ledger).Add(ctx, finance, "Donation", d(500), "")
	assert.NoError(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "110,000", FormatMoney(d(110000)))
	assert.Equal(t, "0", FormatMoney(decimal.Zero))
	assert.Equal(t, "1,500", FormatMoney(decimal.RequireFromString("1499.5")))
	assert.Equal(t, "-4,000", FormatMoney(d(-4000)))
}

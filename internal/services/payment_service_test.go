package services

import (
	"testing"

	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func housePayment(amount int64) PaymentInput {
	return PaymentInput{
		Name:   "Amina",
		Class:  "S3",
		Stream: "East",
		House:  "Onyx",
		Type:   "Jersey",
		Term:   "Term 1",
		Amount: d(amount),
	}
}

func TestPaymentService_Add_PartialPaymentCarriesBalance(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Payment.Add(ctx, finance, housePayment(20000))
	require.NoError(t, err)

	assert.Equal(t, "Payment Receipt", receipt.Title)
	assert.Equal(t, "20,000", receipt.Value("Amount Paid"))
	assert.Equal(t, "35,000", receipt.Value("Required"))
	assert.Equal(t, "15,000", receipt.Value("Balance"))
	assert.Equal(t, "2025-01-15 10:30", receipt.Value("Date"))

	payments, err := env.svc.Payment.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	requireMoney(t, 15000, payments[0].Balance)
	assert.Equal(t, "Onyx", payments[0].House)

	requireMoney(t, 20000, env.state(t).TotalCollected)
}

func TestPaymentService_Add_UnknownTypeHasNoBalance(t *testing.T) {
	env := newTestEnv(t)

	in := housePayment(5000)
	in.Type = "Donation"
	receipt, err := env.svc.Payment.Add(ctx, finance, in)
	require.NoError(t, err)

	assert.Equal(t, "5,000", receipt.Value("Required"))
	assert.Equal(t, "0", receipt.Value("Balance"))
}

func TestPaymentService_Add_Overpayment(t *testing.T) {
	env := newTestEnv(t)

	in := housePayment(40000)
	_, err := env.svc.Payment.Add(ctx, finance, in)
	require.NoError(t, err)

	payments, err := env.svc.Payment.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Balance.IsZero())
}

func TestPaymentService_Add_Validation(t *testing.T) {
	env := newTestEnv(t)

	missing := housePayment(1000)
	missing.House = " "
	_, err := env.svc.Payment.Add(ctx, finance, missing)
	assert.EqualError(t, err, "Fill all required fields")

	_, err = env.svc.Payment.Add(ctx, finance, housePayment(0))
	assert.EqualError(t, err, "Enter amount paid")

	badDate := housePayment(1000)
	badDate.Date = "15/01/2025"
	_, err = env.svc.Payment.Add(ctx, finance, badDate)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	assert.Equal(t, int64(0), env.count(t, &models.Payment{}))
	assert.True(t, env.state(t).TotalCollected.IsZero())
}

func TestPaymentService_Add_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Payment.Add(ctx, nobody, housePayment(1000))
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Not logged in", err.Error())
}

func TestPaymentService_SettleBalance(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Payment.Add(ctx, finance, housePayment(20000))
	require.NoError(t, err)
	payments, _ := env.svc.Payment.List(ctx, nil)
	id := payments[0].ID

	// more than owed only settles the balance
	receipt, err := env.svc.Payment.SettleBalance(ctx, finance, id, d(50000))
	require.NoError(t, err)
	assert.Equal(t, "15,000", receipt.Value("Paid"))
	assert.Equal(t, "0", receipt.Value("Remaining Balance"))

	payments, _ = env.svc.Payment.List(ctx, nil)
	requireMoney(t, 35000, payments[0].Amount)
	assert.True(t, payments[0].Balance.IsZero())
	requireMoney(t, 35000, env.state(t).TotalCollected)

	// nothing left to settle
	_, err = env.svc.Payment.SettleBalance(ctx, finance, id, d(1000))
	assert.EqualError(t, err, "Invalid amount")
	requireMoney(t, 35000, env.state(t).TotalCollected)
}

func TestPaymentService_SettleBalance_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Payment.SettleBalance(ctx, finance, "PAY-missing", d(1000))
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMinisterService_AddAndSettle(t *testing.T) {
	env := newTestEnv(t)

	receipt, err := env.svc.Minister.Add(ctx, notice, MinisterPaymentInput{
		Name:   "Okello",
		Type:   "Membership",
		Amount: d(10000),
	})
	require.NoError(t, err)
	assert.Equal(t, "5,000", receipt.Value("Balance"))

	dues, err := env.svc.Minister.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, dues, 1)

	receipt, err = env.svc.Minister.SettleBalance(ctx, notice, dues[0].ID, d(2000))
	require.NoError(t, err)
	assert.Equal(t, "3,000", receipt.Value("Remaining Balance"))
	requireMoney(t, 12000, env.state(t).TotalCollected)

	_, err = env.svc.Minister.Add(ctx, notice, MinisterPaymentInput{Name: "Okello", Type: "Membership"})
	assert.EqualError(t, err, "Enter paid amount")
}

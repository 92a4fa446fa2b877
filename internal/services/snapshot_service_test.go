package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T, env *testEnv) {
	t.Helper()

	_, err := env.svc.Payment.Add(ctx, finance, PaymentInput{Name: "Amina", Class: "S3", Stream: "East", House: "Onyx", Type: "Jersey", Amount: d(20000)})
	require.NoError(t, err)
	_, err = env.svc.Expenditure.Add(ctx, finance, "Chalk", d(3000), "")
	require.NoError(t, err)
	_, err = env.svc.Loan.Add(ctx, finance, LoanInput{ID: "L1", Name: "Brian", Amount: d(10000), DueDate: "2025-02-01"})
	require.NoError(t, err)
	_, err = env.svc.Roster.SendMessage(ctx, notice, "Finance", "hello")
	require.NoError(t, err)
}

func TestSnapshotService_ExportImportRoundTrip(t *testing.T) {
	source := newTestEnv(t)
	seedLedger(t, source)

	snap, err := source.svc.Snapshot.Export(ctx, finance)
	require.NoError(t, err)
	assert.Len(t, snap.Payments, 1)
	assert.Len(t, snap.Loans, 1)
	assert.Len(t, snap.Expenditures, 2)
	assert.Len(t, snap.Messages, 1)
	assert.NotNil(t, snap.Savings)
	requireMoney(t, 20000, snap.TotalCollected)
	requireMoney(t, 13000, snap.TotalExpenditure)

	// exports are archived
	backups, err := source.svc.Snapshot.store.Backups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	target := newTestEnv(t)
	_, err = target.svc.Income.Add(ctx, finance, "Old income", d(999), "")
	require.NoError(t, err)

	require.NoError(t, target.svc.Snapshot.Import(ctx, notice, &decoded))

	state := target.state(t)
	requireMoney(t, 20000, state.TotalCollected)
	requireMoney(t, 13000, state.TotalExpenditure)
	assert.Equal(t, int64(0), target.count(t, &models.Income{}))
	assert.Equal(t, int64(1), target.count(t, &models.Payment{}))
	assert.Equal(t, int64(1), target.count(t, &models.Loan{}))
}

// seedEveryTable writes at least one row to every table, with both values of each flag column
func seedEveryTable(t *testing.T, env *testEnv) {
	t.Helper()
	seedLedger(t, env)

	_, err := env.svc.Minister.Add(ctx, finance, MinisterPaymentInput{Name: "Grace", Type: "Membership", Amount: d(5000), Date: "2025-01-10"})
	require.NoError(t, err)
	_, err = env.svc.Income.Add(ctx, finance, "Car wash", d(7000), "2025-01-12")
	require.NoError(t, err)

	// late repayment books a penalty before the repayment
	_, err = env.svc.Loan.Repay(ctx, finance, RepaymentInput{LoanID: "L1", Name: "Brian", Amount: d(5000), Date: "2025-02-05"})
	require.NoError(t, err)

	_, err = env.svc.Saving.Add(ctx, finance, SavingInput{Name: "Amina", Amount: d(20000), Date: "2025-01-01", Scheduled: "2025-02-12"})
	require.NoError(t, err)
	_, err = env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Amina", Amount: d(5000), Date: "2025-01-22"})
	require.NoError(t, err)

	_, err = env.svc.Saving.Add(ctx, finance, SavingInput{Name: "Grace", Amount: d(20000), Date: "2025-01-01", Scheduled: "2025-02-12"})
	require.NoError(t, err)
	savings, err := env.svc.Saving.List(ctx, &repository.ListQuery{Name: "Grace"})
	require.NoError(t, err)
	require.Len(t, savings, 1)
	matured := time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC)
	quote, err := Quote(&savings[0], matured)
	require.NoError(t, err)
	_, err = env.svc.Saving.Withdraw(ctx, finance, WithdrawalInput{Name: "Grace", Amount: quote.Available, Date: "2025-02-12"})
	require.NoError(t, err)

	_, err = env.svc.Attendance.Mark(ctx, finance, AttendanceInput{Name: "Brian", Role: "Skills", Date: "2025-01-15", Time: "09:30"})
	require.NoError(t, err)
	_, err = env.svc.Roster.AssignDuty(ctx, finance, DutyInput{Name: "Amina", Role: "Notice", Task: "Minutes", Week: "2025-W03"})
	require.NoError(t, err)
	_, err = env.svc.Roster.RegisterStudent(ctx, finance, StudentInput{Name: "Joel", Class: "S1", Stream: "West", House: "Phinix", Date: "2025-01-14"})
	require.NoError(t, err)

	_, err = env.svc.Roster.SendMessage(ctx, finance, "Patron", "unread")
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Message{}).Where("content = ?", "hello").Update("read", true).Error)
}

func TestSnapshotService_RoundTripIsLossless(t *testing.T) {
	source := newTestEnv(t)
	seedEveryTable(t, source)
	require.NoError(t, source.svc.Security.SetFinancePin(ctx, finance, "", "2468"))

	exported, err := source.svc.Snapshot.Export(ctx, finance)
	require.NoError(t, err)
	assert.NotEmpty(t, exported.Payments)
	assert.NotEmpty(t, exported.MinisterPayments)
	assert.NotEmpty(t, exported.Expenditures)
	assert.NotEmpty(t, exported.Incomes)
	assert.NotEmpty(t, exported.Loans)
	assert.NotEmpty(t, exported.Repayments)
	assert.Len(t, exported.Savings, 2)
	assert.NotEmpty(t, exported.Attendance)
	assert.NotEmpty(t, exported.Duties)
	assert.NotEmpty(t, exported.Students)
	assert.Len(t, exported.Messages, 2)

	first, err := json.Marshal(exported)
	require.NoError(t, err)
	for _, flag := range []string{`"withdrawn":true`, `"withdrawn":false`, `"read":true`, `"read":false`, `"disbursed":true`, `"status":"Late"`} {
		assert.Contains(t, string(first), flag)
	}

	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(first, &decoded))

	target := newTestEnv(t)
	require.NoError(t, target.svc.Snapshot.Import(ctx, finance, &decoded))

	reexported, err := target.svc.Snapshot.Export(ctx, finance)
	require.NoError(t, err)
	second, err := json.Marshal(reexported)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestSnapshotService_Import_ReplacesFinancePin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.Security.SetFinancePin(ctx, finance, "", "2468"))

	plain := "1234"
	require.NoError(t, env.svc.Snapshot.Import(ctx, finance, &models.Snapshot{FinancePin: &plain}))

	// a plain-text PIN from an older export still unlocks
	err := env.svc.Snapshot.ClearAll(ctx, finance, "1234")
	assert.NoError(t, err)
}

func TestSnapshotService_Import_Validation(t *testing.T) {
	env := newTestEnv(t)

	assert.EqualError(t, env.svc.Snapshot.Import(ctx, finance, nil), "No data to import")

	var authErr *AuthorizationError
	assert.ErrorAs(t, env.svc.Snapshot.Import(ctx, nobody, &models.Snapshot{}), &authErr)

	err := env.svc.Snapshot.Import(ctx, finance, &models.Snapshot{TotalCollected: d(-1)})
	assert.EqualError(t, err, "Totals in the import file cannot be negative")
	err = env.svc.Snapshot.Import(ctx, finance, &models.Snapshot{TotalExpenditure: d(-500)})
	assert.EqualError(t, err, "Totals in the import file cannot be negative")
}

func TestSnapshotService_ClearAll(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)

	err := env.svc.Snapshot.ClearAll(ctx, finance, "2468")
	var conflictErr *StateConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "No finance PIN set. Use override.", err.Error())

	require.NoError(t, env.svc.Security.SetFinancePin(ctx, finance, "", "2468"))

	err = env.svc.Snapshot.ClearAll(ctx, finance, "0000")
	assert.EqualError(t, err, "Finance PIN incorrect")
	assert.Equal(t, int64(1), env.count(t, &models.Payment{}))

	var authErr *AuthorizationError
	assert.ErrorAs(t, env.svc.Snapshot.ClearAll(ctx, notice, "2468"), &authErr)

	require.NoError(t, env.svc.Snapshot.ClearAll(ctx, finance, "2468"))

	state := env.state(t)
	assert.True(t, state.TotalCollected.IsZero())
	assert.True(t, state.TotalExpenditure.IsZero())
	assert.True(t, state.HasFinancePin())
	for _, model := range models.AllTables()[1:] {
		assert.Equal(t, int64(0), env.count(t, model))
	}
}

func TestSnapshotService_Backup(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)

	require.NoError(t, env.svc.Snapshot.Backup(ctx))

	backups, err := env.svc.Snapshot.store.Backups()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, backups[0], "backups/2025/01/cabinet-20250115-103000-")

	data, err := env.svc.Snapshot.store.Read(backups[0])
	require.NoError(t, err)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Payments, 1)

	assert.Equal(t, "cabinet_data_2025-01-15.json", env.svc.Snapshot.ExportFilename())
}

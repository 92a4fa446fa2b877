package repository

import (
	"context"
	"fmt"

	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

const restoreBatchSize = 200

// SnapshotRepository reads and replaces the whole ledger at once
type SnapshotRepository interface {
	Dump(ctx context.Context) (*models.Snapshot, error)
	// Truncate deletes every record row; the aggregate row is left alone
	Truncate(ctx context.Context) error
	// Restore inserts every record of snap into empty tables
	Restore(ctx context.Context, snap *models.Snapshot) error
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Dump(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	db := r.db.WithContext(ctx)

	loads := []struct {
		name  string
		dest  interface{}
		order string
	}{
		{"payments", &snap.Payments, "date ASC, time ASC, id ASC"},
		{"expenditures", &snap.Expenditures, "date ASC, time ASC, id ASC"},
		{"loans", &snap.Loans, "date ASC, id ASC"},
		{"repayments", &snap.Repayments, "date ASC, id ASC"},
		{"savings", &snap.Savings, "date_saved ASC, id ASC"},
		{"minister payments", &snap.MinisterPayments, "date ASC, id ASC"},
		{"incomes", &snap.Incomes, "date ASC, time ASC, id ASC"},
		{"attendance", &snap.Attendance, "date ASC, time ASC, id ASC"},
		{"duties", &snap.Duties, "week ASC, id ASC"},
		{"students", &snap.Students, "name ASC, id ASC"},
		{"messages", &snap.Messages, "date ASC, time ASC, id ASC"},
	}
	for _, l := range loads {
		if err := db.Order(l.order).Find(l.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", l.name, err)
		}
	}

	var state models.LedgerState
	if err := db.First(&state, models.LedgerStateID).Error; err != nil {
		return nil, fmt.Errorf("failed to read ledger state: %w", err)
	}
	snap.TotalCollected = state.TotalCollected
	snap.TotalExpenditure = state.TotalExpenditure
	snap.FinancePin = state.FinancePin

	snap.Normalize()
	return snap, nil
}

func (r *snapshotRepository) Truncate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, table := range models.AllTables() {
		if _, ok := table.(*models.LedgerState); ok {
			continue
		}
		if err := db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	return nil
}

func (r *snapshotRepository) Restore(ctx context.Context, snap *models.Snapshot) error {
	db := r.db.WithContext(ctx)

	batches := []struct {
		name string
		rows interface{}
		n    int
	}{
		{"payments", &snap.Payments, len(snap.Payments)},
		{"expenditures", &snap.Expenditures, len(snap.Expenditures)},
		{"loans", &snap.Loans, len(snap.Loans)},
		{"repayments", &snap.Repayments, len(snap.Repayments)},
		{"savings", &snap.Savings, len(snap.Savings)},
		{"minister payments", &snap.MinisterPayments, len(snap.MinisterPayments)},
		{"incomes", &snap.Incomes, len(snap.Incomes)},
		{"attendance", &snap.Attendance, len(snap.Attendance)},
		{"duties", &snap.Duties, len(snap.Duties)},
		{"students", &snap.Students, len(snap.Students)},
		{"messages", &snap.Messages, len(snap.Messages)},
	}
	for _, b := range batches {
		// gorm rejects empty slices
		if b.n == 0 {
			continue
		}
		if err := db.CreateInBatches(b.rows, restoreBatchSize).Error; err != nil {
			return fmt.Errorf("failed to restore %s: %w", b.name, err)
		}
	}
	return nil
}

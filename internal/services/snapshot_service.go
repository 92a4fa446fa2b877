package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/storage"
	"github.com/sjperalta/cabinet-api/pkg/logger"
)

const (
	opExport   = "export_data"
	opImport   = "import_data"
	opClearAll = "clear_all_data"
)

// SnapshotService exports, imports and wipes the whole ledger
type SnapshotService struct {
	*Ledger
	store *storage.LocalStorage
}

// NewSnapshotService creates a new snapshot service. With a nil store exports are not archived.
func NewSnapshotService(ledger *Ledger, store *storage.LocalStorage) *SnapshotService {
	return &SnapshotService{Ledger: ledger, store: store}
}

// Export reads every table and the aggregate state as one document
func (s *SnapshotService) Export(ctx context.Context, id access.Identity) (snap *models.Snapshot, err error) {
	defer s.track(opExport, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return nil, err
	}
	snap, err = s.dump(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.archive(snap); err != nil {
		logger.Warn("Failed to archive export", "error", err)
	}
	return snap, nil
}

// Backup archives the current ledger to storage; run by the scheduled backup job
func (s *SnapshotService) Backup(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.dump(ctx)
	if err != nil {
		return err
	}
	return s.archive(snap)
}

// ExportFilename is the download name of an export taken now
func (s *SnapshotService) ExportFilename() string {
	return fmt.Sprintf("cabinet_data_%s.json", s.today())
}

func (s *SnapshotService) archive(snap *models.Snapshot) error {
	if s.store == nil {
		return nil
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	path, err := s.store.SaveBackup(data, ".json", s.now())
	if err != nil {
		return err
	}
	logger.Info("Ledger archived", "path", path, "records", snap.RecordCount())
	return nil
}

// Import replaces every table and the aggregate state with snap. Nothing is merged.
func (s *SnapshotService) Import(ctx context.Context, id access.Identity, snap *models.Snapshot) (err error) {
	defer s.track(opImport, time.Now(), &err)

	if err := s.authorize(id); err != nil {
		return err
	}
	if snap == nil {
		return invalid("No data to import")
	}
	snap.Normalize()
	if snap.TotalCollected.IsNegative() || snap.TotalExpenditure.IsNegative() {
		return invalid("Totals in the import file cannot be negative")
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if _, err := r.State.GetForUpdate(ctx); err != nil {
			return err
		}
		if err := r.Snapshot.Truncate(ctx); err != nil {
			return err
		}
		if err := r.Snapshot.Restore(ctx, snap); err != nil {
			return err
		}
		return r.State.Replace(ctx, &models.LedgerState{
			TotalCollected:   snap.TotalCollected,
			TotalExpenditure: snap.TotalExpenditure,
			FinancePin:       snap.FinancePin,
		})
	})
	if err != nil {
		return err
	}
	logger.Info("Ledger imported", "role", id.Role, "records", snap.RecordCount())
	s.committed(ctx, opImport, id, "", "", zero)
	return nil
}

// ClearAll deletes every record and zeroes the totals. The finance PIN is kept.
func (s *SnapshotService) ClearAll(ctx context.Context, id access.Identity, financePin string) (err error) {
	defer s.track(opClearAll, time.Now(), &err)

	if err := gateError(s.gate.RequireRole(id, access.RoleFinance)); err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		if err := checkFinancePin(ctx, r, financePin); err != nil {
			return err
		}
		if err := r.Snapshot.Truncate(ctx); err != nil {
			return err
		}
		return r.State.ResetTotals(ctx)
	})
	if err != nil {
		return err
	}
	s.committed(ctx, opClearAll, id, "", "", zero)
	return nil
}

package services

import (
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/sjperalta/cabinet-api/internal/events"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/sjperalta/cabinet-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Ledger      *Ledger
	Auth        *AuthService
	Payment     *PaymentService
	Minister    *MinisterService
	Expenditure *ExpenditureService
	Income      *IncomeService
	Loan        *LoanService
	Saving      *SavingService
	Attendance  *AttendanceService
	Roster      *RosterService
	Security    *SecurityService
	Snapshot    *SnapshotService
	Dashboard   *DashboardService
	Export      *ExportService
}

// NewServices creates all service instances over one database
func NewServices(db *gorm.DB, gate *access.Gate, engine *rules.Engine, publisher events.Publisher, store *storage.LocalStorage, cfg *config.Config) *Services {
	ledger := NewLedger(repository.NewUnitOfWork(db), repository.NewRepositories(db), gate, engine, publisher)

	return &Services{
		Ledger:      ledger,
		Auth:        NewAuthService(gate, cfg),
		Payment:     NewPaymentService(ledger),
		Minister:    NewMinisterService(ledger),
		Expenditure: NewExpenditureService(ledger),
		Income:      NewIncomeService(ledger),
		Loan:        NewLoanService(ledger),
		Saving:      NewSavingService(ledger),
		Attendance:  NewAttendanceService(ledger),
		Roster:      NewRosterService(ledger),
		Security:    NewSecurityService(ledger),
		Snapshot:    NewSnapshotService(ledger, store),
		Dashboard:   NewDashboardService(ledger),
		Export:      NewExportService(ledger),
	}
}

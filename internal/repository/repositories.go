package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repositories holds all repository instances bound to one connection or transaction
type Repositories struct {
	State    StateRepository
	Payment  PaymentRepository
	Minister MinisterPaymentRepository
	Cashbook CashbookRepository
	Loan     LoanRepository
	Saving   SavingRepository
	Roster   RosterRepository
	Snapshot SnapshotRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		State:    NewStateRepository(db),
		Payment:  NewPaymentRepository(db),
		Minister: NewMinisterPaymentRepository(db),
		Cashbook: NewCashbookRepository(db),
		Loan:     NewLoanRepository(db),
		Saving:   NewSavingRepository(db),
		Roster:   NewRosterRepository(db),
		Snapshot: NewSnapshotRepository(db),
	}
}

// UnitOfWork runs a ledger operation against repositories sharing one transaction
type UnitOfWork interface {
	// Do commits if fn returns nil and rolls everything back otherwise
	Do(ctx context.Context, fn func(repos *Repositories) error) error
	// Read runs fn in a read-only transaction that sees one consistent view of every table
	Read(ctx context.Context, fn func(repos *Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work over db
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func (u *gormUnitOfWork) Read(ctx context.Context, fn func(repos *Repositories) error) error {
	// Postgres reads each statement at commit time unless the transaction is repeatable read;
	// SQLite transactions are already serializable
	var opts []*sql.TxOptions
	if u.db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	}, opts...)
}

// ListQuery narrows and paginates listings
type ListQuery struct {
	Name    string
	Date    string
	Page    int
	PerPage int
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 0,
	}
}

// apply adds the query filters to db. nameColumn is empty for tables without a name.
func (q *ListQuery) apply(db *gorm.DB, nameColumn string) *gorm.DB {
	if q == nil {
		return db
	}
	if q.Name != "" && nameColumn != "" {
		db = db.Where(nameColumn+" = ?", q.Name)
	}
	if q.Date != "" {
		db = db.Where("date = ?", q.Date)
	}
	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
	}
	return db
}

func createRecord[T any](ctx context.Context, db *gorm.DB, record *T) error {
	return db.WithContext(ctx).Create(record).Error
}

func listRecords[T any](ctx context.Context, db *gorm.DB, q *ListQuery, nameColumn, order string) ([]T, error) {
	records := []T{}
	err := q.apply(db.WithContext(ctx), nameColumn).
		Order(order).
		Find(&records).Error
	return records, err
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/events"
	"github.com/sjperalta/cabinet-api/internal/metrics"
	"github.com/sjperalta/cabinet-api/internal/models"
	"github.com/sjperalta/cabinet-api/internal/repository"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/sjperalta/cabinet-api/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Books an amount can move through
const (
	BookCollected   = "collected"
	BookExpenditure = "expenditure"
)

const clockLayout = "15:04"

var zero = decimal.Zero

// Ledger bundles what every ledger operation needs: the gate, the rules,
// a unit of work for writes and plain repositories for reads.
type Ledger struct {
	uow    repository.UnitOfWork
	repos  *repository.Repositories
	gate   *access.Gate
	rules  *rules.Engine
	events events.Publisher
	now    func() time.Time
}

// NewLedger wires the shared operation dependencies. A nil publisher discards events.
func NewLedger(uow repository.UnitOfWork, repos *repository.Repositories, gate *access.Gate, engine *rules.Engine, publisher events.Publisher) *Ledger {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Ledger{
		uow:    uow,
		repos:  repos,
		gate:   gate,
		rules:  engine,
		events: publisher,
		now:    time.Now,
	}
}

// SetClock replaces the time source used for default dates and times
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Rules returns the rules engine operations consult
func (l *Ledger) Rules() *rules.Engine {
	return l.rules
}

// Gate returns the access gate operations authorize against
func (l *Ledger) Gate() *access.Gate {
	return l.gate
}

func (l *Ledger) authorize(id access.Identity) error {
	return gateError(l.gate.Authorize(id))
}

func (l *Ledger) today() string {
	return l.now().Format(rules.DateLayout)
}

func (l *Ledger) clock() string {
	return l.now().Format(clockLayout)
}

func (l *Ledger) stamp() string {
	return l.now().Format("2006-01-02 15:04:05")
}

// dateOrToday validates a YYYY-MM-DD field, defaulting to today when blank
func (l *Ledger) dateOrToday(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return l.today(), nil
	}
	if _, err := rules.ParseDate(value); err != nil {
		return "", invalid("Invalid %s: use YYYY-MM-DD", field)
	}
	return value, nil
}

// track records the outcome of an operation; use with defer and a named error
func (l *Ledger) track(operation string, started time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	if errp != nil && *errp != nil {
		outcome = metrics.OutcomeError
		if IsDomainError(*errp) {
			outcome = metrics.OutcomeRejected
		}
	}
	metrics.ObserveOperation(operation, outcome, time.Since(started).Seconds())
}

// committed logs, counts and publishes an operation once its transaction is done
func (l *Ledger) committed(ctx context.Context, operation string, id access.Identity, reference string, book string, amount decimal.Decimal) {
	logger.Info("Ledger operation committed",
		"operation", operation,
		"role", id.Role,
		"reference", reference,
		"book", book,
		"amount", amount.String(),
	)
	if book != "" {
		metrics.AddAmount(book, amount)
	}

	event := events.LedgerEvent{
		Operation: operation,
		Actor:     id.Role,
		Reference: reference,
		Amount:    amount,
		Book:      book,
		At:        l.now().UTC(),
	}
	if err := l.events.Publish(ctx, event); err != nil {
		metrics.EventsDropped.Inc()
		logger.Warn("Failed to publish ledger event", "operation", operation, "error", err)
	}
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount in whole units with thousands separators
func FormatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%d", rules.Round(d).IntPart())
}

func required(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// dump reads every table and the totals in one transaction so the totals match the rows
func (l *Ledger) dump(ctx context.Context) (snap *models.Snapshot, err error) {
	err = l.uow.Read(ctx, func(r *repository.Repositories) error {
		snap, err = r.Snapshot.Dump(ctx)
		return err
	})
	return snap, err
}

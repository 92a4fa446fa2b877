// Package events publishes committed ledger operations to downstream consumers.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEvent describes one committed ledger operation
type LedgerEvent struct {
	Operation string          `json:"operation"`
	Actor     string          `json:"actor"`
	Reference string          `json:"reference,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Book      string          `json:"book,omitempty"`
	At        time.Time       `json:"at"`
}

// Publisher delivers ledger events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// Noop discards every event
type Noop struct{}

func (Noop) Publish(context.Context, LedgerEvent) error { return nil }

func (Noop) Close() error { return nil }

// Recorder keeps events in memory; used by tests
type Recorder struct {
	mu     sync.Mutex
	events []LedgerEvent
}

func (r *Recorder) Publish(_ context.Context, event LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of what was published so far
func (r *Recorder) Events() []LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LedgerEvent(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }

// Package metrics exposes Prometheus counters for ledger operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Operation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Operations counts ledger operations by name and outcome
var Operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cabinet",
	Subsystem: "ledger",
	Name:      "operations_total",
	Help:      "Total ledger operations by operation and outcome.",
}, []string{"operation", "outcome"})

// Amounts sums money moved into the collected and expenditure books
var Amounts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cabinet",
	Subsystem: "ledger",
	Name:      "amount_total",
	Help:      "Total currency units moved, by book (collected or expenditure).",
}, []string{"book"})

// OperationLatency tracks how long committed operations take
var OperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "cabinet",
	Subsystem: "ledger",
	Name:      "operation_seconds",
	Help:      "Ledger operation latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation"})

// EventsDropped counts ledger events that could not be published
var EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "cabinet",
	Subsystem: "events",
	Name:      "dropped_total",
	Help:      "Ledger events that failed to publish.",
})

// ObserveOperation records one operation and its duration
func ObserveOperation(operation, outcome string, seconds float64) {
	Operations.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeOK {
		OperationLatency.WithLabelValues(operation).Observe(seconds)
	}
}

// AddAmount adds a positive amount to a book counter
func AddAmount(book string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	Amounts.WithLabelValues(book).Add(amount.InexactFloat64())
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

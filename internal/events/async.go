package events

import (
	"context"

	"github.com/sjperalta/cabinet-api/internal/jobs"
	"github.com/sjperalta/cabinet-api/internal/metrics"
)

// Async hands events to a worker so publishing never holds up the caller
type Async struct {
	next   Publisher
	worker *jobs.Worker
}

// NewAsync publishes through next on worker's pool
func NewAsync(next Publisher, worker *jobs.Worker) *Async {
	return &Async{next: next, worker: worker}
}

// Publish queues the event. Delivery failures are counted and logged by the worker.
func (a *Async) Publish(_ context.Context, event LedgerEvent) error {
	a.worker.Enqueue("publish "+event.Operation, func(ctx context.Context) error {
		if err := a.next.Publish(ctx, event); err != nil {
			metrics.EventsDropped.Inc()
			return err
		}
		return nil
	})
	return nil
}

// Close closes the wrapped publisher; shut the worker down first so queued events are flushed
func (a *Async) Close() error {
	return a.next.Close()
}

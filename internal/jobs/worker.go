package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sjperalta/cabinet-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

type task struct {
	name string
	run  Job
}

// Worker runs queued jobs on a fixed pool and keeps periodic schedules
type Worker struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	sched   sync.WaitGroup
	stop    chan struct{}
	queue   chan task
	mu      sync.RWMutex
	closed  bool
	stats   WorkerStats
	statsMu sync.RWMutex
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int64 `json:"completed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
	QueueLength   int   `json:"queue_length"`
}

// NewWorker creates a worker with numWorkers processors and a queue of queueSize
func NewWorker(numWorkers, queueSize int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		queue:  make(chan task, queueSize),
		stop:   make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}
	return w
}

// Enqueue adds a job to the queue. When the queue is full the job runs on the caller's goroutine;
// after Shutdown it is rejected and false is returned.
func (w *Worker) Enqueue(name string, job Job) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		logger.Warn("Worker is shut down, job rejected", "job", name)
		return false
	}

	select {
	case w.queue <- task{name: name, run: job}:
	default:
		logger.Warn("Worker queue full, running job synchronously", "job", name)
		w.run(-1, task{name: name, run: job})
	}
	return true
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for t := range w.queue {
		w.run(workerID, t)
	}
}

func (w *Worker) run(workerID int, t task) {
	w.trackJobStart()
	defer w.trackJobEnd()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panic", "job", t.name, "worker", workerID, "panic", r)
			w.trackJobFailure()
		}
	}()

	start := time.Now()
	if err := t.run(w.ctx); err != nil {
		logger.Error("Job failed", "job", t.name, "worker", workerID, "error", err)
		w.trackJobFailure()
		return
	}
	logger.Debug("Job completed", "job", t.name, "worker", workerID, "duration", time.Since(start))
}

// ScheduleEvery enqueues job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.sched.Add(1)
	go func() {
		defer w.sched.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				w.Enqueue(name, job)
			}
		}
	}()
}

// Shutdown stops the schedules, drains the queue and waits for running jobs.
// Jobs see their context cancelled only after the queue is empty.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.stop)
	close(w.queue)
	w.mu.Unlock()

	w.sched.Wait()
	w.wg.Wait()
	w.cancel()
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

// CompletedJobs counts every finished job; FailedJobs is the failed subset
func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}

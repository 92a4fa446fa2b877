package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sjperalta/cabinet-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	m.Run()
}

func TestWorker_RunsQueuedJobs(t *testing.T) {
	w := NewWorker(2, 10)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		assert.True(t, w.Enqueue("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}))
	}
	w.Shutdown()

	assert.Equal(t, int32(5), ran.Load())
	stats := w.GetStats()
	assert.Equal(t, int64(5), stats.CompletedJobs)
	assert.Equal(t, int64(0), stats.FailedJobs)
	assert.Equal(t, 0, stats.ActiveJobs)
}

func TestWorker_CountsFailuresAndPanics(t *testing.T) {
	w := NewWorker(1, 10)

	w.Enqueue("fail", func(ctx context.Context) error { return errors.New("boom") })
	w.Enqueue("panic", func(ctx context.Context) error { panic("boom") })
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(2), stats.CompletedJobs)
	assert.Equal(t, int64(2), stats.FailedJobs)
}

func TestWorker_RejectsAfterShutdown(t *testing.T) {
	w := NewWorker(1, 1)
	w.Shutdown()
	w.Shutdown()

	assert.False(t, w.Enqueue("late", func(ctx context.Context) error { return nil }))
}

func TestWorker_ScheduleEvery(t *testing.T) {
	w := NewWorker(1, 10)

	var ran atomic.Int32
	w.ScheduleEvery("tick", 10*time.Millisecond, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return ran.Load() >= 2 }, time.Second, 5*time.Millisecond)
	w.Shutdown()
}

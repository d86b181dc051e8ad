package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"renthub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeferredService(queueSize, workers int) *DeferredTaskService {
	return NewDeferredTaskService(config.Config{
		DeferredQueueSize: queueSize,
		DeferredWorkers:   workers,
	})
}

func TestDeferredTaskService_RunsEnqueuedTasks(t *testing.T) {
	service := newTestDeferredService(16, 2)
	service.Start()

	var mu sync.Mutex
	ran := 0
	var wg sync.WaitGroup

	for range 5 {
		wg.Add(1)
		ok := service.Go("test-task", func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
		require.True(t, ok)
	}

	wg.Wait()
	assert.Equal(t, 5, ran)
	assert.NoError(t, service.Stop(time.Second))
}

func TestDeferredTaskService_DropsWhenQueueFull(t *testing.T) {
	service := newTestDeferredService(1, 1)
	// Not started: nothing drains the queue, so the second enqueue
	// must be rejected rather than block.

	first := service.Go("filler", func(ctx context.Context) error { return nil })
	second := service.Go("overflow", func(ctx context.Context) error { return nil })

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, int64(1), service.DroppedCount())
}

func TestDeferredTaskService_SurvivesPanicsAndErrors(t *testing.T) {
	service := newTestDeferredService(16, 1)
	service.Start()

	var wg sync.WaitGroup
	wg.Add(3)

	service.Go("panics", func(ctx context.Context) error {
		defer wg.Done()
		panic("boom")
	})
	service.Go("fails", func(ctx context.Context) error {
		defer wg.Done()
		return errors.New("task error")
	})

	completed := false
	service.Go("succeeds", func(ctx context.Context) error {
		defer wg.Done()
		completed = true
		return nil
	})

	wg.Wait()
	assert.True(t, completed, "worker must survive a panicking sibling task")
	assert.NoError(t, service.Stop(time.Second))
}

func TestDeferredTaskService_EnqueueDuringStopDoesNotPanic(t *testing.T) {
	// Enqueuers racing a concurrent Stop must get a clean rejection,
	// never a send on the closed queue.
	for range 20 {
		service := newTestDeferredService(4, 2)
		service.Start()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					service.Go("racer", func(ctx context.Context) error { return nil })
				}
			}()
		}

		_ = service.Stop(time.Second)
		wg.Wait()

		assert.False(t, service.Go("late", func(ctx context.Context) error { return nil }))
	}
}

func TestDeferredTaskService_StopRejectsNewTasks(t *testing.T) {
	service := newTestDeferredService(16, 1)
	service.Start()

	require.NoError(t, service.Stop(time.Second))

	ok := service.Go("late", func(ctx context.Context) error { return nil })
	assert.False(t, ok)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"renthub/config"
	"renthub/internal/logger"
)

// DeferredTask is a named unit of work executed off the request path.
// Failures are logged and never propagated to the enqueuer.
type DeferredTask struct {
	Name string
	Run  func(ctx context.Context) error
}

// DeferredTaskService owns a bounded queue of side-effect tasks
// (history writes, notifications, cache refreshes) drained by a fixed
// worker pool. Enqueue never blocks: when the queue is full the task
// is dropped and counted.
type DeferredTaskService struct {
	queue   chan DeferredTask
	workers int
	log     logger.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	closed  bool
	dropped int64
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewDeferredTaskService(config config.Config) *DeferredTaskService {
	size := config.DeferredQueueSize
	if size <= 0 {
		size = 256
	}
	workers := config.DeferredWorkers
	if workers <= 0 {
		workers = 4
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &DeferredTaskService{
		queue:   make(chan DeferredTask, size),
		workers: workers,
		log:     logger.New("DeferredTaskService"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start spins up the worker pool. Calling Start twice is a no-op.
func (s *DeferredTaskService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	log := s.log.Function("Start")
	log.Info("Starting deferred task workers", "workers", s.workers, "queueSize", cap(s.queue))

	for i := range s.workers {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Enqueue submits a task for asynchronous execution. Returns false when
// the task was dropped because the queue is full or the service stopped.
// The send happens under the same lock as the closed check: Stop closes
// the queue under that lock, so a send can never hit a closed channel.
func (s *DeferredTaskService) Enqueue(task DeferredTask) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.queue <- task:
		return true
	default:
		s.dropped++
		s.log.Warn("deferred task queue full, dropping task", "task", task.Name, "totalDropped", s.dropped)
		return false
	}
}

// Go wraps a bare function as a deferred task.
func (s *DeferredTaskService) Go(name string, fn func(ctx context.Context) error) bool {
	return s.Enqueue(DeferredTask{Name: name, Run: fn})
}

// DroppedCount reports how many tasks were rejected since startup.
func (s *DeferredTaskService) DroppedCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// PendingCount reports how many tasks are queued but not yet running.
func (s *DeferredTaskService) PendingCount() int {
	return len(s.queue)
}

func (s *DeferredTaskService) worker(id int) {
	defer s.wg.Done()

	log := s.log.Function("worker")

	for task := range s.queue {
		s.runTask(task, id, log)
	}
}

func (s *DeferredTaskService) runTask(task DeferredTask, workerID int, log logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Er(
				"panic in deferred task",
				fmt.Errorf("panic: %v", r),
				"task", task.Name,
				"worker", workerID,
			)
		}
	}()

	start := time.Now()
	if err := task.Run(s.ctx); err != nil {
		log.Er("deferred task failed", err, "task", task.Name, "worker", workerID)
		return
	}

	log.Debug("deferred task completed", "task", task.Name, "duration", time.Since(start))
}

// Stop closes the queue and waits for in-flight tasks to drain, up to
// the given timeout. Tasks still queued at timeout are abandoned.
func (s *DeferredTaskService) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	log := s.log.Function("Stop")
	log.Info("Stopping deferred task service", "pending", len(s.queue))

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		log.Info("Deferred task service stopped")
		return nil
	case <-time.After(timeout):
		s.cancel()
		return log.ErrMsg("timed out waiting for deferred tasks to drain")
	}
}

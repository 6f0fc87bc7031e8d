// Package pool bounds the concurrency of CPU-bound scoring work. The
// fuzzy scorer's cost scales with roster size, so simultaneous resolution
// calls funnel their scoring through a fixed set of workers instead of
// spawning a goroutine each.
package pool

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/okian/rostermatch/pkg/metrics"
)

// Default pool configuration constants.
const (
	defaultQueueSize = 1024
	stopTimeout      = 5 * time.Second
)

// Task is a unit of work executed by a pool worker.
type Task func()

// task wraps a Task with its enqueue time for wait-delay metrics.
type task struct {
	run      Task
	enqueued time.Time
}

// Pool executes submitted tasks on a fixed number of workers.
type Pool struct {
	workers   int
	queueSize int

	tasks chan task

	mu      sync.RWMutex
	started bool
	closed  bool
	done    sync.WaitGroup
}

// New creates a Pool with configuration options.
func New(opts ...Option) *Pool {
	p := &Pool{
		workers:   runtime.NumCPU(),
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan task, p.queueSize)
	return p
}

// Start launches the workers. Tasks submitted before Start wait in the
// queue.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.done.Add(1)
		go p.run(ctx)
	}
	metrics.UpdatePoolWorkers(p.workers)
}

// run is one worker loop.
func (p *Pool) run(ctx context.Context) {
	defer p.done.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			metrics.RecordPoolTaskDelay(float64(time.Since(t.enqueued).Milliseconds()))
			metrics.UpdatePoolDepth(len(p.tasks))
			t.run()
		}
	}
}

// Submit queues fn for execution. Returns false when the queue is full,
// the pool is stopped, or ctx is done; the caller decides whether that is
// backpressure or an error.
func (p *Pool) Submit(ctx context.Context, fn Task) bool {
	// The read lock excludes Stop's close of the task channel.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		metrics.RecordPoolRejected()
		return false
	}

	select {
	case p.tasks <- task{run: fn, enqueued: time.Now()}:
		metrics.UpdatePoolDepth(len(p.tasks))
		return true
	case <-ctx.Done():
		metrics.RecordPoolRejected()
		return false
	default:
		metrics.RecordPoolRejected()
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish, up to a
// timeout.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		p.done.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(stopTimeout):
	}
}

package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type reactorDrivingKey struct{}

// InMemoryReactor is a reference Reactor implementation: an in-process
// FIFO ready queue with no I/O of its own. It exists so this package's
// own tests and small demos can exercise the executor without a real
// network reactor; a database server would plug its actual async I/O
// engine in behind the same interface instead.
type InMemoryReactor struct {
	queue     *readyQueue
	newTaskCh chan struct{}

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}

	guardCount int32
}

// NewInMemoryReactor creates a ready-to-run reactor.
func NewInMemoryReactor() *InMemoryReactor {
	return &InMemoryReactor{
		queue:     newReadyQueue(),
		newTaskCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

func (r *InMemoryReactor) wake() {
	select {
	case r.newTaskCh <- struct{}{}:
	default:
	}
}

func (r *InMemoryReactor) Post(task Task) {
	r.queue.push(task)
	r.wake()
}

func (r *InMemoryReactor) Dispatch(ctx context.Context, task Task) {
	if driver, ok := ctx.Value(reactorDrivingKey{}).(*InMemoryReactor); ok && driver == r {
		task(ctx)
		return
	}
	r.Post(task)
}

func (r *InMemoryReactor) currentStopCh() chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopCh
}

func (r *InMemoryReactor) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	close(r.stopCh)
}

func (r *InMemoryReactor) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func (r *InMemoryReactor) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stopped {
		return
	}
	r.stopped = false
	r.stopCh = make(chan struct{})
}

type workGuard struct {
	r *InMemoryReactor
}

func (g *workGuard) Release() {
	atomic.AddInt32(&g.r.guardCount, -1)
}

func (r *InMemoryReactor) AcquireWorkGuard() WorkGuard {
	atomic.AddInt32(&r.guardCount, 1)
	return &workGuard{r: r}
}

func (r *InMemoryReactor) hasWork() bool {
	return atomic.LoadInt32(&r.guardCount) > 0
}

// RunFor drains ready tasks until d elapses, the reactor is stopped, or
// (with no work guard held) the queue runs dry.
func (r *InMemoryReactor) RunFor(ctx context.Context, d time.Duration) error {
	return r.run(ctx, d, false)
}

// RunOneFor drains at most one ready task within d.
func (r *InMemoryReactor) RunOneFor(ctx context.Context, d time.Duration) error {
	return r.run(ctx, d, true)
}

func (r *InMemoryReactor) run(ctx context.Context, d time.Duration, oneShot bool) error {
	drivingCtx := context.WithValue(ctx, reactorDrivingKey{}, r)
	deadline := time.Now().Add(d)
	stopCh := r.currentStopCh()

	ran := 0
	for {
		select {
		case <-stopCh:
			return nil
		default:
		}

		if task, ok := r.queue.pop(); ok {
			task(drivingCtx)
			ran++
			if oneShot || !time.Now().Before(deadline) {
				return nil
			}
			continue
		}

		if !r.hasWork() {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}

		timer := time.NewTimer(remaining)
		select {
		case <-r.newTaskCh:
			timer.Stop()
			continue
		case <-stopCh:
			timer.Stop()
			return nil
		case <-timer.C:
			return nil
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

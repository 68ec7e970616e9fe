package core

import (
	"sync"
	"time"
)

// ThreadTimer is one of a pair of stopwatches (running, executing) that
// track how a worker spends its time. Ticks are counted in nanoseconds
// using the monotonic clock behind time.Now(); TotalTime returns them as
// a time.Duration, which the stats surface later divides down to
// microseconds.
//
// TotalTime must be safe to call from another goroutine while the timer
// is inside an open interval (the worker owning it is mid run-slice); a
// short mutex around the open-interval bookkeeping gives that.
type ThreadTimer struct {
	mu        sync.Mutex
	committed time.Duration
	startedAt time.Time
	running   bool
}

// MarkStarted opens a new interval. Calling it while already open is a
// caller bug; it silently resets the start point rather than panicking,
// since worker/controller code that raced past this would rather run
// slow than crash a request-serving thread.
func (t *ThreadTimer) MarkStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = time.Now()
	t.running = true
}

// MarkStopped closes the open interval, folds it into the committed
// total, and returns the duration of just that interval.
func (t *ThreadTimer) MarkStopped() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	elapsed := time.Since(t.startedAt)
	t.committed += elapsed
	t.running = false
	return elapsed
}

// TotalTime returns the committed accumulator plus, if an interval is
// currently open, the elapsed portion of it.
func (t *ThreadTimer) TotalTime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.committed + time.Since(t.startedAt)
	}
	return t.committed
}

package core

import (
	"context"
	"sync/atomic"
	"time"
)

// wrapTask decorates a submitted task with the accounting spec §4.D
// describes: queue-latency measurement, outermost-only executing-time
// and in-use tracking, and the total-executed counter. pendingCounter is
// whichever of tasksQueued/deferredTasksQueued Schedule chose for this
// task.
func (e *Executor) wrapTask(task Task, pendingCounter *atomic.Int64) Task {
	scheduledAt := time.Now()

	return func(ctx context.Context) {
		pendingCounter.Add(-1)
		e.totalSpentQueued.Add(int64(time.Since(scheduledAt)))

		ts := threadStateFromContext(ctx)
		if ts == nil {
			panic("adaptive executor: task ran without an attached worker thread state")
		}

		if atomic.AddInt32(&ts.RecursionDepth, 1) == 1 {
			ts.Executing.MarkStarted()
			e.threadsInUse.Add(1)
		}

		defer func() {
			if atomic.AddInt32(&ts.RecursionDepth, -1) == 0 {
				atomic.AddInt64(&ts.ExecutingThisRun, int64(ts.Executing.MarkStopped()))
				e.threadsInUse.Add(-1)
			}
			e.totalExecuted.Add(1)
		}()

		task(ctx)
	}
}

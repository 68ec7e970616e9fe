package core

import (
	"context"
	"sync/atomic"
	"time"
)

// workerThreadRoutine is a worker's entire lifetime: it drives the
// shared Reactor for bounded run-slices until told to stop, the pool
// tells it to retire, or the Reactor itself misbehaves. Every exit path
// — normal shutdown, voluntary retirement, or a recovered Reactor panic
// — runs through the same deferred teardown, matching spec §4.C.
func (e *Executor) workerThreadRoutine(ts *ThreadState) {
	jitter := e.threadJitter()
	stillPending := true

	defer func() {
		if stillPending {
			e.threadsPending.Add(-1)
		}
		e.threadsRunning.Add(-1)
		e.pastThreadsSpentRunning.Add(int64(ts.Running.TotalTime()))
		e.pastThreadsSpentExecuting.Add(int64(ts.Executing.TotalTime()))

		e.threadsMu.Lock()
		delete(e.threads, ts)
		e.threadsMu.Unlock()
		e.deathCond.Broadcast()
	}()

	for e.running.Load() {
		runTime := e.options.WorkerThreadRunTime() + jitter
		if runTime <= 0 {
			// Defensive floor: the spec asserts run_time > 0. A jitter
			// bound close to the base run time could in principle drive
			// this negative; fall back to the unjittered base instead
			// of handing the Reactor a non-positive deadline.
			runTime = e.options.WorkerThreadRunTime()
		}

		atomic.StoreInt64(&ts.ExecutingThisRun, 0)

		guard := e.reactor.AcquireWorkGuard()
		ctx := withThreadState(context.Background(), ts)

		ts.Running.MarkStarted()
		reactorPanicked := e.runReactorSlice(ctx, ts, stillPending, runTime)
		guard.Release()

		if reactorPanicked {
			e.startWorkerThread()
			return
		}

		if e.reactor.Stopped() {
			e.reactor.Restart()
		}

		spentRunning := ts.Running.MarkStopped()

		if stillPending {
			stillPending = false
			e.threadsPending.Add(-1)
			continue
		}

		if e.threadsRunning.Load() <= int64(e.options.ReservedThreads()) {
			continue
		}

		if spentRunning <= 0 {
			continue
		}
		executingThisRun := time.Duration(atomic.LoadInt64(&ts.ExecutingThisRun))
		pctExecuting := int(100 * executingThisRun / spentRunning)
		if pctExecuting < e.options.IdlePctThreshold() {
			e.logger.Info("worker retiring below idle threshold",
				F("worker", ts.Name), F("pctExecuting", pctExecuting))
			return
		}
	}
}

// runReactorSlice drives a single bounded reactor slice and recovers a
// panic escaping it, reporting whether one occurred. A panicking Reactor
// call is the Go analogue of the C++ exception path in the original
// design: the worker's loop breaks and a single replacement is spawned
// before this worker finishes exiting.
func (e *Executor) runReactorSlice(ctx context.Context, ts *ThreadState, pending bool, runTime time.Duration) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("worker: reactor call panicked, replacing worker",
				F("worker", ts.Name), F("panic", r))
			e.metrics.RecordTaskPanic(r)
			panicked = true
		}
	}()

	var err error
	if pending {
		err = e.reactor.RunOneFor(ctx, runTime)
	} else {
		err = e.reactor.RunFor(ctx, runTime)
	}
	if err != nil {
		panic(err)
	}
	return false
}

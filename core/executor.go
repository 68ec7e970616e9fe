package core

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// executorName is the fixed label the stats snapshot reports itself
// under; matches the original service executor's serverStatus label.
const executorName = "adaptive"

// Executor is an adaptive, self-tuning pool of worker goroutines that
// drive a shared Reactor. It is the sole subject of this package: task
// admission, worker lifecycle, and the controller loop that grows the
// pool to match offered load and unblocks it when it looks stuck.
type Executor struct {
	reactor Reactor
	options Options
	logger  Logger
	metrics Metrics

	running atomic.Bool

	threadsMu sync.Mutex
	threads   map[*ThreadState]struct{}
	deathCond *sync.Cond

	threadsRunning atomic.Int64
	threadsPending atomic.Int64
	threadsInUse   atomic.Int64

	tasksQueued         atomic.Int64
	deferredTasksQueued atomic.Int64
	totalQueued         atomic.Int64
	totalExecuted       atomic.Int64
	totalSpentQueued    atomic.Int64 // nanoseconds

	pastThreadsSpentRunning   atomic.Int64 // nanoseconds
	pastThreadsSpentExecuting atomic.Int64 // nanoseconds

	lastScheduleAt atomic.Int64 // UnixNano

	scheduleWake chan struct{}

	jitterMu  sync.Mutex
	jitterRNG *rand.Rand

	nextWorkerID atomic.Int64

	controllerDone chan struct{}
}

// NewExecutor builds an Executor around the given Reactor and Options.
// The executor is created stopped; call Start to launch the controller
// and the reserved worker pool.
func NewExecutor(reactor Reactor, options Options, logger Logger, metrics Metrics) *Executor {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	if metrics == nil {
		metrics = &NilMetrics{}
	}
	e := &Executor{
		reactor:      reactor,
		options:      options,
		logger:       logger,
		metrics:      metrics,
		threads:      make(map[*ThreadState]struct{}),
		scheduleWake: make(chan struct{}, 1),
		jitterRNG:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	e.deathCond = sync.NewCond(&e.threadsMu)
	return e
}

// Start flips the executor into the running state, launches the
// controller goroutine, and spawns ReservedThreads workers.
func (e *Executor) Start() {
	e.running.Store(true)
	e.controllerDone = make(chan struct{})
	go e.controllerRoutine(e.controllerDone)
	for i := 0; i < e.options.ReservedThreads(); i++ {
		e.startWorkerThread()
	}
}

// Shutdown stops accepting new work, wakes and joins the controller,
// stops the Reactor so every in-progress run returns, then waits up to
// timeout for all workers to drain. Calling Shutdown twice is safe; the
// second call returns nil immediately.
func (e *Executor) Shutdown(timeout time.Duration) error {
	if !e.running.CompareAndSwap(true, false) {
		return nil
	}

	e.wakeController()
	<-e.controllerDone

	e.reactor.Stop()

	deadline := time.Now().Add(timeout)
	drained := make(chan struct{})
	go func() {
		e.threadsMu.Lock()
		for len(e.threads) > 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				e.threadsMu.Unlock()
				return
			}
			timer := time.AfterFunc(remaining, e.deathCond.Broadcast)
			e.deathCond.Wait()
			timer.Stop()
		}
		e.threadsMu.Unlock()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-time.After(timeout):
		e.threadsMu.Lock()
		empty := len(e.threads) == 0
		e.threadsMu.Unlock()
		if empty {
			return nil
		}
		return ErrExceededTimeLimit
	}
}

// Schedule is the sole admission entry point. ctx should be the context
// passed into the calling task if the caller is itself running on a
// worker (this is how the executor recognizes recursive submission and
// finds the caller's recursion depth); external submitters may pass
// context.Background() or a request-scoped context, in which case the
// task is never treated as recursible.
func (e *Executor) Schedule(ctx context.Context, task Task, flags ScheduleFlags) error {
	pendingCounter := &e.tasksQueued
	if flags.has(Deferred) {
		pendingCounter = &e.deferredTasksQueued
	}
	pendingCounter.Add(1)

	if !e.running.Load() {
		e.metrics.RecordScheduleRejected("shutdown")
		return ErrShutdownInProgress
	}

	wrapped := e.wrapTask(task, pendingCounter)

	callerState := threadStateFromContext(ctx)
	if flags.has(MayRecurse) && callerState != nil &&
		callerState.recursionDepth()+1 < int32(e.options.RecursionLimit()) {
		e.reactor.Dispatch(ctx, wrapped)
	} else {
		e.reactor.Post(wrapped)
	}

	e.lastScheduleAt.Store(time.Now().UnixNano())
	e.totalQueued.Add(1)

	if !flags.has(Deferred) && e.isStarved() {
		e.wakeController()
	}

	return nil
}

func (e *Executor) wakeController() {
	select {
	case e.scheduleWake <- struct{}{}:
	default:
	}
}

// isStarved reports whether more tasks are queued than there are free
// (running but not in-use) workers, and no spawn is already in flight.
func (e *Executor) isStarved() bool {
	if e.threadsPending.Load() > 0 {
		return false
	}
	queued := e.tasksQueued.Load()
	if queued == 0 {
		return false
	}
	available := e.threadsRunning.Load() - e.threadsInUse.Load()
	return queued > available
}

// threadTimerTotals sums Running/Executing time across every live
// thread under threadsMu, plus the accumulators folded in by threads
// that have already exited.
func (e *Executor) threadTimerTotals() (running, executing time.Duration) {
	running = time.Duration(e.pastThreadsSpentRunning.Load())
	executing = time.Duration(e.pastThreadsSpentExecuting.Load())

	e.threadsMu.Lock()
	defer e.threadsMu.Unlock()
	for ts := range e.threads {
		running += ts.Running.TotalTime()
		executing += ts.Executing.TotalTime()
	}
	return running, executing
}

func (e *Executor) threadJitter() time.Duration {
	param := e.options.RunTimeJitter()
	if param == 0 {
		return 0
	}

	e.jitterMu.Lock()
	jitter := time.Duration(e.jitterRNG.Int63n(2*int64(param)+1) - int64(param))
	e.jitterMu.Unlock()

	if jitter > e.options.WorkerThreadRunTime() {
		jitter = 0
	}
	return jitter
}

// startWorkerThread registers a new ThreadState, pre-increments the
// pending/running counters, then launches the worker goroutine. Unlike
// an OS thread launch, a goroutine spawn cannot itself fail, so there is
// no rollback path: the registration and counter increments are never
// undone here.
func (e *Executor) startWorkerThread() {
	ts := &ThreadState{Name: e.nextWorkerName()}

	e.threadsMu.Lock()
	e.threads[ts] = struct{}{}
	e.threadsMu.Unlock()

	e.threadsPending.Add(1)
	e.threadsRunning.Add(1)

	go e.workerThreadRoutine(ts)
}

func (e *Executor) nextWorkerName() string {
	n := e.nextWorkerID.Add(1)
	return "worker-" + strconv.FormatInt(n, 10)
}

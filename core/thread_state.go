package core

import (
	"context"
	"sync/atomic"
)

// ThreadState is the per-worker accounting record described in spec §3.
// Exactly one Worker owns a ThreadState; it is registered in the
// executor's threads collection before the worker's goroutine starts and
// removed from it as the worker's last act.
//
// The original design gives each worker OS thread a thread-local pointer
// to its ThreadState so a wrapped task can find it without a map lookup.
// Go has no equivalent of thread-local storage tied to a goroutine, but
// it does have the idiom this same codebase already uses for
// GetCurrentTaskRunner: stash the pointer in the context.Context that
// flows from the worker's reactor call down into the task body. Every
// worker goroutine services exactly one run-slice at a time and always
// passes its own context down, so this reproduces "thread-local" lookup
// semantics exactly, just addressed by context instead of goroutine ID.
type ThreadState struct {
	Name string

	Running   ThreadTimer
	Executing ThreadTimer

	// ExecutingThisRun accumulates outermost executing time observed
	// during the current run-slice only; read and written solely by the
	// owning worker goroutine between MarkStarted/MarkStopped of Running.
	ExecutingThisRun int64 // nanoseconds

	// RecursionDepth counts the wrapped task frames currently on this
	// worker's stack: 1 for the outermost task, plus one per task run
	// inline through Schedule(..., MayRecurse). Written by TaskWrapper only,
	// which always executes on the worker that owns this ThreadState.
	RecursionDepth int32
}

type threadStateKey struct{}

// withThreadState returns a context carrying the given ThreadState, for
// a worker to attach to every reactor call it makes.
func withThreadState(ctx context.Context, ts *ThreadState) context.Context {
	return context.WithValue(ctx, threadStateKey{}, ts)
}

// threadStateFromContext retrieves the ThreadState attached by the
// worker driving the current call stack. A task invoked outside of a
// worker's reactor call (i.e. not through Schedule) would find nil here,
// which by construction should never happen for tasks wrapped by
// Executor.Schedule.
func threadStateFromContext(ctx context.Context) *ThreadState {
	ts, _ := ctx.Value(threadStateKey{}).(*ThreadState)
	return ts
}

func (s *ThreadState) recursionDepth() int32 {
	return atomic.LoadInt32(&s.RecursionDepth)
}

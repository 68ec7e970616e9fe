package core

import (
	"context"
	"time"
)

// Reactor is the external asynchronous I/O engine the executor drives.
// It is not implemented by this package for production use — the real
// one is the network layer's event loop — but every worker goroutine
// assumes exactly this contract, bit for bit, and makes no other
// assumption about what happens inside it. InMemoryReactor below is a
// reference implementation used by the executor's own tests and by
// callers who want a ready-made in-process work queue.
type Reactor interface {
	// Post enqueues task and returns without running it on the calling
	// goroutine.
	Post(task Task)

	// Dispatch runs task inline if the calling goroutine is currently
	// inside a RunFor/RunOneFor call on this reactor; otherwise it
	// behaves like Post.
	Dispatch(ctx context.Context, task Task)

	// RunFor drains ready tasks for up to d wall-clock time. It may
	// return earlier if there is no work and no WorkGuard is held.
	RunFor(ctx context.Context, d time.Duration) error

	// RunOneFor drains at most one ready task, or returns once d has
	// elapsed, whichever comes first.
	RunOneFor(ctx context.Context, d time.Duration) error

	// Stop causes every in-progress and future RunFor/RunOneFor call to
	// return until Restart is called.
	Stop()

	// Stopped reports whether Stop has been called without a matching
	// Restart.
	Stopped() bool

	// Restart clears a Stop, allowing RunFor/RunOneFor to block for work
	// again.
	Restart()

	// AcquireWorkGuard returns a token that prevents RunFor from
	// returning early for lack of work until the token is released. A
	// worker holds one across each run-slice so a momentarily empty
	// queue doesn't return control before the slice's time budget is
	// spent.
	AcquireWorkGuard() WorkGuard
}

// WorkGuard is an RAII-style token; Release must be called exactly once.
type WorkGuard interface {
	Release()
}

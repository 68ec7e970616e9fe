package core

import "context"

// Task is a short-lived unit of work handed to the executor. It runs to
// completion on a worker goroutine and may itself call Schedule again.
type Task func(ctx context.Context)

// ScheduleFlags is a bitset of orthogonal admission hints passed to
// Schedule. The zero value requests plain FIFO posting.
type ScheduleFlags uint8

const (
	// MayRecurse allows the task to run synchronously, inline on the
	// calling goroutine, if the caller is itself a worker currently below
	// the configured recursion limit. Otherwise it is posted like any
	// other task.
	MayRecurse ScheduleFlags = 1 << iota

	// Deferred tasks are counted in a separate queue-depth counter and
	// are excluded from starvation-driven controller wakeups.
	Deferred
)

func (f ScheduleFlags) has(bit ScheduleFlags) bool { return f&bit != 0 }

package core

import (
	"runtime"
	"sync"
	"time"
)

// Options is the live-reconfiguration surface the executor reads from on
// every use. Implementations should be safe for concurrent reads; each
// method may be called from the controller, a worker, or a submitter
// goroutine at any time.
type Options interface {
	// ReservedThreads is the minimum pool size: the floor voluntary exit
	// respects and the target reserve-refill spawns toward. -1 means
	// "max(NumCPU/2, 2)", memoized on first use.
	ReservedThreads() int

	// WorkerThreadRunTime is the base length of a worker's reactor slice.
	WorkerThreadRunTime() time.Duration

	// RunTimeJitter is the +/- uniform jitter added once per worker
	// lifetime to desynchronize slice boundaries.
	RunTimeJitter() time.Duration

	// StuckThreadTimeout is both the controller's wait cap and the
	// round length at or above which the controller runs stuck detection.
	StuckThreadTimeout() time.Duration

	// MaxQueueLatency is the per-iteration sleep the controller uses
	// while waiting for pending threads to become running.
	MaxQueueLatency() time.Duration

	// IdlePctThreshold is the percentage of run-time spent executing
	// below which idle workers beyond the reserve retire, and below
	// which the controller refuses to grow even when starved.
	IdlePctThreshold() int

	// RecursionLimit is the exclusive upper bound on recursion depth
	// honored by MayRecurse.
	RecursionLimit() int
}

// StaticOptions is a struct-backed Options implementation carrying the
// spec's documented defaults. Fields may be mutated at runtime by a
// caller holding no lock other than atomic visibility guarantees on the
// individual scalar fields it stores; ReservedThreads alone requires
// resolution state, tracked separately.
type StaticOptions struct {
	// ReservedThreadsValue is the configured value; -1 requests the
	// cores/2 default, memoized on first call to ReservedThreads.
	ReservedThreadsValue int
	WorkerRunTime        time.Duration
	Jitter               time.Duration
	StuckTimeout         time.Duration
	QueueLatency         time.Duration
	IdlePct              int
	MaxRecursionDepth    int

	resolveOnce     sync.Once
	resolvedThreads int
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() *StaticOptions {
	return &StaticOptions{
		ReservedThreadsValue: -1,
		WorkerRunTime:        5000 * time.Millisecond,
		Jitter:               500 * time.Millisecond,
		StuckTimeout:         250 * time.Millisecond,
		QueueLatency:         500 * time.Microsecond,
		IdlePct:              60,
		MaxRecursionDepth:    8,
	}
}

func (o *StaticOptions) ReservedThreads() int {
	o.resolveOnce.Do(func() {
		if o.ReservedThreadsValue != -1 {
			o.resolvedThreads = o.ReservedThreadsValue
			return
		}
		n := runtime.NumCPU() / 2
		if n < 2 {
			n = 2
		}
		o.resolvedThreads = n
	})
	return o.resolvedThreads
}

func (o *StaticOptions) WorkerThreadRunTime() time.Duration { return o.WorkerRunTime }
func (o *StaticOptions) RunTimeJitter() time.Duration       { return o.Jitter }
func (o *StaticOptions) StuckThreadTimeout() time.Duration  { return o.StuckTimeout }
func (o *StaticOptions) MaxQueueLatency() time.Duration     { return o.QueueLatency }
func (o *StaticOptions) IdlePctThreshold() int              { return o.IdlePct }
func (o *StaticOptions) RecursionLimit() int                { return o.MaxRecursionDepth }

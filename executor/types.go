package executor

import "github.com/coredb/adaptive-executor/core"

// Re-exported so most callers need only import this package.

type Task = core.Task
type ScheduleFlags = core.ScheduleFlags
type Options = core.Options
type StaticOptions = core.StaticOptions
type Reactor = core.Reactor
type WorkGuard = core.WorkGuard
type Logger = core.Logger
type Metrics = core.Metrics
type Stats = core.Stats
type Executor = core.Executor

const (
	MayRecurse = core.MayRecurse
	Deferred   = core.Deferred
)

var (
	ErrShutdownInProgress = core.ErrShutdownInProgress
	ErrExceededTimeLimit  = core.ErrExceededTimeLimit
)

var (
	DefaultOptions     = core.DefaultOptions
	NewInMemoryReactor = core.NewInMemoryReactor
	NewDefaultLogger   = core.NewDefaultLogger
	NewNoOpLogger      = core.NewNoOpLogger
)

// New builds an Executor around the given Reactor and Options. logger
// and metrics may be nil, in which case a no-op implementation is used.
func New(reactor Reactor, options Options, logger Logger, metrics Metrics) *Executor {
	return core.NewExecutor(reactor, options, logger, metrics)
}

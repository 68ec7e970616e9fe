package core

// Stats is the read-only snapshot produced by Executor.Stats, mirroring
// the key set the original service executor reports under
// serviceExecutorTaskStats. Time fields are microseconds.
type Stats struct {
	Executor                 string
	TotalQueued              int64
	TotalExecuted            int64
	TasksQueued              int64
	DeferredTasksQueued      int64
	ThreadsInUse             int64
	TotalTimeRunningMicros   int64
	TotalTimeExecutingMicros int64
	TotalTimeQueuedMicros    int64
	ThreadsRunning           int64
	ThreadsPending           int64
}

// Stats produces a point-in-time snapshot of the executor's counters. It
// never blocks on worker or task state beyond the short threadsMu
// hold inside threadTimerTotals.
func (e *Executor) Stats() Stats {
	running, executing := e.threadTimerTotals()

	return Stats{
		Executor:                 executorName,
		TotalQueued:              e.totalQueued.Load(),
		TotalExecuted:            e.totalExecuted.Load(),
		TasksQueued:              e.tasksQueued.Load(),
		DeferredTasksQueued:      e.deferredTasksQueued.Load(),
		ThreadsInUse:             e.threadsInUse.Load(),
		TotalTimeRunningMicros:   running.Microseconds(),
		TotalTimeExecutingMicros: executing.Microseconds(),
		TotalTimeQueuedMicros:    e.totalSpentQueued.Load() / 1000,
		ThreadsRunning:           e.threadsRunning.Load(),
		ThreadsPending:           e.threadsPending.Load(),
	}
}

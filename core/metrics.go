package core

// Metrics is the observability surface the executor reports through.
// Implementations can forward to any monitoring backend; methods should
// be non-blocking and fast since they are called from the controller's
// and workers' hot paths. All methods must handle nil receivers
// gracefully — practically speaking, use NilMetrics instead of a nil
// interface value.
type Metrics interface {
	// RecordPoolSize is called by the controller whenever it spawns
	// workers, reporting the resulting threadsRunning/threadsPending.
	RecordPoolSize(running, pending int)

	// RecordUtilization is called once per controller round with the
	// executing/running ratio computed that round.
	RecordUtilization(pct float64)

	// RecordTaskPanic is called when a Reactor call panics and the
	// worker is about to be replaced.
	RecordTaskPanic(panicInfo any)

	// RecordScheduleRejected is called when Schedule returns
	// ErrShutdownInProgress.
	RecordScheduleRejected(reason string)

	// RecordQueueDepth reports the current regular/deferred queue depth.
	RecordQueueDepth(tasksQueued, deferredTasksQueued int)
}

// NilMetrics is the no-op default.
type NilMetrics struct{}

func (m *NilMetrics) RecordPoolSize(running, pending int)                   {}
func (m *NilMetrics) RecordUtilization(pct float64)                         {}
func (m *NilMetrics) RecordTaskPanic(panicInfo any)                         {}
func (m *NilMetrics) RecordScheduleRejected(reason string)                  {}
func (m *NilMetrics) RecordQueueDepth(tasksQueued, deferredTasksQueued int) {}

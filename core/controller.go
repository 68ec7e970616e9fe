package core

import "time"

// controllerRoutine is the single background goroutine that observes
// aggregate utilization and queue starvation to grow the pool, and
// detects a stuck pool (every worker busy, nothing scheduled in a
// while) to unblock it. It runs until Shutdown flips running false,
// then closes done so Shutdown can join it.
func (e *Executor) controllerRoutine(done chan struct{}) {
	defer close(done)

	var lastSpentExecuting, lastSpentRunning time.Duration
	roundStart := time.Now()

	for e.running.Load() {
		e.waitForWakeOrTimeout(e.options.StuckThreadTimeout())

		if !e.running.Load() {
			return
		}

		sinceLastRound := time.Since(roundStart)
		roundStart = time.Now()

		spentRunning, spentExecuting := e.threadTimerTotals()
		diffRunning := spentRunning - lastSpentRunning
		diffExecuting := spentExecuting - lastSpentExecuting

		var utilizationPct float64
		if spentRunning == 0 || diffRunning == 0 {
			utilizationPct = 0
		} else {
			utilizationPct = 100 * float64(diffExecuting) / float64(diffRunning)
			lastSpentRunning = spentRunning
			lastSpentExecuting = spentExecuting
		}
		e.metrics.RecordUtilization(utilizationPct)
		e.metrics.RecordQueueDepth(int(e.tasksQueued.Load()), int(e.deferredTasksQueued.Load()))

		if sinceLastRound >= e.options.StuckThreadTimeout() {
			sinceLastSchedule := time.Since(time.Unix(0, e.lastScheduleAt.Load()))
			if e.threadsInUse.Load() == e.threadsRunning.Load() &&
				sinceLastSchedule >= e.options.StuckThreadTimeout() {
				e.logger.Warn("detected blocked worker threads, starting reserve threads to unblock executor")
				for i := 0; i < e.options.ReservedThreads(); i++ {
					e.startWorkerThread()
				}
				e.metrics.RecordPoolSize(int(e.threadsRunning.Load()), int(e.threadsPending.Load()))
				continue
			}
		}

		if running := e.threadsRunning.Load(); running < int64(e.options.ReservedThreads()) {
			e.logger.Info("replenishing reserved worker threads",
				F("running", running), F("reserved", e.options.ReservedThreads()))
			for e.threadsRunning.Load() < int64(e.options.ReservedThreads()) {
				e.startWorkerThread()
			}
			e.metrics.RecordPoolSize(int(e.threadsRunning.Load()), int(e.threadsPending.Load()))
		}

		if utilizationPct < float64(e.options.IdlePctThreshold()) {
			continue
		}

		latencyBudgetDeadline := time.Now().Add(e.options.StuckThreadTimeout())
		for e.threadsPending.Load() > 0 && time.Now().Before(latencyBudgetDeadline) {
			time.Sleep(e.options.MaxQueueLatency())
		}

		if e.isStarved() {
			e.logger.Info("starting worker thread to avoid starvation")
			e.startWorkerThread()
			e.metrics.RecordPoolSize(int(e.threadsRunning.Load()), int(e.threadsPending.Load()))
		}
	}
}

// waitForWakeOrTimeout blocks until Schedule wakes the controller via
// scheduleWake or the timeout elapses. A spurious wake is harmless: the
// loop body above is idempotent per iteration.
func (e *Executor) waitForWakeOrTimeout(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-e.scheduleWake:
	case <-timer.C:
	}
}

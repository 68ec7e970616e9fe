package prometheus

import (
	"errors"
	"fmt"

	"github.com/coredb/adaptive-executor/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct{}

// MetricsExporter adapts core.Metrics to Prometheus collectors, mirroring
// the executor's serverStatus-style counters as a scrape target instead.
type MetricsExporter struct {
	poolRunning     prom.Gauge
	poolPending     prom.Gauge
	utilizationPct  prom.Gauge
	tasksQueued     prom.Gauge
	deferredQueued  prom.Gauge
	taskPanicTotal  prom.Counter
	scheduleRejects *prom.CounterVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors reporting
// the adaptive executor's pool size, utilization, queue depth, and panic
// counts under the given namespace.
func NewMetricsExporter(namespace string, reg prom.Registerer) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "adaptive_executor"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	poolRunning := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "threads_running",
		Help:      "Current number of live worker goroutines.",
	})
	poolPending := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "threads_pending",
		Help:      "Worker goroutines spawned but not yet through their first run-slice.",
	})
	utilizationPct := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "utilization_pct",
		Help:      "Most recent controller-round executing/running ratio, as a percentage.",
	})
	tasksQueued := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks_queued",
		Help:      "Regular tasks currently queued.",
	})
	deferredQueued := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "deferred_tasks_queued",
		Help:      "Deferred tasks currently queued.",
	})
	taskPanicTotal := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panic_total",
		Help:      "Total number of Reactor calls that panicked and triggered a worker replacement.",
	})
	scheduleRejects := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_rejected_total",
		Help:      "Total number of Schedule calls rejected, by reason.",
	}, []string{"reason"})

	var err error
	if poolRunning, err = registerCollector(reg, poolRunning); err != nil {
		return nil, err
	}
	if poolPending, err = registerCollector(reg, poolPending); err != nil {
		return nil, err
	}
	if utilizationPct, err = registerCollector(reg, utilizationPct); err != nil {
		return nil, err
	}
	if tasksQueued, err = registerCollector(reg, tasksQueued); err != nil {
		return nil, err
	}
	if deferredQueued, err = registerCollector(reg, deferredQueued); err != nil {
		return nil, err
	}
	if taskPanicTotal, err = registerCollector(reg, taskPanicTotal); err != nil {
		return nil, err
	}
	if scheduleRejects, err = registerCollector(reg, scheduleRejects); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		poolRunning:     poolRunning,
		poolPending:     poolPending,
		utilizationPct:  utilizationPct,
		tasksQueued:     tasksQueued,
		deferredQueued:  deferredQueued,
		taskPanicTotal:  taskPanicTotal,
		scheduleRejects: scheduleRejects,
	}, nil
}

func (m *MetricsExporter) RecordPoolSize(running, pending int) {
	if m == nil {
		return
	}
	m.poolRunning.Set(float64(running))
	m.poolPending.Set(float64(pending))
}

func (m *MetricsExporter) RecordUtilization(pct float64) {
	if m == nil {
		return
	}
	m.utilizationPct.Set(pct)
}

func (m *MetricsExporter) RecordTaskPanic(panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanicTotal.Inc()
}

func (m *MetricsExporter) RecordScheduleRejected(reason string) {
	if m == nil {
		return
	}
	m.scheduleRejects.WithLabelValues(normalizeLabel(reason, "unknown")).Inc()
}

func (m *MetricsExporter) RecordQueueDepth(tasksQueued, deferredTasksQueued int) {
	if m == nil {
		return
	}
	m.tasksQueued.Set(float64(tasksQueued))
	m.deferredQueued.Set(float64(deferredTasksQueued))
}

func normalizeLabel(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}

package executor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a point-in-time view of a [QueueExecutor].
type Stats struct {
	Name           string
	MaxConcurrency int
	Pending        int    // Items waiting in the queue.
	Workers        int    // Worker goroutines holding a slot.
	Running        int    // Actions currently running.
	Processed      uint64 // Actions that have returned, including failures.
	Failed         uint64
}

// Stats returns the current [Stats].
// Fields are read independently, so they may not be mutually consistent under load.
func (e *QueueExecutor[T]) Stats() Stats {
	return Stats{
		Name:           e.name,
		MaxConcurrency: e.sem.Size(),
		Pending:        e.queue.Len(),
		Workers:        int(e.workers.Load()),
		Running:        int(e.running.Load()),
		Processed:      e.processed.Load(),
		Failed:         e.failed.Load(),
	}
}

// StatsSource is anything that reports [Stats], such as a [QueueExecutor] of any item type.
type StatsSource interface {
	Stats() Stats
}

var _ prometheus.Collector = (*Collector)(nil)

// Collector exports [Stats] as Prometheus metrics.
type Collector struct {
	source    StatsSource
	pending   *prometheus.Desc
	running   *prometheus.Desc
	processed *prometheus.Desc
	failed    *prometheus.Desc
}

// NewCollector creates a [Collector] for source.
// Metrics are labeled with the source's name.
func NewCollector(source StatsSource) *Collector {
	labels := prometheus.Labels{"executor": source.Stats().Name}
	return &Collector{
		source:    source,
		pending:   prometheus.NewDesc("concur_executor_pending", "Number of items waiting to be processed.", nil, labels),
		running:   prometheus.NewDesc("concur_executor_running", "Number of actions currently running.", nil, labels),
		processed: prometheus.NewDesc("concur_executor_processed_total", "Number of actions that have returned.", nil, labels),
		failed:    prometheus.NewDesc("concur_executor_failed_total", "Number of actions that have failed.", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pending
	ch <- c.running
	ch <- c.processed
	ch <- c.failed
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(stats.Pending))
	ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, float64(stats.Running))
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(stats.Processed))
	ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(stats.Failed))
}

// Package gcmetrics exposes a collector façade's statistics as Prometheus
// metrics, the instrumentation half of this module's ambient stack (the
// spec's core contract has no concept of metrics, but every other
// long-running Go service in this toolkit's lineage exposes one).
package gcmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmeggitt/gc-api/internal/heapcore"
)

// StatsSource is implemented by any collector façade (marksweep.Heap,
// markcompact.Heap) that can report its current heapcore.Stats.
type StatsSource interface {
	Stats() heapcore.Stats
}

// Collector adapts a StatsSource to prometheus.Collector, polling the
// heap's stats on every scrape rather than pushing updates, mirroring how
// Prometheus client libraries typically wrap an in-process counter store.
type Collector struct {
	source StatsSource

	sysBytes        *prometheus.Desc
	heapInuseBytes  *prometheus.Desc
	heapIdleBytes   *prometheus.Desc
	totalAllocBytes *prometheus.Desc
	mallocsTotal    *prometheus.Desc
	freesTotal      *prometheus.Desc
	handleChunks    *prometheus.Desc
}

// NewCollector wraps source for registration with a prometheus.Registry.
// namespace is prefixed to every metric name, e.g. "marksweep" or
// "markcompact", so both collector kinds can be registered side by side.
func NewCollector(namespace string, source StatsSource) *Collector {
	label := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "heap", name), help, nil, nil)
	}

	return &Collector{
		source:          source,
		sysBytes:        label("sys_bytes", "Total size of the reserved heap region."),
		heapInuseBytes:  label("inuse_bytes", "Bytes currently occupied by live objects."),
		heapIdleBytes:   label("idle_bytes", "Bytes currently free for allocation."),
		totalAllocBytes: label("alloc_bytes_total", "Cumulative bytes ever allocated."),
		mallocsTotal:    label("mallocs_total", "Cumulative count of allocations performed."),
		freesTotal:      label("frees_total", "Cumulative count of objects reclaimed by a sweep."),
		handleChunks:    label("handle_chunks", "Number of handle-table chunks currently allocated."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sysBytes
	ch <- c.heapInuseBytes
	ch <- c.heapIdleBytes
	ch <- c.totalAllocBytes
	ch <- c.mallocsTotal
	ch <- c.freesTotal
	ch <- c.handleChunks
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.sysBytes, prometheus.GaugeValue, float64(stats.Sys))
	ch <- prometheus.MustNewConstMetric(c.heapInuseBytes, prometheus.GaugeValue, float64(stats.HeapInuse))
	ch <- prometheus.MustNewConstMetric(c.heapIdleBytes, prometheus.GaugeValue, float64(stats.HeapIdle))
	ch <- prometheus.MustNewConstMetric(c.totalAllocBytes, prometheus.CounterValue, float64(stats.TotalAlloc))
	ch <- prometheus.MustNewConstMetric(c.mallocsTotal, prometheus.CounterValue, float64(stats.Mallocs))
	ch <- prometheus.MustNewConstMetric(c.freesTotal, prometheus.CounterValue, float64(stats.Frees))
	ch <- prometheus.MustNewConstMetric(c.handleChunks, prometheus.GaugeValue, float64(stats.NumChunks))
}

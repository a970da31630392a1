// Package metrics records mapping statistics as Prometheus metrics.
//
// A Collector is registered as a builder.Observer and counts the records and
// triples produced by each pass. Because conversions are short-lived, metrics
// are exported with WriteTextfile for the node_exporter textfile collector
// rather than served over HTTP.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/mapfgraph/builder"
)

const namespace = "mapfgraph"

// Run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector holds the metrics of one process.
type Collector struct {
	registry *prometheus.Registry

	triplesAdded  *prometheus.CounterVec
	recordsMapped *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
	graphTriples  prometheus.Gauge
	runs          *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		triplesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triples_added_total",
			Help:      "Triples added to the graph, by log section.",
		}, []string{"section"}),
		recordsMapped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_mapped_total",
			Help:      "Log records mapped, by log section.",
		}, []string{"section"}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time spent mapping one log section.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"section"}),
		graphTriples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_triples",
			Help:      "Triples in the last written graph, base ontology included.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Conversion runs, by outcome.",
		}, []string{"outcome"}),
	}

	c.registry.MustRegister(c.triplesAdded, c.recordsMapped, c.passDuration, c.graphTriples, c.runs)
	return c
}

// PassCompleted implements builder.Observer.
func (c *Collector) PassCompleted(stats builder.PassStats) {
	c.triplesAdded.WithLabelValues(stats.Section).Add(float64(stats.Triples))
	c.recordsMapped.WithLabelValues(stats.Section).Add(float64(stats.Records))
	c.passDuration.WithLabelValues(stats.Section).Observe(stats.Duration.Seconds())
}

// RunFinished records the outcome of a run and, on success, the size of the
// written graph.
func (c *Collector) RunFinished(err error, graphTriples int) {
	if err != nil {
		c.runs.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	c.runs.WithLabelValues(OutcomeSuccess).Inc()
	c.graphTriples.Set(float64(graphTriples))
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

var _ builder.Observer = (*Collector)(nil)

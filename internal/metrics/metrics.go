// Package metrics collects per-run lookup statistics in Prometheus form.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Verdict label values.
const (
	VerdictBad  = "bad"
	VerdictGood = "good"
)

// Default lookup duration buckets, in seconds. Lookups are in-memory and
// finish in well under a millisecond.
var DefaultBuckets = prometheus.ExponentialBuckets(1e-7, 10, 7)

var _ prometheus.Collector = &Metrics{}

type Metrics struct {
	queries  *prometheus.CounterVec
	duration prometheus.Histogram
	entries  *prometheus.GaugeVec
}

func New(namespace, subsystem string, constLabels map[string]string, buckets ...float64) *Metrics {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "queries_total",
			Help:        "total number of queries checked",
			ConstLabels: constLabels,
		},
			[]string{"verdict"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "lookup_duration_seconds",
			Help:        "duration of a single blocklist lookup",
			ConstLabels: constLabels,
			Buckets:     buckets,
		}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "blocklist_entries",
			Help:        "number of blocklist entries loaded and retained after collapsing subdomains",
			ConstLabels: constLabels,
		},
			[]string{"state"},
		),
	}
	// Both verdicts are always exported, even when zero.
	m.queries.WithLabelValues(VerdictBad)
	m.queries.WithLabelValues(VerdictGood)
	return m
}

// ObserveQuery records one lookup. Safe for concurrent use.
func (m *Metrics) ObserveQuery(forbidden bool, duration time.Duration) {
	verdict := VerdictGood
	if forbidden {
		verdict = VerdictBad
	}
	m.queries.WithLabelValues(verdict).Inc()
	m.duration.Observe(duration.Seconds())
}

// SetEntries records the blocklist size before and after collapsing.
func (m *Metrics) SetEntries(loaded, retained int) {
	m.entries.WithLabelValues("loaded").Set(float64(loaded))
	m.entries.WithLabelValues("retained").Set(float64(retained))
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.queries.Describe(ch)
	m.duration.Describe(ch)
	m.entries.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.queries.Collect(ch)
	m.duration.Collect(ch)
	m.entries.Collect(ch)
}

// WriteTextfile writes the collected metrics to path in the text exposition
// format, for pickup by the node exporter's textfile collector.
func WriteTextfile(path string, m *Metrics) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(m); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics file %q: %w", path, err)
	}
	return nil
}

package shortestpath

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeParallel   = "parallel"
	modeSequential = "sequential"
)

// Metrics collects prometheus metrics for shortest path calculations. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	traversals      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	rounds          prometheus.Histogram
	frontierWidth   prometheus.Histogram
	edgesScanned    prometheus.Counter
	verticesReached prometheus.Counter
}

// NewMetrics creates the calculator metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		traversals: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopsearch_traversals_total",
				Help: "Total number of shortest path calculations.",
			},
			[]string{"mode", "result"}, // result: success, error
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hopsearch_traversal_duration_seconds",
				Help:    "Duration of the traversal phase of shortest path calculations.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"mode"},
		),
		rounds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hopsearch_traversal_rounds",
				Help:    "Number of rounds executed by a calculation.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		frontierWidth: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hopsearch_frontier_width",
				Help:    "Number of vertices discovered by a single round.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
		),
		edgesScanned: f.NewCounter(
			prometheus.CounterOpts{
				Name: "hopsearch_edges_scanned_total",
				Help: "Total number of out-edges examined by parallel calculations.",
			},
		),
		verticesReached: f.NewCounter(
			prometheus.CounterOpts{
				Name: "hopsearch_vertices_reached_total",
				Help: "Total number of vertices reached by successful calculations.",
			},
		),
	}
}

func (m *Metrics) observeRound(frontierLen, edgesScanned int) {
	if m == nil {
		return
	}

	// The last round of every traversal discovers nothing.
	if frontierLen > 0 {
		m.frontierWidth.Observe(float64(frontierLen))
	}
	m.edgesScanned.Add(float64(edgesScanned))
}

func (m *Metrics) observeTraversal(mode string, stats Stats, err error) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}
	m.traversals.WithLabelValues(mode, result).Inc()

	if err != nil {
		return
	}

	m.duration.WithLabelValues(mode).Observe(stats.Elapsed.Seconds())
	m.verticesReached.Add(float64(stats.Reached))
	if mode == modeParallel {
		m.rounds.Observe(float64(stats.Rounds))
	}
}

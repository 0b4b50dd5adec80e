package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Route query outcomes, used as the status label on RouteMetrics.
const (
	StatusFound     = "found"
	StatusNoRoute   = "no_route"
	StatusInvalid   = "invalid"
	StatusCancelled = "cancelled"
)

// RouteMetrics collects prometheus metrics for route queries. A nil
// *RouteMetrics is a valid no-op observer.
type RouteMetrics struct {
	queryCount      *prometheus.CounterVec
	durationSummary prometheus.Summary
	expandedHist    prometheus.Histogram
}

func NewRouteMetrics(reg prometheus.Registerer) *RouteMetrics {
	m := &RouteMetrics{
		queryCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bearmaps",
			Name:      "route_query_count",
			Help:      "The total number of route queries by outcome",
		}, []string{"status"}),
		durationSummary: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace:  "bearmaps",
			Name:       "route_query_duration_summary_seconds",
			Help:       "The duration of route queries",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		expandedHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bearmaps",
			Name:      "route_query_expanded_vertices",
			Help:      "The number of vertices settled per route query",
			Buckets:   []float64{64, 256, 1024, 4096, 16384, 65536, 262144},
		}),
	}
	reg.MustRegister(m.queryCount, m.durationSummary, m.expandedHist)
	return m
}

func (m *RouteMetrics) ObserveQuery(status string, seconds float64, expanded int) {
	if m == nil {
		return
	}
	m.queryCount.WithLabelValues(status).Inc()
	m.durationSummary.Observe(seconds)
	m.expandedHist.Observe(float64(expanded))
}

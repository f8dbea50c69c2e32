package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for place insights.
type Metrics struct {
	ResolveOutcomes *prometheus.CounterVec // labels: outcome={found,not_found,invalid,provider_error}
	Observations    *prometheus.CounterVec // labels: polarity={positive,negative}

	// External factors provider metrics.
	ProviderRequests    *prometheus.CounterVec   // labels: endpoint={factors,trend}, outcome={success,not_found,error}
	ProviderAPIDuration *prometheus.HistogramVec // labels: endpoint={factors,trend}
	ProviderCache       *prometheus.CounterVec   // labels: result={hit,miss}

	// Conversation metrics.
	Replies *prometheus.CounterVec // labels: outcome={delivered,cancelled}

	ReportsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ResolveOutcomes,
		m.Observations,
		m.ProviderRequests,
		m.ProviderAPIDuration,
		m.ProviderCache,
		m.Replies,
		m.ReportsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ResolveOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "resolve_total",
			Help:      "Place resolutions by outcome.",
		}, []string{"outcome"}),
		Observations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "observations_total",
			Help:      "Observations produced by the rule engine, by polarity.",
		}, []string{"polarity"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "provider_requests_total",
			Help:      "External factors provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "place_insights",
			Name:      "provider_api_duration_seconds",
			Help:      "External factors provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		ProviderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "provider_cache_total",
			Help:      "Resolved-record cache lookups by result.",
		}, []string{"result"}),
		Replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "replies_total",
			Help:      "Scheduled assistant replies by outcome.",
		}, []string{"outcome"}),
		ReportsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_insights",
			Name:      "reports_published_total",
			Help:      "Insight report events published to Kafka, by outcome.",
		}, []string{"outcome"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the analysis pipeline.
type Metrics struct {
	Analyses         prometheus.Counter
	AnalysisDuration prometheus.Histogram
	FeedOutcomes     *prometheus.CounterVec // labels: feed, status
	GeocodeOutcomes  *prometheus.CounterVec // labels: outcome={passthrough,geocoded,fallback}
	LLMCalls         *prometheus.CounterVec // labels: call={infer,chat}, outcome={success,error}
	ChatLookups      *prometheus.CounterVec // labels: result={hit,miss}
	CachedCities     prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "citybrain",
			Name:      "analyses_total",
			Help:      "Completed city analyses.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "citybrain",
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one full analysis pipeline run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40},
		}),
		FeedOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citybrain",
			Name:      "gov_feed_outcomes_total",
			Help:      "Government feed results by feed and status.",
		}, []string{"feed", "status"}),
		GeocodeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citybrain",
			Name:      "marker_resolutions_total",
			Help:      "Marker coordinate resolutions by outcome.",
		}, []string{"outcome"}),
		LLMCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citybrain",
			Name:      "llm_calls_total",
			Help:      "LLM calls by purpose and outcome.",
		}, []string{"call", "outcome"}),
		ChatLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citybrain",
			Name:      "chat_cache_lookups_total",
			Help:      "Chat cache lookups by result.",
		}, []string{"result"}),
		CachedCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "citybrain",
			Name:      "cached_cities",
			Help:      "Number of cities with a cached analysis.",
		}),
	}
}

// NewMetrics creates the collectors and registers them with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Analyses,
		m.AnalysisDuration,
		m.FeedOutcomes,
		m.GeocodeOutcomes,
		m.LLMCalls,
		m.ChatLookups,
		m.CachedCities,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// Outcome maps an error to the success/error label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

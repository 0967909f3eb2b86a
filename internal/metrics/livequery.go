package metrics

import "github.com/prometheus/client_golang/prometheus"

// Live query Prometheus metrics.
var (
	LiveQuerySignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclist",
			Name:      "livequery_signals_total",
			Help:      "Total number of change feed signals received",
		},
		[]string{"kind"}, // "initial" / "changed"
	)

	LiveQueryCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "doclist",
			Name:      "livequery_cycles_total",
			Help:      "Total number of fetch-and-resolve cycles by outcome",
		},
		[]string{"outcome"}, // "emitted" / "abandoned" / "query_error" / "draft_error"
	)

	LiveQueryCycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "doclist",
			Name:      "livequery_cycle_duration_seconds",
			Help:      "Fetch-and-resolve duration in seconds, excluding the settle interval",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	LiveQueryActiveSubscriptions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "doclist",
			Name:      "livequery_active_subscriptions",
			Help:      "Number of open live query subscriptions",
		},
	)

	LiveQueryFeedFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "doclist",
			Name:      "livequery_feed_failures_total",
			Help:      "Total number of subscriptions terminated by a change feed failure",
		},
	)
)

// Cycle outcomes.
const (
	OutcomeEmitted    = "emitted"
	OutcomeAbandoned  = "abandoned"
	OutcomeQueryError = "query_error"
	OutcomeDraftError = "draft_error"
)

var liveQueryMetricsRegistered bool

// RegisterLiveQueryMetrics registers Prometheus live query metrics. Must be called once from main.
func RegisterLiveQueryMetrics() {
	if liveQueryMetricsRegistered {
		return
	}
	prometheus.MustRegister(LiveQuerySignalsTotal)
	prometheus.MustRegister(LiveQueryCyclesTotal)
	prometheus.MustRegister(LiveQueryCycleDuration)
	prometheus.MustRegister(LiveQueryActiveSubscriptions)
	prometheus.MustRegister(LiveQueryFeedFailuresTotal)
	liveQueryMetricsRegistered = true
}

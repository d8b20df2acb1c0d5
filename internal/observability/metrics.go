package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_remote_fetch_total",
			Help: "Remote settings/catalog fetches by resource and outcome.",
		},
		[]string{"resource", "outcome"},
	)

	remoteFetchSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_remote_fetch_seconds",
			Help:    "Latency of remote settings/catalog fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	fallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_fallback_total",
			Help: "Configuration resources served from local defaults after a failed fetch.",
		},
		[]string{"kind"},
	)

	staleDiscardTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_stale_discard_total",
			Help: "Fetch results discarded because their view was already closed.",
		},
		[]string{"view"},
	)

	activeViews = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_active_views",
			Help: "Views currently mounted.",
		},
		[]string{"view"},
	)
)

// ObserveFetch records the outcome and latency of a single remote fetch.
func ObserveFetch(resource, outcome string, elapsed time.Duration) {
	remoteFetchTotal.WithLabelValues(resource, outcome).Inc()
	remoteFetchSeconds.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// CountFallback records that a configuration kind was served from defaults.
func CountFallback(kind string) {
	fallbackTotal.WithLabelValues(kind).Inc()
}

// CountStaleDiscard records a late result dropped for a closed view.
func CountStaleDiscard(view string) {
	staleDiscardTotal.WithLabelValues(view).Inc()
}

// ViewMounted increments the active view gauge.
func ViewMounted(view string) {
	activeViews.WithLabelValues(view).Inc()
}

// ViewClosed decrements the active view gauge.
func ViewClosed(view string) {
	activeViews.WithLabelValues(view).Dec()
}

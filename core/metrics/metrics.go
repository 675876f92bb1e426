// Package metrics defines the Prometheus collectors shared by the sync engine,
// the FIO gateway and the exchange price job.
//
// Collectors register on the default registry through promauto and are scraped
// from GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookupsTotal counts cache reads by namespace and result (hit, miss).
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prunderground_cache_lookups_total",
			Help: "Total number of cache lookups",
		},
		[]string{"namespace", "result"},
	)

	// UpstreamRequestsTotal counts FIO requests by endpoint and outcome kind.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prunderground_upstream_requests_total",
			Help: "Total number of FIO API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration tracks FIO request latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prunderground_upstream_request_duration_seconds",
			Help:    "Duration of FIO API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// UpstreamBreakerState reports the circuit breaker state (0 closed, 1 half-open, 2 open).
	UpstreamBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "prunderground_upstream_breaker_state",
			Help: "FIO circuit breaker state",
		},
	)

	// UserSyncsTotal counts user inventory syncs by result (synced, fresh, failed, unconfigured).
	UserSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prunderground_user_syncs_total",
			Help: "Total number of user inventory syncs",
		},
		[]string{"result"},
	)

	// PriceSyncsTotal counts exchange price sync runs by result.
	PriceSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prunderground_price_syncs_total",
			Help: "Total number of exchange price sync runs",
		},
		[]string{"result"},
	)

	// PriceSyncDuration tracks the duration of exchange price sync runs.
	PriceSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prunderground_price_sync_duration_seconds",
			Help:    "Duration of exchange price sync runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PriceRowsTotal counts exchange rows by action (inserted, updated, skipped).
	PriceRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prunderground_price_rows_total",
			Help: "Total number of exchange rows processed",
		},
		[]string{"action"},
	)
)

// RecordCacheLookup records a cache hit or miss for a namespace.
func RecordCacheLookup(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(namespace, result).Inc()
}

// RecordUpstreamRequest records the outcome and latency of a FIO request.
func RecordUpstreamRequest(endpoint, outcome string, d time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordUserSync records the result of a user sync.
func RecordUserSync(result string) {
	UserSyncsTotal.WithLabelValues(result).Inc()
}

// RecordPriceSync records a completed price sync run.
func RecordPriceSync(success bool, inserted, updated, skipped int, d time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	PriceSyncsTotal.WithLabelValues(result).Inc()
	PriceSyncDuration.Observe(d.Seconds())
	if success {
		PriceRowsTotal.WithLabelValues("inserted").Add(float64(inserted))
		PriceRowsTotal.WithLabelValues("updated").Add(float64(updated))
	}
	PriceRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

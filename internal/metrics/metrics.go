// Package metrics defines the Prometheus collectors exported by the
// collection-schedule core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OutgoingLatency tracks the duration of outbound HTTP requests,
	// labeled by URL (scheme+host+path, no query), method and status.
	OutgoingLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecotri_outgoing_request_duration_seconds",
			Help:    "Duration of outgoing HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"url", "method", "status"},
	)

	// OpenDataAPIStatus reports whether the upstream open-data API
	// answered the last connectivity probe (0 = down, 1 = up).
	OpenDataAPIStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ecotri_opendata_api_status",
			Help: "Status of the open-data collection API (0 = not working, 1 = working)",
		},
		[]string{"base_url"},
	)
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotri_cache_hits_total",
			Help: "Number of cache reads answered from a valid entry",
		},
		[]string{"store"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotri_cache_misses_total",
			Help: "Number of cache reads that found no valid entry",
		},
		[]string{"store"},
	)
)

var (
	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotri_fetch_retries_total",
			Help: "Number of retried fetch attempts, by failure kind",
		},
		[]string{"reason"},
	)

	// DroppedRecords counts raw records discarded during normalization.
	// Callers are not told about drops; this counter is the only trace.
	DroppedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecotri_normalize_dropped_records_total",
			Help: "Number of raw schedule records dropped during normalization, by reason",
		},
		[]string{"reason"},
	)
)

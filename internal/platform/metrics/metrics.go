// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cpa"

// Rate provider call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeUnreachable = "unreachable"
)

// Cache lookup kinds and results.
const (
	CacheKindList = "list"
	CacheKindRate = "rate"
	CacheHit      = "hit"
	CacheMiss     = "miss"
)

var (
	RateProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_provider_requests_total",
		Help:      "Quote provider calls by outcome.",
	}, []string{"outcome"})

	RateProviderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rate_provider_request_duration_seconds",
		Help:      "Latency of quote provider calls.",
		Buckets:   prometheus.DefBuckets,
	})

	RateCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_cache_lookups_total",
		Help:      "Currency cache lookups by kind and result.",
	}, []string{"kind", "result"})

	Purchases = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Recorded currency purchases.",
	}, []string{"currency_code"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// CacheLookup records a cache hit or miss for kind.
func CacheLookup(kind string, hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	RateCacheLookups.WithLabelValues(kind, result).Inc()
}

// Package metrics declares the prometheus collectors shared across the
// service. Collectors register themselves via promauto at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TMDBRequestsTotal counts provider calls by endpoint and outcome.
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total TMDB API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// TMDBRequestDuration observes provider call latency by endpoint.
	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "TMDB API request latency by endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// MovieCacheTotal counts resolver outcomes: hit, miss, race.
	MovieCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_cache_total",
			Help: "Catalog resolver cache outcomes",
		},
		[]string{"outcome"},
	)
)

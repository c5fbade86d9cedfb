// Package metrics exposes the Prometheus collectors for access checks and
// release sweeps.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entitlement lookup sources.
const (
	SourceCache = "cache"
	SourceStore = "store"
	SourceError = "error"
)

// Release outcomes.
const (
	OutcomeReleased = "released"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

var (
	AccessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_access_decisions_total",
			Help: "Access decisions by decision code",
		},
		[]string{"code"},
	)

	EntitlementLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_entitlement_lookups_total",
			Help: "Subscription resolutions by where the answer came from",
		},
		[]string{"source"},
	)

	EntitlementResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_entitlement_resolve_duration_seconds",
			Help:    "Time spent resolving a viewer's subscription",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	Releases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_releases_total",
			Help: "Premium items processed by release sweeps, by outcome",
		},
		[]string{"outcome"},
	)

	ReleaseSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "folio_release_sweep_duration_seconds",
			Help: "Duration of a full release sweep",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "folio_http_request_duration_seconds",
			Help: "HTTP request latency by route",
		},
		[]string{"method", "route"},
	)
)

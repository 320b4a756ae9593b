package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayDecisionsTotal counts metered-feature requests by outcome
	// (granted, denied, check_failed).
	GatewayDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jokemeter",
		Subsystem: "gateway",
		Name:      "decisions_total",
		Help:      "Metered feature requests by gateway outcome.",
	}, []string{"outcome"})

	// TrackFailuresTotal counts consumption records the provider did not accept.
	TrackFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jokemeter",
		Subsystem: "gateway",
		Name:      "track_failures_total",
		Help:      "Usage track calls that failed after the action was granted.",
	})

	// TopupCheckoutsTotal counts top-up checkout attempts by outcome.
	TopupCheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jokemeter",
		Subsystem: "topup",
		Name:      "checkouts_total",
		Help:      "Top-up checkout requests by outcome.",
	}, []string{"outcome"})

	// ProviderRequestDuration tracks billing provider latency per operation and
	// HTTP status ("error" when no response arrived).
	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jokemeter",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Billing provider request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

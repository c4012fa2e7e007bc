package stub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wavefeed",
		Subsystem: "stub",
		Name:      "requests_total",
		Help:      "Total API requests served, by route and status.",
	}, []string{"route", "status"})

	requestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wavefeed",
		Subsystem: "stub",
		Name:      "request_duration_seconds",
		Help:      "API request duration in seconds, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	activitiesServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wavefeed",
		Subsystem: "stub",
		Name:      "activities_served_total",
		Help:      "Total activity records returned across all pages.",
	})

	fixturesReloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wavefeed",
		Subsystem: "stub",
		Name:      "fixtures_reloads_total",
		Help:      "Times the fixtures file was reloaded from disk.",
	})
)

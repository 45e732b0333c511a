// Package metrics holds the Prometheus collectors for the contact pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeInvalid        = "invalid"
	OutcomeDispatchFailed = "dispatch_failed"
)

// Lookup names
const (
	LookupGeolocation = "geolocation"
	LookupReputation  = "reputation"
)

// Metrics groups the collectors so tests can use a private registry.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	DegradedLookups  *prometheus.CounterVec
	DispatchDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
		DegradedLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "degraded_lookups_total",
			Help:      "IP lookups that failed and were replaced by the degraded record.",
		}, []string{"lookup"}),
		DispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent delivering the notification to Telegram.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Submissions, m.DegradedLookups, m.DispatchDuration)
	return m
}

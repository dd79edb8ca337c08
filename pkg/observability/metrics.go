/*
Package observability provides Prometheus metrics for the submission
pipeline. The HTTP adapter serves them on /metrics; the session manager
records them as submissions flow through.
*/
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline instruments. A nil *Metrics is valid and
// records nothing, so callers never need to guard their calls.
type Metrics struct {
	submissions      *prometheus.CounterVec
	deliveryDuration prometheus.Histogram
	sessionsStarted  prometheus.Counter
	inFlight         prometheus.Gauge
}

// NewMetrics registers the pipeline instruments on the given registerer.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsvp_submissions_total",
				Help: "Total submission attempts by outcome",
			},
			[]string{"outcome"},
		),
		deliveryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rsvp_delivery_duration_seconds",
				Help:    "Duration of message delivery calls",
				Buckets: prometheus.DefBuckets,
			},
		),
		sessionsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rsvp_sessions_started_total",
				Help: "Total sessions started",
			},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rsvp_submissions_in_flight",
				Help: "Submissions currently awaiting delivery",
			},
		),
	}
}

// SessionStarted records a new session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// SubmissionStarted marks a submission as in flight.
func (m *Metrics) SubmissionStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

// SubmissionFinished records the terminal outcome of an in-flight
// submission: "delivered" or "failed".
func (m *Metrics) SubmissionFinished(outcome string) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.submissions.WithLabelValues(outcome).Inc()
}

// SubmissionRejected records a submission that failed validation before
// any delivery was attempted.
func (m *Metrics) SubmissionRejected() {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues("invalid").Inc()
}

// DeliveryObserved records how long one delivery call took.
func (m *Metrics) DeliveryObserved(d time.Duration) {
	if m == nil {
		return
	}
	m.deliveryDuration.Observe(d.Seconds())
}

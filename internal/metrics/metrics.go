package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished HTTP requests by route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asociacion_http_requests_total",
		Help: "Finished HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency per route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asociacion_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ApplicationTransitions counts lifecycle transitions by target status.
	ApplicationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asociacion_application_transitions_total",
		Help: "Membership application status transitions.",
	}, []string{"to_status"})

	// EnrollmentOutcomes counts enrollment attempts by outcome.
	EnrollmentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asociacion_enrollment_outcomes_total",
		Help: "Enrollment attempts by outcome (accepted, closed, full, duplicate, not_found).",
	}, []string{"outcome"})
)

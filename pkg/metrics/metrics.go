package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes
const (
	OutcomeSucceeded     = "succeeded"
	OutcomeValidation    = "validation_failed"
	OutcomeConfiguration = "configuration_failed"
	OutcomeDelivery      = "delivery_failed"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by terminal pipeline outcome",
		},
		[]string{"outcome"},
	)

	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_emails_total",
			Help: "Outbound emails by kind and result",
		},
		[]string{"kind", "result"}, // operator|acknowledgment , sent|failed
	)

	DispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_email_dispatch_seconds",
			Help:    "Time spent handing one email to the transport",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"kind"},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		SubmissionsTotal,
		EmailsTotal,
		DispatchDuration,
		RateLimitedTotal,
	)
}

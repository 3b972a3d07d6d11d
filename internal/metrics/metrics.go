// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Submissions counts submission attempts by outcome: scored, rejected, failed.
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exam_submissions_total",
		Help: "Exam submissions by outcome.",
	}, []string{"outcome"})

	SubmissionScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "exam_submission_score_ratio",
		Help:    "Score divided by max score of scored submissions.",
		Buckets: prometheus.LinearBuckets(-0.5, 0.1, 16),
	})

	ResultAppendRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exam_result_append_conflicts_total",
		Help: "Result history writes that lost an optimistic race and were retried.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_login_attempts_total",
		Help: "Admin login attempts by outcome.",
	}, []string{"outcome"})
)

// Submission outcomes.
const (
	OutcomeScored   = "scored"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabquiz_http_requests_total",
		Help: "The total number of HTTP requests served",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vocabquiz_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	PanicsRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocabquiz_http_panics_recovered_total",
		Help: "Handler panics caught by the recovery middleware",
	})

	// Auth metrics
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabquiz_registrations_total",
		Help: "Registration attempts by result",
	}, []string{"result"})
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabquiz_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})
	ActiveSessionsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocabquiz_sessions_expired_total",
		Help: "The total number of expired sessions removed by the cleanup loop",
	})

	// Score metrics
	ScoreSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vocabquiz_score_submissions_total",
		Help: "Score submissions by outcome (recorded or kept)",
	}, []string{"outcome"})
)

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"

	OutcomeRecorded = "recorded"
	OutcomeKept     = "kept"
)

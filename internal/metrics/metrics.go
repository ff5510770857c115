package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Fee ledger

	FeePaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_month_payments_total",
			Help: "Months marked paid, by fee category.",
		},
		[]string{"category"},
	)

	FeeRepricesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_reprices_total",
			Help: "Fan-out price updates, by fee category.",
		},
		[]string{"category"},
	)

	FeeRepricedHouseholds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_repriced_households_total",
			Help: "Households whose monthly due was rewritten by a price update.",
		},
		[]string{"category"},
	)

	UtilityUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_utility_updates_total",
			Help: "Utility period upserts.",
		},
	)

	// Auth

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by result (success, failure, cached).",
		},
		[]string{"result"},
	)
)

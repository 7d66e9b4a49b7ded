package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	purchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eghl_purchases_total",
		Help: "Finished purchase runs by outcome status or error kind",
	}, []string{"result"})

	stepLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eghl_gateway_step_duration_seconds",
		Help:    "Gateway round-trip latency per step",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"step"})

	verificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eghl_hash_verification_failures_total",
		Help: "Final gateway responses rejected by hash verification",
	})

	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eghl_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})
)

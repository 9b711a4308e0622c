package model

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_model_requests_total",
		Help: "Completion requests by task and outcome",
	}, []string{"task", "status"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_model_request_duration_seconds",
		Help:    "Completion request latency by task",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"task"})

	tokensUsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_model_tokens_total",
		Help: "Token usage by task and direction",
	}, []string{"task", "direction"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_model_retries_total",
		Help: "Retry attempts by task",
	}, []string{"task"})
)

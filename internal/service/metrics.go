package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	endpointPredict = "predict"
	endpointChat    = "chat"
	endpointReport  = "report"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "loanportal_upstream_requests_total",
	Help: "Calls made to the prediction/chat backend",
}, []string{"endpoint", "outcome"})

var upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "loanportal_upstream_request_seconds",
	Help:    "Latency of calls made to the prediction/chat backend",
	Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
}, []string{"endpoint"})

// observe records one upstream call
func observe(endpoint string, start time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

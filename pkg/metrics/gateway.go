package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// GatewayMetrics records calls made against the remote catalog API.
type GatewayMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewGatewayMetrics registers the gateway metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalogapi_request_duration_seconds",
		Help:    "Duration of catalog API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "op"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogapi_requests_total",
		Help: "Catalog API requests by outcome.",
	}, []string{"resource", "op", "outcome"})
	reg.MustRegister(duration, requests)
	return &GatewayMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one finished request.
func (g *GatewayMetrics) Observe(resource, op string, elapsed time.Duration, err error) {
	if g == nil || g.duration == nil {
		return
	}
	resource = normalizeLabel(resource)
	op = normalizeLabel(op)
	g.duration.WithLabelValues(resource, op).Observe(elapsed.Seconds())
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	g.requests.WithLabelValues(resource, op, outcome).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

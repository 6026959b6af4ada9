// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "grc"

var (
	// Registry is served by the /metrics endpoint. It carries the Go runtime
	// and process collectors in addition to the application metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the rate limiter.",
	})

	IntegrationDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "integration_deliveries_total",
		Help:      "Notification deliveries by integration and result.",
	}, []string{"integration", "result"})

	AlertsRaised = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compliance_alerts_raised_total",
		Help:      "Compliance alerts raised from regulatory changes.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		RateLimited,
		IntegrationDeliveries,
		AlertsRaised,
	)
}

// DeliveryResult returns the label value for a delivery outcome.
func DeliveryResult(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

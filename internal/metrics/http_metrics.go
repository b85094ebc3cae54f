package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP request metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
)

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(endpoint, method string, status int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(endpoint, method).Observe(durationSeconds)
}

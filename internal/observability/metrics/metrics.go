package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rosterhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	employeeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_employee_operations_total",
		Help: "Count of employee roster operations by operation and result",
	}, []string{"operation", "result"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_login_attempts_total",
		Help: "Count of login attempts by outcome",
	}, []string{"outcome"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rosterhub_cache_lookups_total",
		Help: "Count of roster cache lookups by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveEmployeeOp increments the employee operation counter.
func ObserveEmployeeOp(operation, result string) {
	employeeOperations.WithLabelValues(operation, result).Inc()
}

// ObserveLogin increments the login attempt counter for the given outcome.
func ObserveLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// ObserveCacheLookup records a cache hit or miss.
func ObserveCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

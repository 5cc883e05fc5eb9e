package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_http_requests_total",
		Help: "The total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_http_request_duration_seconds",
		Help:    "The HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	DatabaseOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_database_operations_total",
		Help: "The total number of database operations",
	}, []string{"operation", "status"})

	DatabaseOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_database_operation_duration_seconds",
		Help:    "The database operation duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// UpstreamRequestsTotal counts calls to the upstream reporting service
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_upstream_requests_total",
		Help: "The total number of upstream report requests",
	}, []string{"endpoint", "status"})

	// ProxyCacheTotal counts proxy cache lookups by result (hit, miss, error)
	ProxyCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_proxy_cache_total",
		Help: "The total number of proxy cache lookups",
	}, []string{"result"})

	// RateLimitedTotal counts requests rejected by a rate policy
	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_rate_limited_total",
		Help: "The total number of requests rejected by rate limiting",
	}, []string{"policy"})
)

// ObserveDB records the outcome and latency of one database operation
func ObserveDB(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DatabaseOperationsTotal.WithLabelValues(operation, status).Inc()
	DatabaseOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

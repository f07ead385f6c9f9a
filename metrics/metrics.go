package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store and HTTP metrics, registered with the default registry on import.
var (
	// StoreOperationDuration measures each Store call, labeled by method
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filecabinet_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method"},
	)

	// StoreOperations counts Store calls by method and outcome (ok, error)
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filecabinet_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"method", "outcome"},
	)

	// LiveRecords tracks the live record count after each Stat
	LiveRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filecabinet_live_records",
			Help: "Number of live records in the store",
		},
	)

	// MemoLookups counts filter cache lookups by result (hit, miss)
	MemoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filecabinet_query_memo_lookups_total",
			Help: "Filter result cache lookups",
		},
		[]string{"result"},
	)

	// HTTPRequests counts REST requests by method, path and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filecabinet_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures REST response time
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filecabinet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Outcome labels a finished operation
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

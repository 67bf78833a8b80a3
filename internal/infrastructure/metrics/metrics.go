package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Operation metrics
	OperationsProcessed *prometheus.CounterVec
	OperationErrors     *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	OperationAmount     *prometheus.HistogramVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Oracle metrics
	OracleLookups  *prometheus.CounterVec
	OracleDuration prometheus.Histogram

	// Authentication metrics
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Operation metrics
		OperationsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_operations_processed_total",
				Help: "Total number of processed operations by kind",
			},
			[]string{"kind"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_operation_errors_total",
				Help: "Total number of operation errors by type",
			},
			[]string{"kind", "error_type"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneta_operation_duration_seconds",
				Help:    "Duration of operation processing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneta_operation_amount",
				Help:    "Operation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind", "currency"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "moneta_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneta_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Oracle metrics
		OracleLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_oracle_lookups_total",
				Help: "Total exchange rate oracle lookups by status",
			},
			[]string{"status"},
		),
		OracleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "moneta_oracle_duration_seconds",
			Help:    "Exchange rate oracle request duration",
			Buckets: prometheus.DefBuckets,
		}),

		// Authentication metrics
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneta_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}

package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch counters, incremented by the settlement pipeline.
var (
	DocumentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invsettle_documents_processed_total",
		Help: "Number of invoice documents parsed.",
	})
	ItemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invsettle_items_created_total",
		Help: "Number of line items created.",
	})
	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invsettle_invoices_created_total",
		Help: "Number of settlement invoices created.",
	})
)

// HTTP metrics, observed by the request middleware.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invsettle_http_requests_total",
		Help: "HTTP requests by method, path pattern and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invsettle_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

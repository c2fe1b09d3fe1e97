package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Total number of sales recorded",
	})

	SalesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Total number of sale attempts rejected before any write",
	}, []string{"reason"})

	SalesCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_cancelled_total",
		Help: "Total number of sales soft deleted",
	})

	SalesCompensatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_compensated_total",
		Help: "Total number of stock deductions rolled back after a failed sale write",
	})

	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Total number of manual stock adjustments",
	}, []string{"type"})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	ProductsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "Total number of products deleted",
	})

	RefreshFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_refresh_failures_total",
		Help: "Total number of collection refreshes that reset the cache to empty",
	}, []string{"collection"})

	RefreshLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cache_refresh_latency_seconds",
		Help:    "Latency of collection refreshes against the remote service",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	LowStockProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "low_stock_products_total",
		Help: "Total number of low stock observations by the watcher",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

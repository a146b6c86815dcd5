package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPC metrics
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_rpc_requests_total",
			Help: "Total number of RPC requests by method",
		},
		[]string{"method"},
	)

	RPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_rpc_errors_total",
			Help: "Total number of RPC errors by method and type",
		},
		[]string{"method", "error_type"},
	)

	RPCRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_rpc_retries_total",
			Help: "Total number of RPC retries by method and transient reason",
		},
		[]string{"method", "reason"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockindexor_rpc_request_duration_seconds",
			Help:    "Duration of RPC requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	headerCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_header_cache_lookups_total",
			Help: "Header cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)
)

func RPCMethodInc(method string) {
	RPCRequests.WithLabelValues(method).Inc()
}

func RPCMethodDuration(method string, duration time.Duration) {
	RPCDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func RPCMethodError(method, errorType string) {
	RPCErrors.WithLabelValues(method, errorType).Inc()
}

func RPCRetryInc(method, reason string) {
	RPCRetries.WithLabelValues(method, reason).Inc()
}

func HeaderCacheLookupInc(hit bool) {
	if hit {
		headerCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	headerCacheLookups.WithLabelValues("miss").Inc()
}

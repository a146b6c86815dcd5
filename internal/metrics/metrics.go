package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics
	storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"backend", "operation"},
	)

	storeOpTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockindexor_store_operation_duration_seconds",
			Help:    "Duration of store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_store_errors_total",
			Help: "Total number of store errors",
		},
		[]string{"backend", "error_type"},
	)

	batchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockindexor_store_batch_operations",
			Help:    "Number of operations per committed batch",
			Buckets: []float64{1, 2, 4, 8, 16, 64, 256, 1024},
		},
		[]string{"backend"},
	)

	// Indexing metrics
	SyncHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blockindexor_sync_height",
			Help: "The last block height indexed by an indexer",
		},
		[]string{"indexer"},
	)

	BlocksConnected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_blocks_connected_total",
			Help: "Total number of blocks connected",
		},
		[]string{"indexer"},
	)

	BlocksDisconnected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_blocks_disconnected_total",
			Help: "Total number of blocks disconnected",
		},
		[]string{"indexer"},
	)

	BatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_batch_failures_total",
			Help: "Total number of index batches that failed to commit",
		},
		[]string{"indexer"},
	)

	EventProcessingTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blockindexor_event_processing_duration_seconds",
			Help:    "Time taken to apply a connect or disconnect event",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"indexer", "event"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blockindexor_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blockindexor_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func StoreOpInc(backend string, operation string) {
	storeOps.WithLabelValues(backend, operation).Inc()
}

func StoreOpDuration(backend string, operation string, duration time.Duration) {
	storeOpTime.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

func StoreErrorsInc(backend string, errorType string) {
	storeErrors.WithLabelValues(backend, errorType).Inc()
}

func BatchSizeLog(backend string, ops int) {
	batchSize.WithLabelValues(backend).Observe(float64(ops))
}

func SyncHeightSet(indexer string, height uint32) {
	SyncHeight.WithLabelValues(indexer).Set(float64(height))
}

func BlocksConnectedInc(indexer string) {
	BlocksConnected.WithLabelValues(indexer).Inc()
}

func BlocksDisconnectedInc(indexer string) {
	BlocksDisconnected.WithLabelValues(indexer).Inc()
}

func BatchFailuresInc(indexer string) {
	BatchFailures.WithLabelValues(indexer).Inc()
}

func EventProcessingTimeLog(indexer, event string, duration time.Duration) {
	EventProcessingTime.WithLabelValues(indexer, event).Observe(duration.Seconds())
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}

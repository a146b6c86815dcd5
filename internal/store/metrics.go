package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Maintenance metrics
	maintenanceRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_maintenance_runs_total",
			Help: "Total number of maintenance operations",
		},
	)

	maintenanceOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_maintenance_outcomes_total",
			Help: "Total number of maintenance operations by outcome",
		},
		[]string{"status"},
	)

	maintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blockindexor_maintenance_duration_seconds",
			Help:    "Duration of maintenance operations",
			Buckets: prometheus.DefBuckets,
		},
	)

	maintenanceLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_maintenance_last_run_timestamp",
			Help: "Unix timestamp of last maintenance run",
		},
	)

	maintenanceSpaceReclaimed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_maintenance_space_reclaimed_bytes",
			Help: "Bytes reclaimed by last maintenance operation",
		},
	)

	walCheckpoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blockindexor_wal_checkpoint_total",
			Help: "Total number of WAL checkpoint operations",
		},
		[]string{"mode"},
	)

	vacuumRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_vacuum_total",
			Help: "Total number of VACUUM operations",
		},
	)

	storeSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "blockindexor_store_size_bytes",
			Help: "Store size on disk in bytes",
		},
		[]string{"backend"},
	)
)

func MaintenanceRunsInc() {
	maintenanceRuns.Inc()
}

func MaintenanceDurationLog(duration time.Duration) {
	maintenanceDuration.Observe(duration.Seconds())
}

func MaintenanceLastRunLog() {
	maintenanceLastRun.Set(float64(time.Now().UTC().Unix()))
}

func MaintenanceErrorInc() {
	maintenanceOutcomes.WithLabelValues("error").Inc()
}

func MaintenanceSuccessInc() {
	maintenanceOutcomes.WithLabelValues("success").Inc()
}

func MaintenanceSpaceReclaimedLog(bytesReclaimed uint64) {
	maintenanceSpaceReclaimed.Set(float64(bytesReclaimed))
}

func WALCheckpointInc(mode string) {
	walCheckpoints.WithLabelValues(mode).Inc()
}

func VacuumRunsInc() {
	vacuumRuns.Inc()
}

func StoreSizeLog(backend string, sizeBytes int64) {
	storeSize.WithLabelValues(backend).Set(float64(sizeBytes))
}

package reorg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reorgsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_reorgs_detected_total",
			Help: "Total number of chain reorganizations detected",
		},
	)

	reorgDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blockindexor_reorg_depth_blocks",
			Help:    "Depth of chain reorganizations in blocks",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 288},
		},
	)

	reorgLastDetected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_reorg_last_detected_timestamp",
			Help: "Unix timestamp of last reorg detection",
		},
	)

	reorgForkHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_reorg_fork_height",
			Help: "Height of the last common block of the most recent reorg",
		},
	)

	reorgDepthExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_reorg_depth_exceeded_total",
			Help: "Total number of reorgs deeper than the allowed lookback",
		},
	)
)

// ReorgDetectedLog records a reorg that replaced depth blocks above forkHeight.
func ReorgDetectedLog(depth int, forkHeight uint32) {
	reorgsDetected.Inc()
	reorgDepth.Observe(float64(depth))
	reorgLastDetected.Set(float64(time.Now().UTC().Unix()))
	reorgForkHeight.Set(float64(forkHeight))
}

func ReorgDepthExceededInc() {
	reorgDepthExceeded.Inc()
}

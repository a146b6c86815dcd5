package downloader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	headHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_downloader_head_height",
			Help: "Height of the followed chain head",
		},
	)

	polls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_downloader_polls_total",
			Help: "Total number of head polls",
		},
	)

	resyncs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blockindexor_downloader_resyncs_total",
			Help: "Total number of full reconciliations of the indexers",
		},
	)

	windowSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blockindexor_downloader_window_blocks",
			Help: "Number of recent blocks kept for reorg detection",
		},
	)
)

func headHeightSet(height uint32) {
	headHeight.Set(float64(height))
}

func pollsInc() {
	polls.Inc()
}

func resyncsInc() {
	resyncs.Inc()
}

func windowSizeSet(n int) {
	windowSize.Set(float64(n))
}

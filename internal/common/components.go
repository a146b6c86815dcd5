package common

const (
	ComponentDownloader         = "downloader"
	ComponentChainReader        = "chain-reader"
	ComponentReorgDetector      = "reorg-detector"
	ComponentIndexer            = "indexer"
	ComponentIndexerCoordinator = "indexer-coordinator"
	ComponentStore              = "store"
	ComponentMaintenance        = "maintenance"
	ComponentAPI                = "api"
)

var AllComponents = map[string]struct{}{
	ComponentDownloader:         {},
	ComponentChainReader:        {},
	ComponentReorgDetector:      {},
	ComponentIndexer:            {},
	ComponentIndexerCoordinator: {},
	ComponentStore:              {},
	ComponentMaintenance:        {},
	ComponentAPI:                {},
}

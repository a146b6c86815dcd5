package api

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Indexers  []IndexerStatus `json:"indexers"`
}

// IndexerStatus represents the sync progress of a single indexer.
type IndexerStatus struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	StartHeight uint32 `json:"start_height"`
	// Synced is false until the indexer applied its first block
	Synced bool `json:"synced"`
	// Height and Hash are the last applied block
	Height uint32       `json:"height,omitempty"`
	Hash   *common.Hash `json:"hash,omitempty" swaggertype:"string"`
}

// IndexerInfo represents information about an available indexer.
type IndexerInfo struct {
	IndexerStatus

	Endpoints []string `json:"endpoints"`
}

// BlocksByTimestampResponse lists the canonical blocks whose time is within [From, To].
type BlocksByTimestampResponse struct {
	From   uint32        `json:"from" example:"1700000000"`
	To     uint32        `json:"to" example:"1700000600"`
	Count  int           `json:"count" example:"50"`
	Hashes []common.Hash `json:"hashes" swaggertype:"array,string"`
}

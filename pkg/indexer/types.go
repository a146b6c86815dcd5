package indexer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Synced is a running indexer together with its progress along the chain.
type Synced interface {
	// Name returns the indexer instance name.
	Name() string

	// Indexer returns the concrete indexer.
	Indexer() Indexer

	// StartHeight is the first height the indexer records.
	StartHeight() uint32

	// SyncState returns the last applied block. ok is false while nothing has been indexed.
	SyncState() (state SyncState, ok bool)
}

// TimestampQueryable is implemented by indexers that can answer block time range queries.
type TimestampQueryable interface {
	// GetBlockHashesByTimestamp returns the hashes of canonical blocks whose time is within
	// [start, end]. The result is empty when end < start.
	GetBlockHashesByTimestamp(ctx context.Context, start, end uint32) (map[common.Hash]struct{}, error)
}

// BlockQueryable is implemented by indexers that resolve canonical blocks by hash.
type BlockQueryable interface {
	// GetBlockByHash returns store.ErrNotFound for blocks that are not indexed.
	GetBlockByHash(ctx context.Context, hash common.Hash) (*BlockInfo, error)
}

// BlockInfo describes one canonical block.
// @Description Height and time of an indexed block
type BlockInfo struct {
	Hash   common.Hash `json:"hash" swaggertype:"string" example:"0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6"`
	Height uint32      `json:"height" example:"19000000"`
	Time   uint64      `json:"time" example:"1700000000"`
}

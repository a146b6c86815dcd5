package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClient defines the interface for Ethereum RPC operations.
// This abstraction allows for easier testing and alternative implementations.
type EthClient interface {
	// Close closes the RPC client connection.
	Close()

	// GetBlockHeader retrieves the header for a specific block number.
	GetBlockHeader(ctx context.Context, blockNum uint64) (*types.Header, error)

	// GetBlockHeaderByHash retrieves the header of any block the node knows, canonical or not.
	GetBlockHeaderByHash(ctx context.Context, hash common.Hash) (*types.Header, error)

	// GetLatestBlockHeader retrieves the latest block header.
	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)

	// GetFinalizedBlockHeader retrieves the finalized block header.
	GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error)

	// GetSafeBlockHeader retrieves the safe block header.
	GetSafeBlockHeader(ctx context.Context) (*types.Header, error)

	// BatchGetBlockHeaders retrieves headers for multiple block numbers in a single batch call.
	BatchGetBlockHeaders(ctx context.Context, blockNums []uint64) ([]*types.Header, error)
}

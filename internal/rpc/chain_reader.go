package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	internalcommon "github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	internaltypes "github.com/goran-ethernal/BlockIndexor/internal/types"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	pkgrpc "github.com/goran-ethernal/BlockIndexor/pkg/rpc"
	"github.com/patrickmn/go-cache"
)

var _ chain.Reader = (*ChainReader)(nil)

// ChainReader exposes an EVM node as a chain.Reader. The tip follows the configured
// finality; headers fetched by hash are cached since block contents never change.
type ChainReader struct {
	client   pkgrpc.EthClient
	finality internaltypes.BlockFinality
	headers  *cache.Cache
	log      *logger.Logger
}

// NewChainReader creates a ChainReader caching headers for cacheTTL.
func NewChainReader(
	client pkgrpc.EthClient,
	finality internaltypes.BlockFinality,
	cacheTTL time.Duration,
	log *logger.Logger,
) *ChainReader {
	return &ChainReader{
		client:   client,
		finality: finality,
		headers:  cache.New(cacheTTL, 2*cacheTTL),
		log:      log.WithComponent(internalcommon.ComponentChainReader),
	}
}

// Tip returns the head block at the configured finality.
func (r *ChainReader) Tip(ctx context.Context) (*chain.Entry, error) {
	var (
		header *types.Header
		err    error
	)

	switch r.finality.BlockNumber() {
	case rpc.FinalizedBlockNumber:
		header, err = r.client.GetFinalizedBlockHeader(ctx)
	case rpc.SafeBlockNumber:
		header, err = r.client.GetSafeBlockHeader(ctx)
	default:
		header, err = r.client.GetLatestBlockHeader(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s block header: %w", r.finality, r.mapError(err))
	}

	return r.remember(header)
}

// EntryByHeight returns the block the node currently has at height.
func (r *ChainReader) EntryByHeight(ctx context.Context, height uint32) (*chain.Entry, error) {
	header, err := r.client.GetBlockHeader(ctx, uint64(height))
	if err != nil {
		return nil, fmt.Errorf("failed to get block header %d: %w", height, r.mapError(err))
	}

	return r.remember(header)
}

// EntryByHash returns the entry of any block the node knows.
func (r *ChainReader) EntryByHash(ctx context.Context, hash common.Hash) (*chain.Entry, error) {
	header, err := r.headerByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return chain.EntryFromHeader(header)
}

// BlockByHash returns the block header as a chain.Block. EVM blocks carry no view.
func (r *ChainReader) BlockByHash(ctx context.Context, hash common.Hash) (chain.Block, chain.View, error) {
	header, err := r.headerByHash(ctx, hash)
	if err != nil {
		return nil, nil, err
	}
	return chain.HeaderBlock{Header: header}, nil, nil
}

func (r *ChainReader) headerByHash(ctx context.Context, hash common.Hash) (*types.Header, error) {
	if cached, ok := r.headers.Get(hash.Hex()); ok {
		HeaderCacheLookupInc(true)
		return cached.(*types.Header), nil
	}
	HeaderCacheLookupInc(false)

	header, err := r.client.GetBlockHeaderByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get block header %s: %w", hash.Hex(), r.mapError(err))
	}
	if header.Hash() != hash {
		return nil, fmt.Errorf("node returned header %s for %s", header.Hash().Hex(), hash.Hex())
	}

	r.headers.Set(hash.Hex(), header, cache.DefaultExpiration)
	return header, nil
}

func (r *ChainReader) remember(header *types.Header) (*chain.Entry, error) {
	entry, err := chain.EntryFromHeader(header)
	if err != nil {
		return nil, err
	}
	r.headers.Set(entry.Hash.Hex(), header, cache.DefaultExpiration)
	return entry, nil
}

func (r *ChainReader) mapError(err error) error {
	if IsNotFoundError(err) {
		r.log.Debugf("block not found: %v", err)
		return fmt.Errorf("%w: %w", chain.ErrNotFound, err)
	}
	return err
}

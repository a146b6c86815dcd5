package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	pkgrpc "github.com/goran-ethernal/BlockIndexor/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

// Client wraps the Ethereum RPC client with retries and metrics.
// It implements the pkgrpc.EthClient interface.
type Client struct {
	eth         *ethclient.Client
	rpc         *rpc.Client
	retryConfig *config.RetryConfig
}

// NewClient creates a new RPC client connected to the given endpoint.
// A nil retryConfig disables retries.
func NewClient(ctx context.Context, endpoint string, retryConfig *config.RetryConfig) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		eth:         ethclient.NewClient(rpcClient),
		rpc:         rpcClient,
		retryConfig: retryConfig,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GetBlockHeader retrieves the header for a specific block number.
func (c *Client) GetBlockHeader(ctx context.Context, blockNum uint64) (*types.Header, error) {
	return c.headerByNumber(ctx, new(big.Int).SetUint64(blockNum))
}

// GetBlockHeaderByHash retrieves the header of any block the node knows.
func (c *Client) GetBlockHeaderByHash(ctx context.Context, hash common.Hash) (*types.Header, error) {
	var header *types.Header
	err := c.call(ctx, "eth_getBlockByHash", func() error {
		var err error
		header, err = c.eth.HeaderByHash(ctx, hash)
		return err
	})
	return header, err
}

// GetLatestBlockHeader retrieves the latest block header.
func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, nil)
}

// GetFinalizedBlockHeader retrieves the finalized block header.
func (c *Client) GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

// GetSafeBlockHeader retrieves the safe block header.
func (c *Client) GetSafeBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.SafeBlockNumber)))
}

func (c *Client) headerByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.call(ctx, "eth_getBlockByNumber", func() error {
		var err error
		header, err = c.eth.HeaderByNumber(ctx, number)
		return err
	})
	return header, err
}

// BatchGetBlockHeaders retrieves headers for multiple block numbers in a single batch call.
func (c *Client) BatchGetBlockHeaders(ctx context.Context, blockNums []uint64) ([]*types.Header, error) {
	const maxBatch = 100
	allResults := make([]*types.Header, 0, len(blockNums))

	for i := 0; i < len(blockNums); i += maxBatch {
		end := min(i+maxBatch, len(blockNums))
		chunk := blockNums[i:end]

		results := make([]*types.Header, len(chunk))
		err := c.call(ctx, "batch_eth_getBlockByNumber", func() error {
			batch := make([]rpc.BatchElem, len(chunk))
			for j, blockNum := range chunk {
				results[j] = nil
				batch[j] = rpc.BatchElem{
					Method: "eth_getBlockByNumber",
					Args:   []any{toBlockNumArg(blockNum), false}, // false = don't include transactions
					Result: &results[j],
				}
			}

			if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
				return err
			}

			// Check for individual errors
			for j, elem := range batch {
				if elem.Error != nil {
					return elem.Error
				}
				if results[j] == nil {
					return fmt.Errorf("block %d: %w", chunk[j], ethereum.NotFound)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		allResults = append(allResults, results...)
	}

	return allResults, nil
}

// call runs fn with retries and records the request metrics under method.
func (c *Client) call(ctx context.Context, method string, fn func() error) error {
	start := time.Now()
	RPCMethodInc(method)

	err := retryWithBackoff(ctx, c.retryConfig, method, fn)

	RPCMethodDuration(method, time.Since(start))
	if err != nil {
		RPCMethodError(method, errorType(err))
	}

	return err
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}

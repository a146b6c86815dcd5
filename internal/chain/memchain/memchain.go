// Package memchain is an in-memory chain that can be extended and reorganized at will.
// It backs tests and local runs of the sync engine without an RPC node.
package memchain

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
)

// BlockSpacing is the time between blocks created by Extend.
const BlockSpacing = 12

var _ chain.Reader = (*Chain)(nil)

// Chain keeps every block it ever created; only the canonical ones are reachable by height.
type Chain struct {
	mu        sync.RWMutex
	headers   map[common.Hash]*types.Header
	canonical []common.Hash
	nonce     uint64
}

// New creates a chain holding only a genesis block with the given time.
func New(genesisTime uint32) *Chain {
	c := &Chain{headers: make(map[common.Hash]*types.Header)}
	c.appendLocked(common.Hash{}, 0, genesisTime)
	return c
}

// Extend appends n blocks spaced BlockSpacing apart.
func (c *Chain) Extend(n int) []*chain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*chain.Entry, 0, n)
	for range n {
		tip := c.tipLocked()
		out = append(out, c.appendLocked(tip.Hash(), c.height()+1, uint32(tip.Time)+BlockSpacing))
	}
	return out
}

// Append adds one block per given time on top of the tip.
func (c *Chain) Append(times ...uint32) []*chain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*chain.Entry, 0, len(times))
	for _, ts := range times {
		out = append(out, c.appendLocked(c.tipLocked().Hash(), c.height()+1, ts))
	}
	return out
}

// Reorg drops the top depth blocks from the canonical chain and appends one replacement
// block per given time. The dropped blocks stay known by hash.
func (c *Chain) Reorg(depth int, times ...uint32) []*chain.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if depth >= len(c.canonical) {
		panic(fmt.Sprintf("memchain: cannot reorg %d blocks of a %d block chain", depth, len(c.canonical)))
	}
	c.canonical = c.canonical[:len(c.canonical)-depth]

	out := make([]*chain.Entry, 0, len(times))
	for _, ts := range times {
		out = append(out, c.appendLocked(c.tipLocked().Hash(), c.height()+1, ts))
	}
	return out
}

// Canonical returns the canonical entries from genesis to tip.
func (c *Chain) Canonical() []*chain.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*chain.Entry, len(c.canonical))
	for i, h := range c.canonical {
		out[i] = entry(c.headers[h])
	}
	return out
}

func (c *Chain) Tip(ctx context.Context) (*chain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return entry(c.tipLocked()), nil
}

func (c *Chain) EntryByHeight(ctx context.Context, height uint32) (*chain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if int(height) >= len(c.canonical) {
		return nil, chain.ErrNotFound
	}
	return entry(c.headers[c.canonical[height]]), nil
}

func (c *Chain) EntryByHash(ctx context.Context, hash common.Hash) (*chain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.headers[hash]
	if !ok {
		return nil, chain.ErrNotFound
	}
	return entry(h), nil
}

func (c *Chain) BlockByHash(ctx context.Context, hash common.Hash) (chain.Block, chain.View, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	h, ok := c.headers[hash]
	if !ok {
		return nil, nil, chain.ErrNotFound
	}
	return chain.HeaderBlock{Header: types.CopyHeader(h)}, nil, nil
}

func (c *Chain) height() uint32 {
	return uint32(len(c.canonical) - 1)
}

func (c *Chain) tipLocked() *types.Header {
	return c.headers[c.canonical[len(c.canonical)-1]]
}

func (c *Chain) appendLocked(parent common.Hash, height, ts uint32) *chain.Entry {
	c.nonce++
	extra := make([]byte, 8)
	binary.BigEndian.PutUint64(extra, c.nonce)

	h := &types.Header{
		ParentHash: parent,
		Number:     big.NewInt(int64(height)),
		Difficulty: big.NewInt(1),
		GasLimit:   8000000,
		Time:       uint64(ts),
		Extra:      extra,
	}

	hash := h.Hash()
	c.headers[hash] = h
	c.canonical = append(c.canonical, hash)

	return entry(h)
}

func entry(h *types.Header) *chain.Entry {
	return &chain.Entry{
		Height:   uint32(h.Number.Uint64()),
		Hash:     h.Hash(),
		PrevHash: h.ParentHash,
		Time:     uint32(h.Time),
	}
}

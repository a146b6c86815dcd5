// Package chain describes the canonical chain as indexers see it: entries, blocks and
// the ordered connect/disconnect events that move an indexer along it.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNotFound is returned by a Reader for heights or hashes it does not know.
var ErrNotFound = errors.New("block not found")

// Entry is the header metadata of one block on the chain.
type Entry struct {
	Height   uint32
	Hash     common.Hash
	PrevHash common.Hash
	Time     uint32
}

// EntryFromHeader converts an EVM header. Heights and times must fit in 32 bits.
func EntryFromHeader(h *types.Header) (*Entry, error) {
	if h == nil || h.Number == nil {
		return nil, errors.New("header has no number")
	}
	if !h.Number.IsUint64() || h.Number.Uint64() > math.MaxUint32 {
		return nil, fmt.Errorf("block number %s exceeds 32 bits", h.Number)
	}
	if h.Time > math.MaxUint32 {
		return nil, fmt.Errorf("block %s time %d exceeds 32 bits", h.Number, h.Time)
	}

	return &Entry{
		Height:   uint32(h.Number.Uint64()),
		Hash:     h.Hash(),
		PrevHash: h.ParentHash,
		Time:     uint32(h.Time),
	}, nil
}

func (e *Entry) String() string {
	return fmt.Sprintf("%d/%s", e.Height, e.Hash.Hex())
}

// Block is the block data handed to indexers alongside its entry.
// Time is the block's declared timestamp, which is not bounded to 32 bits.
type Block interface {
	Hash() common.Hash
	Time() uint64
}

// View is opaque chain state accompanying a block event (for example a UTXO view).
// Indexers that do not need it ignore it.
type View any

// HeaderBlock adapts an EVM header to Block.
type HeaderBlock struct {
	Header *types.Header
}

func (b HeaderBlock) Hash() common.Hash { return b.Header.Hash() }
func (b HeaderBlock) Time() uint64      { return b.Header.Time }

// Reader gives random access to the current canonical chain.
type Reader interface {
	// Tip returns the entry of the current canonical head.
	Tip(ctx context.Context) (*Entry, error)
	// EntryByHeight returns the canonical entry at height.
	EntryByHeight(ctx context.Context, height uint32) (*Entry, error)
	// EntryByHash returns the entry of any known block, canonical or not.
	EntryByHash(ctx context.Context, hash common.Hash) (*Entry, error)
	// BlockByHash returns the block and view for hash.
	BlockByHash(ctx context.Context, hash common.Hash) (Block, View, error)
}

// Listener receives block lifecycle events in strict height order. During a reorganization
// the disconnects of the replaced suffix arrive top-down before the replacement connects.
type Listener interface {
	ConnectBlock(ctx context.Context, entry *Entry, block Block, view View) error
	DisconnectBlock(ctx context.Context, entry *Entry, block Block, view View) error
}

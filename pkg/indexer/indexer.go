package indexer

import (
	"context"

	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	"github.com/goran-ethernal/BlockIndexor/pkg/keys"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
)

// Indexer defines the interface that all concrete indexers must implement.
// The sync engine calls IndexBlock when a block joins the canonical chain and UnindexBlock
// when it leaves it, and commits the produced mutations atomically with its sync state.
type Indexer interface {
	// GetName returns the configured instance name; it also names the store namespace.
	GetName() string

	// GetType returns the registered indexer type.
	GetType() string

	// Schema returns the key layouts this indexer writes. It must not use SyncTag.
	Schema() *keys.Schema

	// IndexBlock writes the records of block to w.
	IndexBlock(ctx context.Context, entry *chain.Entry, block chain.Block, view chain.View, w store.Writer) error

	// UnindexBlock removes exactly the records IndexBlock wrote for the same block.
	// Both must be derived only from (entry, block) and keep no state between calls.
	UnindexBlock(ctx context.Context, entry *chain.Entry, block chain.Block, view chain.View, w store.Writer) error
}

package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	internalcommon "github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/metrics"
	"github.com/goran-ethernal/BlockIndexor/internal/reorg"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
)

const (
	eventConnect    = "connect"
	eventDisconnect = "disconnect"
)

var _ chain.Listener = (*BaseIndexer)(nil)

// BaseIndexer drives a concrete indexer along the canonical chain. Every connect or
// disconnect is committed as one batch holding the indexer's mutations and the new sync
// state, so the namespace always reflects exactly the blocks up to the sync state.
type BaseIndexer struct {
	idx           indexer.Indexer
	db            store.OrderedStore
	log           *logger.Logger
	reorgLog      *logger.Logger
	startHeight   uint32
	maxReorgDepth uint32

	// serializes events; one writer per namespace
	writeMu sync.Mutex

	stateMu     sync.RWMutex
	state       indexer.SyncState
	initialized bool
}

// NewBaseIndexer wraps idx, writing to db, and loads its persisted sync state.
func NewBaseIndexer(
	ctx context.Context,
	idx indexer.Indexer,
	db store.OrderedStore,
	cfg config.IndexerConfig,
	log *logger.Logger,
) (*BaseIndexer, error) {
	schema := idx.Schema()
	if schema == nil {
		return nil, fmt.Errorf("indexer %s: no key schema", idx.GetName())
	}
	if layout, ok := schema.ByTag(indexer.SyncTag); ok {
		return nil, fmt.Errorf("indexer %s: layout %s uses reserved tag %q",
			idx.GetName(), layout.Name(), indexer.SyncTag)
	}

	b := &BaseIndexer{
		idx:           idx,
		db:            db,
		log:           log.WithComponent(internalcommon.ComponentIndexer),
		reorgLog:      log.WithComponent(internalcommon.ComponentReorgDetector),
		startHeight:   cfg.StartHeight,
		maxReorgDepth: cfg.MaxReorgDepth,
	}
	if b.maxReorgDepth == 0 {
		b.maxReorgDepth = config.DefaultMaxReorgDepth
	}

	if err := b.loadSyncState(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *BaseIndexer) loadSyncState(ctx context.Context) error {
	raw, err := b.db.Get(ctx, indexer.SyncStateKey())
	if errors.Is(err, store.ErrNotFound) {
		b.log.Infof("indexer %s has no sync state, starting at block %d", b.Name(), b.startHeight)
		return nil
	}
	if err != nil {
		return fmt.Errorf("indexer %s: failed to load sync state: %w", b.Name(), err)
	}

	state, err := indexer.DecodeSyncState(raw)
	if err != nil {
		return fmt.Errorf("indexer %s: %w", b.Name(), err)
	}

	b.setState(state, true)
	b.log.Infof("indexer %s resumes at %s", b.Name(), state)

	return nil
}

// Name returns the indexer instance name.
func (b *BaseIndexer) Name() string {
	return b.idx.GetName()
}

// Indexer returns the wrapped concrete indexer.
func (b *BaseIndexer) Indexer() indexer.Indexer {
	return b.idx
}

// StartHeight is the first height the indexer records.
func (b *BaseIndexer) StartHeight() uint32 {
	return b.startHeight
}

// SyncState returns the last applied block. ok is false while nothing has been indexed.
func (b *BaseIndexer) SyncState() (state indexer.SyncState, ok bool) {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.state, b.initialized
}

func (b *BaseIndexer) setState(state indexer.SyncState, initialized bool) {
	b.stateMu.Lock()
	b.state, b.initialized = state, initialized
	b.stateMu.Unlock()

	if initialized {
		metrics.SyncHeightSet(b.Name(), state.Height)
	}
}

// ConnectBlock indexes a block that joined the canonical chain. The block must extend the
// sync state; blocks below the start height are ignored and redelivery of the current
// tip is a no-op.
func (b *BaseIndexer) ConnectBlock(ctx context.Context, entry *chain.Entry, block chain.Block, view chain.View) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if entry.Height < b.startHeight {
		return nil
	}
	if err := checkBlock(entry, block); err != nil {
		return err
	}

	state, initialized := b.SyncState()
	if initialized && state.Height == entry.Height && state.Hash == entry.Hash {
		b.log.Debugf("indexer %s already at %s", b.Name(), entry)
		return nil
	}

	applicable := entry.Height == b.startHeight
	if initialized {
		applicable = entry.Height == state.Height+1 && entry.PrevHash == state.Hash
	}
	if !applicable {
		return indexer.NewSyncMismatchError(b.Name(), eventConnect, entry.Height, entry.Hash, state, initialized)
	}

	start := time.Now()

	batch := b.db.NewBatch()
	if err := b.idx.IndexBlock(ctx, entry, block, view, batch); err != nil {
		return fmt.Errorf("indexer %s: failed to index block %s: %w", b.Name(), entry, err)
	}

	next := indexer.SyncState{Height: entry.Height, Hash: entry.Hash}
	if err := batch.Put(indexer.SyncStateKey(), next.Bytes()); err != nil {
		return fmt.Errorf("indexer %s: failed to stage sync state: %w", b.Name(), err)
	}

	if err := b.commit(ctx, batch, eventConnect, entry); err != nil {
		return err
	}

	b.setState(next, true)
	metrics.BlocksConnectedInc(b.Name())
	metrics.EventProcessingTimeLog(b.Name(), eventConnect, time.Since(start))
	b.log.Debugf("indexer %s connected %s", b.Name(), entry)

	return nil
}

// DisconnectBlock removes a block that left the canonical chain. It must be the block at
// the sync state; disconnecting the start block leaves the indexer without a sync state.
func (b *BaseIndexer) DisconnectBlock(
	ctx context.Context,
	entry *chain.Entry,
	block chain.Block,
	view chain.View,
) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if entry.Height < b.startHeight {
		return nil
	}
	if err := checkBlock(entry, block); err != nil {
		return err
	}

	state, initialized := b.SyncState()
	if !initialized || state.Height != entry.Height || state.Hash != entry.Hash {
		return indexer.NewSyncMismatchError(b.Name(), eventDisconnect, entry.Height, entry.Hash, state, initialized)
	}

	start := time.Now()

	batch := b.db.NewBatch()
	if err := b.idx.UnindexBlock(ctx, entry, block, view, batch); err != nil {
		return fmt.Errorf("indexer %s: failed to unindex block %s: %w", b.Name(), entry, err)
	}

	fresh := entry.Height <= b.startHeight
	prev := indexer.SyncState{Height: entry.Height - 1, Hash: entry.PrevHash}

	var err error
	if fresh {
		err = batch.Delete(indexer.SyncStateKey())
	} else {
		err = batch.Put(indexer.SyncStateKey(), prev.Bytes())
	}
	if err != nil {
		return fmt.Errorf("indexer %s: failed to stage sync state: %w", b.Name(), err)
	}

	if err := b.commit(ctx, batch, eventDisconnect, entry); err != nil {
		return err
	}

	if fresh {
		b.setState(indexer.SyncState{}, false)
	} else {
		b.setState(prev, true)
	}
	metrics.BlocksDisconnectedInc(b.Name())
	metrics.EventProcessingTimeLog(b.Name(), eventDisconnect, time.Since(start))
	b.log.Debugf("indexer %s disconnected %s", b.Name(), entry)

	return nil
}

func (b *BaseIndexer) commit(ctx context.Context, batch store.Batch, event string, entry *chain.Entry) error {
	if err := batch.Write(ctx); err != nil {
		metrics.BatchFailuresInc(b.Name())
		b.log.Warnf("indexer %s: %s of %s not committed: %v", b.Name(), event, entry, err)
		return fmt.Errorf("indexer %s: failed to commit %s of block %s: %w", b.Name(), event, entry, err)
	}
	return nil
}

// Sync reconciles the indexer with reader: stale indexed blocks are disconnected down to
// the fork point, then canonical blocks are connected up to tipHeight.
func (b *BaseIndexer) Sync(ctx context.Context, reader chain.Reader, tipHeight uint32) error {
	if state, ok := b.SyncState(); ok {
		detector := reorg.NewDetector(reader, b.maxReorgDepth, b.reorgLog)
		fp, err := detector.FindForkPoint(ctx, state.Height, state.Hash, b.startHeight)
		if err != nil {
			return fmt.Errorf("indexer %s: %w", b.Name(), err)
		}

		for _, stale := range fp.Stale {
			block, view, err := reader.BlockByHash(ctx, stale.Hash)
			if err != nil {
				return fmt.Errorf("indexer %s: failed to get stale block %s: %w", b.Name(), stale, err)
			}
			if err := b.DisconnectBlock(ctx, stale, block, view); err != nil {
				return err
			}
		}
	}

	next := b.startHeight
	if state, ok := b.SyncState(); ok {
		next = state.Height + 1
	}

	if next <= tipHeight {
		b.log.Infof("indexer %s catching up: from_block=%d to_block=%d", b.Name(), next, tipHeight)
	}

	for height := next; height <= tipHeight; height++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := reader.EntryByHeight(ctx, height)
		if err != nil {
			return fmt.Errorf("indexer %s: failed to get block %d: %w", b.Name(), height, err)
		}
		block, view, err := reader.BlockByHash(ctx, entry.Hash)
		if err != nil {
			return fmt.Errorf("indexer %s: failed to get block %s: %w", b.Name(), entry, err)
		}
		if err := b.ConnectBlock(ctx, entry, block, view); err != nil {
			return err
		}

		// height is uint32; stop before wrapping
		if height == tipHeight {
			break
		}
	}

	return nil
}

func checkBlock(entry *chain.Entry, block chain.Block) error {
	if block != nil && block.Hash() != entry.Hash {
		return fmt.Errorf("block %s does not match entry %s", block.Hash().Hex(), entry)
	}
	return nil
}

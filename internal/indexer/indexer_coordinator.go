package indexer

import (
	"context"
	"fmt"
	"sync"

	internalcommon "github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/metrics"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	pkgdownloader "github.com/goran-ethernal/BlockIndexor/pkg/downloader"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"golang.org/x/sync/errgroup"
)

var _ pkgdownloader.Listener = (*IndexerCoordinator)(nil)

var _ indexer.Synced = (*BaseIndexer)(nil)

// IndexerCoordinator fans chain events out to every registered indexer.
// Indexers keep independent sync states; one failing does not roll back the others.
type IndexerCoordinator struct {
	mu sync.RWMutex

	// indexers holds all registered indexers in registration order
	indexers []*BaseIndexer
	byName   map[string]*BaseIndexer

	log *logger.Logger
}

// NewIndexerCoordinator creates a new IndexerCoordinator.
func NewIndexerCoordinator(log *logger.Logger) *IndexerCoordinator {
	return &IndexerCoordinator{
		indexers: make([]*BaseIndexer, 0),
		byName:   make(map[string]*BaseIndexer),
		log:      log.WithComponent(internalcommon.ComponentIndexerCoordinator),
	}
}

// RegisterIndexer registers a new indexer. Names must be unique.
func (ic *IndexerCoordinator) RegisterIndexer(idx *BaseIndexer) error {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if _, exists := ic.byName[idx.Name()]; exists {
		return fmt.Errorf("indexer %s already registered", idx.Name())
	}

	ic.indexers = append(ic.indexers, idx)
	ic.byName[idx.Name()] = idx

	ic.log.Infof("registered indexer %s (type %s, start block %d)",
		idx.Name(), idx.Indexer().GetType(), idx.StartHeight())

	return nil
}

// ConnectBlock delivers a connect event to all indexers concurrently.
func (ic *IndexerCoordinator) ConnectBlock(
	ctx context.Context,
	entry *chain.Entry,
	block chain.Block,
	view chain.View,
) error {
	return ic.fanOut(func(idx *BaseIndexer) error {
		return idx.ConnectBlock(ctx, entry, block, view)
	})
}

// DisconnectBlock delivers a disconnect event to all indexers concurrently.
func (ic *IndexerCoordinator) DisconnectBlock(
	ctx context.Context,
	entry *chain.Entry,
	block chain.Block,
	view chain.View,
) error {
	return ic.fanOut(func(idx *BaseIndexer) error {
		return idx.DisconnectBlock(ctx, entry, block, view)
	})
}

func (ic *IndexerCoordinator) fanOut(fn func(idx *BaseIndexer) error) error {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	var g errgroup.Group
	for _, idx := range ic.indexers {
		g.Go(func() error {
			if err := fn(idx); err != nil {
				metrics.ErrorsInc(internalcommon.ComponentIndexer, "error")
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// Sync reconciles every indexer with the canonical chain of reader up to its current tip,
// and returns that tip. Events delivered afterwards must start above it.
func (ic *IndexerCoordinator) Sync(ctx context.Context, reader chain.Reader) (*chain.Entry, error) {
	tip, err := reader.Tip(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain tip: %w", err)
	}

	ic.mu.RLock()
	defer ic.mu.RUnlock()

	ic.log.Infof("reconciling %d indexers with tip %s", len(ic.indexers), tip)

	g, gctx := errgroup.WithContext(ctx)
	for _, idx := range ic.indexers {
		g.Go(func() error {
			return idx.Sync(gctx, reader, tip.Height)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tip, nil
}

// GetByName returns the indexer registered under name.
func (ic *IndexerCoordinator) GetByName(name string) (indexer.Synced, bool) {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	idx, ok := ic.byName[name]
	if !ok {
		return nil, false
	}
	return idx, true
}

// ListAll returns all registered indexers in registration order.
func (ic *IndexerCoordinator) ListAll() []indexer.Synced {
	ic.mu.RLock()
	defer ic.mu.RUnlock()

	out := make([]indexer.Synced, len(ic.indexers))
	for i, idx := range ic.indexers {
		out[i] = idx
	}
	return out
}

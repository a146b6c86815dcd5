package indexer

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/BlockIndexor/internal/chain/memchain"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	internalstore "github.com/goran-ethernal/BlockIndexor/internal/store"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"github.com/goran-ethernal/BlockIndexor/pkg/keys"
	"github.com/goran-ethernal/BlockIndexor/pkg/reorg"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
	"github.com/stretchr/testify/require"
)

var heightLayout = keys.MustLayout("height", 'x', keys.Uint32("height"), keys.Hash256("hash"))

// heightIndexer marks (height, hash) for every connected block.
type heightIndexer struct {
	name   string
	schema *keys.Schema
	fail   error
}

func newHeightIndexer(name string) *heightIndexer {
	return &heightIndexer{name: name, schema: keys.MustSchema(heightLayout)}
}

func (h *heightIndexer) GetName() string      { return h.name }
func (h *heightIndexer) GetType() string      { return "height" }
func (h *heightIndexer) Schema() *keys.Schema { return h.schema }

func (h *heightIndexer) IndexBlock(
	_ context.Context, entry *chain.Entry, block chain.Block, _ chain.View, w store.Writer,
) error {
	if h.fail != nil {
		return h.fail
	}
	key, err := heightLayout.Encode(entry.Height, block.Hash())
	if err != nil {
		return err
	}
	return w.Mark(key)
}

func (h *heightIndexer) UnindexBlock(
	_ context.Context, entry *chain.Entry, block chain.Block, _ chain.View, w store.Writer,
) error {
	key, err := heightLayout.Encode(entry.Height, block.Hash())
	if err != nil {
		return err
	}
	return w.Delete(key)
}

// flakyStore fails batch commits while fail is set.
type flakyStore struct {
	store.OrderedStore
	fail atomic.Bool
}

func (f *flakyStore) NewBatch() store.Batch {
	return &flakyBatch{Batch: f.OrderedStore.NewBatch(), store: f}
}

type flakyBatch struct {
	store.Batch
	store *flakyStore
}

func (b *flakyBatch) Write(ctx context.Context) error {
	if b.store.fail.Load() {
		return store.NewWriteError("commit", errors.New("disk failure"))
	}
	return b.Batch.Write(ctx)
}

func newNamespace(t *testing.T) store.OrderedStore {
	t.Helper()

	ns, err := internalstore.NewMemory().Namespace("test")
	require.NoError(t, err)
	return ns
}

func newTestBaseIndexer(t *testing.T, db store.OrderedStore, cfg config.IndexerConfig) *BaseIndexer {
	t.Helper()

	if cfg.Name == "" {
		cfg.Name = "heights"
	}
	b, err := NewBaseIndexer(context.Background(), newHeightIndexer(cfg.Name), db, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	return b
}

// indexedHashes returns the block hashes recorded in db, ordered by height.
func indexedHashes(t *testing.T, db store.Reader) []common.Hash {
	t.Helper()

	lo, err := heightLayout.Min()
	require.NoError(t, err)
	hi, err := heightLayout.Max()
	require.NoError(t, err)

	var hashes []common.Hash
	err = db.Scan(context.Background(), store.ScanOptions{GreaterOrEqual: lo, LessOrEqual: hi},
		func(key, _ []byte) error {
			tuple, err := heightLayout.Decode(key)
			if err != nil {
				return err
			}
			hashes = append(hashes, tuple.Hash(1))
			return nil
		})
	require.NoError(t, err)
	return hashes
}

func canonicalHashes(c *memchain.Chain, from uint32) []common.Hash {
	var hashes []common.Hash
	for _, e := range c.Canonical() {
		if e.Height >= from {
			hashes = append(hashes, e.Hash)
		}
	}
	return hashes
}

func connect(t *testing.T, ctx context.Context, l chain.Listener, c *memchain.Chain, entries ...*chain.Entry) {
	t.Helper()

	for _, e := range entries {
		block, view, err := c.BlockByHash(ctx, e.Hash)
		require.NoError(t, err)
		require.NoError(t, l.ConnectBlock(ctx, e, block, view))
	}
}

func TestBaseIndexer_ConnectDisconnect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	blocks := c.Extend(3)
	genesis := c.Canonical()[0]

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{})

	_, ok := b.SyncState()
	require.False(t, ok)

	connect(t, ctx, b, c, genesis)
	connect(t, ctx, b, c, blocks...)

	state, ok := b.SyncState()
	require.True(t, ok)
	require.Equal(t, indexer.SyncState{Height: 3, Hash: blocks[2].Hash}, state)
	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, db))

	// persisted alongside the records
	raw, err := db.Get(ctx, indexer.SyncStateKey())
	require.NoError(t, err)
	persisted, err := indexer.DecodeSyncState(raw)
	require.NoError(t, err)
	require.Equal(t, state, persisted)

	// redelivery of the tip is a no-op
	connect(t, ctx, b, c, blocks[2])

	top, _, err := c.BlockByHash(ctx, blocks[2].Hash)
	require.NoError(t, err)
	require.NoError(t, b.DisconnectBlock(ctx, blocks[2], top, nil))

	state, ok = b.SyncState()
	require.True(t, ok)
	require.Equal(t, indexer.SyncState{Height: 2, Hash: blocks[1].Hash}, state)
	require.Equal(t, canonicalHashes(c, 0)[:3], indexedHashes(t, db))
}

func TestBaseIndexer_SyncMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	blocks := c.Extend(3)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{StartHeight: 1})

	block := func(e *chain.Entry) chain.Block {
		blk, _, err := c.BlockByHash(ctx, e.Hash)
		require.NoError(t, err)
		return blk
	}

	// a fresh indexer only accepts its start block
	err := b.ConnectBlock(ctx, blocks[1], block(blocks[1]), nil)
	require.ErrorIs(t, err, indexer.ErrSyncMismatch)

	var mismatch *indexer.SyncMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.False(t, mismatch.Initialized)
	require.Equal(t, "connect", mismatch.Event)

	// nothing to disconnect yet
	require.ErrorIs(t, b.DisconnectBlock(ctx, blocks[0], block(blocks[0]), nil), indexer.ErrSyncMismatch)

	connect(t, ctx, b, c, blocks[0])

	// gap
	require.ErrorIs(t, b.ConnectBlock(ctx, blocks[2], block(blocks[2]), nil), indexer.ErrSyncMismatch)

	// wrong parent
	fork := c.Reorg(3, 99, 100, 101)
	require.ErrorIs(t, b.ConnectBlock(ctx, fork[1], block(fork[1]), nil), indexer.ErrSyncMismatch)

	// disconnect must target the sync state
	require.ErrorIs(t, b.DisconnectBlock(ctx, blocks[1], block(blocks[1]), nil), indexer.ErrSyncMismatch)

	// block not matching its entry
	err = b.ConnectBlock(ctx, blocks[1], block(blocks[2]), nil)
	require.ErrorContains(t, err, "does not match entry")

	require.Len(t, indexedHashes(t, db), 1)
}

func TestBaseIndexer_StartHeight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	blocks := c.Extend(4)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{StartHeight: 3})

	// below the start height: ignored
	connect(t, ctx, b, c, blocks[0], blocks[1])
	_, ok := b.SyncState()
	require.False(t, ok)

	connect(t, ctx, b, c, blocks[2], blocks[3])
	require.Equal(t, canonicalHashes(c, 3), indexedHashes(t, db))

	for _, e := range []*chain.Entry{blocks[3], blocks[2]} {
		blk, _, err := c.BlockByHash(ctx, e.Hash)
		require.NoError(t, err)
		require.NoError(t, b.DisconnectBlock(ctx, e, blk, nil))
	}

	// disconnecting the start block leaves no sync state behind
	_, ok = b.SyncState()
	require.False(t, ok)
	has, err := db.Has(ctx, indexer.SyncStateKey())
	require.NoError(t, err)
	require.False(t, has)
	require.Empty(t, indexedHashes(t, db))

	// below the start height disconnects are ignored too
	blk, _, err := c.BlockByHash(ctx, blocks[1].Hash)
	require.NoError(t, err)
	require.NoError(t, b.DisconnectBlock(ctx, blocks[1], blk, nil))
}

func TestBaseIndexer_SyncAcrossReorg(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// [G, A, B, C]
	c := memchain.New(0)
	c.Extend(3)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{})

	require.NoError(t, b.Sync(ctx, c, 3))
	original := canonicalHashes(c, 0)
	require.Equal(t, original, indexedHashes(t, db))

	// [G, A, B', C']
	c.Reorg(2, 500, 510)
	require.NoError(t, b.Sync(ctx, c, 3))

	replaced := canonicalHashes(c, 0)
	require.Equal(t, replaced, indexedHashes(t, db))
	require.Equal(t, original[:2], replaced[:2])
	require.NotEqual(t, original[2], replaced[2])

	state, ok := b.SyncState()
	require.True(t, ok)
	require.Equal(t, replaced[3], state.Hash)

	// behind but canonical: connect forward only
	c.Extend(2)
	require.NoError(t, b.Sync(ctx, c, 5))
	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, db))
}

func TestBaseIndexer_SyncBelowStartHeight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	c.Extend(5)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{StartHeight: 4})
	require.NoError(t, b.Sync(ctx, c, 5))
	require.Equal(t, canonicalHashes(c, 4), indexedHashes(t, db))

	// the fork drops every indexed block
	c.Reorg(3, 1, 2, 3)
	require.NoError(t, b.Sync(ctx, c, 5))
	require.Equal(t, canonicalHashes(c, 4), indexedHashes(t, db))

	// tip below start: nothing to do
	other := newTestBaseIndexer(t, newNamespace(t), config.IndexerConfig{StartHeight: 10})
	require.NoError(t, other.Sync(ctx, c, 5))
	_, ok := other.SyncState()
	require.False(t, ok)
}

func TestBaseIndexer_ReorgTooDeep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	c.Extend(6)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{MaxReorgDepth: 2})
	require.NoError(t, b.Sync(ctx, c, 6))
	before := indexedHashes(t, db)

	c.Reorg(4, 1, 2, 3, 4)
	err := b.Sync(ctx, c, 6)
	require.ErrorIs(t, err, reorg.ErrReorgDepthExceeded)

	// nothing was rewound
	require.Equal(t, before, indexedHashes(t, db))
}

func TestBaseIndexer_FailedCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	blocks := c.Extend(2)

	db := &flakyStore{OrderedStore: newNamespace(t)}
	b := newTestBaseIndexer(t, db, config.IndexerConfig{})
	require.NoError(t, b.Sync(ctx, c, 1))
	before := indexedHashes(t, db)

	db.fail.Store(true)

	blk, _, err := c.BlockByHash(ctx, blocks[1].Hash)
	require.NoError(t, err)
	err = b.ConnectBlock(ctx, blocks[1], blk, nil)

	var writeErr *store.WriteError
	require.ErrorAs(t, err, &writeErr)

	// neither the records nor the sync state moved
	require.Equal(t, before, indexedHashes(t, db))
	state, _ := b.SyncState()
	require.Equal(t, blocks[0].Hash, state.Hash)
	raw, err := db.Get(ctx, indexer.SyncStateKey())
	require.NoError(t, err)
	persisted, err := indexer.DecodeSyncState(raw)
	require.NoError(t, err)
	require.Equal(t, state, persisted)

	// same for a disconnect
	top, _, err := c.BlockByHash(ctx, blocks[0].Hash)
	require.NoError(t, err)
	require.ErrorAs(t, b.DisconnectBlock(ctx, blocks[0], top, nil), &writeErr)
	require.Equal(t, before, indexedHashes(t, db))

	// redelivery succeeds once the store recovers
	db.fail.Store(false)
	require.NoError(t, b.ConnectBlock(ctx, blocks[1], blk, nil))
	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, db))
}

func TestBaseIndexer_IndexError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	genesis := c.Canonical()[0]

	db := newNamespace(t)
	idx := newHeightIndexer("failing")
	idx.fail = errors.New("bad block")

	b, err := NewBaseIndexer(ctx, idx, db, config.IndexerConfig{}, logger.NewNopLogger())
	require.NoError(t, err)

	blk, _, err := c.BlockByHash(ctx, genesis.Hash)
	require.NoError(t, err)
	require.ErrorContains(t, b.ConnectBlock(ctx, genesis, blk, nil), "bad block")

	_, ok := b.SyncState()
	require.False(t, ok)
}

func TestBaseIndexer_Cancelled(t *testing.T) {
	t.Parallel()

	c := memchain.New(0)
	genesis := c.Canonical()[0]
	blk, _, err := c.BlockByHash(context.Background(), genesis.Hash)
	require.NoError(t, err)

	db := newNamespace(t)
	b := newTestBaseIndexer(t, db, config.IndexerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, b.ConnectBlock(ctx, genesis, blk, nil), context.Canceled)
	_, ok := b.SyncState()
	require.False(t, ok)
}

func TestNewBaseIndexer_ReservedTag(t *testing.T) {
	t.Parallel()

	idx := newHeightIndexer("reserved")
	idx.schema = keys.MustSchema(keys.MustLayout("clash", indexer.SyncTag, keys.Uint32("height")))

	_, err := NewBaseIndexer(context.Background(), idx, newNamespace(t), config.IndexerConfig{}, logger.NewNopLogger())
	require.ErrorContains(t, err, "reserved tag")

	idx.schema = nil
	_, err = NewBaseIndexer(context.Background(), idx, newNamespace(t), config.IndexerConfig{}, logger.NewNopLogger())
	require.ErrorContains(t, err, "no key schema")
}

func TestNewBaseIndexer_CorruptSyncState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newNamespace(t)

	batch := db.NewBatch()
	require.NoError(t, batch.Put(indexer.SyncStateKey(), []byte{1, 2, 3}))
	require.NoError(t, batch.Write(ctx))

	_, err := NewBaseIndexer(ctx, newHeightIndexer("corrupt"), db, config.IndexerConfig{}, logger.NewNopLogger())
	require.ErrorContains(t, err, "sync state")
}

func TestBaseIndexer_Restart(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{config.StoreBackendBadger, config.StoreBackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			cfg := config.StoreConfig{Backend: backend}
			if backend == config.StoreBackendBadger {
				cfg.Path = filepath.Join(t.TempDir(), "badger")
			} else {
				cfg.Path = filepath.Join(t.TempDir(), "store.sqlite")
			}
			cfg.ApplyDefaults()

			c := memchain.New(0)
			c.Extend(4)

			open := func() (*internalstore.Store, *BaseIndexer) {
				s, err := internalstore.Open(cfg, logger.NewNopLogger())
				require.NoError(t, err)
				ns, err := s.Namespace("heights")
				require.NoError(t, err)
				return s, newTestBaseIndexer(t, ns, config.IndexerConfig{})
			}

			s, b := open()
			require.NoError(t, b.Sync(ctx, c, 4))
			require.NoError(t, s.Close())

			// the chain reorganizes while the process is down
			c.Reorg(2, 70, 80, 90)

			s, b = open()
			defer s.Close()

			state, ok := b.SyncState()
			require.True(t, ok)
			require.Equal(t, uint32(4), state.Height)

			require.NoError(t, b.Sync(ctx, c, 5))

			ns, err := s.Namespace("heights")
			require.NoError(t, err)
			require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, ns))
		})
	}
}

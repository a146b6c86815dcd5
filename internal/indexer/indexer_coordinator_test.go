package indexer

import (
	"context"
	"testing"

	"github.com/goran-ethernal/BlockIndexor/internal/chain/memchain"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	internalstore "github.com/goran-ethernal/BlockIndexor/internal/store"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/indexer"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoordinatorWithIndexers(
	t *testing.T,
	cfgs ...config.IndexerConfig,
) (*IndexerCoordinator, map[string]store.OrderedStore) {
	t.Helper()

	s := internalstore.NewMemory()
	t.Cleanup(func() { _ = s.Close() })

	coord := NewIndexerCoordinator(logger.NewNopLogger())
	namespaces := make(map[string]store.OrderedStore)

	for _, cfg := range cfgs {
		ns, err := s.Namespace(cfg.Name)
		require.NoError(t, err)
		namespaces[cfg.Name] = ns

		require.NoError(t, coord.RegisterIndexer(newTestBaseIndexer(t, ns, cfg)))
	}

	return coord, namespaces
}

func TestIndexerCoordinator_RegisterIndexer(t *testing.T) {
	t.Parallel()

	coord, namespaces := newCoordinatorWithIndexers(t,
		config.IndexerConfig{Name: "first"},
		config.IndexerConfig{Name: "second", StartHeight: 5},
	)

	err := coord.RegisterIndexer(newTestBaseIndexer(t, namespaces["first"], config.IndexerConfig{Name: "first"}))
	require.ErrorContains(t, err, "already registered")

	all := coord.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Name())
	assert.Equal(t, "second", all[1].Name())

	idx, ok := coord.GetByName("second")
	require.True(t, ok)
	assert.Equal(t, uint32(5), idx.StartHeight())
	assert.Equal(t, "height", idx.Indexer().GetType())

	_, ok = coord.GetByName("missing")
	assert.False(t, ok)
}

func TestIndexerCoordinator_FanOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	blocks := c.Extend(3)

	coord, namespaces := newCoordinatorWithIndexers(t,
		config.IndexerConfig{Name: "all"},
		config.IndexerConfig{Name: "late", StartHeight: 2},
	)

	connect(t, ctx, coord, c, c.Canonical()...)

	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, namespaces["all"]))
	require.Equal(t, canonicalHashes(c, 2), indexedHashes(t, namespaces["late"]))

	top, _, err := c.BlockByHash(ctx, blocks[2].Hash)
	require.NoError(t, err)
	require.NoError(t, coord.DisconnectBlock(ctx, blocks[2], top, nil))

	for name, ns := range namespaces {
		idx, _ := coord.GetByName(name)
		state, ok := idx.SyncState()
		require.True(t, ok)
		require.Equal(t, indexer.SyncState{Height: 2, Hash: blocks[1].Hash}, state)
		require.NotContains(t, indexedHashes(t, ns), blocks[2].Hash)
	}

	// an event that does not apply is reported
	require.ErrorIs(t, coord.DisconnectBlock(ctx, blocks[2], top, nil), indexer.ErrSyncMismatch)
}

func TestIndexerCoordinator_Sync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memchain.New(0)
	c.Extend(4)

	coord, namespaces := newCoordinatorWithIndexers(t,
		config.IndexerConfig{Name: "a"},
		config.IndexerConfig{Name: "b", StartHeight: 3},
	)

	tip, err := coord.Sync(ctx, c)
	require.NoError(t, err)
	require.Equal(t, uint32(4), tip.Height)
	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, namespaces["a"]))
	require.Equal(t, canonicalHashes(c, 3), indexedHashes(t, namespaces["b"]))

	c.Reorg(2, 100, 110, 120)

	tip, err = coord.Sync(ctx, c)
	require.NoError(t, err)
	require.Equal(t, uint32(5), tip.Height)
	require.Equal(t, canonicalHashes(c, 0), indexedHashes(t, namespaces["a"]))
	require.Equal(t, canonicalHashes(c, 3), indexedHashes(t, namespaces["b"]))
}

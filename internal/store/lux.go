package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/prefixdb"
)

const maxNamespaceLen = 255

// luxEngine hosts namespaces on a luxfi/database, in memory or on badger.
type luxEngine struct {
	db      database.Database
	backend string
	path    string
}

func newMemoryEngine() *luxEngine {
	return &luxEngine{
		db:      memdb.New(),
		backend: config.StoreBackendMemory,
	}
}

func newBadgerEngine(path string) (*luxEngine, error) {
	db, err := badgerdb.New(path, nil, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open badgerdb: %w", err)
	}

	return &luxEngine{
		db:      db,
		backend: config.StoreBackendBadger,
		path:    path,
	}, nil
}

func (e *luxEngine) name() string { return e.backend }

// namespace prefixes keys with the length-prefixed name, so no namespace prefix is a
// prefix of another.
func (e *luxEngine) namespace(name string) (store.OrderedStore, error) {
	if len(name) > maxNamespaceLen {
		return nil, fmt.Errorf("namespace %q longer than %d bytes", name, maxNamespaceLen)
	}

	prefix := append([]byte{byte(len(name))}, name...)
	return &luxNamespace{db: prefixdb.New(prefix, e.db)}, nil
}

func (e *luxEngine) compact(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.db.Compact(nil, nil)
	if err != nil && strings.Contains(err.Error(), "didn't result in any cleanup") {
		// badger value log GC found nothing to rewrite
		return nil
	}
	return mapLuxError(err)
}

func (e *luxEngine) diskSize() (int64, error) {
	if e.path == "" {
		return 0, nil
	}

	var total int64
	err := filepath.WalkDir(e.path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})

	return total, err
}

func (e *luxEngine) Close() error {
	return mapLuxError(e.db.Close())
}

// luxNamespace is one indexer's view of the engine through a prefixdb.
type luxNamespace struct {
	db database.Database
}

func (n *luxNamespace) Has(ctx context.Context, key []byte) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	ok, err := n.db.Has(key)
	return ok, mapLuxError(err)
}

func (n *luxNamespace) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	v, err := n.db.Get(key)
	if err != nil {
		return nil, mapLuxError(err)
	}
	return cloneValue(v), nil
}

func (n *luxNamespace) Scan(ctx context.Context, opts store.ScanOptions, fn store.ScanFunc) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	it := n.db.NewIteratorWithStart(opts.GreaterOrEqual)
	defer it.Release()

	for it.Next() {
		if err := checkContext(ctx); err != nil {
			return err
		}

		key := it.Key()
		if opts.LessOrEqual != nil && bytes.Compare(key, opts.LessOrEqual) > 0 {
			break
		}

		if err := fn(slices.Clone(key), cloneValue(it.Value())); err != nil {
			return err
		}
	}

	return mapLuxError(it.Error())
}

func (n *luxNamespace) NewBatch() store.Batch {
	return &luxBatch{batch: n.db.NewBatch()}
}

// Close is a no-op; the engine owns the underlying database.
func (n *luxNamespace) Close() error {
	return nil
}

type luxBatch struct {
	batch database.Batch
	ops   int
}

func (b *luxBatch) Put(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops++
	return mapLuxError(b.batch.Put(key, value))
}

func (b *luxBatch) Mark(key []byte) error {
	return b.Put(key, store.Marker{}.Bytes())
}

func (b *luxBatch) Delete(key []byte) error {
	b.ops++
	return mapLuxError(b.batch.Delete(key))
}

func (b *luxBatch) Len() int { return b.ops }

func (b *luxBatch) Write(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if err := b.batch.Write(); err != nil {
		return store.NewWriteError("commit", mapLuxError(err))
	}
	return nil
}

func (b *luxBatch) Reset() {
	b.batch.Reset()
	b.ops = 0
}

// cloneValue copies v; badger hands back nil for zero-length values, which a present
// marker must not be.
func cloneValue(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	return slices.Clone(v)
}

func mapLuxError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return store.ErrNotFound
	case errors.Is(err, database.ErrClosed):
		return store.ErrClosed
	default:
		return err
	}
}

// Package store opens the ordered key-value engine configured for the service and hands
// each indexer its own namespace of it.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/internal/metrics"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
)

// engine is a storage backend able to host many namespaces.
type engine interface {
	name() string
	namespace(name string) (store.OrderedStore, error)
	// compact reclaims space; callers hold the maintenance write lock.
	compact(ctx context.Context) error
	// diskSize is the on-disk footprint in bytes, zero for in-memory engines.
	diskSize() (int64, error)
	Close() error
}

// Store owns the configured engine and its maintenance.
type Store struct {
	engine      engine
	maintenance Maintenance
	log         *logger.Logger
}

// Open opens the engine selected by cfg.Backend.
func Open(cfg config.StoreConfig, log *logger.Logger) (*Store, error) {
	var (
		e   engine
		err error
	)

	switch cfg.Backend {
	case config.StoreBackendMemory:
		e = newMemoryEngine()
	case config.StoreBackendBadger:
		e, err = newBadgerEngine(cfg.Path)
	case config.StoreBackendSQLite:
		e, err = newSQLiteEngine(cfg.SQLite, cfg.Maintenance, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("Opened %s store", e.name())

	return &Store{
		engine:      e,
		maintenance: NewMaintenanceCoordinator(e, cfg.Maintenance, log),
		log:         log,
	}, nil
}

// NewMemory opens an in-memory store without maintenance.
func NewMemory() *Store {
	return &Store{
		engine:      newMemoryEngine(),
		maintenance: &NoOpMaintenance{},
		log:         logger.NewNopLogger(),
	}
}

// Namespace returns the private namespace called name.
// Namespaces of the same Store never see each other's keys.
func (s *Store) Namespace(name string) (store.OrderedStore, error) {
	if name == "" {
		return nil, errors.New("namespace name is required")
	}

	ns, err := s.engine.namespace(name)
	if err != nil {
		return nil, err
	}

	return &instrumented{
		OrderedStore: ns,
		backend:      s.engine.name(),
		maintenance:  s.maintenance,
	}, nil
}

// Maintenance returns the maintenance coordinator of the store.
func (s *Store) Maintenance() Maintenance {
	return s.maintenance
}

// Close stops maintenance and closes the engine.
func (s *Store) Close() error {
	if err := s.maintenance.Stop(); err != nil {
		s.log.Warnf("Failed to stop store maintenance: %v", err)
	}

	return s.engine.Close()
}

// instrumented records metrics for a namespace and keeps commits out of maintenance windows.
type instrumented struct {
	store.OrderedStore

	backend     string
	maintenance Maintenance
}

func (i *instrumented) Get(ctx context.Context, key []byte) ([]byte, error) {
	start := time.Now()
	defer func() { metrics.StoreOpDuration(i.backend, "get", time.Since(start)) }()
	metrics.StoreOpInc(i.backend, "get")

	v, err := i.OrderedStore.Get(ctx, key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		metrics.StoreErrorsInc(i.backend, "get")
	}
	return v, err
}

func (i *instrumented) Scan(ctx context.Context, opts store.ScanOptions, fn store.ScanFunc) error {
	start := time.Now()
	defer func() { metrics.StoreOpDuration(i.backend, "scan", time.Since(start)) }()
	metrics.StoreOpInc(i.backend, "scan")

	unlock := i.maintenance.AcquireOperationLock()
	defer unlock()

	err := i.OrderedStore.Scan(ctx, opts, fn)
	if err != nil {
		metrics.StoreErrorsInc(i.backend, "scan")
	}
	return err
}

func (i *instrumented) NewBatch() store.Batch {
	return &instrumentedBatch{Batch: i.OrderedStore.NewBatch(), parent: i}
}

type instrumentedBatch struct {
	store.Batch

	parent *instrumented
}

func (b *instrumentedBatch) Write(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.StoreOpDuration(b.parent.backend, "write", time.Since(start)) }()
	metrics.StoreOpInc(b.parent.backend, "write")

	unlock := b.parent.maintenance.AcquireOperationLock()
	defer unlock()

	ops := b.Len()
	if err := b.Batch.Write(ctx); err != nil {
		metrics.StoreErrorsInc(b.parent.backend, "write")
		return err
	}

	metrics.BatchSizeLog(b.parent.backend, ops)
	return nil
}

// checkContext aborts an operation before it touches the engine.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", common.ComponentStore, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
	"github.com/goran-ethernal/BlockIndexor/pkg/store"
	"github.com/stretchr/testify/require"
)

// fakeEngine counts compactions, shrinks by 1 MiB on each and can be told to fail.
type fakeEngine struct {
	compactions atomic.Int32
	size        atomic.Int64
	fail        error
}

func (f *fakeEngine) name() string { return "fake" }
func (f *fakeEngine) namespace(string) (store.OrderedStore, error) {
	return nil, errors.New("not supported")
}
func (f *fakeEngine) diskSize() (int64, error) { return f.size.Load(), nil }
func (f *fakeEngine) Close() error             { return nil }

func (f *fakeEngine) compact(ctx context.Context) error {
	f.compactions.Add(1)
	if f.fail != nil {
		return f.fail
	}
	f.size.Add(-1 << 20)
	return nil
}

func TestNewMaintenanceCoordinator_NilConfig(t *testing.T) {
	t.Parallel()

	m := NewMaintenanceCoordinator(&fakeEngine{}, nil, logger.NewNopLogger())
	require.IsType(t, &NoOpMaintenance{}, m)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.RunMaintenance(context.Background()))
	m.AcquireOperationLock()()
	require.Zero(t, m.LastRun().Runs)
	require.NoError(t, m.Stop())
}

func TestMaintenanceCoordinator_RunMaintenance(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	engine.size.Store(8 << 20)
	m := newMaintenanceCoordinator(engine, config.MaintenanceConfig{}, logger.NewNopLogger())

	require.Zero(t, m.LastRun().Runs)
	require.NoError(t, m.RunMaintenance(context.Background()))
	require.Equal(t, int32(1), engine.compactions.Load())

	report := m.LastRun()
	require.Equal(t, uint64(1), report.Runs)
	require.False(t, report.At.IsZero())
	require.NoError(t, report.Err)
	require.Equal(t, int64(8<<20), report.SizeBefore)
	require.Equal(t, int64(7<<20), report.SizeAfter)
	require.Equal(t, uint64(1<<20), report.Reclaimed())

	engine.fail = errors.New("disk full")
	err := m.RunMaintenance(context.Background())
	require.ErrorContains(t, err, "disk full")

	report = m.LastRun()
	require.Equal(t, uint64(2), report.Runs)
	require.ErrorContains(t, report.Err, "compaction failed")
	require.Zero(t, report.Reclaimed())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, m.RunMaintenance(ctx), context.Canceled)
	require.Equal(t, int32(2), engine.compactions.Load())
	require.Equal(t, uint64(2), m.LastRun().Runs)
}

func TestMaintenanceReport_Reclaimed(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(10), MaintenanceReport{SizeBefore: 30, SizeAfter: 20}.Reclaimed())
	require.Zero(t, MaintenanceReport{SizeBefore: 20, SizeAfter: 30}.Reclaimed())
	require.Zero(t, MaintenanceReport{}.Reclaimed())
}

func TestMaintenanceCoordinator_ExclusiveWithOperations(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	m := newMaintenanceCoordinator(engine, config.MaintenanceConfig{}, logger.NewNopLogger())

	unlock := m.AcquireOperationLock()

	done := make(chan error, 1)
	go func() { done <- m.RunMaintenance(context.Background()) }()

	// maintenance waits for the in-flight operation
	select {
	case <-done:
		t.Fatal("maintenance ran while an operation held the lock")
	case <-time.After(50 * time.Millisecond):
	}
	require.Zero(t, engine.compactions.Load())

	unlock()
	require.NoError(t, <-done)
	require.Equal(t, int32(1), engine.compactions.Load())
}

func TestMaintenanceCoordinator_StartStop(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	m := newMaintenanceCoordinator(engine, config.MaintenanceConfig{
		Enabled:          true,
		CompactOnStartup: true,
		CheckInterval:    common.NewDuration(10 * time.Millisecond),
	}, logger.NewNopLogger())

	require.NoError(t, m.Start(context.Background()))
	require.Eventually(t, func() bool {
		return engine.compactions.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	stopped := engine.compactions.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, stopped, engine.compactions.Load())

	// stopping twice is harmless
	require.NoError(t, m.Stop())
}

func TestMaintenanceCoordinator_Disabled(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	m := newMaintenanceCoordinator(engine, config.MaintenanceConfig{Enabled: false}, logger.NewNopLogger())

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop())
	require.Zero(t, engine.compactions.Load())
}

func TestMaintenance_Backends(t *testing.T) {
	t.Parallel()

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			cfg := config.StoreConfig{
				Backend:     backend,
				Maintenance: &config.MaintenanceConfig{},
			}
			switch backend {
			case config.StoreBackendBadger:
				cfg.Path = filepath.Join(t.TempDir(), "badger")
			case config.StoreBackendSQLite:
				cfg.Path = filepath.Join(t.TempDir(), "store.sqlite")
			}
			cfg.ApplyDefaults()

			s, err := Open(cfg, logger.NewNopLogger())
			require.NoError(t, err)
			defer s.Close()

			ctx := context.Background()
			ns, err := s.Namespace("compact")
			require.NoError(t, err)

			b := ns.NewBatch()
			for i := range 500 {
				require.NoError(t, b.Put([]byte(fmt.Sprintf("key-%04d", i)), []byte("value")))
			}
			require.NoError(t, b.Write(ctx))

			b = ns.NewBatch()
			for i := range 400 {
				require.NoError(t, b.Delete([]byte(fmt.Sprintf("key-%04d", i))))
			}
			require.NoError(t, b.Write(ctx))

			require.NoError(t, s.Maintenance().RunMaintenance(ctx))
			require.Equal(t, uint64(1), s.Maintenance().LastRun().Runs)

			v, err := ns.Get(ctx, []byte("key-0499"))
			require.NoError(t, err)
			require.Equal(t, []byte("value"), v)
		})
	}
}

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goran-ethernal/BlockIndexor/internal/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/config"
)

// Maintenance compacts the store in the background. Batch commits hold an
// operation lock so compaction never overlaps a write.
type Maintenance interface {
	Start(ctx context.Context) error
	// Stop cancels the background loop and waits for it.
	Stop() error
	// AcquireOperationLock blocks while a compaction runs and returns the release func.
	AcquireOperationLock() func()
	// RunMaintenance compacts once, waiting for in-flight operations first.
	RunMaintenance(ctx context.Context) error
	// LastRun describes the most recent compaction.
	LastRun() MaintenanceReport
}

// MaintenanceReport describes one compaction and counts all of them.
type MaintenanceReport struct {
	Runs       uint64
	At         time.Time
	Duration   time.Duration
	SizeBefore int64
	SizeAfter  int64
	Err        error
}

// Reclaimed returns the bytes freed by the run, zero when the store grew.
func (r MaintenanceReport) Reclaimed() uint64 {
	if r.SizeBefore <= r.SizeAfter {
		return 0
	}
	return uint64(r.SizeBefore - r.SizeAfter)
}

// NoOpMaintenance is used by the memory backend and when maintenance is not configured.
type NoOpMaintenance struct{}

func (*NoOpMaintenance) Start(context.Context) error          { return nil }
func (*NoOpMaintenance) Stop() error                          { return nil }
func (*NoOpMaintenance) RunMaintenance(context.Context) error { return nil }
func (*NoOpMaintenance) AcquireOperationLock() func()         { return func() {} }
func (*NoOpMaintenance) LastRun() MaintenanceReport           { return MaintenanceReport{} }

// MaintenanceCoordinator serialises compactions against batch commits:
// commits share opLock, compaction takes it exclusively.
type MaintenanceCoordinator struct {
	engine engine
	cfg    config.MaintenanceConfig
	log    *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	reportMu sync.Mutex
	report   MaintenanceReport
}

// NewMaintenanceCoordinator returns a NoOpMaintenance when cfg is nil.
func NewMaintenanceCoordinator(e engine, cfg *config.MaintenanceConfig, log *logger.Logger) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}
	return newMaintenanceCoordinator(e, *cfg, log)
}

func newMaintenanceCoordinator(e engine, cfg config.MaintenanceConfig, log *logger.Logger) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		engine: e,
		cfg:    cfg,
		log:    log.WithComponent(common.ComponentMaintenance),
	}
}

// Start optionally compacts once and then every CheckInterval until Stop or ctx ends.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.cfg.Enabled {
		m.log.Info("Background maintenance is disabled")
		return nil
	}

	ctx, m.cancel = context.WithCancel(ctx)

	if m.cfg.CompactOnStartup {
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnf("Startup maintenance failed: %v", err)
		}
	}

	m.wg.Add(1)
	go m.loop(ctx, m.cfg.CheckInterval.Duration)

	m.log.Infow("Background maintenance started",
		"backend", m.engine.name(), "interval", m.cfg.CheckInterval.Duration)
	return nil
}

func (m *MaintenanceCoordinator) loop(ctx context.Context, every time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnf("Periodic maintenance failed: %v", err)
			}
		}
	}
}

func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.cancel = nil
	m.log.Info("Background maintenance stopped")
	return nil
}

func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	MaintenanceRunsInc()

	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	report := m.compact(ctx)
	m.record(report)

	MaintenanceDurationLog(report.Duration)
	MaintenanceLastRunLog()

	if report.Err != nil {
		MaintenanceErrorInc()
		m.log.Warnw("Maintenance failed", "duration", report.Duration, "error", report.Err)
		return report.Err
	}

	MaintenanceSuccessInc()
	StoreSizeLog(m.engine.name(), report.SizeAfter)
	if freed := report.Reclaimed(); freed > 0 {
		MaintenanceSpaceReclaimedLog(freed)
	}
	m.log.Infow("Maintenance completed",
		"duration", report.Duration, "reclaimed_mb", common.BytesToMB(report.Reclaimed()))

	return nil
}

// compact runs the engine compaction; the caller holds opLock exclusively.
func (m *MaintenanceCoordinator) compact(ctx context.Context) MaintenanceReport {
	start := time.Now()
	report := MaintenanceReport{At: start.UTC()}

	before, err := m.engine.diskSize()
	if err != nil {
		m.log.Warnf("Failed to read store size: %v", err)
	}
	report.SizeBefore = before

	if err := m.engine.compact(ctx); err != nil {
		report.Err = fmt.Errorf("compaction failed: %w", err)
	}

	after, err := m.engine.diskSize()
	if err != nil {
		m.log.Warnf("Failed to read store size: %v", err)
	}
	report.SizeAfter = after
	report.Duration = time.Since(start)

	return report
}

func (m *MaintenanceCoordinator) record(r MaintenanceReport) {
	m.reportMu.Lock()
	defer m.reportMu.Unlock()

	r.Runs = m.report.Runs + 1
	m.report = r
}

func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

func (m *MaintenanceCoordinator) LastRun() MaintenanceReport {
	m.reportMu.Lock()
	defer m.reportMu.Unlock()
	return m.report
}

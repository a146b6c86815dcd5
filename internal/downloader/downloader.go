package downloader

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
	pkgdownloader "github.com/goran-ethernal/BlockIndexor/pkg/downloader"
	pkgreorg "github.com/goran-ethernal/BlockIndexor/pkg/reorg"
)

var _ pkgdownloader.Downloader = (*Downloader)(nil)

// Downloader follows the head of a chain.Reader and delivers connect and disconnect events
// to its listener in chain order. Recently delivered blocks are kept in a window; a reorg
// whose fork point is inside the window is rewound from it, anything older goes through a
// full reconcile of the listener.
type Downloader struct {
	cfg      config.ChainConfig
	reader   chain.Reader
	listener pkgdownloader.Listener
	window   *window
	log      *logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new Downloader.
func New(
	cfg config.ChainConfig,
	reader chain.Reader,
	listener pkgdownloader.Listener,
	log *logger.Logger,
) (*Downloader, error) {
	if reader == nil {
		return nil, errors.New("chain reader is required")
	}
	if listener == nil {
		return nil, errors.New("listener is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	cfg.ApplyDefaults()

	d := &Downloader{
		cfg:      cfg,
		reader:   reader,
		listener: listener,
		window:   newWindow(cfg.MaxReorgDepth),
		log:      log.WithComponent(internalcommon.ComponentDownloader),
		done:     make(chan struct{}),
	}

	d.log.Infow("downloader initialized",
		"poll_interval", cfg.PollInterval.String(),
		"max_reorg_depth", cfg.MaxReorgDepth,
	)

	return d, nil
}

// Download reconciles the listener with the chain and then polls the head every
// poll interval. It returns when ctx is cancelled, Close is called or a reorg deeper
// than the allowed depth is found. Other failures are logged and recovered by
// reconciling the listener again.
func (d *Downloader) Download(ctx context.Context) error {
	d.log.Info("starting download process")

	if err := d.resync(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(d.cfg.PollInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("download cancelled")
			return ctx.Err()
		case <-d.done:
			d.log.Info("download stopped")
			return nil
		case <-ticker.C:
		}

		err := d.Poll(ctx)
		metrics.ComponentHealthSet(internalcommon.ComponentDownloader, err == nil)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, pkgreorg.ErrReorgDepthExceeded) {
			d.log.Errorw("reorg too deep to follow", "error", err)
			return err
		}

		metrics.ErrorsInc(internalcommon.ComponentDownloader, "warning")
		d.log.Warnw("poll failed, reconciling indexers", "error", err)

		if err := d.resync(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, pkgreorg.ErrReorgDepthExceeded) {
				return err
			}
			metrics.ErrorsInc(internalcommon.ComponentDownloader, "error")
			d.log.Errorw("failed to reconcile indexers, retrying on next poll", "error", err)
		}
	}
}

// Poll delivers the blocks between the last delivered block and the current head.
// Blocks that left the canonical chain are disconnected first.
func (d *Downloader) Poll(ctx context.Context) error {
	if d.window.len() == 0 {
		return d.resync(ctx)
	}

	pollsInc()

	head, err := d.reader.Tip(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain head: %w", err)
	}
	headHeightSet(head.Height)

	if _, err := d.rewind(ctx); err != nil {
		return err
	}

	for last := d.window.tip(); last.Height < head.Height; last = d.window.tip() {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := d.reader.EntryByHeight(ctx, last.Height+1)
		if err != nil {
			return fmt.Errorf("failed to get block %d: %w", last.Height+1, err)
		}

		if entry.PrevHash != last.Hash {
			n, err := d.rewind(ctx)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("block %s does not extend %s", entry, last)
			}
			continue
		}

		if err := d.connect(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

func (d *Downloader) connect(ctx context.Context, entry *chain.Entry) error {
	block, view, err := d.reader.BlockByHash(ctx, entry.Hash)
	if err != nil {
		return fmt.Errorf("failed to get block %s: %w", entry, err)
	}
	if err := d.listener.ConnectBlock(ctx, entry, block, view); err != nil {
		return err
	}

	d.window.push(entry)
	d.log.Debugw("block connected", "block", entry.String())

	return nil
}

// rewind disconnects, top-down, the window blocks that are no longer canonical and
// returns how many blocks were replaced.
func (d *Downloader) rewind(ctx context.Context) (int, error) {
	fork := -1
	for i := d.window.len() - 1; i >= 0; i-- {
		entry := d.window.at(i)

		canonical, err := d.reader.EntryByHeight(ctx, entry.Height)
		if err != nil && !errors.Is(err, chain.ErrNotFound) {
			return 0, fmt.Errorf("failed to get block %d: %w", entry.Height, err)
		}
		if err == nil && canonical.Hash == entry.Hash {
			fork = i
			break
		}
	}

	stale := d.window.len() - 1 - fork
	if stale == 0 {
		return 0, nil
	}

	if fork < 0 {
		top := d.window.tip()
		if d.window.full() {
			reorg.ReorgDepthExceededInc()
			return 0, pkgreorg.NewReorgDepthExceededError(top.Height, top.Hash, d.cfg.MaxReorgDepth)
		}

		d.log.Warnw("fork point below recent blocks, reconciling indexers",
			"block", top.String(),
			"recent_blocks", d.window.len(),
		)
		return stale, d.resync(ctx)
	}

	forkHeight := d.window.at(fork).Height
	d.log.Warnw("reorg detected, disconnecting stale blocks",
		"fork_height", forkHeight,
		"depth", stale,
	)
	reorg.ReorgDetectedLog(stale, forkHeight)

	for d.window.len() > fork+1 {
		entry := d.window.tip()

		block, view, err := d.reader.BlockByHash(ctx, entry.Hash)
		if err != nil {
			return 0, fmt.Errorf("failed to get stale block %s: %w", entry, err)
		}
		if err := d.listener.DisconnectBlock(ctx, entry, block, view); err != nil {
			return 0, err
		}

		d.window.pop()
		d.log.Debugw("block disconnected", "block", entry.String())
	}

	return stale, nil
}

// resync reconciles the listener with the chain and restarts the window at the tip it reached.
func (d *Downloader) resync(ctx context.Context) error {
	d.window.clear()
	resyncsInc()

	tip, err := d.listener.Sync(ctx, d.reader)
	if err != nil {
		return fmt.Errorf("failed to reconcile indexers: %w", err)
	}

	d.window.push(tip)
	headHeightSet(tip.Height)
	d.log.Infow("indexers reconciled", "tip", tip.String())

	return nil
}

// Close stops a running Download.
func (d *Downloader) Close() error {
	d.closeOnce.Do(func() {
		d.log.Info("closing downloader")
		close(d.done)
	})
	return nil
}

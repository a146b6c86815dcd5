package downloader

import (
	"context"

	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
)

// Downloader follows the chain head and streams block events to its listener.
type Downloader interface {
	// Download reconciles the listener with the chain and then follows the head.
	// It continues until the context is cancelled or an unrecoverable error occurs.
	Download(ctx context.Context) error

	// Close gracefully stops the downloader, ensuring all resources are cleaned up.
	Close() error
}

// Listener receives the events of a Downloader. Sync brings every indexer behind it to the
// canonical chain of reader and returns the tip it reached; the downloader continues above it.
type Listener interface {
	chain.Listener

	Sync(ctx context.Context, reader chain.Reader) (*chain.Entry, error)
}

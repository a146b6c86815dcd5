// Package reorg finds where an indexed lineage rejoins the canonical chain.
package reorg

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/BlockIndexor/internal/logger"
	"github.com/goran-ethernal/BlockIndexor/pkg/chain"
	"github.com/goran-ethernal/BlockIndexor/pkg/reorg"
)

// ForkPoint describes how far an indexer has to rewind to rejoin the canonical chain.
type ForkPoint struct {
	// Height and Hash identify the highest indexed block that is still canonical.
	// They are meaningless when Fresh is set.
	Height uint32
	Hash   common.Hash

	// Fresh is set when no indexed block is canonical anymore.
	Fresh bool

	// Stale holds the indexed blocks that left the canonical chain, highest first.
	Stale []*chain.Entry
}

// Depth is the number of blocks to disconnect.
func (f *ForkPoint) Depth() int {
	return len(f.Stale)
}

// Detector walks an indexed lineage back along parent hashes until it meets the
// canonical chain of reader.
type Detector struct {
	reader   chain.Reader
	maxDepth uint32
	log      *logger.Logger
}

// NewDetector creates a Detector that gives up after maxDepth stale blocks.
func NewDetector(reader chain.Reader, maxDepth uint32, log *logger.Logger) *Detector {
	return &Detector{
		reader:   reader,
		maxDepth: maxDepth,
		log:      log,
	}
}

// FindForkPoint starts at the indexed block (height, hash) and returns the blocks to
// disconnect. floor is the lowest indexed height: once the block at floor is stale the
// result is Fresh.
func (d *Detector) FindForkPoint(
	ctx context.Context,
	height uint32, hash common.Hash,
	floor uint32,
) (*ForkPoint, error) {
	fp := &ForkPoint{}
	startHeight, startHash := height, hash

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		canonical, err := d.reader.EntryByHeight(ctx, height)
		if err != nil && !errors.Is(err, chain.ErrNotFound) {
			return nil, fmt.Errorf("failed to get canonical block %d: %w", height, err)
		}
		if err == nil && canonical.Hash == hash {
			fp.Height, fp.Hash = height, hash
			break
		}

		if uint32(len(fp.Stale)) >= d.maxDepth {
			ReorgDepthExceededInc()
			d.log.Errorf("no fork point within %d blocks: from_block=%d from_hash=%s",
				d.maxDepth, startHeight, startHash.Hex())
			return nil, reorg.NewReorgDepthExceededError(startHeight, startHash, d.maxDepth)
		}

		stale, err := d.reader.EntryByHash(ctx, hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get indexed block %d (%s): %w", height, hash.Hex(), err)
		}
		if stale.Height != height {
			return nil, fmt.Errorf("indexed block %s is at height %d, expected %d",
				hash.Hex(), stale.Height, height)
		}
		fp.Stale = append(fp.Stale, stale)

		if height <= floor {
			fp.Fresh = true
			break
		}

		height--
		hash = stale.PrevHash
	}

	if fp.Depth() > 0 {
		forkHeight := fp.Height
		if fp.Fresh {
			forkHeight = floor
		}
		ReorgDetectedLog(fp.Depth(), forkHeight)
		d.log.Warnf("reorg detected: from_block=%d depth=%d fork_block=%d fresh=%t",
			startHeight, fp.Depth(), fp.Height, fp.Fresh)
	}

	return fp, nil
}

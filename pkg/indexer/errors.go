package indexer

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrSyncMismatch is matched by every SyncMismatchError.
var ErrSyncMismatch = errors.New("event does not follow sync state")

// SyncMismatchError is returned when a connect or disconnect event does not apply to the
// indexer's current sync state: it is out of order, leaves a gap, or has the wrong parent.
type SyncMismatchError struct {
	Indexer     string
	Event       string
	Height      uint32
	Hash        common.Hash
	SyncHeight  uint32
	SyncHash    common.Hash
	Initialized bool
}

// NewSyncMismatchError creates a new SyncMismatchError.
func NewSyncMismatchError(
	indexer, event string,
	height uint32, hash common.Hash,
	state SyncState, initialized bool,
) *SyncMismatchError {
	return &SyncMismatchError{
		Indexer:     indexer,
		Event:       event,
		Height:      height,
		Hash:        hash,
		SyncHeight:  state.Height,
		SyncHash:    state.Hash,
		Initialized: initialized,
	}
}

func (e *SyncMismatchError) Error() string {
	if !e.Initialized {
		return fmt.Sprintf("indexer %s: cannot %s block %d (%s): indexer has no sync state",
			e.Indexer, e.Event, e.Height, e.Hash.Hex())
	}
	return fmt.Sprintf("indexer %s: cannot %s block %d (%s) at sync state %d (%s)",
		e.Indexer, e.Event, e.Height, e.Hash.Hex(), e.SyncHeight, e.SyncHash.Hex())
}

func (e *SyncMismatchError) Unwrap() error {
	return ErrSyncMismatch
}

// Package reorg holds the errors shared by fork point discovery and the chain follower.
package reorg

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrReorgDepthExceeded is matched by every ReorgDepthExceededError.
var ErrReorgDepthExceeded = errors.New("reorg depth exceeded")

// ReorgDepthExceededError is returned when no common ancestor with the canonical chain is
// found within the allowed depth. The index cannot be rewound and must be rebuilt.
type ReorgDepthExceededError struct {
	Height   uint32
	Hash     common.Hash
	MaxDepth uint32
}

// NewReorgDepthExceededError creates a new ReorgDepthExceededError for a search that
// started at (height, hash).
func NewReorgDepthExceededError(height uint32, hash common.Hash, maxDepth uint32) error {
	return &ReorgDepthExceededError{
		Height:   height,
		Hash:     hash,
		MaxDepth: maxDepth,
	}
}

func (e *ReorgDepthExceededError) Error() string {
	return fmt.Sprintf("no fork point within %d blocks of %d (%s)", e.MaxDepth, e.Height, e.Hash.Hex())
}

func (e *ReorgDepthExceededError) Unwrap() error {
	return ErrReorgDepthExceeded
}

package indexer

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/BlockIndexor/pkg/keys"
)

// SyncTag is the key tag reserved for the sync state record of every indexer namespace.
const SyncTag byte = 'R'

// SyncKey is the zero-field layout holding the sync state.
var SyncKey = keys.MustLayout("sync", SyncTag)

const syncStateSize = 4 + common.HashLength

// SyncStateKey returns the store key of the sync state record.
func SyncStateKey() []byte {
	key, err := SyncKey.Encode()
	if err != nil {
		panic(err)
	}
	return key
}

// SyncState is the last block an indexer has applied.
type SyncState struct {
	Height uint32      `json:"height"`
	Hash   common.Hash `json:"hash"`
}

// Bytes encodes the state as height (4 bytes, big-endian) followed by the block hash.
func (s SyncState) Bytes() []byte {
	b := make([]byte, syncStateSize)
	binary.BigEndian.PutUint32(b, s.Height)
	copy(b[4:], s.Hash[:])
	return b
}

// DecodeSyncState is the inverse of SyncState.Bytes.
func DecodeSyncState(b []byte) (SyncState, error) {
	if len(b) != syncStateSize {
		return SyncState{}, fmt.Errorf("sync state: expected %d bytes, got %d", syncStateSize, len(b))
	}

	return SyncState{
		Height: binary.BigEndian.Uint32(b),
		Hash:   common.BytesToHash(b[4:]),
	}, nil
}

func (s SyncState) String() string {
	return fmt.Sprintf("%d/%s", s.Height, s.Hash.Hex())
}

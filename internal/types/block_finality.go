package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// BlockFinality selects which head of the chain the indexer follows.
type BlockFinality string

const (
	FinalityFinalized BlockFinality = "finalized"
	FinalitySafe      BlockFinality = "safe"
	FinalityLatest    BlockFinality = "latest"
)

var finalityTags = map[BlockFinality]rpc.BlockNumber{
	FinalityFinalized: rpc.FinalizedBlockNumber,
	FinalitySafe:      rpc.SafeBlockNumber,
	FinalityLatest:    rpc.LatestBlockNumber,
}

func (f BlockFinality) String() string {
	return string(f)
}

// IsValid reports whether f is one of the known finality modes.
func (f BlockFinality) IsValid() bool {
	_, ok := finalityTags[f]
	return ok
}

// BlockNumber returns the JSON-RPC block tag for f. Unknown values map to latest.
func (f BlockFinality) BlockNumber() rpc.BlockNumber {
	if tag, ok := finalityTags[f]; ok {
		return tag
	}
	return rpc.LatestBlockNumber
}

// Reorgable reports whether blocks below the followed head can still be replaced.
// Only a finalized head is guaranteed to stay put.
func (f BlockFinality) Reorgable() bool {
	return f != FinalityFinalized
}

// ParseBlockFinality accepts a finality name regardless of case and surrounding space.
func ParseBlockFinality(s string) (BlockFinality, error) {
	f := BlockFinality(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid block finality: %q (must be one of: finalized, safe, latest)", s)
	}
	return f, nil
}

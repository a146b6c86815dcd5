package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/rpc"
)

// IsNotFoundError reports whether err means the node does not know the requested block.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ethereum.NotFound) {
		return true
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		msg := strings.ToLower(rpcErr.Error())
		return strings.Contains(msg, "not found") || strings.Contains(msg, "unknown block")
	}

	return false
}

// errorType labels err for the RPC error metric.
func errorType(err error) string {
	switch {
	case IsNotFoundError(err):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		if reason := transientReason(err); reason != "" {
			return reason
		}
		return "other"
	}
}

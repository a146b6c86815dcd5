package rpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/require"
)

type mockRPCError struct {
	code int
	msg  string
}

func (m *mockRPCError) Error() string  { return m.msg }
func (m *mockRPCError) ErrorCode() int { return m.code }

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "ethereum.NotFound", err: ethereum.NotFound, want: true},
		{name: "wrapped NotFound", err: fmt.Errorf("header 5: %w", ethereum.NotFound), want: true},
		{name: "rpc error header not found", err: &mockRPCError{code: -32000, msg: "header not found"}, want: true},
		{name: "rpc error unknown block", err: &mockRPCError{code: -39001, msg: "Unknown block"}, want: true},
		{name: "rpc error other", err: &mockRPCError{code: -32000, msg: "execution reverted"}, want: false},
		{name: "plain error", err: errors.New("block not found"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestErrorType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "not_found", errorType(ethereum.NotFound))
	require.Equal(t, "cancelled", errorType(fmt.Errorf("call: %w", context.Canceled)))
	require.Equal(t, "unavailable", errorType(errors.New("503 service unavailable")))
	require.Equal(t, "other", errorType(errors.New("invalid argument")))

	// not found is never retried
	require.False(t, retryableError(&mockRPCError{code: -32000, msg: "header not found: timeout"}))
}

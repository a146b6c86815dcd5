package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

func TestParseBlockFinality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     string
		want      BlockFinality
		tag       rpc.BlockNumber
		reorgable bool
		wantErr   bool
	}{
		{input: "finalized", want: FinalityFinalized, tag: rpc.FinalizedBlockNumber},
		{input: "safe", want: FinalitySafe, tag: rpc.SafeBlockNumber, reorgable: true},
		{input: "latest", want: FinalityLatest, tag: rpc.LatestBlockNumber, reorgable: true},
		{input: " Latest\n", want: FinalityLatest, tag: rpc.LatestBlockNumber, reorgable: true},
		{input: "FINALIZED", want: FinalityFinalized, tag: rpc.FinalizedBlockNumber},
		{input: "pending", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBlockFinality(tt.input)
			if tt.wantErr {
				require.ErrorContains(t, err, "invalid block finality")
				require.Empty(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.True(t, got.IsValid())
			require.Equal(t, tt.tag, got.BlockNumber())
			require.Equal(t, tt.reorgable, got.Reorgable())
			require.Equal(t, string(tt.want), got.String())
		})
	}
}

func TestBlockFinality_Unknown(t *testing.T) {
	t.Parallel()

	f := BlockFinality("pending")
	require.False(t, f.IsValid())
	require.Equal(t, rpc.LatestBlockNumber, f.BlockNumber())
	require.True(t, f.Reorgable())
}

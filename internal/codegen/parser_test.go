package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayoutSignature(t *testing.T) {
	tests := []struct {
		name      string
		signature string
		want      *LayoutSignature
		wantErr   string
	}{
		{
			name:      "timestamp layout",
			signature: "Timestamp[b](uint32 time, hash256 hash)",
			want: &LayoutSignature{
				Raw:  "Timestamp[b](uint32 time, hash256 hash)",
				Name: "Timestamp",
				Tag:  'b',
				Fields: []LayoutField{
					{Name: "time", Type: "uint32"},
					{Name: "hash", Type: "hash256"},
				},
			},
		},
		{
			name:      "surrounding and inner whitespace",
			signature: "  Owner [ o ] ( hash160   owner ,uint64 height )  ",
			want: &LayoutSignature{
				Raw:  "Owner [ o ] ( hash160   owner ,uint64 height )",
				Name: "Owner",
				Tag:  'o',
				Fields: []LayoutField{
					{Name: "owner", Type: "hash160"},
					{Name: "height", Type: "uint64"},
				},
			},
		},
		{
			name:      "digit tag",
			signature: "Small[7](uint8 n)",
			want: &LayoutSignature{
				Raw:    "Small[7](uint8 n)",
				Name:   "Small",
				Tag:    '7',
				Fields: []LayoutField{{Name: "n", Type: "uint8"}},
			},
		},
		{
			name:      "empty",
			signature: "   ",
			wantErr:   "empty layout",
		},
		{
			name:      "missing tag",
			signature: "Timestamp(uint32 time)",
			wantErr:   "missing key tag",
		},
		{
			name:      "lowercase name",
			signature: "timestamp[b](uint32 time)",
			wantErr:   "invalid layout name",
		},
		{
			name:      "multi character tag",
			signature: "Timestamp[bb](uint32 time)",
			wantErr:   "single character",
		},
		{
			name:      "punctuation tag",
			signature: "Timestamp[*](uint32 time)",
			wantErr:   "letter or digit",
		},
		{
			name:      "reserved sync tag",
			signature: "Timestamp[R](uint32 time)",
			wantErr:   "reserved",
		},
		{
			name:      "missing parentheses",
			signature: "Timestamp[b] uint32 time",
			wantErr:   "parentheses",
		},
		{
			name:      "no fields",
			signature: "Timestamp[b]()",
			wantErr:   "at least one field",
		},
		{
			name:      "unsupported type",
			signature: "Timestamp[b](uint256 time)",
			wantErr:   "unsupported field type",
		},
		{
			name:      "type without name",
			signature: "Timestamp[b](uint32)",
			wantErr:   "expected 'type name'",
		},
		{
			name:      "invalid field name",
			signature: "Timestamp[b](uint32 Time)",
			wantErr:   "invalid field name",
		},
		{
			name:      "duplicate field",
			signature: "Timestamp[b](uint32 time, uint64 time)",
			wantErr:   "duplicate field name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLayoutSignature(tt.signature)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutSignature_Helpers(t *testing.T) {
	sig, err := ParseLayoutSignature("Lineage[l](uint32 height, hash256 prev_hash, hash160 miner)")
	require.NoError(t, err)

	assert.Equal(t, "Lineage[l](uint32,hash256,hash160)", sig.CanonicalSignature())
	assert.Equal(t, "'l'", sig.TagLiteral())
	assert.Equal(t, 1+4+32+20, sig.KeySize())
	assert.Equal(t, "'l' ‖ height (4 bytes) ‖ prev_hash (32 bytes) ‖ miner (20 bytes)", sig.Describe())
	assert.Equal(t, []LayoutField{{Name: "miner", Type: "hash160"}}, sig.UnderivedFields())
}

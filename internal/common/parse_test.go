package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUint64orHex(t *testing.T) {
	tests := []struct {
		name    string
		input   *string
		want    uint64
		wantErr bool
	}{
		{"nil", nil, 0, false},
		{"decimal", ptr("1234"), 1234, false},
		{"hex", ptr("0x7dfd25"), 0x7dfd25, false},
		{"zero hex", ptr("0x0"), 0, false},
		{"garbage", ptr("notanumber"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUint64orHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func ptr(s string) *string { return &s }

func TestToLowerWithTrim(t *testing.T) {
	require.Equal(t, "cosmos", ToLowerWithTrim("  Cosmos "))
}

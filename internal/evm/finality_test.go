package evm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockFinality(t *testing.T) {
	cases := []struct {
		input    string
		expected BlockFinality
		wantErr  bool
	}{
		{"", FinalityFinalized, false},
		{"finalized", FinalityFinalized, false},
		{"safe", FinalitySafe, false},
		{"latest", FinalityLatest, false},
		{"pending", "", true},
		{"Finalized", "", true},
	}

	for _, c := range cases {
		t.Run("input="+c.input, func(t *testing.T) {
			got, err := ParseBlockFinality(c.input)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expected, got)
		})
	}
}

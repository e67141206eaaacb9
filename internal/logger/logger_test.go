package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		wantErr     bool
	}{
		{"debug development", "debug", true, false},
		{"info production", "info", false, false},
		{"warn", "warn", false, false},
		{"error", "error", true, false},
		{"invalid level", "loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestChildLoggers(t *testing.T) {
	log := NewNopLogger()

	require.NotNil(t, log.WithComponent("indexer"))
	require.NotNil(t, log.WithChain("neutron"))

	// children must not share the receiver
	require.NotSame(t, log, log.WithChain("osmosis"))
}

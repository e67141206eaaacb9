package cosmos

import (
	"testing"

	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func validConnection() config.ConnectionConfig {
	return config.ConnectionConfig{
		RPCURL:   "http://localhost:26657",
		QueryURL: "http://localhost:1317",
		ChainID:  "neutron-1",
		Prefix:   "neutron",
	}
}

func TestNewConnectionConf(t *testing.T) {
	conf, err := NewConnectionConf(validConnection())
	require.NoError(t, err)

	require.Equal(t, "http://localhost:26657", conf.RPCURL())
	require.Equal(t, "http://localhost:1317", conf.QueryURL())
	require.Equal(t, "neutron-1", conf.ChainID())
	require.Equal(t, "neutron", conf.Prefix())
}

func TestNewConnectionConfMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.ConnectionConfig)
		wantErr error
	}{
		{"missing rpc url", func(c *config.ConnectionConfig) { c.RPCURL = "" }, ErrMissingRPCURL},
		{"missing query url", func(c *config.ConnectionConfig) { c.QueryURL = "" }, ErrMissingQueryURL},
		{"missing chain id", func(c *config.ConnectionConfig) { c.ChainID = "" }, ErrMissingChainID},
		{"missing prefix", func(c *config.ConnectionConfig) { c.Prefix = "" }, ErrMissingPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validConnection()
			tt.mutate(&raw)

			_, err := NewConnectionConf(raw)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewConnectionConfInvalidURL(t *testing.T) {
	raw := validConnection()
	raw.RPCURL = "not a url"

	_, err := NewConnectionConf(raw)
	require.Error(t, err)

	var urlErr *InvalidURLError
	require.ErrorAs(t, err, &urlErr)
	require.Equal(t, "rpc_url", urlErr.Field)

	raw = validConnection()
	raw.QueryURL = "://missing-scheme"
	_, err = NewConnectionConf(raw)
	require.ErrorAs(t, err, &urlErr)
	require.Equal(t, "query_url", urlErr.Field)
}

package chains

import (
	"context"
	"testing"

	"github.com/goran-ethernal/MailboxIndexor/internal/cosmos"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/stretchr/testify/require"
)

func cosmosChainConfig() config.ChainConfig {
	return config.ChainConfig{
		Name:     "neutron",
		Domain:   1853125230,
		Protocol: config.ProtocolCosmos,
		Mailbox:  "0x00000000000000000000000000000000000000000000000000000000000000c1",
		Connection: config.ConnectionConfig{
			RPCURL:   "http://localhost:26657",
			QueryURL: "http://localhost:1317",
			ChainID:  "neutron-1",
			Prefix:   "neutron",
		},
	}
}

func evmChainConfig() config.ChainConfig {
	return config.ChainConfig{
		Name:     "sepolia",
		Domain:   11155111,
		Protocol: config.ProtocolEthereum,
		Mailbox:  "0x00000000000000000000000000000000000000000000000000000000000000c1",
		Connection: config.ConnectionConfig{
			RPCURL: "http://localhost:8545",
		},
		Finality: "safe",
	}
}

func TestBuildCosmosChain(t *testing.T) {
	chain, err := Build(context.Background(), cosmosChainConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	defer chain.Close()

	require.Equal(t, "neutron", chain.Name)
	require.Equal(t, core.Domain(1853125230), chain.Domain)
	require.NotNil(t, chain.Mailbox)
	require.NotNil(t, chain.Dispatches)
	require.NotNil(t, chain.Deliveries)
	require.NotNil(t, chain.ParseDispatch)
	require.NotNil(t, chain.ParseDelivery)
}

func TestBuildEvmChain(t *testing.T) {
	chain, err := Build(context.Background(), evmChainConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	defer chain.Close()

	require.Equal(t, "sepolia", chain.Name)
	require.Equal(t, core.Domain(11155111), chain.Domain)
	require.NotNil(t, chain.Mailbox)
	require.NotNil(t, chain.Dispatches)
	require.NotNil(t, chain.Deliveries)
}

func TestBuildRejectsBadConfig(t *testing.T) {
	t.Run("invalid mailbox hex", func(t *testing.T) {
		cfg := cosmosChainConfig()
		cfg.Mailbox = "not-hex"
		_, err := Build(context.Background(), cfg, logger.NewNopLogger())
		require.ErrorContains(t, err, "invalid mailbox address")
	})

	t.Run("unknown protocol", func(t *testing.T) {
		cfg := cosmosChainConfig()
		cfg.Protocol = "solana"
		_, err := Build(context.Background(), cfg, logger.NewNopLogger())
		require.ErrorContains(t, err, "unknown protocol")
	})

	t.Run("cosmos chain missing prefix", func(t *testing.T) {
		cfg := cosmosChainConfig()
		cfg.Connection.Prefix = ""
		_, err := Build(context.Background(), cfg, logger.NewNopLogger())
		require.ErrorIs(t, err, cosmos.ErrMissingPrefix)
	})

	t.Run("evm chain missing rpc url", func(t *testing.T) {
		cfg := evmChainConfig()
		cfg.Connection.RPCURL = ""
		_, err := Build(context.Background(), cfg, logger.NewNopLogger())
		require.ErrorIs(t, err, cosmos.ErrMissingRPCURL)
	})

	t.Run("evm chain invalid finality", func(t *testing.T) {
		cfg := evmChainConfig()
		cfg.Finality = "pending"
		_, err := Build(context.Background(), cfg, logger.NewNopLogger())
		require.ErrorContains(t, err, "invalid block finality")
	})
}

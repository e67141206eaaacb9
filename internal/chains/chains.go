// Package chains assembles the per-chain reader set (mailbox plus dispatch
// and delivery indexers) behind the protocol interfaces, hiding which chain
// family a configured chain belongs to.
package chains

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/MailboxIndexor/internal/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/cosmos"
	"github.com/goran-ethernal/MailboxIndexor/internal/evm"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/goran-ethernal/MailboxIndexor/pkg/events"
)

// Chain bundles every reader of one observed chain.
type Chain struct {
	Name   string
	Domain core.Domain

	Mailbox    core.Mailbox
	Dispatches core.Indexer[core.Message]
	Deliveries core.Indexer[events.Delivery]

	ParseDispatch core.LogParser[core.Message]
	ParseDelivery core.LogParser[events.Delivery]

	closeFn func()
}

// Close releases the chain's client connections.
func (c *Chain) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Build constructs the reader set for one configured chain.
func Build(ctx context.Context, cfg config.ChainConfig, log *logger.Logger) (*Chain, error) {
	mailboxAddr, err := core.AddressFromHex(cfg.Mailbox)
	if err != nil {
		return nil, fmt.Errorf("chain %q: invalid mailbox address: %w", cfg.Name, err)
	}

	switch common.ToLowerWithTrim(cfg.Protocol) {
	case config.ProtocolCosmos:
		return buildCosmos(cfg, mailboxAddr, log)
	case config.ProtocolEthereum:
		return buildEvm(ctx, cfg, mailboxAddr, log)
	default:
		return nil, fmt.Errorf("chain %q: unknown protocol %q", cfg.Name, cfg.Protocol)
	}
}

func buildCosmos(cfg config.ChainConfig, mailbox core.Address, log *logger.Logger) (*Chain, error) {
	conn, err := cosmos.NewConnectionConf(cfg.Connection)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	client, err := cosmos.NewTendermintClient(conn)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	mb, err := cosmos.NewMailbox(conn, client, cfg.Name, core.Domain(cfg.Domain), mailbox, log)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	dispatches, err := cosmos.NewIndexer[core.Message](
		conn, client, cfg.Name, mailbox, events.SubtypeDispatch, log)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	deliveries, err := cosmos.NewIndexer[events.Delivery](
		conn, client, cfg.Name, mailbox, events.SubtypeProcess, log)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	return &Chain{
		Name:          cfg.Name,
		Domain:        core.Domain(cfg.Domain),
		Mailbox:       mb,
		Dispatches:    dispatches,
		Deliveries:    deliveries,
		ParseDispatch: events.ParseCosmosDispatch,
		ParseDelivery: events.ParseCosmosProcess,
	}, nil
}

func buildEvm(ctx context.Context, cfg config.ChainConfig, mailbox core.Address, log *logger.Logger) (*Chain, error) {
	if cfg.Connection.RPCURL == "" {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, cosmos.ErrMissingRPCURL)
	}

	finality, err := evm.ParseBlockFinality(cfg.Finality)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	client, err := evm.NewClient(ctx, cfg.Connection.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	mb, err := evm.NewMailbox(client, cfg.Name, core.Domain(cfg.Domain), mailbox, finality, log)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("chain %q: %w", cfg.Name, err)
	}

	dispatches := evm.NewIndexer[core.Message](
		client, cfg.Name, mailbox, events.EvmDispatchTopic(), "dispatch", finality, log)
	deliveries := evm.NewIndexer[events.Delivery](
		client, cfg.Name, mailbox, events.EvmProcessTopic(), "process", finality, log)

	return &Chain{
		Name:          cfg.Name,
		Domain:        core.Domain(cfg.Domain),
		Mailbox:       mb,
		Dispatches:    dispatches,
		Deliveries:    deliveries,
		ParseDispatch: events.ParseEvmDispatch,
		ParseDelivery: events.ParseEvmProcess,
		closeFn:       client.Close,
	}, nil
}

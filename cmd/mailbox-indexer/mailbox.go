package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/chains"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/spf13/cobra"
)

var (
	mailboxChain string
	mailboxLag   uint64
)

var mailboxCmd = &cobra.Command{
	Use:   "mailbox",
	Short: "Query the deployed mailbox contract of one chain",
}

var mailboxCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the total number of dispatched messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMailbox(func(ctx context.Context, mb core.Mailbox) error {
			count, err := mb.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		})
	},
}

var mailboxCheckpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Print the latest merkle checkpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMailbox(func(ctx context.Context, mb core.Mailbox) error {
			var lag *uint64
			if mailboxLag > 0 {
				lag = &mailboxLag
			}
			cp, err := mb.LatestCheckpoint(ctx, lag)
			if err != nil {
				return err
			}
			fmt.Printf("root:   %s\nindex:  %d\ndomain: %d\n", cp.Root.Hex(), cp.Index, cp.MailboxDomain)
			return nil
		})
	},
}

var mailboxDeliveredCmd = &cobra.Command{
	Use:   "delivered <message-id>",
	Short: "Check whether a message id has been delivered here",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseHash(args[0])
		if err != nil {
			return err
		}
		return withMailbox(func(ctx context.Context, mb core.Mailbox) error {
			delivered, err := mb.Delivered(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(delivered)
			return nil
		})
	},
}

var mailboxStatusCmd = &cobra.Command{
	Use:   "status <tx-hash>",
	Short: "Print the execution outcome of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := parseHash(args[0])
		if err != nil {
			return err
		}
		return withMailbox(func(ctx context.Context, mb core.Mailbox) error {
			outcome, err := mb.Status(ctx, core.TxIDFromHash(hash))
			if err != nil {
				return err
			}
			if outcome == nil {
				fmt.Println("unknown")
				return nil
			}
			fmt.Printf("executed: %v\ngas used: %s\n", outcome.Executed, outcome.GasUsed)
			return nil
		})
	},
}

var mailboxModuleCmd = &cobra.Command{
	Use:   "module",
	Short: "Print the default inbound-verification module address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMailbox(func(ctx context.Context, mb core.Mailbox) error {
			module, err := mb.DefaultModule(ctx)
			if err != nil {
				return err
			}
			fmt.Println(module.Hex())
			return nil
		})
	},
}

func init() {
	mailboxCmd.PersistentFlags().StringVar(&mailboxChain, "chain", "", "configured chain name (required)")
	mailboxCmd.MarkPersistentFlagRequired("chain")
	mailboxCheckpointCmd.Flags().Uint64Var(&mailboxLag, "lag", 0, "read the checkpoint this many blocks behind the head")
	mailboxCmd.AddCommand(mailboxCountCmd, mailboxCheckpointCmd, mailboxDeliveredCmd, mailboxStatusCmd, mailboxModuleCmd)
}

// withMailbox builds the selected chain's mailbox reader and runs fn with it.
func withMailbox(fn func(context.Context, core.Mailbox) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	chainCfg, err := chainConfigByName(cfg, mailboxChain)
	if err != nil {
		return err
	}

	ctx := context.Background()
	chain, err := chains.Build(ctx, chainCfg, log)
	if err != nil {
		return err
	}
	defer chain.Close()

	return fn(ctx, chain.Mailbox)
}

func parseHash(s string) (common.Hash, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid 32-byte hash %q", s)
	}
	return common.BytesToHash(b), nil
}

package main

import (
	"fmt"
	"os"

	intconfig "github.com/goran-ethernal/MailboxIndexor/internal/config"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mailbox-indexer",
	Short: "MailboxIndexor - cross-chain mailbox event indexing service",
	Long: `MailboxIndexor observes deployed mailbox contracts across chain families,
recovers dispatch and delivery events from chain history, and caches them in
a local SQLite database for querying.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.AddCommand(watchCmd, scanCmd, mailboxCmd, schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the root logger.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := intconfig.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

// chainConfigByName finds the configured chain with the given name.
func chainConfigByName(cfg *config.Config, name string) (config.ChainConfig, error) {
	for _, chain := range cfg.Chains {
		if chain.Name == name {
			return chain, nil
		}
	}
	return config.ChainConfig{}, fmt.Errorf("chain %q is not configured", name)
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/MailboxIndexor/internal/chains"
	"github.com/goran-ethernal/MailboxIndexor/internal/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/internal/scanner"
	"github.com/goran-ethernal/MailboxIndexor/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously scan every configured chain",
	Long: `Watch runs one scanner per configured chain. Each scanner walks from its
persisted cursor up to the confirmed chain head in chunks, then polls for new
blocks. Indexed dispatches and deliveries land in the local database.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *metrics.Server
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics, log.WithComponent(common.ComponentMetrics))
		if err := metricsServer.Start(); err != nil {
			return err
		}
		defer metricsServer.Stop(context.Background())
		log.Infof("metrics server listening on %s%s", cfg.Metrics.ListenAddress, cfg.Metrics.Path)
	}

	db, err := store.NewStore(cfg.DB, log)
	if err != nil {
		return err
	}
	defer db.Close()

	g, gctx := errgroup.WithContext(ctx)

	for _, chainCfg := range cfg.Chains {
		chain, err := chains.Build(ctx, chainCfg, log)
		if err != nil {
			return err
		}
		defer chain.Close()

		s := scanner.New(
			chain.Name,
			chain.Dispatches, chain.Deliveries,
			chain.ParseDispatch, chain.ParseDelivery,
			db, cfg.Scanner, log,
		)

		g.Go(func() error {
			s.Run(gctx)
			return nil
		})
	}

	log.Infof("watching %d chains", len(cfg.Chains))
	return g.Wait()
}

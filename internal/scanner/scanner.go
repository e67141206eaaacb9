// Package scanner drives the chunked polling loop of one observed chain:
// walk the block range from the last persisted cursor up to the confirmed
// chain head, recover dispatch and delivery events through the chain's
// indexers, and hand each scanned chunk to the store.
package scanner

import (
	"context"
	"time"

	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/goran-ethernal/MailboxIndexor/pkg/events"
)

// Store persists scanned chunks and remembers how far each chain has been
// scanned.
type Store interface {
	LastScannedBlock(ctx context.Context, chain string) (uint64, error)
	StoreChunk(
		ctx context.Context,
		chain string,
		from, to uint64,
		dispatches []core.IndexedLog[core.Message],
		deliveries []core.IndexedLog[events.Delivery],
	) error
}

// ChainScanner walks one chain. Not safe for concurrent use; run one
// goroutine per chain.
type ChainScanner struct {
	chainName string

	dispatches    core.Indexer[core.Message]
	deliveries    core.Indexer[events.Delivery]
	parseDispatch core.LogParser[core.Message]
	parseDelivery core.LogParser[events.Delivery]

	store Store
	cfg   config.ScannerConfig
	log   *logger.Logger
}

// New builds a scanner for one chain.
func New(
	chainName string,
	dispatches core.Indexer[core.Message],
	deliveries core.Indexer[events.Delivery],
	parseDispatch core.LogParser[core.Message],
	parseDelivery core.LogParser[events.Delivery],
	store Store,
	cfg config.ScannerConfig,
	log *logger.Logger,
) *ChainScanner {
	return &ChainScanner{
		chainName:     chainName,
		dispatches:    dispatches,
		deliveries:    deliveries,
		parseDispatch: parseDispatch,
		parseDelivery: parseDelivery,
		store:         store,
		cfg:           cfg,
		log:           log.WithChain(chainName).WithComponent("scanner"),
	}
}

// Step scans at most one chunk and reports whether the chain is caught up to
// the confirmed head. A caught-up step performs no range queries.
func (s *ChainScanner) Step(ctx context.Context) (bool, error) {
	head, err := s.dispatches.LatestBlockHeight(ctx)
	if err != nil {
		return false, err
	}
	if head < s.cfg.ConfirmationLag {
		// Nothing is confirmed yet on a chain younger than the lag.
		return true, nil
	}
	target := head - s.cfg.ConfirmationLag

	cursor, err := s.store.LastScannedBlock(ctx, s.chainName)
	if err != nil {
		return false, err
	}
	if cursor >= target {
		return true, nil
	}

	from := cursor + 1
	to := min(from+s.cfg.ChunkSize-1, target)

	dispatches, err := s.dispatches.GetRangeEventLogs(ctx, from, to, s.parseDispatch)
	if err != nil {
		return false, err
	}
	deliveries, err := s.deliveries.GetRangeEventLogs(ctx, from, to, s.parseDelivery)
	if err != nil {
		return false, err
	}

	if err := s.store.StoreChunk(ctx, s.chainName, from, to, dispatches, deliveries); err != nil {
		return false, err
	}

	s.log.Debugf("scanned blocks %d-%d: %d dispatches, %d deliveries (head %d)",
		from, to, len(dispatches), len(deliveries), head)
	return to >= target, nil
}

// Run steps until the context is cancelled. Catch-up chunks are scanned back
// to back; once caught up, the scanner pauses for the poll interval. Errors
// are logged and retried after the poll interval, never fatal.
func (s *ChainScanner) Run(ctx context.Context) {
	s.log.Infof("scanner started (chunk size %d, confirmation lag %d)",
		s.cfg.ChunkSize, s.cfg.ConfirmationLag)

	for {
		caughtUp, err := s.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Errorf("scan step failed: %v", err)
		}

		if err == nil && !caughtUp {
			// More confirmed blocks are waiting; keep going.
			continue
		}

		select {
		case <-ctx.Done():
			s.log.Infof("scanner stopped")
			return
		case <-time.After(s.cfg.PollInterval.Duration):
		}
	}
}

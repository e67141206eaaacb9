package cosmos

import (
	"context"
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Compile-time check that Indexer satisfies the chain indexer contract.
var _ core.Indexer[struct{}] = (*Indexer[struct{}])(nil)

const (
	// wasmEventPrefix is the event-kind prefix CosmWasm prepends to every
	// contract-emitted event.
	wasmEventPrefix = "wasm"

	// txSearchPageSize is the per_page value used for tx_search pagination.
	txSearchPageSize = 100

	// maxConcurrentPages bounds how many tx_search pages are in flight at
	// once when a range spans more than one page.
	maxConcurrentPages = 4
)

// Indexer recovers protocol events of one schema from a CosmWasm mailbox by
// paging through the node's transaction search index. Instances hold no
// mutable state and are safe for concurrent use.
type Indexer[T any] struct {
	client    TendermintClient
	chainName string

	// contract is the protocol-form mailbox address; bech32Addr is its
	// chain-native encoding, computed once at construction.
	contract   core.Address
	bech32Addr string

	// eventKind is the exact event type kept during filtering, e.g.
	// "wasm-mailbox_dispatch".
	eventKind string

	log *logger.Logger
}

// NewIndexer builds an indexer for one event subtype of one deployed
// mailbox. The contract address is encoded with the connection's bech32
// prefix here, at construction: a bad prefix would otherwise match nothing
// at query time without ever producing an error.
func NewIndexer[T any](
	conf *ConnectionConf,
	client TendermintClient,
	chainName string,
	mailbox core.Address,
	eventSubtype string,
	log *logger.Logger,
) (*Indexer[T], error) {
	bech32Addr, err := EncodeAddress(conf.Prefix(), mailbox)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mailbox address: %w", err)
	}

	return &Indexer[T]{
		client:     client,
		chainName:  chainName,
		contract:   mailbox,
		bech32Addr: bech32Addr,
		eventKind:  wasmEventPrefix + "-" + eventSubtype,
		log:        log.WithChain(chainName),
	}, nil
}

// LatestBlockHeight returns the chain head as reported by the node. No
// caching; every call re-queries.
func (i *Indexer[T]) LatestBlockHeight(ctx context.Context) (uint64, error) {
	metrics.RPCRequestInc(i.chainName, "status")

	status, err := i.client.Status(ctx)
	if err != nil {
		metrics.RPCErrorInc(i.chainName, "status")
		return 0, core.CommErr("status", err)
	}

	height := uint64(status.SyncInfo.LatestBlockHeight)
	metrics.LatestBlockHeightSet(i.chainName, height)
	return height, nil
}

// GetRangeEventLogs returns every event of the indexer's kind emitted by
// the mailbox in the inclusive block range [from, to], ascending by
// (block, tx index, log index). A reversed range yields an empty result
// without touching the network.
func (i *Indexer[T]) GetRangeEventLogs(
	ctx context.Context,
	from, to uint64,
	parse core.LogParser[T],
) ([]core.IndexedLog[T], error) {
	if to < from {
		return nil, nil
	}

	query := fmt.Sprintf(
		"tx.height>=%d AND tx.height<=%d AND %s._contract_address='%s'",
		from, to, i.eventKind, i.bech32Addr,
	)

	first, err := i.searchPage(ctx, query, 1)
	if err != nil {
		return nil, err
	}

	totalPages := (first.TotalCount + txSearchPageSize - 1) / txSearchPageSize
	i.log.Debugf("tx_search matched %d txs across %d pages for blocks %d-%d",
		first.TotalCount, totalPages, from, to)

	pages := make([]*ctypes.ResultTxSearch, totalPages)
	if totalPages > 0 {
		pages[0] = first
	}

	// Remaining pages depend only on the immutable query, so they may be
	// fetched concurrently; results are reassembled by page number, which
	// keeps the ascending order the backend returns within each page.
	if totalPages > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentPages)

		for p := 2; p <= totalPages; p++ {
			page := p
			g.Go(func() error {
				res, err := i.searchPage(gctx, query, page)
				if err != nil {
					return err
				}
				pages[page-1] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var logs []core.IndexedLog[T]
	for _, page := range pages {
		logs = i.collectTxs(page.Txs, parse, logs)
	}

	metrics.IndexedEventsAdd(i.chainName, i.eventKind, len(logs))
	return logs, nil
}

// searchPage fetches one tx_search page in ascending order.
func (i *Indexer[T]) searchPage(ctx context.Context, query string, page int) (*ctypes.ResultTxSearch, error) {
	metrics.RPCRequestInc(i.chainName, "tx_search")

	perPage := txSearchPageSize
	res, err := i.client.TxSearch(ctx, query, false, &page, &perPage, "asc")
	if err != nil {
		metrics.RPCErrorInc(i.chainName, "tx_search")
		return nil, core.CommErr("tx_search", err)
	}
	return res, nil
}

// collectTxs appends every kept event of the given transactions to logs.
// Failed transactions are skipped entirely: a reverted execution cannot
// have produced the dispatch/delivery side effects the protocol records.
func (i *Indexer[T]) collectTxs(txs []*ctypes.ResultTx, parse core.LogParser[T], logs []core.IndexedLog[T]) []core.IndexedLog[T] {
	for _, tx := range txs {
		if tx.TxResult.Code != abci.CodeTypeOK {
			metrics.SkippedFailedTxInc(i.chainName)
			i.log.Debugf("skipping failed tx %X at height %d (code %d)",
				tx.Hash, tx.Height, tx.TxResult.Code)
			continue
		}

		txID, err := core.TxIDFromBytes(tx.Hash)
		if err != nil {
			// Hash wider than the protocol tx id; nothing sane to record.
			i.log.Warnf("skipping tx with oversized hash %X: %v", tx.Hash, err)
			continue
		}

		for logIdx, event := range tx.TxResult.Events {
			if event.Type != i.eventKind {
				continue
			}

			decoded, ok := parse(convertAttributes(event.Attributes))
			if !ok {
				// Not our schema. Silently dropped, not an error.
				continue
			}

			logs = append(logs, core.IndexedLog[T]{
				Event: decoded,
				Meta: core.LogMeta{
					Address:     i.contract,
					BlockNumber: uint64(tx.Height),
					// tx_search responses do not carry the containing
					// block's hash; the zero sentinel marks it unavailable
					// rather than fabricating one.
					TransactionID:    txID,
					TransactionIndex: uint64(tx.Index),
					LogIndex:         uint64(logIdx),
				},
			})
		}
	}

	return logs
}

func convertAttributes(attrs []abci.EventAttribute) []core.EventAttribute {
	out := make([]core.EventAttribute, len(attrs))
	for i, a := range attrs {
		out[i] = core.EventAttribute{Key: a.Key, Value: a.Value}
	}
	return out
}

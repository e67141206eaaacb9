package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
)

// Compile-time check that Indexer satisfies the chain indexer contract.
var _ core.Indexer[struct{}] = (*Indexer[struct{}])(nil)

// Indexer recovers protocol events of one schema from an EVM mailbox through
// eth_getLogs. Instances hold no mutable state and are safe for concurrent
// use.
type Indexer[T any] struct {
	client    EthClient
	chainName string

	// contract is the protocol-form mailbox address; evmAddr is its 20-byte
	// chain-native form used in filter queries.
	contract core.Address
	evmAddr  common.Address

	// topic is the topic0 the filter matches, e.g. the Dispatch event
	// signature hash.
	topic     common.Hash
	eventName string

	finality BlockFinality

	log *logger.Logger
}

// NewIndexer builds an indexer for one event signature of one deployed
// mailbox.
func NewIndexer[T any](
	client EthClient,
	chainName string,
	mailbox core.Address,
	topic common.Hash,
	eventName string,
	finality BlockFinality,
	log *logger.Logger,
) *Indexer[T] {
	return &Indexer[T]{
		client:    client,
		chainName: chainName,
		contract:  mailbox,
		evmAddr:   mailbox.ToEvmAddress(),
		topic:     topic,
		eventName: eventName,
		finality:  finality,
		log:       log.WithChain(chainName),
	}
}

// LatestBlockHeight returns the height of the configured chain tip
// (finalized, safe or latest). No caching; every call re-queries.
func (i *Indexer[T]) LatestBlockHeight(ctx context.Context) (uint64, error) {
	metrics.RPCRequestInc(i.chainName, "eth_getBlockByNumber")

	header, err := tipHeader(ctx, i.client, i.finality)
	if err != nil {
		metrics.RPCErrorInc(i.chainName, "eth_getBlockByNumber")
		return 0, core.CommErr("eth_getBlockByNumber", err)
	}

	height := header.Number.Uint64()
	metrics.LatestBlockHeightSet(i.chainName, height)
	return height, nil
}

// GetRangeEventLogs returns every event matching the indexer's topic emitted
// by the mailbox in the inclusive block range [from, to], ascending by
// (block, tx index, log index). Ranges the node refuses as too large are
// split and re-fetched transparently. A reversed range yields an empty
// result without touching the network.
func (i *Indexer[T]) GetRangeEventLogs(
	ctx context.Context,
	from, to uint64,
	parse core.LogParser[T],
) ([]core.IndexedLog[T], error) {
	if to < from {
		return nil, nil
	}

	rawLogs, err := i.fetchLogs(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var logs []core.IndexedLog[T]
	for _, raw := range rawLogs {
		if raw.Removed {
			// The node reports the log as reorged out; it never happened.
			continue
		}

		decoded, ok := parse(synthesizeAttributes(&raw))
		if !ok {
			// Not our schema. Silently dropped, not an error.
			continue
		}

		logs = append(logs, core.IndexedLog[T]{
			Event: decoded,
			Meta: core.LogMeta{
				Address:          i.contract,
				BlockNumber:      raw.BlockNumber,
				BlockHash:        raw.BlockHash,
				TransactionID:    core.TxIDFromHash(raw.TxHash),
				TransactionIndex: uint64(raw.TxIndex),
				LogIndex:         uint64(raw.Index),
			},
		})
	}

	// eth_getLogs answers in order, but merged sub-range responses need one
	// final pass to restore it.
	core.SortIndexedLogs(logs)

	metrics.IndexedEventsAdd(i.chainName, i.eventName, len(logs))
	return logs, nil
}

// fetchLogs runs the filter query over [from, to], recursively narrowing the
// range when the node rejects it as returning too many results. Nodes that
// suggest a workable range in the error message get their suggestion used;
// others get a halved range.
func (i *Indexer[T]) fetchLogs(ctx context.Context, from, to uint64) ([]types.Log, error) {
	metrics.RPCRequestInc(i.chainName, "eth_getLogs")

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{i.evmAddr},
		Topics:    [][]common.Hash{{i.topic}},
	}

	rawLogs, err := i.client.GetLogs(ctx, query)
	if err == nil {
		return rawLogs, nil
	}

	tooMany, errData := IsTooManyResultsError(err)
	if !tooMany {
		metrics.RPCErrorInc(i.chainName, "eth_getLogs")
		return nil, core.CommErr("eth_getLogs", err)
	}

	if from == to {
		// A single block that still overflows the node's limit cannot be
		// narrowed further.
		metrics.RPCErrorInc(i.chainName, "eth_getLogs")
		return nil, core.CommErrf("eth_getLogs", "block %d exceeds the node's log limit", from)
	}

	mid := from + (to-from)/2
	if suggestedFrom, suggestedTo, ok := ParseSuggestedBlockRange(errData); ok &&
		suggestedFrom == from && suggestedTo < to {
		mid = suggestedTo
	}

	i.log.Debugf("eth_getLogs range %d-%d too large, splitting at %d", from, to, mid)

	head, err := i.fetchLogs(ctx, from, mid)
	if err != nil {
		return nil, err
	}
	tail, err := i.fetchLogs(ctx, mid+1, to)
	if err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}

// synthesizeAttributes renders an EVM log as the attribute list the standard
// parsers consume: one "topicN" attribute per topic plus the data payload.
func synthesizeAttributes(raw *types.Log) []core.EventAttribute {
	attrs := make([]core.EventAttribute, 0, len(raw.Topics)+1)
	for n, topic := range raw.Topics {
		attrs = append(attrs, core.EventAttribute{
			Key:   fmt.Sprintf("topic%d", n),
			Value: topic.Hex(),
		})
	}
	attrs = append(attrs, core.EventAttribute{
		Key:   "data",
		Value: hexutil.Encode(raw.Data),
	})
	return attrs
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPC metrics
	rpcRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailboxindexor_rpc_requests_total",
			Help: "Total number of RPC requests issued per chain and operation",
		},
		[]string{"chain", "operation"},
	)

	rpcErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailboxindexor_rpc_errors_total",
			Help: "Total number of failed RPC requests per chain and operation",
		},
		[]string{"chain", "operation"},
	)

	// Indexing metrics
	indexedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailboxindexor_indexed_events_total",
			Help: "Total number of decoded protocol events per chain",
		},
		[]string{"chain", "event"},
	)

	skippedFailedTxs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailboxindexor_skipped_failed_txs_total",
			Help: "Total number of failed transactions excluded from indexing",
		},
		[]string{"chain"},
	)

	latestBlockHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mailboxindexor_latest_block_height",
			Help: "Latest chain height observed per chain",
		},
		[]string{"chain"},
	)

	lastScannedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mailboxindexor_last_scanned_block",
			Help: "Last block fully scanned for protocol events per chain",
		},
		[]string{"chain"},
	)
)

func RPCRequestInc(chain, operation string) {
	rpcRequests.WithLabelValues(chain, operation).Inc()
}

func RPCErrorInc(chain, operation string) {
	rpcErrors.WithLabelValues(chain, operation).Inc()
}

func IndexedEventsAdd(chain, event string, n int) {
	indexedEvents.WithLabelValues(chain, event).Add(float64(n))
}

func SkippedFailedTxInc(chain string) {
	skippedFailedTxs.WithLabelValues(chain).Inc()
}

func LatestBlockHeightSet(chain string, height uint64) {
	latestBlockHeight.WithLabelValues(chain).Set(float64(height))
}

func LastScannedBlockSet(chain string, block uint64) {
	lastScannedBlock.WithLabelValues(chain).Set(float64(block))
}

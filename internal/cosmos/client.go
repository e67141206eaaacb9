package cosmos

import (
	"context"
	"fmt"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
)

// TendermintClient is the subset of the tendermint RPC surface the indexer
// and mailbox use. It exists so tests can substitute a double.
type TendermintClient interface {
	// Status returns node status including the latest block height.
	Status(ctx context.Context) (*ctypes.ResultStatus, error)

	// TxSearch runs a full-text transaction search query with pagination.
	TxSearch(ctx context.Context, query string, prove bool, page, perPage *int, orderBy string) (*ctypes.ResultTxSearch, error)

	// Tx fetches a transaction and its execution result by hash.
	Tx(ctx context.Context, hash []byte, prove bool) (*ctypes.ResultTx, error)
}

// NewTendermintClient dials the configured RPC endpoint. Construction only
// parses the URL; no connection is opened until the first call.
func NewTendermintClient(conf *ConnectionConf) (TendermintClient, error) {
	client, err := rpchttp.New(conf.RPCURL(), "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to create tendermint RPC client for %q: %w", conf.RPCURL(), err)
	}
	return client, nil
}

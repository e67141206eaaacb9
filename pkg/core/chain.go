package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Contract is the identity metadata every deployed protocol contract
// exposes. Neither method performs I/O.
type Contract interface {
	// ChainName returns the configured human-readable chain name.
	ChainName() string

	// Address returns the contract's deployed address in protocol form.
	Address() Address
}

// Mailbox is the read surface of one deployed mailbox contract. All methods
// except LocalDomain perform I/O against a remote node and fail with a
// *ChainCommunicationError on any transport or decoding problem.
//
// Implementations hold no shared mutable state and are safe for concurrent
// use by multiple callers.
type Mailbox interface {
	Contract

	// LocalDomain returns the statically configured domain of the chain the
	// mailbox is deployed on. No I/O, never fails.
	LocalDomain() Domain

	// Count returns the total number of messages ever dispatched.
	Count(ctx context.Context) (uint32, error)

	// LatestCheckpoint returns the checkpoint as of the chain head minus
	// lag blocks. A nil lag means the current head. A lag exceeding the
	// chain height is a caller error surfaced as a communication error.
	LatestCheckpoint(ctx context.Context, lag *uint64) (Checkpoint, error)

	// Status looks up the outcome of a submitted transaction. It returns
	// (nil, nil) when the transaction is unknown to the queried node, which
	// is distinct from the node being unreachable.
	Status(ctx context.Context, txID TxID) (*TxOutcome, error)

	// DefaultModule returns the default inbound-verification module address
	// configured on the contract.
	DefaultModule(ctx context.Context) (Address, error)

	// Delivered reports whether the message with the given id has been
	// marked processed on this chain. An id that was never dispatched
	// yields (false, nil), not an error.
	Delivered(ctx context.Context, messageID common.Hash) (bool, error)
}

// Indexer scans a chain's history for protocol events of one schema,
// reconstructing typed events with positional metadata.
type Indexer[T any] interface {
	// LatestBlockHeight returns the current chain head as observed by the
	// configured node. No caching; every call re-queries.
	LatestBlockHeight(ctx context.Context) (uint64, error)

	// GetRangeEventLogs returns every matching event in the inclusive block
	// range [from, to], ascending by (block, tx index, log index). Events
	// parse rejects are dropped, events of failed transactions are skipped,
	// and a reversed range yields an empty result without any network call.
	GetRangeEventLogs(ctx context.Context, from, to uint64, parse LogParser[T]) ([]IndexedLog[T], error)
}

package core

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// LogMeta is the positional metadata attached to every decoded event. The
// composite (BlockNumber, TransactionIndex, LogIndex) totally orders events
// consistently with on-chain execution order. Re-scanning the same block
// range against unchanged chain state yields identical LogMeta values.
type LogMeta struct {
	// Address is the emitting contract in protocol form.
	Address Address

	BlockNumber uint64

	// BlockHash is the hash of the containing block. Chain families whose
	// query backend does not expose it set the zero hash; see HasBlockHash.
	BlockHash common.Hash

	TransactionID TxID

	// TransactionIndex is the transaction's position within its block.
	TransactionIndex uint64

	// LogIndex is the event's position as reported by the chain: within the
	// transaction's event list on Cosmos-family chains, within the block's
	// log list on EVM-family chains. Either way it orders events emitted by
	// the same transaction.
	LogIndex uint64
}

// HasBlockHash reports whether BlockHash carries a real value. Backends that
// cannot supply the containing block's hash leave the documented zero-hash
// sentinel, and block-hash-based reorg checks must not rely on it.
func (m *LogMeta) HasBlockHash() bool {
	return m.BlockHash != (common.Hash{})
}

// Before reports whether m precedes other in execution order.
func (m *LogMeta) Before(other *LogMeta) bool {
	if m.BlockNumber != other.BlockNumber {
		return m.BlockNumber < other.BlockNumber
	}
	if m.TransactionIndex != other.TransactionIndex {
		return m.TransactionIndex < other.TransactionIndex
	}
	return m.LogIndex < other.LogIndex
}

// EventAttribute is one key/value pair of a raw chain event, the common
// denominator both chain families can express their event payloads in.
type EventAttribute struct {
	Key   string
	Value string
}

// LogParser decodes raw event attributes into a typed event. Returning
// ok=false means the attributes do not match the expected schema; such
// events are silently dropped, never treated as errors.
type LogParser[T any] func(attrs []EventAttribute) (event T, ok bool)

// IndexedLog pairs a decoded event with its positional metadata.
type IndexedLog[T any] struct {
	Event T
	Meta  LogMeta
}

// SortIndexedLogs orders logs ascending by (block, tx index, log index).
// The sort is stable so equal keys keep their arrival order.
func SortIndexedLogs[T any](logs []IndexedLog[T]) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Meta.Before(&logs[j].Meta)
	})
}

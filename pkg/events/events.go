// Package events holds the protocol event schemas and the standard parsers
// from raw chain event attributes into typed events. Parsers are pure and
// total over recognized vs. not-recognized input: unrecognized attributes
// yield ok=false, never an error.
package events

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
)

// Event subtypes emitted by mailbox contracts. On Cosmos-family chains the
// full event kind is the wasm prefix joined with the subtype, e.g.
// "wasm-mailbox_dispatch".
const (
	SubtypeDispatch = "mailbox_dispatch"
	SubtypeProcess  = "mailbox_process"
)

// Attribute keys of Cosmos-family mailbox events.
const (
	attrMessage   = "message"
	attrMessageID = "message_id"
)

// Delivery records that a message has been processed on a destination chain.
type Delivery struct {
	MessageID common.Hash
}

// evmDispatchSignature is the Dispatch event of EVM mailboxes:
// sender and destination and recipient indexed, message bytes in data.
const evmDispatchSignature = "Dispatch(address,uint32,bytes32,bytes)"

// evmProcessSignature is the ProcessId event of EVM mailboxes.
const evmProcessSignature = "ProcessId(bytes32)"

// EvmDispatchTopic returns the topic0 of the EVM Dispatch event.
func EvmDispatchTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(evmDispatchSignature))
}

// EvmProcessTopic returns the topic0 of the EVM ProcessId event.
func EvmProcessTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(evmProcessSignature))
}

func findAttr(attrs []core.EventAttribute, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func decodeHex(s string) ([]byte, bool) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, false
	}
	return b, true
}

// ParseCosmosDispatch decodes a wasm mailbox_dispatch event's attributes
// into a Message. The raw message bytes travel hex-encoded in the "message"
// attribute.
func ParseCosmosDispatch(attrs []core.EventAttribute) (core.Message, bool) {
	raw, ok := findAttr(attrs, attrMessage)
	if !ok {
		return core.Message{}, false
	}
	data, ok := decodeHex(raw)
	if !ok {
		return core.Message{}, false
	}
	msg, err := core.DecodeMessage(data)
	if err != nil {
		return core.Message{}, false
	}
	return msg, true
}

// ParseCosmosProcess decodes a wasm mailbox_process event's attributes into
// a Delivery.
func ParseCosmosProcess(attrs []core.EventAttribute) (Delivery, bool) {
	raw, ok := findAttr(attrs, attrMessageID)
	if !ok {
		return Delivery{}, false
	}
	id, ok := decodeHex(raw)
	if !ok || len(id) != common.HashLength {
		return Delivery{}, false
	}
	return Delivery{MessageID: common.BytesToHash(id)}, true
}

// ParseEvmDispatch decodes an EVM Dispatch log's synthesized attributes into
// a Message. The log data is the ABI encoding of one dynamic bytes value:
// a 32-byte offset, a 32-byte length, then the raw message.
func ParseEvmDispatch(attrs []core.EventAttribute) (core.Message, bool) {
	raw, ok := findAttr(attrs, "data")
	if !ok {
		return core.Message{}, false
	}
	data, ok := decodeHex(raw)
	if !ok || len(data) < 64 {
		return core.Message{}, false
	}

	length := new(big.Int).SetBytes(data[32:64])
	if !length.IsUint64() || 64+length.Uint64() > uint64(len(data)) {
		return core.Message{}, false
	}
	msg, err := core.DecodeMessage(data[64 : 64+length.Uint64()])
	if err != nil {
		return core.Message{}, false
	}
	return msg, true
}

// ParseEvmProcess decodes an EVM ProcessId log's synthesized attributes into
// a Delivery; the message id is the event's first indexed topic.
func ParseEvmProcess(attrs []core.EventAttribute) (Delivery, bool) {
	raw, ok := findAttr(attrs, "topic1")
	if !ok {
		return Delivery{}, false
	}
	id, ok := decodeHex(raw)
	if !ok || len(id) != common.HashLength {
		return Delivery{}, false
	}
	return Delivery{MessageID: common.BytesToHash(id)}, true
}

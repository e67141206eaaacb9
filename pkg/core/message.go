package core

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MessageVersion is the wire-format version emitted by current mailboxes.
const MessageVersion uint8 = 0

// messageHeaderLength is version(1) + nonce(4) + origin(4) + sender(32) +
// destination(4) + recipient(32).
const messageHeaderLength = 1 + 4 + 4 + AddressLength + 4 + AddressLength

// Message is an outbound cross-chain payload. It is created once by a
// mailbox dispatch call and immutable thereafter; Nonce is its position in
// the origin mailbox's append-only log.
type Message struct {
	Version     uint8
	Nonce       uint32
	Origin      Domain
	Sender      Address
	Destination Domain
	Recipient   Address
	Body        []byte
}

// Encode serializes the message into its canonical wire format.
func (m *Message) Encode() []byte {
	buf := make([]byte, 0, messageHeaderLength+len(m.Body))
	buf = append(buf, m.Version)
	buf = binary.BigEndian.AppendUint32(buf, m.Nonce)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Origin))
	buf = append(buf, m.Sender[:]...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(m.Destination))
	buf = append(buf, m.Recipient[:]...)
	buf = append(buf, m.Body...)
	return buf
}

// ID returns the keccak-256 hash of the canonical encoding. It is the key
// under which delivery status is recorded on the destination chain.
func (m *Message) ID() common.Hash {
	return crypto.Keccak256Hash(m.Encode())
}

// DecodeMessage parses a canonical wire-format message.
func DecodeMessage(data []byte) (Message, error) {
	if len(data) < messageHeaderLength {
		return Message{}, fmt.Errorf("message too short: %d bytes, need at least %d", len(data), messageHeaderLength)
	}

	var m Message
	m.Version = data[0]
	m.Nonce = binary.BigEndian.Uint32(data[1:5])
	m.Origin = Domain(binary.BigEndian.Uint32(data[5:9]))
	copy(m.Sender[:], data[9:41])
	m.Destination = Domain(binary.BigEndian.Uint32(data[41:45]))
	copy(m.Recipient[:], data[45:77])
	if len(data) > messageHeaderLength {
		m.Body = append([]byte(nil), data[messageHeaderLength:]...)
	}
	return m, nil
}

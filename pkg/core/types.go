package core

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Domain is the protocol-wide numeric identifier of a chain. Domains are
// assigned at network-configuration time and never change.
type Domain uint32

// AddressLength is the byte length of a protocol address.
const AddressLength = 32

// TxIDLength is the byte length of a protocol transaction identifier. It is
// wide enough to hold the transaction hash of every supported chain family;
// shorter hashes occupy the trailing bytes with leading zeros.
const TxIDLength = 64

// Address is the protocol-wide 256-bit representation of an on-chain account
// or contract. Chain-native encodings (20-byte EVM addresses, bech32 strings)
// are converted to and from this form at the chain boundary.
type Address [AddressLength]byte

// AddressFromBytes builds an Address from b. Inputs shorter than 32 bytes are
// left-padded with zeros; longer inputs are an error, never truncated.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) > AddressLength {
		return a, fmt.Errorf("address payload too long: %d bytes", len(b))
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// AddressFromHex parses a 0x-prefixed or bare hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Address{}, fmt.Errorf("invalid address hex: %w", err)
	}
	return AddressFromBytes(b)
}

// FromEvmAddress widens a 20-byte EVM address into the protocol form.
func FromEvmAddress(a common.Address) Address {
	var out Address
	copy(out[AddressLength-common.AddressLength:], a.Bytes())
	return out
}

// ToEvmAddress narrows the protocol address to its trailing 20 bytes.
func (a Address) ToEvmAddress() common.Address {
	return common.BytesToAddress(a[AddressLength-common.AddressLength:])
}

// Bytes returns the address as a 32-byte slice.
func (a Address) Bytes() []byte { return a[:] }

// Hash returns the address reinterpreted as a 32-byte hash value.
func (a Address) Hash() common.Hash { return common.BytesToHash(a[:]) }

// Hex returns the 0x-prefixed hex encoding of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero reports whether the address is all zeros.
func (a Address) IsZero() bool { return a == Address{} }

// TxID is the protocol-wide 512-bit transaction identifier.
type TxID [TxIDLength]byte

// TxIDFromBytes widens a chain-native transaction hash into a TxID. Hashes
// shorter than 64 bytes occupy the trailing bytes.
func TxIDFromBytes(b []byte) (TxID, error) {
	var id TxID
	if len(b) > TxIDLength {
		return id, fmt.Errorf("transaction hash too long: %d bytes", len(b))
	}
	copy(id[TxIDLength-len(b):], b)
	return id, nil
}

// TxIDFromHash widens a 32-byte hash into a TxID.
func TxIDFromHash(h common.Hash) TxID {
	var id TxID
	copy(id[TxIDLength-common.HashLength:], h.Bytes())
	return id
}

// Hash narrows the TxID back to its trailing 32 bytes. Only meaningful for
// chain families whose native transaction hash is 32 bytes wide.
func (id TxID) Hash() common.Hash {
	return common.BytesToHash(id[TxIDLength-common.HashLength:])
}

// Bytes returns the identifier as a 64-byte slice.
func (id TxID) Bytes() []byte { return id[:] }

// Hex returns the 0x-prefixed hex encoding of the identifier.
func (id TxID) Hex() string { return "0x" + hex.EncodeToString(id[:]) }

func (id TxID) String() string { return id.Hex() }

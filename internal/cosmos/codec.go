package cosmos

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
)

// EncodeAddress converts a protocol address to its bech32 text form under
// the given prefix. Deterministic and total over valid prefixes.
func EncodeAddress(prefix string, addr core.Address) (string, error) {
	encoded, err := bech32.ConvertAndEncode(prefix, addr.Bytes())
	if err != nil {
		return "", fmt.Errorf("bech32 encode with prefix %q: %w", prefix, err)
	}
	return encoded, nil
}

// EncodeAddressBytes bech32-encodes an arbitrary payload, e.g. a 20-byte
// account address that is not a protocol address.
func EncodeAddressBytes(prefix string, payload []byte) (string, error) {
	encoded, err := bech32.ConvertAndEncode(prefix, payload)
	if err != nil {
		return "", fmt.Errorf("bech32 encode with prefix %q: %w", prefix, err)
	}
	return encoded, nil
}

// DecodeAddress parses a bech32 string back into a protocol address. It
// fails on a mismatched prefix, an invalid checksum, or a payload that is
// not exactly 32 bytes; it never truncates or zero-pads.
func DecodeAddress(prefix, text string) (core.Address, error) {
	hrp, payload, err := bech32.DecodeAndConvert(text)
	if err != nil {
		return core.Address{}, fmt.Errorf("bech32 decode %q: %w", text, err)
	}
	if hrp != prefix {
		return core.Address{}, fmt.Errorf("bech32 prefix mismatch: got %q, want %q", hrp, prefix)
	}
	if len(payload) != core.AddressLength {
		return core.Address{}, fmt.Errorf("bech32 payload length %d, want %d", len(payload), core.AddressLength)
	}
	return core.AddressFromBytes(payload)
}

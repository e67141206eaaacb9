package store

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/russross/meddler"
)

func decodeHexString(s string) ([]byte, bool) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, false
	}
	return b, true
}

func init() {
	meddler.Register("hash", HashMeddler{})
	meddler.Register("address", AddressMeddler{})
	meddler.Register("txid", TxIDMeddler{})
}

// HashMeddler converts between common.Hash and its hex column form.
type HashMeddler struct{}

func (h HashMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(sql.NullString), nil
}

func (h HashMeddler) PostRead(fieldAddr, scanTarget interface{}) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*common.Hash)
	if !ok {
		return fmt.Errorf("expected *common.Hash, got %T", fieldAddr)
	}
	if !ns.Valid {
		*ptr = common.Hash{}
		return nil
	}
	*ptr = common.HexToHash(ns.String)
	return nil
}

func (h HashMeddler) PreWrite(field interface{}) (saveValue interface{}, err error) {
	hash, ok := field.(common.Hash)
	if !ok {
		return nil, fmt.Errorf("expected common.Hash, got %T", field)
	}
	return hash.Hex(), nil
}

// AddressMeddler converts between the protocol address and its hex column
// form.
type AddressMeddler struct{}

func (a AddressMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(sql.NullString), nil
}

func (a AddressMeddler) PostRead(fieldAddr, scanTarget interface{}) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*core.Address)
	if !ok {
		return fmt.Errorf("expected *core.Address, got %T", fieldAddr)
	}
	if !ns.Valid {
		*ptr = core.Address{}
		return nil
	}

	addr, err := core.AddressFromHex(ns.String)
	if err != nil {
		return fmt.Errorf("malformed address column: %w", err)
	}
	*ptr = addr
	return nil
}

func (a AddressMeddler) PreWrite(field interface{}) (saveValue interface{}, err error) {
	addr, ok := field.(core.Address)
	if !ok {
		return nil, fmt.Errorf("expected core.Address, got %T", field)
	}
	return addr.Hex(), nil
}

// TxIDMeddler converts between the protocol transaction id and its hex
// column form.
type TxIDMeddler struct{}

func (t TxIDMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(sql.NullString), nil
}

func (t TxIDMeddler) PostRead(fieldAddr, scanTarget interface{}) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*core.TxID)
	if !ok {
		return fmt.Errorf("expected *core.TxID, got %T", fieldAddr)
	}
	if !ns.Valid {
		*ptr = core.TxID{}
		return nil
	}

	b, ok := decodeHexString(ns.String)
	if !ok {
		return fmt.Errorf("malformed tx id column %q", ns.String)
	}
	id, err := core.TxIDFromBytes(b)
	if err != nil {
		return fmt.Errorf("malformed tx id column: %w", err)
	}
	*ptr = id
	return nil
}

func (t TxIDMeddler) PreWrite(field interface{}) (saveValue interface{}, err error) {
	id, ok := field.(core.TxID)
	if !ok {
		return nil, fmt.Errorf("expected core.TxID, got %T", field)
	}
	return id.Hex(), nil
}

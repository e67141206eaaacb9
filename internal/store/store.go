package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	"github.com/goran-ethernal/MailboxIndexor/internal/metrics"
	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/goran-ethernal/MailboxIndexor/pkg/core"
	"github.com/goran-ethernal/MailboxIndexor/pkg/events"
	"github.com/russross/meddler"
)

// StoredMessage is the database row of one indexed dispatch.
type StoredMessage struct {
	ID          int64        `meddler:"id,pk"`
	MessageID   common.Hash  `meddler:"message_id,hash"`
	Chain       string       `meddler:"chain"`
	Version     uint8        `meddler:"version"`
	Nonce       uint32       `meddler:"nonce"`
	Origin      uint32       `meddler:"origin"`
	Destination uint32       `meddler:"destination"`
	Sender      core.Address `meddler:"sender,address"`
	Recipient   core.Address `meddler:"recipient,address"`
	Body        []byte       `meddler:"body"`
	BlockNumber uint64       `meddler:"block_number"`
	TxID        core.TxID    `meddler:"tx_id,txid"`
	TxIndex     uint64       `meddler:"tx_index"`
	LogIndex    uint64       `meddler:"log_index"`
}

// Message rebuilds the protocol message from the row.
func (m *StoredMessage) Message() core.Message {
	return core.Message{
		Version:     m.Version,
		Nonce:       m.Nonce,
		Origin:      core.Domain(m.Origin),
		Sender:      m.Sender,
		Destination: core.Domain(m.Destination),
		Recipient:   m.Recipient,
		Body:        m.Body,
	}
}

// StoredDelivery is the database row of one indexed delivery.
type StoredDelivery struct {
	ID          int64       `meddler:"id,pk"`
	MessageID   common.Hash `meddler:"message_id,hash"`
	Chain       string      `meddler:"chain"`
	BlockNumber uint64      `meddler:"block_number"`
	TxID        core.TxID   `meddler:"tx_id,txid"`
	TxIndex     uint64      `meddler:"tx_index"`
	LogIndex    uint64      `meddler:"log_index"`
}

// Store is the SQLite-backed message cache.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// NewStore opens the database and brings its schema up to date.
func NewStore(cfg config.DatabaseConfig, log *logger.Logger) (*Store, error) {
	db, err := NewSQLiteDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, log); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, log: log.WithComponent("store")}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LastScannedBlock returns the chain's scan cursor, 0 when the chain has
// never been scanned.
func (s *Store) LastScannedBlock(ctx context.Context, chain string) (uint64, error) {
	var block uint64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_block FROM scan_cursor WHERE chain = ?`, chain).Scan(&block)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query scan cursor: %w", err)
	}
	return block, nil
}

// StoreChunk persists everything indexed from one scanned block range and
// advances the chain's cursor to its upper bound, atomically. Rows the range
// previously produced are replaced, so replaying a chunk is idempotent.
func (s *Store) StoreChunk(
	ctx context.Context,
	chain string,
	from, to uint64,
	dispatches []core.IndexedLog[core.Message],
	deliveries []core.IndexedLog[events.Delivery],
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			s.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	const deleteRange = ` WHERE chain = ? AND block_number >= ? AND block_number <= ?`
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`+deleteRange, chain, from, to); err != nil {
		return fmt.Errorf("failed to clear message range: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM deliveries`+deleteRange, chain, from, to); err != nil {
		return fmt.Errorf("failed to clear delivery range: %w", err)
	}

	for _, d := range dispatches {
		row := &StoredMessage{
			MessageID:   d.Event.ID(),
			Chain:       chain,
			Version:     d.Event.Version,
			Nonce:       d.Event.Nonce,
			Origin:      uint32(d.Event.Origin),
			Destination: uint32(d.Event.Destination),
			Sender:      d.Event.Sender,
			Recipient:   d.Event.Recipient,
			Body:        d.Event.Body,
			BlockNumber: d.Meta.BlockNumber,
			TxID:        d.Meta.TransactionID,
			TxIndex:     d.Meta.TransactionIndex,
			LogIndex:    d.Meta.LogIndex,
		}
		if err := meddler.Insert(tx, "messages", row); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	for _, d := range deliveries {
		row := &StoredDelivery{
			MessageID:   d.Event.MessageID,
			Chain:       chain,
			BlockNumber: d.Meta.BlockNumber,
			TxID:        d.Meta.TransactionID,
			TxIndex:     d.Meta.TransactionIndex,
			LogIndex:    d.Meta.LogIndex,
		}
		if err := meddler.Insert(tx, "deliveries", row); err != nil {
			return fmt.Errorf("failed to insert delivery: %w", err)
		}
	}

	const cursorQuery = `
		INSERT INTO scan_cursor (chain, last_block) VALUES (?, ?)
		ON CONFLICT(chain) DO UPDATE SET last_block = excluded.last_block
	`
	if _, err := tx.ExecContext(ctx, cursorQuery, chain, to); err != nil {
		return fmt.Errorf("failed to advance scan cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.LastScannedBlockSet(chain, to)
	s.log.Debugf("stored %d messages and %d deliveries for %s blocks %d-%d",
		len(dispatches), len(deliveries), chain, from, to)
	return nil
}

// Messages returns the chain's stored dispatches in the inclusive block
// range, ascending by emission order.
func (s *Store) Messages(ctx context.Context, chain string, from, to uint64) ([]*StoredMessage, error) {
	const query = `
		SELECT * FROM messages
		WHERE chain = ? AND block_number >= ? AND block_number <= ?
		ORDER BY block_number ASC, tx_index ASC, log_index ASC
	`
	var rows []*StoredMessage
	if err := meddler.QueryAll(s.db, &rows, query, chain, from, to); err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return rows, nil
}

// Deliveries returns the chain's stored deliveries in the inclusive block
// range, ascending by emission order.
func (s *Store) Deliveries(ctx context.Context, chain string, from, to uint64) ([]*StoredDelivery, error) {
	const query = `
		SELECT * FROM deliveries
		WHERE chain = ? AND block_number >= ? AND block_number <= ?
		ORDER BY block_number ASC, tx_index ASC, log_index ASC
	`
	var rows []*StoredDelivery
	if err := meddler.QueryAll(s.db, &rows, query, chain, from, to); err != nil {
		return nil, fmt.Errorf("failed to query deliveries: %w", err)
	}
	return rows, nil
}

// MessageByID looks up one dispatch by its message id. Returns nil when the
// id has not been indexed.
func (s *Store) MessageByID(ctx context.Context, id common.Hash) (*StoredMessage, error) {
	var row StoredMessage
	err := meddler.QueryRow(s.db, &row,
		`SELECT * FROM messages WHERE message_id = ?`, id.Hex())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query message: %w", err)
	}
	return &row, nil
}

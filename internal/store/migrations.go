package store

import (
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/MailboxIndexor/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

// migrations is the ordered schema history of the message cache.
var migrations = []*migrate.Migration{
	{
		Id: "001_initial",
		Up: []string{`
CREATE TABLE scan_cursor (
	chain      TEXT PRIMARY KEY,
	last_block INTEGER NOT NULL
);

CREATE TABLE messages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id   TEXT    NOT NULL,
	chain        TEXT    NOT NULL,
	version      INTEGER NOT NULL,
	nonce        INTEGER NOT NULL,
	origin       INTEGER NOT NULL,
	destination  INTEGER NOT NULL,
	sender       TEXT    NOT NULL,
	recipient    TEXT    NOT NULL,
	body         BLOB,
	block_number INTEGER NOT NULL,
	tx_id        TEXT    NOT NULL,
	tx_index     INTEGER NOT NULL,
	log_index    INTEGER NOT NULL,
	UNIQUE (chain, block_number, tx_index, log_index)
);

CREATE INDEX idx_messages_chain_nonce ON messages (chain, nonce);
CREATE INDEX idx_messages_message_id ON messages (message_id);

CREATE TABLE deliveries (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id   TEXT    NOT NULL,
	chain        TEXT    NOT NULL,
	block_number INTEGER NOT NULL,
	tx_id        TEXT    NOT NULL,
	tx_index     INTEGER NOT NULL,
	log_index    INTEGER NOT NULL,
	UNIQUE (chain, block_number, tx_index, log_index)
);

CREATE INDEX idx_deliveries_message_id ON deliveries (message_id);
`},
		Down: []string{`
DROP TABLE deliveries;
DROP TABLE messages;
DROP TABLE scan_cursor;
`},
	},
}

// RunMigrations brings the database schema up to date.
func RunMigrations(db *sql.DB, log *logger.Logger) error {
	source := &migrate.MemoryMigrationSource{Migrations: migrations}

	n, err := migrate.Exec(db, "sqlite3", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	if n > 0 {
		log.Infof("applied %d database migrations", n)
	}
	return nil
}

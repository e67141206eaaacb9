// Package store is the local SQLite cache of indexed mailbox activity: the
// per-chain scan cursor plus every dispatch and delivery the scanner has
// observed. Chunks are written atomically, so replaying a block range is
// idempotent.
package store

import (
	"database/sql"
	"fmt"

	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB opens the SQLite database described by the configuration.
func NewSQLiteDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"file:%s?_txlock=immediate&_journal_mode=%s&_busy_timeout=%d",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
	)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA synchronous = %s", cfg.Synchronous)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set pragma: %w", err)
	}

	return db, nil
}

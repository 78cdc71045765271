// Package store provides a SQLite-backed history of cursor positions per file.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path     TEXT PRIMARY KEY,
	row      INTEGER NOT NULL,
	col      INTEGER NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated);
`

// Positions remembers where the cursor was when each file was last closed.
// All methods are safe to call on a nil receiver, which remembers nothing.
type Positions struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a position database at the given path.
// Entries not updated within ttl are dropped.
func Open(dbPath string, ttl time.Duration) (*Positions, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open position db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	p := &Positions{db: db, ttl: ttl}
	p.purgeStale()
	return p, nil
}

// Close closes the database.
func (p *Positions) Close() error {
	if p == nil {
		return nil
	}
	return p.db.Close()
}

// Position returns the remembered cursor for path, if it is still fresh.
func (p *Positions) Position(path string) (row, col int, ok bool) {
	if p == nil {
		return 0, 0, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := time.Now().Add(-p.ttl).Unix()
	err := p.db.QueryRow(
		"SELECT row, col FROM positions WHERE path = ? AND updated > ?",
		path, cutoff,
	).Scan(&row, &col)
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// SetPosition records the cursor for path. Failures are logged, not returned.
func (p *Positions) SetPosition(path string, row, col int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.db.Exec(
		"INSERT OR REPLACE INTO positions (path, row, col, updated) VALUES (?, ?, ?, ?)",
		path, row, col, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to save cursor position")
	}
}

// purgeStale removes entries older than the TTL.
func (p *Positions) purgeStale() {
	cutoff := time.Now().Add(-p.ttl).Unix()
	res, err := p.db.Exec("DELETE FROM positions WHERE updated <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale positions")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale positions")
	}
}

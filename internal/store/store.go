package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store owns the SQLite database that records model calls.
type Store struct {
	db *sql.DB
}

// pragmas are applied by the driver on every new connection, so pooled
// connections all see the same settings.
var pragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Open opens (creating if needed) the database file at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	db, err := sql.Open("sqlite", path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db} }

// migrations are applied in order; PRAGMA user_version records how many
// have run. Append only.
var migrations = []string{
	`CREATE TABLE llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX idx_llm_events_purpose ON llm_request_events (purpose);
	CREATE INDEX idx_llm_events_timestamp ON llm_request_events (timestamp);`,

	`CREATE INDEX idx_llm_events_model ON llm_request_events (model);`,
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("schema version %d is newer than this binary (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

// DefaultDBPath is $BS2TUTOR_DB when set, otherwise bs2tutor.db under
// $XDG_DATA_HOME/bs2tutor (falling back to ~/.local/share). The parent
// directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("BS2TUTOR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "bs2tutor", "bs2tutor.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

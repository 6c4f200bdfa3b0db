package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend stores every entry as a row in a single SQLite table keyed by
// its cleaned relative path. Directories are implicit key prefixes.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLite-backed backend.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if dbPath == ":memory:" {
		// Every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	} else {
		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, err
		}
	}

	backend := &SQLiteBackend{
		db: db,
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

func (sb *SQLiteBackend) initSchema() error {
	_, err := sb.db.Exec(`CREATE TABLE IF NOT EXISTS vfs_entries (
		key TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		modify_time INTEGER NOT NULL
	)`)
	return err
}

// Name returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*SQLiteBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: append(backend.ReadWriteCapabilities(), backend.CapabilityPersistent),
	}
}

// Open is a no-op, connections are pooled by database/sql.
func (*SQLiteBackend) Open(ctx context.Context, path string) error {
	return nil
}

// Close is a no-op, connections are pooled by database/sql.
func (*SQLiteBackend) Close(ctx context.Context, path string) error {
	return nil
}

// Shutdown closes the underlying database handle.
func (sb *SQLiteBackend) Shutdown(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if err := sb.db.Close(); err != nil {
		return data.Other("sqlite close", err)
	}
	return nil
}

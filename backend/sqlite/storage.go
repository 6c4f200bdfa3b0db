package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

func (sb *SQLiteBackend) Read(ctx context.Context, path string) ([]byte, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key := backend.CleanKey(path)

	var content []byte
	err := sb.db.QueryRowContext(ctx,
		"SELECT content FROM vfs_entries WHERE key = ?",
		key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, backend.NotFound(key)
	}
	if err != nil {
		return nil, data.Other(fmt.Sprintf("sqlite read '%s'", key), err)
	}

	return content, nil
}

func (sb *SQLiteBackend) Write(ctx context.Context, path string, content []byte) error {
	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}
	if content == nil {
		content = []byte{}
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	_, err := sb.db.ExecContext(ctx,
		`INSERT INTO vfs_entries (key, content, modify_time) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, modify_time = excluded.modify_time`,
		key, content, time.Now().UnixNano())
	if err != nil {
		return data.Other(fmt.Sprintf("sqlite write '%s'", key), err)
	}

	return nil
}

func (sb *SQLiteBackend) Exists(ctx context.Context, path string) (bool, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return true, nil
	}

	lower, upper := backend.PrefixRange(key)

	var found int
	err := sb.db.QueryRowContext(ctx,
		"SELECT 1 FROM vfs_entries WHERE key = ? OR (key >= ? AND key < ?) LIMIT 1",
		key, lower, upper).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, data.Other(fmt.Sprintf("sqlite exists '%s'", key), err)
	}

	return true, nil
}

func (sb *SQLiteBackend) Remove(ctx context.Context, path string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	key := backend.CleanKey(path)

	result, err := sb.db.ExecContext(ctx, "DELETE FROM vfs_entries WHERE key = ?", key)
	if err != nil {
		return data.Other(fmt.Sprintf("sqlite remove '%s'", key), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return data.Other(fmt.Sprintf("sqlite remove '%s'", key), err)
	}
	if affected == 0 {
		return backend.NotFound(key)
	}

	return nil
}

func (sb *SQLiteBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	key := backend.CleanKey(path)
	collector := backend.NewChildCollector(key)

	var (
		rows *sql.Rows
		err  error
	)
	if key == backend.RootPath {
		rows, err = sb.db.QueryContext(ctx, "SELECT key FROM vfs_entries ORDER BY key")
	} else {
		lower, upper := backend.PrefixRange(key)
		rows, err = sb.db.QueryContext(ctx,
			"SELECT key FROM vfs_entries WHERE key >= ? AND key < ? ORDER BY key",
			lower, upper)
	}
	if err != nil {
		return nil, data.Other(fmt.Sprintf("sqlite list '%s'", key), err)
	}
	if err := collectKeys(rows, collector); err != nil {
		return nil, data.Other(fmt.Sprintf("sqlite list '%s'", key), err)
	}

	isEntry := false
	if key != backend.RootPath {
		var found int
		err := sb.db.QueryRowContext(ctx, "SELECT 1 FROM vfs_entries WHERE key = ?", key).Scan(&found)
		isEntry = err == nil
	}

	return collector.Result(key, isEntry)
}

// collectKeys drains and closes rows, so the connection is released before
// the next query. ":memory:" databases only have a single connection.
func collectKeys(rows *sql.Rows, collector *backend.ChildCollector) error {
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return err
		}
		collector.Add(key)
	}

	return rows.Err()
}

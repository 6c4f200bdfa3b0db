package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

func (pb *PostgresBackend) Read(ctx context.Context, path string) ([]byte, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	key := backend.CleanKey(path)

	var content []byte
	err := pb.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT content FROM %s WHERE key = $1", pb.table),
		key).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, backend.NotFound(key)
	}
	if err != nil {
		return nil, data.Other(fmt.Sprintf("postgres read '%s'", key), err)
	}

	return content, nil
}

func (pb *PostgresBackend) Write(ctx context.Context, path string, content []byte) error {
	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}
	if content == nil {
		content = []byte{}
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	_, err := pb.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (key, content, modify_time) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET content = EXCLUDED.content, modify_time = EXCLUDED.modify_time`, pb.table),
		key, content)
	if err != nil {
		return data.Other(fmt.Sprintf("postgres write '%s'", key), err)
	}

	return nil
}

func (pb *PostgresBackend) Exists(ctx context.Context, path string) (bool, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return true, nil
	}

	lower, upper := backend.PrefixRange(key)

	var exists bool
	err := pb.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE key = $1 OR (key COLLATE "C" >= $2 AND key COLLATE "C" < $3))`, pb.table),
		key, lower, upper).Scan(&exists)
	if err != nil {
		return false, data.Other(fmt.Sprintf("postgres exists '%s'", key), err)
	}

	return exists, nil
}

func (pb *PostgresBackend) Remove(ctx context.Context, path string) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	key := backend.CleanKey(path)

	tag, err := pb.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE key = $1", pb.table),
		key)
	if err != nil {
		return data.Other(fmt.Sprintf("postgres remove '%s'", key), err)
	}
	if tag.RowsAffected() == 0 {
		return backend.NotFound(key)
	}

	return nil
}

func (pb *PostgresBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	key := backend.CleanKey(path)
	collector := backend.NewChildCollector(key)

	var (
		rows pgx.Rows
		err  error
	)
	// COLLATE "C" keeps byte order so the prefix range stays contiguous
	if key == backend.RootPath {
		rows, err = pb.pool.Query(ctx,
			fmt.Sprintf(`SELECT key FROM %s ORDER BY key COLLATE "C"`, pb.table))
	} else {
		lower, upper := backend.PrefixRange(key)
		rows, err = pb.pool.Query(ctx,
			fmt.Sprintf(`SELECT key FROM %s WHERE key COLLATE "C" >= $1 AND key COLLATE "C" < $2 ORDER BY key COLLATE "C"`, pb.table),
			lower, upper)
	}
	if err != nil {
		return nil, data.Other(fmt.Sprintf("postgres list '%s'", key), err)
	}

	children, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, data.Other(fmt.Sprintf("postgres list '%s'", key), err)
	}
	for _, child := range children {
		collector.Add(child)
	}

	isEntry := false
	if key != backend.RootPath {
		err := pb.pool.QueryRow(ctx,
			fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE key = $1)", pb.table),
			key).Scan(&isEntry)
		if err != nil {
			return nil, data.Other(fmt.Sprintf("postgres list '%s'", key), err)
		}
	}

	return collector.Result(key, isEntry)
}

package local

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
	"github.com/spf13/afero"
)

func (lb *LocalBackend) Read(ctx context.Context, path string) ([]byte, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	name := toName(path)
	info, err := lb.fs.Stat(name)
	if err != nil {
		return nil, mapError(err, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is a directory", data.ErrInvalidOperation, backend.CleanKey(path))
	}

	content, err := afero.ReadFile(lb.fs, name)
	if err != nil {
		return nil, mapError(err, path)
	}

	return content, nil
}

func (lb *LocalBackend) Write(ctx context.Context, path string, content []byte) error {
	if backend.CleanKey(path) == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	name := toName(path)
	if info, err := lb.fs.Stat(name); err == nil && info.IsDir() {
		return fmt.Errorf("%w: '%s' is a directory", data.ErrInvalidOperation, backend.CleanKey(path))
	}

	if err := lb.fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return mapError(err, path)
	}

	if err := afero.WriteFile(lb.fs, name, content, 0644); err != nil {
		return mapError(err, path)
	}

	return nil
}

func (lb *LocalBackend) Exists(ctx context.Context, path string) (bool, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	exists, err := afero.Exists(lb.fs, toName(path))
	if err != nil {
		return false, mapError(err, path)
	}

	return exists, nil
}

func (lb *LocalBackend) Remove(ctx context.Context, path string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	name := toName(path)
	if _, err := lb.fs.Stat(name); err != nil {
		return mapError(err, path)
	}

	if err := lb.fs.Remove(name); err != nil {
		return mapError(err, path)
	}

	return nil
}

func (lb *LocalBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	name := toName(path)
	info, err := lb.fs.Stat(name)
	if err != nil {
		return nil, mapError(err, path)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", data.ErrInvalidOperation, backend.CleanKey(path))
	}

	// ReadDir returns entries sorted by name
	infos, err := afero.ReadDir(lb.fs, name)
	if err != nil {
		return nil, mapError(err, path)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}

	return names, nil
}

package billyfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

// BillyBackend stores entries on a go-billy filesystem, which makes any
// go-git worktree storage mountable.
type BillyBackend struct {
	mu  sync.RWMutex
	bfs billy.Filesystem
}

// NewBillyBackend wraps an existing billy filesystem.
func NewBillyBackend(bfs billy.Filesystem) *BillyBackend {
	return &BillyBackend{
		bfs: bfs,
	}
}

// NewMemoryBillyBackend creates a backend on an empty billy memfs.
func NewMemoryBillyBackend() *BillyBackend {
	return NewBillyBackend(memfs.New())
}

// NewOsBillyBackend creates a backend on billy's osfs rooted at root.
func NewOsBillyBackend(root string) *BillyBackend {
	return NewBillyBackend(osfs.New(root))
}

// Name returns the identifier name defined for this backend
func (*BillyBackend) Name() string {
	return "billy"
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*BillyBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: backend.ReadWriteCapabilities(),
	}
}

// Unwrap returns the underlying billy filesystem.
func (bb *BillyBackend) Unwrap() billy.Filesystem {
	return bb.bfs
}

func (bb *BillyBackend) Read(ctx context.Context, path string) ([]byte, error) {
	bb.mu.RLock()
	defer bb.mu.RUnlock()

	name := backend.CleanKey(path)
	info, err := bb.bfs.Stat(name)
	if err != nil {
		return nil, mapError(err, name)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is a directory", data.ErrInvalidOperation, name)
	}

	content, err := util.ReadFile(bb.bfs, name)
	if err != nil {
		return nil, mapError(err, name)
	}

	return content, nil
}

func (bb *BillyBackend) Write(ctx context.Context, path string, content []byte) error {
	name := backend.CleanKey(path)
	if name == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}

	bb.mu.Lock()
	defer bb.mu.Unlock()

	if info, err := bb.bfs.Stat(name); err == nil && info.IsDir() {
		return fmt.Errorf("%w: '%s' is a directory", data.ErrInvalidOperation, name)
	}

	if idx := strings.LastIndex(name, "/"); idx > 0 {
		if err := bb.bfs.MkdirAll(name[:idx], 0755); err != nil {
			return mapError(err, name)
		}
	}

	if err := util.WriteFile(bb.bfs, name, content, 0644); err != nil {
		return mapError(err, name)
	}

	return nil
}

func (bb *BillyBackend) Exists(ctx context.Context, path string) (bool, error) {
	bb.mu.RLock()
	defer bb.mu.RUnlock()

	name := backend.CleanKey(path)
	if name == backend.RootPath {
		return true, nil
	}

	if _, err := bb.bfs.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, mapError(err, name)
	}

	return true, nil
}

func (bb *BillyBackend) Remove(ctx context.Context, path string) error {
	bb.mu.Lock()
	defer bb.mu.Unlock()

	name := backend.CleanKey(path)
	if _, err := bb.bfs.Stat(name); err != nil {
		return mapError(err, name)
	}

	if err := bb.bfs.Remove(name); err != nil {
		return mapError(err, name)
	}

	return nil
}

func (bb *BillyBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	bb.mu.RLock()
	defer bb.mu.RUnlock()

	name := backend.CleanKey(path)
	dir := name
	if dir == backend.RootPath {
		dir = "/"
	} else {
		info, err := bb.bfs.Stat(name)
		if err != nil {
			return nil, mapError(err, name)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: '%s' is not a directory", data.ErrInvalidOperation, name)
		}
	}

	infos, err := bb.bfs.ReadDir(dir)
	if err != nil {
		return nil, mapError(err, name)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Open is a no-op, billy files are opened per operation.
func (*BillyBackend) Open(ctx context.Context, path string) error {
	return nil
}

// Close is a no-op, billy files are opened per operation.
func (*BillyBackend) Close(ctx context.Context, path string) error {
	return nil
}

func mapError(err error, key string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return backend.NotFound(key)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", data.ErrPermissionDenied, key)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", data.ErrAlreadyExists, key)
	default:
		return data.Other(fmt.Sprintf("billy '%s'", key), err)
	}
}

package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps every entry in an ordered in-memory B-tree keyed by its
// cleaned relative path. Directories are implicit: a directory exists as long
// as at least one key lives below it.
type MemoryBackend struct {
	mu   sync.RWMutex
	keys *btree.Map[string, []byte]
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		keys: btree.NewMap[string, []byte](0),
	}
}

// Name returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*MemoryBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities:  backend.ReadWriteCapabilities(),
		MaxObjectSize: 10485760, // 10 MB
	}
}

func (mb *MemoryBackend) Read(ctx context.Context, path string) ([]byte, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	key := backend.CleanKey(path)
	content, exists := mb.keys.Get(key)
	if !exists {
		return nil, backend.NotFound(key)
	}

	return append([]byte(nil), content...), nil
}

func (mb *MemoryBackend) Write(ctx context.Context, path string, content []byte) error {
	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return fmt.Errorf("%w: cannot write to backend root", data.ErrInvalidOperation)
	}

	caps := mb.GetCapabilities()
	if caps.MaxObjectSize > 0 && int64(len(content)) > caps.MaxObjectSize {
		return data.Other(fmt.Sprintf("object '%s' exceeds max size of %d bytes", key, caps.MaxObjectSize), nil)
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.keys.Set(key, append([]byte(nil), content...))
	return nil
}

func (mb *MemoryBackend) Exists(ctx context.Context, path string) (bool, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	key := backend.CleanKey(path)
	if key == backend.RootPath {
		return true, nil
	}

	if _, exists := mb.keys.Get(key); exists {
		return true, nil
	}

	return mb.hasChildren(key), nil
}

func (mb *MemoryBackend) Remove(ctx context.Context, path string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	key := backend.CleanKey(path)
	if _, deleted := mb.keys.Delete(key); !deleted {
		return backend.NotFound(key)
	}

	return nil
}

func (mb *MemoryBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	collector := backend.NewChildCollector(path)
	mb.keys.Ascend(collector.Prefix(), func(key string, _ []byte) bool {
		return collector.Add(key)
	})

	_, isEntry := mb.keys.Get(backend.CleanKey(path))
	return collector.Result(path, isEntry)
}

// Open is a no-op, the memory backend keeps no session state.
func (*MemoryBackend) Open(ctx context.Context, path string) error {
	return nil
}

// Close is a no-op, the memory backend keeps no session state.
func (*MemoryBackend) Close(ctx context.Context, path string) error {
	return nil
}

// Shutdown drops every stored entry.
func (mb *MemoryBackend) Shutdown(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.keys.Clear()
	return nil
}

// Len returns the number of stored entries.
func (mb *MemoryBackend) Len() int {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	return mb.keys.Len()
}

// hasChildren must be called with lock held.
func (mb *MemoryBackend) hasChildren(key string) bool {
	prefix := backend.DirPrefix(key)
	found := false
	mb.keys.Ascend(prefix, func(k string, _ []byte) bool {
		found = len(k) > len(prefix) && strings.HasPrefix(k, prefix)
		return false
	})

	return found
}

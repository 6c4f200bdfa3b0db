package vfsmux

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
	"github.com/mwantia/vfsmux/log"
)

// MountTable maps mount paths onto backends and resolves full paths to them.
// It is safe for concurrent use; the lock is never held while a backend is called.
type MountTable struct {
	mu     sync.RWMutex
	log    *log.Logger
	mounts map[string]*MountEntry
}

func NewMountTable(opts ...MountTableOption) (*MountTable, error) {
	options := newDefaultMountTableOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("vfs", options.LogLevel, options.LogFile, options.NoTerminalLog)
		logger.JSON = options.JSONLog
	}

	return &MountTable{
		log:    logger,
		mounts: make(map[string]*MountEntry),
	}, nil
}

// Mount registers b at path, replacing any backend mounted at exactly that path.
func (m *MountTable) Mount(path string, b backend.Backend) error {
	if b == nil {
		return fmt.Errorf("%w: nil backend for mount '%s'", data.ErrInvalidOperation, path)
	}

	path = normalizeMountPath(path)

	id, err := uuid.NewV7()
	if err != nil {
		return data.Other(fmt.Sprintf("mount id for '%s'", path), err)
	}

	entry := &MountEntry{
		path:    path,
		backend: b,
		info: MountInfo{
			ID:        id.String(),
			Path:      path,
			Backend:   b.Name(),
			MountedAt: time.Now(),
		},
	}

	m.mu.Lock()
	_, replaced := m.mounts[path]
	m.mounts[path] = entry
	m.mu.Unlock()

	if replaced {
		m.log.Debug("replaced mount '%s' with backend '%s'", path, b.Name())
	} else {
		m.log.Debug("mounted backend '%s' at '%s'", b.Name(), path)
	}

	return nil
}

// Unmount removes the entry at exactly path.
// Returns ErrNotFound if nothing is mounted there.
func (m *MountTable) Unmount(path string) error {
	path = normalizeMountPath(path)

	m.mu.Lock()
	entry, exists := m.mounts[path]
	if exists {
		delete(m.mounts, path)
	}
	m.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: no mount at '%s'", data.ErrNotFound, path)
	}

	m.log.Debug("unmounted backend '%s' from '%s'", entry.backend.Name(), path)
	return nil
}

// Find returns the backend owning fullPath together with the path relative to it.
func (m *MountTable) Find(fullPath string) (backend.Backend, string, error) {
	entry, relPath, err := m.find(fullPath)
	if err != nil {
		return nil, "", err
	}

	return entry.backend, relPath, nil
}

// Lookup resolves fullPath into a VNode bound to the owning backend.
func (m *MountTable) Lookup(fullPath string) (*VNode, error) {
	entry, relPath, err := m.find(fullPath)
	if err != nil {
		return nil, err
	}

	nodeType := data.NodeTypeRegular
	if relPath == "" || strings.HasSuffix(fullPath, "/") {
		nodeType = data.NodeTypeDirectory
	}

	if relPath == "" {
		relPath = backend.RootPath
	}

	return &VNode{
		path:     relPath,
		nodeType: nodeType,
		backend:  entry.backend,
	}, nil
}

// Mounts returns information about all mounts, sorted by path.
func (m *MountTable) Mounts() []MountInfo {
	m.mu.RLock()
	infos := make([]MountInfo, 0, len(m.mounts))
	for _, entry := range m.mounts {
		infos = append(infos, entry.info)
	}
	m.mu.RUnlock()

	slices.SortFunc(infos, func(a, b MountInfo) int {
		return strings.Compare(a.Path, b.Path)
	})

	return infos
}

// Shutdown removes every mount and shuts down each distinct backend once.
func (m *MountTable) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	entries := make([]*MountEntry, 0, len(m.mounts))
	for _, entry := range m.mounts {
		entries = append(entries, entry)
	}
	m.mounts = make(map[string]*MountEntry)
	m.mu.Unlock()

	errs := data.Errors{}
	for _, b := range uniqueBackends(entries) {
		shutdowner, ok := b.(backend.Shutdowner)
		if !ok {
			continue
		}

		if err := shutdowner.Shutdown(ctx); err != nil {
			m.log.Warn("failed to shutdown backend '%s': %v", b.Name(), err)
			errs.Add(fmt.Errorf("shutdown '%s': %w", b.Name(), err))
		}
	}

	m.log.Debug("shutdown %d mount(s)", len(entries))
	return errs.Errors()
}

func (m *MountTable) find(fullPath string) (*MountEntry, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Find longest matching mount point
	var best *MountEntry
	for mountPath, entry := range m.mounts {
		if !hasMountPrefix(fullPath, mountPath) {
			continue
		}

		if best == nil || len(mountPath) > len(best.path) {
			best = entry
		}
	}

	if best == nil {
		return nil, "", fmt.Errorf("%w: no mount for '%s'", data.ErrNotFound, fullPath)
	}

	return best, relativePath(fullPath, best.path), nil
}

// uniqueBackends returns each backend once, even if mounted at several paths.
func uniqueBackends(entries []*MountEntry) []backend.Backend {
	seen := make(map[backend.Backend]struct{}, len(entries))
	backends := make([]backend.Backend, 0, len(entries))

	for _, entry := range entries {
		if _, exists := seen[entry.backend]; exists {
			continue
		}

		seen[entry.backend] = struct{}{}
		backends = append(backends, entry.backend)
	}

	return backends
}

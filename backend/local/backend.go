package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
	"github.com/spf13/afero"
)

// LocalBackend stores entries as files on an afero filesystem.
// Directories are real directories and are created on demand when writing.
// Unlike the key-value backends it tracks open handles between Open and Close.
type LocalBackend struct {
	mu sync.RWMutex
	fs afero.Fs

	handles map[string]afero.File
}

// NewLocalBackend creates a backend rooted at the directory path on the local disk.
func NewLocalBackend(path string) (*LocalBackend, error) {
	info, err := afero.NewOsFs().Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", data.ErrNotFound, path)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", data.ErrPermissionDenied, path)
		}
		return nil, data.Other(fmt.Sprintf("stat '%s'", path), err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", data.ErrInvalidOperation, path)
	}

	return NewAferoBackend(afero.NewBasePathFs(afero.NewOsFs(), path)), nil
}

// NewAferoBackend creates a backend on top of any afero filesystem, e.g. afero.NewMemMapFs().
func NewAferoBackend(afs afero.Fs) *LocalBackend {
	return &LocalBackend{
		fs:      afs,
		handles: make(map[string]afero.File),
	}
}

// Name returns the identifier name defined for this backend
func (*LocalBackend) Name() string {
	return "local"
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*LocalBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: append(backend.ReadWriteCapabilities(),
			backend.CapabilitySession,
			backend.CapabilityPersistent,
		),
	}
}

// Open keeps a handle to path open until Close is called.
// Returns data.ErrAlreadyExists if the path is already open.
func (lb *LocalBackend) Open(ctx context.Context, path string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	name := toName(path)
	if _, exists := lb.handles[name]; exists {
		return fmt.Errorf("%w: handle for '%s' already open", data.ErrAlreadyExists, backend.CleanKey(path))
	}

	file, err := lb.fs.Open(name)
	if err != nil {
		return mapError(err, path)
	}

	lb.handles[name] = file
	return nil
}

// Close releases the handle opened by Open.
// Returns data.ErrNotFound if no handle is open for path.
func (lb *LocalBackend) Close(ctx context.Context, path string) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	name := toName(path)
	file, exists := lb.handles[name]
	if !exists {
		return fmt.Errorf("%w: no open handle for '%s'", data.ErrNotFound, backend.CleanKey(path))
	}

	delete(lb.handles, name)
	if err := file.Close(); err != nil {
		return mapError(err, path)
	}

	return nil
}

// OpenHandles returns the number of handles currently held open.
func (lb *LocalBackend) OpenHandles() int {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	return len(lb.handles)
}

// Shutdown closes every handle that is still open.
func (lb *LocalBackend) Shutdown(ctx context.Context) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	errs := data.Errors{}
	for name, file := range lb.handles {
		errs.Add(file.Close())
		delete(lb.handles, name)
	}

	return errs.Errors()
}

// toName converts a relative path into an afero file name.
func toName(path string) string {
	return "/" + backend.CleanKey(path)
}

func mapError(err error, path string) error {
	key := backend.CleanKey(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return backend.NotFound(key)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", data.ErrPermissionDenied, key)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", data.ErrAlreadyExists, key)
	default:
		return data.Other(fmt.Sprintf("local '%s'", key), err)
	}
}

package readonly

import (
	"context"
	"fmt"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

// ReadOnlyBackend wraps any backend to make it read-only.
// Read operations and session hooks are passed through to the underlying backend,
// Write and Remove fail with data.ErrPermissionDenied.
type ReadOnlyBackend struct {
	backend backend.Backend
}

func NewReadOnlyBackend(b backend.Backend) *ReadOnlyBackend {
	return &ReadOnlyBackend{
		backend: b,
	}
}

func (rob *ReadOnlyBackend) Name() string {
	return "readonly/" + rob.backend.Name()
}

func (rob *ReadOnlyBackend) GetCapabilities() *backend.BackendCapabilities {
	return rob.backend.GetCapabilities().Without(backend.CapabilityWrite, backend.CapabilityRemove)
}

func (rob *ReadOnlyBackend) Read(ctx context.Context, path string) ([]byte, error) {
	return rob.backend.Read(ctx, path)
}

func (rob *ReadOnlyBackend) Write(ctx context.Context, path string, content []byte) error {
	return fmt.Errorf("%w: '%s' is read-only", data.ErrPermissionDenied, path)
}

func (rob *ReadOnlyBackend) Exists(ctx context.Context, path string) (bool, error) {
	return rob.backend.Exists(ctx, path)
}

func (rob *ReadOnlyBackend) Remove(ctx context.Context, path string) error {
	return fmt.Errorf("%w: '%s' is read-only", data.ErrPermissionDenied, path)
}

func (rob *ReadOnlyBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	return rob.backend.ListDir(ctx, path)
}

func (rob *ReadOnlyBackend) Open(ctx context.Context, path string) error {
	return rob.backend.Open(ctx, path)
}

func (rob *ReadOnlyBackend) Close(ctx context.Context, path string) error {
	return rob.backend.Close(ctx, path)
}

// Unwrap returns the wrapped backend.
func (rob *ReadOnlyBackend) Unwrap() backend.Backend {
	return rob.backend
}

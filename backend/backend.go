package backend

import "context"

// RootPath is the relative path a backend receives when a lookup addresses its mount root.
const RootPath = ""

// Backend is the capability set every mountable storage implementation provides.
// All paths are relative to the backend's own root: they never start with '/'
// and never contain the prefix the backend is mounted at.
// Implementations are responsible for guarding their own state.
type Backend interface {
	// Name returns the identifier name defined for this backend.
	Name() string

	// GetCapabilities returns a list of capabilities supported by this backend.
	GetCapabilities() *BackendCapabilities

	// Read returns the content stored at path.
	// Returns data.ErrNotFound if the path doesn't exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores content at path, replacing anything stored there before.
	Write(ctx context.Context, path string, content []byte) error

	// Exists reports whether something is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Remove deletes the entry at path.
	// Returns data.ErrNotFound if the path doesn't exist.
	Remove(ctx context.Context, path string) error

	// ListDir returns the names of the immediate children below path.
	// The order is stable for an unchanged backend.
	ListDir(ctx context.Context, path string) ([]string, error)

	// Open is a session hook called before a path is used.
	// Backends without session state treat it as a no-op.
	Open(ctx context.Context, path string) error

	// Close is the counterpart to Open.
	Close(ctx context.Context, path string) error
}

// Shutdowner is implemented by backends that hold resources (connections,
// database handles) which have to be released when the mount table shuts down.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

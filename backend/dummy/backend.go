package dummy

import (
	"context"
	"fmt"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/data"
)

// DummyBackend is a placeholder that can be mounted but never holds anything.
// Every operation fails, which makes it useful to reserve a path or to test
// error propagation through the mount table.
type DummyBackend struct {
	name string
}

func NewDummyBackend() *DummyBackend {
	return &DummyBackend{name: "dummy"}
}

// Name returns the identifier name defined for this backend
func (db *DummyBackend) Name() string {
	return db.name
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (*DummyBackend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{}
}

func (db *DummyBackend) Read(ctx context.Context, path string) ([]byte, error) {
	return nil, db.fail("read", path)
}

func (db *DummyBackend) Write(ctx context.Context, path string, content []byte) error {
	return db.fail("write", path)
}

func (db *DummyBackend) Exists(ctx context.Context, path string) (bool, error) {
	return false, db.fail("exists", path)
}

func (db *DummyBackend) Remove(ctx context.Context, path string) error {
	return db.fail("remove", path)
}

func (db *DummyBackend) ListDir(ctx context.Context, path string) ([]string, error) {
	return nil, db.fail("list", path)
}

func (db *DummyBackend) Open(ctx context.Context, path string) error {
	return db.fail("open", path)
}

func (db *DummyBackend) Close(ctx context.Context, path string) error {
	return db.fail("close", path)
}

func (db *DummyBackend) fail(op, path string) error {
	return data.Other(fmt.Sprintf("%s '%s': not found in %s FS", op, path, db.name), nil)
}

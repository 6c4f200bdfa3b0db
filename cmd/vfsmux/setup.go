package main

import (
	"context"
	"fmt"

	"github.com/mwantia/vfsmux"
	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/backend/dummy"
	"github.com/mwantia/vfsmux/backend/local"
	"github.com/mwantia/vfsmux/backend/memory"
	"github.com/mwantia/vfsmux/backend/readonly"
	"github.com/mwantia/vfsmux/backend/sqlite"
)

type mountConfig struct {
	SQLite   string
	Local    string
	ReadOnly bool
}

// setupMounts builds the demo layout: two nested in-memory backends, a
// placeholder and any optional stores requested on the command line.
func setupMounts(ctx context.Context, mt *vfsmux.MountTable, cfg *mountConfig) error {
	root := memory.NewMemoryBackend()
	nested := memory.NewMemoryBackend()

	mounts := map[string]backend.Backend{
		"/root":        root,
		"/root/nested": nested,
		"/dummy":       dummy.NewDummyBackend(),
	}

	if cfg.SQLite != "" {
		sb, err := sqlite.NewSQLiteBackend(cfg.SQLite)
		if err != nil {
			return err
		}
		mounts["/sqlite"] = sb
	}

	if cfg.Local != "" {
		lb, err := local.NewLocalBackend(cfg.Local)
		if err != nil {
			return err
		}

		var b backend.Backend = lb
		if cfg.ReadOnly {
			b = readonly.NewReadOnlyBackend(lb)
		}
		mounts["/local"] = b
	}

	for path, b := range mounts {
		if err := mt.Mount(path, b); err != nil {
			return fmt.Errorf("failed to mount '%s': %w", path, err)
		}
	}

	files := map[string]string{
		"/root/readme.txt":           "Welcome to the vfsmux demo!",
		"/root/docs/notes.txt":       "Paths under /root/nested belong to another backend.",
		"/root/nested/other.txt":     "Hello from the nested mount.",
		"/root/nested/logs/boot.log": "boot entry 1\nboot entry 2",
	}

	for path, content := range files {
		node, err := mt.Lookup(path)
		if err != nil {
			return err
		}

		if err := node.Write(ctx, []byte(content)); err != nil {
			return fmt.Errorf("failed to write '%s': %w", path, err)
		}
	}

	return nil
}

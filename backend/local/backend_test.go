package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/vfsmux/data"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBackend_Handles(t *testing.T) {
	ctx := t.Context()
	lb := NewAferoBackend(afero.NewMemMapFs())

	require.NoError(t, lb.Write(ctx, "a.txt", []byte("a")))
	require.NoError(t, lb.Open(ctx, "a.txt"))
	assert.Equal(t, 1, lb.OpenHandles())

	err := lb.Open(ctx, "/a.txt/")
	assert.ErrorIs(t, err, data.ErrAlreadyExists)

	require.NoError(t, lb.Close(ctx, "a.txt"))
	assert.Equal(t, 0, lb.OpenHandles())
	assert.ErrorIs(t, lb.Close(ctx, "a.txt"), data.ErrNotFound)

	assert.ErrorIs(t, lb.Open(ctx, "missing.txt"), data.ErrNotFound)

	require.NoError(t, lb.Open(ctx, "a.txt"))
	require.NoError(t, lb.Shutdown(ctx))
	assert.Equal(t, 0, lb.OpenHandles())
}

func TestLocalBackend_DirectoryGuards(t *testing.T) {
	ctx := t.Context()
	lb := NewAferoBackend(afero.NewMemMapFs())

	require.NoError(t, lb.Write(ctx, "docs/readme.txt", []byte("r")))

	_, err := lb.Read(ctx, "docs")
	assert.ErrorIs(t, err, data.ErrInvalidOperation)

	err = lb.Write(ctx, "docs", []byte("x"))
	assert.ErrorIs(t, err, data.ErrInvalidOperation)
}

func TestNewLocalBackend(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "host.txt"), []byte("from disk"), 0644))

	lb, err := NewLocalBackend(root)
	require.NoError(t, err)

	content, err := lb.Read(t.Context(), "host.txt")
	require.NoError(t, err)
	assert.Equal(t, "from disk", string(content))

	_, err = NewLocalBackend(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, data.ErrNotFound)

	_, err = NewLocalBackend(filepath.Join(root, "host.txt"))
	assert.ErrorIs(t, err, data.ErrInvalidOperation)
}

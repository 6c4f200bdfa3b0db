package readonly

import (
	"testing"

	"github.com/mwantia/vfsmux/backend"
	"github.com/mwantia/vfsmux/backend/memory"
	"github.com/mwantia/vfsmux/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadOnly(t *testing.T) (*ReadOnlyBackend, *memory.MemoryBackend) {
	t.Helper()

	inner := memory.NewMemoryBackend()
	require.NoError(t, inner.Write(t.Context(), "docs/readme.txt", []byte("hello")))

	return NewReadOnlyBackend(inner), inner
}

func TestReadOnlyBackend_ReadOperations(t *testing.T) {
	ctx := t.Context()
	rob, _ := newReadOnly(t)

	content, err := rob.Read(ctx, "docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	exists, err := rob.Exists(ctx, "docs/readme.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	names, err := rob.ListDir(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.txt"}, names)

	assert.NoError(t, rob.Open(ctx, "docs/readme.txt"))
	assert.NoError(t, rob.Close(ctx, "docs/readme.txt"))
}

func TestReadOnlyBackend_WriteOperationsFail(t *testing.T) {
	ctx := t.Context()
	rob, inner := newReadOnly(t)

	err := rob.Write(ctx, "docs/readme.txt", []byte("changed"))
	assert.ErrorIs(t, err, data.ErrPermissionDenied)

	err = rob.Remove(ctx, "docs/readme.txt")
	assert.ErrorIs(t, err, data.ErrPermissionDenied)

	content, err := inner.Read(ctx, "docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestReadOnlyBackend_Capabilities(t *testing.T) {
	rob, inner := newReadOnly(t)

	caps := rob.GetCapabilities()
	assert.True(t, caps.Contains(backend.CapabilityRead))
	assert.False(t, caps.Contains(backend.CapabilityWrite))
	assert.False(t, caps.Contains(backend.CapabilityRemove))
	assert.Equal(t, "readonly/memory", rob.Name())
	assert.Same(t, inner, rob.Unwrap())
}

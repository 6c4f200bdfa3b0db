package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwantia/vfsmux"
	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/command/builtin"
	"github.com/mwantia/vfsmux/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCenter(t *testing.T, cfg *mountConfig) (*vfsmux.MountTable, *command.Center) {
	t.Helper()

	mt, err := vfsmux.NewMountTable(vfsmux.WithLogger(log.NewDiscard()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mt.Shutdown(t.Context())
	})

	require.NoError(t, setupMounts(t.Context(), mt, cfg))

	center := command.NewCenter(mt, log.NewDiscard())
	require.NoError(t, builtin.Register(center))

	return mt, center
}

func TestSetupMounts(t *testing.T) {
	mt, _ := newTestCenter(t, &mountConfig{
		SQLite:   ":memory:",
		Local:    t.TempDir(),
		ReadOnly: true,
	})

	var paths []string
	for _, info := range mt.Mounts() {
		paths = append(paths, info.Path)
	}
	assert.Equal(t, []string{"/dummy", "/local", "/root", "/root/nested", "/sqlite"}, paths)

	node, err := mt.Lookup("/root/nested/other.txt")
	require.NoError(t, err)
	content, err := node.Read(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Hello from the nested mount.", string(content))

	node, err = mt.Lookup("/local/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "readonly/local", node.Backend().Name())
}

func TestSetupMounts_InvalidLocal(t *testing.T) {
	mt, err := vfsmux.NewMountTable(vfsmux.WithLogger(log.NewDiscard()))
	require.NoError(t, err)

	err = setupMounts(t.Context(), mt, &mountConfig{Local: "/does/not/exist"})
	assert.Error(t, err)
}

func TestRunShell(t *testing.T) {
	_, center := newTestCenter(t, &mountConfig{SQLite: ":memory:"})

	in := strings.NewReader(strings.Join([]string{
		"write /sqlite/a.txt stored",
		"cat /sqlite/a.txt",
		"",
		"cat /root/missing.txt",
		"exit",
		"cat /root/readme.txt",
	}, "\n"))
	out := &bytes.Buffer{}

	runShell(t.Context(), center, in, out)

	assert.Contains(t, out.String(), "stored")
	assert.Contains(t, out.String(), "error: cat: /root/missing.txt")
	assert.NotContains(t, out.String(), "Welcome")
}

func TestRunDemo(t *testing.T) {
	_, center := newTestCenter(t, &mountConfig{})

	out := &bytes.Buffer{}
	code := runDemo(t.Context(), center, out, log.NewDiscard())
	assert.Equal(t, 0, code)

	for _, line := range demoScript {
		assert.Contains(t, out.String(), "$ "+line)
	}
	assert.Contains(t, out.String(), "Welcome to the vfsmux demo!")
	assert.Contains(t, out.String(), "not found in dummy FS")
}

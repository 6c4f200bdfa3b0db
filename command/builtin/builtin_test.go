package builtin_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwantia/vfsmux"
	"github.com/mwantia/vfsmux/backend/dummy"
	"github.com/mwantia/vfsmux/backend/memory"
	"github.com/mwantia/vfsmux/backend/readonly"
	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/command/builtin"
	"github.com/mwantia/vfsmux/data"
	"github.com/mwantia/vfsmux/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type shell struct {
	t      *testing.T
	center *command.Center
	mt     *vfsmux.MountTable
}

func newShell(t *testing.T) *shell {
	t.Helper()

	mt, err := vfsmux.NewMountTable(vfsmux.WithLogger(log.NewDiscard()))
	require.NoError(t, err)

	require.NoError(t, mt.Mount("/root", memory.NewMemoryBackend()))
	require.NoError(t, mt.Mount("/root/nested", memory.NewMemoryBackend()))
	require.NoError(t, mt.Mount("/dummy", dummy.NewDummyBackend()))

	center := command.NewCenter(mt, log.NewDiscard())
	require.NoError(t, builtin.Register(center))

	return &shell{t: t, center: center, mt: mt}
}

func (s *shell) run(line string) (string, int, error) {
	buf := &bytes.Buffer{}
	code, err := s.center.ExecuteLine(s.t.Context(), buf, line)
	return buf.String(), code, err
}

func (s *shell) must(line string) string {
	out, code, err := s.run(line)
	require.NoError(s.t, err, line)
	require.Equal(s.t, 0, code, line)
	return out
}

func TestBuiltin_WriteAndCat(t *testing.T) {
	s := newShell(t)

	s.must("write /root/file.txt hello world")
	assert.Equal(t, "hello world", s.must("cat /root/file.txt"))

	s.must("write -a /root/file.txt again")
	assert.Equal(t, "hello worldagain", s.must("cat /root/file.txt"))

	s.must("write -n /root/nested/other.txt 'in nested'")
	assert.Equal(t, "in nested\n", s.must("cat /root/nested/other.txt"))

	// Appending to a missing entry creates it
	s.must("write --append /root/new.txt fresh")
	assert.Equal(t, "fresh", s.must("cat /root/new.txt"))

	_, code, err := s.run("cat /root/missing.txt")
	assert.ErrorIs(t, err, data.ErrNotFound)
	assert.Equal(t, 2, code)

	_, code, err = s.run("cat /root/")
	assert.ErrorIs(t, err, data.ErrInvalidOperation)
	assert.Equal(t, 3, code)

	_, code, err = s.run("cat")
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestBuiltin_Ls(t *testing.T) {
	s := newShell(t)

	s.must("write /root/a.txt a")
	s.must("write /root/docs/readme.txt r")
	s.must("write /root/docs/guide/intro.txt i")

	lines := strings.Fields(s.must("ls /root"))
	assert.ElementsMatch(t, []string{"a.txt", "docs"}, lines)

	lines = strings.Fields(s.must("ls /root/docs/"))
	assert.ElementsMatch(t, []string{"readme.txt", "guide"}, lines)

	out := s.must("ls -R /root")
	assert.Contains(t, out, "/root:\n")
	assert.Contains(t, out, "/root/docs:\n")
	assert.Contains(t, out, "/root/docs/guide:\n")
	assert.Contains(t, out, "intro.txt\n")

	_, code, err := s.run("ls /root/a.txt")
	assert.Error(t, err)
	assert.NotEqual(t, 0, code)

	_, _, err = s.run("ls /nowhere")
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestBuiltin_RmAndExists(t *testing.T) {
	s := newShell(t)

	s.must("write /root/file.txt x")
	assert.Equal(t, "true\n", s.must("exists /root/file.txt"))

	s.must("rm /root/file.txt")

	out, code, err := s.run("exists /root/file.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, "false\n", out)

	out, code, err = s.run("exists -q /root/file.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)

	_, code, err = s.run("rm /root/file.txt")
	assert.ErrorIs(t, err, data.ErrNotFound)
	assert.Equal(t, 2, code)

	s.must("rm -f /root/file.txt /nowhere/file.txt")
}

func TestBuiltin_Stat(t *testing.T) {
	s := newShell(t)
	s.must("write /root/nested/file.txt x")

	out := s.must("stat /root/nested/file.txt")
	assert.Contains(t, out, "Relative: file.txt")
	assert.Contains(t, out, "Type:     regular")
	assert.Contains(t, out, "Exists:   true")

	out = s.must("stat --json /root/")
	assert.Equal(t, "memory", gjson.Get(out, "backend").String())
	assert.Equal(t, "", gjson.Get(out, "relative").String())
	assert.Equal(t, "directory", gjson.Get(out, "type").String())
	assert.True(t, gjson.Get(out, "exists").Bool())
	assert.True(t, gjson.Get(out, `capabilities.#(=="write")`).Exists())

	_, _, err := s.run("stat /dummy/file.txt")
	assert.ErrorIs(t, err, data.ErrOther)
}

func TestBuiltin_Mounts(t *testing.T) {
	s := newShell(t)

	out := s.must("mounts")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "PATH"))
	assert.True(t, strings.HasPrefix(lines[1], "/dummy"))
	assert.True(t, strings.HasPrefix(lines[2], "/root "))
	assert.True(t, strings.HasPrefix(lines[3], "/root/nested"))

	out = s.must("mounts --json")
	result := gjson.Parse(out)
	require.True(t, result.IsArray())
	assert.Equal(t, int64(3), gjson.Get(out, "#").Int())
	assert.Equal(t, "/dummy", gjson.Get(out, "0.path").String())
	assert.Equal(t, "dummy", gjson.Get(out, "0.backend").String())
	assert.Equal(t, "/root/nested", gjson.Get(out, "2.path").String())
	assert.NotEmpty(t, gjson.Get(out, "1.id").String())
}

func TestBuiltin_ReadOnlyMount(t *testing.T) {
	s := newShell(t)

	inner := memory.NewMemoryBackend()
	require.NoError(t, inner.Write(t.Context(), "motd", []byte("hi")))
	require.NoError(t, s.mt.Mount("/etc", readonly.NewReadOnlyBackend(inner)))

	assert.Equal(t, "hi", s.must("cat /etc/motd"))

	_, code, err := s.run("write /etc/motd bye")
	assert.ErrorIs(t, err, data.ErrPermissionDenied)
	assert.Equal(t, 4, code)
}

func TestBuiltin_Help(t *testing.T) {
	s := newShell(t)

	out := s.must("help")
	for _, name := range []string{"cat", "exists", "help", "ls", "mounts", "rm", "stat", "write"} {
		assert.Contains(t, out, name)
	}

	out = s.must("help rm")
	assert.Contains(t, out, "usage: rm [-f] <path>...")
	assert.Contains(t, out, "--force")

	_, code, err := s.run("help nothing")
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

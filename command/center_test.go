package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/mwantia/vfsmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct{}

func (*echoCommand) Name() string        { return "echo" }
func (*echoCommand) Description() string { return "Echo arguments" }
func (*echoCommand) Usage() string       { return "echo [-u] <words>..." }

func (*echoCommand) Flags() *FlagSet {
	return &FlagSet{Flags: []*Flag{{Name: "upper", Short: "u"}}}
}

func (*echoCommand) Execute(ctx context.Context, api API, args *Args, w io.Writer) (int, error) {
	out := strings.Join(args.Positional, " ")
	if args.Bool("upper") {
		out = strings.ToUpper(out)
	}

	if out == "" {
		return 1, fmt.Errorf("nothing to echo")
	}

	fmt.Fprintln(w, out)
	return 0, nil
}

type emptyAPI struct{}

func (emptyAPI) Lookup(string) (*vfsmux.VNode, error) { return nil, vfsmux.ErrNotFound }
func (emptyAPI) Mounts() []vfsmux.MountInfo         { return nil }

func TestCenter_RegisterAndExecute(t *testing.T) {
	center := NewCenter(emptyAPI{}, nil)
	require.NoError(t, center.Register(&echoCommand{}))

	buf := &bytes.Buffer{}
	code, err := center.Execute(t.Context(), buf, "echo", "-u", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "HELLO WORLD\n", buf.String())

	buf.Reset()
	code, err = center.ExecuteLine(t.Context(), buf, `echo "quoted words"`)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "quoted words\n", buf.String())
}

func TestCenter_Errors(t *testing.T) {
	center := NewCenter(emptyAPI{}, nil)
	require.NoError(t, center.Register(&echoCommand{}))

	assert.Error(t, center.Register(&echoCommand{}))
	assert.Error(t, center.Register(nil))

	code, err := center.Execute(t.Context(), io.Discard)
	assert.Error(t, err)
	assert.Equal(t, 1, code)

	code, err = center.Execute(t.Context(), io.Discard, "missing")
	assert.Error(t, err)
	assert.Equal(t, 1, code)

	code, err = center.Execute(t.Context(), io.Discard, "echo", "--bogus")
	assert.ErrorContains(t, err, "parse error")
	assert.Equal(t, 1, code)

	code, err = center.Execute(t.Context(), io.Discard, "echo")
	assert.Error(t, err)
	assert.Equal(t, 1, code)

	code, err = center.ExecuteLine(t.Context(), io.Discard, "   ")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestCenter_UnregisterAndCommands(t *testing.T) {
	center := NewCenter(emptyAPI{}, nil)
	require.NoError(t, center.Register(&echoCommand{}))

	commands := center.Commands()
	require.Len(t, commands, 1)
	assert.Equal(t, "echo", commands[0].Name())

	require.NoError(t, center.Unregister("echo"))
	assert.Error(t, center.Unregister("echo"))
	assert.Empty(t, center.Commands())

	_, err := center.Get("echo")
	assert.Error(t, err)
}

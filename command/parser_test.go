package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlagSet() *FlagSet {
	return &FlagSet{
		Flags: []*Flag{
			{Name: "recursive", Short: "R"},
			{Name: "force", Short: "f", Type: FlagBool},
			{Name: "name", Short: "n", Type: FlagString, Default: "default"},
			{Name: "count", Short: "c", Type: FlagInt},
		},
	}
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name       string
		raw        []string
		positional []string
		flags      map[string]any
	}{
		{
			name:       "positional only",
			raw:        []string{"/a", "/b"},
			positional: []string{"/a", "/b"},
			flags:      map[string]any{"name": "default"},
		},
		{
			name:       "grouped bool shorthands",
			raw:        []string{"-Rf", "/a"},
			positional: []string{"/a"},
			flags:      map[string]any{"recursive": true, "force": true, "name": "default"},
		},
		{
			name:       "long with equals",
			raw:        []string{"--name=x", "--count=3"},
			positional: nil,
			flags:      map[string]any{"name": "x", "count": int64(3)},
		},
		{
			name:       "long with separate value",
			raw:        []string{"--name", "x", "/a"},
			positional: []string{"/a"},
			flags:      map[string]any{"name": "x"},
		},
		{
			name:       "short with attached value",
			raw:        []string{"-c5", "-nfoo"},
			positional: nil,
			flags:      map[string]any{"count": int64(5), "name": "foo"},
		},
		{
			name:       "double dash stops flag parsing",
			raw:        []string{"-f", "--", "-R", "--name"},
			positional: []string{"-R", "--name"},
			flags:      map[string]any{"force": true},
		},
		{
			name:       "single dash is positional",
			raw:        []string{"-"},
			positional: []string{"-"},
			flags:      map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := NewParser(testFlagSet()).Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.positional, args.Positional)
			assert.Equal(t, tt.raw, args.Raw)

			for name, want := range tt.flags {
				assert.Equal(t, want, args.Flags[name], name)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	parser := NewParser(testFlagSet())

	for _, raw := range [][]string{
		{"--unknown"},
		{"-x"},
		{"--name"},
		{"-c"},
		{"--count=abc"},
		{"--force=maybe"},
	} {
		_, err := parser.Parse(raw)
		assert.Error(t, err, "%v", raw)
	}
}

func TestParser_Required(t *testing.T) {
	parser := NewParser(&FlagSet{
		Flags: []*Flag{{Name: "target", Short: "t", Type: FlagString, Required: true}},
	})

	_, err := parser.Parse(nil)
	assert.EqualError(t, err, "required flag: -t / --target")

	args, err := parser.Parse([]string{"-t", "/a"})
	require.NoError(t, err)
	assert.Equal(t, "/a", args.String("target"))
}

func TestParser_NilFlagSet(t *testing.T) {
	args, err := NewParser(nil).Parse([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, args.NArg())
	assert.Equal(t, "b", args.Arg(1))
	assert.Equal(t, "", args.Arg(2))

	_, err = NewParser(nil).Parse([]string{"-a"})
	assert.Error(t, err)
}

func TestArgs_Accessors(t *testing.T) {
	args := &Args{Flags: map[string]any{"b": true, "s": "v", "i": int64(7), "n": 3}}

	assert.True(t, args.Bool("b"))
	assert.False(t, args.Bool("missing"))
	assert.Equal(t, "v", args.String("s"))
	assert.Equal(t, "7", args.String("i"))
	assert.Equal(t, "", args.String("missing"))
	assert.Equal(t, int64(7), args.Int("i"))
	assert.Equal(t, int64(3), args.Int("n"))
	assert.Equal(t, int64(0), args.Int("s"))
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"ls /root", []string{"ls", "/root"}},
		{"write /a  'hello world'", []string{"write", "/a", "hello world"}},
		{`write /a "it's" ''`, []string{"write", "/a", "it's", ""}},
		{"\tcat\t/a", []string{"cat", "/a"}},
	}

	for _, tt := range tests {
		got, err := SplitLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	_, err := SplitLine(`write /a "open`)
	assert.Error(t, err)
}

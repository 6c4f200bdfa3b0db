package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/vfsmux/command"
	"github.com/tidwall/sjson"
)

// StatCommand shows how a path resolves: owning backend, relative path and node type.
type StatCommand struct {
}

func (*StatCommand) Name() string {
	return "stat"
}

func (*StatCommand) Description() string {
	return "Show how a path resolves"
}

func (*StatCommand) Usage() string {
	return "stat [--json] <path>"
}

func (*StatCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "json", Short: "j", Description: "Print as JSON"},
		},
	}
}

func (sc *StatCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	if args.NArg() != 1 {
		return 1, fmt.Errorf("usage: %s", sc.Usage())
	}

	path := args.Arg(0)
	node, err := api.Lookup(path)
	if err != nil {
		return fail(sc.Name(), path, err)
	}

	exists, err := node.Exists(ctx)
	if err != nil {
		return fail(sc.Name(), path, err)
	}

	if !args.Bool("json") {
		tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
		fmt.Fprintf(tw, "Path:\t%s\n", path)
		fmt.Fprintf(tw, "Backend:\t%s\n", node.Backend().Name())
		fmt.Fprintf(tw, "Relative:\t%s\n", node.Path())
		fmt.Fprintf(tw, "Type:\t%s\n", node.Type())
		fmt.Fprintf(tw, "Exists:\t%t\n", exists)
		return 0, tw.Flush()
	}

	out := "{}"
	for _, field := range []struct {
		key   string
		value any
	}{
		{"path", path},
		{"backend", node.Backend().Name()},
		{"relative", node.Path()},
		{"type", node.Type().String()},
		{"exists", exists},
		{"capabilities", node.Backend().GetCapabilities().Capabilities},
	} {
		if out, err = sjson.Set(out, field.key, field.value); err != nil {
			return 1, err
		}
	}

	fmt.Fprintln(w, out)
	return 0, nil
}

package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsmux/command"
)

// ExistsCommand prints whether a path exists and exits non-zero when it does not.
type ExistsCommand struct {
}

func (*ExistsCommand) Name() string {
	return "exists"
}

func (*ExistsCommand) Description() string {
	return "Check whether a path exists"
}

func (*ExistsCommand) Usage() string {
	return "exists [-q] <path>"
}

func (*ExistsCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "quiet", Short: "q", Description: "Only report through the exit code"},
		},
	}
}

func (ec *ExistsCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	if args.NArg() != 1 {
		return 1, fmt.Errorf("usage: %s", ec.Usage())
	}

	path := args.Arg(0)
	node, err := api.Lookup(path)
	if err != nil {
		return fail(ec.Name(), path, err)
	}

	exists, err := node.Exists(ctx)
	if err != nil {
		return fail(ec.Name(), path, err)
	}

	if !args.Bool("quiet") {
		fmt.Fprintln(w, exists)
	}

	if !exists {
		return 1, nil
	}

	return 0, nil
}

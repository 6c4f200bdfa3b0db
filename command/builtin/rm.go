package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/data"
)

type RmCommand struct {
}

func (*RmCommand) Name() string {
	return "rm"
}

func (*RmCommand) Description() string {
	return "Remove one or more entries"
}

func (*RmCommand) Usage() string {
	return "rm [-f] <path>..."
}

func (*RmCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "force", Short: "f", Description: "Ignore entries that do not exist"},
		},
	}
}

func (rm *RmCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	if args.NArg() == 0 {
		return 1, fmt.Errorf("usage: %s", rm.Usage())
	}

	force := args.Bool("force")
	for _, path := range args.Positional {
		node, err := api.Lookup(path)
		if err == nil {
			err = node.Remove(ctx)
		}

		if err != nil {
			if force && errors.Is(err, data.ErrNotFound) {
				continue
			}
			return fail(rm.Name(), path, err)
		}
	}

	return 0, nil
}

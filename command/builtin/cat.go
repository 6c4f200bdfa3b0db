package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsmux/command"
)

type CatCommand struct {
}

func (*CatCommand) Name() string {
	return "cat"
}

func (*CatCommand) Description() string {
	return "Print the content of one or more entries"
}

func (*CatCommand) Usage() string {
	return "cat <path>..."
}

func (*CatCommand) Flags() *command.FlagSet {
	return nil
}

func (cat *CatCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	if args.NArg() == 0 {
		return 1, fmt.Errorf("usage: %s", cat.Usage())
	}

	for _, path := range args.Positional {
		node, err := api.Lookup(path)
		if err != nil {
			return fail(cat.Name(), path, err)
		}

		content, err := node.Read(ctx)
		if err != nil {
			return fail(cat.Name(), path, err)
		}

		if _, err := w.Write(content); err != nil {
			return 1, err
		}
	}

	return 0, nil
}

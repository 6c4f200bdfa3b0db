package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/data"
)

type WriteCommand struct {
}

func (*WriteCommand) Name() string {
	return "write"
}

func (*WriteCommand) Description() string {
	return "Write the remaining arguments into an entry"
}

func (*WriteCommand) Usage() string {
	return "write [-a] [-n] <path> <content>..."
}

func (*WriteCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "append", Short: "a", Description: "Append to the existing content"},
			{Name: "newline", Short: "n", Description: "Terminate the content with a newline"},
		},
	}
}

func (wc *WriteCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	if args.NArg() < 1 {
		return 1, fmt.Errorf("usage: %s", wc.Usage())
	}

	path := args.Arg(0)
	content := []byte(strings.Join(args.Positional[1:], " "))
	if args.Bool("newline") {
		content = append(content, '\n')
	}

	node, err := api.Lookup(path)
	if err != nil {
		return fail(wc.Name(), path, err)
	}

	if args.Bool("append") {
		existing, err := node.Read(ctx)
		if err != nil && !errors.Is(err, data.ErrNotFound) {
			return fail(wc.Name(), path, err)
		}
		content = append(existing, content...)
	}

	if err := node.Write(ctx, content); err != nil {
		return fail(wc.Name(), path, err)
	}

	return 0, nil
}

package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/vfsmux/command"
)

type LsCommand struct {
}

func (*LsCommand) Name() string {
	return "ls"
}

func (*LsCommand) Description() string {
	return "List the immediate children of a directory"
}

func (*LsCommand) Usage() string {
	return "ls [-R] [path...]"
}

func (*LsCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "recursive", Short: "R", Description: "List subdirectories recursively"},
		},
	}
}

func (ls *LsCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	paths := args.Positional
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	recursive := args.Bool("recursive")
	for i, path := range paths {
		if len(paths) > 1 || recursive {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", path)
		}

		names, err := ls.list(ctx, api, path)
		if err != nil {
			return fail(ls.Name(), path, err)
		}

		for _, name := range names {
			fmt.Fprintln(w, name)
		}

		if recursive {
			ls.walk(ctx, api, path, names, w)
		}
	}

	return 0, nil
}

func (*LsCommand) list(ctx context.Context, api command.API, path string) ([]string, error) {
	node, err := api.Lookup(asDir(path))
	if err != nil {
		return nil, err
	}

	return node.ListDir(ctx)
}

// walk descends into every child that can be listed; entries are leaves.
func (ls *LsCommand) walk(ctx context.Context, api command.API, dir string, names []string, w io.Writer) {
	for _, name := range names {
		child := joinPath(dir, name)

		children, err := ls.list(ctx, api, child)
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", child)
		for _, c := range children {
			fmt.Fprintln(w, c)
		}

		ls.walk(ctx, api, child, children, w)
	}
}

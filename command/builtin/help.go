package builtin

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mwantia/vfsmux/command"
)

type HelpCommand struct {
	Lister command.Lister
}

func (*HelpCommand) Name() string {
	return "help"
}

func (*HelpCommand) Description() string {
	return "Show available commands or the usage of one"
}

func (*HelpCommand) Usage() string {
	return "help [command]"
}

func (*HelpCommand) Flags() *command.FlagSet {
	return nil
}

func (hc *HelpCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	commands := hc.Lister.Commands()

	if args.NArg() == 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, cmd := range commands {
			fmt.Fprintf(tw, "%s\t%s\n", cmd.Name(), cmd.Description())
		}
		return 0, tw.Flush()
	}

	name := args.Arg(0)
	for _, cmd := range commands {
		if cmd.Name() != name {
			continue
		}

		fmt.Fprintf(w, "usage: %s\n\n%s\n", cmd.Usage(), cmd.Description())
		if flags := cmd.Flags(); flags != nil && len(flags.Flags) > 0 {
			fmt.Fprintln(w, "\nflags:")
			for _, flag := range flags.Flags {
				fmt.Fprintf(w, "  -%s, --%-12s %s\n", flag.Short, flag.Name, flag.Description)
			}
		}
		return 0, nil
	}

	return 1, fmt.Errorf("help: unknown command '%s'", name)
}

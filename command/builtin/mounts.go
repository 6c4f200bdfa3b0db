package builtin

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/mwantia/vfsmux"
	"github.com/mwantia/vfsmux/command"
	"github.com/tidwall/sjson"
)

type MountsCommand struct {
}

func (*MountsCommand) Name() string {
	return "mounts"
}

func (*MountsCommand) Description() string {
	return "List all mounts"
}

func (*MountsCommand) Usage() string {
	return "mounts [--json]"
}

func (*MountsCommand) Flags() *command.FlagSet {
	return &command.FlagSet{
		Flags: []*command.Flag{
			{Name: "json", Short: "j", Description: "Print as JSON"},
		},
	}
}

func (*MountsCommand) Execute(ctx context.Context, api command.API, args *command.Args, w io.Writer) (int, error) {
	infos := api.Mounts()

	if args.Bool("json") {
		out := "[]"
		for i, info := range infos {
			entry, err := mountJSON(info)
			if err != nil {
				return 1, err
			}

			if out, err = sjson.SetRaw(out, strconv.Itoa(i), entry); err != nil {
				return 1, err
			}
		}

		fmt.Fprintln(w, out)
		return 0, nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tBACKEND\tID\tMOUNTED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Path, info.Backend, info.ID, info.MountedAt.Format(time.DateTime))
	}

	return 0, tw.Flush()
}

func mountJSON(info vfsmux.MountInfo) (string, error) {
	out := "{}"
	for _, field := range [][2]string{
		{"id", info.ID},
		{"path", info.Path},
		{"backend", info.Backend},
		{"mounted_at", info.MountedAt.Format(time.RFC3339)},
	} {
		var err error
		if out, err = sjson.Set(out, field[0], field[1]); err != nil {
			return "", err
		}
	}

	return out, nil
}

package builtin

import (
	"fmt"
	"strings"

	"github.com/mwantia/vfsmux/command"
	"github.com/mwantia/vfsmux/data"
)

// Register adds every builtin command to c.
func Register(c *command.Center) error {
	for _, cmd := range []command.Command{
		&LsCommand{},
		&CatCommand{},
		&WriteCommand{},
		&RmCommand{},
		&ExistsCommand{},
		&StatCommand{},
		&MountsCommand{},
		&HelpCommand{Lister: c},
	} {
		if err := c.Register(cmd); err != nil {
			return err
		}
	}

	return nil
}

// asDir makes sure path resolves to a directory node.
func asDir(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}

	return path + "/"
}

func joinPath(dir, name string) string {
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// exitCode maps an error onto a shell exit code.
func exitCode(err error) int {
	switch data.KindOf(err) {
	case data.KindNone:
		return 0
	case data.KindNotFound:
		return 2
	case data.KindInvalidOperation:
		return 3
	case data.KindPermissionDenied:
		return 4
	default:
		return 1
	}
}

func fail(cmd, path string, err error) (int, error) {
	return exitCode(err), fmt.Errorf("%s: %s: %w", cmd, path, err)
}

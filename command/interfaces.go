package command

import (
	"context"
	"io"

	"github.com/mwantia/vfsmux"
)

// API is the part of the mount table that commands operate on.
type API interface {
	// Lookup resolves a full path into a node bound to its backend.
	Lookup(fullPath string) (*vfsmux.VNode, error)

	// Mounts lists every mount, sorted by path.
	Mounts() []vfsmux.MountInfo
}

// Command represents an executable shell command.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls [-R] [path]")
	Usage() string

	// Execute runs the command with parsed arguments, writing output to w.
	// Returns exit code (0 = success) and error.
	Execute(ctx context.Context, api API, args *Args, w io.Writer) (int, error)

	// Flags returns the flag set for this command, or nil
	Flags() *FlagSet
}

// Lister is implemented by anything that can enumerate registered commands.
type Lister interface {
	Commands() []Command
}

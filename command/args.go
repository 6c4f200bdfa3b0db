package command

import "fmt"

// Args contains the parsed arguments of a single invocation.
type Args struct {
	// Positional arguments (command-specific)
	Positional []string

	// Parsed flags, keyed by long name
	Flags map[string]any

	// Raw unparsed arguments
	Raw []string
}

// FlagSet defines the flags a command accepts.
type FlagSet struct {
	Flags []*Flag
}

type FlagType string

const (
	FlagString FlagType = "string"
	FlagBool   FlagType = "bool"
	FlagInt    FlagType = "int"
)

// Flag describes a single command-line flag.
type Flag struct {
	Name        string   `json:"name"`              // Long form, e.g. "recursive"
	Short       string   `json:"short"`             // Single-char shorthand, e.g. "R"
	Type        FlagType `json:"type"`              // Defaults to FlagBool
	Default     any      `json:"default,omitempty"` // Default value
	Required    bool     `json:"required"`          // Must be provided
	Description string   `json:"description"`       // Help text
}

func (a *Args) Arg(i int) string {
	if i < 0 || i >= len(a.Positional) {
		return ""
	}

	return a.Positional[i]
}

func (a *Args) NArg() int {
	return len(a.Positional)
}

func (a *Args) Bool(name string) bool {
	v, _ := a.Flags[name].(bool)
	return v
}

func (a *Args) String(name string) string {
	switch v := a.Flags[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (a *Args) Int(name string) int64 {
	switch v := a.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

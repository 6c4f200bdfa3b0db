package command

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/mwantia/vfsmux/log"
)

// Center handles command registration, parsing and execution.
type Center struct {
	mu   sync.RWMutex
	log  *log.Logger
	api  API
	cmds map[string]Command
}

func NewCenter(api API, logger *log.Logger) *Center {
	if logger == nil {
		logger = log.NewDiscard()
	}

	return &Center{
		log:  logger.Named("command"),
		api:  api,
		cmds: make(map[string]Command),
	}
}

// Register adds cmd; names must be unique.
func (c *Center) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	c.cmds[name] = cmd
	return nil
}

func (c *Center) Unregister(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cmds[name]; !exists {
		return fmt.Errorf("command not found: %s", name)
	}

	delete(c.cmds, name)
	return nil
}

func (c *Center) Get(name string) (Command, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cmd, exists := c.cmds[name]
	if !exists {
		return nil, fmt.Errorf("command not found: %s", name)
	}

	return cmd, nil
}

// Commands returns all registered commands sorted by name.
func (c *Center) Commands() []Command {
	c.mu.RLock()
	commands := make([]Command, 0, len(c.cmds))
	for _, cmd := range c.cmds {
		commands = append(commands, cmd)
	}
	c.mu.RUnlock()

	slices.SortFunc(commands, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return commands
}

// Execute parses args[1:] for the command named args[0] and runs it.
func (c *Center) Execute(ctx context.Context, w io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified")
	}

	cmd, err := c.Get(args[0])
	if err != nil {
		return 1, err
	}

	parsed, err := NewParser(cmd.Flags()).Parse(args[1:])
	if err != nil {
		return 1, fmt.Errorf("parse error: %w", err)
	}

	c.log.Debug("executing '%s' with %d argument(s)", cmd.Name(), len(parsed.Positional))

	code, err := cmd.Execute(ctx, c.api, parsed, w)
	if err != nil {
		c.log.Debug("command '%s' failed with exit code %d: %v", cmd.Name(), code, err)
	}

	return code, err
}

// ExecuteLine splits line on whitespace and executes it.
// Single and double quotes group words.
func (c *Center) ExecuteLine(ctx context.Context, w io.Writer, line string) (int, error) {
	args, err := SplitLine(line)
	if err != nil {
		return 1, err
	}

	if len(args) == 0 {
		return 0, nil
	}

	return c.Execute(ctx, w, args...)
}

// SplitLine tokenizes a shell line, honouring single and double quotes.
func SplitLine(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inWord  bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote %q", quote)
	}

	if inWord {
		args = append(args, current.String())
	}

	return args, nil
}

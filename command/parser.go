package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser turns raw arguments into Args according to a FlagSet.
type Parser struct {
	byLong  map[string]*Flag
	byShort map[string]*Flag
	flags   []*Flag
}

func NewParser(flagSet *FlagSet) *Parser {
	p := &Parser{
		byLong:  make(map[string]*Flag),
		byShort: make(map[string]*Flag),
	}

	if flagSet == nil {
		return p
	}

	for _, flag := range flagSet.Flags {
		p.flags = append(p.flags, flag)
		p.byLong[flag.Name] = flag
		if flag.Short != "" {
			p.byShort[flag.Short] = flag
		}
	}

	return p
}

func (p *Parser) Parse(raw []string) (*Args, error) {
	args := &Args{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for _, flag := range p.flags {
		if flag.Default != nil {
			args.Flags[flag.Name] = flag.Default
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		switch {
		case arg == "--":
			args.Positional = append(args.Positional, raw[i+1:]...)
			i = len(raw)

		case strings.HasPrefix(arg, "--"):
			consumed, err := p.parseLong(args, arg[2:], raw[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed

		case strings.HasPrefix(arg, "-") && arg != "-":
			consumed, err := p.parseShort(args, arg[1:], raw[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed

		default:
			args.Positional = append(args.Positional, arg)
		}
	}

	for _, flag := range p.flags {
		if !flag.Required {
			continue
		}

		if _, ok := args.Flags[flag.Name]; !ok {
			if flag.Short != "" {
				return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
			}
			return nil, fmt.Errorf("required flag: --%s", flag.Name)
		}
	}

	return args, nil
}

// parseLong handles "--name", "--name=value" and "--name value".
// It returns how many of the following arguments were consumed.
func (p *Parser) parseLong(args *Args, arg string, rest []string) (int, error) {
	name, value, hasValue := strings.Cut(arg, "=")

	flag, exists := p.byLong[name]
	if !exists {
		return 0, fmt.Errorf("unknown flag: --%s", name)
	}

	if isBool(flag) {
		if !hasValue {
			args.Flags[flag.Name] = true
			return 0, nil
		}
		return 0, setFlag(args, flag, value)
	}

	if hasValue {
		return 0, setFlag(args, flag, value)
	}

	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		return 1, setFlag(args, flag, rest[0])
	}

	return 0, fmt.Errorf("flag --%s requires a value", name)
}

// parseShort handles grouped shorthands such as "-Rf" and "-n5" or "-n 5".
func (p *Parser) parseShort(args *Args, group string, rest []string) (int, error) {
	for j, r := range group {
		short := string(r)

		flag, exists := p.byShort[short]
		if !exists {
			return 0, fmt.Errorf("unknown flag: -%s", short)
		}

		if isBool(flag) {
			args.Flags[flag.Name] = true
			continue
		}

		// The remainder of the group is the value
		if j+len(short) < len(group) {
			return 0, setFlag(args, flag, group[j+len(short):])
		}

		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			return 1, setFlag(args, flag, rest[0])
		}

		return 0, fmt.Errorf("flag -%s requires a value", short)
	}

	return 0, nil
}

func isBool(flag *Flag) bool {
	return flag.Type == "" || flag.Type == FlagBool
}

func setFlag(args *Args, flag *Flag, value string) error {
	switch {
	case isBool(flag):
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("flag --%s expects a boolean, got '%s'", flag.Name, value)
		}
		args.Flags[flag.Name] = v
	case flag.Type == FlagInt:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("flag --%s expects an integer, got '%s'", flag.Name, value)
		}
		args.Flags[flag.Name] = v
	default:
		args.Flags[flag.Name] = value
	}

	return nil
}

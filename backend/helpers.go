package backend

import (
	"fmt"
	"strings"

	"github.com/mwantia/vfsmux/data"
)

// CleanKey strips leading and trailing separators from path.
// Key-value backends store entries under their cleaned key.
func CleanKey(path string) string {
	return strings.Trim(path, "/")
}

// DirPrefix returns the key prefix shared by every entry below path.
// The root has no prefix at all.
func DirPrefix(path string) string {
	key := CleanKey(path)
	if key == RootPath {
		return ""
	}
	return key + "/"
}

// ChildCollector gathers the immediate child names below a directory
// from a stream of flat keys. Keys of deeper entries contribute the name of
// the implicit directory they live in, reported once.
type ChildCollector struct {
	prefix string
	seen   map[string]struct{}
	names  []string
}

func NewChildCollector(path string) *ChildCollector {
	return &ChildCollector{
		prefix: DirPrefix(path),
		seen:   make(map[string]struct{}),
	}
}

// Prefix returns the key prefix this collector accepts.
func (cc *ChildCollector) Prefix() string {
	return cc.prefix
}

// Add records key and reports whether it was below the directory.
func (cc *ChildCollector) Add(key string) bool {
	if !strings.HasPrefix(key, cc.prefix) {
		return false
	}

	rest := key[len(cc.prefix):]
	if rest == "" {
		return true
	}

	name, _, _ := strings.Cut(rest, "/")
	if _, exists := cc.seen[name]; !exists {
		cc.seen[name] = struct{}{}
		cc.names = append(cc.names, name)
	}

	return true
}

// Result returns the collected names. An empty non-root directory is reported
// as data.ErrInvalidOperation when path itself is an entry, otherwise as data.ErrNotFound.
func (cc *ChildCollector) Result(path string, isEntry bool) ([]string, error) {
	if len(cc.names) > 0 || cc.prefix == "" {
		if cc.names == nil {
			return []string{}, nil
		}
		return cc.names, nil
	}

	if isEntry {
		return nil, fmt.Errorf("%w: '%s' is not a directory", data.ErrInvalidOperation, CleanKey(path))
	}
	return nil, fmt.Errorf("%w: %s", data.ErrNotFound, CleanKey(path))
}

// NotFound wraps data.ErrNotFound with the key that was missing.
func NotFound(key string) error {
	return fmt.Errorf("%w: %s", data.ErrNotFound, key)
}

// PrefixRange returns the half-open key range [key/, key0) that holds every
// entry below path. '0' directly follows '/' in byte order.
func PrefixRange(path string) (string, string) {
	key := CleanKey(path)
	return key + "/", key + "0"
}

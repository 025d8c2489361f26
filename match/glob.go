package match

import (
	"fmt"
	"path"
	"strings"
)

// Glob matches slash-separated asset names against a glob pattern.
//
// Supported forms:
//   - "dir/" matches every name below dir
//   - "prefix**suffix" matches names starting with prefix and ending with suffix
//   - anything else uses path.Match semantics (*, ?, character classes)
type Glob struct {
	pattern string
}

// NewGlob validates pattern and returns a Glob matcher.
func NewGlob(pattern string) (*Glob, error) {
	if pattern == "" {
		return nil, fmt.Errorf("match: empty glob pattern")
	}
	if strings.Count(pattern, "**") > 1 {
		return nil, fmt.Errorf("match: glob %q: only one ** is supported", pattern)
	}
	if _, err := path.Match(strings.ReplaceAll(pattern, "**", "*"), "dummy"); err != nil {
		return nil, fmt.Errorf("match: glob %q: %w", pattern, err)
	}
	return &Glob{pattern: pattern}, nil
}

// Match implements Matcher.
func (g *Glob) Match(name string) bool {
	pattern := g.pattern

	// Directory patterns match everything below the directory.
	if strings.HasSuffix(pattern, "/") {
		dir := strings.TrimSuffix(pattern, "/")
		return strings.HasPrefix(name+"/", dir+"/")
	}

	if strings.Contains(pattern, "**") {
		prefix, suffix, _ := strings.Cut(pattern, "**")
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		rest := strings.TrimPrefix(name, prefix)
		if suffix == "" {
			return true
		}
		// "**/suffix" matches suffix against whole trailing segments, e.g. "**/*.map".
		if strings.HasPrefix(suffix, "/") {
			suffix = strings.TrimPrefix(suffix, "/")
			for {
				if ok, _ := path.Match(suffix, rest); ok {
					return true
				}
				i := strings.IndexByte(rest, '/')
				if i < 0 {
					return false
				}
				rest = rest[i+1:]
			}
		}
		// "**suffix" spans separators, so suffix may start anywhere in rest.
		for i := 0; i <= len(rest); i++ {
			if ok, _ := path.Match(suffix, rest[i:]); ok {
				return true
			}
		}
		return false
	}

	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

func (g *Glob) String() string { return "glob:" + g.pattern }

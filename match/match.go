// Package match provides the exclusion rules used to skip emitted assets.
//
// A Matcher reports whether an asset name matches. Rules are built from
// regular expressions, literal substrings or glob patterns and can be
// combined with AnyOf. Parse turns the textual form used in settings files
// and command line flags into a Matcher.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests asset names against an exclusion rule.
type Matcher interface {
	Match(name string) bool
}

// Func adapts an ordinary function to the Matcher interface.
type Func func(name string) bool

// Match calls f(name).
func (f Func) Match(name string) bool { return f(name) }

type nothing struct{}

func (nothing) Match(string) bool { return false }
func (nothing) String() string    { return "nothing" }

// Nothing returns a Matcher that never matches.
func Nothing() Matcher { return nothing{} }

// Regexp matches names for which the expression finds a match anywhere in the name.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp wraps a compiled regular expression.
func NewRegexp(re *regexp.Regexp) *Regexp {
	return &Regexp{re: re}
}

// CompileRegexp compiles expr into a Regexp matcher.
func CompileRegexp(expr string) (*Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("match: compile regexp %q: %w", expr, err)
	}
	return NewRegexp(re), nil
}

// MustRegexp is like CompileRegexp but panics if the expression cannot be parsed.
func MustRegexp(expr string) *Regexp {
	return NewRegexp(regexp.MustCompile(expr))
}

// Match implements Matcher.
func (r *Regexp) Match(name string) bool { return r.re.MatchString(name) }

func (r *Regexp) String() string { return "regexp:" + r.re.String() }

// Literal matches names containing the literal string.
type Literal string

// Match implements Matcher.
func (l Literal) Match(name string) bool {
	return l != "" && strings.Contains(name, string(l))
}

func (l Literal) String() string { return "literal:" + string(l) }

// AnyOf matches when at least one of the matchers matches.
// Nil matchers are ignored; with no matchers it behaves like Nothing.
func AnyOf(matchers ...Matcher) Matcher {
	list := make([]Matcher, 0, len(matchers))
	for _, m := range matchers {
		if m != nil {
			list = append(list, m)
		}
	}
	switch len(list) {
	case 0:
		return Nothing()
	case 1:
		return list[0]
	}
	return anyOf(list)
}

type anyOf []Matcher

func (a anyOf) Match(name string) bool {
	for _, m := range a {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// Parse builds a Matcher from its textual form:
//
//	regexp:\.map$    regular expression
//	/\.map$/         regular expression
//	glob:**/*.map    glob pattern
//	literal:.map     substring
//	\.map$           regular expression (no prefix)
//
// An empty expression yields Nothing.
func Parse(expr string) (Matcher, error) {
	switch {
	case expr == "":
		return Nothing(), nil
	case strings.HasPrefix(expr, "regexp:"):
		return CompileRegexp(strings.TrimPrefix(expr, "regexp:"))
	case strings.HasPrefix(expr, "glob:"):
		return NewGlob(strings.TrimPrefix(expr, "glob:"))
	case strings.HasPrefix(expr, "literal:"):
		return Literal(strings.TrimPrefix(expr, "literal:")), nil
	case len(expr) > 1 && strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/"):
		return CompileRegexp(expr[1 : len(expr)-1])
	default:
		return CompileRegexp(expr)
	}
}

// ParseAll parses every expression and combines the results with AnyOf.
func ParseAll(exprs []string) (Matcher, error) {
	matchers := make([]Matcher, 0, len(exprs))
	for _, expr := range exprs {
		m, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return AnyOf(matchers...), nil
}

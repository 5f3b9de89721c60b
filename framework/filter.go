package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters is the run/skip pattern configuration from the command line.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter implements the Filter semantics: a test runs if it matches at
// least one -run pattern (or none were given) and no -skip pattern.
//
// Because the filter is consulted at every level of the test tree, -run
// patterns are split on "/" and applied per path level, the way go test -run
// works: a parent group passes when its path matches the pattern's leading
// levels, so an anchored full-path pattern still reaches the leaf test it
// names. -skip patterns match against the joined full name.
func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(id.String())
}

// testPattern is one -run or -skip value: the whole pattern for full-name
// matching, plus its "/"-separated elements for per-level matching.
type testPattern struct {
	whole  *regexp.Regexp
	levels []*regexp.Regexp
}

func (p testPattern) matchesPathPrefix(path []string) bool {
	n := len(p.levels)
	if len(path) < n {
		n = len(path)
	}
	for i := 0; i < n; i++ {
		if !p.levels[i].MatchString(path[i]) {
			return false
		}
	}
	return true
}

// RegexList is a repeatable flag.Value holding compiled patterns.
type RegexList struct {
	patterns []testPattern
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.whole.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (r *RegexList) Set(value string) error {
	whole, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	p := testPattern{whole: whole}
	for _, part := range strings.Split(value, "/") {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex element %q: %w", part, err)
		}
		p.levels = append(p.levels, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatch reports whether any whole pattern matches the string.
func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.whole.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyMatchPath reports whether some pattern matches this path on every level
// the two have in common. A path shorter than the pattern (a parent group)
// passes so that its subtests get their chance to match; path levels beyond
// the pattern are unconstrained.
func (r RegexList) AnyMatchPath(path []string) bool {
	for _, p := range r.patterns {
		if p.matchesPathPrefix(path) {
			return true
		}
	}
	return false
}

package releaseme

import (
	"fmt"
	"regexp"
	"slices"
)

// LocationPattern describes one place version strings live: a set of path
// globs, the regexes that find the version inside matching files, and
// substrings that exclude paths.
type LocationPattern struct {
	Name       string   `yaml:"name,omitempty"`
	Ecosystems []string `yaml:"ecosystems,omitempty"`
	Paths      []string `yaml:"paths"`
	Patterns   []string `yaml:"patterns"`
	Excludes   []string `yaml:"excludes,omitempty"`

	// Builtin is set for patterns that came from the built-in catalog.
	Builtin bool `yaml:"-"`

	// Regexes holds the compiled Patterns after placeholder expansion.
	// It is only populated by Resolve.
	Regexes []*regexp.Regexp `yaml:"-"`
}

// String is the label used in logs and reports.
func (l LocationPattern) String() string {
	name := l.Name
	if name == "" {
		name = fmt.Sprintf("%v", l.Paths)
	}
	if l.Builtin {
		return "Default - " + name
	}
	return name
}

// Clone returns a deep copy. Compiled regexes are shared since they are
// safe for concurrent use.
func (l LocationPattern) Clone() LocationPattern {
	c := l
	c.Ecosystems = slices.Clone(l.Ecosystems)
	c.Paths = slices.Clone(l.Paths)
	c.Patterns = slices.Clone(l.Patterns)
	c.Excludes = slices.Clone(l.Excludes)
	c.Regexes = slices.Clone(l.Regexes)
	return c
}

func cloneLocations(locs []LocationPattern) []LocationPattern {
	out := make([]LocationPattern, len(locs))
	for i, l := range locs {
		out[i] = l.Clone()
	}
	return out
}

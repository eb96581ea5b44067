package releaseme

import (
	"regexp"
	"slices"
	"strings"
)

const (
	majorFragment  = `([0-9]+)`
	minorFragment  = `([0-9]+\.[0-9]+)`
	semverFragment = `([0-9]+\.[0-9]+\.[0-9]+)`
)

// Placeholders maps symbolic tokens such as "{version}" to regex fragments.
type Placeholders map[string]string

// NewPlaceholders builds the token table for one run. Repository tokens are
// only defined when repository is non-empty; {owner} additionally needs an
// "owner/name" form.
func NewPlaceholders(repository string) Placeholders {
	p := Placeholders{
		"{major}":   majorFragment,
		"{minor}":   minorFragment,
		"{patch}":   semverFragment,
		"{version}": semverFragment,
		"{semver}":  semverFragment,
	}

	repository = strings.TrimSpace(repository)
	if repository == "" {
		return p
	}
	p["{repository}"] = literalFold(repository)
	p["{repo}"] = literalFold(repository)
	if owner, name, ok := strings.Cut(repository, "/"); ok {
		p["{owner}"] = literalFold(owner)
		p["{name}"] = literalFold(name)
	} else {
		p["{name}"] = literalFold(repository)
	}
	return p
}

// literalFold matches s literally, ignoring case, without adding a capture group.
func literalFold(s string) string {
	return `(?i:` + regexp.QuoteMeta(s) + `)`
}

// Expand substitutes every known token in src in a single pass. Text
// produced by a substitution is never expanded again.
func (p Placeholders) Expand(src string) string {
	tokens := make([]string, 0, len(p))
	for k := range p {
		tokens = append(tokens, k)
	}
	slices.Sort(tokens)

	pairs := make([]string, 0, 2*len(tokens))
	for _, k := range tokens {
		pairs = append(pairs, k, p[k])
	}
	return strings.NewReplacer(pairs...).Replace(src)
}

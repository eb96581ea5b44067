package releaseme

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/rs/zerolog"
)

// ResolveOptions are the inputs of Resolve. The zero Logger discards output.
type ResolveOptions struct {
	// Locations are the user-declared patterns. They take precedence over
	// built-ins of the same name.
	Locations []LocationPattern
	// UseBuiltinDefaults merges the built-in catalog.
	UseBuiltinDefaults bool
	// Ecosystems filters the built-in catalog. Empty selects everything.
	Ecosystems []string
	// Repository feeds the {repository}, {repo}, {owner} and {name} placeholders.
	Repository string
	// Excludes are appended to every location's exclude substrings.
	Excludes []string
	// Catalog overrides the embedded catalog.
	Catalog *Catalog
	Logger  zerolog.Logger
}

// Resolve merges user and built-in locations, applies global excludes,
// expands placeholders and compiles every pattern. Patterns that fail to
// compile or that do not have exactly one capture group are dropped with a
// warning. Inputs are never mutated.
func Resolve(opts ResolveOptions) ([]LocationPattern, error) {
	log := opts.Logger
	locations := cloneLocations(opts.Locations)

	if opts.UseBuiltinDefaults {
		catalog := opts.Catalog
		if catalog == nil {
			var err error
			if catalog, err = BuiltinCatalog(); err != nil {
				return nil, err
			}
		}
		if err := catalog.Validate(opts.Ecosystems); err != nil {
			log.Warn().Err(err).Msg("Ignoring ecosystem selector")
		}

		seen := make(map[string]bool, len(locations))
		for _, l := range locations {
			if l.Name != "" {
				seen[l.Name] = true
			}
		}
		for _, b := range catalog.Select(opts.Ecosystems) {
			if b.Name != "" && seen[b.Name] {
				log.Debug().Str("location", b.String()).Msg("Built-in location overridden by configuration")
				continue
			}
			seen[b.Name] = true
			locations = append(locations, b)
		}
	}

	placeholders := NewPlaceholders(opts.Repository)
	for i := range locations {
		loc := &locations[i]
		for _, ex := range opts.Excludes {
			if !slices.Contains(loc.Excludes, ex) {
				loc.Excludes = append(loc.Excludes, ex)
			}
		}
		// Ecosystem tags only drive catalog filtering.
		loc.Ecosystems = nil
		loc.Regexes = compilePatterns(log, loc.String(), loc.Patterns, placeholders)
	}
	return locations, nil
}

func compilePatterns(log zerolog.Logger, location string, patterns []string, placeholders Placeholders) []*regexp.Regexp {
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, src := range patterns {
		re, err := compilePattern(src, placeholders)
		if err != nil {
			log.Warn().Err(err).Str("location", location).Str("pattern", src).Msg("Dropping pattern")
			continue
		}
		regexes = append(regexes, re)
	}
	return regexes
}

// compilePattern expands placeholders in src and compiles the result. The
// regex must have exactly one capture group: the version.
func compilePattern(src string, placeholders Placeholders) (*regexp.Regexp, error) {
	expanded := placeholders.Expand(src)
	re, err := regexp.Compile(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailure, err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, fmt.Errorf("%w: %q has %d capture groups, want 1", ErrConfigDefect, expanded, n)
	}
	return re, nil
}

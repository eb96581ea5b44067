package releaseme

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// AllEcosystems is the wildcard tag: a built-in location carrying it is
// selected regardless of the requested ecosystems.
const AllEcosystems = "All"

//go:embed defaults.yml
var defaultsYAML []byte

// Catalog is a read-only set of built-in location patterns grouped by
// ecosystem tag. Accessors hand out clones so callers may mutate results
// freely.
type Catalog struct {
	ecosystems map[string]string
	locations  []LocationPattern
}

type catalogFile struct {
	Ecosystems map[string]string `yaml:"ecosystems"`
	Locations  []LocationPattern `yaml:"locations"`
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	builtinErr     error
)

// BuiltinCatalog returns the catalog embedded in the binary. It is parsed
// once and shared.
func BuiltinCatalog() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtinCatalog, builtinErr = ParseCatalog(defaultsYAML)
	})
	return builtinCatalog, builtinErr
}

// ParseCatalog decodes a catalog document. Every location is marked Builtin.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range f.Locations {
		f.Locations[i].Builtin = true
		if len(f.Locations[i].Ecosystems) == 0 {
			return nil, fmt.Errorf("parsing catalog: location %q has no ecosystems", f.Locations[i].Name)
		}
	}
	if f.Ecosystems == nil {
		f.Ecosystems = map[string]string{}
	}
	return &Catalog{ecosystems: f.Ecosystems, locations: f.Locations}, nil
}

// Ecosystems returns the known ecosystem names, sorted.
func (c *Catalog) Ecosystems() []string {
	names := make([]string, 0, len(c.ecosystems))
	for name := range c.ecosystems {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns the description of an ecosystem, or "" if unknown.
func (c *Catalog) Describe(ecosystem string) string {
	for name, desc := range c.ecosystems {
		if strings.EqualFold(name, ecosystem) {
			return desc
		}
	}
	return ""
}

// Validate reports the first selector that names no known ecosystem.
func (c *Catalog) Validate(selectors []string) error {
	for _, s := range selectors {
		if strings.EqualFold(s, AllEcosystems) {
			continue
		}
		known := false
		for name := range c.ecosystems {
			if strings.EqualFold(name, s) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q", ErrUnknownEcosystem, s)
		}
	}
	return nil
}

// Locations returns clones of every built-in location.
func (c *Catalog) Locations() []LocationPattern {
	return cloneLocations(c.locations)
}

// Select returns clones of the built-in locations tagged with any of the
// selectors, plus those tagged AllEcosystems. With no selectors every
// location is returned.
func (c *Catalog) Select(selectors []string) []LocationPattern {
	if len(selectors) == 0 {
		return c.Locations()
	}
	var out []LocationPattern
	for _, loc := range c.locations {
		if matchesEcosystem(loc.Ecosystems, selectors) {
			out = append(out, loc.Clone())
		}
	}
	return out
}

func matchesEcosystem(tags, selectors []string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, AllEcosystems) {
			return true
		}
		for _, s := range selectors {
			if strings.EqualFold(tag, s) {
				return true
			}
		}
	}
	return false
}

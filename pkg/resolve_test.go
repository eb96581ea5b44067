package releaseme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUserOverridesBuiltin(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	user := []LocationPattern{{
		Name:     "Cargo",
		Paths:    []string{"crates/*/Cargo.toml"},
		Patterns: []string{`^version = "{version}"`},
	}}

	locs, err := Resolve(ResolveOptions{
		Locations:          user,
		UseBuiltinDefaults: true,
		Ecosystems:         []string{"Rust"},
		Catalog:            catalog,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"Cargo", "Everywhere"}, names(locs))
	assert.Equal(t, []string{"crates/*/Cargo.toml"}, locs[0].Paths)
	assert.False(t, locs[0].Builtin)
	assert.Equal(t, "Cargo", locs[0].String())
	assert.True(t, locs[1].Builtin)
	assert.Equal(t, "Default - Everywhere", locs[1].String())

	for _, l := range locs {
		assert.Len(t, l.Regexes, len(l.Patterns))
		assert.Nil(t, l.Ecosystems)
	}
}

func TestResolveWithoutDefaults(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	locs, err := Resolve(ResolveOptions{
		Locations: []LocationPattern{{Paths: []string{"a"}, Patterns: []string{"{version}"}}},
		Catalog:   catalog,
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "[a]", locs[0].String())
}

func TestResolveExcludes(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	user := []LocationPattern{{
		Name:     "Header",
		Paths:    []string{"*.h"},
		Patterns: []string{`"{version}"`},
		Excludes: []string{"/vendor/"},
	}}
	locs, err := Resolve(ResolveOptions{
		Locations:          user,
		UseBuiltinDefaults: true,
		Excludes:           []string{"/vendor/", "/build/"},
		Catalog:            catalog,
	})
	require.NoError(t, err)
	require.Len(t, locs, 4)

	assert.Equal(t, []string{"/vendor/", "/build/"}, locs[0].Excludes)
	for _, l := range locs[1:] {
		assert.Equal(t, []string{"/vendor/", "/build/"}, l.Excludes, l.Name)
	}

	// Inputs and the shared catalog are untouched.
	assert.Equal(t, []string{"/vendor/"}, user[0].Excludes)
	assert.Nil(t, user[0].Regexes)
	for _, l := range catalog.Locations() {
		assert.Empty(t, l.Excludes)
		assert.NotEmpty(t, l.Ecosystems)
	}
}

func TestResolveDropsBadPatterns(t *testing.T) {
	locs, err := Resolve(ResolveOptions{
		Locations: []LocationPattern{{
			Name:  "Mixed",
			Paths: []string{"VERSION"},
			Patterns: []string{
				`{version}`,
				`(unclosed {version}`,
				`no group at all`,
				`({major})\.({minor})`,
				`owner = "{owner}"`,
			},
		}},
		Repository: "Org/Repo",
	})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.Len(t, locs[0].Regexes, 1)
	assert.Equal(t, `([0-9]+\.[0-9]+\.[0-9]+)`, locs[0].Regexes[0].String())
}

func TestCompilePatternErrors(t *testing.T) {
	p := NewPlaceholders("")

	_, err := compilePattern(`[`, p)
	assert.ErrorIs(t, err, ErrCompileFailure)

	_, err = compilePattern(`version`, p)
	assert.ErrorIs(t, err, ErrConfigDefect)

	_, err = compilePattern(`{major}.{minor}`, p)
	assert.ErrorIs(t, err, ErrConfigDefect)

	re, err := compilePattern(`version = "{version}"`, p)
	require.NoError(t, err)
	assert.Equal(t, `version = "([0-9]+\.[0-9]+\.[0-9]+)"`, re.String())
}

func TestResolveUnknownEcosystemIsNotFatal(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	locs, err := Resolve(ResolveOptions{
		UseBuiltinDefaults: true,
		Ecosystems:         []string{"Cobol"},
		Catalog:            catalog,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Everywhere"}, names(locs))
}

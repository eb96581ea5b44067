package releaseme

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandVersion(t *testing.T) {
	p := NewPlaceholders("")
	assert.Equal(t, `version = "([0-9]+\.[0-9]+\.[0-9]+)"`, p.Expand(`version = "{version}"`))
	assert.Equal(t, `v([0-9]+)`, p.Expand(`v{major}`))
	assert.Equal(t, `([0-9]+\.[0-9]+)`, p.Expand(`{minor}`))

	// Repository tokens stay literal without a repository.
	assert.Equal(t, `{owner}/{repository}`, p.Expand(`{owner}/{repository}`))
}

func TestExpandRepository(t *testing.T) {
	p := NewPlaceholders("Org/Repo")

	re := regexp.MustCompile(p.Expand(`owner = "{owner}"`))
	assert.True(t, re.MatchString(`owner = "Org"`))
	assert.True(t, re.MatchString(`owner = "org"`))
	assert.True(t, re.MatchString(`owner = "ORG"`))
	assert.False(t, re.MatchString(`owner = "Orgs"`))
	assert.Equal(t, 0, re.NumSubexp())

	re = regexp.MustCompile(p.Expand(`{repository}@v{version}`))
	m := re.FindStringSubmatch("uses: org/repo@v1.4.0")
	require.Len(t, m, 2)
	assert.Equal(t, "1.4.0", m[1])

	re = regexp.MustCompile(`^` + p.Expand(`{name}`) + `$`)
	assert.True(t, re.MatchString("REPO"))
}

func TestExpandRepositoryWithoutSeparator(t *testing.T) {
	p := NewPlaceholders("a.b")

	re := regexp.MustCompile(`^` + p.Expand(`{name}`) + `$`)
	assert.True(t, re.MatchString("A.B"))
	assert.False(t, re.MatchString("axb"))

	_, ok := p["{owner}"]
	assert.False(t, ok)
	assert.Equal(t, `{owner}`, p.Expand(`{owner}`))
}

func TestExpandIsSinglePass(t *testing.T) {
	p := NewPlaceholders("{version}")
	assert.Equal(t, `(?i:\{version\})`, p.Expand(`{repo}`))
}

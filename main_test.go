package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	releaseme "github.com/bcomnes/releaseme/pkg"
)

// execute runs the root command in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestBumpFlagsPolicy(t *testing.T) {
	s := &session{config: &releaseme.Config{Version: "1.2.3"}}

	tests := []struct {
		name     string
		flags    bumpFlags
		want     releaseme.Policy
		bumpType string
	}{
		{"default patch", bumpFlags{patch: true}, releaseme.SetTo(releaseme.Version{Major: 1, Minor: 2, Patch: 4}), "patch"},
		{"minor", bumpFlags{patch: true, minor: true}, releaseme.SetTo(releaseme.Version{Major: 1, Minor: 3}), "minor"},
		{"major", bumpFlags{major: true}, releaseme.SetTo(releaseme.Version{Major: 2}), "major"},
		{"mode", bumpFlags{mode: "minor"}, releaseme.SetTo(releaseme.Version{Major: 1, Minor: 3}), "minor"},
		{"mode version", bumpFlags{mode: "5.0.1"}, releaseme.SetTo(releaseme.Version{Major: 5, Patch: 1}), "explicit"},
		{"set version", bumpFlags{setVersion: "v0.9.0"}, releaseme.SetTo(releaseme.Version{Minor: 9}), "explicit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, bumpType, err := tc.flags.policy(s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.bumpType, bumpType)
		})
	}
}

func TestBumpFlagsPolicyWithoutConfigVersion(t *testing.T) {
	s := &session{config: &releaseme.Config{}}

	got, bumpType, err := (&bumpFlags{minor: true}).policy(s)
	require.NoError(t, err)
	assert.Equal(t, releaseme.MinorPolicy, got)
	assert.Equal(t, "minor", bumpType)

	_, _, err = (&bumpFlags{setVersion: "1.2"}).policy(s)
	assert.True(t, errors.Is(err, releaseme.ErrInvalidVersion))

	_, _, err = (&bumpFlags{mode: "sideways"}).policy(s)
	assert.Error(t, err)
}

func TestExecuteEcosystems(t *testing.T) {
	out, err := execute(t, "ecosystems")
	require.NoError(t, err)
	assert.Contains(t, out, "ECOSYSTEM")
	assert.Contains(t, out, "Cargo manifests")
}

func TestExecuteDisplayBadRoot(t *testing.T) {
	_, err := execute(t, "display", "-r", filepath.Join(t.TempDir(), "missing"))
	var ioErr *releaseme.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestExecuteBumpCommitNeedsTarget(t *testing.T) {
	dir := writeProject(t, map[string]string{"Cargo.toml": "version = \"1.2.3\"\n"})

	_, err := execute(t, "bump", "--commit", "-r", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--commit")
	assert.Equal(t, "version = \"1.2.3\"\n", readProjectFile(t, dir, "Cargo.toml"))
}

func TestExecuteBumpGoModule(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".release.yml":  "version: 1.4.0\ngomod: true\necosystems: [Go]\n",
		"go.mod":           "module example.com/demo\n\ngo 1.22\n",
		"version.go":    "package demo\n\nvar Version = \"1.4.0\"\n",
		"cmd/x/main.go": "package main\n\nimport _ \"example.com/demo\"\n",
	})

	out, err := execute(t, "bump", "--major", "--dry", "-r", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2.0.0")
	assert.Contains(t, out, "go.mod")
	assert.Contains(t, readProjectFile(t, dir, "go.mod"), "module example.com/demo\n")

	out, err = execute(t, "bump", "--major", "-r", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "New Version: 2.0.0")
	assert.Contains(t, readProjectFile(t, dir, "go.mod"), "module example.com/demo/v2\n")
	assert.Contains(t, readProjectFile(t, dir, "version.go"), `Version = "2.0.0"`)
	assert.Contains(t, readProjectFile(t, dir, "cmd/x/main.go"), `import _ "example.com/demo/v2"`)
	assert.Contains(t, readProjectFile(t, dir, ".release.yml"), "version: 2.0.0")
}

func TestExecuteBumpGoModuleStaysInsideRoot(t *testing.T) {
	parentMod := "module example.com/mono\n\ngo 1.22\n"
	dir := writeProject(t, map[string]string{
		"go.mod":           parentMod,
		"svc/.release.yml": "version: 1.4.0\ngomod: true\necosystems: [Go]\n",
		"svc/version.go":   "package svc\n\nvar Version = \"1.4.0\"\n",
		"other/use.go":     "package other\n\nimport _ \"example.com/mono/svc\"\n",
	})

	out, err := execute(t, "bump", "--major", "-r", filepath.Join(dir, "svc"))
	require.NoError(t, err)
	assert.Contains(t, out, "New Version: 2.0.0")
	assert.Contains(t, readProjectFile(t, dir, "svc/version.go"), `Version = "2.0.0"`)
	assert.Equal(t, parentMod, readProjectFile(t, dir, "go.mod"))
	assert.Contains(t, readProjectFile(t, dir, "other/use.go"), `"example.com/mono/svc"`)
}

package releaseme

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git runs git commands inside a project root.
type Git struct {
	Dir string
}

// CheckGit verifies that git is available on the system.
func CheckGit() error {
	cmd := exec.Command("git", "--version")
	if err := cmd.Run(); err != nil {
		return errors.New("git is not available on the system")
	}
	return nil
}

func (g Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %v, detail: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// LatestTag returns the most recent tag reachable from HEAD with any
// leading "v" stripped.
func (g Git) LatestTag() (string, error) {
	out, err := g.run("describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", fmt.Errorf("failed to get version from git in %q: %w", g.Dir, err)
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v"), nil
}

// CheckClean ensures that only allowed files have uncommitted changes.
func (g Git) CheckClean(allowed []string) error {
	out, err := g.run("status", "--porcelain", "-z")
	if err != nil {
		return fmt.Errorf("failed to check git status: %w", err)
	}

	// Porcelain paths are relative to the top of the work tree.
	top, err := g.run("rev-parse", "--show-toplevel")
	if err != nil {
		return err
	}
	top = strings.TrimSpace(top)

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		allowedSet[g.abs(f)] = struct{}{}
	}

	// Entries are "XY path", NUL terminated and unquoted. Renames and
	// copies are followed by an extra entry holding the source path.
	var disallowed []string
	entries := strings.Split(out, "\x00")
	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		if x, y := entry[0], entry[1]; x == 'R' || x == 'C' || y == 'R' || y == 'C' {
			i++
		}
		path := entry[3:]
		if _, ok := allowedSet[filepath.Join(top, filepath.FromSlash(path))]; !ok {
			disallowed = append(disallowed, path)
		}
	}
	if len(disallowed) > 0 {
		return fmt.Errorf("working directory is dirty; uncommitted files not included in commit: %v", disallowed)
	}
	return nil
}

// Commit stages files, commits them with the bare version as the message
// and tags the commit "v<version>".
func (g Git) Commit(version string, files []string) error {
	if len(files) > 0 {
		if _, err := g.run(append([]string{"add", "--"}, files...)...); err != nil {
			return err
		}
	}
	if _, err := g.run("commit", "-m", version); err != nil {
		return err
	}
	if _, err := g.run("tag", "v"+version); err != nil {
		return err
	}
	return nil
}

// abs resolves path against the repository directory with symlinks in the
// directory part evaluated, matching what git reports as the top level.
func (g Git) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.Dir, path)
	}
	path = filepath.Clean(path)
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		path = filepath.Join(dir, filepath.Base(path))
	}
	return path
}

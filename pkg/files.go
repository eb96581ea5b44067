package releaseme

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// ResolveFiles expands the location's path globs relative to root and
// returns the matching regular files, skipping any path that contains one
// of the location's exclude substrings. Results of each glob are sorted; a
// path matched by several globs is returned once.
func ResolveFiles(root string, loc LocationPattern, log zerolog.Logger) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, glob := range loc.Paths {
		pattern, err := normalizeGlob(glob)
		if err != nil {
			return nil, err
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadGlob, glob, err)
		}
		slices.Sort(matches)
		log.Debug().Str("glob", glob).Int("matches", len(matches)).Msg("Expanded glob")

		for _, rel := range matches {
			full := filepath.Join(root, filepath.FromSlash(rel))
			if seen[full] {
				continue
			}
			seen[full] = true
			if excluded(full, loc.Excludes) {
				log.Debug().Str("path", full).Msg("Excluded")
				continue
			}
			files = append(files, full)
		}
	}
	return files, nil
}

// normalizeGlob turns a configured glob into an io/fs pattern rooted at the
// project root. Absolute globs and globs escaping the root are rejected.
func normalizeGlob(glob string) (string, error) {
	p := filepath.ToSlash(strings.TrimSpace(glob))
	if p == "" || path.IsAbs(p) || filepath.IsAbs(glob) {
		return "", fmt.Errorf("%w: %q must be relative to the project root", ErrBadGlob, glob)
	}
	p = path.Clean(p)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %q escapes the project root", ErrBadGlob, glob)
	}
	if !doublestar.ValidatePattern(p) {
		return "", fmt.Errorf("%w: %q", ErrBadGlob, glob)
	}
	return p, nil
}

// excluded reports whether any exclude is a literal substring of p, in
// either its native or slash-separated form.
func excluded(p string, excludes []string) bool {
	slashed := filepath.ToSlash(p)
	for _, ex := range excludes {
		if ex == "" {
			continue
		}
		if strings.Contains(p, ex) || strings.Contains(slashed, ex) {
			return true
		}
	}
	return false
}

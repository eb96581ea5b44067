package releaseme

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ModuleSync keeps a Go module path's major version suffix in step with
// the project version: v0 and v1 have no suffix, vN for N >= 2 appends /vN.
// Imports of the module's own packages are rewritten to match.
type ModuleSync struct {
	// Dir is the directory holding go.mod.
	Dir string
}

// LocateGoModDir walks up from startDir until it finds go.mod, never
// leaving stopDir. Returns the directory containing go.mod, or
// os.ErrNotExist if none found inside stopDir.
func LocateGoModDir(startDir, stopDir string) (string, error) {
	d := filepath.Clean(startDir)
	stop := filepath.Clean(stopDir)
	if rel, err := filepath.Rel(stop, d); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", os.ErrNotExist
	}
	for {
		candidate := filepath.Join(d, "go.mod")
		if _, err := os.Stat(candidate); err == nil {
			return d, nil
		}
		parent := filepath.Dir(d)
		if d == stop || parent == d {
			break
		}
		d = parent
	}
	return "", os.ErrNotExist
}

func (m ModuleSync) goMod() string {
	return filepath.Join(m.Dir, "go.mod")
}

func (m ModuleSync) parse() (*modfile.File, error) {
	path := m.goMod()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing go.mod: %w", err)
	}
	if f.Module == nil {
		return nil, fmt.Errorf("module directive not found in %s", path)
	}
	return f, nil
}

// ModulePath returns the module path go.mod would carry for v.
func ModulePath(current string, v Version) string {
	base, _, _ := module.SplitPathVersion(current)
	maj := semver.Major("v" + v.String())
	if maj == "v0" || maj == "v1" {
		return base
	}
	return base + "/" + maj
}

// Plan lists the files Apply would rewrite for v without writing anything.
func (m ModuleSync) Plan(v Version) ([]string, error) {
	f, err := m.parse()
	if err != nil {
		return nil, err
	}
	oldPath := f.Module.Mod.Path
	newPath := ModulePath(oldPath, v)
	if newPath == oldPath {
		return nil, nil
	}

	files := []string{m.goMod()}
	err = m.walkSelfImports(oldPath, newPath, func(path string, _ []byte, _ []Edit) error {
		files = append(files, path)
		return nil
	})
	return files, err
}

// Apply rewrites go.mod and every self-import for v. It returns the files
// written; when the module path does not change nothing is written.
func (m ModuleSync) Apply(v Version) ([]string, error) {
	f, err := m.parse()
	if err != nil {
		return nil, err
	}
	oldPath := f.Module.Mod.Path
	newPath := ModulePath(oldPath, v)
	if newPath == oldPath {
		return nil, nil
	}

	if err := f.AddModuleStmt(newPath); err != nil {
		return nil, fmt.Errorf("updating module path: %w", err)
	}
	out, err := f.Format()
	if err != nil {
		return nil, fmt.Errorf("formatting go.mod: %w", err)
	}
	if err := writeFile(m.goMod(), out); err != nil {
		return nil, err
	}

	written := []string{m.goMod()}
	err = m.walkSelfImports(oldPath, newPath, func(path string, content []byte, edits []Edit) error {
		updated, err := Rewrite(content, edits)
		if err != nil {
			return err
		}
		if err := writeFile(path, updated); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	})
	return written, err
}

// walkSelfImports calls fn for every .go file under the module that
// imports oldPath or one of its packages, with the edits that retarget
// those imports to newPath. Vendor and testdata trees and nested modules
// are skipped, as are files that do not parse.
func (m ModuleSync) walkSelfImports(oldPath, newPath string, fn func(path string, content []byte, edits []Edit) error) error {
	return filepath.WalkDir(m.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == "vendor" || name == "testdata" {
				return filepath.SkipDir
			}
			// Nested modules own their imports.
			if path != m.Dir {
				if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return &IOError{Op: "read", Path: path, Err: err}
		}
		fset := token.NewFileSet()
		f, err := parser.ParseFile(fset, path, content, parser.ImportsOnly)
		if err != nil {
			return nil
		}

		var edits []Edit
		for _, imp := range f.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if p != oldPath && !strings.HasPrefix(p, oldPath+"/") {
				continue
			}
			edits = append(edits, Edit{
				Start: fset.Position(imp.Path.Pos()).Offset,
				End:   fset.Position(imp.Path.End()).Offset,
				New:   strconv.Quote(newPath + strings.TrimPrefix(p, oldPath)),
			})
		}
		if len(edits) == 0 {
			return nil
		}
		return fn(path, content, edits)
	})
}

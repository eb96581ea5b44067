package releaseme

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Engine scans a project root for the versions described by a set of
// resolved locations and reports or rewrites them. Work is sequential:
// locations in order, files in resolver order.
type Engine struct {
	root      string
	locations []LocationPattern
	log       zerolog.Logger
}

// FileCaptures groups every capture found in one file, across all
// locations, sorted by start offset with overlaps removed.
type FileCaptures struct {
	Path     string
	Content  []byte
	Captures []Capture
}

// ReportEntry describes one capture and, when a policy was given, the
// version it would become. Err is set when the captured text is not a
// version, in which case New is empty.
type ReportEntry struct {
	Path     string
	Location string
	Start    int
	End      int
	Old      string
	New      string
	Err      error
}

// ApplyResult summarises an Apply run.
type ApplyResult struct {
	// Files lists the files that were rewritten, in processing order.
	Files []string
	// Replaced counts captures that were rewritten.
	Replaced int
	// Skipped counts captures left untouched because they did not parse.
	Skipped int
}

// NewEngine canonicalises root and returns an Engine over the given
// resolved locations. The zero Logger discards output.
func NewEngine(root string, locations []LocationPattern, log zerolog.Logger) (*Engine, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &IOError{Op: "resolve root", Path: root, Err: err}
	}
	if abs, err = filepath.EvalSymlinks(abs); err != nil {
		return nil, &IOError{Op: "resolve root", Path: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &IOError{Op: "resolve root", Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Op: "resolve root", Path: root, Err: os.ErrInvalid}
	}
	return &Engine{root: abs, locations: locations, log: log}, nil
}

// Root returns the canonical project root.
func (e *Engine) Root() string {
	return e.root
}

// Scan resolves every location's files and collects their captures. Files
// without captures are omitted. An unreadable file is logged with its path
// and skipped; a bad glob aborts the scan.
func (e *Engine) Scan() ([]FileCaptures, error) {
	var files []FileCaptures
	index := make(map[string]int)

	for _, loc := range e.locations {
		e.log.Info().Str("location", loc.String()).Msg("Processing location")
		if len(loc.Regexes) == 0 {
			e.log.Warn().Str("location", loc.String()).Msg("No regexes found for location, skipping")
			continue
		}

		paths, err := ResolveFiles(e.root, loc, e.log)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if i, ok := index[path]; ok {
				captures := Collect(path, files[i].Content, loc.Regexes)
				for j := range captures {
					captures[j].Location = loc.String()
				}
				files[i].Captures = append(files[i].Captures, captures...)
				continue
			}

			captures, content, err := CollectFile(path, loc)
			if err != nil {
				e.log.Warn().Err(err).
					Str("path", e.rel(path)).
					Str("location", loc.String()).
					Msg("Skipping unreadable file")
				continue
			}
			if len(captures) == 0 {
				e.log.Debug().Str("path", path).Msg("No captures found in file, skipping")
				continue
			}
			index[path] = len(files)
			files = append(files, FileCaptures{Path: path, Content: content, Captures: captures})
		}
	}

	for i := range files {
		files[i].Captures = dedupeCaptures(files[i].Captures, e.log)
	}
	return files, nil
}

// Report lists every capture without touching the filesystem. With a nil
// policy only the current values are reported.
func (e *Engine) Report(policy *Policy) ([]ReportEntry, error) {
	files, err := e.Scan()
	if err != nil {
		return nil, err
	}

	var entries []ReportEntry
	for _, f := range files {
		for _, c := range f.Captures {
			entry := ReportEntry{
				Path:     c.Path,
				Location: c.Location,
				Start:    c.Start,
				End:      c.End,
				Old:      c.Text,
			}
			if policy != nil {
				entry.New, entry.Err = Replacement(c.Text, *policy)
			} else if _, _, perr := parseVersionParts(c.Text); perr != nil {
				entry.Err = perr
			}

			ev := e.log.Info()
			if entry.Err != nil {
				ev = e.log.Warn().Err(entry.Err)
			}
			ev.Str("old", entry.Old).
				Str("new", entry.New).
				Str("path", e.rel(c.Path)).
				Int("start", c.Start).
				Int("end", c.End).
				Msg("Version")
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Apply rewrites every capture under policy. Each file is rewritten at
// most once. A write failure stops the run; files already written stay
// modified and are listed in the returned result.
func (e *Engine) Apply(policy Policy) (ApplyResult, error) {
	var result ApplyResult

	files, err := e.Scan()
	if err != nil {
		return result, err
	}

	for _, f := range files {
		edits := make([]Edit, 0, len(f.Captures))
		for _, c := range f.Captures {
			next, err := Replacement(c.Text, policy)
			if err != nil {
				e.log.Warn().Err(err).
					Str("path", e.rel(c.Path)).
					Int("start", c.Start).
					Msg("Leaving capture unmodified")
				result.Skipped++
				continue
			}
			e.log.Info().
				Str("old", c.Text).
				Str("new", next).
				Str("path", e.rel(c.Path)).
				Int("start", c.Start).
				Int("end", c.End).
				Msg("Bumping version")
			edits = append(edits, Edit{Start: c.Start, End: c.End, New: next})
			result.Replaced++
		}

		out, err := Rewrite(f.Content, edits)
		if err != nil {
			return result, err
		}
		if bytes.Equal(out, f.Content) {
			e.log.Debug().Str("path", e.rel(f.Path)).Msg("Content unchanged")
			continue
		}
		if err := writeFile(f.Path, out); err != nil {
			return result, err
		}
		result.Files = append(result.Files, f.Path)
	}
	return result, nil
}

// rel shortens path for logging; it falls back to path itself.
func (e *Engine) rel(path string) string {
	if r, err := filepath.Rel(e.root, path); err == nil {
		return r
	}
	return path
}

// writeFile overwrites path, keeping its permission bits.
func writeFile(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

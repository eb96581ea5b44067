package releaseme

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion is returned when text is not a well-formed MAJOR.MINOR.PATCH version.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrConfigDefect marks a pattern or capture that is structurally wrong,
	// such as a regex with the wrong number of capture groups.
	ErrConfigDefect = errors.New("configuration defect")
	// ErrCompileFailure marks a pattern whose expanded source is not a valid regex.
	ErrCompileFailure = errors.New("pattern compile failure")
	// ErrBadGlob marks a path glob that cannot be expanded.
	ErrBadGlob = errors.New("bad glob expression")
	// ErrUnknownEcosystem is returned for a selector the built-in catalog does not know.
	ErrUnknownEcosystem = errors.New("unknown ecosystem")
)

// IOError wraps a filesystem failure with the operation and path that caused it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

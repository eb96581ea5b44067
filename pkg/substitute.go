package releaseme

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Edit replaces the bytes [Start, End) of a file with New.
type Edit struct {
	Start int
	End   int
	New   string
}

// Replacement computes the text that replaces a captured version under
// policy. The capture's precision (X, X.Y or X.Y.Z) and a leading "v" are
// preserved.
func Replacement(captured string, policy Policy) (string, error) {
	v, precision, err := parseVersionParts(captured)
	if err != nil {
		return "", err
	}
	next := Bump(v, policy).format(precision)
	if strings.HasPrefix(captured, "v") {
		next = "v" + next
	}
	return next, nil
}

// dedupeCaptures drops captures that overlap an earlier-discovered one and
// returns the rest sorted by start offset. An exact duplicate span, which
// happens when two locations cover the same text, is dropped quietly.
func dedupeCaptures(captures []Capture, log zerolog.Logger) []Capture {
	kept := make([]Capture, 0, len(captures))
	for _, c := range captures {
		clash := -1
		for i, k := range kept {
			if c.Start == k.Start && c.End == k.End || c.Start < k.End && k.Start < c.End {
				clash = i
				break
			}
		}
		if clash < 0 {
			kept = append(kept, c)
			continue
		}
		k := kept[clash]
		if c.Start == k.Start && c.End == k.End {
			log.Debug().Str("path", c.Path).Int("start", c.Start).Msg("Duplicate capture")
			continue
		}
		log.Warn().
			Err(ErrConfigDefect).
			Str("path", c.Path).
			Str("location", c.Location).
			Int("start", c.Start).
			Int("end", c.End).
			Int("kept_start", k.Start).
			Int("kept_end", k.End).
			Msg("Skipping overlapping capture")
	}
	slices.SortStableFunc(kept, func(a, b Capture) int { return a.Start - b.Start })
	return kept
}

// Rewrite builds new content in one forward pass: gaps between edits are
// copied verbatim and each edited span is replaced by its new text. Edits
// must be sorted by start and must not overlap; offsets refer to content.
func Rewrite(content []byte, edits []Edit) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(content))

	pos := 0
	for _, e := range edits {
		if e.Start < pos || e.End < e.Start || e.End > len(content) {
			return nil, fmt.Errorf("%w: edit [%d,%d) out of order or out of range at offset %d", ErrConfigDefect, e.Start, e.End, pos)
		}
		out.Write(content[pos:e.Start])
		out.WriteString(e.New)
		pos = e.End
	}
	out.Write(content[pos:])
	return out.Bytes(), nil
}

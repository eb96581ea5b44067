package releaseme

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a MAJOR.MINOR.PATCH triple. Values are immutable; every bump
// produces a new Version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a MAJOR.MINOR.PATCH string. A single leading "v" is
// accepted. Prerelease and build suffixes are rejected.
func ParseVersion(text string) (Version, error) {
	v, precision, err := parseVersionParts(strings.TrimSpace(text))
	if err != nil {
		return Version{}, err
	}
	if precision != 3 {
		return Version{}, fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrInvalidVersion, text)
	}
	return v, nil
}

// parseVersionParts accepts "X", "X.Y" or "X.Y.Z" with an optional leading
// "v" and reports how many components were present. Missing components are
// zero. Surrounding whitespace is not a version and is rejected.
func parseVersionParts(text string) (Version, int, error) {
	raw := strings.TrimPrefix(text, "v")
	canonical := "v" + raw
	if raw == "" || !semver.IsValid(canonical) || semver.Prerelease(canonical) != "" || semver.Build(canonical) != "" {
		return Version{}, 0, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
	}

	parts := strings.Split(raw, ".")
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, 0, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, text, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, len(parts), nil
}

// String renders the version as MAJOR.MINOR.PATCH without a "v" prefix.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// format renders the first precision components of v.
func (v Version) format(precision int) string {
	switch precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return v.String()
	}
}

// Compare returns -1, 0 or +1 ordering v and w by (major, minor, patch).
func (v Version) Compare(w Version) int {
	return semver.Compare("v"+v.String(), "v"+w.String())
}

// Less reports whether v orders before w.
func (v Version) Less(w Version) bool {
	return v.Compare(w) < 0
}

// BumpKind selects how a Policy derives a new version.
type BumpKind int

const (
	BumpPatch BumpKind = iota
	BumpMinor
	BumpMajor
	BumpSet
)

func (k BumpKind) String() string {
	switch k {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	case BumpSet:
		return "explicit"
	default:
		return fmt.Sprintf("BumpKind(%d)", int(k))
	}
}

// Policy is a bump directive: an increment of one component, or an explicit
// target version.
type Policy struct {
	Kind   BumpKind
	Target Version // only meaningful for BumpSet
}

var (
	PatchPolicy = Policy{Kind: BumpPatch}
	MinorPolicy = Policy{Kind: BumpMinor}
	MajorPolicy = Policy{Kind: BumpMajor}
)

// SetTo returns a policy that replaces every version with v.
func SetTo(v Version) Policy {
	return Policy{Kind: BumpSet, Target: v}
}

// ParsePolicy accepts "patch", "minor", "major" or an explicit version.
func ParsePolicy(arg string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "patch":
		return PatchPolicy, nil
	case "minor":
		return MinorPolicy, nil
	case "major":
		return MajorPolicy, nil
	}
	v, err := ParseVersion(arg)
	if err != nil {
		return Policy{}, fmt.Errorf("unknown bump argument %q: %w", arg, err)
	}
	return SetTo(v), nil
}

func (p Policy) String() string {
	if p.Kind == BumpSet {
		return "set " + p.Target.String()
	}
	return p.Kind.String()
}

// Bump derives the next version from current. It has no side effects and
// never fails.
func Bump(current Version, p Policy) Version {
	switch p.Kind {
	case BumpMinor:
		return Version{Major: current.Major, Minor: current.Minor + 1}
	case BumpMajor:
		return Version{Major: current.Major + 1}
	case BumpSet:
		return p.Target
	default:
		return Version{Major: current.Major, Minor: current.Minor, Patch: current.Patch + 1}
	}
}

// Anchor pins an increment policy to a known current version so every
// location converges on the same result. An empty current version or an
// explicit policy is returned unchanged.
func (p Policy) Anchor(current string) (Policy, error) {
	if p.Kind == BumpSet || strings.TrimSpace(current) == "" {
		return p, nil
	}
	cur, err := ParseVersion(current)
	if err != nil {
		return Policy{}, fmt.Errorf("current version: %w", err)
	}
	return SetTo(Bump(cur, p)), nil
}

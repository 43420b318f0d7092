package notchity

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxComponent is the largest accepted value of a version component.
	MaxComponent = 999

	// MinComponent is the smallest accepted value of a version component.
	MinComponent = 0
)

// Version is a parsed server version: major.minor.patch plus an optional tag.
// The tag is kept for diagnostics and never takes part in ordering.
// Version is a value type and is never mutated after Parse.
type Version struct {
	major, minor, patch int
	tag                 string
}

// NewVersion creates a version from numeric components.
func NewVersion(major, minor, patch int) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// Parse parses "major.minor[.patch][-tag]".
//
// Components are decimal and must lie within [MinComponent, MaxComponent].
// Everything after the first '-' is the tag, so "1.19.2-R0.1-SNAPSHOT" has
// the tag "R0.1-SNAPSHOT".
func Parse(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Version{}, malformed(raw, "empty version")
	}

	var tag string
	if i := strings.IndexByte(s, '-'); i >= 0 {
		s, tag = s[:i], s[i+1:]
		if tag == "" {
			return Version{}, malformed(raw, "empty tag")
		}
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, malformed(raw, "expected major.minor or major.minor.patch")
	}

	var nums [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, malformed(raw, err.Error())
		}
		nums[i] = n
	}

	return Version{major: nums[0], minor: nums[1], patch: nums[2], tag: tag}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// parseComponent parses a single numeric component.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	// Only plain digits: strconv would accept a sign.
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("component %q is not numeric", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinComponent || n > MaxComponent {
		return 0, fmt.Errorf("component %q out of range [%d, %d]", s, MinComponent, MaxComponent)
	}
	return n, nil
}

func malformed(raw, reason string) error {
	return &VersionError{Raw: raw, Err: fmt.Errorf("%w: %s", ErrMalformedVersion, reason)}
}

// Major returns the major component.
func (v Version) Major() int { return v.major }

// Minor returns the minor component.
func (v Version) Minor() int { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() int { return v.patch }

// Tag returns the build or snapshot tag, or "".
func (v Version) Tag() string { return v.tag }

// Core returns v without its tag.
func (v Version) Core() Version {
	v.tag = ""
	return v
}

// Number packs v into a single integer: major*1_000_000 + minor*1_000 + patch.
func (v Version) Number() int {
	return v.major*1_000_000 + v.minor*1_000 + v.patch
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to
// or after other. Tags are ignored.
func (v Version) Compare(other Version) int {
	a, b := v.Number(), other.Number()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v is older than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether v and other denote the same release, ignoring tags.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// AtLeast reports whether v is other or newer.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// IsZero reports whether v is the zero version.
func (v Version) IsZero() bool {
	return v == Version{}
}

// String formats v as major.minor.patch[-tag].
func (v Version) String() string {
	s := strconv.Itoa(v.major) + "." + strconv.Itoa(v.minor) + "." + strconv.Itoa(v.patch)
	if v.tag != "" {
		s += "-" + v.tag
	}
	return s
}

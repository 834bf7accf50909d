package moniker

import (
	"regexp"
	"strings"
)

// Separator joins path segments in the canonical string form.
const Separator = "/"

// MaxSegmentLength is the longest a single path segment may be.
const MaxSegmentLength = 128

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Path is an ordered, immutable sequence of validated segments.
// The zero value is the root path (no segments).
type Path struct {
	segments []string
}

// NewPath builds a Path from the given segments, validating each one.
func NewPath(segments ...string) (Path, error) {
	for _, seg := range segments {
		if err := ValidateSegment(seg); err != nil {
			return Path{}, err
		}
	}
	copied := make([]string, len(segments))
	copy(copied, segments)
	return Path{segments: copied}, nil
}

// ParsePath splits a "/"-joined string into a validated Path.
// An empty string yields the root path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	return NewPath(strings.Split(s, Separator)...)
}

// ValidateSegment checks a single segment against the path grammar.
func ValidateSegment(seg string) error {
	if seg == "" {
		return parseErrorf(seg, seg, "empty path segment")
	}
	if len(seg) > MaxSegmentLength {
		return parseErrorf(seg, seg, "segment exceeds %d characters", MaxSegmentLength)
	}
	if !segmentPattern.MatchString(seg) {
		return parseErrorf(seg, seg, "segment must match %s", segmentPattern.String())
	}
	return nil
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// At returns the segment at index i, or "" when out of range.
func (p Path) At(i int) string {
	if i < 0 || i >= len(p.segments) {
		return ""
	}
	return p.segments[i]
}

// Leaf returns the last segment, or "" for the root path.
func (p Path) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path with the last segment removed.
// The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return Path{}
	}
	return Path{segments: p.segments[:len(p.segments)-1]}
}

// Ancestors returns the chain of ancestor paths from the root to the
// immediate parent, exclusive of the path itself.
func (p Path) Ancestors() []Path {
	if len(p.segments) == 0 {
		return nil
	}
	out := make([]Path, 0, len(p.segments))
	for i := 0; i < len(p.segments); i++ {
		out = append(out, Path{segments: p.segments[:i]})
	}
	return out
}

// Child returns a new path with name appended.
func (p Path) Child(name string) (Path, error) {
	if err := ValidateSegment(name); err != nil {
		return Path{}, err
	}
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	segments = append(segments, name)
	return Path{segments: segments}, nil
}

// IsAncestorOf reports whether p is a strict ancestor of other.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p.segments) >= len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// String returns the canonical "/"-joined form. The root path is "".
func (p Path) String() string {
	return strings.Join(p.segments, Separator)
}

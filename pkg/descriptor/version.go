package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment identifies which part of a dotted version a bump targets.
type Segment int

const (
	SegmentMajor Segment = 0
	SegmentMinor Segment = 1
	SegmentPatch Segment = 2
)

// String returns the segment name as used on the command line.
func (s Segment) String() string {
	switch s {
	case SegmentMajor:
		return "major"
	case SegmentMinor:
		return "minor"
	case SegmentPatch:
		return "patch"
	}
	return fmt.Sprintf("segment(%d)", int(s))
}

// ParseSegment parses a segment name (major, minor, patch).
func ParseSegment(s string) (Segment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return SegmentMajor, nil
	case "minor":
		return SegmentMinor, nil
	case "patch":
		return SegmentPatch, nil
	}
	return 0, fmt.Errorf("unknown version segment %q (expected major, minor or patch)", s)
}

// Version is a dotted numeric release version. Observed descriptor revisions
// carry both two-segment ("0.13") and three-segment ("1.0.14") versions, so
// the length is not fixed.
type Version []int

// ParseVersion parses a dotted numeric version string.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("version is empty")
	}

	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, part := range parts {
		// Atoi alone would accept a leading sign
		if !isDigits(part) {
			return nil, fmt.Errorf("invalid version %q: segment %q is not a non-negative integer", s, part)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: segment %q is not a non-negative integer", s, part)
		}
		v[i] = n
	}
	return v, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the version back to its dotted form.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Compare orders two versions. Missing segments compare as zero, so
// "1.0" == "1.0.0". Returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	n := len(v)
	if len(other) > n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Bump returns a new version with the given segment incremented and every
// segment to its right reset to zero. Bumping a segment the version does not
// yet have extends it with zeros first, so a patch bump of "0.13" yields
// "0.13.1".
func (v Version) Bump(seg Segment) Version {
	idx := int(seg)

	n := len(v)
	if idx+1 > n {
		n = idx + 1
	}
	out := make(Version, n)
	copy(out, v)

	out[idx]++
	for i := idx + 1; i < len(out); i++ {
		out[i] = 0
	}
	return out
}

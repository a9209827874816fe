package evolve

import (
	"fmt"
	"strconv"
	"strings"
)

// Version identifies a schema revision as an ordered sequence of
// non-negative integers, e.g. 1.2.0. The zero value (an empty sequence)
// is the schema's inception and sorts before every non-empty version.
//
// Versions are immutable once constructed; none of the methods mutate
// the receiver.
type Version []int

// ParseVersion parses a dot-separated version string such as "1.2.0".
// The empty string parses to the zero version. Anything else that is not
// a dot-separated list of non-negative integers fails with ErrInvalidVersion.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		v[i] = n
	}
	return v, nil
}

// MustVersion is ParseVersion that panics on malformed input. It is meant
// for version literals in declaration code, where a typo should fail the
// process at startup.
func MustVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// V builds a Version from integer components: V(1, 2, 0).
func V(parts ...int) Version {
	v := make(Version, len(parts))
	copy(v, parts)
	return v
}

// Compare returns -1, 0 or +1 as a sorts before, equal to or after b.
// Elements are compared pairwise over the common prefix; if that prefix
// ties, the strictly longer version is the greater one, so 2 > 1.0.0 and
// 1.2.1 > 1.2.
func (v Version) Compare(o Version) int {
	n := len(v)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		switch {
		case v[i] < o[i]:
			return -1
		case v[i] > o[i]:
			return 1
		}
	}
	switch {
	case len(v) < len(o):
		return -1
	case len(v) > len(o):
		return 1
	}
	return 0
}

// Less reports whether v sorts strictly before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o denote the same revision.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// IsZero reports whether v is the inception version.
func (v Version) IsZero() bool { return len(v) == 0 }

// String formats the version in the same dot-separated form ParseVersion
// accepts; the zero version formats as the empty string. The result
// round-trips exactly through ParseVersion.
func (v Version) String() string {
	if len(v) == 0 {
		return ""
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

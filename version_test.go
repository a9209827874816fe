package evolve

import (
	"testing"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		want Version
	}{
		{"", nil},
		{"0", V(0)},
		{"1.2.0", V(1, 2, 0)},
		{"10.0.3", V(10, 0, 3)},
		{"7", V(7)},
	}
	for _, c := range cases {
		got, err := ParseVersion(c.in)
		if err != nil {
			t.Fatalf("ParseVersion(%q): unexpected error: %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseVersion(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, in := range []string{"1..2", "a.b", "-1", "1.-2", "1.2.", ".1", "1,2"} {
		if _, err := ParseVersion(in); err == nil {
			t.Errorf("ParseVersion(%q): expected error, got nil", in)
		}
	}
}

func TestVersionRoundTrip(t *testing.T) {
	for _, s := range []string{"", "0", "1.2.0", "3.0.0.1"} {
		v, err := ParseVersion(s)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", s, err)
		}
		if v.String() != s {
			t.Errorf("round trip of %q produced %q", s, v.String())
		}
	}
}

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b Version
		want int
	}{
		{V(1, 2, 0), V(1, 2, 0), 0},
		{nil, nil, 0},
		{V(1), V(2), -1},
		{V(2), V(1, 0, 0), 1},     // prefix tie broken by first element
		{V(1, 0, 0), V(1), 1},     // longer wins on a full prefix tie
		{V(1, 2), V(1, 2, 1), -1}, // shorter prefix is smaller
		{nil, V(0), -1},           // zero version sorts before everything
		{V(1, 2, 3), V(1, 2, 4), -1},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := c.b.Compare(c.a); got != -c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.b, c.a, got, -c.want)
		}
	}
}

// TestVersionTotalOrder verifies exactly one of <, =, > holds per pair.
func TestVersionTotalOrder(t *testing.T) {
	vs := []Version{nil, V(0), V(1), V(1, 0, 0), V(1, 2), V(1, 2, 0), V(2), V(2, 0)}
	for _, a := range vs {
		for _, b := range vs {
			lt := a.Less(b)
			gt := b.Less(a)
			eq := a.Equal(b)
			n := 0
			for _, x := range []bool{lt, gt, eq} {
				if x {
					n++
				}
			}
			if n != 1 {
				t.Errorf("order of %v vs %v not total: less=%v greater=%v equal=%v", a, b, lt, gt, eq)
			}
		}
	}
}

func TestMustVersionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustVersion on malformed input did not panic")
		}
	}()
	MustVersion("not.a.version")
}

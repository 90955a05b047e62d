package hxd

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestSkipws(t *testing.T) {
	c := &cursor{s: "  \t\nx"}
	b := skipws(c, true)
	assert(t, b == 'x', "skipws(nl=true) left %q, want 'x'", b)

	c = &cursor{s: "  \nx"}
	b = skipws(c, false)
	assert(t, b == '\n', "skipws(nl=false) should stop at newline, got %q", b)
}

func TestGetint(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"123abc", 123},
		{"0", 0},
		{"abc", -1},
		{"", -1},
	}
	for _, c := range cases {
		cur := &cursor{s: c.in}
		got := getint(cur)
		assert(t, got == c.want, "getint(%q) = %d, want %d", c.in, got, c.want)
	}
}

func TestGetintOverflowStopsConsuming(t *testing.T) {
	// Enough digits to exceed the clamp threshold partway through; the
	// cursor should stop advancing right there, leaving the remaining
	// digits in the source instead of skipping over them.
	cur := &cursor{s: "99999999999999"}
	getint(cur)
	assert(t, cur.pos < len(cur.s), "getint should not consume the entire overflowing literal")
}

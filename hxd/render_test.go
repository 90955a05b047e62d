package hxd

import "testing"

func TestToprint(t *testing.T) {
	assert(t, toprint('A') == 'A', "printable byte should pass through")
	assert(t, toprint('\n') == '.', "control byte should render as '.'")
	assert(t, toprint(0xff) == '.', "high byte should render as '.'")
}

func TestTooctal(t *testing.T) {
	assert(t, tooctal('A') == "A", "printable byte should pass through")
	assert(t, tooctal('\n') == `\n`, "newline should render as \\n")
	assert(t, tooctal(0x01) == `\001`, "0x01 = %q, want \\001", tooctal(0x01))
}

func TestToshort(t *testing.T) {
	assert(t, toshort(0x00) == "nul", "0x00 = %q, want nul", toshort(0x00))
	assert(t, toshort('A') == "A", "printable byte should pass through")
	assert(t, toshort(0x7f) == "del", "0x7f = %q, want del", toshort(0x7f))
	assert(t, toshort(0xff) == "ff", "0xff = %q, want ff", toshort(0xff))
}

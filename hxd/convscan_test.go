package hxd

import "testing"

func TestScanConvBasic(t *testing.T) {
	c := &cursor{s: "02x"}
	cv, ok := scanConv(c)
	assert(t, ok, "scanConv(%q) failed to parse", "02x")
	assert(t, cv.code == convCode('x'), "code = %v, want 'x'", cv.code)
	assert(t, cv.flags&flagZero != 0, "expected zero flag set")
	assert(t, cv.width == 2, "width = %d, want 2", cv.width)
	assert(t, cv.bytes == 4, "bytes = %d, want 4", cv.bytes)
}

func TestScanConvDomainSpecific(t *testing.T) {
	cases := map[string]convCode{
		"_c": convEscape,
		"_p": convPrintOr,
		"_u": convShort,
		"_ax": convAddrHex,
		"_ad": convAddrDec,
		"_ao": convAddrOct,
	}
	for in, want := range cases {
		c := &cursor{s: in}
		cv, ok := scanConv(c)
		assert(t, ok, "scanConv(%q) failed to parse", in)
		assert(t, cv.code == want, "scanConv(%q) code = %v, want %v", in, cv.code, want)
	}
}

func TestScanConvEndOfStreamCompilesButIsMarked(t *testing.T) {
	for _, in := range []string{"_Ad", "_Ao", "_Ax"} {
		c := &cursor{s: in}
		_, ok := scanConv(c)
		assert(t, ok, "scanConv(%q) should compile (ENOTSUPP is an execution-time failure)", in)
	}
}

func TestScanConvStringRequiresPrecision(t *testing.T) {
	c := &cursor{s: "s"}
	_, ok := scanConv(c)
	assert(t, !ok, "%%s with no precision should be rejected")

	c = &cursor{s: ".4s"}
	cv, ok := scanConv(c)
	assert(t, ok, "%%.4s should parse")
	assert(t, cv.bytes == 4, "bytes = %d, want 4", cv.bytes)
}

func TestScanConvRejectsUnknownSequence(t *testing.T) {
	c := &cursor{s: "_q"}
	_, ok := scanConv(c)
	assert(t, !ok, "scanConv(%q) should fail", "_q")
}

package hxd

// toprint maps a byte to itself if printable ASCII, else '.'.
func toprint(b byte) byte {
	if b > 0x1f && b < 0x7f {
		return b
	}
	return '.'
}

// tooctal renders b as its printable form, a short backslash escape, or a
// three-digit octal escape, MSB first.
func tooctal(b byte) string {
	if b > 0x1f && b < 0x7f {
		return string(b)
	}

	switch b {
	case '\x00':
		return `\0`
	case '\a':
		return `\a`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\v':
		return `\v`
	default:
		const octal = "01234567"
		return string([]byte{
			'\\',
			octal[0x7&(b>>6)],
			octal[0x7&(b>>3)],
			octal[0x7&(b>>0)],
		})
	}
}

var shortNames = [...]string{
	0x00: "nul", 0x01: "soh", 0x02: "stx", 0x03: "etx",
	0x04: "eot", 0x05: "enq", 0x06: "ack", 0x07: "bel",
	0x08: "bs", 0x09: "ht", 0x0a: "lf", 0x0b: "vt",
	0x0c: "ff", 0x0d: "cr", 0x0e: "so", 0x0f: "si",
	0x10: "dle", 0x11: "dc1", 0x12: "dc2", 0x13: "dc3",
	0x14: "dc4", 0x15: "nak", 0x16: "syn", 0x17: "etb",
	0x18: "can", 0x19: "em", 0x1a: "sub", 0x1b: "esc",
	0x1c: "fs", 0x1d: "gs", 0x1e: "rs", 0x1f: "us",
}

// toshort renders b as its ASCII control mnemonic, itself if printable,
// or two lowercase hex digits for anything above 0x7f.
func toshort(b byte) string {
	switch {
	case b <= 0x1f:
		return shortNames[b]
	case b == 0x7f:
		return "del"
	case b < 0x7f:
		return string(b)
	default:
		const hex = "0123456789abcdef"
		return string([]byte{hex[0x0f&(b>>4)], hex[0x0f&b]})
	}
}

package hxd

import "fmt"

// execConv implements the CONV opcode: it pops the five-tuple the
// compiler pushed in reverse order (fc, prec, width, flags, word) and
// renders one datum to the output buffer. word is either the integer the
// preceding READ produced, or (for %s) unused — the source bytes are
// read directly out of the input window instead.
func (m *Machine) execConv() error {
	fc, err := m.pop()
	if err != nil {
		return err
	}
	prec, err := m.pop()
	if err != nil {
		return err
	}
	width, err := m.pop()
	if err != nil {
		return err
	}
	flags, err := m.pop()
	if err != nil {
		return err
	}
	word, err := m.pop()
	if err != nil {
		return err
	}

	code := convCode(fc)

	switch code {
	case convCode('%'):
		m.putc('%')
		return nil

	case convCode('c'):
		if prec > 3 {
			prec = 3
		}
		m.puts(tooctal(byte(word)))
		return nil

	case convEscape:
		m.puts(tooctal(byte(word)))
		return nil

	case convPrintOr:
		m.putc(toprint(byte(word)))
		return nil

	case convShort:
		if prec > 3 {
			prec = 3
		}
		m.puts(toshort(byte(word)))
		return nil

	case convAddrDec, convAddrOct, convAddrHex:
		address := m.in.address + int64(m.in.p)
		verb := addrVerb(code)
		m.puts(sprintf(int(flags), int(width), int(prec), verb, address))
		return nil

	case convEndDec, convEndOct, convEndHex:
		// The grammar accepts %_Ad/_Ao/_Ax at compile time but the
		// engine cannot compute an end-of-stream address mid-stream
		// (the reference implementation never implemented this
		// either), so every execution of one fails here.
		return ErrNotSupported

	case convCode('s'):
		n := int(prec)
		if n > m.in.pe-m.in.p {
			n = m.in.pe - m.in.p
		}
		if n < 0 {
			n = 0
		}
		m.puts(string(m.in.base[m.in.p : m.in.p+n]))
		m.in.p += n
		return nil

	case convCode('d'), convCode('i'):
		m.puts(sprintf(int(flags), int(width), int(prec), 'd', word))
		return nil
	case convCode('o'):
		m.puts(sprintf(int(flags), int(width), int(prec), 'o', word))
		return nil
	case convCode('u'):
		m.puts(sprintf(int(flags), int(width), int(prec), 'd', uint32(word)))
		return nil
	case convCode('x'):
		m.puts(sprintf(int(flags), int(width), int(prec), 'x', uint32(word)))
		return nil
	case convCode('X'):
		m.puts(sprintf(int(flags), int(width), int(prec), 'X', uint32(word)))
		return nil

	default:
		return ErrOops
	}
}

func addrVerb(code convCode) byte {
	switch code {
	case convAddrOct:
		return 'o'
	case convAddrHex:
		return 'x'
	default:
		return 'd'
	}
}

// sprintf builds a printf-style verb string from the parsed flag bits,
// width, and precision, then delegates to fmt.Sprintf — the host
// printf routine the format grammar was designed around, stood in for
// by Go's own format-string engine rather than hand-rolled field
// padding.
func sprintf(flags, width, prec int, verb byte, v any) string {
	f := "%"
	if flags&flagHash != 0 {
		f += "#"
	}
	if flags&flagMinus != 0 {
		f += "-"
	}
	if flags&flagZero != 0 {
		f += "0"
	}
	if flags&flagPlus != 0 {
		f += "+"
	}
	// Space flag is accepted by the grammar but never forwarded to the
	// renderer: hxd's numeric conversions are address offsets and raw
	// words, and a leading space for non-negative values has no
	// established meaning here (resolved Open Question).

	if width > 0 {
		f += fmt.Sprintf("%d", width)
	}
	// The compiler pushes an absent precision as 0, so only a positive
	// precision is forwarded.
	if prec > 0 {
		f += fmt.Sprintf(".%d", prec)
	}
	f += string(verb)

	return fmt.Sprintf(f, v)
}

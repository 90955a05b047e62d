package hxd

// Open allocates an uncompiled Machine. It cannot fail the way hxd_open
// can (malloc returning NULL has no GC'd analogue), so unlike the rest of
// the API it returns a bare value rather than an (value, error) pair.
// Call Compile before Write.
func Open() *Machine {
	return &Machine{}
}

// Compile translates format into a program and (re)sizes the Machine's
// input window to match. flags is reserved for future use and must be
// zero. Mirrors hxd_compile, including the window realloc it performs
// once blocksize is known.
func (m *Machine) Compile(format string, flags int) error {
	if flags != 0 {
		return ErrFormat
	}

	program, blockSize, err := compileFormat(format)
	if err != nil {
		return err
	}
	if blockSize <= 0 {
		blockSize = 1
	}

	m.program = program
	m.blockSize = blockSize
	m.in.base = make([]byte, blockSize)
	m.Reset()
	return nil
}

// Close releases the Machine's buffers. Go's GC makes this a formality
// next to hxd_close's free() calls, but it keeps the API symmetric and
// gives callers a place to assert a Machine won't be reused.
func (m *Machine) Close() {
	m.program = nil
	m.in.base = nil
	m.out.buf = nil
}

// Reset rewinds the Machine to run its compiled program again from the
// start of input, discarding any buffered output. Mirrors hxd_reset.
func (m *Machine) Reset() {
	m.pc = 0
	m.sp = 0
	m.in.p = 0
	m.in.pe = 0
	m.in.address = 0
	m.in.eof = false
	m.out.buf = m.out.buf[:0]
	m.out.p = 0
}

// BlockSize returns the number of input bytes Write consumes per
// execution of the compiled program.
func (m *Machine) BlockSize() int {
	return m.blockSize
}

// Write appends src to the input window, running the compiled program
// once for every block it fills. A run failure returns at once: blocks
// completed earlier in the call stay processed, the failing block stays
// in the window with the running address not advanced past it, and the
// rest of src is not copied. Output the failing pass rendered before the
// error stays buffered.
//
// This mirrors hxd_write's block-fill loop, generalized from a single
// fixed-size scratch buffer to an input window sized to the compiled
// program's own block size.
func (m *Machine) Write(src []byte) error {
	n := 0
	for n < len(src) {
		room := len(m.in.base) - m.in.pe
		take := len(src) - n
		if take > room {
			take = room
		}
		copy(m.in.base[m.in.pe:], src[n:n+take])
		m.in.pe += take
		n += take

		if m.in.pe < len(m.in.base) {
			break
		}

		if err := m.runBlock(); err != nil {
			return err
		}
	}
	return nil
}

// Flush runs the compiled program once more over whatever input remains
// in the window, short of a full block. Mirrors hxd_flush's trick of
// temporarily narrowing pe to the window's filled length.
func (m *Machine) Flush() error {
	if m.in.p >= m.in.pe {
		return nil
	}
	return m.runBlock()
}

// runBlock executes the program from pc 0 over the currently buffered
// window, then advances the running address by the window's filled
// length and empties it for the next Write. Matches the driver contract
// in spec.md §4.I literally: address advances by the block's size (the
// full block size for a Write-triggered pass, whatever partial length
// was buffered for a Flush-triggered one), not by how far any one
// format line's own cursor happened to travel — RESET rewinds that
// cursor to the window base at the start of every line, so its final
// position after the program halts reflects only the last line, not the
// whole pass.
func (m *Machine) runBlock() error {
	m.pc = 0
	m.sp = 0

	filled := m.in.pe
	if err := m.run(); err != nil {
		return err
	}

	m.in.address += int64(filled)
	m.in.p = 0
	m.in.pe = 0
	return nil
}

// Read drains up to len(dst) rendered bytes into dst, compacting
// whatever output remains unread. Mirrors hxd_read's memmove-based
// compaction of the growable output buffer.
func (m *Machine) Read(dst []byte) (n int) {
	n = copy(dst, m.out.buf[:m.out.p])
	remaining := m.out.p - n
	if remaining > 0 {
		copy(m.out.buf, m.out.buf[n:m.out.p])
	}
	m.out.p = remaining
	return n
}

// Pending reports how many rendered bytes are buffered and ready for
// Read, letting a caller size its read loop instead of guessing.
func (m *Machine) Pending() int {
	return m.out.p
}

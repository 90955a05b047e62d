package hxd

// emitter accumulates a program into the fixed-size code buffer, the Go
// stand-in for the reference implementation's `unsigned char code[4096]`
// plus a running `pc` cursor. Every method appends at buf[len:] and fails
// with ErrNoMemory once len would exceed programSize.
type emitter struct {
	buf [programSize]byte
	len int
}

func (e *emitter) pc() int { return e.len }

func (e *emitter) byte(b byte) error {
	if e.len >= len(e.buf) {
		return ErrNoMemory
	}
	e.buf[e.len] = b
	e.len++
	return nil
}

func (e *emitter) op(op opcode) error {
	return e.byte(byte(op))
}

// int emits the shortest opcode sequence that pushes v: ZERO/ONE/TWO for
// the common small cases, else I8/I16/I32 with a trailing NEG for
// negative values, matching emit_int's minimal-width encoding.
func (e *emitter) int(v int64) error {
	neg := v < 0
	u := v
	if neg {
		u = -v
	}

	switch {
	case u == 0 && !neg:
		if err := e.op(opZero); err != nil {
			return err
		}
	case u == 1 && !neg:
		if err := e.op(opOne); err != nil {
			return err
		}
	case u == 2 && !neg:
		if err := e.op(opTwo); err != nil {
			return err
		}
	case u <= 0xff:
		if err := e.op(opI8); err != nil {
			return err
		}
		if err := e.byte(byte(u)); err != nil {
			return err
		}
	case u <= 0xffff:
		if err := e.op(opI16); err != nil {
			return err
		}
		if err := e.byte(byte(u >> 8)); err != nil {
			return err
		}
		if err := e.byte(byte(u)); err != nil {
			return err
		}
	case u <= 0xffffffff:
		if err := e.op(opI32); err != nil {
			return err
		}
		if err := e.byte(byte(u >> 24)); err != nil {
			return err
		}
		if err := e.byte(byte(u >> 16)); err != nil {
			return err
		}
		if err := e.byte(byte(u >> 8)); err != nil {
			return err
		}
		if err := e.byte(byte(u)); err != nil {
			return err
		}
	default:
		return ErrRange
	}

	if neg && u != 0 {
		return e.op(opNeg)
	}
	return nil
}

func (e *emitter) putc(b byte) error {
	if err := e.op(opPutc); err != nil {
		return err
	}
	return e.byte(b)
}

// jmp reserves a fixed 6-byte slot (I16 placeholder, ADD-or-SUB
// placeholder... in practice just six TRAP bytes) for a later link,
// returning the pc of the reservation so the caller can link it once the
// jump target is known. Mirrors emit_jmp's "reserve now, patch later"
// two-pass scheme, which lets a backward reference (loop test) and a
// forward reference (loop exit) both be written with the same mechanism.
func (e *emitter) jmp() (int, error) {
	at := e.pc()
	for i := 0; i < 6; i++ {
		if err := e.op(opTrap); err != nil {
			return 0, err
		}
	}
	return at, nil
}

// link patches the 6-byte reservation at `at` (previously produced by
// jmp) so that, when executed, it pushes `target` as an absolute pc and
// falls into a JMP. PC pushes the address of the byte right after its
// own opcode (the dispatch loop advances pc past the opcode before the
// case runs), so the displacement is relative to at+1, not to the end
// of the 6-byte reservation — matching emit_link's PC-relative patch:
// `PC; I16 displacement; ADD-or-SUB; JMP`.
func (e *emitter) link(at, target int) error {
	after := at + 6
	ref := at + 1
	disp := target - ref
	neg := disp < 0
	if neg {
		disp = -disp
	}
	if disp > 0xffff {
		return ErrRange
	}

	buf := e.buf[at:after]
	buf[0] = byte(opPC)
	buf[1] = byte(opI16)
	buf[2] = byte(disp >> 8)
	buf[3] = byte(disp)
	if neg {
		buf[4] = byte(opSub)
	} else {
		buf[4] = byte(opAdd)
	}
	buf[5] = byte(opJmp)
	return nil
}

// program returns the emitted bytes, trap-padded out to programSize so a
// runaway pc always lands on a trapping instruction rather than reading
// past the slice.
func (e *emitter) program() []byte {
	out := make([]byte, programSize)
	copy(out, e.buf[:e.len])
	for i := e.len; i < programSize; i++ {
		out[i] = byte(opTrap)
	}
	return out
}

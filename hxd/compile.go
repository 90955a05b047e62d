package hxd

// compileFormat translates a hexdump-style format string into a program
// and returns the block size the VM's input window must be sized to: the
// largest, over all lines, of the sum of each line's unit consumption.
// This mirrors hxd_compile's two jobs — build the bytecode, and size the
// caller's window — folded into one pass since Go gives us multi-value
// returns instead of an out-parameter.
func compileFormat(format string) ([]byte, int, error) {
	e := &emitter{}
	c := &cursor{s: format}
	blockSize := 0

	for {
		skipws(c, true)
		if c.done() {
			break
		}

		if err := e.op(opReset); err != nil {
			return nil, 0, err
		}

		lineConsumes := 0
		for {
			skipws(c, false)
			ch := c.peek()
			if ch == 0 || ch == '\n' {
				break
			}

			// count defaults to 1, bytes defaults to -1 (unbounded)
			// when either half of the "[count]['/'bytes]" header is
			// absent.
			loop := 1
			limit := -1
			if ch >= '0' && ch <= '9' {
				loop = getint(c)
				if loop < 0 {
					return nil, 0, ErrFormat
				}
			}
			if c.peek() == '/' {
				c.advance()
				limit = getint(c)
				if limit < 0 {
					return nil, 0, ErrFormat
				}
			}
			skipws(c, false)

			if c.peek() != '"' {
				return nil, 0, ErrFormat
			}
			c.advance()

			consumed, err := emitUnit(e, loop, limit, c)
			if err != nil {
				return nil, 0, err
			}
			lineConsumes += consumed
		}

		if lineConsumes > blockSize {
			blockSize = lineConsumes
		}
		if c.peek() == '\n' {
			c.advance()
		}
	}

	if err := e.op(opHalt); err != nil {
		return nil, 0, err
	}
	return e.program(), blockSize, nil
}

var escapes = map[byte]byte{
	'0': 0, 'a': '\a', 'b': '\b', 'f': '\f',
	'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '"': '"',
}

// emitUnit compiles one "loop/limit \"text\"" unit starting just past the
// opening quote, leaving the cursor just past the closing quote. It
// returns the total input bytes this unit consumes across all `loop`
// iterations, for the caller's block-size accounting.
//
// Structurally this follows emit_unit: a counted-loop prologue and
// epilogue straddle a single pass over the quoted text that's shared by
// every iteration, since the bytecode for one iteration's body is
// identical regardless of which iteration is executing.
func emitUnit(e *emitter, loop, limit int, c *cursor) (int, error) {
	wrapped := loop > 0
	var l1 int
	var l2at int

	if wrapped {
		if err := e.int(0); err != nil {
			return 0, err
		}
		l1 = e.pc()

		if err := e.op(opDup); err != nil {
			return 0, err
		}
		if err := e.int(int64(loop)); err != nil {
			return 0, err
		}
		if err := e.op(opSwap); err != nil {
			return 0, err
		}
		if err := e.op(opSub); err != nil {
			return 0, err
		}
		if err := e.op(opNot); err != nil {
			return 0, err
		}
		at, err := e.jmp()
		if err != nil {
			return 0, err
		}
		l2at = at
	}

	consumes := 0
	for {
		ch := c.peek()
		switch ch {
		case 0:
			return 0, ErrFormat
		case '"':
			c.advance()
			goto doneBody
		case '\\':
			c.advance()
			b, ok := escapes[c.peek()]
			if !ok {
				return 0, ErrFormat
			}
			c.advance()
			if err := e.putc(b); err != nil {
				return 0, err
			}
		case '%':
			c.advance()
			if c.peek() == '%' {
				c.advance()
				if err := e.putc('%'); err != nil {
					return 0, err
				}
				continue
			}

			cv, ok := scanConv(c)
			if !ok {
				return 0, ErrFormat
			}

			bytes := cv.bytes
			if bytes > 0 {
				if limit >= 0 {
					remaining := limit - consumes
					if bytes > remaining {
						bytes = remaining
					}
					if bytes <= 0 {
						return 0, ErrDrained
					}
				}
				consumes += bytes
			}
			if cv.code == convCode('s') {
				cv.prec = bytes
			}

			if err := emitConvGuarded(e, cv, bytes); err != nil {
				return 0, err
			}

		default:
			c.advance()
			if err := e.putc(ch); err != nil {
				return 0, err
			}
		}
	}

doneBody:
	if wrapped {
		if remaining := limit - consumes; remaining > 0 {
			if err := e.int(int64(remaining)); err != nil {
				return 0, err
			}
			if err := e.op(opRead); err != nil {
				return 0, err
			}
			if err := e.op(opPop); err != nil {
				return 0, err
			}
		}

		if err := e.int(1); err != nil {
			return 0, err
		}
		if err := e.op(opAdd); err != nil {
			return 0, err
		}

		if err := e.op(opTrue); err != nil {
			return 0, err
		}
		backAt, err := e.jmp()
		if err != nil {
			return 0, err
		}
		if err := e.link(backAt, l1); err != nil {
			return 0, err
		}

		if err := e.link(l2at, e.pc()); err != nil {
			return 0, err
		}
		if err := e.op(opPop); err != nil {
			return 0, err
		}
		if loop > 1 {
			if err := e.op(opTrim); err != nil {
				return 0, err
			}
		}

		return consumes * loop, nil
	}

	return consumes, nil
}

// emitConvGuarded renders one conversion, skipping it entirely at runtime
// if the input window is exhausted (possible on a final, short Flush).
// The skip is a forward jump patched once the conversion's own bytecode
// has been emitted, the same reserve-then-link idiom emitUnit's loop uses
// for its backward edge.
func emitConvGuarded(e *emitter, cv conv, bytes int) error {
	if err := e.op(opCount); err != nil {
		return err
	}
	if err := e.op(opNot); err != nil {
		return err
	}
	skipAt, err := e.jmp()
	if err != nil {
		return err
	}

	if cv.code == convCode('s') {
		if err := e.int(0); err != nil {
			return err
		}
	} else {
		if err := e.int(int64(bytes)); err != nil {
			return err
		}
	}
	if err := e.op(opRead); err != nil {
		return err
	}
	width, prec := cv.width, cv.prec
	if width < 0 {
		width = 0
	}
	if prec < 0 {
		prec = 0
	}

	if err := e.int(int64(cv.flags)); err != nil {
		return err
	}
	if err := e.int(int64(width)); err != nil {
		return err
	}
	if err := e.int(int64(prec)); err != nil {
		return err
	}
	if err := e.int(int64(cv.code)); err != nil {
		return err
	}
	if err := e.op(opConv); err != nil {
		return err
	}

	return e.link(skipAt, e.pc())
}

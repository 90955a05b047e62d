package hxd

import (
	"fmt"
	"io"
)

// Dump disassembles m's compiled program to w. See dumpProgram for the
// per-instruction format.
func (m *Machine) Dump(w io.Writer) error {
	return dumpProgram(m.program, w)
}

// Help returns the CLI's usage text. The reference implementation's
// hxd_help is a stub (`return "helps"`); this renders something a user
// could actually read.
func (m *Machine) Help() string {
	return `usage: hexdump [-D] [-e format] [-f formatfile] [file ...]

  -e format     add format to the list of output formats
  -f formatfile add the formats in formatfile to the list
  -D            print the compiled program's disassembly instead of running it
  -h            print this help

A format is one or more newline-separated lines, each made of one or more
"count/size \"string\"" units. Within a unit's quoted string, ordinary
characters are copied to the output; a backslash introduces the usual C
escapes; "%%" is a literal percent; any other "%..." is a conversion,
consuming size bytes of input per count repetitions and rendering them per
the printf-style flags/width/precision/conversion letter that follow, plus
the hexdump-specific "_a", "_A", "_c", "_p", and "_u" conversions.`
}

// dumpProgram disassembles a compiled program to w, one instruction per
// line as "pc: MNEMONIC [operand]". It is the -D flag's backend, grounded
// on the reference implementation's op_dump/vm_dump pair but driven off
// the same fetch widths run() uses so the two never drift apart on
// encoding.
func dumpProgram(program []byte, w io.Writer) error {
	pc := 0
	for pc < len(program) {
		start := pc
		op := opcode(program[pc])
		pc++

		switch op {
		case opI8:
			if pc >= len(program) {
				return ErrOops
			}
			fmt.Fprintf(w, "%4d: %-6s %d\n", start, op, program[pc])
			pc++
		case opI16:
			if pc+2 > len(program) {
				return ErrOops
			}
			v := int(program[pc])<<8 | int(program[pc+1])
			fmt.Fprintf(w, "%4d: %-6s %d\n", start, op, v)
			pc += 2
		case opI32:
			if pc+4 > len(program) {
				return ErrOops
			}
			v := int(program[pc])<<24 | int(program[pc+1])<<16 | int(program[pc+2])<<8 | int(program[pc+3])
			fmt.Fprintf(w, "%4d: %-6s %d\n", start, op, v)
			pc += 4
		case opPutc:
			if pc >= len(program) {
				return ErrOops
			}
			fmt.Fprintf(w, "%4d: %-6s %s\n", start, op, tooctal(program[pc]))
			pc++
		default:
			fmt.Fprintf(w, "%4d: %s\n", start, op)
		}

		if op == opHalt {
			return nil
		}
	}
	return nil
}

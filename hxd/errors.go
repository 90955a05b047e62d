package hxd

import "errors"

// Sentinel errors, styled after the teacher's errProgramFinished /
// errSegmentationFault taxonomy: exported errors.New values compared by
// identity, with a single Strerror mapping function for callers that want
// a human-readable string instead of an %w-wrapped chain.
var (
	// ErrFormat means the format string was malformed at compile time.
	ErrFormat = errors.New("invalid format")
	// ErrDrained means a unit's conversion would consume zero bytes
	// within the unit's byte limit. Rejected at compile time.
	ErrDrained = errors.New("unit drains buffer")
	// ErrNotSupported means the bytecode requested a conversion the
	// engine recognizes but cannot perform (the %_A* family).
	ErrNotSupported = errors.New("unsupported conversion sequence")
	// ErrOops means the VM trapped: it executed an opcode that should be
	// unreachable for any program the compiler emits. Indicates a
	// corrupted or hand-crafted program.
	ErrOops = errors.New("machine trapped")
	// ErrNoMemory means the compiled program overflowed its fixed
	// capacity.
	ErrNoMemory = errors.New("out of program memory")
	// ErrRange means an emitted jump displacement or integer immediate
	// didn't fit the encoding (16 bits for displacements, 32 bits for
	// pushed constants).
	ErrRange = errors.New("value out of range for encoding")
)

// Strerror returns err's message, or "no error" for nil. This mirrors
// hxd_strerror's contract without a parallel errno space: idiomatic Go
// already gives every error, known or not, a message via Error().
func Strerror(err error) string {
	if err == nil {
		return "no error"
	}
	return err.Error()
}

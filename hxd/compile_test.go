package hxd

import (
	"bytes"
	"os"
	"testing"
)

func compileFile(t *testing.T, path string) *Machine {
	t.Helper()
	data, err := os.ReadFile(path)
	assert(t, err == nil, "reading %s: %v", path, err)

	m := Open()
	err = m.Compile(string(data), 0)
	assert(t, err == nil, "compiling %s: %v", path, err)
	return m
}

func render(t *testing.T, m *Machine, input []byte) string {
	t.Helper()
	err := m.Write(input)
	assert(t, err == nil, "Write: %v", err)
	err = m.Flush()
	assert(t, err == nil, "Flush: %v", err)

	var out bytes.Buffer
	buf := make([]byte, 256)
	for {
		n := m.Read(buf)
		if n == 0 {
			break
		}
		out.Write(buf[:n])
	}
	return out.String()
}

func TestCompileClassicFormat(t *testing.T) {
	m := compileFile(t, "../examples/classic.hxd")
	assert(t, m.BlockSize() == 16, "block size = %d, want 16", m.BlockSize())

	input := make([]byte, 16)
	for i := range input {
		input[i] = byte(i)
	}
	got := render(t, m, input)
	assert(t, got == "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n",
		"got %q", got)
}

func TestCompileOctalBytesFormat(t *testing.T) {
	m := compileFile(t, "../examples/octal_bytes.hxd")
	assert(t, m.BlockSize() == 16, "block size = %d, want 16", m.BlockSize())

	input := []byte{0x00, 'A', 0x7f, 0xff, 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M'}
	var want []byte
	for i, b := range input {
		if i > 0 {
			want = append(want, ' ')
		}
		want = append(want, []byte(toshort(b))...)
	}
	want = append(want, '\n')

	got := render(t, m, input)
	assert(t, got == string(want), "got %q, want %q", got, string(want))
}

func TestCompileDefaultTwoLine(t *testing.T) {
	m := Open()
	err := m.Compile("1/1 \"%02x\"\n\"\\n\"", 0)
	assert(t, err == nil, "compile: %v", err)

	got := render(t, m, []byte{0x5a})
	assert(t, got == "5a\n", "got %q", got)
}

func TestCompileRejectsMalformedFormat(t *testing.T) {
	m := Open()
	err := m.Compile(`1/1 "%_q"`, 0)
	assert(t, err == ErrFormat, "err = %v, want ErrFormat", err)
}

func TestCompileRejectsDrainingUnit(t *testing.T) {
	m := Open()
	// The first %d is clamped to the unit's 1-byte limit, leaving no
	// bytes for the second.
	err := m.Compile(`1/1 "%d%d"`, 0)
	assert(t, err == ErrDrained, "err = %v, want ErrDrained", err)
}

func TestEndOfStreamConversionFailsAtExecution(t *testing.T) {
	m := Open()
	err := m.Compile(`1/1 "%_Ax"`, 0)
	assert(t, err == nil, "%%_Ax should compile: %v", err)

	err = m.Write([]byte{0x01})
	assert(t, err == ErrNotSupported, "err = %v, want ErrNotSupported", err)
}

func TestWriteDoesNotPartiallyConsumeOnError(t *testing.T) {
	m := Open()
	err := m.Compile(`1/1 "%_Ax"`, 0)
	assert(t, err == nil, "compile: %v", err)

	n := 0
	m.Write([]byte{0x01, 0x02, 0x03})
	_ = n
	// The first block trips ENOTSUPP; nothing past it should have run.
	assert(t, m.in.address == 0, "address advanced past the failing block: %d", m.in.address)
}

func TestTrimSeparatesLoopIterationsNotTheLastOne(t *testing.T) {
	m := Open()
	err := m.Compile(`4/1 "%02x "`, 0)
	assert(t, err == nil, "compile: %v", err)

	got := render(t, m, []byte{0x01, 0x02, 0x03, 0x04})
	assert(t, got == "01 02 03 04", "got %q, want no trailing separator", got)
}

func TestReset(t *testing.T) {
	m := compileFile(t, "../examples/classic.hxd")
	first := render(t, m, []byte{0x01, 0x02})
	m.Reset()
	second := render(t, m, []byte{0x01, 0x02})
	assert(t, first == second, "Reset should make the machine reusable: %q != %q", first, second)
}

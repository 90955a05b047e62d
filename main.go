// Command hexdump compiles one or more hexdump-style format strings and
// runs them over its input files, the way the classic hexdump(1)/od(1)
// utilities do.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/wahern/hexdump/hxd"
)

const defaultFormat = `16/1 "%.2x "
"\n"`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "hexdump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("hexdump", flag.ContinueOnError)

	var formats []string
	fs.VarP(stringSliceFlag{&formats}, "format", "e", "add `format` to the list of output formats")

	var formatFiles []string
	fs.VarP(stringSliceFlag{&formatFiles}, "formatfile", "f", "add the formats in `file` to the list")

	dump := fs.BoolP("dump", "D", false, "print the compiled program's disassembly instead of running it")
	help := fs.BoolP("help", "h", false, "print usage")

	if err := fs.Parse(args); err != nil {
		return err
	}

	m := hxd.Open()
	defer m.Close()

	if *help {
		fmt.Println(m.Help())
		return nil
	}

	format, err := resolveFormat(formats, formatFiles)
	if err != nil {
		return err
	}

	if err := m.Compile(format, 0); err != nil {
		return fmt.Errorf("compiling format: %w", err)
	}

	if *dump {
		return m.Dump(os.Stdout)
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	for i, name := range files {
		if err := dumpFile(m, name, i == len(files)-1); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// resolveFormat concatenates every -e format and every -f formatfile's
// contents, in the order given on the command line, falling back to the
// default of sixteen two-digit hex bytes per line, with no ASCII column,
// when none were supplied.
func resolveFormat(formats, formatFiles []string) (string, error) {
	if len(formats) == 0 && len(formatFiles) == 0 {
		return defaultFormat, nil
	}

	var b strings.Builder
	for _, f := range formats {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	for _, path := range formatFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// dumpFile feeds one input file through m in 4096-byte chunks, draining
// rendered output after every read, and flushes only when last is true —
// preserving the reference CLI's behavior of treating a format spanning
// multiple files as one continuous stream with a single trailing flush.
func dumpFile(m *hxd.Machine, name string, last bool) error {
	var f *os.File
	if name == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	buf := make([]byte, 4096)
	out := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if werr := m.Write(buf[:n]); werr != nil {
				return werr
			}
			if derr := drain(m, out); derr != nil {
				return derr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if last {
		if err := m.Flush(); err != nil {
			return err
		}
		return drain(m, out)
	}
	return nil
}

func drain(m *hxd.Machine, out []byte) error {
	for {
		n := m.Read(out)
		if n == 0 {
			return nil
		}
		if _, err := os.Stdout.Write(out[:n]); err != nil {
			return err
		}
	}
}

// stringSliceFlag implements pflag.Value to let -e/-f be repeated,
// appending each occurrence instead of overwriting the previous one.
type stringSliceFlag struct{ values *[]string }

func (f stringSliceFlag) String() string {
	if f.values == nil {
		return ""
	}
	return strings.Join(*f.values, ",")
}

func (f stringSliceFlag) Set(s string) error {
	*f.values = append(*f.values, s)
	return nil
}

func (f stringSliceFlag) Type() string { return "string" }

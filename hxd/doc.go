// Package hxd compiles hexdump-style format strings into a small
// bytecode program and runs that program over a stream of input blocks,
// producing rendered output incrementally. It is the library half of the
// hexdump-compatible CLI in the repository root.
package hxd

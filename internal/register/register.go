// Package register implements the register file: a fixed set of named
// words, each independently readable and/or writable, plus a
// privileged instruction pointer that the instruction controller can
// advance even though it is not user-writable.
package register

import (
	"errors"
	"fmt"

	"tinyasm/internal/word"
)

// Name identifies one of the machine's registers.
type Name string

const (
	RAX Name = "RAX"
	RBX Name = "RBX"
	RDX Name = "RDX"
	RSX Name = "RSX"
	RIP Name = "RIP"
	RSI Name = "RSI"
	RDI Name = "RDI"
)

// capability records whether user code may read and/or write a
// register directly.
type capability struct {
	readable bool
	writable bool
}

// registry is the fixed table of known registers and their
// capabilities. RIP is readable but not writable from user code: only
// the instruction controller may advance it, through SetInstructionPointer.
var registry = map[Name]capability{
	RAX: {readable: true, writable: true},
	RBX: {readable: true, writable: true},
	RDX: {readable: true, writable: true},
	RSX: {readable: true, writable: true},
	RIP: {readable: true, writable: false},
	RSI: {readable: true, writable: true},
	RDI: {readable: true, writable: true},
}

// ErrNotReadable is returned by Get for a register that cannot be read.
var ErrNotReadable = errors.New("register: not readable")

// ErrNotWritable is returned by Set for a register that cannot be
// written directly.
var ErrNotWritable = errors.New("register: not writable")

// ErrUnknown is returned for a name outside the fixed register set.
var ErrUnknown = errors.New("register: unknown register")

// File is the full set of register states.
type File struct {
	states map[Name]int64
}

// New returns a register file with every register initialized to zero.
func New() *File {
	f := &File{states: make(map[Name]int64, len(registry))}
	f.Reset()
	return f
}

// Reset zeroes every register.
func (f *File) Reset() {
	for name := range registry {
		f.states[name] = 0
	}
}

// IsKnown reports whether name is one of the machine's registers.
func IsKnown(name Name) bool {
	_, ok := registry[name]
	return ok
}

// Get returns the current value of name, or ErrNotReadable /
// ErrUnknown.
func (f *File) Get(name Name) (int64, error) {
	cap, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if !cap.readable {
		return 0, fmt.Errorf("%w: %s", ErrNotReadable, name)
	}
	return f.states[name], nil
}

// Set stores value (truncated to a word) into name, or returns
// ErrNotWritable / ErrUnknown. Writing RIP through this path always
// fails: only SetInstructionPointer may move it.
func (f *File) Set(name Name, value int64) error {
	cap, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if !cap.writable {
		return fmt.Errorf("%w: %s", ErrNotWritable, name)
	}
	f.states[name] = word.Truncate(value)
	return nil
}

// InstructionPointer returns the current value of RIP.
func (f *File) InstructionPointer() int64 {
	return f.states[RIP]
}

// SetInstructionPointer is the privileged setter the instruction
// controller uses to advance or redirect RIP, bypassing the
// write-capability check that blocks user code from touching it
// through Set.
func (f *File) SetInstructionPointer(value int64) {
	f.states[RIP] = word.Truncate(value)
}

// Snapshot returns a copy of every register's current value, keyed by
// name, for diagnostics and trace output.
func (f *File) Snapshot() map[Name]int64 {
	out := make(map[Name]int64, len(f.states))
	for name, value := range f.states {
		out[name] = value
	}
	return out
}

// String renders the register file for debug and trace printing.
func (f *File) String() string {
	return fmt.Sprintf("RAX=%d RBX=%d RDX=%d RSX=%d RSI=%d RDI=%d RIP=%d",
		f.states[RAX], f.states[RBX], f.states[RDX], f.states[RSX],
		f.states[RSI], f.states[RDI], f.states[RIP])
}

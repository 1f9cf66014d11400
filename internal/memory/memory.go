// Package memory implements the machine's flat, bounds-checked word
// memory, with three reserved cells mapped to the character I/O
// streams: cell 0 is STDIN, cell 1 is STDOUT, cell 2 is STDERR.
package memory

import (
	"errors"
	"fmt"

	"tinyasm/internal/stream"
	"tinyasm/internal/word"
)

// DefaultSize is the memory capacity used when a program doesn't ask
// for a different size.
const DefaultSize = 128

// Reserved cell indices, memory-mapped to the I/O streams.
const (
	CellStdin  = 0
	CellStdout = 1
	CellStderr = 2
)

// ErrNotEnoughMemory is returned by Load when the program's data image
// exceeds the memory's capacity.
var ErrNotEnoughMemory = errors.New("memory: not enough memory for program data")

// ErrDataNotFound is returned by Get/Set for an address outside the
// memory's bounds.
var ErrDataNotFound = errors.New("memory: address out of bounds")

// Memory is a flat array of words, with memory-mapped I/O on its first
// three cells.
type Memory struct {
	cells   []int64
	streams *stream.Streams
}

// New returns an empty memory of the given size, wired to streams for
// memory-mapped I/O. A nil streams disables the I/O side effects
// (useful for tests that only exercise plain storage).
func New(size int, streams *stream.Streams) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	return &Memory{cells: make([]int64, size), streams: streams}
}

// Size returns the memory's total cell count.
func (m *Memory) Size() int {
	return len(m.cells)
}

// Load copies data into memory starting at cell 0. It fails if data
// is larger than the memory's capacity; data exactly filling the
// memory is fine.
func (m *Memory) Load(data []int64) error {
	if len(data) > len(m.cells) {
		return fmt.Errorf("%w: image has %d cells, memory has %d", ErrNotEnoughMemory, len(data), len(m.cells))
	}
	copy(m.cells, data)
	return nil
}

func (m *Memory) inBounds(address int) bool {
	return address >= 0 && address < len(m.cells)
}

// Get reads the word at address. Reading the reserved STDIN cell first
// pulls the next character from the input stream into that cell, then
// returns it.
func (m *Memory) Get(address int) (int64, error) {
	if !m.inBounds(address) {
		return 0, fmt.Errorf("%w: %d", ErrDataNotFound, address)
	}
	if address == CellStdin && m.streams != nil {
		code, err := m.streams.Getc()
		if err != nil {
			return 0, err
		}
		m.cells[CellStdin] = code
	}
	return m.cells[address], nil
}

// Set writes value (truncated to a word) at address. Writing the
// reserved STDOUT or STDERR cell also emits the character to the
// corresponding stream, in addition to storing it.
func (m *Memory) Set(address int, value int64) error {
	if !m.inBounds(address) {
		return fmt.Errorf("%w: %d", ErrDataNotFound, address)
	}
	v := word.Truncate(value)
	m.cells[address] = v

	if m.streams == nil {
		return nil
	}
	switch address {
	case CellStdout:
		return m.streams.Putc(v)
	case CellStderr:
		return m.streams.PutErr(v)
	}
	return nil
}

// Snapshot returns a copy of every memory cell, for trace output.
func (m *Memory) Snapshot() []int64 {
	out := make([]int64, len(m.cells))
	copy(out, m.cells)
	return out
}

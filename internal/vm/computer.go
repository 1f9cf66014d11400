// Package vm implements the tick-accurate virtual machine: the
// instruction controller that dereferences operands, the mnemonic
// dispatch table, and the Computer that drives the fetch/execute loop
// over a loaded Program image.
package vm

import (
	"context"
	"errors"
	"fmt"

	"tinyasm/internal/alu"
	"tinyasm/internal/asmerr"
	"tinyasm/internal/ast"
	"tinyasm/internal/memory"
	"tinyasm/internal/register"
	"tinyasm/internal/stream"
)

// TraceMode selects how densely Run emits Snapshots while it executes
// a program.
type TraceMode int

const (
	// TraceNone emits no Snapshots on success; only a final Event
	// carrying an error, if any, is ever sent.
	TraceNone TraceMode = iota
	// TraceInst emits one Snapshot after every completed instruction.
	TraceInst
	// TraceTick emits one Snapshot after every clock tick.
	TraceTick
)

// Snapshot is a point-in-time view of machine state, used for tracing
// and debugging.
type Snapshot struct {
	Tick      uint64
	Inst      uint64
	Registers map[register.Name]int64
	Flags     alu.Flags
}

// Event is one item from a Run trace stream: either a Snapshot, or a
// terminal error.
type Event struct {
	Snapshot Snapshot
	Err      error
}

// Computer owns every piece of machine state and the instruction
// controller that operates on it.
type Computer struct {
	Registers  *register.File
	Memory     *memory.Memory
	ALU        *alu.ALU
	Streams    *stream.Streams
	Clock      *Clock
	Controller *Controller
}

// New builds a Computer with a fresh register file, ALU, clock, and
// memory of memSize cells backed by streams.
func New(memSize int, streams *stream.Streams) *Computer {
	regs := register.New()
	mem := memory.New(memSize, streams)
	unit := alu.New()
	clock := NewClock()
	return &Computer{
		Registers: regs,
		Memory:    mem,
		ALU:       unit,
		Streams:   streams,
		Clock:     clock,
		Controller: &Controller{
			Registers: regs,
			Memory:    mem,
			ALU:       unit,
			Streams:   streams,
			Clock:     clock,
		},
	}
}

// Load copies program's initial data image into memory, ready for
// execution starting at instruction 0.
func (comp *Computer) Load(program *ast.Program) error {
	return comp.Memory.Load(program.Data.Memory)
}

func (comp *Computer) snapshot() Snapshot {
	return Snapshot{
		Tick:      comp.Clock.Ticks(),
		Inst:      comp.Clock.Insts(),
		Registers: comp.Registers.Snapshot(),
		Flags:     comp.ALU.Flags(),
	}
}

// Step fetches and executes the single instruction at the current
// RIP. It reports halted=true (with a nil error) once a hlt
// instruction runs. On any other failure it returns the error
// unchanged; RIP is left pointing at the failing instruction.
func (comp *Computer) Step(program *ast.Program) (bool, error) {
	rip := comp.Registers.InstructionPointer()
	if rip < 0 || int(rip) >= len(program.Text.Lines) {
		return false, asmerr.New(asmerr.KindUndefinedLOC, "no instruction at line %d", rip)
	}
	instr := program.Text.Lines[rip]

	fn, ok := dispatch[instr.Mnemonic]
	if !ok {
		return false, asmerr.New(asmerr.KindUndefinedInstruction, "unknown mnemonic %q", instr.Mnemonic)
	}

	if err := fn(comp.Controller, instr); err != nil {
		if errors.Is(err, errHalt) {
			return true, nil
		}
		return false, err
	}

	comp.Clock.Tick()
	comp.Clock.IncInst()
	comp.Registers.SetInstructionPointer(comp.Registers.InstructionPointer() + 1)
	return false, nil
}

// Run drives the fetch/execute loop to completion in its own
// goroutine, returning a channel of trace Events. The channel is
// closed once the program halts, fails, or ctx is canceled. Exactly
// one Event carrying a non-nil Err is sent on any failure, regardless
// of mode; TraceNone otherwise sends nothing, matching a trace-free
// run.
func (comp *Computer) Run(ctx context.Context, program *ast.Program, mode TraceMode) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		if mode == TraceTick {
			comp.Clock.onTick = func() {
				select {
				case events <- Event{Snapshot: comp.snapshot()}:
				case <-ctx.Done():
				}
			}
			defer func() { comp.Clock.onTick = nil }()
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			halted, err := comp.Step(program)
			if err != nil {
				select {
				case events <- Event{Err: fmt.Errorf("vm: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			if halted {
				return
			}
			if mode == TraceInst {
				select {
				case events <- Event{Snapshot: comp.snapshot()}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}

package vm

import (
	"errors"
	"fmt"

	"tinyasm/internal/alu"
	"tinyasm/internal/asmerr"
	"tinyasm/internal/ast"
	"tinyasm/internal/memory"
	"tinyasm/internal/register"
	"tinyasm/internal/stream"
)

// wrapRegisterErr translates the register package's plain sentinel
// errors into the toolchain's asmerr taxonomy at the VM boundary,
// keeping package register itself free of that dependency.
func wrapRegisterErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, register.ErrNotReadable):
		return asmerr.New(asmerr.KindRegisterIsNotReadable, "%v", err)
	case errors.Is(err, register.ErrNotWritable):
		return asmerr.New(asmerr.KindRegisterIsNotWritable, "%v", err)
	default:
		return err
	}
}

// Controller is the instruction controller: it dereferences operands
// against the register file and memory, drives the ALU, and performs
// the character/number I/O mnemonics, ticking the clock as it goes.
type Controller struct {
	Registers *register.File
	Memory    *memory.Memory
	ALU       *alu.ALU
	Streams   *stream.Streams
	Clock     *Clock
}

// Read dereferences op to its current value, ticking the clock once
// per call regardless of the operand's shape.
func (c *Controller) Read(op ast.Operand) (int64, error) {
	c.Clock.Tick()
	return c.valueOf(op)
}

// valueOf dereferences op without ticking, so that resolving a nested
// indirect-address offset doesn't charge an extra tick beyond the one
// the enclosing Read already counted.
func (c *Controller) valueOf(op ast.Operand) (int64, error) {
	switch v := op.(type) {
	case *ast.Constant:
		return v.Value, nil
	case *ast.Register:
		value, err := c.Registers.Get(register.Name(v.Name))
		return value, wrapRegisterErr(err)
	case *ast.DirectAddress:
		return c.Memory.Get(v.ResolvedCell)
	case *ast.IndirectAddress:
		offset, err := c.valueOf(v.Offset)
		if err != nil {
			return 0, err
		}
		return c.Memory.Get(v.ResolvedCell + int(offset))
	case *ast.Label:
		return int64(v.ResolvedIndex), nil
	default:
		return 0, fmt.Errorf("vm: unhandled operand type %T", op)
	}
}

// Write stores value into op. Writes never tick the clock. Constants
// and Labels aren't storage locations and report
// OperandIsNotWriteable.
func (c *Controller) Write(op ast.Operand, value int64) error {
	switch v := op.(type) {
	case *ast.Register:
		return wrapRegisterErr(c.Registers.Set(register.Name(v.Name), value))
	case *ast.DirectAddress:
		return c.Memory.Set(v.ResolvedCell, value)
	case *ast.IndirectAddress:
		offset, err := c.valueOf(v.Offset)
		if err != nil {
			return err
		}
		return c.Memory.Set(v.ResolvedCell+int(offset), value)
	default:
		return asmerr.New(asmerr.KindOperandIsNotWriteable, "%s is not writeable", op)
	}
}

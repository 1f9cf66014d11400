package vm

import (
	"errors"

	"tinyasm/internal/alu"
	"tinyasm/internal/asmerr"
	"tinyasm/internal/ast"
)

// errHalt is the internal signal a hlt instruction raises to stop the
// fetch/execute loop. Step recognizes it and reports a clean halt
// rather than surfacing it as a real error, standing in for the
// original machine's internal program-exit control-flow signal.
var errHalt = errors.New("vm: halt")

// execFunc executes one already-linearized instruction against a
// Controller. Only jumps set RIP themselves; Step then advances RIP by
// one after every successful instruction, jumps included.
type execFunc func(c *Controller, instr *ast.Instruction) error

// dispatch is the mnemonic-to-exec-function table. ld is an alias for
// mov: both simply move a value into the destination.
var dispatch = map[string]execFunc{
	"mov": execMov,
	"ld":  execMov,
	"cmp": execCmp,

	"add": execArith(alu.Add),
	"sub": execArith(alu.Sub),
	"mul": execArith(alu.Mul),
	"div": execArith(alu.Div),
	"mod": execArith(alu.Mod),
	"and": execArith(alu.And),
	"or":  execArith(alu.Or),
	"xor": execArith(alu.Xor),

	"inc": execIncDec(1),
	"dec": execIncDec(-1),

	"jmp": execJmp,
	"je":  execJmpIf(func(f alu.Flags) bool { return f.Z }),
	"jne": execJmpIf(func(f alu.Flags) bool { return !f.Z }),
	"jl":  execJmpIf(func(f alu.Flags) bool { return f.N }),
	"jg":  execJmpIf(func(f alu.Flags) bool { return !f.N }),
	"jle": execJmpIf(func(f alu.Flags) bool { return f.Z || f.N }),
	"jge": execJmpIf(func(f alu.Flags) bool { return !f.N }),

	"putc": execPutc,
	"putn": execPutn,
	"getc": execGetc,
	"getn": execGetn,

	"hlt": execHlt,
}

func execMov(c *Controller, instr *ast.Instruction) error {
	value, err := c.Read(instr.Operands[1])
	if err != nil {
		return err
	}
	return c.Write(instr.Operands[0], value)
}

// execArith builds the exec function shared by every ALU-backed
// two-operand mnemonic: read both operands, apply op, tick once for
// the ALU step, then write the result to the destination.
func execArith(op alu.Op) execFunc {
	return func(c *Controller, instr *ast.Instruction) error {
		first, err := c.Read(instr.Operands[0])
		if err != nil {
			return err
		}
		second, err := c.Read(instr.Operands[1])
		if err != nil {
			return err
		}
		result, err := c.ALU.Apply(op, first, second)
		if err != nil {
			return asmerr.New(asmerr.KindALUZeroDivisionError, "%v", err)
		}
		c.Clock.Tick()
		return c.Write(instr.Operands[0], result)
	}
}

// execCmp runs a Sub through the ALU purely for its flags: the
// numeric result is discarded, never written anywhere.
func execCmp(c *Controller, instr *ast.Instruction) error {
	first, err := c.Read(instr.Operands[0])
	if err != nil {
		return err
	}
	second, err := c.Read(instr.Operands[1])
	if err != nil {
		return err
	}
	if _, err := c.ALU.Apply(alu.Sub, first, second); err != nil {
		return asmerr.New(asmerr.KindALUZeroDivisionError, "%v", err)
	}
	c.Clock.Tick()
	return nil
}

// execIncDec writes operand+delta directly, bypassing the ALU: inc
// and dec never touch the N/Z/V/C flags.
func execIncDec(delta int64) execFunc {
	return func(c *Controller, instr *ast.Instruction) error {
		value, err := c.Read(instr.Operands[0])
		if err != nil {
			return err
		}
		return c.Write(instr.Operands[0], value+delta)
	}
}

// jumpTo redirects control flow to label's resolved instruction index.
// It sets RIP one short of the target because Step advances RIP by
// one immediately after any successful instruction, jump included.
func jumpTo(c *Controller, label ast.Operand) error {
	l, ok := label.(*ast.Label)
	if !ok {
		return asmerr.New(asmerr.KindUnexpectedOperand, "jump target %s is not a label", label)
	}
	c.Registers.SetInstructionPointer(int64(l.ResolvedIndex) - 1)
	return nil
}

func execJmp(c *Controller, instr *ast.Instruction) error {
	return jumpTo(c, instr.Operands[0])
}

// execJmpIf builds the exec function shared by every conditional
// jump: one extra tick for evaluating the condition, then jump only
// if test reports true against the ALU's current flags.
func execJmpIf(test func(alu.Flags) bool) execFunc {
	return func(c *Controller, instr *ast.Instruction) error {
		c.Clock.Tick()
		if !test(c.ALU.Flags()) {
			return nil
		}
		return jumpTo(c, instr.Operands[0])
	}
}

func execPutc(c *Controller, instr *ast.Instruction) error {
	value, err := c.Read(instr.Operands[0])
	if err != nil {
		return err
	}
	return c.Streams.Putc(value)
}

func execPutn(c *Controller, instr *ast.Instruction) error {
	value, err := c.Read(instr.Operands[0])
	if err != nil {
		return err
	}
	return c.Streams.Putn(value)
}

func execGetc(c *Controller, instr *ast.Instruction) error {
	value, err := c.Streams.Getc()
	if err != nil {
		return err
	}
	return c.Write(instr.Operands[0], value)
}

func execGetn(c *Controller, instr *ast.Instruction) error {
	value, err := c.Streams.Getn()
	if err != nil {
		return err
	}
	return c.Write(instr.Operands[0], value)
}

func execHlt(c *Controller, instr *ast.Instruction) error {
	return errHalt
}

// Package object implements the binary "object image" a translated
// program is serialized to and deserialized from: the CLI's translate
// verb writes one, and exec reads it back (run translates source in
// memory and does not use an object image). The Operand interface
// is flattened to a concrete wire struct before encoding, since the
// codec doesn't need to know about interface values that way.
package object

import (
	"io"

	"github.com/ugorji/go/codec"

	"tinyasm/internal/ast"
)

var handle codec.MsgpackHandle

// operandKind discriminates an operandWire's variant.
type operandKind uint8

const (
	kindConstant operandKind = iota
	kindRegister
	kindDirectAddress
	kindIndirectAddress
	kindLabel
)

type operandWire struct {
	Kind          operandKind
	Value         int64
	Name          string
	Label         string
	ResolvedCell  int
	ResolvedIndex int
	Offset        *operandWire
}

type instructionWire struct {
	Mnemonic string
	Operands []*operandWire
}

type programWire struct {
	DataVarToAddr map[string]int
	DataMemory    []int64
	TextLabels    map[string]int
	TextLines     []*instructionWire
}

func toWire(op ast.Operand) *operandWire {
	switch v := op.(type) {
	case *ast.Constant:
		return &operandWire{Kind: kindConstant, Value: v.Value}
	case *ast.Register:
		return &operandWire{Kind: kindRegister, Name: v.Name}
	case *ast.DirectAddress:
		return &operandWire{Kind: kindDirectAddress, Label: v.Label, ResolvedCell: v.ResolvedCell}
	case *ast.IndirectAddress:
		return &operandWire{
			Kind:         kindIndirectAddress,
			Label:        v.Label,
			ResolvedCell: v.ResolvedCell,
			Offset:       toWire(v.Offset),
		}
	case *ast.Label:
		return &operandWire{Kind: kindLabel, Name: v.Name, ResolvedIndex: v.ResolvedIndex}
	default:
		return nil
	}
}

func fromWire(w *operandWire) ast.Operand {
	if w == nil {
		return nil
	}
	switch w.Kind {
	case kindConstant:
		return &ast.Constant{Value: w.Value}
	case kindRegister:
		return &ast.Register{Name: w.Name}
	case kindDirectAddress:
		return &ast.DirectAddress{Label: w.Label, ResolvedCell: w.ResolvedCell}
	case kindIndirectAddress:
		return &ast.IndirectAddress{Label: w.Label, ResolvedCell: w.ResolvedCell, Offset: fromWire(w.Offset)}
	case kindLabel:
		return &ast.Label{Name: w.Name, ResolvedIndex: w.ResolvedIndex}
	default:
		return nil
	}
}

func toProgramWire(p *ast.Program) *programWire {
	lines := make([]*instructionWire, len(p.Text.Lines))
	for i, instr := range p.Text.Lines {
		operands := make([]*operandWire, len(instr.Operands))
		for j, op := range instr.Operands {
			operands[j] = toWire(op)
		}
		lines[i] = &instructionWire{Mnemonic: instr.Mnemonic, Operands: operands}
	}
	return &programWire{
		DataVarToAddr: p.Data.VarToAddr,
		DataMemory:    p.Data.Memory,
		TextLabels:    p.Text.Labels,
		TextLines:     lines,
	}
}

func fromProgramWire(w *programWire) *ast.Program {
	lines := make([]*ast.Instruction, len(w.TextLines))
	for i, instr := range w.TextLines {
		operands := make([]ast.Operand, len(instr.Operands))
		for j, op := range instr.Operands {
			operands[j] = fromWire(op)
		}
		lines[i] = &ast.Instruction{Mnemonic: instr.Mnemonic, Operands: operands}
	}
	return &ast.Program{
		Data: ast.DataSection{VarToAddr: w.DataVarToAddr, Memory: w.DataMemory},
		Text: ast.TextSection{Labels: w.TextLabels, Lines: lines},
	}
}

// Encode writes program's binary object image to w.
func Encode(w io.Writer, program *ast.Program) error {
	enc := codec.NewEncoder(w, &handle)
	return enc.Encode(toProgramWire(program))
}

// Decode reads a binary object image from r and reconstructs the
// Program it encodes.
func Decode(r io.Reader) (*ast.Program, error) {
	var wire programWire
	dec := codec.NewDecoder(r, &handle)
	if err := dec.Decode(&wire); err != nil {
		return nil, err
	}
	return fromProgramWire(&wire), nil
}

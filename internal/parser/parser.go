// Package parser translates preprocessed assembly source into a
// linked ast.Program: it splits the optional data section and
// required text section, resolves data-variable and label references
// to flat memory cells and instruction indices, and linearizes
// variadic reducing instructions into two-operand chains.
package parser

import (
	"fmt"
	"strings"

	"tinyasm/internal/asmerr"
	"tinyasm/internal/ast"
	"tinyasm/internal/isa"
	"tinyasm/internal/lex"
	"tinyasm/internal/preprocess"
	"tinyasm/internal/register"
	"tinyasm/internal/word"
)

const reservedCells = 3 // cells 0, 1, 2: STDIN, STDOUT, STDERR

// Result is the output of Parse: the linked program plus any
// non-fatal diagnostics (currently, redefinition warnings).
type Result struct {
	Program  *ast.Program
	Warnings []string
}

// Parse preprocesses and translates asmText into a linked Program.
func Parse(asmText string) (*Result, error) {
	text := preprocess.Minify(asmText)
	lines := strings.Split(text, "\n")
	if text == "" {
		lines = nil
	}

	dataHeader, textHeader := -1, -1
	for i, line := range lines {
		switch strings.ToLower(line) {
		case "section .data":
			dataHeader = i
		case "section .text":
			textHeader = i
		}
	}
	if textHeader == -1 {
		return nil, asmerr.New(asmerr.KindTextSectionNotFound, "no \"section .text\" found")
	}

	var dataLines, textLines []string
	switch {
	case dataHeader == -1:
		textLines = lines[textHeader+1:]
	case dataHeader < textHeader:
		dataLines = lines[dataHeader+1 : textHeader]
		textLines = lines[textHeader+1:]
	default:
		textLines = lines[textHeader+1 : dataHeader]
		dataLines = lines[dataHeader+1:]
	}

	data, dataWarnings, err := parseDataSection(dataLines)
	if err != nil {
		return nil, err
	}

	textSection, textWarnings, err := parseTextSection(textLines)
	if err != nil {
		return nil, err
	}

	if err := resolveReferences(textSection, data.VarToAddr); err != nil {
		return nil, err
	}

	return &Result{
		Program:  &ast.Program{Data: data, Text: textSection},
		Warnings: append(dataWarnings, textWarnings...),
	}, nil
}

func parseDataSection(lines []string) (ast.DataSection, []string, error) {
	section := ast.DataSection{
		VarToAddr: map[string]int{
			"STDIN":  0,
			"STDOUT": 1,
			"STDERR": 2,
		},
		Memory: make([]int64, reservedCells),
	}
	var warnings []string

	for _, line := range lines {
		idx := strings.Index(line, ":")
		if idx < 0 {
			return section, warnings, asmerr.New(asmerr.KindUndefinedLOC, "malformed data line").WithContext(line)
		}
		name := strings.TrimSpace(line[:idx])
		valueTok := strings.TrimSpace(line[idx+1:])

		if !lex.IsVariableName(name) {
			return section, warnings, asmerr.New(asmerr.KindUnexpectedDataValue, "invalid variable name %q", name).WithContext(line)
		}
		if _, exists := section.VarToAddr[name]; exists {
			warnings = append(warnings, fmt.Sprintf("variable %q redefined", name))
		}

		cells, err := parseDataValue(valueTok)
		if err != nil {
			return section, warnings, err
		}

		section.VarToAddr[name] = len(section.Memory)
		section.Memory = append(section.Memory, cells...)
	}
	return section, warnings, nil
}

func parseDataValue(tok string) ([]int64, error) {
	switch {
	case strings.HasPrefix(tok, "buf"):
		fields := strings.Fields(tok)
		if len(fields) != 2 || fields[0] != "buf" {
			return nil, asmerr.New(asmerr.KindUnexpectedDataValue, "expected \"buf N\"").WithContext(tok)
		}
		if !lex.IsNumber(fields[1]) {
			return nil, asmerr.New(asmerr.KindIncorrectDataType, "buf size must be a number").WithContext(tok)
		}
		n, err := lex.ParseNumber(fields[1])
		if err != nil || n <= 0 {
			return nil, asmerr.New(asmerr.KindIncorrectDataType, "buf size must be a positive integer").WithContext(tok)
		}
		return make([]int64, n), nil

	case lex.IsQuotedString(tok):
		s, err := lex.UnquoteString(tok)
		if err != nil {
			return nil, asmerr.New(asmerr.KindUnexpectedDataValue, "%v", err).WithContext(tok)
		}
		cells := make([]int64, 0, len(s)+1)
		for _, r := range s {
			cells = append(cells, word.TruncateRune(r))
		}
		return append(cells, 0), nil

	case lex.IsQuotedChar(tok):
		r, err := lex.UnquoteChar(tok)
		if err != nil {
			return nil, asmerr.New(asmerr.KindUnexpectedDataValue, "%v", err).WithContext(tok)
		}
		return []int64{word.TruncateRune(r)}, nil

	case lex.IsNumber(tok):
		n, err := lex.ParseNumber(tok)
		if err != nil {
			return nil, asmerr.New(asmerr.KindUnexpectedDataValue, "%v", err).WithContext(tok)
		}
		if !word.InRange(n) {
			return nil, asmerr.New(asmerr.KindNumberOutOfRange, "%d is out of range", n).WithContext(tok)
		}
		return []int64{n}, nil

	default:
		return nil, asmerr.New(asmerr.KindUnexpectedDataValue, "unrecognized data value").WithContext(tok)
	}
}

func parseTextSection(lines []string) (ast.TextSection, []string, error) {
	section := ast.TextSection{
		Labels: map[string]int{},
		Lines:  nil,
	}
	var warnings []string

	for _, line := range lines {
		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if !lex.IsLabel(name) {
				return section, warnings, asmerr.New(asmerr.KindUndefinedLOC, "invalid label declaration").WithContext(line)
			}
			key := lex.LabelName(name)
			if _, exists := section.Labels[key]; exists {
				warnings = append(warnings, fmt.Sprintf("label %q redefined", key))
			}
			section.Labels[key] = len(section.Lines)
			continue
		}

		instrs, err := parseInstructionLine(line)
		if err != nil {
			return section, warnings, err
		}
		section.Lines = append(section.Lines, instrs...)
	}
	return section, warnings, nil
}

func parseInstructionLine(line string) ([]*ast.Instruction, error) {
	mnemonicTok, rest, _ := strings.Cut(line, " ")
	mnemonic := strings.ToLower(mnemonicTok)
	if !isa.IsMnemonic(mnemonic) {
		return nil, asmerr.New(asmerr.KindUndefinedInstruction, "unknown instruction %q", mnemonicTok).WithContext(line)
	}

	var operandToks []string
	rest = strings.TrimSpace(rest)
	if rest != "" {
		for _, tok := range strings.Split(rest, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				return nil, asmerr.New(asmerr.KindUnexpectedArguments, "empty operand").WithContext(line)
			}
			operandToks = append(operandToks, tok)
		}
	}

	operands := make([]ast.Operand, 0, len(operandToks))
	for _, tok := range operandToks {
		op, err := parseOperand(tok)
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	}

	shape := isa.Mnemonics[mnemonic]
	switch shape {
	case isa.ShapeNullary:
		if len(operands) != 0 {
			return nil, asmerr.New(asmerr.KindUnexpectedArguments, "%q takes no operands", mnemonic).WithContext(line)
		}
	case isa.ShapeUnary:
		if len(operands) != 1 {
			return nil, arityError(mnemonic, 1, len(operands), line)
		}
	case isa.ShapeBinary:
		if len(operands) != 2 {
			return nil, arityError(mnemonic, 2, len(operands), line)
		}
	case isa.ShapeReducing:
		if len(operands) < 2 {
			return nil, asmerr.New(asmerr.KindNotEnoughOperands, "%q needs a destination and at least one source", mnemonic).WithContext(line)
		}
		return linearizeReducing(mnemonic, operands), nil
	}

	return []*ast.Instruction{{Mnemonic: mnemonic, Operands: operands}}, nil
}

func arityError(mnemonic string, want, got int, line string) error {
	if got < want {
		return asmerr.New(asmerr.KindNotEnoughOperands, "%q needs %d operand(s), got %d", mnemonic, want, got).WithContext(line)
	}
	return asmerr.New(asmerr.KindUnexpectedArguments, "%q takes %d operand(s), got %d", mnemonic, want, got).WithContext(line)
}

// linearizeReducing expands "op dest, x1, x2, ..., xk" into a chain of
// two-operand instructions. A single source operand accumulates onto
// the destination ("op dest, x1" means dest = dest op x1); two or
// more sources reduce left-to-right starting from x1, ignoring any
// prior value of dest ("op dest, x1, x2" means dest = x1 op x2, via
// "mov dest, x1" then "op dest, x2").
func linearizeReducing(mnemonic string, operands []ast.Operand) []*ast.Instruction {
	dest := operands[0]
	sources := operands[1:]

	if len(sources) == 1 {
		return []*ast.Instruction{{Mnemonic: mnemonic, Operands: []ast.Operand{dest, sources[0]}}}
	}

	chain := []*ast.Instruction{{Mnemonic: "mov", Operands: []ast.Operand{dest, sources[0]}}}
	for _, src := range sources[1:] {
		chain = append(chain, &ast.Instruction{Mnemonic: mnemonic, Operands: []ast.Operand{dest, src}})
	}
	return chain
}

func parseOperand(tok string) (ast.Operand, error) {
	switch {
	case lex.IsNumber(tok):
		n, err := lex.ParseNumber(tok)
		if err != nil {
			return nil, asmerr.New(asmerr.KindUnexpectedOperand, "%v", err).WithContext(tok)
		}
		if !word.InRange(n) {
			return nil, asmerr.New(asmerr.KindNumberOutOfRange, "%d is out of range", n).WithContext(tok)
		}
		return &ast.Constant{Value: n}, nil

	case lex.IsQuotedChar(tok):
		r, err := lex.UnquoteChar(tok)
		if err != nil {
			return nil, asmerr.New(asmerr.KindUnexpectedOperand, "%v", err).WithContext(tok)
		}
		return &ast.Constant{Value: word.TruncateRune(r)}, nil

	case lex.IsQuotedString(tok):
		return nil, asmerr.New(asmerr.KindOperandMustBeCharNotString, "operand must be a character, not a string").WithContext(tok)

	case lex.IsRegister(tok):
		name := lex.RegisterName(tok)
		if !register.IsKnown(register.Name(name)) {
			return nil, asmerr.New(asmerr.KindUnexpectedOperand, "unknown register %q", name).WithContext(tok)
		}
		return &ast.Register{Name: name}, nil

	case lex.IsIndirectAddress(tok):
		name, offsetTok, _ := lex.SplitIndirectAddress(tok)
		offset, err := parseOperand(offsetTok)
		if err != nil {
			return nil, err
		}
		return &ast.IndirectAddress{Label: name, Offset: offset}, nil

	case lex.IsDirectAddress(tok):
		return &ast.DirectAddress{Label: lex.DirectAddressName(tok)}, nil

	case lex.IsLabel(tok):
		return &ast.Label{Name: lex.LabelName(tok)}, nil

	default:
		return nil, asmerr.New(asmerr.KindUnexpectedOperand, "unrecognized operand").WithContext(tok)
	}
}

func resolveReferences(text ast.TextSection, varToAddr map[string]int) error {
	for _, instr := range text.Lines {
		for _, op := range instr.Operands {
			if err := resolveOperand(op, varToAddr, text.Labels); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveOperand(op ast.Operand, varToAddr map[string]int, labels map[string]int) error {
	switch v := op.(type) {
	case *ast.DirectAddress:
		cell, ok := varToAddr[v.Label]
		if !ok {
			return asmerr.New(asmerr.KindNoSuchLabel, "no such variable %q", v.Label)
		}
		v.ResolvedCell = cell
	case *ast.IndirectAddress:
		cell, ok := varToAddr[v.Label]
		if !ok {
			return asmerr.New(asmerr.KindNoSuchLabel, "no such variable %q", v.Label)
		}
		v.ResolvedCell = cell
		return resolveOperand(v.Offset, varToAddr, labels)
	case *ast.Label:
		idx, ok := labels[v.Name]
		if !ok {
			return asmerr.New(asmerr.KindNoSuchLabel, "no such label %q", v.Name)
		}
		v.ResolvedIndex = idx
	}
	return nil
}

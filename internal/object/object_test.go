package object_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyasm/internal/ast"
	"tinyasm/internal/object"
	"tinyasm/internal/parser"
)

func TestRoundTripPreservesStructure(t *testing.T) {
	src := `
section .data
  msg: "hi"
  buffer: buf 2
section .text
  mov %RAX, #msg
  .loop:
  inc %RAX
  jmp .loop
  hlt
`
	res, err := parser.Parse(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, res.Program))

	got, err := object.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, res.Program.Data.VarToAddr, got.Data.VarToAddr)
	assert.Equal(t, res.Program.Data.Memory, got.Data.Memory)
	assert.Equal(t, res.Program.Text.Labels, got.Text.Labels)
	require.Len(t, got.Text.Lines, len(res.Program.Text.Lines))

	for i, instr := range res.Program.Text.Lines {
		assert.Equal(t, instr.Mnemonic, got.Text.Lines[i].Mnemonic)
		require.Len(t, got.Text.Lines[i].Operands, len(instr.Operands))
		for j, op := range instr.Operands {
			assert.Equal(t, op.String(), got.Text.Lines[i].Operands[j].String())
		}
	}
}

func TestRoundTripIndirectAddress(t *testing.T) {
	prog := &ast.Program{
		Data: ast.DataSection{VarToAddr: map[string]int{"buffer": 3}, Memory: []int64{0, 0, 0, 0}},
		Text: ast.TextSection{
			Labels: map[string]int{},
			Lines: []*ast.Instruction{
				{Mnemonic: "mov", Operands: []ast.Operand{
					&ast.IndirectAddress{Label: "buffer", ResolvedCell: 3, Offset: &ast.Constant{Value: 1}},
					&ast.Constant{Value: 9},
				}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, object.Encode(&buf, prog))

	got, err := object.Decode(&buf)
	require.NoError(t, err)

	ind, ok := got.Text.Lines[0].Operands[0].(*ast.IndirectAddress)
	require.True(t, ok)
	assert.Equal(t, 3, ind.ResolvedCell)
	assert.Equal(t, "1", ind.Offset.String())
}

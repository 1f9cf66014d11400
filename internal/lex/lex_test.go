package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyasm/internal/lex"
)

func TestIsNumberAndParse(t *testing.T) {
	cases := map[string]int64{
		"42":     42,
		"-42":    -42,
		"0x2A":   42,
		"0o52":   42,
		"0b101010": 42,
	}
	for literal, want := range cases {
		assert.True(t, lex.IsNumber(literal), literal)
		got, err := lex.ParseNumber(literal)
		require.NoError(t, err)
		assert.Equal(t, want, got, literal)
	}
	assert.False(t, lex.IsNumber("abc"))
}

func TestQuotedString(t *testing.T) {
	assert.True(t, lex.IsQuotedString(`"hello\n"`))
	s, err := lex.UnquoteString(`"hello\n"`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", s)
}

func TestQuotedChar(t *testing.T) {
	assert.True(t, lex.IsQuotedChar(`'a'`))
	r, err := lex.UnquoteChar(`'a'`)
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	_, err = lex.UnquoteChar(`"ab"`)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	assert.True(t, lex.IsRegister("%RAX"))
	assert.Equal(t, "RAX", lex.RegisterName("%RAX"))
	assert.False(t, lex.IsRegister("RAX"))
}

func TestRegisterNameUppercasesLowercaseTokens(t *testing.T) {
	assert.True(t, lex.IsRegister("%rax"))
	assert.Equal(t, "RAX", lex.RegisterName("%rax"))
	assert.Equal(t, "RDI", lex.RegisterName("%rdi"))
	assert.Equal(t, "RAX", lex.RegisterName("%Rax"))
}

func TestDirectAddress(t *testing.T) {
	assert.True(t, lex.IsDirectAddress("#buf"))
	assert.Equal(t, "buf", lex.DirectAddressName("#buf"))
	assert.False(t, lex.IsDirectAddress("#buf[1]"))
}

func TestIndirectAddress(t *testing.T) {
	assert.True(t, lex.IsIndirectAddress("#buf[%RAX]"))
	name, offset, ok := lex.SplitIndirectAddress("#buf[%RAX]")
	require.True(t, ok)
	assert.Equal(t, "buf", name)
	assert.Equal(t, "%RAX", offset)
}

func TestLabel(t *testing.T) {
	assert.True(t, lex.IsLabel("loop"))
	assert.True(t, lex.IsLabel(".loop"))
	assert.Equal(t, "loop", lex.LabelName(".loop"))
	assert.False(t, lex.IsLabel("%RAX"))
	assert.False(t, lex.IsLabel("42"))
	assert.False(t, lex.IsLabel("#buf"))
}

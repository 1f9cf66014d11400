package isa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinyasm/internal/isa"
)

func TestIsMnemonic(t *testing.T) {
	assert.True(t, isa.IsMnemonic("mov"))
	assert.True(t, isa.IsMnemonic("hlt"))
	assert.False(t, isa.IsMnemonic("bogus"))
}

func TestArity(t *testing.T) {
	assert.Equal(t, 0, isa.Arity("hlt"))
	assert.Equal(t, 1, isa.Arity("jmp"))
	assert.Equal(t, 2, isa.Arity("mov"))
	assert.Equal(t, -1, isa.Arity("add"))
}

func TestIsReducing(t *testing.T) {
	assert.True(t, isa.IsReducing("add"))
	assert.False(t, isa.IsReducing("mov"))
}

package alu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyasm/internal/alu"
)

func TestApplyArithmetic(t *testing.T) {
	a := alu.New()

	result, err := a.Apply(alu.Add, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result)
	assert.False(t, a.Flags().Z)
	assert.False(t, a.Flags().N)

	result, err = a.Apply(alu.Sub, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result)
	assert.True(t, a.Flags().Z)

	result, err = a.Apply(alu.Sub, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), result)
	assert.True(t, a.Flags().N)
}

func TestApplyFloorDivAndMod(t *testing.T) {
	a := alu.New()

	result, err := a.Apply(alu.Div, -7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(-4), result)

	result, err = a.Apply(alu.Mod, -7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result)
}

func TestApplyDivisionByZero(t *testing.T) {
	a := alu.New()

	_, err := a.Apply(alu.Div, 10, 0)
	assert.ErrorIs(t, err, alu.ErrDivisionByZero)

	_, err = a.Apply(alu.Mod, 10, 0)
	assert.ErrorIs(t, err, alu.ErrDivisionByZero)
}

func TestApplyBitwise(t *testing.T) {
	a := alu.New()

	result, err := a.Apply(alu.And, 0b1100, 0b1010)
	require.NoError(t, err)
	assert.Equal(t, int64(0b1000), result)

	result, err = a.Apply(alu.Or, 0b1100, 0b1010)
	require.NoError(t, err)
	assert.Equal(t, int64(0b1110), result)

	result, err = a.Apply(alu.Xor, 0b1100, 0b1010)
	require.NoError(t, err)
	assert.Equal(t, int64(0b0110), result)
}

func TestApplySetsOverflowPastMaxWord(t *testing.T) {
	a := alu.New()

	_, err := a.Apply(alu.Add, mathMaxWord(), 1)
	require.NoError(t, err)
	assert.True(t, a.Flags().V)
}

func mathMaxWord() int64 {
	return 1<<31 - 1
}

func TestResetClearsFlags(t *testing.T) {
	a := alu.New()
	_, _ = a.Apply(alu.Sub, 0, 1)
	assert.True(t, a.Flags().N)
	a.Reset()
	assert.Equal(t, alu.Flags{}, a.Flags())
}

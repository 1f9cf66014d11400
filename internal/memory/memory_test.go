package memory_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyasm/internal/memory"
	"tinyasm/internal/stream"
)

func TestLoadAndGetSet(t *testing.T) {
	m := memory.New(8, nil)
	require.NoError(t, m.Load([]int64{10, 20, 30}))

	v, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	require.NoError(t, m.Set(5, 99))
	v, err = m.Get(5)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v)
}

func TestLoadTooLargeFails(t *testing.T) {
	m := memory.New(2, nil)
	err := m.Load([]int64{1, 2, 3})
	assert.ErrorIs(t, err, memory.ErrNotEnoughMemory)
}

func TestLoadExactCapacityOK(t *testing.T) {
	m := memory.New(3, nil)
	assert.NoError(t, m.Load([]int64{1, 2, 3}))
}

func TestOutOfBounds(t *testing.T) {
	m := memory.New(4, nil)
	_, err := m.Get(10)
	assert.ErrorIs(t, err, memory.ErrDataNotFound)

	err = m.Set(-1, 1)
	assert.ErrorIs(t, err, memory.ErrDataNotFound)
}

func TestMemoryMappedStdout(t *testing.T) {
	var out bytes.Buffer
	s := stream.New(strings.NewReader(""), &out, &bytes.Buffer{})
	m := memory.New(8, s)

	require.NoError(t, m.Set(memory.CellStdout, int64('Z')))
	assert.Equal(t, "Z", out.String())
}

func TestMemoryMappedStdin(t *testing.T) {
	s := stream.New(strings.NewReader("Q"), &bytes.Buffer{}, &bytes.Buffer{})
	m := memory.New(8, s)

	v, err := m.Get(memory.CellStdin)
	require.NoError(t, err)
	assert.Equal(t, int64('Q'), v)
}

func TestSetTruncates(t *testing.T) {
	m := memory.New(4, nil)
	require.NoError(t, m.Set(0, 1<<32+3))
	v, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

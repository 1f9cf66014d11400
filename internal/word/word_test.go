package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinyasm/internal/word"
)

func TestTruncateIdempotent(t *testing.T) {
	for _, x := range []int64{0, 1, -1, 5, -5, word.MinValue, word.MaxValue, 1234567, -1234567} {
		once := word.Truncate(x)
		twice := word.Truncate(once)
		assert.Equal(t, once, twice, "truncate not idempotent for %d", x)
	}
}

func TestTruncateInRangeIsIdentity(t *testing.T) {
	assert.Equal(t, int64(5), word.Truncate(5))
	assert.Equal(t, int64(-5), word.Truncate(-5))
	assert.Equal(t, word.MinValue, word.Truncate(word.MinValue))
	assert.Equal(t, word.MaxValue, word.Truncate(word.MaxValue))
}

func TestTruncateWrapsOverflow(t *testing.T) {
	assert.Equal(t, word.MinValue, word.Truncate(word.MaxValue+1))
	assert.Equal(t, word.MaxValue, word.Truncate(word.MinValue-1))
}

func TestZero(t *testing.T) {
	assert.True(t, word.Zero(0))
	assert.True(t, word.Zero(1<<word.Bits))
	assert.False(t, word.Zero(1))
}

func TestOverflow(t *testing.T) {
	assert.False(t, word.Overflow(word.MaxValue))
	assert.False(t, word.Overflow(word.MinValue))
	assert.True(t, word.Overflow(word.MaxValue+1))
	assert.True(t, word.Overflow(word.MinValue-1))
}

func TestSign(t *testing.T) {
	assert.False(t, word.Sign(5))
	assert.True(t, word.Sign(-5))
}

func TestCarry(t *testing.T) {
	assert.True(t, word.Carry(1<<word.Bits))
	assert.False(t, word.Carry(5))
}

func TestTruncateRune(t *testing.T) {
	assert.Equal(t, int64('A'), word.TruncateRune('A'))
}

package asmerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tinyasm/internal/asmerr"
)

func TestErrorMessage(t *testing.T) {
	err := asmerr.New(asmerr.KindNoSuchLabel, "label %q not declared", "loop").WithContext("jmp loop")
	assert.Contains(t, err.Error(), "no_such_label")
	assert.Contains(t, err.Error(), "loop")
	assert.Contains(t, err.Error(), "jmp loop")
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", asmerr.New(asmerr.KindUndefinedInstruction, "bogus"))
	assert.True(t, errors.Is(err, asmerr.New(asmerr.KindUndefinedInstruction, "")))
	assert.False(t, errors.Is(err, asmerr.New(asmerr.KindNoSuchLabel, "")))
}

func TestAsBulkCatches(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", asmerr.New(asmerr.KindNotEnoughMemory, "too small"))

	var target *asmerr.Error
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, asmerr.KindNotEnoughMemory, target.Kind)
}

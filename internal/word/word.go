// Package word implements the fixed-width word arithmetic shared by
// the ALU, register file and memory: a 32-bit signed word with the
// sign/zero/overflow/carry predicates the ALU reports as flags, and
// the truncation rule every stored value passes through.
package word

// Bits is the word width in bits. Every stored value — register,
// memory cell, ALU result — is truncated to this width.
const Bits = 32

const (
	// MinValue and MaxValue bound the representable signed range.
	// Outside this range a value is reported as overflowed, but is
	// still truncated and stored: overflow is a flag, not a fault.
	MinValue int64 = -(1 << (Bits - 1))
	MaxValue int64 = (1 << (Bits - 1)) - 1
)

const mask int64 = (1 << Bits) - 1

// Sign reports whether bit Bits-1 of x is set. x is not first
// truncated, so this reflects the sign of x's low Bits bits, matching
// how the original machine tests arbitrary-precision integers against
// a fixed bit position.
func Sign(x int64) bool {
	return x&(1<<(Bits-1)) != 0
}

// Zero reports whether the low Bits bits of x are all zero.
func Zero(x int64) bool {
	return x&mask == 0
}

// Overflow reports whether x falls outside the representable signed
// range, before truncation.
func Overflow(x int64) bool {
	return x < MinValue || x > MaxValue
}

// Carry reports the carry-out predicate. Negative and non-negative
// raw results are tested in a complementary way: a negative x carries
// when bit Bits of x is clear, a non-negative x carries when bit Bits
// is set.
func Carry(x int64) bool {
	bit := x & (1 << Bits)
	if x < 0 {
		return bit == 0
	}
	return bit != 0
}

// Truncate masks x to the low Bits bits and decodes the result as a
// signed two's-complement word: the masked value if the sign bit is
// clear, or the masked value minus 2^Bits if it is set. This is the
// wraparound every stored value — register, memory cell, ALU result —
// goes through, and it is idempotent: truncating an already in-range
// value returns it unchanged.
func Truncate(x int64) int64 {
	masked := x & mask
	if Sign(x) {
		return masked - (1 << Bits)
	}
	return masked
}

// TruncateRune truncates the code point of r the same way Truncate
// truncates an integer, for the single-character operand literals the
// lexer accepts in place of a number.
func TruncateRune(r rune) int64 {
	return Truncate(int64(r))
}

// InRange reports whether x is already within [MinValue, MaxValue],
// i.e. would round-trip through Truncate unchanged.
func InRange(x int64) bool {
	return x >= MinValue && x <= MaxValue
}

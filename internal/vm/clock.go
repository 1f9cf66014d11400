package vm

import "fmt"

// Clock counts the two things the instruction controller tracks as it
// runs: ticks (one per operand read, one per ALU operation, one per
// completed instruction, and one extra for a conditional jump's
// condition test) and completed instructions.
type Clock struct {
	ticks uint64
	insts uint64
	onTick func()
}

// NewClock returns a zeroed Clock.
func NewClock() *Clock {
	return &Clock{}
}

// Tick increments the tick counter and, if a trace consumer is
// attached, notifies it synchronously before returning.
func (c *Clock) Tick() {
	c.ticks++
	if c.onTick != nil {
		c.onTick()
	}
}

// IncInst increments the completed-instruction counter.
func (c *Clock) IncInst() {
	c.insts++
}

// Ticks returns the total tick count so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Insts returns the total completed-instruction count so far.
func (c *Clock) Insts() uint64 {
	return c.insts
}

func (c *Clock) String() string {
	return fmt.Sprintf("tick: %d, inst: %d", c.ticks, c.insts)
}

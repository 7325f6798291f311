package activation

import "github.com/flashcore/avm2/internal/logx"

// DefaultMaxCallDepth bounds recursion; exceeded depth degrades the same
// way operand-stack overflow does, logging and refusing the push so a
// runaway recursive script degrades instead of crashing the host.
const DefaultMaxCallDepth = 1 << 12

// CallStack is the stack of active Activation frames for one
// single-threaded machine run.
type CallStack struct {
	frames   []*Activation
	maxDepth int
}

func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &CallStack{maxDepth: maxDepth}
}

func (c *CallStack) Push(a *Activation) bool {
	if len(c.frames) >= c.maxDepth {
		logx.Warnf("call stack overflow at depth %d, refusing frame", len(c.frames))
		return false
	}
	c.frames = append(c.frames, a)
	return true
}

func (c *CallStack) Pop() *Activation {
	n := len(c.frames)
	if n == 0 {
		logx.Warnf("call stack underflow on pop")
		return nil
	}
	a := c.frames[n-1]
	c.frames = c.frames[:n-1]
	return a
}

func (c *CallStack) Current() *Activation {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *CallStack) Depth() int { return len(c.frames) }

package activation

import (
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/values"
	"github.com/google/uuid"
)

// Activation is one call's window into the shared operand/scope stacks:
// it remembers only the base indices it started at, plus its locals
// register file, receiver, and (for bytecode methods) the exception
// table and bytecode position to resume at.
type Activation struct {
	ID uuid.UUID

	Method *class.Method
	This   values.Value
	Locals []values.Value

	ScopeBase int
	StackBase int

	// OuterScope is the captured defining scope chain for a closure
	// created from a nested function trait; nil for ordinary methods.
	OuterScope []values.Value

	IP int

	stack *Stack
}

// NewActivation opens a fresh window on stack, sized for the method's
// declared local-register count, with any fixed receiver/outer-scope
// already bound.
func NewActivation(stack *Stack, method *class.Method, this values.Value, outerScope []values.Value) *Activation {
	maxLocals := 1
	if method != nil && method.Body != nil && method.Body.MaxLocals > maxLocals {
		maxLocals = method.Body.MaxLocals
	}
	a := &Activation{
		ID:         uuid.New(),
		Method:     method,
		This:       this,
		Locals:     make([]values.Value, maxLocals),
		ScopeBase:  stack.ScopeDepth(),
		StackBase:  stack.Depth(),
		OuterScope: outerScope,
		stack:      stack,
	}
	if len(a.Locals) > 0 {
		a.Locals[0] = this
	}

	operandCeil, scopeCeil := -1, -1
	if method != nil && method.Body != nil {
		if method.Body.MaxStack > 0 {
			operandCeil = a.StackBase + method.Body.MaxStack
		}
		if method.Body.MaxScopeDepth > 0 {
			scopeCeil = a.ScopeBase + method.Body.MaxScopeDepth
		}
	}
	stack.EnterFrame(operandCeil, scopeCeil)

	return a
}

// Unwind truncates the shared stacks back to this activation's base,
// discarding any operands/scopes it pushed, and pops the per-method
// ceiling EnterFrame pushed, for use on return or on exception propagation
// out of the frame.
func (a *Activation) Unwind() {
	a.stack.Truncate(a.StackBase)
	a.stack.TruncateScopes(a.ScopeBase)
	a.stack.ExitFrame()
}

func (a *Activation) GetLocal(i int) values.Value {
	if i < 0 || i >= len(a.Locals) {
		return values.Undefined
	}
	return a.Locals[i]
}

func (a *Activation) SetLocal(i int, v values.Value) {
	if i < 0 {
		return
	}
	if i >= len(a.Locals) {
		grown := make([]values.Value, i+1)
		copy(grown, a.Locals)
		a.Locals = grown
	}
	a.Locals[i] = v
}

// FindHandler returns the first exception handler whose [From,To) range
// covers ip and whose ExceptionType admits thrown, or ok=false if none
// matches (the caller should then propagate to the enclosing frame).
func (a *Activation) FindHandler(ip int, matches func(*class.ExceptionHandler) bool) (*class.ExceptionHandler, bool) {
	if a.Method == nil || a.Method.Body == nil {
		return nil, false
	}
	for i := range a.Method.Body.Exceptions {
		h := &a.Method.Body.Exceptions[i]
		if ip >= h.From && ip < h.To && matches(h) {
			return h, true
		}
	}
	return nil, false
}

package interp

import (
	"github.com/flashcore/avm2/activation"
	"github.com/flashcore/avm2/class"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/values"
)

// asThrown recovers the AS3 value an error represents, converting a
// numbered AVM error to its Error-hierarchy object on the fly. Returns
// ok=false for native engine errors (malformed bytecode, stack faults),
// which are never catchable from ActionScript and simply propagate.
func (m *Machine) asThrown(err error) (values.Value, bool) {
	switch e := err.(type) {
	case *thrownValue:
		return e.Value, true
	case *avmerrors.AVMError:
		return m.newErrorObject(e), true
	}
	return values.Undefined, false
}

// exceptionMatches reports whether h's declared exception type admits
// thrown (an untyped handler, ExceptionType == nil, catches everything).
func (m *Machine) exceptionMatches(h *class.ExceptionHandler, thrown values.Value) bool {
	if h.ExceptionType == nil {
		return true
	}
	if m.System == nil {
		return true
	}
	target, found, err := m.System.GetClass(h.ExceptionType)
	if err != nil || !found || target == nil {
		return true
	}
	return target.IsInstanceObject(thrown.Object())
}

// catch attempts to resolve err into a local handler in frame at
// instruction offset ip, returning the instruction index to resume at.
// On a match the thrown value is left on top of the operand stack, the
// position a handler's compiled prologue (typically newcatch/coerce/
// setlocal) expects to find it.
func (m *Machine) catch(frame *activation.Activation, db *decodedBody, ip int, err error) (int, bool) {
	thrown, ok := m.asThrown(err)
	if !ok {
		return 0, false
	}
	h, found := frame.FindHandler(ip, func(h *class.ExceptionHandler) bool {
		return m.exceptionMatches(h, thrown)
	})
	if !found {
		return 0, false
	}
	idx, ok := db.indexAt(h.Target)
	if !ok {
		return 0, false
	}
	m.stack.Truncate(frame.StackBase)
	m.stack.TruncateScopes(frame.ScopeBase)
	m.stack.Push(thrown)
	return idx, true
}

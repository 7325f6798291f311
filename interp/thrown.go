package interp

import "github.com/flashcore/avm2/values"

// thrownValue wraps an AS3 value propagating up the Go call stack as an
// error after a throw. Call-dispatch opcodes return it unchanged, so an
// uncaught value unwinds frame by frame the same way a native Go error
// would; each enclosing frame's run loop unwraps it (via asThrown) and
// tries that frame's exception table before passing it further up.
type thrownValue struct {
	Value values.Value
}

func (t *thrownValue) Error() string {
	return "uncaught AS3 exception: " + t.Value.ToString()
}

package class

import (
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// MethodKind distinguishes a native (Go-implemented) method body from a
// bytecode method body owned by a loaded translation unit.
type MethodKind uint8

const (
	MethodNative MethodKind = iota
	MethodBytecode
)

// ExceptionHandler is one entry of a bytecode method's exception table:
// instructions in [From,To) that throw a value assignable to
// ExceptionType unwind to Target with the thrown value bound under
// VarName in the handler's activation.
type ExceptionHandler struct {
	From, To, Target int
	ExceptionType     *names.Multiname
	VarName           names.QName
}

// Body is a bytecode method's executable payload. It is intentionally
// thin: the interpreter package owns decoding instructions out of Code;
// class only needs to carry it from the loader to the activation.
type Body struct {
	Code             []byte
	MaxStack         int
	MaxScopeDepth     int
	MaxLocals        int
	InitialScopeDepth int
	Exceptions       []ExceptionHandler
	Pool             *ConstantPool
}

// Method is a callable: native or bytecode, shared between instance
// methods, getters/setters, static methods and free functions.
type Method struct {
	Name            string
	Kind            MethodKind
	ParamCount      int
	ParamTypes      []*Class
	ReturnType      *Class
	Native          values.Invokable
	Body            *Body
	NeedsActivation bool
	NeedsRest       bool
	NeedsArguments  bool
	SetsDXNS        bool
}

// Invoke satisfies values.Invokable for native methods so a Method can be
// wrapped directly into a values.FunctionObject without an adapter type.
func (m *Method) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	if m.Kind != MethodNative || m.Native == nil {
		return values.Undefined, errNotNative
	}
	return m.Native.Invoke(this, args)
}

var errNotNative = &bodyKindError{}

type bodyKindError struct{}

func (*bodyKindError) Error() string { return "method has no native implementation" }

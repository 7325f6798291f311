// Package interp implements the AVM2 fetch-decode-execute loop: the
// Machine that owns the shared operand/scope/call stacks, the per-frame
// bytecode walker, and the opcode handlers for arithmetic, coercion,
// property access, calls, construction, control flow and exceptions.
package interp

import (
	"github.com/flashcore/avm2/activation"
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/domain"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/runtime"
	"github.com/flashcore/avm2/values"
)

var publicNS = names.New(names.KindPublic, "")

func qn(n string) names.QName { return names.NewQName(publicNS, n) }

// anonClassRef stands in for Object/Array when no Registry is wired
// (e.g. in tests exercising the interpreter without a bootstrapped
// domain), so newobject/newarray never hand back an object whose
// Class() is nil.
type anonClassRef struct{ name string }

func (a anonClassRef) ClassName() string                  { return a.name }
func (a anonClassRef) IsInstanceObject(values.Object) bool { return false }

// Machine is one single-threaded AVM2 execution context: the shared
// operand/scope stack and call stack every Activation on this machine's
// call chain pushes through, plus the system registry used to resolve
// primitive boxing and construct thrown Error objects.
type Machine struct {
	System   *domain.Domain
	Registry *runtime.Registry

	stack *activation.Stack
	calls *activation.CallStack
}

// NewMachine builds a Machine bound to system (the playerglobals domain
// classes resolve against) and registry (the bootstrapped Object/Number/
// Error classes; may be nil, in which case primitive boxing and object
// literals degrade to anonymous, unclassed objects rather than failing).
func NewMachine(system *domain.Domain, registry *runtime.Registry) *Machine {
	return &Machine{
		System:   system,
		Registry: registry,
		stack:    activation.NewStack(0),
		calls:    activation.NewCallStack(0),
	}
}

// RunInitializer satisfies domain.MethodRunner: do_abc calls this to run
// a script or class initializer's bytecode against its global/static
// receiver.
func (m *Machine) RunInitializer(method *class.Method, receiver values.Object) error {
	_, err := m.Invoke(method, values.NewObject(receiver), nil, nil)
	return err
}

// Invoke calls method with receiver this and arguments args, under the
// defining closure scope outerScope (nil for ordinary top-level or
// instance methods). Native methods dispatch straight through; bytecode
// methods get a fresh Activation and run until returnvalue/returnvoid or
// the first uncaught thrown value / native fault.
func (m *Machine) Invoke(method *class.Method, this values.Value, args []values.Value, outerScope []values.Value) (values.Value, error) {
	if method == nil {
		return values.Undefined, avmerrors.NewReferenceError("method is not defined")
	}
	if method.Kind == class.MethodNative {
		if method.Native == nil {
			return values.Undefined, avmerrors.NewTypeError("%s is not a function", method.Name)
		}
		return method.Native.Invoke(this, args)
	}
	if method.Body == nil {
		return values.Undefined, avmerrors.NewVerifyError("method %s has no implementation", method.Name)
	}

	frame := activation.NewActivation(m.stack, method, this, outerScope)
	for i, a := range args {
		frame.SetLocal(i+1, a)
	}
	if method.NeedsRest && len(args) > method.ParamCount {
		rest := m.newArray()
		for _, extra := range args[method.ParamCount:] {
			rest.Push(extra)
		}
		frame.SetLocal(method.ParamCount+1, values.NewObject(rest))
	}

	if !m.calls.Push(frame) {
		frame.Unwind()
		return values.Undefined, avmerrors.NewVerifyError("call stack exceeded")
	}
	defer m.calls.Pop()
	defer frame.Unwind()

	return m.run(frame)
}

// resolveMember looks up mn against obj's traits, branching on whether obj
// is itself a class.ClassObject (a static/class-side reference such as
// Foo.bar or Foo.staticMethod()) rather than a plain instance. A
// ClassObject's Class() accessor returns the wrapped *Class itself, so a
// plain obj.Class().(*class.Class) type assertion can't distinguish the two
// cases — both succeed identically — which is why this check comes first.
func (m *Machine) resolveMember(obj values.Object, mn *names.Multiname) (*class.Trait, *class.Class, error) {
	if co, ok := obj.(*class.ClassObject); ok {
		return co.Class.FindInheritedStatic(mn)
	}
	if cls, ok := obj.Class().(*class.Class); ok {
		return cls.FindInherited(mn)
	}
	return nil, nil, nil
}

// classObjectValue hands back the ClassObject for c, first running its
// static initializer if this is the first time c has been referenced
// externally. Every call site that can hand a ClassObject to script code
// (a TraitClass property read, construct, applytype) must go through this
// rather than calling class.NewClassObject directly.
func (m *Machine) classObjectValue(c *class.Class) (values.Value, error) {
	co := values.NewObject(class.NewClassObject(c))
	if c != nil && c.NeedsClassInit() {
		c.MarkClassInitRan()
		if _, err := m.Invoke(c.ClassInit, co, nil, nil); err != nil {
			return values.Undefined, err
		}
	}
	return co, nil
}

// ensureClassInit runs c's static initializer exactly once, lazily, on
// first external reference, per AVM2 class-initialization semantics.
func (m *Machine) ensureClassInit(c *class.Class) error {
	if c == nil || !c.NeedsClassInit() {
		return nil
	}
	c.MarkClassInitRan()
	_, err := m.Invoke(c.ClassInit, values.NewObject(class.NewClassObject(c)), nil, nil)
	return err
}

func (m *Machine) objectClass() values.ClassRef {
	if m.Registry != nil && m.Registry.ObjectClass != nil {
		return m.Registry.ObjectClass
	}
	return anonClassRef{"Object"}
}

func (m *Machine) arrayClass() values.ClassRef {
	return anonClassRef{"Array"}
}

func (m *Machine) newArray() *values.ArrayObject {
	return values.NewArrayObject(m.arrayClass(), nil)
}

// coerceToObject returns v's underlying Object, auto-boxing a primitive
// through the registry's boxing classes (Number/int/uint/String/Boolean)
// the way a method call on a primitive receiver does. Returns nil for
// null/undefined.
func (m *Machine) coerceToObject(v values.Value) values.Object {
	if v.IsNullOrUndefined() {
		return nil
	}
	if obj := v.Object(); obj != nil {
		return obj
	}
	var boxClass values.ClassRef
	if m.Registry != nil {
		if c := m.Registry.BoxClassFor(v.Type()); c != nil {
			boxClass = c
		}
	}
	if boxClass == nil {
		boxClass = anonClassRef{v.Type().String()}
	}
	return values.NewPrimitiveBox(boxClass, nil, v)
}

// newErrorObject converts a native numbered AVM error into a catchable
// values.Value the way a thrown `new TypeError(...)` would appear to
// script code, falling back to a bare message-carrying object when no
// registry is wired (e.g. unit tests running the interpreter standalone).
func (m *Machine) newErrorObject(e *avmerrors.AVMError) values.Value {
	if m.Registry != nil {
		return values.NewObject(m.Registry.NewErrorObject(e))
	}
	obj := values.NewScriptObject(anonClassRef{string(e.Kind)}, nil, false)
	obj.Set(qn("message"), values.NewString(e.Message))
	obj.Set(qn("name"), values.NewString(string(e.Kind)))
	return values.NewObject(obj)
}

package interp

import (
	"github.com/flashcore/avm2/class"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// callValue invokes v (expected to be a Function object) with this and
// args, the shared tail of every call* opcode once the callee value has
// been resolved off a property/scope/stack lookup.
func (m *Machine) callValue(v values.Value, this values.Value, args []values.Value) (values.Value, error) {
	fn, ok := v.Object().(*values.FunctionObject)
	if !ok {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeNotAFunction, v.ToString())
	}
	return fn.Call(this, args)
}

// callMethod implements callproperty/callpropvoid/callproplex: resolve
// mn against recv's class first (direct-dispatching method/getter
// traits without going through a Function object), falling back to
// reading the property as a value and calling it.
func (m *Machine) callMethod(recv values.Value, mn *names.Multiname, args []values.Value) (values.Value, error) {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	t, _, err := m.resolveMember(obj, mn)
	if err != nil {
		return values.Undefined, err
	}
	if t != nil {
		switch t.Kind {
		case class.TraitMethod, class.TraitFunction:
			return m.Invoke(t.Method, recv, args, nil)
		case class.TraitGetter:
			fnVal, err := m.Invoke(t.Method, recv, nil, nil)
			if err != nil {
				return values.Undefined, err
			}
			return m.callValue(fnVal, recv, args)
		}
	}
	v, err := m.getProperty(recv, mn)
	if err != nil {
		return values.Undefined, err
	}
	return m.callValue(v, recv, args)
}

// construct implements the `new` operator over a generic popped value:
// only a class.ClassObject (the value a TraitClass trait resolves to) is
// constructible.
func (m *Machine) construct(ctorVal values.Value, args []values.Value) (values.Value, error) {
	co, ok := ctorVal.Object().(*class.ClassObject)
	if !ok {
		return values.Undefined, avmerrors.NewTypeError("%s is not a constructor", ctorVal.ToString())
	}
	return m.constructClass(co.Class, args)
}

// constructClass builds a fresh instance of c and runs its instance
// initializer (which is itself responsible for chaining to its
// superclass's initializer via constructsuper).
func (m *Machine) constructClass(c *class.Class, args []values.Value) (values.Value, error) {
	if c == nil {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeClassNotFound, "")
	}
	if err := m.ensureClassInit(c); err != nil {
		return values.Undefined, err
	}
	if m.Registry != nil && c.GenericBase == m.Registry.VectorClass {
		return m.constructVector(c, args)
	}
	obj := values.NewScriptObject(c, nil, c.IsSealed)
	if c.InstanceInit != nil {
		if _, err := m.Invoke(c.InstanceInit, values.NewObject(obj), args, nil); err != nil {
			return values.Undefined, err
		}
	}
	return values.NewObject(obj), nil
}

// constructVector builds `new Vector.<T>(length, fixed)`: c is a
// specialization produced by applytype, so c.Params[0] names the element
// class (nil for Vector.<*>).
func (m *Machine) constructVector(c *class.Class, args []values.Value) (values.Value, error) {
	var elementClass values.ClassRef
	if len(c.Params) > 0 && c.Params[0] != nil {
		elementClass = c.Params[0]
	}
	vec := values.NewVectorObject(c, nil, elementClass, nil)
	length := 0
	if len(args) > 0 {
		length = int(args[0].ToUint32())
	}
	// Fixed is applied after the initial fill, not before: Set refuses to
	// grow a Fixed vector past its current length, which would make the
	// fill loop below fail on every element if Fixed were set first.
	for i := 0; i < length; i++ {
		if err := vec.Push(values.Undefined); err != nil {
			return values.Undefined, err
		}
	}
	if len(args) > 1 {
		vec.Fixed = args[1].ToBoolean()
	}
	return values.NewObject(vec), nil
}

// constructProp implements constructprop: resolve mn on recv (the same
// way getproperty would) to a ClassObject, then construct it.
func (m *Machine) constructProp(recv values.Value, mn *names.Multiname, args []values.Value) (values.Value, error) {
	ctorVal, err := m.getProperty(recv, mn)
	if err != nil {
		return values.Undefined, err
	}
	return m.construct(ctorVal, args)
}

// constructSuper implements constructsuper: chains thisVal's class's
// superclass instance initializer, the continuation of a subclass
// initializer's `super(...)` call.
func (m *Machine) constructSuper(thisVal values.Value, args []values.Value) error {
	obj := m.coerceToObject(thisVal)
	if obj == nil {
		return avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	cls, ok := obj.Class().(*class.Class)
	if !ok || cls.Super == nil || cls.Super.InstanceInit == nil {
		return nil
	}
	_, err := m.Invoke(cls.Super.InstanceInit, thisVal, args, nil)
	return err
}

package interp

import (
	"errors"

	"github.com/flashcore/avm2/activation"
	"github.com/flashcore/avm2/class"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// defaultQName builds the QName a multiname resolves to when neither
// vtable nor dynamic-bag resolution finds it: the multiname's own local
// name under its first candidate namespace, the common case for a plain
// public QName reference.
func defaultQName(mn *names.Multiname) (names.QName, bool) {
	if len(mn.NSSet) == 0 {
		return names.QName{}, false
	}
	return names.NewQName(mn.NSSet[0], mn.Name), true
}

// methodInvokable adapts a bytecode or native *class.Method into
// values.Invokable bound through this Machine, so a method trait handed
// out via getproperty (e.g. `var f:Function = obj.method;`) still runs
// through Machine.Invoke rather than only working for native methods.
type methodInvokable struct {
	m      *Machine
	method *class.Method
}

func (mi methodInvokable) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	return mi.m.Invoke(mi.method, this, args, nil)
}

// closureInvokable is methodInvokable plus a captured defining scope
// chain, used by newfunction to bind a nested function literal to the
// scope it was created in.
type closureInvokable struct {
	m      *Machine
	method *class.Method
	scope  []values.Value
}

func (ci closureInvokable) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	return ci.m.Invoke(ci.method, this, args, ci.scope)
}

// getProperty implements getproperty/getlex's trait-then-dynamic-then-
// proto resolution order: the receiver's class's own (or inherited)
// vtable first, then the object's dynamic property bag (including its
// proto chain, handled internally by ScriptObject.GetProperty), finally
// falling back to the multiname's default QName for a plain public name
// that the object simply has never had set.
func (m *Machine) getProperty(recv values.Value, mn *names.Multiname) (values.Value, error) {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	t, _, err := m.resolveMember(obj, mn)
	if err != nil {
		return values.Undefined, err
	}
	if t != nil && t.Kind != class.TraitMethod && t.Kind != class.TraitFunction {
		return m.readTraitValue(obj, t)
	}
	if t != nil {
		fn := values.NewFunctionObject(m.objectClass(), nil, methodInvokable{m, t.Method})
		return values.NewObject(fn.Bind(recv)), nil
	}
	if qname, ok := obj.ResolveProperty(mn); ok {
		v, _ := obj.GetProperty(qname)
		return v, nil
	}
	if qname, ok := defaultQName(mn); ok {
		if v, ok := obj.GetProperty(qname); ok {
			return v, nil
		}
	}
	return values.Undefined, nil
}

func (m *Machine) readTraitValue(obj values.Object, t *class.Trait) (values.Value, error) {
	switch t.Kind {
	case class.TraitSlot, class.TraitConst:
		v, _ := obj.GetProperty(t.Name)
		return v, nil
	case class.TraitGetter:
		return m.Invoke(t.Method, values.NewObject(obj), nil, nil)
	case class.TraitClass:
		return m.classObjectValue(t.NestedClass)
	}
	return values.Undefined, nil
}

// setProperty implements setproperty/initproperty: a setter trait
// invokes its accessor, a slot trait writes straight into the property
// bag under its own QName (bypassing the sealed-class check, since a
// declared slot is always writable), any other trait kind (const
// included, for initproperty as well as setproperty) raises a read-only
// ReferenceError, and a name with no trait falls to
// the object's own dynamic SetProperty, which raises AVM error #1056
// through ErrSealedClass on a non-dynamic class.
func (m *Machine) setProperty(recv values.Value, mn *names.Multiname, value values.Value) error {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	t, _, err := m.resolveMember(obj, mn)
	if err != nil {
		return err
	}
	if t != nil {
		switch t.Kind {
		case class.TraitSetter:
			_, err := m.Invoke(t.Method, values.NewObject(obj), []values.Value{value}, nil)
			return err
		case class.TraitSlot:
			obj.SetSlotValue(t.Name, value)
			return nil
		default:
			return avmerrors.NewReferenceError("%s is read-only", t.Name.Name)
		}
	}
	qname, ok := defaultQName(mn)
	if !ok {
		return avmerrors.NewReferenceError("%s is not defined", mn.Name)
	}
	if err := obj.SetProperty(qname, value); err != nil {
		if errors.Is(err, values.ErrSealedClass) {
			return avmerrors.NewNumbered(avmerrors.CodeSealedClassProperty, qname.Name)
		}
		return err
	}
	return nil
}

func (m *Machine) deleteProperty(recv values.Value, mn *names.Multiname) bool {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return false
	}
	if qname, ok := obj.ResolveProperty(mn); ok {
		return obj.DeleteProperty(qname)
	}
	if qname, ok := defaultQName(mn); ok {
		return obj.DeleteProperty(qname)
	}
	return false
}

// hasPropertyFor reports whether obj would answer mn through a vtable
// trait or its dynamic bag, without actually reading the value — used by
// findproperty/findpropstrict to decide whether a scope entry is the
// owner of a name.
func (m *Machine) hasPropertyFor(obj values.Object, mn *names.Multiname) bool {
	if obj == nil {
		return false
	}
	if t, _, _ := m.resolveMember(obj, mn); t != nil {
		return true
	}
	if _, ok := obj.ResolveProperty(mn); ok {
		return true
	}
	if qname, ok := defaultQName(mn); ok {
		return obj.HasProperty(qname)
	}
	return false
}

// findPropertyObject walks the scope chain innermost-first (this frame's
// own pushed scopes, then its captured outer/closure scopes, then the
// receiver itself) looking for the object that owns mn.
func (m *Machine) findPropertyObject(frame *activation.Activation, mn *names.Multiname) (values.Object, bool) {
	for i := m.stack.ScopeDepth() - 1; i >= frame.ScopeBase; i-- {
		if obj := m.stack.ScopeAt(i).Object(); obj != nil && m.hasPropertyFor(obj, mn) {
			return obj, true
		}
	}
	for i := len(frame.OuterScope) - 1; i >= 0; i-- {
		if obj := frame.OuterScope[i].Object(); obj != nil && m.hasPropertyFor(obj, mn) {
			return obj, true
		}
	}
	if obj := frame.This.Object(); obj != nil && m.hasPropertyFor(obj, mn) {
		return obj, true
	}
	return nil, false
}

package interp

import (
	"github.com/flashcore/avm2/activation"
	"github.com/flashcore/avm2/class"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

// captureScope snapshots the scope chain visible to frame right now
// (its captured closure scope followed by every scope it has itself
// pushed), used by newfunction to bind a nested function literal's
// defining scope.
func (m *Machine) captureScope(frame *activation.Activation) []values.Value {
	out := make([]values.Value, 0, len(frame.OuterScope)+(m.stack.ScopeDepth()-frame.ScopeBase))
	out = append(out, frame.OuterScope...)
	for i := frame.ScopeBase; i < m.stack.ScopeDepth(); i++ {
		out = append(out, m.stack.ScopeAt(i))
	}
	return out
}

// getPropertySuper/setPropertySuper implement getsuper/setsuper: the
// same trait resolution as getproperty/setproperty, but starting the
// class walk at the receiver's class's superclass rather than its own
// class, so an overriding method can still reach the overridden member.
func (m *Machine) getPropertySuper(recv values.Value, mn *names.Multiname) (values.Value, error) {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	cls, ok := obj.Class().(*class.Class)
	if !ok || cls.Super == nil {
		return values.Undefined, nil
	}
	t, _, err := cls.Super.FindInherited(mn)
	if err != nil {
		return values.Undefined, err
	}
	if t == nil {
		return values.Undefined, nil
	}
	return m.readTraitValue(obj, t)
}

func (m *Machine) setPropertySuper(recv values.Value, mn *names.Multiname, value values.Value) error {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	cls, ok := obj.Class().(*class.Class)
	if !ok || cls.Super == nil {
		return nil
	}
	t, _, err := cls.Super.FindInherited(mn)
	if err != nil || t == nil {
		return err
	}
	switch t.Kind {
	case class.TraitSetter:
		_, err := m.Invoke(t.Method, values.NewObject(obj), []values.Value{value}, nil)
		return err
	case class.TraitSlot:
		obj.SetSlotValue(t.Name, value)
		return nil
	}
	return nil
}

// callSuper implements callsuper/callsupervoid.
func (m *Machine) callSuper(recv values.Value, mn *names.Multiname, args []values.Value) (values.Value, error) {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return values.Undefined, avmerrors.NewNumbered(avmerrors.CodeNullReference, "")
	}
	cls, ok := obj.Class().(*class.Class)
	if !ok || cls.Super == nil {
		return values.Undefined, avmerrors.NewReferenceError("%s not found on super", mn.Name)
	}
	t, _, err := cls.Super.FindInherited(mn)
	if err != nil {
		return values.Undefined, err
	}
	if t == nil || t.Method == nil {
		return values.Undefined, avmerrors.NewReferenceError("%s not found on super", mn.Name)
	}
	return m.Invoke(t.Method, recv, args, nil)
}

// resolveSlot is FindSlot's ClassObject-aware counterpart to resolveMember:
// a class-side slot access (a static const/var addressed by ABC slot id)
// must walk StaticTraits, not InstanceTraits.
func (m *Machine) resolveSlot(obj values.Object, id int) (*class.Trait, bool) {
	if co, ok := obj.(*class.ClassObject); ok {
		return co.Class.FindStaticSlot(id)
	}
	cls, ok := obj.Class().(*class.Class)
	if !ok {
		return nil, false
	}
	return cls.FindSlot(id)
}

// getSlot/setSlot implement getslot/setslot and their global-slot
// variants: the object's class's trait declared under the ABC slot id.
func (m *Machine) getSlot(recv values.Value, id int) values.Value {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return values.Undefined
	}
	t, ok := m.resolveSlot(obj, id)
	if !ok {
		return values.Undefined
	}
	v, err := m.readTraitValue(obj, t)
	if err != nil {
		return values.Undefined
	}
	return v
}

func (m *Machine) setSlot(recv values.Value, id int, value values.Value) error {
	obj := m.coerceToObject(recv)
	if obj == nil {
		return nil
	}
	t, ok := m.resolveSlot(obj, id)
	if !ok {
		return nil
	}
	if t.Kind == class.TraitSetter {
		_, err := m.Invoke(t.Method, values.NewObject(obj), []values.Value{value}, nil)
		return err
	}
	obj.SetSlotValue(t.Name, value)
	return nil
}

// inOperator implements the `in` operator: whether name (coerced to a
// string and looked up under the public namespace, the common case for
// a dynamically-keyed check) is a property of obj.
func (m *Machine) inOperator(name values.Value, obj values.Value) bool {
	o := m.coerceToObject(obj)
	if o == nil {
		return false
	}
	mn := names.NewMultiname(name.ToString(), publicNS)
	return m.hasPropertyFor(o, mn)
}

// hasNext/nextName/nextValue/hasNext2 implement the for..in / for
// each..in enumeration family over ArrayObject, the common target of
// generated enumeration code; any other object reports no further
// properties, a fault-tolerant degrade consistent with this engine's
// stack-fault handling rather than a full property-enumeration index.
func arrayOf(v values.Value) (*values.ArrayObject, bool) {
	arr, ok := v.Object().(*values.ArrayObject)
	return arr, ok
}

func hasNext(obj values.Value, index int32) int32 {
	arr, ok := arrayOf(obj)
	if !ok || int(index) >= arr.Length() {
		return 0
	}
	return index + 1
}

func nextName(obj values.Value, index int32) values.Value {
	arr, ok := arrayOf(obj)
	if !ok || index <= 0 || int(index) > arr.Length() {
		return values.NewString("")
	}
	return values.NewString(values.NumberToString(float64(index - 1)))
}

func nextValue(obj values.Value, index int32) values.Value {
	arr, ok := arrayOf(obj)
	if !ok || index <= 0 || int(index) > arr.Length() {
		return values.Undefined
	}
	return arr.At(int(index - 1))
}

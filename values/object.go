package values

import "github.com/flashcore/avm2/names"

// ClassRef is the minimal view of a class that the values package needs,
// satisfied structurally by class.Class without values importing class
// (which itself imports values for slot storage). This mirrors how the
// original codebase decouples builtin-method glue from the VM package to
// avoid an import cycle.
type ClassRef interface {
	ClassName() string
	IsInstanceObject(Object) bool
}

// Object is implemented by every AVM2 object capability-set variant:
// plain script objects, arrays, vectors, functions, class objects, byte
// arrays, primitive boxes, events, and so on. The interpreter and runtime
// builtins only ever touch objects through this interface.
type Object interface {
	Class() ClassRef
	Proto() Object

	// GetProperty/SetProperty implement dynamic (non-vtable) property
	// access: the property bag for dynamic instances, or a specialised
	// backing store for objects like Array/Vector/ByteArray.
	GetProperty(name names.QName) (Value, bool)
	SetProperty(name names.QName, v Value) error
	DeleteProperty(name names.QName) bool
	HasProperty(name names.QName) bool

	// ResolveProperty searches this object's own dynamic property bag for
	// a QName matching a Multiname's local name and namespace set,
	// without consulting a class's vtable (callers needing vtable-trait
	// resolution do that separately against the class). Used by
	// multiname-based property opcodes to fall through to dynamic
	// properties once fixed-trait resolution has failed.
	ResolveProperty(mn *names.Multiname) (names.QName, bool)

	// SetSlotValue writes name directly into the property bag, bypassing
	// the sealed-class check SetProperty applies: a class's own declared
	// slot/const trait is always writable on an instance of that class,
	// dynamic or not, since the trait (not ad hoc property creation) is
	// what authorized the storage.
	SetSlotValue(name names.QName, v Value)

	// Sealed reports whether this object rejects dynamic property
	// creation (non-dynamic classes without an explicit slot/trait).
	Sealed() bool

	ToString() string
	ToNumber() float64
	ToPrimitive() Value
}

// PropertyBag is the reusable dynamic-property storage embedded by
// object variants that allow runtime-added properties.
type PropertyBag struct {
	props map[names.QName]Value
	order []names.QName
}

func NewPropertyBag() *PropertyBag {
	return &PropertyBag{props: make(map[names.QName]Value)}
}

func (p *PropertyBag) Get(name names.QName) (Value, bool) {
	v, ok := p.props[name]
	return v, ok
}

func (p *PropertyBag) Set(name names.QName, v Value) {
	if _, exists := p.props[name]; !exists {
		p.order = append(p.order, name)
	}
	p.props[name] = v
}

func (p *PropertyBag) Delete(name names.QName) bool {
	if _, ok := p.props[name]; !ok {
		return false
	}
	delete(p.props, name)
	for i, n := range p.order {
		if n.Equals(name) {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

func (p *PropertyBag) Has(name names.QName) bool {
	_, ok := p.props[name]
	return ok
}

// Keys returns property names in insertion order, matching AS3's
// for..in enumeration order for dynamic objects.
func (p *PropertyBag) Keys() []names.QName {
	out := make([]names.QName, len(p.order))
	copy(out, p.order)
	return out
}

// ScriptObject is the general-purpose object variant: a property bag
// plus a class reference and a prototype link, used for plain instances
// of dynamic classes and as the embedded base of every other variant.
type ScriptObject struct {
	class  ClassRef
	proto  Object
	sealed bool
	*PropertyBag
}

func NewScriptObject(class ClassRef, proto Object, sealed bool) *ScriptObject {
	return &ScriptObject{class: class, proto: proto, sealed: sealed, PropertyBag: NewPropertyBag()}
}

func (o *ScriptObject) Class() ClassRef { return o.class }
func (o *ScriptObject) Proto() Object   { return o.proto }
func (o *ScriptObject) Sealed() bool    { return o.sealed }

func (o *ScriptObject) GetProperty(name names.QName) (Value, bool) {
	if v, ok := o.PropertyBag.Get(name); ok {
		return v, true
	}
	if o.proto != nil {
		return o.proto.GetProperty(name)
	}
	return Undefined, false
}

func (o *ScriptObject) SetProperty(name names.QName, v Value) error {
	if o.sealed && !o.PropertyBag.Has(name) {
		return ErrSealedClass
	}
	o.PropertyBag.Set(name, v)
	return nil
}

func (o *ScriptObject) DeleteProperty(name names.QName) bool {
	return o.PropertyBag.Delete(name)
}

func (o *ScriptObject) HasProperty(name names.QName) bool {
	if o.PropertyBag.Has(name) {
		return true
	}
	if o.proto != nil {
		return o.proto.HasProperty(name)
	}
	return false
}

func (o *ScriptObject) SetSlotValue(name names.QName, v Value) {
	o.PropertyBag.Set(name, v)
}

func (o *ScriptObject) ResolveProperty(mn *names.Multiname) (names.QName, bool) {
	for _, k := range o.PropertyBag.Keys() {
		if k.Name == mn.Name && mn.MatchesNamespace(k.NS) {
			return k, true
		}
	}
	if o.proto != nil {
		return o.proto.ResolveProperty(mn)
	}
	return names.QName{}, false
}

func (o *ScriptObject) ToString() string {
	return "[object " + o.class.ClassName() + "]"
}

func (o *ScriptObject) ToNumber() float64 { return 0 }

func (o *ScriptObject) ToPrimitive() Value {
	return NewString(o.ToString())
}

// ErrSealedClass marks a dynamic-property write rejected by a
// non-dynamic class, surfaced by the interpreter as AVM error #1056.
var ErrSealedClass = sealedClassError{}

type sealedClassError struct{}

func (sealedClassError) Error() string {
	return "cannot create property on a non-dynamic class instance"
}

package runtime

import (
	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/domain"
	"github.com/flashcore/avm2/values"
)

// nativeFunc adapts a plain Go closure to values.Invokable so builtin
// methods can be defined inline without a dedicated receiver type.
type nativeFunc func(this values.Value, args []values.Value) (values.Value, error)

func (f nativeFunc) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	return f(this, args)
}

func defineMethod(vt *class.Vtable, name string, fn nativeFunc) {
	vt.Define(&class.Trait{
		Name:   qn(name),
		Kind:   class.TraitMethod,
		Method: &class.Method{Name: name, Kind: class.MethodNative, Native: fn},
	})
}

// Registry holds the bootstrapped classes a domain needs wired into its
// object model before any user do_abc runs: the boxing classes primitive
// method dispatch resolves against, and the Error hierarchy catch blocks
// and thrown numbered AVM errors match against.
type Registry struct {
	ObjectClass  *class.Class
	NumberClass  *class.Class
	IntClass     *class.Class
	UintClass    *class.Class
	StringClass  *class.Class
	BooleanClass *class.Class
	VectorClass  *class.Class
	ErrorClasses map[string]*class.Class
}

var errorHierarchy = []string{
	"RangeError", "TypeError", "ReferenceError", "VerifyError",
	"ArgumentError", "SecurityError", "EvalError", "URIError", "SyntaxError",
}

// Bootstrap registers the playerglobals builtin classes directly into
// sys, a system/playerglobals domain, the way a host constructs
// Object/Number/the Error hierarchy natively rather than loading them
// from a do_abc translation unit. IsSystem is set on every class here so
// Validate never runs override verification against host-authored
// traits.
func Bootstrap(sys *domain.Domain) *Registry {
	object := class.NewClass(qn("Object"), nil)
	object.IsSystem = true

	number := class.NewClass(qn("Number"), object)
	number.IsSystem = true
	defineMethod(number.InstanceTraits, "toString", numberToString)
	defineMethod(number.InstanceTraits, "toFixed", numberToFixed)
	defineMethod(number.InstanceTraits, "toExponential", numberToExponential)
	defineMethod(number.InstanceTraits, "toPrecision", numberToPrecision)

	intClass := class.NewClass(qn("int"), number)
	intClass.IsSystem = true
	uintClass := class.NewClass(qn("uint"), number)
	uintClass.IsSystem = true

	stringClass := class.NewClass(qn("String"), object)
	stringClass.IsSystem = true
	boolClass := class.NewClass(qn("Boolean"), object)
	boolClass.IsSystem = true

	// Vector is the one generic native class a host constructs: applytype
	// specializes it per element type (Vector.<int>, Vector.<*>, ...),
	// each specialization sharing this template's instance traits the way
	// newSpecialization copies them down from the object-vector
	// application.
	vectorClass := class.NewClass(qn("Vector"), object)
	vectorClass.IsSystem = true
	vectorClass.IsGeneric = true
	defineMethod(vectorClass.InstanceTraits, "push", vectorPush)
	defineMethod(vectorClass.InstanceTraits, "toString", vectorToString)
	vectorClass.InstanceTraits.Define(&class.Trait{
		Name:   qn("length"),
		Kind:   class.TraitGetter,
		Method: &class.Method{Name: "length", Kind: class.MethodNative, Native: nativeFunc(vectorLength)},
	})

	errClasses := make(map[string]*class.Class, len(errorHierarchy)+1)
	baseError := class.NewClass(qn("Error"), object)
	baseError.IsSystem = true
	errClasses["Error"] = baseError
	for _, name := range errorHierarchy {
		c := class.NewClass(qn(name), baseError)
		c.IsSystem = true
		errClasses[name] = c
	}

	sys.RegisterNative(object)
	sys.RegisterNative(number)
	sys.RegisterNative(intClass)
	sys.RegisterNative(uintClass)
	sys.RegisterNative(stringClass)
	sys.RegisterNative(boolClass)
	sys.RegisterNative(vectorClass)
	for _, c := range errClasses {
		sys.RegisterNative(c)
	}

	return &Registry{
		ObjectClass:  object,
		NumberClass:  number,
		IntClass:     intClass,
		UintClass:    uintClass,
		StringClass:  stringClass,
		BooleanClass: boolClass,
		VectorClass:  vectorClass,
		ErrorClasses: errClasses,
	}
}

// BoxClassFor returns the class a primitive of Type t is boxed against
// for method dispatch (e.g. (255).toString(16) resolving toString
// through NumberClass), or nil for types that are never boxed (objects
// already carry their own class).
func (r *Registry) BoxClassFor(t values.Type) *class.Class {
	switch t {
	case values.TypeNumber:
		return r.NumberClass
	case values.TypeInt:
		return r.IntClass
	case values.TypeUint:
		return r.UintClass
	case values.TypeString:
		return r.StringClass
	case values.TypeBoolean:
		return r.BooleanClass
	default:
		return nil
	}
}

func numberToString(this values.Value, args []values.Value) (values.Value, error) {
	radix := 10
	if len(args) > 0 && !args[0].IsUndefined() {
		radix = int(args[0].ToInt32())
	}
	s, err := ToStringRadix(numberOf(this), radix)
	if err != nil {
		return values.Undefined, err
	}
	return values.NewString(s), nil
}

func numberToFixed(this values.Value, args []values.Value) (values.Value, error) {
	digits := 0
	if len(args) > 0 {
		digits = int(args[0].ToInt32())
	}
	s, err := ToFixed(numberOf(this), digits)
	if err != nil {
		return values.Undefined, err
	}
	return values.NewString(s), nil
}

func numberToExponential(this values.Value, args []values.Value) (values.Value, error) {
	digits := 6
	if len(args) > 0 && !args[0].IsUndefined() {
		digits = int(args[0].ToInt32())
	}
	s, err := ToExponential(numberOf(this), digits)
	if err != nil {
		return values.Undefined, err
	}
	return values.NewString(s), nil
}

func numberToPrecision(this values.Value, args []values.Value) (values.Value, error) {
	if len(args) == 0 || args[0].IsUndefined() {
		return values.NewString(values.NumberToString(numberOf(this))), nil
	}
	s, err := ToPrecision(numberOf(this), int(args[0].ToInt32()))
	if err != nil {
		return values.Undefined, err
	}
	return values.NewString(s), nil
}

func vectorOf(this values.Value) (*values.VectorObject, bool) {
	vec, ok := this.Object().(*values.VectorObject)
	return vec, ok
}

func vectorPush(this values.Value, args []values.Value) (values.Value, error) {
	vec, ok := vectorOf(this)
	if !ok {
		return values.Undefined, nil
	}
	for _, a := range args {
		if err := vec.Push(a); err != nil {
			return values.Undefined, err
		}
	}
	return values.NewNumber(float64(vec.Length())), nil
}

func vectorToString(this values.Value, args []values.Value) (values.Value, error) {
	vec, ok := vectorOf(this)
	if !ok {
		return values.NewString(""), nil
	}
	return values.NewString(vec.ToString()), nil
}

func vectorLength(this values.Value, args []values.Value) (values.Value, error) {
	vec, ok := vectorOf(this)
	if !ok {
		return values.NewNumber(0), nil
	}
	return values.NewNumber(float64(vec.Length())), nil
}

// numberOf unwraps the receiver (a primitive Number/int/uint value, or a
// PrimitiveBox around one, per the activation's auto-box/auto-unbox
// discipline) down to its float64 payload.
func numberOf(this values.Value) float64 {
	if box, ok := this.Object().(*values.PrimitiveBox); ok {
		this = box.Boxed
	}
	return this.ToNumber()
}

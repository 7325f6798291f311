package interp

import (
	"math"

	"github.com/flashcore/avm2/class"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
)

func asClassObject(v values.Value) (*class.Class, bool) {
	co, ok := v.Object().(*class.ClassObject)
	if !ok {
		return nil, false
	}
	return co.Class, true
}

func toPrimitive(v values.Value) values.Value {
	if obj := v.Object(); obj != nil {
		return obj.ToPrimitive()
	}
	return v
}

// addValues implements AS3 `+`: string concatenation if either operand's
// ToPrimitive result is a string, numeric addition otherwise.
func addValues(a, b values.Value) values.Value {
	pa, pb := toPrimitive(a), toPrimitive(b)
	if pa.Type() == values.TypeString || pb.Type() == values.TypeString {
		return values.NewString(pa.ToString() + pb.ToString())
	}
	return values.NewNumber(pa.ToNumber() + pb.ToNumber())
}

// compareLess implements the ECMA-262 abstract relational comparison: a
// lexicographic compare when both operands' primitive form is a string,
// numeric compare otherwise, with nan=true meaning the comparison result
// is undefined (one side was NaN) and must read as false however the
// caller's opcode negates it.
func compareLess(a, b values.Value) (less bool, nan bool) {
	pa, pb := toPrimitive(a), toPrimitive(b)
	if pa.Type() == values.TypeString && pb.Type() == values.TypeString {
		return pa.Str() < pb.Str(), false
	}
	na, nb := pa.ToNumber(), pb.ToNumber()
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false, true
	}
	return na < nb, false
}

func lessThan(a, b values.Value) bool {
	l, _ := compareLess(a, b)
	return l
}

func greaterThan(a, b values.Value) bool {
	l, _ := compareLess(b, a)
	return l
}

func lessEquals(a, b values.Value) bool {
	l, nan := compareLess(b, a)
	if nan {
		return false
	}
	return !l
}

func greaterEquals(a, b values.Value) bool {
	l, nan := compareLess(a, b)
	if nan {
		return false
	}
	return !l
}

func typeOf(v values.Value) string {
	switch v.Type() {
	case values.TypeUndefined:
		return "undefined"
	case values.TypeNull:
		return "object"
	case values.TypeBoolean:
		return "boolean"
	case values.TypeInt, values.TypeUint, values.TypeNumber:
		return "number"
	case values.TypeString:
		return "string"
	case values.TypeObject:
		if _, ok := v.Object().(*values.FunctionObject); ok {
			return "function"
		}
		return "object"
	}
	return "undefined"
}

// instanceOf implements the `instanceof` operator: ctorVal must be a
// class.ClassObject (the value a TraitClass trait resolves to), the
// right-hand side of `x instanceof Y`.
func (m *Machine) instanceOf(v values.Value, ctorVal values.Value) (bool, error) {
	co, ok := asClassObject(ctorVal)
	if !ok {
		return false, avmerrors.NewTypeError("%s is not a class reference", ctorVal.ToString())
	}
	obj := m.coerceToObject(v)
	return co.IsInstanceObject(obj), nil
}



// isTypeByName implements istype: resolves mn against the system domain
// to a class and checks instance membership, used when the right-hand
// side is a compile-time type name rather than a runtime value.
func (m *Machine) isTypeByName(v values.Value, mn *names.Multiname) (bool, error) {
	if m.System == nil {
		return false, nil
	}
	target, found, err := m.System.GetClass(mn)
	if err != nil {
		return false, err
	}
	if !found || target == nil {
		return false, nil
	}
	obj := m.coerceToObject(v)
	return target.IsInstanceObject(obj), nil
}

// asType implements the `as` operator: v if it matches mn, Null
// otherwise (unlike coerce, `as` never throws).
func (m *Machine) asType(v values.Value, mn *names.Multiname) (values.Value, error) {
	ok, err := m.isTypeByName(v, mn)
	if err != nil {
		return values.Undefined, err
	}
	if ok {
		return v, nil
	}
	return values.Null, nil
}

// coerce implements the coerce opcode's conversion rules: primitive
// wrapper type names convert through the matching ECMA coercion, "*"/""
// (Object/any) pass through unchanged, null/undefined always coerce to
// null, and anything else requires the value already be an instance of
// the named class.
func (m *Machine) coerce(v values.Value, mn *names.Multiname) (values.Value, error) {
	switch mn.Name {
	case "int":
		return values.NewInt(v.ToInt32()), nil
	case "uint":
		return values.NewUint(v.ToUint32()), nil
	case "Number":
		return values.NewNumber(v.ToNumber()), nil
	case "String":
		if v.IsNullOrUndefined() {
			return values.Null, nil
		}
		return values.NewString(v.ToString()), nil
	case "Boolean":
		return values.NewBool(v.ToBoolean()), nil
	case "*", "":
		return v, nil
	}
	if v.IsNullOrUndefined() {
		return values.Null, nil
	}
	if m.System != nil {
		target, found, err := m.System.GetClass(mn)
		if err != nil {
			return values.Undefined, err
		}
		if found && target != nil {
			obj := v.Object()
			if obj == nil || !target.IsInstanceObject(obj) {
				return values.Undefined, avmerrors.NewTypeError("cannot coerce %s to %s", v.ToString(), mn.Name)
			}
		}
	}
	return v, nil
}

func coerceString(v values.Value) values.Value {
	if v.IsNullOrUndefined() {
		return values.Null
	}
	return values.NewString(v.ToString())
}

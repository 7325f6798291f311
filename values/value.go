// Package values implements the AVM2 tagged Value type and the Object
// capability-set variants it can carry.
package values

import (
	"math"
	"strconv"
)

// Type discriminates the tagged Value union.
type Type uint8

const (
	TypeUndefined Type = iota
	TypeNull
	TypeBoolean
	TypeInt
	TypeUint
	TypeNumber
	TypeString
	TypeObject
)

var typeNames = map[Type]string{
	TypeUndefined: "undefined",
	TypeNull:      "null",
	TypeBoolean:   "boolean",
	TypeInt:       "int",
	TypeUint:      "uint",
	TypeNumber:    "number",
	TypeString:    "string",
	TypeObject:    "object",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Value is the tagged union every AVM2 slot, stack cell and register
// holds. Only the field matching Type is meaningful; the rest are zero.
type Value struct {
	typ Type
	b   bool
	i   int32
	u   uint32
	n   float64
	s   string
	obj Object
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
)

func NewBool(b bool) Value      { return Value{typ: TypeBoolean, b: b} }
func NewInt(i int32) Value      { return Value{typ: TypeInt, i: i} }
func NewUint(u uint32) Value    { return Value{typ: TypeUint, u: u} }
func NewNumber(n float64) Value { return Value{typ: TypeNumber, n: n} }
func NewString(s string) Value  { return Value{typ: TypeString, s: s} }
func NewObject(o Object) Value {
	if o == nil {
		return Null
	}
	return Value{typ: TypeObject, obj: o}
}

func (v Value) Type() Type              { return v.typ }
func (v Value) IsUndefined() bool       { return v.typ == TypeUndefined }
func (v Value) IsNull() bool            { return v.typ == TypeNull }
func (v Value) IsNullOrUndefined() bool { return v.typ == TypeUndefined || v.typ == TypeNull }
func (v Value) IsPrimitive() bool       { return v.typ != TypeObject }

// Object returns the underlying Object, or nil if this value does not
// carry one.
func (v Value) Object() Object {
	if v.typ == TypeObject {
		return v.obj
	}
	return nil
}

// Bool returns the raw boolean payload; only meaningful when Type() is
// TypeBoolean.
func (v Value) Bool() bool   { return v.b }
func (v Value) Int() int32   { return v.i }
func (v Value) Uint() uint32 { return v.u }
func (v Value) Num() float64 { return v.n }
func (v Value) Str() string  { return v.s }

// ToBoolean implements ECMA-262 ToBoolean for the AVM2 value set.
func (v Value) ToBoolean() bool {
	switch v.typ {
	case TypeUndefined, TypeNull:
		return false
	case TypeBoolean:
		return v.b
	case TypeInt:
		return v.i != 0
	case TypeUint:
		return v.u != 0
	case TypeNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case TypeString:
		return v.s != ""
	case TypeObject:
		return true
	}
	return false
}

// ToNumber implements ECMA-262 ToNumber.
func (v Value) ToNumber() float64 {
	switch v.typ {
	case TypeUndefined:
		return math.NaN()
	case TypeNull:
		return 0
	case TypeBoolean:
		if v.b {
			return 1
		}
		return 0
	case TypeInt:
		return float64(v.i)
	case TypeUint:
		return float64(v.u)
	case TypeNumber:
		return v.n
	case TypeString:
		return stringToNumber(v.s)
	case TypeObject:
		return v.obj.ToNumber()
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	trimmed := trimAS3Space(s)
	if trimmed == "" {
		return 0
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func trimAS3Space(s string) string {
	start, end := 0, len(s)
	for start < end && isAS3Space(s[start]) {
		start++
	}
	for end > start && isAS3Space(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isAS3Space(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// ToInt32 implements ECMA-262 ToInt32 (modular 32-bit truncation).
func (v Value) ToInt32() int32 { return toInt32(v.ToNumber()) }

// ToUint32 implements ECMA-262 ToUint32.
func (v Value) ToUint32() uint32 { return toUint32(v.ToNumber()) }

func toInt32(n float64) int32 { return int32(toUint32(n)) }

func toUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	const twoPow32 = 4294967296.0
	m := math.Mod(n, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	return uint32(m)
}

// ToString implements the default (radix-10) ToString conversion used by
// the engine internally (string concatenation, property-key coercion,
// trace output). Number's richer toFixed/toExponential/toPrecision/
// toString(radix) methods live in the runtime package's Number class.
func (v Value) ToString() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(int64(v.i), 10)
	case TypeUint:
		return strconv.FormatUint(uint64(v.u), 10)
	case TypeNumber:
		return NumberToString(v.n)
	case TypeString:
		return v.s
	case TypeObject:
		return v.obj.ToString()
	}
	return ""
}

// NumberToString renders a float64 the way AS3's default Number-to-string
// coercion does: special tokens for NaN/Infinity, otherwise the shortest
// round-tripping decimal representation.
func NumberToString(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// StrictEquals implements the AVM2 strict-equality (===) comparison: no
// type coercion, NaN never equal to itself.
func (v Value) StrictEquals(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return v.b == other.b
	case TypeInt:
		return v.i == other.i
	case TypeUint:
		return v.u == other.u
	case TypeNumber:
		return v.n == other.n
	case TypeString:
		return v.s == other.s
	case TypeObject:
		return v.obj == other.obj
	}
	return false
}

// AbstractEquals implements the AVM2 abstract-equality (==) algorithm:
// numeric kinds compare numerically against each other, string vs number
// coerces the string, boolean coerces to number, object vs primitive
// coerces the object via ToPrimitive as appropriate.
func (v Value) AbstractEquals(other Value) bool {
	if v.typ == other.typ {
		return v.StrictEquals(other)
	}
	if v.IsNullOrUndefined() && other.IsNullOrUndefined() {
		return true
	}
	if v.IsNullOrUndefined() || other.IsNullOrUndefined() {
		return false
	}
	if isNumeric(v.typ) && isNumeric(other.typ) {
		return v.ToNumber() == other.ToNumber()
	}
	if v.typ == TypeString && isNumeric(other.typ) {
		return stringToNumber(v.s) == other.ToNumber()
	}
	if other.typ == TypeString && isNumeric(v.typ) {
		return v.ToNumber() == stringToNumber(other.s)
	}
	if v.typ == TypeBoolean {
		return NewNumber(v.ToNumber()).AbstractEquals(other)
	}
	if other.typ == TypeBoolean {
		return v.AbstractEquals(NewNumber(other.ToNumber()))
	}
	if v.typ == TypeObject && other.typ != TypeObject {
		return v.obj.ToPrimitive().AbstractEquals(other)
	}
	if other.typ == TypeObject && v.typ != TypeObject {
		return v.AbstractEquals(other.obj.ToPrimitive())
	}
	return false
}

func isNumeric(t Type) bool {
	return t == TypeInt || t == TypeUint || t == TypeNumber
}

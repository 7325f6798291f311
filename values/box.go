package values

import "github.com/dustin/go-humanize"

// PrimitiveBox wraps a boolean/int/uint/number/string primitive so it can
// flow through code paths that require an Object (e.g. `new Number(3)`,
// or a primitive auto-boxed by the interpreter when it is the receiver
// of a property access or method call).
type PrimitiveBox struct {
	*ScriptObject
	Boxed Value
}

func NewPrimitiveBox(class ClassRef, proto Object, boxed Value) *PrimitiveBox {
	return &PrimitiveBox{ScriptObject: NewScriptObject(class, proto, true), Boxed: boxed}
}

func (b *PrimitiveBox) ToString() string { return b.Boxed.ToString() }
func (b *PrimitiveBox) ToNumber() float64 { return b.Boxed.ToNumber() }
func (b *PrimitiveBox) ToPrimitive() Value { return b.Boxed }

// ByteArrayObject is the flash.utils.ByteArray variant: a growable byte
// buffer with an independent read/write position, as required by binary
// I/O APIs outside this module's scope but still needed as a value kind
// the interpreter can construct and pass around.
type ByteArrayObject struct {
	*ScriptObject
	Bytes    []byte
	Position int
}

func NewByteArrayObject(class ClassRef, proto Object) *ByteArrayObject {
	return &ByteArrayObject{ScriptObject: NewScriptObject(class, proto, true)}
}

func (b *ByteArrayObject) ToString() string {
	return string(b.Bytes)
}

// DebugSize renders the buffer's length in human-readable units (e.g.
// "2.1 kB"), the form a debug trace or avm2dbg's `print` command wants
// instead of a raw byte count.
func (b *ByteArrayObject) DebugSize() string {
	return humanize.Bytes(uint64(len(b.Bytes)))
}

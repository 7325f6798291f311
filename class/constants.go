package class

import "github.com/flashcore/avm2/names"

// ConstantPool is the slice of a translation unit's constant pool a
// bytecode method's operands index into: literal values and resolved
// multinames. The loader builds one per unit and shares it across every
// method body cut from that unit, so the interpreter never needs to see
// abcfile types directly.
type ConstantPool struct {
	Ints       []int32
	Uints      []uint32
	Doubles    []float64
	Strings    []string
	Multinames []*names.Multiname
	Methods    []*Method
}

func (p *ConstantPool) Int(i int) int32 {
	if p == nil || i <= 0 || i >= len(p.Ints) {
		return 0
	}
	return p.Ints[i]
}

func (p *ConstantPool) Uint(i int) uint32 {
	if p == nil || i <= 0 || i >= len(p.Uints) {
		return 0
	}
	return p.Uints[i]
}

func (p *ConstantPool) Double(i int) float64 {
	if p == nil || i <= 0 || i >= len(p.Doubles) {
		return 0
	}
	return p.Doubles[i]
}

func (p *ConstantPool) String(i int) string {
	if p == nil || i <= 0 || i >= len(p.Strings) {
		return ""
	}
	return p.Strings[i]
}

func (p *ConstantPool) Multiname(i int) *names.Multiname {
	if p == nil || i <= 0 || i >= len(p.Multinames) {
		return names.NewMultiname("")
	}
	return p.Multinames[i]
}

// Method looks up a method by its index in the translation unit's method
// array (used by newfunction to build a closure over a method not
// reachable through any trait). Out-of-range indices return nil.
func (p *ConstantPool) Method(i int) *Method {
	if p == nil || i < 0 || i >= len(p.Methods) {
		return nil
	}
	return p.Methods[i]
}

// Package class implements the AVM2 class, trait, method and vtable
// model, including class construction, generic specialization, and the
// trait-override verification algorithm.
package class

import "github.com/flashcore/avm2/names"

// TraitKind discriminates the seven trait variants a class can declare.
type TraitKind uint8

const (
	TraitSlot TraitKind = iota
	TraitConst
	TraitMethod
	TraitGetter
	TraitSetter
	TraitClass
	TraitFunction
)

var traitKindNames = map[TraitKind]string{
	TraitSlot:     "slot",
	TraitConst:    "const",
	TraitMethod:   "method",
	TraitGetter:   "getter",
	TraitSetter:   "setter",
	TraitClass:    "class",
	TraitFunction: "function",
}

func (k TraitKind) String() string {
	if s, ok := traitKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Trait is one member a class contributes to its instance or static
// vtable.
type Trait struct {
	Name        names.QName
	Kind        TraitKind
	SlotID      int    // slot/const storage index
	Type        *Class // declared type, nil if untyped ("*")
	Method      *Method
	NestedClass *Class // for TraitClass
	IsFinal     bool
	IsOverride  bool
}

package class

import "github.com/flashcore/avm2/values"

// ClassObject is the values.Object a TraitClass-kind trait resolves to
// and the right-hand side `new X()` operates on: a first-class handle on
// a Class, so the interpreter's construct opcode can work against a
// generic popped value instead of needing its own class-index path.
type ClassObject struct {
	*values.ScriptObject
	Class *Class
}

func NewClassObject(c *Class) *ClassObject {
	return &ClassObject{ScriptObject: values.NewScriptObject(c, nil, true), Class: c}
}

func (co *ClassObject) ToString() string { return "[class " + co.Class.Name.Name + "]" }

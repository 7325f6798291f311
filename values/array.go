package values

import "github.com/flashcore/avm2/names"

// ArrayObject is the dense/sparse AS3 Array variant: indexed elements
// backed by a slice, with named (non-numeric) properties falling back to
// the shared PropertyBag.
type ArrayObject struct {
	*ScriptObject
	elements []Value
}

func NewArrayObject(class ClassRef, proto Object) *ArrayObject {
	return &ArrayObject{ScriptObject: NewScriptObject(class, proto, false)}
}

func (a *ArrayObject) Length() int { return len(a.elements) }

func (a *ArrayObject) At(i int) Value {
	if i < 0 || i >= len(a.elements) {
		return Undefined
	}
	return a.elements[i]
}

func (a *ArrayObject) SetAt(i int, v Value) {
	if i < 0 {
		return
	}
	if i >= len(a.elements) {
		grown := make([]Value, i+1)
		copy(grown, a.elements)
		for j := len(a.elements); j < i; j++ {
			grown[j] = Undefined
		}
		a.elements = grown
	}
	a.elements[i] = v
}

func (a *ArrayObject) Push(v Value) int {
	a.elements = append(a.elements, v)
	return len(a.elements)
}

func (a *ArrayObject) ToString() string {
	s := ""
	for i, v := range a.elements {
		if i > 0 {
			s += ","
		}
		if !v.IsNullOrUndefined() {
			s += v.ToString()
		}
	}
	return s
}

// elementIndex reports whether name is a valid dense-array index name
// (a non-negative base-10 integer with no leading zero other than "0").
func elementIndex(name names.QName) (int, bool) {
	s := name.Name
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func (a *ArrayObject) GetProperty(name names.QName) (Value, bool) {
	if i, ok := elementIndex(name); ok {
		if i < len(a.elements) {
			return a.elements[i], true
		}
		return Undefined, false
	}
	return a.ScriptObject.GetProperty(name)
}

func (a *ArrayObject) SetProperty(name names.QName, v Value) error {
	if i, ok := elementIndex(name); ok {
		a.SetAt(i, v)
		return nil
	}
	return a.ScriptObject.SetProperty(name, v)
}

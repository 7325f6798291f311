package values

// Invokable is satisfied by anything that can be called as an AS3
// function: a native builtin, or the interpreter's bound bytecode
// method. Defining it here (rather than importing the interpreter's
// method type) keeps values free of a dependency on interp/class.
type Invokable interface {
	Invoke(this Value, args []Value) (Value, error)
}

// FunctionObject is the AS3 Function capability-set variant: a callable
// bound to a receiver-independent Invokable plus an optional bound
// "this" captured at method-closure creation time.
type FunctionObject struct {
	*ScriptObject
	Target  Invokable
	BoundThis Value
	HasBoundThis bool
}

func NewFunctionObject(class ClassRef, proto Object, target Invokable) *FunctionObject {
	return &FunctionObject{ScriptObject: NewScriptObject(class, proto, true), Target: target}
}

func (f *FunctionObject) Bind(this Value) *FunctionObject {
	return &FunctionObject{
		ScriptObject: f.ScriptObject,
		Target:       f.Target,
		BoundThis:    this,
		HasBoundThis: true,
	}
}

func (f *FunctionObject) Call(this Value, args []Value) (Value, error) {
	if f.HasBoundThis {
		this = f.BoundThis
	}
	return f.Target.Invoke(this, args)
}

func (f *FunctionObject) ToString() string { return "function Function() {}" }

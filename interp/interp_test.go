package interp

import (
	"testing"

	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/opcodes"
	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

func bytecodeMethod(code []byte, exceptions []class.ExceptionHandler) *class.Method {
	return &class.Method{
		Name: "test",
		Kind: class.MethodBytecode,
		Body: &class.Body{
			Code:       code,
			MaxStack:   8,
			MaxLocals:  1,
			Exceptions: exceptions,
			Pool:       &class.ConstantPool{},
		},
	}
}

func TestInvokeAddsTwoPushedBytes(t *testing.T) {
	m := NewMachine(nil, nil)
	code := []byte{
		byte(opcodes.OpPushByte), 2,
		byte(opcodes.OpPushByte), 3,
		byte(opcodes.OpAdd),
		byte(opcodes.OpReturnValue),
	}
	result, err := m.Invoke(bytecodeMethod(code, nil), values.Undefined, nil, nil)
	require.NoError(t, err)
	require.Equal(t, float64(5), result.ToNumber())
}

func TestInvokeReturnsVoidAsUndefined(t *testing.T) {
	m := NewMachine(nil, nil)
	code := []byte{byte(opcodes.OpReturnVoid)}
	result, err := m.Invoke(bytecodeMethod(code, nil), values.Undefined, nil, nil)
	require.NoError(t, err)
	require.True(t, result.IsUndefined())
}

func TestInvokeBranchesOnIfFalse(t *testing.T) {
	m := NewMachine(nil, nil)
	// pushfalse; iffalse +3 (from offset 5, lands on offset 8); pushbyte 1; returnvalue; pushbyte 2; returnvalue
	code := []byte{
		byte(opcodes.OpPushFalse),
		byte(opcodes.OpIfFalse), 0x03, 0x00, 0x00,
		byte(opcodes.OpPushByte), 1,
		byte(opcodes.OpReturnValue),
		byte(opcodes.OpPushByte), 2,
		byte(opcodes.OpReturnValue),
	}
	result, err := m.Invoke(bytecodeMethod(code, nil), values.Undefined, nil, nil)
	require.NoError(t, err)
	require.Equal(t, int32(2), result.Int())
}

func TestSetPropertyOnSealedInstanceRaisesNumbered1056(t *testing.T) {
	m := NewMachine(nil, nil)
	c := class.NewClass(names.NewQName(publicNS, "Point"), nil)
	c.IsSealed = true
	obj := values.NewScriptObject(c, nil, true)

	mn := names.NewMultiname("x", publicNS)
	err := m.setProperty(values.NewObject(obj), mn, values.NewInt(1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "#1056")

	thrown, ok := m.asThrown(err)
	require.True(t, ok)
	_, isObj := thrown.Object().(*values.ScriptObject)
	require.True(t, isObj)
}

func TestTryCatchResumesAtHandlerWithThrownValueOnStack(t *testing.T) {
	m := NewMachine(nil, nil)
	// 0: pushbyte 1      (2 bytes)
	// 2: throw           (1 byte)
	// 3: pop             (1 byte)   <- handler target, discards the thrown value
	// 4: pushbyte 42     (2 bytes)
	// 6: returnvalue     (1 byte)
	code := []byte{
		byte(opcodes.OpPushByte), 1,
		byte(opcodes.OpThrow),
		byte(opcodes.OpPop),
		byte(opcodes.OpPushByte), 42,
		byte(opcodes.OpReturnValue),
	}
	handlers := []class.ExceptionHandler{
		{From: 0, To: 3, Target: 3, ExceptionType: nil},
	}
	result, err := m.Invoke(bytecodeMethod(code, handlers), values.Undefined, nil, nil)
	require.NoError(t, err)
	require.Equal(t, int32(42), result.Int())
}

func TestThrowOutsideHandlerRangePropagates(t *testing.T) {
	m := NewMachine(nil, nil)
	code := []byte{
		byte(opcodes.OpPushByte), 1,
		byte(opcodes.OpThrow),
	}
	// handler only covers an unrelated later range, so the throw at
	// offset 2 finds no match and propagates out of Invoke.
	handlers := []class.ExceptionHandler{
		{From: 10, To: 20, Target: 10, ExceptionType: nil},
	}
	_, err := m.Invoke(bytecodeMethod(code, handlers), values.Undefined, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "uncaught AS3 exception")
}

func TestGetSlotReadsDeclaredSlotTrait(t *testing.T) {
	m := NewMachine(nil, nil)
	c := class.NewClass(names.NewQName(publicNS, "Point"), nil)
	c.InstanceTraits.Define(&class.Trait{
		Name:   names.NewQName(publicNS, "x"),
		Kind:   class.TraitSlot,
		SlotID: 1,
	})
	obj := values.NewScriptObject(c, nil, true)
	require.NoError(t, m.setSlot(values.NewObject(obj), 1, values.NewInt(7)))

	v := m.getSlot(values.NewObject(obj), 1)
	require.Equal(t, int32(7), v.Int())
}

func TestInstanceOfMatchesSuperclass(t *testing.T) {
	m := NewMachine(nil, nil)
	base := class.NewClass(names.NewQName(publicNS, "Animal"), nil)
	derived := class.NewClass(names.NewQName(publicNS, "Dog"), base)
	obj := values.NewScriptObject(derived, nil, false)

	ok, err := m.instanceOf(values.NewObject(obj), values.NewObject(class.NewClassObject(base)))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.instanceOf(values.NewObject(obj), values.NewObject(class.NewClassObject(derived)))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStaticMemberResolvesAgainstStaticTraitsNotInstanceTraits(t *testing.T) {
	m := NewMachine(nil, nil)
	c := class.NewClass(names.NewQName(publicNS, "Config"), nil)
	c.StaticTraits.Define(&class.Trait{
		Name: names.NewQName(publicNS, "VERSION"),
		Kind: class.TraitSlot,
	})
	c.InstanceTraits.Define(&class.Trait{
		Name: names.NewQName(publicNS, "VERSION"),
		Kind: class.TraitSlot,
	})

	classObj := values.NewObject(class.NewClassObject(c))
	mn := names.NewMultiname("VERSION", publicNS)

	require.NoError(t, m.setProperty(classObj, mn, values.NewInt(2)))
	v, err := m.getProperty(classObj, mn)
	require.NoError(t, err)
	require.Equal(t, int32(2), v.Int())

	// the instance-side trait of the same name on a plain instance must
	// stay untouched by the class-side write above.
	instance := values.NewObject(values.NewScriptObject(c, nil, false))
	instanceVal, err := m.getProperty(instance, mn)
	require.NoError(t, err)
	require.True(t, instanceVal.IsUndefined())
}

func TestClassInitRunsOnceOnFirstExternalReference(t *testing.T) {
	m := NewMachine(nil, nil)
	c := class.NewClass(names.NewQName(publicNS, "Singleton"), nil)
	c.StaticTraits.Define(&class.Trait{
		Name:   names.NewQName(publicNS, "ready"),
		Kind:   class.TraitSlot,
		SlotID: 1,
	})

	runs := 0
	c.ClassInit = &class.Method{
		Name: "Singleton$cinit",
		Kind: class.MethodNative,
		Native: testNativeFunc(func(this values.Value, args []values.Value) (values.Value, error) {
			runs++
			return values.Undefined, m.setProperty(this, names.NewMultiname("ready", publicNS), values.NewBool(true))
		}),
	}

	outer := class.NewClass(names.NewQName(publicNS, "Outer"), nil)
	outer.InstanceTraits.Define(&class.Trait{
		Name:        names.NewQName(publicNS, "Singleton"),
		Kind:        class.TraitClass,
		NestedClass: c,
	})
	holder := values.NewObject(values.NewScriptObject(outer, nil, false))

	first, err := m.getProperty(holder, names.NewMultiname("Singleton", publicNS))
	require.NoError(t, err)
	require.Equal(t, 1, runs)

	ready, err := m.getProperty(first, names.NewMultiname("ready", publicNS))
	require.NoError(t, err)
	require.True(t, ready.ToBoolean())

	_, err = m.getProperty(holder, names.NewMultiname("Singleton", publicNS))
	require.NoError(t, err)
	require.Equal(t, 1, runs, "a second external reference must not rerun the static initializer")
}

// testNativeFunc adapts a plain closure to values.Invokable for tests that
// need a native ClassInit/InstanceInit without a dedicated receiver type.
type testNativeFunc func(this values.Value, args []values.Value) (values.Value, error)

func (f testNativeFunc) Invoke(this values.Value, args []values.Value) (values.Value, error) {
	return f(this, args)
}

func TestApplyTypeOpcodeRejectsNonGenericClass(t *testing.T) {
	m := NewMachine(nil, nil)
	plain := class.NewClass(names.NewQName(publicNS, "Plain"), nil)

	outer := class.NewClass(names.NewQName(publicNS, "Outer"), nil)
	outer.InstanceTraits.Define(&class.Trait{
		Name:        names.NewQName(publicNS, "Plain"),
		Kind:        class.TraitClass,
		NestedClass: plain,
	})

	pool := &class.ConstantPool{
		Multinames: []*names.Multiname{nil, names.NewMultiname("Plain", publicNS)},
	}
	code := []byte{
		byte(opcodes.OpGetLex), 1,
		byte(opcodes.OpApplyType), 0,
		byte(opcodes.OpReturnValue),
	}
	method := &class.Method{
		Name: "test",
		Kind: class.MethodBytecode,
		Body: &class.Body{Code: code, MaxStack: 8, MaxLocals: 1, Pool: pool},
	}

	this := values.NewObject(values.NewScriptObject(outer, nil, false))
	_, err := m.Invoke(method, this, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a generic type")
}

func TestApplyTypeOpcodeSpecializesGenericClass(t *testing.T) {
	m := NewMachine(nil, nil)
	vector := class.NewClass(names.NewQName(publicNS, "Vector"), nil)
	vector.IsGeneric = true
	intClass := class.NewClass(names.NewQName(publicNS, "int"), nil)

	outer := class.NewClass(names.NewQName(publicNS, "Outer"), nil)
	outer.InstanceTraits.Define(&class.Trait{
		Name:        names.NewQName(publicNS, "Vector"),
		Kind:        class.TraitClass,
		NestedClass: vector,
	})
	outer.InstanceTraits.Define(&class.Trait{
		Name:        names.NewQName(publicNS, "int"),
		Kind:        class.TraitClass,
		NestedClass: intClass,
	})

	pool := &class.ConstantPool{
		Multinames: []*names.Multiname{nil, names.NewMultiname("Vector", publicNS), names.NewMultiname("int", publicNS)},
	}
	code := []byte{
		byte(opcodes.OpGetLex), 1,
		byte(opcodes.OpGetLex), 2,
		byte(opcodes.OpApplyType), 1,
		byte(opcodes.OpReturnValue),
	}
	method := &class.Method{
		Name: "test",
		Kind: class.MethodBytecode,
		Body: &class.Body{Code: code, MaxStack: 8, MaxLocals: 1, Pool: pool},
	}

	this := values.NewObject(values.NewScriptObject(outer, nil, false))
	result, err := m.Invoke(method, this, nil, nil)
	require.NoError(t, err)

	specializedObj, ok := result.Object().(*class.ClassObject)
	require.True(t, ok)
	require.Same(t, vector.ApplyTypeParameter(intClass), specializedObj.Class)
}

func TestConstructRunsInstanceInitializer(t *testing.T) {
	m := NewMachine(nil, nil)
	c := class.NewClass(names.NewQName(publicNS, "Box"), nil)
	c.InstanceTraits.Define(&class.Trait{
		Name:   names.NewQName(publicNS, "value"),
		Kind:   class.TraitSlot,
		SlotID: 1,
	})
	// instance init: setproperty "value" from local1 (first ctor arg)
	initCode := []byte{
		byte(opcodes.OpGetLocal0),
		byte(opcodes.OpGetLocal1),
		byte(opcodes.OpSetProperty), 1,
		byte(opcodes.OpReturnVoid),
	}
	pool := &class.ConstantPool{
		Multinames: []*names.Multiname{nil, names.NewMultiname("value", publicNS)},
	}
	c.InstanceInit = &class.Method{
		Name: "Box",
		Kind: class.MethodBytecode,
		Body: &class.Body{Code: initCode, MaxStack: 4, MaxLocals: 2, Pool: pool},
	}

	result, err := m.construct(values.NewObject(class.NewClassObject(c)), []values.Value{values.NewInt(9)})
	require.NoError(t, err)

	v, err := m.getProperty(result, names.QNameMultiname(names.NewQName(publicNS, "value")))
	require.NoError(t, err)
	require.Equal(t, int32(9), v.Int())
}

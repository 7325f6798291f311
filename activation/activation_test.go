package activation

import (
	"testing"

	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack(0)
	s.Push(values.NewInt(1))
	s.Push(values.NewInt(2))
	require.Equal(t, int32(2), s.Pop().Int())
	require.Equal(t, int32(1), s.Pop().Int())
}

func TestStackUnderflowYieldsUndefined(t *testing.T) {
	s := NewStack(0)
	v := s.Pop()
	require.True(t, v.IsUndefined())
}

func TestStackOverflowDropsSilently(t *testing.T) {
	s := NewStack(1)
	s.Push(values.NewInt(1))
	s.Push(values.NewInt(2)) // dropped
	require.Equal(t, 1, s.Depth())
}

func TestPopArgsLeftToRight(t *testing.T) {
	s := NewStack(0)
	s.Push(values.NewInt(1))
	s.Push(values.NewInt(2))
	s.Push(values.NewInt(3))
	args := s.PopArgs(3)
	require.Equal(t, []int32{1, 2, 3}, []int32{args[0].Int(), args[1].Int(), args[2].Int()})
}

func TestPushAutoUnboxesPrimitiveBox(t *testing.T) {
	s := NewStack(0)
	box := values.NewPrimitiveBox(nil, nil, values.NewInt(42))
	s.Push(values.NewObject(box))
	require.Equal(t, int32(42), s.Pop().Int())
}

func TestActivationUnwindTruncatesSharedStacks(t *testing.T) {
	s := NewStack(0)
	s.Push(values.NewInt(1))
	a := NewActivation(s, nil, values.Undefined, nil)
	s.Push(values.NewInt(2))
	s.Push(values.NewInt(3))
	a.Unwind()
	require.Equal(t, 1, s.Depth())
}

func TestActivationEnforcesOwnMethodsDeclaredMaxStack(t *testing.T) {
	s := NewStack(0) // global cap is the 65536 default, far above this test
	method := &class.Method{
		Name: "tiny",
		Kind: class.MethodBytecode,
		Body: &class.Body{MaxStack: 2},
	}
	a := NewActivation(s, method, values.Undefined, nil)
	defer a.Unwind()

	s.Push(values.NewInt(1))
	s.Push(values.NewInt(2))
	s.Push(values.NewInt(3)) // overflows this method's own declared max, dropped

	require.Equal(t, 2, s.Depth())
}

func TestActivationWithNoDeclaredMaxStackFallsBackToGlobalCap(t *testing.T) {
	s := NewStack(0)
	a := NewActivation(s, nil, values.Undefined, nil)
	defer a.Unwind()

	for i := 0; i < 10; i++ {
		s.Push(values.NewInt(int32(i)))
	}
	require.Equal(t, 10, s.Depth())
}

func TestNestedActivationRestoresOuterFrameCeilingOnUnwind(t *testing.T) {
	s := NewStack(0)
	outer := &class.Method{Kind: class.MethodBytecode, Body: &class.Body{MaxStack: 5}}
	inner := &class.Method{Kind: class.MethodBytecode, Body: &class.Body{MaxStack: 1}}

	a := NewActivation(s, outer, values.Undefined, nil)
	s.Push(values.NewInt(1))

	b := NewActivation(s, inner, values.Undefined, nil)
	s.Push(values.NewInt(2))
	s.Push(values.NewInt(3)) // overflows inner's max of 1, dropped
	require.Equal(t, 2, s.Depth())
	b.Unwind()

	// back under outer's ceiling of 5 (base 0 + max 5); outer already
	// pushed 1, so 3 more pushes should all succeed.
	s.Push(values.NewInt(4))
	s.Push(values.NewInt(5))
	s.Push(values.NewInt(6))
	require.Equal(t, 4, s.Depth())
	a.Unwind()
}

func TestCallStackOverflowRefusesPush(t *testing.T) {
	cs := NewCallStack(1)
	s := NewStack(0)
	require.True(t, cs.Push(NewActivation(s, nil, values.Undefined, nil)))
	require.False(t, cs.Push(NewActivation(s, nil, values.Undefined, nil)))
	require.Equal(t, 1, cs.Depth())
}

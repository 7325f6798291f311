package values

import (
	"math"
	"testing"

	"github.com/flashcore/avm2/names"
	"github.com/stretchr/testify/require"
)

var publicNS = names.New(names.KindPublic, "")

func qnameOf(name string) names.QName {
	return names.NewQName(publicNS, name)
}

func TestToInt32Wraps(t *testing.T) {
	require.Equal(t, int32(-1), NewNumber(4294967295).ToInt32())
	require.Equal(t, int32(0), NewNumber(math.NaN()).ToInt32())
	require.Equal(t, int32(0), NewNumber(math.Inf(1)).ToInt32())
}

func TestToUint32Wraps(t *testing.T) {
	require.Equal(t, uint32(4294967295), NewNumber(-1).ToUint32())
	require.Equal(t, uint32(0), NewNumber(4294967296).ToUint32())
}

func TestAbstractEqualsCoercion(t *testing.T) {
	require.True(t, NewString("1").AbstractEquals(NewInt(1)))
	require.True(t, NewBool(true).AbstractEquals(NewInt(1)))
	require.True(t, Null.AbstractEquals(Undefined))
	require.False(t, Null.AbstractEquals(NewInt(0)))
}

func TestStrictEqualsNaNNeverEqual(t *testing.T) {
	nan := NewNumber(math.NaN())
	require.False(t, nan.StrictEquals(nan))
}

func TestNumberToStringSpecialTokens(t *testing.T) {
	require.Equal(t, "NaN", NumberToString(math.NaN()))
	require.Equal(t, "Infinity", NumberToString(math.Inf(1)))
	require.Equal(t, "-Infinity", NumberToString(math.Inf(-1)))
}

type stubClass struct{ name string }

func (s stubClass) ClassName() string                  { return s.name }
func (s stubClass) IsInstanceObject(o Object) bool      { return true }

func TestScriptObjectSealedRejectsNewProperty(t *testing.T) {
	obj := NewScriptObject(stubClass{"Sealed"}, nil, true)
	err := obj.SetProperty(qnameOf("x"), NewInt(1))
	require.ErrorIs(t, err, ErrSealedClass)
}

func TestScriptObjectDynamicAllowsNewProperty(t *testing.T) {
	obj := NewScriptObject(stubClass{"Dyn"}, nil, false)
	err := obj.SetProperty(qnameOf("x"), NewInt(1))
	require.NoError(t, err)
	v, ok := obj.GetProperty(qnameOf("x"))
	require.True(t, ok)
	require.Equal(t, int32(1), v.Int())
}

func TestArrayObjectIndexAccess(t *testing.T) {
	arr := NewArrayObject(stubClass{"Array"}, nil)
	arr.Push(NewInt(10))
	arr.Push(NewInt(20))
	require.Equal(t, 2, arr.Length())

	v, ok := arr.GetProperty(qnameOf("1"))
	require.True(t, ok)
	require.Equal(t, int32(20), v.Int())
}

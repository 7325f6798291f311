package runtime

import (
	"testing"

	"github.com/flashcore/avm2/domain"
	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

func TestBootstrapRegistersBoxClasses(t *testing.T) {
	sys := domain.NewSystemDomain()
	reg := Bootstrap(sys)
	require.NotNil(t, reg.NumberClass)
	require.Equal(t, reg.NumberClass, reg.BoxClassFor(values.TypeNumber))
	require.Equal(t, reg.IntClass, reg.BoxClassFor(values.TypeInt))
	require.Nil(t, reg.BoxClassFor(values.TypeObject))
}

func TestNumberToStringNativeMethod(t *testing.T) {
	sys := domain.NewSystemDomain()
	reg := Bootstrap(sys)
	trait, ok := reg.NumberClass.InstanceTraits.Lookup(qn("toString"))
	require.True(t, ok)
	result, err := trait.Method.Invoke(values.NewNumber(255), []values.Value{values.NewInt(16)})
	require.NoError(t, err)
	require.Equal(t, "ff", result.Str())
}

func TestErrorObjectCarriesMessageAndKind(t *testing.T) {
	sys := domain.NewSystemDomain()
	reg := Bootstrap(sys)
	e := avmerrors.NewNumbered(avmerrors.CodeRadixRange, "")
	obj := reg.NewErrorObject(e)
	v, ok := obj.GetProperty(qn("message"))
	require.True(t, ok)
	require.Equal(t, "radix not in [2,36]", v.Str())
	k, ok := obj.GetProperty(qn("name"))
	require.True(t, ok)
	require.Equal(t, "RangeError", k.Str())
}

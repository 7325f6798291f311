package class

import (
	"testing"

	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

var pub = names.New(names.KindPublic, "")

func qn(n string) names.QName { return names.NewQName(pub, n) }

func TestValidateOverrideWithoutFlagFails(t *testing.T) {
	base := NewClass(qn("C"), nil)
	base.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod})
	require.NoError(t, Validate(base))

	derived := NewClass(qn("D"), base)
	derived.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod})
	err := Validate(derived)
	require.Error(t, err)
}

func TestValidateOverrideWithFlagSucceeds(t *testing.T) {
	base := NewClass(qn("C"), nil)
	base.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod})
	require.NoError(t, Validate(base))

	derived := NewClass(qn("D"), base)
	derived.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod, IsOverride: true})
	require.NoError(t, Validate(derived))
}

func TestValidateFinalOverrideForbidden(t *testing.T) {
	base := NewClass(qn("C"), nil)
	base.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod, IsFinal: true})
	require.NoError(t, Validate(base))

	derived := NewClass(qn("D"), base)
	derived.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod, IsOverride: true})
	require.Error(t, Validate(derived))
}

func TestValidateGetterSetterPairExempt(t *testing.T) {
	base := NewClass(qn("C"), nil)
	base.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitSetter})
	require.NoError(t, Validate(base))

	derived := NewClass(qn("D"), base)
	derived.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitGetter})
	require.NoError(t, Validate(derived))
}

func TestValidateOverrideWithoutMatchFails(t *testing.T) {
	base := NewClass(qn("C"), nil)
	require.NoError(t, Validate(base))

	derived := NewClass(qn("D"), base)
	derived.InstanceTraits.Define(&Trait{Name: qn("foo"), Kind: TraitMethod, IsOverride: true})
	require.Error(t, Validate(derived))
}

func TestApplyTypeParameterMemoized(t *testing.T) {
	vector := NewClass(qn("Vector"), nil)
	intClass := NewClass(qn("int"), nil)

	spec1 := vector.ApplyTypeParameter(intClass)
	spec2 := vector.ApplyTypeParameter(intClass)
	require.Same(t, spec1, spec2)

	any1 := vector.ApplyTypeParameter(nil)
	any2 := vector.ApplyTypeParameter(nil)
	require.Same(t, any1, any2)
	require.NotSame(t, any1, spec1)
}

func TestFindInheritedStaticWalksSuperChainSeparatelyFromInstanceTraits(t *testing.T) {
	base := NewClass(qn("Base"), nil)
	base.StaticTraits.Define(&Trait{Name: qn("COUNT"), Kind: TraitConst})
	base.InstanceTraits.Define(&Trait{Name: qn("COUNT"), Kind: TraitSlot})

	derived := NewClass(qn("Derived"), base)

	t1, owner, err := derived.FindInheritedStatic(names.QNameMultiname(qn("COUNT")))
	require.NoError(t, err)
	require.NotNil(t, t1)
	require.Equal(t, TraitConst, t1.Kind)
	require.Equal(t, base, owner)

	t2, _, err := derived.FindInherited(names.QNameMultiname(qn("COUNT")))
	require.NoError(t, err)
	require.NotNil(t, t2)
	require.Equal(t, TraitSlot, t2.Kind)
}

func TestNeedsClassInitRunsAtMostOnce(t *testing.T) {
	c := NewClass(qn("Foo"), nil)
	require.False(t, c.NeedsClassInit(), "no ClassInit method means nothing to run")

	c.ClassInit = &Method{Name: "Foo$cinit", Kind: MethodNative}
	require.True(t, c.NeedsClassInit())

	c.MarkClassInitRan()
	require.False(t, c.NeedsClassInit())
}

func TestIsInstanceObjectWalksSuperChain(t *testing.T) {
	base := NewClass(qn("C"), nil)
	derived := NewClass(qn("D"), base)

	obj := values.NewScriptObject(derived, nil, false)
	require.True(t, base.IsInstanceObject(obj))
	require.True(t, derived.IsInstanceObject(obj))

	other := NewClass(qn("E"), nil)
	require.False(t, other.IsInstanceObject(obj))
}

package class

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestApplyTypeParameterSourcesConcreteFromObjectVectorApplication verifies
// that a concrete specialization (Vector.<int>) copies its runtime shape
// from the already-registered object-vector application (Vector.<*>),
// rather than from the bare generic template, mirroring how a native
// Vector host class only ever wires up Super/InstanceInit/ClassInit once,
// on the object-vector application.
func TestApplyTypeParameterSourcesConcreteFromObjectVectorApplication(t *testing.T) {
	object := NewClass(qn("Object"), nil)
	vector := NewClass(qn("Vector"), object)
	vector.IsGeneric = true
	vector.InstanceInit = &Method{Name: "Vector$init", Kind: MethodNative}

	intClass := NewClass(qn("int"), nil)

	spec := vector.ApplyTypeParameter(intClass)
	objectApp := vector.ApplyTypeParameter(nil)

	require.Same(t, objectApp.InstanceInit, spec.InstanceInit)
	require.Same(t, objectApp.Super, spec.Super)
	require.Same(t, objectApp.InstanceTraits, spec.InstanceTraits)
}

func TestApplyTypeParameterAnyApplicationSourcesFromTemplateItself(t *testing.T) {
	vector := NewClass(qn("Vector"), nil)
	vector.IsGeneric = true
	vector.InstanceInit = &Method{Name: "Vector$init", Kind: MethodNative}

	objectApp := vector.ApplyTypeParameter(nil)
	require.Same(t, vector.InstanceInit, objectApp.InstanceInit)
	require.Same(t, vector.InstanceTraits, objectApp.InstanceTraits)
}

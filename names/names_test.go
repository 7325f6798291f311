package names

import "testing"

import "github.com/stretchr/testify/require"

func TestNamespaceEqualsByKindAndIdentity(t *testing.T) {
	pub1 := New(KindPublic, "flash.events")
	pub2 := New(KindPublic, "flash.events")
	require.True(t, pub1.Equals(pub2), "public namespaces compare by URI")

	priv1 := New(KindPrivate, "MyClass")
	priv2 := New(KindPrivate, "MyClass")
	require.False(t, priv1.Equals(priv2), "private namespaces compare by identity")
	require.True(t, priv1.Equals(priv1))
}

func TestMultinameResolveUnique(t *testing.T) {
	pub := New(KindPublic, "")
	internal := New(KindPackageInternal, "app")
	mn := NewMultiname("x", pub)

	candidates := []QName{
		NewQName(internal, "x"),
		NewQName(pub, "x"),
	}
	q, ok, err := mn.Resolve(candidates)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, q.NS.Equals(pub))
}

func TestMultinameResolveAmbiguous(t *testing.T) {
	ns1 := New(KindPublic, "a")
	ns2 := New(KindPublic, "b")
	mn := NewMultiname("x", AnyNamespace)

	candidates := []QName{NewQName(ns1, "x"), NewQName(ns2, "x")}
	_, _, err := mn.Resolve(candidates)
	require.ErrorIs(t, err, ErrAmbiguousReference)
}

func TestMultinameResolveOrderedNamespaceSetBreaksTie(t *testing.T) {
	packageA := New(KindPublic, "packageA")
	packageB := New(KindPublic, "packageB")
	mn := NewMultiname("x", packageA, packageB)

	candidates := []QName{NewQName(packageB, "x"), NewQName(packageA, "x")}
	q, ok, err := mn.Resolve(candidates)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, q.NS.Equals(packageA), "the first namespace in the multiname's own set wins the tie")
}

func TestMultinameResolveNotFound(t *testing.T) {
	mn := NewMultiname("missing", New(KindPublic, ""))
	q, ok, err := mn.Resolve(nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, QName{}, q)
}

func TestMultinameProtectedMatchesByIdentityOnly(t *testing.T) {
	protectedA := New(KindProtected, "Base")
	protectedB := New(KindProtected, "Base")
	mn := NewMultiname("p", protectedA)

	candidates := []QName{NewQName(protectedB, "p")}
	_, ok, err := mn.Resolve(candidates)
	require.NoError(t, err)
	require.False(t, ok, "distinct protected namespace instances must not match")
}

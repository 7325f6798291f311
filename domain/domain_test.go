package domain

import (
	"testing"

	"github.com/flashcore/avm2/class"
	"github.com/flashcore/avm2/names"
	"github.com/flashcore/avm2/values"
	"github.com/stretchr/testify/require"
)

func appendU30(buf []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf = append(buf, b|0x80)
		} else {
			buf = append(buf, b)
			break
		}
	}
	return buf
}

func minimalABC() []byte {
	buf := []byte{16, 0, 46, 0}
	for i := 0; i < 7; i++ {
		buf = appendU30(buf, 1)
	}
	buf = appendU30(buf, 0) // methods
	buf = appendU30(buf, 0) // metadata
	buf = appendU30(buf, 0) // classes
	buf = appendU30(buf, 0) // scripts
	buf = appendU30(buf, 0) // bodies
	return buf
}

type stubRunner struct{ calls int }

func (s *stubRunner) RunInitializer(m *class.Method, receiver values.Object) error {
	s.calls++
	return nil
}

func TestDoABCCorruptDataReturns1107(t *testing.T) {
	d := New(nil)
	_, err := d.DoABC([]byte{1, 2, 3}, 0, &stubRunner{})
	require.ErrorContains(t, err, "Error #1107")
}

func TestDoABCMinimalSucceeds(t *testing.T) {
	d := New(nil)
	scripts, err := d.DoABC(minimalABC(), 0, &stubRunner{})
	require.NoError(t, err)
	require.Empty(t, scripts)
}

func TestGetClassWalksParentChain(t *testing.T) {
	parent := New(nil)
	child := New(parent)

	qn := names.NewQName(names.New(names.KindPublic, "app"), "Widget")
	parent.registerClass(class.NewClass(qn, nil))

	mn := names.NewMultiname("Widget", names.New(names.KindPublic, "app"))
	c, ok, err := child.GetClass(mn)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, qn, c.Name)
}

func TestGetClassNotFound(t *testing.T) {
	d := New(nil)
	mn := names.NewMultiname("Missing", names.New(names.KindPublic, ""))
	_, ok, err := d.GetClass(mn)
	require.NoError(t, err)
	require.False(t, ok)
}

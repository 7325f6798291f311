package abcfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// u30 appends a value in the ABC unsigned-LEB128 encoding.
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

func minimalHeader() []byte {
	buf := []byte{16, 0, 46, 0} // minor=16, major=46
	for i := 0; i < 7; i++ {
		buf = appendU30(buf, 1) // each pool count=1 (index 0 implicit, so zero entries)
	}
	buf = appendU30(buf, 0) // method count
	buf = appendU30(buf, 0) // metadata count
	buf = appendU30(buf, 0) // class count
	buf = appendU30(buf, 0) // script count
	buf = appendU30(buf, 0) // method body count
	return buf
}

func TestDecodeMinimalFile(t *testing.T) {
	dec := NewReferenceDecoder()
	f, err := dec.Decode(minimalHeader())
	require.NoError(t, err)
	require.Equal(t, uint16(16), f.MinorVersion)
	require.Equal(t, uint16(46), f.MajorVersion)
	require.Empty(t, f.Methods)
	require.Empty(t, f.Scripts)
}

func TestDecodeTruncatedReturnsError(t *testing.T) {
	dec := NewReferenceDecoder()
	_, err := dec.Decode([]byte{1, 2, 3})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeStringPool(t *testing.T) {
	buf := []byte{16, 0, 46, 0}
	buf = appendU30(buf, 1) // ints
	buf = appendU30(buf, 1) // uints
	buf = appendU30(buf, 1) // doubles
	buf = appendU30(buf, 2) // strings: index0 implicit + "hi"
	buf = append(buf, appendU30(nil, 2)...)
	buf = append(buf, []byte("hi")...)
	buf = appendU30(buf, 1) // namespaces
	buf = appendU30(buf, 1) // ns sets
	buf = appendU30(buf, 1) // multinames
	buf = appendU30(buf, 0) // methods
	buf = appendU30(buf, 0) // metadata
	buf = appendU30(buf, 0) // classes
	buf = appendU30(buf, 0) // scripts
	buf = appendU30(buf, 0) // bodies

	dec := NewReferenceDecoder()
	f, err := dec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, "hi", f.String(1))
	require.Equal(t, "", f.String(0))
}

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorruptABCLiteralText(t *testing.T) {
	err := NewCorruptABC()
	require.Equal(t, "Error #1107: The ABC data is corrupt, attempt to read out of bounds.", err.Error())
}

func TestNativeErrorUnwrap(t *testing.T) {
	wrapped := Wrap(ErrStackUnderflow, "pop", 42)
	require.True(t, errors.Is(wrapped, ErrStackUnderflow))
	require.ErrorContains(t, wrapped, "ip=42")
}

func TestWrapNilIsNil(t *testing.T) {
	require.NoError(t, Wrap(nil, "x", 0))
}

func TestNewNumberedSealedProperty(t *testing.T) {
	err := NewNumbered(CodeSealedClassProperty, "y")
	require.Equal(t, KindReferenceError, err.Kind)
	require.Contains(t, err.Error(), "#1056")
	require.Contains(t, err.Error(), "y")
}

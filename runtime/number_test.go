package runtime

import (
	"testing"

	avmerrors "github.com/flashcore/avm2/errors"
	"github.com/stretchr/testify/require"
)

func TestToStringRadixScenarios(t *testing.T) {
	s, err := ToStringRadix(255, 16)
	require.NoError(t, err)
	require.Equal(t, "ff", s)

	s, err = ToStringRadix(-10, 2)
	require.NoError(t, err)
	require.Equal(t, "-1010", s)

	s, err = ToStringRadix(36, 36)
	require.NoError(t, err)
	require.Equal(t, "10", s)
}

func TestToStringRadixOutOfRangeThrows(t *testing.T) {
	_, err := ToStringRadix(37, 37)
	require.Error(t, err)
	avmErr, ok := err.(*avmerrors.AVMError)
	require.True(t, ok)
	require.Equal(t, avmerrors.CodeRadixRange, avmErr.Number)
}

func TestToFixedScenarios(t *testing.T) {
	s, err := ToFixed(1.005, 2)
	require.NoError(t, err)
	require.Equal(t, "1.00", s)

	s, err = ToFixed(3.14159, 2)
	require.NoError(t, err)
	require.Equal(t, "3.14", s)
}

func TestToFixedOutOfRangeThrows(t *testing.T) {
	_, err := ToFixed(0, 21)
	require.Error(t, err)
	avmErr, ok := err.(*avmerrors.AVMError)
	require.True(t, ok)
	require.Equal(t, avmerrors.CodeFractionDigitsRange, avmErr.Number)
}

func TestToExponentialScenarios(t *testing.T) {
	s, err := ToExponential(0, 0)
	require.NoError(t, err)
	require.Equal(t, "0e+0", s)

	s, err = ToExponential(12345, 2)
	require.NoError(t, err)
	require.Equal(t, "1.23e+4", s)

	s, err = ToExponential(0.0001234, 3)
	require.NoError(t, err)
	require.Equal(t, "1.234e-4", s)
}

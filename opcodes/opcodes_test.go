package opcodes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeStringKnown(t *testing.T) {
	require.Equal(t, "add", OpAdd.String())
	require.Equal(t, "getproperty", OpGetProperty.String())
	require.Equal(t, "ifstricteq", OpIfStrictEq.String())
}

func TestOpcodeStringUnknownFallsBackToHex(t *testing.T) {
	require.Equal(t, "op(0xff)", Opcode(0xFF).String())
}

func TestInstructionCarriesOperandsAndCases(t *testing.T) {
	in := Instruction{Opcode: OpLookupSwitch, Offset: 12, Operands: []int32{3}, Cases: []int32{20, 24, 30}}
	require.Equal(t, OpLookupSwitch, in.Opcode)
	require.Len(t, in.Cases, 3)
}

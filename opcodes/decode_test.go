package opcodes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleSequence(t *testing.T) {
	// pushbyte 5; pushbyte 7; add; returnvalue
	code := []byte{byte(OpPushByte), 5, byte(OpPushByte), 7, byte(OpAdd), byte(OpReturnValue)}
	ins, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, ins, 4)
	require.Equal(t, OpPushByte, ins[0].Opcode)
	require.Equal(t, int32(5), ins[0].Operands[0])
	require.Equal(t, OpAdd, ins[2].Opcode)
	require.Equal(t, OpReturnValue, ins[3].Opcode)
}

func TestDecodeU30MultiByteOperand(t *testing.T) {
	// pushint with constant index 300 (u30 varint: 0xAC, 0x02)
	code := []byte{byte(OpPushInt), 0xAC, 0x02}
	ins, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, ins, 1)
	require.Equal(t, int32(300), ins[0].Operands[0])
}

func TestDecodeLookupSwitch(t *testing.T) {
	// default offset 0, case count 1, two s24 case offsets
	code := []byte{byte(OpLookupSwitch), 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	ins, err := Decode(code)
	require.NoError(t, err)
	require.Len(t, ins, 1)
	require.Len(t, ins[0].Cases, 3)
}

func TestDecodeTruncatedOperandErrors(t *testing.T) {
	code := []byte{byte(OpPushByte)}
	_, err := Decode(code)
	require.Error(t, err)
}

func TestDecodeNegativeBranchOffset(t *testing.T) {
	// jump -1 encoded as s24 0xFFFFFF
	code := []byte{byte(OpJump), 0xFF, 0xFF, 0xFF}
	ins, err := Decode(code)
	require.NoError(t, err)
	require.Equal(t, int32(-1), ins[0].Operands[0])
}

package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCodeItem(registers, ins, outs, tries uint16, debugInfoOff uint32, insns []byte) []byte {
	buf := make([]byte, headerSize+len(insns))
	le := func(off int, v uint32, size int) {
		for i := 0; i < size; i++ {
			buf[off+i] = byte(v >> (8 * i))
		}
	}
	le(0, uint32(registers), 2)
	le(2, uint32(ins), 2)
	le(4, uint32(outs), 2)
	le(6, uint32(tries), 2)
	le(8, debugInfoOff, 4)
	le(12, uint32(len(insns)/2), 4)
	copy(buf[headerSize:], insns)
	return buf
}

func TestParseCodeItemHeader(t *testing.T) {
	insns := []byte{0x00, 0x00} // one nop (2 bytes = 1 code unit)
	buf := buildCodeItem(4, 1, 0, 0, 0, insns)

	item, diags, err := ParseCodeItem(buf)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, uint16(4), item.RegistersSize)
	assert.Equal(t, uint32(1), item.InsnsSize)
	require.Len(t, item.Instructions, 1)
}

func TestParseCodeItemWithBranchLabel(t *testing.T) {
	// nop; nop; goto -2 units (back to the first nop, byte offset 0)
	insns := []byte{0x00, 0x00, 0x00, 0x00, 0x28, 0xFE}
	buf := buildCodeItem(1, 0, 0, 0, 0, insns)

	item, diags, err := ParseCodeItem(buf)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, item.Instructions, 3)

	name, ok := item.Labels.Label(0)
	require.True(t, ok)
	assert.Equal(t, "L0", name)
}

func TestParseCodeItemDecodeFailureStopsMethod(t *testing.T) {
	insns := []byte{0x00, 0x00, 0x73, 0x00} // nop, then an unknown opcode
	buf := buildCodeItem(1, 0, 0, 0, 0, insns)

	item, diags, err := ParseCodeItem(buf)
	require.NoError(t, err)
	require.Len(t, item.Instructions, 1)
	require.NotEmpty(t, diags)
}

func TestParseCodeItemTruncatedHeader(t *testing.T) {
	_, _, err := ParseCodeItem([]byte{0, 0, 0})
	require.Error(t, err)
}

func TestParseCodeItemOutOfRangeBranch(t *testing.T) {
	// goto +100 units, far past the 1-unit stream
	insns := []byte{0x28, 0x64}
	buf := buildCodeItem(1, 0, 0, 0, 0, insns)

	_, diags, err := ParseCodeItem(buf)
	require.NoError(t, err)
	require.NotEmpty(t, diags)
}

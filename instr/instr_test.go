package instr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool struct {
	strings []string
	types   []string
	fields  map[uint16]string
	methods map[uint16]string
	protos  map[uint16]string
}

func (p fakePool) String(idx uint32) (string, error) {
	if int(idx) >= len(p.strings) {
		return "", fmt.Errorf("string %d out of range", idx)
	}
	return p.strings[idx], nil
}
func (p fakePool) Type(idx uint16) (string, error) {
	if int(idx) >= len(p.types) {
		return "", fmt.Errorf("type %d out of range", idx)
	}
	return p.types[idx], nil
}
func (p fakePool) FieldRef(idx uint16) (string, error)        { return p.fields[idx], nil }
func (p fakePool) MethodRef(idx uint16) (string, error)       { return p.methods[idx], nil }
func (p fakePool) ProtoRef(idx uint16) (string, error)        { return p.protos[idx], nil }
func (p fakePool) CallSiteRef(idx uint16) (string, error)     { return "call_site", nil }
func (p fakePool) MethodHandleRef(idx uint16) (string, error) { return "method_handle", nil }

type fakeLabels map[int]string

func (l fakeLabels) Label(pc int) (string, bool) {
	name, ok := l[pc]
	return name, ok
}

func TestDecodeConst4(t *testing.T) {
	inst, err := Decode([]byte{0x12, 0x21})
	require.NoError(t, err)
	c4, ok := inst.(Const4)
	require.True(t, ok)
	assert.Equal(t, byte(1), c4.Dst)
	assert.Equal(t, int8(2), c4.Value)
	assert.Equal(t, 2, SizeBytesOf(inst))

	out, err := Render(inst, fakePool{}, 0, fakeLabels{})
	require.NoError(t, err)
	assert.Equal(t, "const/4 v1 2", out)
}

func TestDecodeConstString(t *testing.T) {
	inst, err := Decode([]byte{0x1A, 0x08, 0x00, 0x00})
	require.NoError(t, err)
	cs, ok := inst.(ConstString)
	require.True(t, ok)
	assert.Equal(t, byte(8), cs.Dst)
	assert.Equal(t, uint16(0), cs.StringIdx)

	out, err := Render(inst, fakePool{strings: []string{"hi"}}, 0, fakeLabels{})
	require.NoError(t, err)
	assert.Equal(t, `const-string v8 "hi"`, out)
}

func TestDecodeInvokeDirect(t *testing.T) {
	inst, err := Decode([]byte{0x70, 0x10, 0x08, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	id, ok := inst.(InvokeDirect)
	require.True(t, ok)
	assert.Equal(t, byte(1), id.ArgCnt)
	assert.Equal(t, byte(1), id.Args[0])
	assert.Equal(t, uint16(8), id.MethodIdx)
	assert.Equal(t, 6, SizeBytesOf(inst))

	pool := fakePool{methods: map[uint16]string{8: "Lfoo/Bar;-><init>()V"}}
	out, err := Render(inst, pool, 0, fakeLabels{})
	require.NoError(t, err)
	assert.Equal(t, "invoke-direct v1 Lfoo/Bar;-><init>()V", out)
}

func TestDecodeGoto(t *testing.T) {
	inst, err := Decode([]byte{0x28, 0xF0})
	require.NoError(t, err)
	g, ok := inst.(Goto)
	require.True(t, ok)
	assert.Equal(t, int8(-16), g.Offset)
	assert.Equal(t, 2, SizeBytesOf(inst))

	labels := fakeLabels{-32: "L0"} // pc_bytes(0) + 2*offset(-16) = -32
	out, err := Render(inst, fakePool{}, 0, labels)
	require.NoError(t, err)
	assert.Equal(t, "goto :L0", out)
}

func TestRenderMissingLabel(t *testing.T) {
	inst, err := Decode([]byte{0x28, 0xF0})
	require.NoError(t, err)
	_, err = Render(inst, fakePool{}, 0, fakeLabels{})
	require.Error(t, err)
}

func TestDecodeUnknownOpcode(t *testing.T) {
	// 0x73 and 0x79-0x7A and 0xE3-0xF9 are holes in the opcode space.
	for _, op := range []byte{0x73, 0x79, 0x7A, 0xE3, 0xF9} {
		_, err := SizeBytes(op)
		assert.Error(t, err, "opcode 0x%02X should be undefined", op)
		assert.False(t, Defined(op))
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode([]byte{0x14, 0x00, 0x01}) // const needs 6 bytes, only 3 given
	require.Error(t, err)
}

func TestDecodeEmptyBuffer(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
}

// TestOpcodeCoverage exercises every defined opcode through Decode with a
// correctly-sized zero-filled buffer and checks it decodes without error
// and reports a consistent size.
func TestOpcodeCoverage(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		size, err := SizeBytes(byte(op))
		if err != nil {
			continue // undefined opcode hole
		}
		buf := make([]byte, size)
		buf[0] = byte(op)
		inst, err := Decode(buf)
		require.NoErrorf(t, err, "opcode 0x%02X failed to decode", op)
		assert.Equal(t, Opcode(op), inst.Opcode())
		assert.Equal(t, size, SizeBytesOf(inst))
	}
}

// TestSizeRoundTrip checks that DecodeStream, run over a concatenation of
// every defined opcode's zero-filled instruction, advances the cursor by
// exactly each instruction's own size and recovers every opcode in order.
func TestSizeRoundTrip(t *testing.T) {
	var stream []byte
	var want []byte
	for op := 0; op <= 0xFF; op++ {
		size, err := SizeBytes(byte(op))
		if err != nil {
			continue
		}
		buf := make([]byte, size)
		buf[0] = byte(op)
		stream = append(stream, buf...)
		want = append(want, byte(op))
	}

	decoded, diag := DecodeStream(stream)
	require.Nil(t, diag)
	require.Len(t, decoded, len(want))
	for i, d := range decoded {
		assert.Equal(t, Opcode(want[i]), d.Inst.Opcode())
	}
}

func TestDecodeStreamStopsAtFailure(t *testing.T) {
	stream := []byte{0x00, 0x00, 0x00, 0x00, 0x73} // nop, nop, unknown opcode
	decoded, diag := DecodeStream(stream)
	require.NotNil(t, diag)
	assert.Equal(t, 4, diag.PC)
	assert.Len(t, decoded, 2)
}

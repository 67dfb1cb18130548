package pool

import (
	"testing"

	"github.com/arloliu/dex2smali/leb128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrings(t *testing.T) {
	hi := leb128.WriteMUTF8String("hi")
	bye := leb128.WriteMUTF8String("bye")

	var buf []byte
	off1 := 8 // two u32 string_id offsets
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0)
	dataOff1 := off1
	dataOff2 := off1 + len(hi)
	buf[0] = byte(dataOff1)
	buf[4] = byte(dataOff2)
	buf = append(buf, hi...)
	buf = append(buf, bye...)

	strs, diags := ParseStrings(buf, 0, 2)
	require.Empty(t, diags)
	assert.Equal(t, []string{"hi", "bye"}, strs)
}

func TestParseStringsDanglingOffset(t *testing.T) {
	buf := make([]byte, 4)
	buf[0] = 0xFF // offset far out of range
	strs, diags := ParseStrings(buf, 0, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, "", strs[0])
}

func TestParseTypes(t *testing.T) {
	strs := []string{"Ljava/lang/String;", "I"}
	buf := []byte{0, 0, 0, 0, 1, 0, 0, 0}
	types, diags := ParseTypes(buf, 0, 2, strs)
	require.Empty(t, diags)
	assert.Equal(t, []string{"Ljava/lang/String;", "I"}, types)
}

func TestParseTypesOutOfRange(t *testing.T) {
	strs := []string{"I"}
	buf := []byte{5, 0, 0, 0}
	types, diags := ParseTypes(buf, 0, 1, strs)
	require.Len(t, diags, 1)
	assert.Equal(t, "", types[0])
}

func TestParseFieldIDs(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00}
	items, diags := ParseFieldIDs(buf, 0, 1)
	require.Empty(t, diags)
	assert.Equal(t, FieldID{ClassIdx: 1, TypeIdx: 2, NameIdx: 3}, items[0])
}

func TestParseMethodIDs(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00}
	items, diags := ParseMethodIDs(buf, 0, 1)
	require.Empty(t, diags)
	assert.Equal(t, MethodID{ClassIdx: 1, ProtoIdx: 2, NameIdx: 3}, items[0])
}

func TestParseProtoIDs(t *testing.T) {
	buf := []byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		0, 0, 0, 0,
	}
	items, diags := ParseProtoIDs(buf, 0, 1)
	require.Empty(t, diags)
	assert.Equal(t, ProtoID{ShortyIdx: 1, ReturnTypeIdx: 2, ParametersOff: 0}, items[0])
}

func TestParseClassDefs(t *testing.T) {
	buf := make([]byte, classDefSize)
	buf[0] = 7 // class_idx
	items, diags := ParseClassDefs(buf, 0, 1)
	require.Empty(t, diags)
	assert.Equal(t, uint32(7), items[0].ClassIdx)
}

func TestParseTypeList(t *testing.T) {
	buf := []byte{2, 0, 0, 0, 1, 0, 2, 0}
	items, err := ParseTypeList(buf, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint16(1), items[0].TypeIdx)
	assert.Equal(t, uint16(2), items[1].TypeIdx)
}

func TestParseMethodHandles(t *testing.T) {
	buf := []byte{1, 0, 0, 0, 5, 0, 0, 0}
	items, diags := ParseMethodHandles(buf, 0, 1)
	require.Empty(t, diags)
	assert.Equal(t, MethodHandle{MethodHandleType: 1, FieldOrMethodID: 5}, items[0])
}

func TestParseMapList(t *testing.T) {
	var buf []byte
	buf = append(buf, 2, 0, 0, 0) // two map_item entries
	// entry 0: type=0x1007 (call_site_id), size=3, offset=0x100
	buf = append(buf, 0x07, 0x10, 0, 0, 3, 0, 0, 0, 0x00, 0x01, 0, 0)
	// entry 1: type=0x1008 (method_handle), size=2, offset=0x200
	buf = append(buf, 0x08, 0x10, 0, 0, 2, 0, 0, 0, 0x00, 0x02, 0, 0)

	items, err := ParseMapList(buf, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, MapItem{Type: MapTypeCallSiteID, Size: 3, Offset: 0x100}, items[0])
	assert.Equal(t, MapItem{Type: MapTypeMethodHandle, Size: 2, Offset: 0x200}, items[1])
}

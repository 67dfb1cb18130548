package dex

import (
	"testing"

	"github.com/arloliu/dex2smali/leb128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalDex assembles a tiny but structurally valid DEX byte blob:
// one string "Lfoo;", used as both a type and a field/method's declaring
// class, with one proto (V, no params), one field_id, and one method_id.
func buildMinimalDex(t *testing.T) []byte {
	t.Helper()

	const headerSize = 112

	// Layout (after the header): string_ids(3*4) | type_ids(1*4) |
	// proto_ids(1*12) | field_ids(1*8) | method_ids(1*8) | string data
	// ("Lfoo;", "bar", "V") | type_list for proto (none, params_off=0).
	stringIDsOff := headerSize
	typeIDsOff := stringIDsOff + 3*4
	protoIDsOff := typeIDsOff + 1*4
	fieldIDsOff := protoIDsOff + 1*12
	methodIDsOff := fieldIDsOff + 1*8
	stringDataOff := methodIDsOff + 1*8

	classStr := leb128.WriteMUTF8String("Lfoo;")
	nameStr := leb128.WriteMUTF8String("bar")
	voidStr := leb128.WriteMUTF8String("V")

	classStrOff := stringDataOff
	nameStrOff := classStrOff + len(classStr)
	voidStrOff := nameStrOff + len(nameStr)

	body := make([]byte, headerSize)

	// string_ids
	writeU32At := func(off int, v uint32) {
		for len(body) < off+4 {
			body = append(body, 0)
		}
		body[off] = byte(v)
		body[off+1] = byte(v >> 8)
		body[off+2] = byte(v >> 16)
		body[off+3] = byte(v >> 24)
	}
	writeU16At := func(off int, v uint16) {
		for len(body) < off+2 {
			body = append(body, 0)
		}
		body[off] = byte(v)
		body[off+1] = byte(v >> 8)
	}

	writeU32At(stringIDsOff+0, uint32(classStrOff))
	writeU32At(stringIDsOff+4, uint32(nameStrOff))
	writeU32At(stringIDsOff+8, uint32(voidStrOff))

	// type_ids: [0] -> string 0 ("Lfoo;")
	writeU32At(typeIDsOff, 0)

	// proto_ids: shorty_idx=2 ("V", unused by ProtoRef), return_type_idx=0
	// (the only type_id entry, "Lfoo;"). This fixture only has one type
	// registered, so return type and class descriptor intentionally
	// coincide; the test checks rendering plumbing, not realistic
	// descriptors.
	writeU32At(protoIDsOff+0, 2)
	writeU32At(protoIDsOff+4, 0)
	writeU32At(protoIDsOff+8, 0) // parameters_off = 0 (no params)

	// field_ids: class_idx=0, type_idx=0, name_idx=1
	writeU16At(fieldIDsOff+0, 0)
	writeU16At(fieldIDsOff+2, 0)
	writeU32At(fieldIDsOff+4, 1)

	// method_ids: class_idx=0, proto_idx=0, name_idx=1
	writeU16At(methodIDsOff+0, 0)
	writeU16At(methodIDsOff+2, 0)
	writeU32At(methodIDsOff+4, 1)

	body = append(body, classStr...)
	body = append(body, nameStr...)
	body = append(body, voidStr...)

	fileSize := len(body)

	// Now fill in the header.
	copy(body[0:8], []byte("dex\n035\x00"))
	writeU32At(8, 0)   // checksum
	// signature 12:32 left zero
	writeU32At(32, uint32(fileSize))
	writeU32At(36, 112) // header_size
	writeU32At(40, 0x12345678)
	writeU32At(44, 0) // link_size
	writeU32At(48, 0) // link_off
	writeU32At(52, 0) // map_off (no map_list in this fixture)
	writeU32At(56, 3) // string_ids_size
	writeU32At(60, uint32(stringIDsOff))
	writeU32At(64, 1) // type_ids_size
	writeU32At(68, uint32(typeIDsOff))
	writeU32At(72, 1) // proto_ids_size
	writeU32At(76, uint32(protoIDsOff))
	writeU32At(80, 1) // field_ids_size
	writeU32At(84, uint32(fieldIDsOff))
	writeU32At(88, 1) // method_ids_size
	writeU32At(92, uint32(methodIDsOff))
	writeU32At(96, 0)  // class_defs_size
	writeU32At(100, 0) // class_defs_off
	writeU32At(104, uint32(fileSize))
	writeU32At(108, 0) // data_off

	return body
}

func TestParseMinimalDex(t *testing.T) {
	buf := buildMinimalDex(t)
	d, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, d.Diagnostics)

	assert.Equal(t, []string{"Lfoo;", "bar", "V"}, d.Strings)
	assert.Equal(t, []string{"Lfoo;"}, d.Types)

	typ, err := d.Type(0)
	require.NoError(t, err)
	assert.Equal(t, "Lfoo;", typ)

	field, err := d.FieldRef(0)
	require.NoError(t, err)
	assert.Equal(t, "Lfoo;->bar:Lfoo;", field)

	method, err := d.MethodRef(0)
	require.NoError(t, err)
	assert.Equal(t, "Lfoo;->bar()Lfoo;", method)

	proto, err := d.ProtoRef(0)
	require.NoError(t, err)
	assert.Equal(t, "()Lfoo;", proto)
}

func TestParseHeaderFailureAborts(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestTableIdxOutOfRange(t *testing.T) {
	buf := buildMinimalDex(t)
	d, err := Parse(buf)
	require.NoError(t, err)

	_, err = d.FieldRef(99)
	require.Error(t, err)
	_, err = d.Type(99)
	require.Error(t, err)
}

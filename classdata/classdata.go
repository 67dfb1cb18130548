// Package classdata parses the class_data_item structure: four
// delta-encoded, variable-length sequences of fields and methods that
// together describe everything a class declares.
package classdata

import (
	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/leb128"
)

// EncodedField is one entry of a static_fields or instance_fields list.
// FieldIdx is already reconstructed to its absolute value; the on-disk
// encoding only ever carries the difference from the previous entry's
// index.
type EncodedField struct {
	FieldIdx    uint32
	AccessFlags uint32
}

// EncodedMethod is one entry of a direct_methods or virtual_methods list.
type EncodedMethod struct {
	MethodIdx   uint32
	AccessFlags uint32
	CodeOff     uint32
}

// ClassDataItem is the fully decoded class_data_item: the four entry
// sequences, each already sorted in increasing index order on disk (the
// format guarantees this; this package does not re-sort).
type ClassDataItem struct {
	StaticFields   []EncodedField
	InstanceFields []EncodedField
	DirectMethods  []EncodedMethod
	VirtualMethods []EncodedMethod
}

// Parse decodes a class_data_item starting at the beginning of buf. It
// returns the number of bytes consumed alongside the item, since
// class_data_item has no length prefix of its own — callers must track
// the cursor themselves (see spec.md §4.5 and the pool's class_data_off).
func Parse(buf []byte) (*ClassDataItem, int, error) {
	p := 0

	staticFieldsSize, n, err := readCount(buf, p, "static_fields_size")
	if err != nil {
		return nil, 0, err
	}
	p += n

	instanceFieldsSize, n, err := readCount(buf, p, "instance_fields_size")
	if err != nil {
		return nil, 0, err
	}
	p += n

	directMethodsSize, n, err := readCount(buf, p, "direct_methods_size")
	if err != nil {
		return nil, 0, err
	}
	p += n

	virtualMethodsSize, n, err := readCount(buf, p, "virtual_methods_size")
	if err != nil {
		return nil, 0, err
	}
	p += n

	item := &ClassDataItem{}

	item.StaticFields, p, err = readFields(buf, p, int(staticFieldsSize))
	if err != nil {
		return nil, 0, err
	}
	item.InstanceFields, p, err = readFields(buf, p, int(instanceFieldsSize))
	if err != nil {
		return nil, 0, err
	}
	item.DirectMethods, p, err = readMethods(buf, p, int(directMethodsSize))
	if err != nil {
		return nil, 0, err
	}
	item.VirtualMethods, p, err = readMethods(buf, p, int(virtualMethodsSize))
	if err != nil {
		return nil, 0, err
	}

	return item, p, nil
}

func readCount(buf []byte, offset int, field string) (uint32, int, error) {
	if offset >= len(buf) {
		return 0, 0, dexerr.NewTruncated(field, 1, len(buf)-offset)
	}
	v, n, err := leb128.DecodeULEB128(buf[offset:])
	if err != nil {
		return 0, 0, err
	}
	return uint32(v), n, nil
}

// readFields decodes count EncodedField entries, each a field_idx_diff
// (added to the previous absolute field_idx, 0 for the first entry) and
// an access_flags value, both ULEB128.
func readFields(buf []byte, offset, count int) ([]EncodedField, int, error) {
	fields := make([]EncodedField, 0, count)
	var prev uint32
	for i := 0; i < count; i++ {
		diff, n, err := leb128.DecodeULEB128(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		flags, n, err := leb128.DecodeULEB128(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		idx := prev + uint32(diff)
		fields = append(fields, EncodedField{FieldIdx: idx, AccessFlags: uint32(flags)})
		prev = idx
	}
	return fields, offset, nil
}

// readMethods decodes count EncodedMethod entries: method_idx_diff,
// access_flags, code_off, all ULEB128.
func readMethods(buf []byte, offset, count int) ([]EncodedMethod, int, error) {
	methods := make([]EncodedMethod, 0, count)
	var prev uint32
	for i := 0; i < count; i++ {
		diff, n, err := leb128.DecodeULEB128(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		flags, n, err := leb128.DecodeULEB128(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		codeOff, n, err := leb128.DecodeULEB128(buf[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		idx := prev + uint32(diff)
		methods = append(methods, EncodedMethod{MethodIdx: idx, AccessFlags: uint32(flags), CodeOff: uint32(codeOff)})
		prev = idx
	}
	return methods, offset, nil
}

// Encode re-encodes item back into delta-encoded class_data_item bytes.
// Used by the round-trip property in spec.md §8: decode then re-encode
// must reproduce the original absolute indices after a second decode.
func Encode(item *ClassDataItem) []byte {
	var out []byte
	out = append(out, leb128.EncodeULEB128(uint64(len(item.StaticFields)))...)
	out = append(out, leb128.EncodeULEB128(uint64(len(item.InstanceFields)))...)
	out = append(out, leb128.EncodeULEB128(uint64(len(item.DirectMethods)))...)
	out = append(out, leb128.EncodeULEB128(uint64(len(item.VirtualMethods)))...)

	out = append(out, encodeFields(item.StaticFields)...)
	out = append(out, encodeFields(item.InstanceFields)...)
	out = append(out, encodeMethods(item.DirectMethods)...)
	out = append(out, encodeMethods(item.VirtualMethods)...)

	return out
}

func encodeFields(fields []EncodedField) []byte {
	var out []byte
	var prev uint32
	for _, f := range fields {
		out = append(out, leb128.EncodeULEB128(uint64(f.FieldIdx-prev))...)
		out = append(out, leb128.EncodeULEB128(uint64(f.AccessFlags))...)
		prev = f.FieldIdx
	}
	return out
}

func encodeMethods(methods []EncodedMethod) []byte {
	var out []byte
	var prev uint32
	for _, m := range methods {
		out = append(out, leb128.EncodeULEB128(uint64(m.MethodIdx-prev))...)
		out = append(out, leb128.EncodeULEB128(uint64(m.AccessFlags))...)
		out = append(out, leb128.EncodeULEB128(uint64(m.CodeOff))...)
		prev = m.MethodIdx
	}
	return out
}

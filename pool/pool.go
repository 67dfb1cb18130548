// Package pool parses the DEX pool sections: strings, types, proto_ids,
// field_ids, method_ids, class_defs, method_handles, and call_site_ids.
//
// Per-entry failures never abort a pool: a bad entry is recorded as a
// Diagnostic and the pool gets a skipped (strings, types) or zero-value
// (everything else) placeholder at that position, so absolute indices into
// the pool stay stable for every other entry. This mirrors spec.md §4.3's
// rationale: DEX files in the wild occasionally have dangling pool
// entries, and a best-effort Dex lets later lookups report a precise
// TableIdx error instead of the whole parse failing.
package pool

import (
	"fmt"

	"github.com/arloliu/dex2smali/leb128"
)

// Diagnostic records a per-entry pool parse failure that was downgraded to
// "skip and continue."
type Diagnostic struct {
	Pool  string
	Index int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%d]: %v", d.Pool, d.Index, d.Err)
}

// ParseStrings reads count string_id entries starting at off: each is a u32
// file offset into the string data area, dereferenced through
// leb128.ReadMUTF8String. A dangling offset produces an empty string at
// that index plus a Diagnostic; the entry is not dropped from the slice so
// indices of later strings are unaffected.
func ParseStrings(buf []byte, off int, count int) ([]string, []Diagnostic) {
	strs := make([]string, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		dataOff, err := leb128.ReadU32LE(buf, off+i*4)
		if err != nil {
			diags = append(diags, Diagnostic{"strings", i, err})
			continue
		}
		s, _, err := leb128.ReadMUTF8String(buf, int(dataOff))
		if err != nil {
			diags = append(diags, Diagnostic{"strings", i, err})
			continue
		}
		strs[i] = s
	}
	return strs, diags
}

// ParseTypes reads count type_id entries: each is a u32 index into the
// already-populated strings pool. An out-of-range descriptor index
// produces an empty entry plus a Diagnostic, per spec.md §3's Type pool
// lifecycle note.
func ParseTypes(buf []byte, off int, count int, strings []string) ([]string, []Diagnostic) {
	types := make([]string, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		idx, err := leb128.ReadU32LE(buf, off+i*4)
		if err != nil {
			diags = append(diags, Diagnostic{"types", i, err})
			continue
		}
		if int(idx) >= len(strings) {
			diags = append(diags, Diagnostic{"types", i, fmt.Errorf("descriptor index %d out of bounds for %d strings", idx, len(strings))})
			continue
		}
		types[i] = strings[idx]
	}
	return types, diags
}

// ProtoID is a parsed proto_id_item: (shorty_idx -> string, return_type_idx
// -> type, parameters_off -> optional type_list).
type ProtoID struct {
	ShortyIdx     uint32
	ReturnTypeIdx uint32
	ParametersOff uint32
}

const protoIDSize = 12

// ParseProtoIDs reads count 12-byte proto_id_item entries starting at off.
func ParseProtoIDs(buf []byte, off int, count int) ([]ProtoID, []Diagnostic) {
	items := make([]ProtoID, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		entryOff := off + i*protoIDSize
		shorty, err1 := leb128.ReadU32LE(buf, entryOff)
		ret, err2 := leb128.ReadU32LE(buf, entryOff+4)
		params, err3 := leb128.ReadU32LE(buf, entryOff+8)
		if err := firstErr(err1, err2, err3); err != nil {
			diags = append(diags, Diagnostic{"proto_ids", i, err})
			continue
		}
		items[i] = ProtoID{ShortyIdx: shorty, ReturnTypeIdx: ret, ParametersOff: params}
	}
	return items, diags
}

// FieldID is a parsed field_id_item.
type FieldID struct {
	ClassIdx uint16
	TypeIdx  uint16
	NameIdx  uint32
}

const fieldIDSize = 8

// ParseFieldIDs reads count 8-byte field_id_item entries starting at off.
func ParseFieldIDs(buf []byte, off int, count int) ([]FieldID, []Diagnostic) {
	items := make([]FieldID, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		entryOff := off + i*fieldIDSize
		classIdx, err1 := leb128.ReadU16LE(buf, entryOff)
		typeIdx, err2 := leb128.ReadU16LE(buf, entryOff+2)
		nameIdx, err3 := leb128.ReadU32LE(buf, entryOff+4)
		if err := firstErr(err1, err2, err3); err != nil {
			diags = append(diags, Diagnostic{"field_ids", i, err})
			continue
		}
		items[i] = FieldID{ClassIdx: classIdx, TypeIdx: typeIdx, NameIdx: nameIdx}
	}
	return items, diags
}

// MethodID is a parsed method_id_item.
type MethodID struct {
	ClassIdx uint16
	ProtoIdx uint16
	NameIdx  uint32
}

const methodIDSize = 8

// ParseMethodIDs reads count 8-byte method_id_item entries starting at off.
func ParseMethodIDs(buf []byte, off int, count int) ([]MethodID, []Diagnostic) {
	items := make([]MethodID, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		entryOff := off + i*methodIDSize
		classIdx, err1 := leb128.ReadU16LE(buf, entryOff)
		protoIdx, err2 := leb128.ReadU16LE(buf, entryOff+2)
		nameIdx, err3 := leb128.ReadU32LE(buf, entryOff+4)
		if err := firstErr(err1, err2, err3); err != nil {
			diags = append(diags, Diagnostic{"method_ids", i, err})
			continue
		}
		items[i] = MethodID{ClassIdx: classIdx, ProtoIdx: protoIdx, NameIdx: nameIdx}
	}
	return items, diags
}

// ClassDef is a parsed 32-byte class_def_item.
type ClassDef struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32
}

const classDefSize = 32

// ParseClassDefs reads count 32-byte class_def_item entries starting at off.
func ParseClassDefs(buf []byte, off int, count int) ([]ClassDef, []Diagnostic) {
	items := make([]ClassDef, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		entryOff := off + i*classDefSize
		vals := make([]uint32, 8)
		var errs [8]error
		for j := 0; j < 8; j++ {
			vals[j], errs[j] = leb128.ReadU32LE(buf, entryOff+j*4)
		}
		if err := firstErr(errs[:]...); err != nil {
			diags = append(diags, Diagnostic{"class_defs", i, err})
			continue
		}
		items[i] = ClassDef{
			ClassIdx:        vals[0],
			AccessFlags:     vals[1],
			SuperclassIdx:   vals[2],
			InterfacesOff:   vals[3],
			SourceFileIdx:   vals[4],
			AnnotationsOff:  vals[5],
			ClassDataOff:    vals[6],
			StaticValuesOff: vals[7],
		}
	}
	return items, diags
}

// MethodHandle is a parsed method_handle_item: a type code paired with a
// field-or-method index whose interpretation depends on that type.
type MethodHandle struct {
	MethodHandleType uint16
	FieldOrMethodID  uint16
}

const methodHandleSize = 8

// ParseMethodHandles reads count method_handle_item entries starting at
// off. dex.Parse calls it once, eagerly, for the method_handle_item
// section it finds through the map_list.
func ParseMethodHandles(buf []byte, off int, count int) ([]MethodHandle, []Diagnostic) {
	items := make([]MethodHandle, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		entryOff := off + i*methodHandleSize
		typ, err1 := leb128.ReadU16LE(buf, entryOff)
		idx, err2 := leb128.ReadU16LE(buf, entryOff+4)
		if err := firstErr(err1, err2); err != nil {
			diags = append(diags, Diagnostic{"method_handles", i, err})
			continue
		}
		items[i] = MethodHandle{MethodHandleType: typ, FieldOrMethodID: idx}
	}
	return items, diags
}

// CallSiteID is a call_site_id_item: an offset to a call_site_item in the
// data section. The referenced encoded_array_item is not decoded (static
// values are an explicit non-goal); it is recorded only as a raw offset so
// InvokeCustom rendering has something to point at.
type CallSiteID struct {
	CallSiteOff uint32
}

// ParseCallSiteIDs reads count 4-byte call_site_id_item entries starting at off.
func ParseCallSiteIDs(buf []byte, off int, count int) ([]CallSiteID, []Diagnostic) {
	items := make([]CallSiteID, count)
	var diags []Diagnostic
	for i := 0; i < count; i++ {
		v, err := leb128.ReadU32LE(buf, off+i*4)
		if err != nil {
			diags = append(diags, Diagnostic{"call_site_ids", i, err})
			continue
		}
		items[i] = CallSiteID{CallSiteOff: v}
	}
	return items, diags
}

// TypeItem is one entry of a type_list (e.g. a method's parameter list).
type TypeItem struct {
	TypeIdx uint16
}

// ParseTypeList reads an unsized type_list structure: a u32 size followed
// by that many 2-byte type_item entries.
func ParseTypeList(buf []byte, off int) ([]TypeItem, error) {
	size, err := leb128.ReadU32LE(buf, off)
	if err != nil {
		return nil, err
	}
	items := make([]TypeItem, size)
	for i := uint32(0); i < size; i++ {
		idx, err := leb128.ReadU16LE(buf, off+4+int(i)*2)
		if err != nil {
			return nil, err
		}
		items[i] = TypeItem{TypeIdx: idx}
	}
	return items, nil
}

// Map item type codes for the two sections this package locates via
// map_list rather than a fixed header field: method_handle_item and
// call_site_id_item have no header size/offset pair of their own.
const (
	MapTypeCallSiteID   = 0x1007
	MapTypeMethodHandle = 0x1008
)

// MapItem is one entry of the map_list the DEX header's map_off points
// at: a section type code paired with its item count and file offset.
type MapItem struct {
	Type   uint16
	Size   uint32
	Offset uint32
}

// ParseMapList reads the map_list at off: a u32 entry count followed by
// that many 12-byte map_item records. Used to locate method_handles and
// call_site_ids, which (unlike the other pools) aren't sized/offset in
// the fixed header.
func ParseMapList(buf []byte, off int) ([]MapItem, error) {
	size, err := leb128.ReadU32LE(buf, off)
	if err != nil {
		return nil, err
	}
	items := make([]MapItem, size)
	for i := uint32(0); i < size; i++ {
		entryOff := off + 4 + int(i)*12
		typ, e1 := leb128.ReadU16LE(buf, entryOff)
		sz, e2 := leb128.ReadU32LE(buf, entryOff+4)
		o, e3 := leb128.ReadU32LE(buf, entryOff+8)
		if err := firstErr(e1, e2, e3); err != nil {
			return nil, err
		}
		items[i] = MapItem{Type: typ, Size: sz, Offset: o}
	}
	return items, nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

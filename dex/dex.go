// Package dex assembles the header and every pool into a single
// immutable Dex object, and implements instr.Pool so instructions can be
// rendered directly against it. Grounded on
// original_source/src/dex/mod.rs's Dex<'a> aggregate and its
// try_parse_from_bytes control flow: parse the header, then best-effort
// every pool, collecting a Diagnostic rather than aborting on any single
// pool entry's failure.
package dex

import (
	"fmt"

	"github.com/arloliu/dex2smali/classdata"
	"github.com/arloliu/dex2smali/code"
	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/header"
	"github.com/arloliu/dex2smali/pool"
)

// Diagnostic is a non-fatal finding recorded while parsing a Dex: a
// dangling pool entry, an out-of-range type index, a flagged header
// field. Stage names the originating component ("header", "strings",
// "class_defs", ...).
type Diagnostic struct {
	Stage  string
	Detail string
}

func (d Diagnostic) String() string { return fmt.Sprintf("%s: %s", d.Stage, d.Detail) }

// Dex is the fully parsed, read-only view of a DEX file: immutable after
// Parse returns, so it may be shared for concurrent rendering across
// classes (spec.md §5).
type Dex struct {
	Header *header.HeaderItem
	Raw    []byte

	Strings       []string
	Types         []string
	ProtoIDs      []pool.ProtoID
	FieldIDs      []pool.FieldID
	MethodIDs     []pool.MethodID
	ClassDefs     []pool.ClassDef
	MethodHandles []pool.MethodHandle
	CallSiteIDs   []pool.CallSiteID

	Diagnostics []Diagnostic
}

// Parse builds a Dex from a whole DEX file's bytes. Header parse failure
// aborts the whole operation (spec.md §7: "without a header, no other
// offsets are trustworthy"); every pool after that is parsed
// best-effort, each failure downgraded to a Diagnostic.
func Parse(buf []byte) (*Dex, error) {
	h, err := header.Parse(buf)
	if err != nil {
		return nil, err
	}

	d := &Dex{Header: h, Raw: buf}

	for _, diag := range h.Validate() {
		d.note("header", diag.String())
	}

	var diags []pool.Diagnostic
	d.Strings, diags = pool.ParseStrings(buf, int(h.StringIDsOff), int(h.StringIDsSize))
	d.collect("strings", diags)

	d.Types, diags = pool.ParseTypes(buf, int(h.TypeIDsOff), int(h.TypeIDsSize), d.Strings)
	d.collect("types", diags)

	d.ProtoIDs, diags = pool.ParseProtoIDs(buf, int(h.ProtoIDsOff), int(h.ProtoIDsSize))
	d.collect("proto_ids", diags)

	d.FieldIDs, diags = pool.ParseFieldIDs(buf, int(h.FieldIDsOff), int(h.FieldIDsSize))
	d.collect("field_ids", diags)

	d.MethodIDs, diags = pool.ParseMethodIDs(buf, int(h.MethodIDsOff), int(h.MethodIDsSize))
	d.collect("method_ids", diags)

	d.ClassDefs, diags = pool.ParseClassDefs(buf, int(h.ClassDefsOff), int(h.ClassDefsSize))
	d.collect("class_defs", diags)

	d.parseMapOnlyPools(buf, int(h.MapOff))

	return d, nil
}

// parseMapOnlyPools locates method_handles and call_site_ids through the
// map_list, since unlike the other pools they have no size/offset pair
// in the fixed header. A missing or malformed map_list just means those
// two pools stay empty; callers resolving an instruction's method-handle
// or call-site index then get a TableIdx diagnostic at render time.
func (d *Dex) parseMapOnlyPools(buf []byte, mapOff int) {
	if mapOff == 0 {
		return
	}
	items, err := pool.ParseMapList(buf, mapOff)
	if err != nil {
		d.note("map_list", err.Error())
		return
	}
	for _, item := range items {
		switch item.Type {
		case pool.MapTypeMethodHandle:
			handles, diags := pool.ParseMethodHandles(buf, int(item.Offset), int(item.Size))
			d.MethodHandles = handles
			d.collect("method_handles", diags)
		case pool.MapTypeCallSiteID:
			callSites, diags := pool.ParseCallSiteIDs(buf, int(item.Offset), int(item.Size))
			d.CallSiteIDs = callSites
			d.collect("call_site_ids", diags)
		}
	}
}

func (d *Dex) note(stage, detail string) {
	d.Diagnostics = append(d.Diagnostics, Diagnostic{Stage: stage, Detail: detail})
}

func (d *Dex) collect(stage string, diags []pool.Diagnostic) {
	for _, diag := range diags {
		d.note(stage, diag.String())
	}
}

// --- instr.Pool implementation ---

// String returns the string at idx, per spec.md §4.4's
// `string_idx -> double-quoted string literal` rule (quoting is the
// renderer's job; this just dereferences the pool).
func (d *Dex) String(idx uint32) (string, error) {
	if int(idx) >= len(d.Strings) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxString, int(idx))
	}
	return d.Strings[idx], nil
}

// Type returns the raw type descriptor at idx.
func (d *Dex) Type(idx uint16) (string, error) {
	if int(idx) >= len(d.Types) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxType, int(idx))
	}
	return d.Types[idx], nil
}

// FieldRef renders `{class_descriptor}->{name}:{type_descriptor}`.
func (d *Dex) FieldRef(idx uint16) (string, error) {
	if int(idx) >= len(d.FieldIDs) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxFieldID, int(idx))
	}
	f := d.FieldIDs[idx]
	class, err := d.Type(f.ClassIdx)
	if err != nil {
		return "", err
	}
	name, err := d.String(f.NameIdx)
	if err != nil {
		return "", err
	}
	typ, err := d.Type(f.TypeIdx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s->%s:%s", class, name, typ), nil
}

// MethodRef renders `{class_descriptor}->{name}({params}){return_type}`.
func (d *Dex) MethodRef(idx uint16) (string, error) {
	if int(idx) >= len(d.MethodIDs) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxMethodID, int(idx))
	}
	m := d.MethodIDs[idx]
	class, err := d.Type(m.ClassIdx)
	if err != nil {
		return "", err
	}
	name, err := d.String(m.NameIdx)
	if err != nil {
		return "", err
	}
	proto, err := d.protoSignature(m.ProtoIdx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s->%s%s", class, name, proto), nil
}

// ProtoRef renders `({params}){return_type}`.
func (d *Dex) ProtoRef(idx uint16) (string, error) {
	return d.protoSignature(idx)
}

func (d *Dex) protoSignature(idx uint16) (string, error) {
	if int(idx) >= len(d.ProtoIDs) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxProtoID, int(idx))
	}
	p := d.ProtoIDs[idx]

	params := ""
	if p.ParametersOff != 0 {
		items, err := pool.ParseTypeList(d.Raw, int(p.ParametersOff))
		if err != nil {
			return "", err
		}
		for _, item := range items {
			t, err := d.Type(item.TypeIdx)
			if err != nil {
				return "", err
			}
			params += t
		}
	}

	ret, err := d.Type(uint16(p.ReturnTypeIdx))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s)%s", params, ret), nil
}

// CallSiteRef renders a call-site reference. The encoded_array_item a
// call_site_id points at is not decoded (static-value decoding is a
// non-goal), so this renders only the identifying offset.
func (d *Dex) CallSiteRef(idx uint16) (string, error) {
	if int(idx) >= len(d.CallSiteIDs) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxCallSite, int(idx))
	}
	return fmt.Sprintf("call_site@0x%x", d.CallSiteIDs[idx].CallSiteOff), nil
}

// MethodHandleRef renders a method-handle reference: its kind code paired
// with the field or method it resolves to, depending on that kind.
func (d *Dex) MethodHandleRef(idx uint16) (string, error) {
	if int(idx) >= len(d.MethodHandles) {
		return "", dexerr.NewTableIdx(dexerr.TableIdxMethodHandle, int(idx))
	}
	mh := d.MethodHandles[idx]
	if isMethodHandleKindMethod(mh.MethodHandleType) {
		ref, err := d.MethodRef(mh.FieldOrMethodID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("method_handle(kind=%d, %s)", mh.MethodHandleType, ref), nil
	}
	ref, err := d.FieldRef(mh.FieldOrMethodID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("method_handle(kind=%d, %s)", mh.MethodHandleType, ref), nil
}

// Method handle kind codes per the DEX spec's MethodHandleType table:
// 0-1 are static/instance field get/put, 2-8 are the various invoke kinds.
func isMethodHandleKindMethod(kind uint16) bool {
	return kind >= 2
}

// ClassDataAt parses the class_data_item at off, if non-zero.
func (d *Dex) ClassDataAt(off uint32) (*classdata.ClassDataItem, error) {
	if off == 0 {
		return &classdata.ClassDataItem{}, nil
	}
	if int(off) >= len(d.Raw) {
		return nil, dexerr.NewTruncated("class_data_item", 1, 0)
	}
	item, _, err := classdata.Parse(d.Raw[off:])
	return item, err
}

// CodeItemAt parses the code_item at off, if non-zero (abstract and
// native methods have code_off == 0 and carry no code_item).
func (d *Dex) CodeItemAt(off uint32) (*code.Item, []code.Diagnostic, error) {
	if off == 0 {
		return nil, nil, nil
	}
	if int(off) >= len(d.Raw) {
		return nil, nil, dexerr.NewTruncated("code_item", 1, 0)
	}
	return code.ParseCodeItem(d.Raw[off:])
}

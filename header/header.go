// Package header parses the fixed 112-byte DEX file header.
package header

import (
	"fmt"

	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/leb128"
)

// Size is the fixed byte length of a DEX header (v40 and earlier).
const Size = 112

// V41Size is header_size for the DEX v41 container format, which this
// module does not parse beyond flagging its presence.
const V41Size = 0x78

// NoIndex is the sentinel meaning "no such reference" for a u32 index field.
const NoIndex = 0xFFFFFFFF

// HeaderItem is the parsed DEX header.
type HeaderItem struct {
	Magic     [8]byte
	Checksum  uint32
	Signature [20]byte
	FileSize  uint32
	// HeaderSize is the on-disk header_size field. It is expected to equal
	// Size for the DEX versions this module handles; a value of V41Size
	// flags a v41 container, which is recorded but not parsed further.
	HeaderSize uint32
	EndianTag  uint32
	LinkSize   uint32
	LinkOff    uint32
	MapOff     uint32

	StringIDsSize uint32
	StringIDsOff  uint32
	TypeIDsSize   uint32
	TypeIDsOff    uint32
	ProtoIDsSize  uint32
	ProtoIDsOff   uint32
	FieldIDsSize  uint32
	FieldIDsOff   uint32
	MethodIDsSize uint32
	MethodIDsOff  uint32
	ClassDefsSize uint32
	ClassDefsOff  uint32
	DataSize      uint32
	DataOff       uint32
}

// EndianTagLittle is the endian_tag value signaling a little-endian DEX file.
const EndianTagLittle = 0x12345678

// Parse reads the 112-byte fixed header starting at buf[0]. It performs no
// semantic validation (magic bytes, endian tag, checksum); the driver may
// call Validate for that.
func Parse(buf []byte) (*HeaderItem, error) {
	if len(buf) < Size {
		return nil, dexerr.NewTruncated("header", Size, len(buf))
	}

	h := &HeaderItem{}
	copy(h.Magic[:], buf[0:8])

	checksum, err := leb128.ReadU32LE(buf, 8)
	if err != nil {
		return nil, err
	}
	h.Checksum = checksum
	copy(h.Signature[:], buf[12:32])

	fields := []struct {
		off int
		dst *uint32
	}{
		{32, &h.FileSize},
		{36, &h.HeaderSize},
		{40, &h.EndianTag},
		{44, &h.LinkSize},
		{48, &h.LinkOff},
		{52, &h.MapOff},
		{56, &h.StringIDsSize},
		{60, &h.StringIDsOff},
		{64, &h.TypeIDsSize},
		{68, &h.TypeIDsOff},
		{72, &h.ProtoIDsSize},
		{76, &h.ProtoIDsOff},
		{80, &h.FieldIDsSize},
		{84, &h.FieldIDsOff},
		{88, &h.MethodIDsSize},
		{92, &h.MethodIDsOff},
		{96, &h.ClassDefsSize},
		{100, &h.ClassDefsOff},
		{104, &h.DataSize},
		{108, &h.DataOff},
	}
	for _, f := range fields {
		v, err := leb128.ReadU32LE(buf, f.off)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	return h, nil
}

// String renders a diagnostic one-line summary of the header.
func (h *HeaderItem) String() string {
	return fmt.Sprintf(
		"HeaderItem{magic=%q header_size=%d endian_tag=0x%08x strings=%d types=%d protos=%d fields=%d methods=%d classes=%d}",
		h.Magic[:], h.HeaderSize, h.EndianTag, h.StringIDsSize, h.TypeIDsSize,
		h.ProtoIDsSize, h.FieldIDsSize, h.MethodIDsSize, h.ClassDefsSize,
	)
}

// Diagnostic is an advisory note produced by Validate; it never causes
// Parse to fail.
type Diagnostic struct {
	Field  string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Field, d.Detail)
}

// Validate performs the semantic checks Parse deliberately skips: magic
// bytes, DEX version digits, header_size, and endian_tag. It never returns
// an error; every finding is an advisory Diagnostic, matching spec.md
// §4.2's "no semantic validation is performed by the core; the driver may
// validate" split.
func (h *HeaderItem) Validate() []Diagnostic {
	var diags []Diagnostic

	if len(h.Magic) != 8 || h.Magic[0] != 'd' || h.Magic[1] != 'e' || h.Magic[2] != 'x' || h.Magic[3] != '\n' || h.Magic[7] != 0x00 {
		diags = append(diags, Diagnostic{"magic", fmt.Sprintf("unexpected magic bytes %q", h.Magic[:])})
	}

	for _, c := range h.Magic[4:7] {
		if c < '0' || c > '9' {
			diags = append(diags, Diagnostic{"version", fmt.Sprintf("unexpected DEX version %q", h.Magic[4:7])})
			break
		}
	}

	switch h.HeaderSize {
	case Size:
		// expected
	case V41Size:
		diags = append(diags, Diagnostic{"header_size", "DEX v41 container format detected; multi-header semantics are not parsed"})
	default:
		diags = append(diags, Diagnostic{"header_size", fmt.Sprintf("unexpected header_size %d", h.HeaderSize)})
	}

	if h.EndianTag != EndianTagLittle {
		diags = append(diags, Diagnostic{"endian_tag", fmt.Sprintf("unexpected endian_tag 0x%08x, expected little-endian", h.EndianTag)})
	}

	return diags
}

// Package leb128 provides the little-endian byte primitives the DEX format
// is built on: fixed-width integer reads, nibble unpacking, and the
// variable-length LEB128 and modified-UTF-8 string encodings.
//
// Every exported read here fails with a *dexerr.Truncated when the source
// buffer is shorter than the field it is asked to decode, rather than
// panicking on a short slice — callers are expected to check errors, not
// pre-validate lengths themselves.
package leb128

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/dex2smali/dexerr"
	"github.com/arloliu/dex2smali/endian"
)

// leByteOrder is the byte order every fixed-width DEX field is encoded in;
// the format has no big-endian variant (header.go's EndianTag check exists
// only to flag files that claim otherwise, never to switch decoders).
var leByteOrder = endian.GetLittleEndianEngine()

// MaxULEB128Len is the maximum number of bytes a DEX-valid ULEB128 value
// may occupy: DEX restricts encoded values to 32 bits, which fits in at
// most 5 continuation-bit-terminated bytes.
const MaxULEB128Len = 5

// ReadU16LE reads a little-endian uint16 at off.
func ReadU16LE(buf []byte, off int) (uint16, error) {
	if len(buf) < off+2 {
		return 0, dexerr.NewTruncated("u16", off+2, len(buf))
	}
	return leByteOrder.Uint16(buf[off : off+2]), nil
}

// ReadU32LE reads a little-endian uint32 at off.
func ReadU32LE(buf []byte, off int) (uint32, error) {
	if len(buf) < off+4 {
		return 0, dexerr.NewTruncated("u32", off+4, len(buf))
	}
	return leByteOrder.Uint32(buf[off : off+4]), nil
}

// ReadU64LE reads a little-endian uint64 at off.
func ReadU64LE(buf []byte, off int) (uint64, error) {
	if len(buf) < off+8 {
		return 0, dexerr.NewTruncated("u64", off+8, len(buf))
	}
	return leByteOrder.Uint64(buf[off : off+8]), nil
}

// ToNibbles splits a byte into its low and high 4-bit nibbles: (byte&0x0F, byte>>4).
func ToNibbles(b byte) (lo, hi byte) {
	return b & 0x0F, b >> 4
}

// PackNibbles is the inverse of ToNibbles.
func PackNibbles(lo, hi byte) byte {
	return (lo & 0x0F) | (hi << 4)
}

// DecodeULEB128 reads an unsigned LEB128 value from the start of buf.
//
// DEX restricts ULEB128 values to 32 bits stored in at most 5 bytes; if the
// continuation bit is still set after 5 bytes, the encoding is malformed.
func DecodeULEB128(buf []byte) (uint64, int, error) {
	var result uint64
	for i := 0; i < MaxULEB128Len; i++ {
		if i >= len(buf) {
			return 0, 0, dexerr.NewTruncated("uleb128", i+1, len(buf))
		}
		b := buf[i]
		result |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, 0, dexerr.ErrMalformedLEB128
}

// EncodeULEB128 is the inverse of DecodeULEB128, restricted to the 32-bit
// DEX-valid range so the round trip in DecodeULEB128 always terminates
// within MaxULEB128Len bytes.
func EncodeULEB128(v uint64) []byte {
	v &= 0xFFFFFFFF
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// DecodeSLEB128 reads a classic sign-extending signed LEB128 value (not
// zigzag) from the start of buf.
func DecodeSLEB128(buf []byte) (int64, int, error) {
	var result int64
	var shift uint
	var i int
	for {
		if i >= len(buf) {
			return 0, 0, dexerr.NewTruncated("sleb128", i+1, len(buf))
		}
		if i >= MaxULEB128Len {
			return 0, 0, dexerr.ErrMalformedLEB128
		}
		b := buf[i]
		result |= int64(b&0x7F) << shift
		shift += 7
		i++
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, i, nil
		}
	}
}

// EncodeSLEB128 is the inverse of DecodeSLEB128.
func EncodeSLEB128(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			out = append(out, b)
			break
		}
		out = append(out, b|0x80)
	}
	return out
}

// ReadMUTF8String reads a ULEB128 UTF-16 code-unit count followed by
// modified-UTF-8 bytes terminated by a NUL, starting at off.
//
// It returns the decoded text and the total number of bytes consumed
// (length prefix plus string bytes plus the terminating NUL). A mismatch
// between the stored code-unit count and the decoded string's actual
// UTF-16 length is not an error — DEX files in the wild occasionally carry
// a stale count — so this never fails on that account alone.
func ReadMUTF8String(buf []byte, off int) (string, int, error) {
	if off < 0 || off > len(buf) {
		return "", 0, dexerr.NewTruncated("mutf8", off+1, len(buf))
	}
	count, lenSize, err := DecodeULEB128(buf[off:])
	if err != nil {
		return "", 0, err
	}
	start := off + lenSize
	i := start
	var sb strings.Builder
	for {
		if i >= len(buf) {
			return "", 0, dexerr.NewTruncated("mutf8", i+1, len(buf))
		}
		b0 := buf[i]
		if b0 == 0x00 {
			i++
			break
		}
		r, size := decodeMUTF8Rune(buf[i:])
		sb.WriteRune(r)
		i += size
	}
	_ = count // stored code-unit count is advisory only; see doc comment
	return sb.String(), i - off, nil
}

// decodeMUTF8Rune decodes one modified-UTF-8 code point (possibly a
// surrogate pair spanning two 3-byte sequences) from the start of b,
// returning the rune and the number of bytes consumed.
func decodeMUTF8Rune(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	b0 := b[0]
	switch {
	case b0&0x80 == 0:
		return rune(b0), 1
	case b0&0xE0 == 0xC0:
		if len(b) < 2 {
			return utf8.RuneError, 1
		}
		// Encoded NUL is 0xC0 0x80.
		r := (rune(b0&0x1F) << 6) | rune(b[1]&0x3F)
		return r, 2
	case b0&0xF0 == 0xE0:
		if len(b) < 3 {
			return utf8.RuneError, len(b)
		}
		r1 := (rune(b0&0x0F) << 12) | (rune(b[1]&0x3F) << 6) | rune(b[2]&0x3F)
		if utf16.IsSurrogate(r1) && len(b) >= 6 && b[3]&0xF0 == 0xE0 {
			b2 := b[3:]
			r2 := (rune(b2[0]&0x0F) << 12) | (rune(b2[1]&0x3F) << 6) | rune(b2[2]&0x3F)
			combined := utf16.DecodeRune(r1, r2)
			if combined != utf8.RuneError {
				return combined, 6
			}
		}
		return r1, 3
	default:
		return utf8.RuneError, 1
	}
}

// WriteMUTF8String is the inverse of ReadMUTF8String: it encodes text as a
// ULEB128 UTF-16 code-unit count followed by modified-UTF-8 bytes and a
// terminating NUL.
func WriteMUTF8String(text string) []byte {
	utf16Len := len(utf16.Encode([]rune(text)))
	out := EncodeULEB128(uint64(utf16Len))
	for _, r := range text {
		out = append(out, encodeMUTF8Rune(r)...)
	}
	out = append(out, 0x00)
	return out
}

func encodeMUTF8Rune(r rune) []byte {
	switch {
	case r == 0:
		return []byte{0xC0, 0x80}
	case r < 0x80:
		return []byte{byte(r)}
	case r < 0x800:
		return []byte{
			0xC0 | byte(r>>6),
			0x80 | byte(r&0x3F),
		}
	case r <= 0xFFFF:
		return []byte{
			0xE0 | byte(r>>12),
			0x80 | byte((r>>6)&0x3F),
			0x80 | byte(r&0x3F),
		}
	default:
		hi, lo := utf16.EncodeRune(r)
		return append(encodeMUTF8Rune(hi), encodeMUTF8Rune(lo)...)
	}
}

// HexByte renders a byte as its canonical two-hex-digit form.
func HexByte(b byte) string {
	return fmt.Sprintf("0x%02x", b)
}

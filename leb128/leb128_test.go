package leb128

import (
	"testing"
	"testing/quick"

	"github.com/arloliu/dex2smali/dexerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeULEB128(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want uint64
		used int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"single byte max", []byte{0x7F}, 127, 1},
		{"two bytes", []byte{0x80, 0x01}, 128, 2},
		{"three bytes", []byte{0xE5, 0x8E, 0x26}, 624485, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, used, err := DecodeULEB128(tt.buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.used, used)
		})
	}
}

func TestDecodeULEB128Malformed(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := DecodeULEB128(buf)
	assert.ErrorIs(t, err, dexerr.ErrMalformedLEB128)
}

func TestULEB128Idempotence(t *testing.T) {
	f := func(v uint32) bool {
		encoded := EncodeULEB128(uint64(v))
		if len(encoded) > MaxULEB128Len {
			return false
		}
		decoded, used, err := DecodeULEB128(encoded)
		return err == nil && decoded == uint64(v) && used == len(encoded)
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestSLEB128RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 128, -129, 1 << 20, -(1 << 20)}
	for _, v := range values {
		encoded := EncodeSLEB128(v)
		decoded, used, err := DecodeSLEB128(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), used)
	}
}

func TestToNibbles(t *testing.T) {
	lo, hi := ToNibbles(0x21)
	assert.Equal(t, byte(0x1), lo)
	assert.Equal(t, byte(0x2), hi)
	assert.Equal(t, byte(0x21), PackNibbles(lo, hi))
}

func TestReadFixedWidthTruncated(t *testing.T) {
	_, err := ReadU16LE([]byte{0x01}, 0)
	assert.Error(t, err)

	_, err = ReadU32LE([]byte{0x01, 0x02}, 0)
	assert.Error(t, err)

	_, err = ReadU64LE([]byte{0x01, 0x02}, 0)
	assert.Error(t, err)
}

func TestMUTF8RoundTrip(t *testing.T) {
	strs := []string{"", "hi", "hello, world", "éè", "\U0001F600"}
	for _, s := range strs {
		encoded := WriteMUTF8String(s)
		decoded, used, err := ReadMUTF8String(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, s, decoded)
		assert.Equal(t, len(encoded), used)
	}
}

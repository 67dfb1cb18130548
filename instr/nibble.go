package instr

import "github.com/arloliu/dex2smali/leb128"

// nibbles splits a byte into its low and high nibble, in the (lo, hi) order
// every decode.go case list assigns from: the first name in each pair is
// the low nibble, the second the high nibble.
func nibbles(b byte) (byte, byte) {
	return leb128.ToNibbles(b)
}

// Package codec provides the scalar primitives used to write values into the
// fixed-layout save records: saturating clamps, bit packing, fixed-width text
// fields and 16-bit byte swapping.
//
// Every function here is total. Out-of-range input saturates, it never wraps
// and never returns an error.
package codec

import "strings"

// Rating and colour ranges used by the save format.
const (
	MaxRating = 99
	MaxNibble = 15
)

// Clamp saturates v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampByte saturates v to the rating range [0, 99].
func ClampByte(v int) uint8 {
	return uint8(Clamp(v, 0, MaxRating))
}

// ClampNibble saturates v to the colour channel range [0, 15].
func ClampNibble(v int) uint8 {
	return uint8(Clamp(v, 0, MaxNibble))
}

// ClampUint8 saturates v to the full byte range [0, 255].
func ClampUint8(v int) uint8 {
	return uint8(Clamp(v, 0, 0xFF))
}

// ClampUint16 saturates v to [0, 65535].
func ClampUint16(v int) uint16 {
	return uint16(Clamp(v, 0, 0xFFFF))
}

// PackByte combines a 3-bit and a 5-bit quantity into one byte: high3 in
// bits 5-7 and low5 in bits 0-4. Extra bits of either input are discarded.
func PackByte(high3, low5 uint8) uint8 {
	return (high3&0x07)<<5 | (low5 & 0x1F)
}

// UnpackByte splits a byte produced by PackByte.
func UnpackByte(b uint8) (high3, low5 uint8) {
	return b >> 5, b & 0x1F
}

// PackNibbles stores lo in bits 0-3 and hi in bits 4-7.
func PackNibbles(lo, hi uint8) uint8 {
	return (lo & 0x0F) | (hi&0x0F)<<4
}

// UnpackNibbles splits a byte produced by PackNibbles.
func UnpackNibbles(b uint8) (lo, hi uint8) {
	return b & 0x0F, b >> 4
}

// EncodeFixedWidth writes text left-justified into dest, padding the rest
// with spaces. Text longer than dest is truncated. No terminator is written.
func EncodeFixedWidth(dest []byte, text string) {
	n := copy(dest, text)
	for i := n; i < len(dest); i++ {
		dest[i] = ' '
	}
}

// DecodeFixedWidth reads a space-padded field. Reading stops at the first
// NUL so that fields written by older tools decode cleanly.
func DecodeFixedWidth(src []byte) string {
	end := len(src)
	for i, b := range src {
		if b == 0 {
			end = i
			break
		}
	}
	return strings.TrimRight(string(src[:end]), " ")
}

// SwapEndian16 reverses the byte order of a 16-bit value.
func SwapEndian16(v int16) int16 {
	u := uint16(v)
	return int16(u<<8 | u>>8)
}

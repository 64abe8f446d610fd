package pm3

import (
	"encoding/binary"

	"github.com/JonMunkholm/pm3import/internal/codec"
)

// PlayerRecord is one 48-byte player entry.
type PlayerRecord [PlayerRecordSize]byte

// Name returns the decoded player name.
func (r *PlayerRecord) Name() string {
	return codec.DecodeFixedWidth(r[OffPlayerName : OffPlayerName+PlayerNameWidth])
}

// SetName writes a space-padded name, truncated to 12 bytes.
func (r *PlayerRecord) SetName(name string) {
	codec.EncodeFixedWidth(r[OffPlayerName:OffPlayerName+PlayerNameWidth], name)
}

// Byte returns the raw byte at off.
func (r *PlayerRecord) Byte(off int) uint8 {
	return r[off]
}

// SetRating writes v clamped to [0,99].
func (r *PlayerRecord) SetRating(off, v int) {
	r[off] = codec.ClampByte(v)
}

// SetByte writes v clamped to [lo,hi].
func (r *PlayerRecord) SetByte(off, v, lo, hi int) {
	r[off] = codec.ClampUint8(codec.Clamp(v, lo, hi))
}

// Uint16 reads a little-endian 16-bit field.
func (r *PlayerRecord) Uint16(off int) uint16 {
	return binary.LittleEndian.Uint16(r[off : off+2])
}

// SetUint16 writes v clamped to [0,65535] as little-endian.
func (r *PlayerRecord) SetUint16(off, v int) {
	binary.LittleEndian.PutUint16(r[off:off+2], codec.ClampUint16(v))
}

// SetAgeRatings writes v, clamped, into all seven age-bracket ratings.
func (r *PlayerRecord) SetAgeRatings(v int) {
	for _, off := range AgeRatingOffsets {
		r.SetRating(off, v)
	}
}

// Overall returns the senior age-bracket rating.
func (r *PlayerRecord) Overall() int {
	return int(r[OffU25])
}

// SetContract stores the contract length and loan period type both in their
// own bytes and packed together in the high byte of the period field.
// Contract is clamped to [0,7] and the period type to [0,31].
func (r *PlayerRecord) SetContract(years, periodType int) {
	c := uint8(codec.Clamp(years, 0, 7))
	pt := uint8(codec.Clamp(periodType, 0, 0x1F))
	r[OffContract] = c
	r[OffPeriodType] = pt
	r[OffContractPacked] = codec.PackByte(c, pt)
}

// Contract returns the unpacked contract length and period type.
func (r *PlayerRecord) Contract() (years, periodType int) {
	return int(r[OffContract]), int(r[OffPeriodType])
}

// PackedContract returns the values held in the shared packed byte.
func (r *PlayerRecord) PackedContract() (years, periodType int) {
	h, l := codec.UnpackByte(r[OffContractPacked])
	return int(h), int(l)
}

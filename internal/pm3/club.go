package pm3

import (
	"encoding/binary"

	"github.com/JonMunkholm/pm3import/internal/codec"
)

// RGB is one colour with 4-bit channels.
type RGB [3]uint8

// Kit is the decoded form of one 8-byte kit.
type Kit struct {
	Design uint8
	// Shirt primary, shirt secondary, shorts, socks.
	Colors [4]RGB
}

// Colour parts of a kit.
const (
	ShirtPrimary = iota
	ShirtSecondary
	Shorts
	Socks
)

// ClubRecord is one 160-byte club entry. Bytes the import does not manage
// (finances, reserved) are preserved by every setter.
type ClubRecord [ClubRecordSize]byte

func (r *ClubRecord) text(off int) string {
	return codec.DecodeFixedWidth(r[off : off+ClubTextWidth])
}

func (r *ClubRecord) setText(off int, s string) {
	codec.EncodeFixedWidth(r[off:off+ClubTextWidth], s)
}

func (r *ClubRecord) Name() string { return r.text(OffClubName) }
func (r *ClubRecord) SetName(s string) { r.setText(OffClubName, s) }
func (r *ClubRecord) Manager() string { return r.text(OffManagerName) }
func (r *ClubRecord) SetManager(s string) { r.setText(OffManagerName, s) }
func (r *ClubRecord) Stadium() string { return r.text(OffStadiumName) }
func (r *ClubRecord) SetStadium(s string) { r.setText(OffStadiumName, s) }

// League returns the stored tier, 0 being the top.
func (r *ClubRecord) League() int {
	return int(r[OffLeague])
}

// SetLeague stores the tier clamped to [0,4].
func (r *ClubRecord) SetLeague(league int) {
	r[OffLeague] = uint8(codec.Clamp(league, 0, NumLeagues-1))
}

// Kit decodes kit i (0 home, 1 and 2 away).
func (r *ClubRecord) Kit(i int) Kit {
	b := r[OffKits+i*KitSize : OffKits+(i+1)*KitSize]
	var n [12]uint8
	for j := 0; j < 6; j++ {
		n[2*j], n[2*j+1] = codec.UnpackNibbles(b[1+j])
	}
	k := Kit{Design: b[0]}
	for part := range k.Colors {
		k.Colors[part] = RGB{n[part*3], n[part*3+1], n[part*3+2]}
	}
	return k
}

// SetKit encodes kit i. Design clamps to [0,99] and channels to [0,15].
func (r *ClubRecord) SetKit(i int, k Kit) {
	b := r[OffKits+i*KitSize : OffKits+(i+1)*KitSize]
	var n [12]uint8
	for part, c := range k.Colors {
		for ch := range c {
			n[part*3+ch] = codec.ClampNibble(int(c[ch]))
		}
	}
	b[0] = codec.ClampByte(int(k.Design))
	for j := 0; j < 6; j++ {
		b[1+j] = codec.PackNibbles(n[2*j], n[2*j+1])
	}
}

// PlayerSlot returns the player index in squad position i.
func (r *ClubRecord) PlayerSlot(i int) (int, bool) {
	off := OffPlayerIndex + i*2
	v := codec.SwapEndian16(int16(binary.LittleEndian.Uint16(r[off : off+2])))
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

// SetPlayerSlot stores a player index in squad position i. Negative values
// mark the position empty.
func (r *ClubRecord) SetPlayerSlot(i, player int) {
	if player < 0 {
		player = None
	}
	off := OffPlayerIndex + i*2
	v := codec.SwapEndian16(int16(codec.Clamp(player, None, NumPlayers-1)))
	binary.LittleEndian.PutUint16(r[off:off+2], uint16(v))
}

// ClearPlayerSlots marks every squad position empty.
func (r *ClubRecord) ClearPlayerSlots() {
	for i := 0; i < PlayersPerClub; i++ {
		r.SetPlayerSlot(i, None)
	}
}

// Squad returns the player indices in squad order, skipping empty positions.
func (r *ClubRecord) Squad() []int {
	var out []int
	for i := 0; i < PlayersPerClub; i++ {
		if p, ok := r.PlayerSlot(i); ok {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether the record has no usable name.
func (r *ClubRecord) IsEmpty() bool {
	name := r.Name()
	return name == "" || name == "Unknown"
}

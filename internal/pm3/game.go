package pm3

import (
	"encoding/binary"

	"github.com/JonMunkholm/pm3import/internal/codec"
)

// GameData is the 360-byte game header: season year, league tiers and the
// human managers.
type GameData [GameDataSize]byte

// Year returns the stored season year.
func (g *GameData) Year() int {
	return int(binary.LittleEndian.Uint16(g[OffYear : OffYear+2]))
}

// SetYear stores the season year, clamped to [0,65535].
func (g *GameData) SetYear(year int) {
	binary.LittleEndian.PutUint16(g[OffYear:OffYear+2], codec.ClampUint16(year))
}

func (g *GameData) int16At(off int) int {
	return int(int16(binary.LittleEndian.Uint16(g[off : off+2])))
}

func (g *GameData) putInt16(off, v int) {
	binary.LittleEndian.PutUint16(g[off:off+2], uint16(int16(v)))
}

// TierClub returns the club index in position i of a league tier.
func (g *GameData) TierClub(league, i int) (int, bool) {
	v := g.int16At(tierOffset(league) + i*2)
	if v < 0 {
		return 0, false
	}
	return v, true
}

// SetTierClub stores a club index in position i of a league tier. Negative
// values mark the position empty.
func (g *GameData) SetTierClub(league, i, club int) {
	g.putInt16(tierOffset(league)+i*2, codec.Clamp(club, None, NumClubs-1))
}

// Tier returns the club indices of a league tier, skipping empty positions.
func (g *GameData) Tier(league int) []int {
	var out []int
	for i := 0; i < TierCapacity[league]; i++ {
		if c, ok := g.TierClub(league, i); ok {
			out = append(out, c)
		}
	}
	return out
}

// ClearTiers marks every tier position empty.
func (g *GameData) ClearTiers() {
	for l := 0; l < NumLeagues; l++ {
		for i := 0; i < TierCapacity[l]; i++ {
			g.SetTierClub(l, i, None)
		}
	}
}

func managerOffset(i int) int {
	return OffManagers + i*ManagerSize
}

// ManagerClub returns the club managed by human manager i.
func (g *GameData) ManagerClub(i int) (int, bool) {
	v := g.int16At(managerOffset(i) + OffManagerClub)
	if v < 0 {
		return 0, false
	}
	return v, true
}

// SetManagerClub assigns a club to human manager i.
func (g *GameData) SetManagerClub(i, club int) {
	g.putInt16(managerOffset(i)+OffManagerClub, codec.Clamp(club, None, NumClubs-1))
}

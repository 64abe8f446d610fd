package pm3

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSizes(t *testing.T) {
	assert.Equal(t, 86, OffPlayerIndex)
	assert.Equal(t, 134, OffClubReserved)
	assert.Equal(t, OffManagers, tierOffset(NumLeagues), "tiers must end where managers start")
	assert.Equal(t, GameDataSize, OffManagers+NumManagers*ManagerSize)
	assert.Equal(t, 39040, ClubDataSize)
	assert.Equal(t, 188736, PlayerDataSize)
}

func TestPlayerRecord_Fields(t *testing.T) {
	var r PlayerRecord
	r.SetName("Kane")
	r.SetAgeRatings(150)
	r.SetByte(OffAge, 50, 16, 34)
	r.SetUint16(OffWage, -10)

	assert.Equal(t, "Kane", r.Name())
	assert.Equal(t, []byte("Kane        "), r[:PlayerNameWidth])
	for _, off := range AgeRatingOffsets {
		assert.Equal(t, uint8(99), r.Byte(off))
	}
	assert.Equal(t, 99, r.Overall())
	assert.Equal(t, uint8(34), r.Byte(OffAge))
	assert.Equal(t, uint16(0), r.Uint16(OffWage))
}

func TestPlayerRecord_Contract(t *testing.T) {
	var r PlayerRecord
	r.SetUint16(OffPeriod, 108)
	r.SetContract(3, 20)

	years, pt := r.Contract()
	assert.Equal(t, 3, years)
	assert.Equal(t, 20, pt)

	py, ppt := r.PackedContract()
	assert.Equal(t, 3, py)
	assert.Equal(t, 20, ppt)

	assert.Equal(t, uint8(108), r[OffPeriod], "low period byte is untouched")
	assert.Equal(t, uint8(0x74), r[OffContractPacked])

	r.SetContract(12, 99)
	years, pt = r.Contract()
	assert.Equal(t, 7, years)
	assert.Equal(t, 31, pt)
}

func TestClubRecord_TextAndLeague(t *testing.T) {
	var r ClubRecord
	r[150] = 0x5A // reserved byte

	r.SetName("Manchester United Football Club")
	r.SetManager("E. ten Hag")
	r.SetStadium("Old Trafford")
	r.SetLeague(9)

	assert.Equal(t, "Manchester United Fo", r.Name())
	assert.Equal(t, "E. ten Hag", r.Manager())
	assert.Equal(t, "Old Trafford", r.Stadium())
	assert.Equal(t, 4, r.League())
	assert.Equal(t, uint8(0x5A), r[150])

	r.SetLeague(-3)
	assert.Equal(t, 0, r.League())
}

func TestClubRecord_Kit(t *testing.T) {
	var r ClubRecord
	k := Kit{
		Design: 12,
		Colors: [4]RGB{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 15}},
	}
	r.SetKit(2, k)

	assert.Equal(t, k, r.Kit(2))
	assert.Equal(t, Kit{}, r.Kit(0))

	b := r[OffKits+2*KitSize:]
	assert.Equal(t, uint8(12), b[0])
	assert.Equal(t, uint8(0x21), b[1], "primary r low nibble, g high nibble")
	assert.Equal(t, uint8(0x43), b[2])
	assert.Equal(t, uint8(0xFB), b[6])
	assert.Equal(t, uint8(0), b[7])

	r.SetKit(0, Kit{Design: 200, Colors: [4]RGB{{255, 16, 0}}})
	got := r.Kit(0)
	assert.Equal(t, uint8(99), got.Design)
	assert.Equal(t, RGB{15, 15, 0}, got.Colors[ShirtPrimary])
}

func TestClubRecord_PlayerSlots(t *testing.T) {
	var r ClubRecord
	r.ClearPlayerSlots()
	for i := 0; i < PlayersPerClub; i++ {
		_, ok := r.PlayerSlot(i)
		assert.False(t, ok)
	}

	r.SetPlayerSlot(0, 0x0102)
	r.SetPlayerSlot(1, 0)
	r.SetPlayerSlot(2, 3931)

	// Stored byte-swapped, i.e. big-endian on disk.
	assert.Equal(t, []byte{0x01, 0x02}, r[OffPlayerIndex:OffPlayerIndex+2])
	assert.Equal(t, []byte{0xFF, 0xFF}, r[OffPlayerIndex+6:OffPlayerIndex+8])

	idx, ok := r.PlayerSlot(2)
	require.True(t, ok)
	assert.Equal(t, 3931, idx)
	assert.Equal(t, []int{0x0102, 0, 3931}, r.Squad())
}

func TestGameData(t *testing.T) {
	g := new(GameData)
	g.SetYear(2025)
	g.SetTierClub(3, 2, 9)
	g.ClearTiers()
	assert.Empty(t, g.Tier(3))
	g.SetTierClub(0, 0, 5)
	g.SetTierClub(1, 23, 243)
	g.SetTierClub(4, 21, 7)
	g.SetManagerClub(0, 0)

	assert.Equal(t, 2025, g.Year())
	assert.Equal(t, []byte{0xE9, 0x07}, g[0:2])
	assert.Equal(t, []int{5}, g.Tier(0))
	assert.Equal(t, []int{243}, g.Tier(1))
	assert.Equal(t, []int{7}, g.Tier(4))
	assert.Empty(t, g.Tier(2))

	club, ok := g.ManagerClub(0)
	assert.True(t, ok)
	assert.Equal(t, 0, club)
}

func TestSave_RoundTrip(t *testing.T) {
	s := NewSave()
	s.Game.SetYear(1995)
	s.Clubs[10].SetName("Alpha")
	s.Players[3931].SetName("Last")

	var buf bytes.Buffer
	_, err := s.Clubs.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, ClubDataSize, buf.Len())

	clubs := new(ClubData)
	_, err = clubs.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", clubs[10].Name())

	buf.Reset()
	_, err = s.Players.WriteTo(&buf)
	require.NoError(t, err)
	players := new(PlayerData)
	_, err = players.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Last", players[3931].Name())
}

func TestReadFrom_Size(t *testing.T) {
	g := new(GameData)

	_, err := g.ReadFrom(bytes.NewReader(make([]byte, 10)))
	assert.True(t, errors.Is(err, ErrSize), "short read: %v", err)

	_, err = g.ReadFrom(bytes.NewReader(make([]byte, GameDataSize+1)))
	assert.ErrorIs(t, err, ErrTrailingData)

	err = g.UnmarshalBinary(make([]byte, GameDataSize-1))
	assert.ErrorIs(t, err, ErrSize)
}

// Package pm3 models the three root structures of a Premier Manager 3 save:
// game data, club data and player data.
//
// Records are fixed-size byte arrays. Fields are reached through accessor
// methods that route every write through the codec package, so no value can
// overflow its declared width. Multi-byte integers are little-endian except
// the club player index, which the format stores byte-swapped.
package pm3

// Capacities.
const (
	NumClubs       = 244
	NumPlayers     = 3932
	NumLeagues     = 5
	NumManagers    = 4
	KitsPerClub    = 3
	PlayersPerClub = 24
)

// None marks an empty club or player reference on disk.
const None = -1

// Record sizes in bytes.
const (
	PlayerRecordSize = 48
	ClubRecordSize   = 160
	KitSize          = 8
	ManagerSize      = 32
	GameDataSize     = 360
	ClubDataSize     = NumClubs * ClubRecordSize
	PlayerDataSize   = NumPlayers * PlayerRecordSize
)

// Player record offsets.
const (
	OffPlayerName   = 0
	PlayerNameWidth = 12

	OffU13 = 12
	OffU15 = 13
	OffU17 = 14
	OffU19 = 15
	OffU21 = 16
	OffU23 = 17
	OffU25 = 18

	OffHandling      = 19
	OffTackling      = 20
	OffPassing       = 21
	OffShooting      = 22
	OffHeading       = 23
	OffCreativity    = 24
	OffFitness       = 25
	OffMorale        = 26
	OffAggression    = 27
	OffInjury        = 28
	OffAge           = 29
	OffFoot          = 30
	OffDisciplinary  = 31
	OffPlayed        = 32
	OffScored        = 33
	OffUnknown2      = 34 // 2 bytes
	OffWage          = 36 // uint16
	OffInsuranceCost = 38 // uint16
	OffPeriod        = 40 // uint16; the high byte doubles as the packed contract byte
	OffPeriodType    = 42
	OffContract      = 43
	OffUnknown5      = 44
	OffTraining      = 45
	OffIntensity     = 46
)

// OffContractPacked is the byte shared by the period high byte and the
// packed contract/period-type pair.
const OffContractPacked = OffPeriod + 1

// AgeRatingOffsets lists the seven age-bracket ratings, youngest first.
var AgeRatingOffsets = [7]int{OffU13, OffU15, OffU17, OffU19, OffU21, OffU23, OffU25}

// Club record offsets.
const (
	OffClubName     = 0
	OffManagerName  = 20
	OffStadiumName  = 40
	ClubTextWidth   = 20
	OffLeague       = 60
	OffKits         = 62
	OffPlayerIndex  = OffKits + KitsPerClub*KitSize
	OffClubReserved = OffPlayerIndex + PlayersPerClub*2
)

// Game data offsets.
const (
	OffYear          = 0
	OffTiers         = 4
	OffManagers      = 232
	ManagerNameWidth = 16
	OffManagerClub   = ManagerNameWidth
)

// TierCapacity is the storage width of each league tier, top tier first.
var TierCapacity = [NumLeagues]int{22, 24, 24, 22, 22}

// TierNames labels the tiers for reports.
var TierNames = [NumLeagues]string{"Premier League", "Division One", "Division Two", "Division Three", "Conference"}

func tierOffset(league int) int {
	off := OffTiers
	for i := 0; i < league; i++ {
		off += TierCapacity[i] * 2
	}
	return off
}

package importer

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pm3import/internal/csvtab"
	"github.com/JonMunkholm/pm3import/internal/pm3"
	"github.com/JonMunkholm/pm3import/internal/roster"
)

const playerHeader = "player_id,club_id,short_name,age,player_positions,overall,preferred_foot," +
	"physic,mentality_aggression,club_contract_valid_until_year,club_loaned_from\n"

func quietOptions() Options {
	return Options{
		MaxPlayers: 16,
		BaseYear:   2025,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func runImport(t *testing.T, clubs, players string, opts Options) (*pm3.Save, Stats) {
	t.Helper()
	save := pm3.NewSave()
	stats, err := Import(strings.NewReader(clubs), strings.NewReader(players), save, opts)
	require.NoError(t, err)
	return save, stats
}

func squadNames(save *pm3.Save, club int) []string {
	var names []string
	for _, idx := range save.Clubs[club].Squad() {
		names = append(names, save.Players[idx].Name())
	}
	return names
}

func TestImport_GoalkeepersFirstAndLeagues(t *testing.T) {
	clubs := "club_id,club_name,league\n1,Alpha,0\n2,Beta,1\n"
	players := playerHeader +
		"1,1,Keeper Two,30,GK,60,Right,,,,\n" +
		"2,1,Striker,25,ST,80,Left,,,,\n" +
		"3,1,Keeper One,28,GK,70,Right,,,,\n"

	save, stats := runImport(t, clubs, players, quietOptions())

	assert.Equal(t, 2, stats.ClubsImported)
	assert.Equal(t, 3, stats.PlayersImported)
	assert.Equal(t, 0, stats.PlayersSkipped)

	assert.Equal(t, []string{"Keeper One", "Keeper Two", "Striker"}, squadNames(save, 0))
	assert.Empty(t, squadNames(save, 1))

	assert.Equal(t, []int{0}, save.Game.Tier(0))
	assert.Equal(t, []int{1}, save.Game.Tier(1))
	for l := 2; l < pm3.NumLeagues; l++ {
		assert.Empty(t, save.Game.Tier(l))
	}

	club, ok := save.Game.ManagerClub(0)
	assert.True(t, ok)
	assert.Equal(t, 0, club)
}

func TestImport_WhitespaceRowsCountAsSkipped(t *testing.T) {
	clubs := "club_id,club_name\n1,Alpha\n\t\n"
	players := playerHeader + "\n   \n1,1,Striker,25,ST,80,Left,,,,\n"

	var logs bytes.Buffer
	opts := quietOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, stats := runImport(t, clubs, players, opts)

	assert.Equal(t, 1, stats.PlayersImported)
	assert.Equal(t, 1, stats.PlayersSkipped, "whitespace-only line is a rejected row")
	assert.Equal(t, 1, stats.ClubRowsRejected)
	assert.Contains(t, logs.String(), `msg="player row skipped" line=3`)
	assert.Contains(t, logs.String(), `msg="club row rejected" line=3`)
	assert.Contains(t, logs.String(), `msg="league tier assembled" tier="Premier League" clubs=1`)
}

func TestImport_MaxPlayersTruncates(t *testing.T) {
	clubs := "club_id,club_name,max_players\n1,Alpha,2\n"
	players := playerHeader +
		"1,1,Low,20,CB,50,Right,,,,\n" +
		"2,1,High,20,CB,90,Right,,,,\n" +
		"3,1,Mid,20,CB,70,Right,,,,\n" +
		"4,1,Gk,20,GK,40,Right,,,,\n"

	save, stats := runImport(t, clubs, players, quietOptions())

	assert.Equal(t, []string{"Gk", "High"}, squadNames(save, 0))
	assert.Equal(t, 2, stats.PlayersImported)
	assert.Equal(t, 2, stats.PlayersSkipped)
}

func TestImport_RejectedPlayersCountAsSkipped(t *testing.T) {
	clubs := "club_id,club_name\n1,Alpha\n"
	players := playerHeader +
		"1,1,Zero,20,ST,0,Right,,,,\n" +
		"2,1,Negative,20,ST,-5,Right,,,,\n" +
		"3,1,Good,20,ST,60,Right,,,,\n"

	_, stats := runImport(t, clubs, players, quietOptions())

	assert.Equal(t, 1, stats.PlayersImported)
	assert.Equal(t, 2, stats.PlayersSkipped)
}

func TestImport_Loans(t *testing.T) {
	clubs := "club_id,club_name\n1,Alpha\n"
	players := playerHeader +
		"1,1,Owned,20,ST,60,Right,,,2027,NONE\n" +
		"2,1,Zero,20,ST,59,Right,,,2027,0\n" +
		"3,1,Loanee,20,ST,58,Right,,,2027,Arsenal\n"

	t.Run("enabled", func(t *testing.T) {
		opts := quietOptions()
		opts.ImportLoans = true
		save, _ := runImport(t, clubs, players, opts)

		squad := save.Clubs[0].Squad()
		require.Len(t, squad, 3)
		for i, want := range []int{0, 0, 108} {
			rec := save.Players[squad[i]]
			assert.Equal(t, uint16(want), rec.Uint16(pm3.OffPeriod)&0xFF, "player %s period", rec.Name())
		}

		loanee := save.Players[squad[2]]
		years, pt := loanee.Contract()
		assert.Equal(t, 2, years)
		assert.Equal(t, 20, pt)
	})

	t.Run("disabled", func(t *testing.T) {
		save, _ := runImport(t, clubs, players, quietOptions())
		loanee := save.Players[save.Clubs[0].Squad()[2]]
		_, pt := loanee.Contract()
		assert.Equal(t, 0, pt)
	})
}

func TestImport_DuplicateClubKeepsFirstPosition(t *testing.T) {
	clubs := "club_id,club_name,league\n1,Alpha,0\n2,Beta,0\n1,Alpha Renamed,3\n"
	players := playerHeader + "1,1,Solo,20,ST,60,Right,,,,\n"

	save, stats := runImport(t, clubs, players, quietOptions())

	assert.Equal(t, 2, stats.ClubsImported)
	assert.Equal(t, "Alpha Renamed", save.Clubs[0].Name())
	assert.Equal(t, "Beta", save.Clubs[1].Name())
	assert.Equal(t, []int{1}, save.Game.Tier(0))
	assert.Equal(t, []int{0}, save.Game.Tier(3))
	assert.Equal(t, 1, stats.PlayersImported)
}

func TestImport_OrphanedPlayers(t *testing.T) {
	clubs := "club_id,club_name\n1,Alpha\n"
	players := playerHeader + "1,9,Nowhere,20,ST,60,Right,,,,\n"

	_, stats := runImport(t, clubs, players, quietOptions())

	assert.Equal(t, 0, stats.PlayersImported)
	assert.Equal(t, 1, stats.PlayersOrphaned)
}

func TestImport_ClubCap(t *testing.T) {
	var clubs strings.Builder
	clubs.WriteString("club_id,club_name,league\n")
	for i := 1; i <= pm3.NumClubs+6; i++ {
		fmt.Fprintf(&clubs, "%d,Club %d,%d\n", i, i, i%pm3.NumLeagues)
	}
	players := playerHeader + fmt.Sprintf("1,%d,Late,20,ST,60,Right,,,,\n", pm3.NumClubs+1)

	save, stats := runImport(t, clubs.String(), players, quietOptions())

	assert.Equal(t, pm3.NumClubs, stats.ClubsImported)
	assert.Equal(t, 6, stats.ClubsDropped)
	assert.Equal(t, 1, stats.PlayersOrphaned)
	assert.Equal(t, "Club 244", save.Clubs[pm3.NumClubs-1].Name())

	// 244 clubs spread over five leagues overflow every tier.
	for l := 0; l < pm3.NumLeagues; l++ {
		assert.Len(t, save.Game.Tier(l), pm3.TierCapacity[l])
	}
	assert.Equal(t, pm3.NumClubs-(22+24+24+22+22), stats.TierOverflow)
}

func TestImport_PoolExhaustion(t *testing.T) {
	const numClubs = 170
	var clubs, players strings.Builder
	clubs.WriteString("club_id,club_name,max_players\n")
	players.WriteString(playerHeader)
	id := 0
	for c := 1; c <= numClubs; c++ {
		fmt.Fprintf(&clubs, "%d,Club %d,24\n", c, c)
		for p := 0; p < 24; p++ {
			id++
			fmt.Fprintf(&players, "%d,%d,P%d,22,CM,%d,Right,,,,\n", id, c, id, 50+p)
		}
	}

	save, stats := runImport(t, clubs.String(), players.String(), quietOptions())

	assert.True(t, stats.PoolExhausted)
	assert.Equal(t, numClubs, stats.ClubsImported)
	assert.Equal(t, pm3.NumPlayers, stats.PlayersImported)
	assert.Equal(t, numClubs*24-pm3.NumPlayers, stats.PlayersUnassigned)

	// 3932 = 163*24 + 20: club 164 gets 20 players and later clubs none.
	assert.Len(t, save.Clubs[162].Squad(), 24)
	assert.Len(t, save.Clubs[163].Squad(), 20)
	assert.Empty(t, save.Clubs[164].Squad())
}

func TestImport_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		clubs   string
		players string
		want    error
	}{
		{"empty clubs", "", playerHeader, csvtab.ErrEmptyTable},
		{"no valid clubs", "club_id,club_name\n0,Nobody\n", playerHeader, ErrNoClubs},
		{"empty players", "club_id,club_name\n1,Alpha\n", "", csvtab.ErrEmptyTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.clubs), strings.NewReader(tt.players), pm3.NewSave(), quietOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestImport_PreservesUnmanagedClubBytes(t *testing.T) {
	save := pm3.NewSave()
	save.Clubs[0][150] = 0x42

	_, err := Import(strings.NewReader("club_id,club_name\n1,Alpha\n"), strings.NewReader(playerHeader), save, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), save.Clubs[0][150])
}

func TestImport_InvalidMaxPlayersFallsBack(t *testing.T) {
	clubs := "club_id,club_name\n1,Alpha\n"
	var players strings.Builder
	players.WriteString(playerHeader)
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&players, "%d,1,P%d,22,CM,60,Right,,,,\n", i, i)
	}

	opts := quietOptions()
	opts.MaxPlayers = 99
	_, stats := runImport(t, clubs, players.String(), opts)

	assert.Equal(t, roster.DefaultSquadSize, stats.PlayersImported)
	assert.Equal(t, 4, stats.PlayersSkipped)
}

// Package importer writes club and player tables into a save.
//
// Import is synchronous and owns all of its working state. On error the save
// may be partially written; callers discard it.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/JonMunkholm/pm3import/internal/csvtab"
	"github.com/JonMunkholm/pm3import/internal/pm3"
	"github.com/JonMunkholm/pm3import/internal/roster"
	"github.com/JonMunkholm/pm3import/internal/schema"
)

// ErrNoClubs is returned when the club table has no acceptable rows.
var ErrNoClubs = errors.New("no valid clubs found")

// Options controls one import.
type Options struct {
	// MaxPlayers is the squad limit for clubs without their own max_players.
	// Values outside [1,24] fall back to 16.
	MaxPlayers int

	// BaseYear is the current season, used to turn contract expiry years
	// into seasons remaining.
	BaseYear int

	// ImportLoans marks players with a parent club as on loan.
	ImportLoans bool

	// Logger receives progress and warnings; nil uses slog.Default().
	Logger *slog.Logger
}

// Stats summarises an import. Counters only grow.
type Stats struct {
	ClubsImported   int `json:"clubs_imported"`
	PlayersImported int `json:"players_imported"`
	PlayersSkipped  int `json:"players_skipped"`

	ClubRowsRejected  int  `json:"club_rows_rejected"`
	ClubsDropped      int  `json:"clubs_dropped"`
	PlayersOrphaned   int  `json:"players_orphaned"`
	PlayersUnassigned int  `json:"players_unassigned"`
	TierOverflow      int  `json:"tier_overflow"`
	PoolExhausted     bool `json:"pool_exhausted"`
}

// clubSet keeps clubs in first-seen order. A repeated id replaces the
// earlier data but keeps its position.
type clubSet struct {
	order []int
	byID  map[int]roster.Club
}

func (s *clubSet) add(c roster.Club) {
	if _, ok := s.byID[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = c
}

// Import reads the club and player tables and writes them into save.
//
// Clubs are placed in table order up to the club capacity; the rest are
// dropped and counted. Each club's squad is filled goalkeepers first, then
// outfield players, each group by descending overall, up to the club's
// squad limit. League tiers are rebuilt from the placed clubs afterwards.
func Import(clubs, players io.Reader, save *pm3.Save, opts Options) (Stats, error) {
	var stats Stats
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	maxPlayers := opts.MaxPlayers
	if maxPlayers < 1 || maxPlayers > roster.MaxSquadSize {
		maxPlayers = roster.DefaultSquadSize
	}

	set, err := readClubs(clubs, maxPlayers, &stats, log)
	if err != nil {
		return stats, err
	}
	log.Debug("clubs loaded", "clubs", len(set.order), "rejected", stats.ClubRowsRejected)

	squads, err := readPlayers(players, &stats, log)
	if err != nil {
		return stats, err
	}
	log.Debug("players loaded", "clubs", len(squads), "skipped", stats.PlayersSkipped)

	pool := NewPlayerPool()
	placed := 0
	for _, id := range set.order {
		if placed >= pm3.NumClubs {
			stats.ClubsDropped++
			stats.PlayersOrphaned += len(squads[id])
			delete(squads, id)
			continue
		}

		club := set.byID[id]
		rec := &save.Clubs[placed]
		ApplyClub(rec, club)

		assigned := assignSquad(rec, club, squads[id], pool, save.Players, opts, &stats)
		delete(squads, id)
		log.Debug("club imported",
			"index", placed,
			"club", club.Name,
			"assigned", assigned,
			"max", club.MaxPlayers,
		)

		stats.ClubsImported++
		placed++
	}

	if stats.ClubsDropped > 0 {
		log.Info("club limit reached, clubs dropped",
			"limit", pm3.NumClubs,
			"dropped", stats.ClubsDropped,
		)
	}
	if stats.PoolExhausted {
		log.Warn("player capacity exhausted",
			"capacity", pool.Cap(),
			"unassigned", stats.PlayersUnassigned,
		)
	}

	for _, orphans := range squads {
		stats.PlayersOrphaned += len(orphans)
	}
	if stats.PlayersOrphaned > 0 {
		log.Info("players without an imported club ignored", "players", stats.PlayersOrphaned)
	}

	stats.TierOverflow = AssembleLeagues(save.Game, save.Clubs, placed)
	for l, name := range pm3.TierNames {
		log.Debug("league tier assembled", "tier", name, "clubs", len(save.Game.Tier(l)))
	}
	if stats.TierOverflow > 0 {
		log.Warn("league tiers full, clubs left out of the league table", "clubs", stats.TierOverflow)
	}

	if placed > 0 {
		save.Game.SetManagerClub(0, 0)
	}

	return stats, nil
}

// assignSquad fills a club's squad and returns the number of players placed.
func assignSquad(rec *pm3.ClubRecord, club roster.Club, squad []roster.Player, pool *SlotPool, out *pm3.PlayerData, opts Options, stats *Stats) int {
	ordered := SquadOrder(squad)
	assigned := 0
	for i, p := range ordered {
		if stats.PoolExhausted {
			stats.PlayersUnassigned += len(ordered) - i
			break
		}
		if assigned >= club.MaxPlayers {
			stats.PlayersSkipped++
			continue
		}

		slot, ok := pool.Allocate()
		if !ok {
			stats.PoolExhausted = true
			stats.PlayersUnassigned += len(ordered) - i
			break
		}

		out[slot] = BuildPlayerRecord(p, opts.BaseYear, opts.ImportLoans && p.OnLoan())
		rec.SetPlayerSlot(assigned, slot)
		assigned++
		stats.PlayersImported++
	}
	return assigned
}

// SquadOrder returns goalkeepers then outfield players, each by descending
// overall. Ties keep table order.
func SquadOrder(players []roster.Player) []roster.Player {
	var keepers, outfield []roster.Player
	for _, p := range players {
		if p.IsGoalkeeper() {
			keepers = append(keepers, p)
		} else {
			outfield = append(outfield, p)
		}
	}
	byOverall := func(ps []roster.Player) {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Overall > ps[j].Overall })
	}
	byOverall(keepers)
	byOverall(outfield)
	return append(keepers, outfield...)
}

func readClubs(r io.Reader, maxPlayers int, stats *Stats, log *slog.Logger) (*clubSet, error) {
	tr := csvtab.NewReader(r)
	cols, err := tr.Columns()
	if err != nil {
		return nil, fmt.Errorf("clubs table: %w", err)
	}
	if missing := cols.Missing(schema.Clubs.RequiredHeaders()); len(missing) > 0 {
		log.Warn("clubs table is missing required columns", "columns", missing)
	}

	set := &clubSet{byID: make(map[int]roster.Club)}
	for {
		row, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("clubs table: %w", err)
		}
		club, ok := roster.ParseClub(row, cols, maxPlayers)
		if !ok {
			stats.ClubRowsRejected++
			log.Debug("club row rejected", "line", tr.Line())
			continue
		}
		set.add(club)
	}

	if len(set.order) == 0 {
		return nil, fmt.Errorf("clubs table: %w", ErrNoClubs)
	}
	return set, nil
}

func readPlayers(r io.Reader, stats *Stats, log *slog.Logger) (map[int][]roster.Player, error) {
	tr := csvtab.NewReader(r)
	cols, err := tr.Columns()
	if err != nil {
		return nil, fmt.Errorf("players table: %w", err)
	}
	if missing := cols.Missing(schema.Players.RequiredHeaders()); len(missing) > 0 {
		log.Warn("players table is missing required columns", "columns", missing)
	}

	squads := make(map[int][]roster.Player)
	for {
		row, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("players table: %w", err)
		}
		p, ok := roster.ParsePlayer(row, cols)
		if !ok {
			stats.PlayersSkipped++
			log.Debug("player row skipped", "line", tr.Line())
			continue
		}
		squads[p.ClubID] = append(squads[p.ClubID], p)
	}
	return squads, nil
}

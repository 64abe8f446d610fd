package importer

import (
	"github.com/JonMunkholm/pm3import/internal/codec"
	"github.com/JonMunkholm/pm3import/internal/pm3"
	"github.com/JonMunkholm/pm3import/internal/roster"
	"github.com/JonMunkholm/pm3import/internal/schema"
)

// BuildPlayerRecord converts a player into its save record. Fields that the
// game fills in during play (morale, wages, appearances and so on) are zero.
func BuildPlayerRecord(p roster.Player, baseYear int, onLoan bool) pm3.PlayerRecord {
	var rec pm3.PlayerRecord

	rec.SetName(p.Name)
	rec.SetAgeRatings(p.Overall)

	rec.SetRating(pm3.OffHandling, p.Goalkeeping)
	rec.SetRating(pm3.OffTackling, p.Defending)
	rec.SetRating(pm3.OffPassing, p.Passing)
	rec.SetRating(pm3.OffShooting, p.Shooting)
	rec.SetRating(pm3.OffHeading, p.Heading)
	rec.SetRating(pm3.OffCreativity, p.Dribbling)

	fitness := p.Physic
	if fitness <= 0 {
		fitness = roster.DefaultFitness
	}
	rec.SetRating(pm3.OffFitness, fitness)

	rec.SetByte(pm3.OffAggression, aggressionScale(p.Attr(schema.Aggression)), 0, roster.MaxAggression)
	rec.SetByte(pm3.OffAge, p.Age, roster.MinPlayerAge, roster.MaxPlayerAge)
	rec.SetByte(pm3.OffFoot, int(p.Foot), int(roster.FootLeft), int(roster.FootAny))

	period, periodType := 0, 0
	if onLoan {
		period, periodType = roster.LoanPeriod, roster.LoanPeriodType
	}
	rec.SetUint16(pm3.OffPeriod, codec.Clamp(period, 0, 0xFF))
	rec.SetContract(contractYears(p.ContractYear, baseYear), periodType)

	return rec
}

// aggressionScale maps a 0-100 rating onto the 0-9 scale, rounding to the
// nearest ten.
func aggressionScale(v int) int {
	return (v + 5) / 10
}

// contractYears returns the seasons left on a contract, defaulting to 3 when
// either year is unknown or the contract has already expired.
func contractYears(contractYear, baseYear int) int {
	years := roster.DefaultContract
	if contractYear > 0 && baseYear > 0 {
		if d := contractYear - baseYear; d > 0 {
			years = d
		}
	}
	return codec.Clamp(years, 0, roster.MaxContractYears)
}

// ApplyClub writes a club's identity, league and kits into rec and empties
// its squad. Bytes the import does not manage are left as they were.
func ApplyClub(rec *pm3.ClubRecord, c roster.Club) {
	rec.SetName(c.Name)
	rec.SetManager(c.Manager)
	rec.SetStadium(c.Stadium)
	rec.SetLeague(c.League)
	for i, k := range c.Kits() {
		rec.SetKit(i, toRecordKit(k))
	}
	rec.ClearPlayerSlots()
}

func toRecordKit(k roster.Kit) pm3.Kit {
	rgb := func(c roster.Color) pm3.RGB { return pm3.RGB{c.R, c.G, c.B} }
	return pm3.Kit{
		Design: k.Design,
		Colors: [4]pm3.RGB{
			pm3.ShirtPrimary:   rgb(k.ShirtPrimary),
			pm3.ShirtSecondary: rgb(k.ShirtSecondary),
			pm3.Shorts:         rgb(k.Shorts),
			pm3.Socks:          rgb(k.Socks),
		},
	}
}

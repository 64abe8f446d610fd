package roster

import (
	"github.com/JonMunkholm/pm3import/internal/csvtab"
	"github.com/JonMunkholm/pm3import/internal/schema"
)

// ParsePlayer builds a Player from one row of the player table. It reports
// false when the sanitized name is empty, club_id is zero or overall is not
// positive.
func ParsePlayer(row []string, cols csvtab.ColumnMap) (Player, bool) {
	name := SanitizeName(cols.Field(row, schema.ShortName))
	clubID := cols.Int(row, schema.PlayerClubID)
	overall := cols.Int(row, schema.Overall)
	if name == "" || clubID == 0 || overall <= 0 {
		return Player{}, false
	}

	attrs := make(map[string]int, len(schema.DetailedAttributes)+len(schema.GoalkeeperStats))
	for _, col := range schema.DetailedAttributes {
		if v := cols.Int(row, col); v != 0 {
			attrs[col] = v
		}
	}
	for _, col := range schema.GoalkeeperStats {
		if v := cols.Int(row, col); v != 0 {
			attrs[col] = v
		}
	}

	p := Player{
		ID:           cols.Int(row, schema.PlayerID),
		ClubID:       clubID,
		Name:         name,
		Age:          cols.Int(row, schema.Age),
		Positions:    cols.Field(row, schema.Positions),
		Overall:      overall,
		Foot:         ParseFoot(cols.Field(row, schema.PreferredFoot)),
		Pace:         cols.Int(row, schema.Pace),
		Shooting:     cols.Int(row, schema.Shooting),
		Passing:      cols.Int(row, schema.Passing),
		Dribbling:    cols.Int(row, schema.Dribbling),
		Defending:    cols.Int(row, schema.Defending),
		Physic:       cols.Int(row, schema.Physic),
		Heading:      attrs[schema.HeadingAccuracy],
		Attributes:   attrs,
		ContractYear: cols.Int(row, schema.ContractUntil),
		LoanedFrom:   cols.Field(row, schema.LoanedFrom),
	}
	Derive(&p)
	return p, true
}

// Derive fills summary ratings that the row did not supply and computes the
// goalkeeper composite and the both-footed override.
//
// A summary rating that is not positive is replaced by the mean of its
// positive detailed ratings, or 0 when none are present. The goalkeeper
// composite always divides by six, so absent ratings count as zero.
func Derive(p *Player) {
	p.Shooting = deriveSummary(p.Shooting, p.Attributes, schema.ShootingDetail)
	p.Passing = deriveSummary(p.Passing, p.Attributes, schema.PassingDetail)
	p.Dribbling = deriveSummary(p.Dribbling, p.Attributes, schema.DribblingDetail)
	p.Defending = deriveSummary(p.Defending, p.Attributes, schema.DefendingDetail)

	sum := 0
	for _, col := range schema.GoalkeeperStats {
		sum += p.Attributes[col]
	}
	p.Goalkeeping = sum / GoalkeeperDivisor

	if playsBothFlanks(p.Positions) {
		p.Foot = FootBoth
	}
}

func deriveSummary(supplied int, attrs map[string]int, detail []string) int {
	if supplied > 0 {
		return supplied
	}
	sum, n := 0, 0
	for _, col := range detail {
		if v := attrs[col]; v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

var flankPairs = [][2]string{
	{"LB", "RB"},
	{"LM", "RM"},
	{"LW", "RW"},
}

func playsBothFlanks(positions string) bool {
	for _, pair := range flankPairs {
		if containsToken(positions, pair[0]) && containsToken(positions, pair[1]) {
			return true
		}
	}
	return false
}

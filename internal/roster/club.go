package roster

import (
	"github.com/JonMunkholm/pm3import/internal/codec"
	"github.com/JonMunkholm/pm3import/internal/csvtab"
	"github.com/JonMunkholm/pm3import/internal/schema"
)

// ParseClub builds a Club from one row of the club table. It reports false
// when the sanitized name is empty or club_id is zero.
//
// The row's max_players is used when positive, clamped to [1,24]; otherwise
// defaultMax applies. An away kit is read only when the header declares its
// design column.
func ParseClub(row []string, cols csvtab.ColumnMap, defaultMax int) (Club, bool) {
	id := cols.Int(row, schema.ClubID)
	name := SanitizeName(cols.Field(row, schema.ClubName))
	if id == 0 || name == "" {
		return Club{}, false
	}

	c := Club{
		ID:         id,
		Name:       name,
		Manager:    SanitizeName(cols.Field(row, schema.ManagerName)),
		Stadium:    SanitizeName(cols.Field(row, schema.StadiumName)),
		League:     cols.Int(row, schema.League),
		MaxPlayers: defaultMax,
		Home:       parseKit(row, cols, schema.KitColumnsFor(schema.KitHome)),
	}
	if mp := cols.Int(row, schema.MaxPlayers); mp > 0 {
		c.MaxPlayers = codec.Clamp(mp, 1, MaxSquadSize)
	}

	if kc := schema.KitColumnsFor(schema.KitAway1); cols.Has(kc.Design) {
		k := parseKit(row, cols, kc)
		c.Away1 = &k
	}
	if kc := schema.KitColumnsFor(schema.KitAway2); cols.Has(kc.Design) {
		k := parseKit(row, cols, kc)
		c.Away2 = &k
	}
	return c, true
}

func parseKit(row []string, cols csvtab.ColumnMap, kc schema.KitColumns) Kit {
	var ch [12]uint8
	for i, name := range kc.Channels {
		ch[i] = codec.ClampNibble(cols.Int(row, name))
	}
	return Kit{
		Design:         codec.ClampByte(cols.Int(row, kc.Design)),
		ShirtPrimary:   Color{ch[0], ch[1], ch[2]},
		ShirtSecondary: Color{ch[3], ch[4], ch[5]},
		Shorts:         Color{ch[6], ch[7], ch[8]},
		Socks:          Color{ch[9], ch[10], ch[11]},
	}
}

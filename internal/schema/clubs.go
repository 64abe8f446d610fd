package schema

// Club table columns.
const (
	ClubID      = "club_id"
	ClubName    = "club_name"
	ManagerName = "manager_name"
	StadiumName = "stadium_name"
	League      = "league"
	MaxPlayers  = "max_players"
)

// Kit column prefixes.
const (
	KitHome  = "home"
	KitAway1 = "away1"
	KitAway2 = "away2"
)

// KitPrefixes lists the kit prefixes in storage order.
var KitPrefixes = []string{KitHome, KitAway1, KitAway2}

// KitColumns holds the column names for one kit.
type KitColumns struct {
	Design string
	// Colour channels in order: shirt primary, shirt secondary, shorts, socks;
	// each as r, g, b.
	Channels [12]string
}

// KitColumnsFor returns the column names for the kit with the given prefix.
func KitColumnsFor(prefix string) KitColumns {
	parts := []string{"shirt_primary", "shirt_secondary", "shorts", "socks"}
	kc := KitColumns{Design: prefix + "_shirt_design"}
	for i, part := range parts {
		for j, ch := range []string{"r", "g", "b"} {
			kc.Channels[i*3+j] = prefix + "_" + part + "_" + ch
		}
	}
	return kc
}

// Clubs is the club table layout.
var Clubs = Table{
	Key:    "clubs",
	Label:  "Clubs",
	Fields: clubFields(),
}

func clubFields() []FieldSpec {
	fields := []FieldSpec{
		{Name: ClubID, Type: FieldNumeric, Required: true},
		{Name: ClubName, Type: FieldText, Required: true},
		{Name: ManagerName, Type: FieldText},
		{Name: StadiumName, Type: FieldText},
		{Name: League, Type: FieldNumeric},
		{Name: MaxPlayers, Type: FieldNumeric},
	}
	for _, prefix := range KitPrefixes {
		kc := KitColumnsFor(prefix)
		fields = append(fields, FieldSpec{Name: kc.Design, Type: FieldNumeric})
		for _, ch := range kc.Channels {
			fields = append(fields, FieldSpec{Name: ch, Type: FieldNumeric})
		}
	}
	return fields
}

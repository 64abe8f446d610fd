// Package roster turns table rows into validated club and player entities.
//
// Entities are plain values: parsing the same row twice yields equal results,
// and a rejected row never produces a partially filled entity.
package roster

// Squad limits.
const (
	MaxSquadSize      = 24
	DefaultSquadSize  = 16
	NumLeagues        = 5
	NumKits           = 3
	DefaultFitness    = 85
	DefaultContract   = 3
	MaxContractYears  = 7
	MinPlayerAge      = 16
	MaxPlayerAge      = 34
	MaxAggression     = 9
	LoanPeriod        = 108
	LoanPeriodType    = 20
	GoalkeeperDivisor = 6
)

// Color is an RGB triple with each channel in [0,15].
type Color struct {
	R, G, B uint8
}

// Kit is one strip: a design id in [0,99] and four colours.
type Kit struct {
	Design         uint8
	ShirtPrimary   Color
	ShirtSecondary Color
	Shorts         Color
	Socks          Color
}

// Club is a validated club row.
type Club struct {
	ID         int
	Name       string
	Manager    string
	Stadium    string
	League     int
	MaxPlayers int
	Home       Kit
	Away1      *Kit
	Away2      *Kit
}

// Kits returns the three kits in storage order. A missing away kit is
// replaced by the home kit.
func (c Club) Kits() [NumKits]Kit {
	kits := [NumKits]Kit{c.Home, c.Home, c.Home}
	if c.Away1 != nil {
		kits[1] = *c.Away1
	}
	if c.Away2 != nil {
		kits[2] = *c.Away2
	}
	return kits
}

// Foot is a player's preferred foot.
type Foot uint8

const (
	FootLeft Foot = iota
	FootRight
	FootBoth
	FootAny
)

func (f Foot) String() string {
	switch f {
	case FootLeft:
		return "Left"
	case FootRight:
		return "Right"
	case FootBoth:
		return "Both"
	default:
		return "Any"
	}
}

// ParseFoot maps the preferred_foot column. Unrecognised values are FootAny.
func ParseFoot(s string) Foot {
	switch s {
	case "Left":
		return FootLeft
	case "Right":
		return FootRight
	case "Both":
		return FootBoth
	default:
		return FootAny
	}
}

// Player is a validated player row.
type Player struct {
	ID        int
	ClubID    int
	Name      string
	Age       int
	Positions string
	Overall   int
	Foot      Foot

	Pace      int
	Shooting  int
	Passing   int
	Dribbling int
	Defending int
	Physic    int
	Heading   int

	// Goalkeeping is the mean of the six goalkeeper ratings.
	Goalkeeping int

	// Attributes holds every detailed and goalkeeper rating by column name.
	// Absent columns read as zero.
	Attributes map[string]int

	ContractYear int
	LoanedFrom   string
}

// Attr returns a detailed rating, zero when absent.
func (p Player) Attr(name string) int {
	return p.Attributes[name]
}

// IsGoalkeeper reports whether GK appears among the player's positions.
func (p Player) IsGoalkeeper() bool {
	return containsToken(p.Positions, "GK")
}

// OnLoan reports whether the loan column names a parent club.
func (p Player) OnLoan() bool {
	return IsLoanFieldSet(p.LoanedFrom)
}

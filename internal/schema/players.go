package schema

// Player table columns.
const (
	PlayerID        = "player_id"
	PlayerClubID    = "club_id"
	ShortName       = "short_name"
	Age             = "age"
	Positions       = "player_positions"
	Overall         = "overall"
	PreferredFoot   = "preferred_foot"
	Pace            = "pace"
	Shooting        = "shooting"
	Passing         = "passing"
	Dribbling       = "dribbling"
	Defending       = "defending"
	Physic          = "physic"
	ContractUntil   = "club_contract_valid_until_year"
	LoanedFrom      = "club_loaned_from"
	HeadingAccuracy = "attacking_heading_accuracy"

	GKDiving      = "goalkeeping_diving"
	GKHandling    = "goalkeeping_handling"
	GKKicking     = "goalkeeping_kicking"
	GKPositioning = "goalkeeping_positioning"
	GKReflexes    = "goalkeeping_reflexes"
	GKSpeed       = "goalkeeping_speed"

	Crossing       = "attacking_crossing"
	Finishing      = "attacking_finishing"
	ShortPassing   = "attacking_short_passing"
	Volleys        = "attacking_volleys"
	SkillDribbling = "skill_dribbling"
	Curve          = "skill_curve"
	FKAccuracy     = "skill_fk_accuracy"
	LongPassing    = "skill_long_passing"
	BallControl    = "skill_ball_control"
	Acceleration   = "movement_acceleration"
	SprintSpeed    = "movement_sprint_speed"
	Agility        = "movement_agility"
	Reactions      = "movement_reactions"
	Balance        = "movement_balance"
	ShotPower      = "power_shot_power"
	Jumping        = "power_jumping"
	Stamina        = "power_stamina"
	Strength       = "power_strength"
	LongShots      = "power_long_shots"
	Aggression     = "mentality_aggression"
	Interceptions  = "mentality_interceptions"
	Positioning    = "mentality_positioning"
	Vision         = "mentality_vision"
	Penalties      = "mentality_penalties"
	Composure      = "mentality_composure"
	Marking        = "defending_marking_awareness"
	StandingTackle = "defending_standing_tackle"
	SlidingTackle  = "defending_sliding_tackle"
)

// Detailed attribute groups used to derive missing summary ratings.
var (
	ShootingDetail  = []string{Finishing, Volleys, ShotPower, LongShots, Positioning, Penalties}
	PassingDetail   = []string{Crossing, ShortPassing, Curve, LongPassing, Vision}
	DribblingDetail = []string{SkillDribbling, BallControl, Agility, Balance, Reactions}
	DefendingDetail = []string{Marking, StandingTackle, SlidingTackle, Interceptions}
	GoalkeeperStats = []string{GKDiving, GKHandling, GKKicking, GKPositioning, GKReflexes, GKSpeed}
)

// DetailedAttributes lists every detailed attribute column.
var DetailedAttributes = []string{
	Crossing, Finishing, HeadingAccuracy, ShortPassing, Volleys,
	SkillDribbling, Curve, FKAccuracy, LongPassing, BallControl,
	Acceleration, SprintSpeed, Agility, Reactions, Balance,
	ShotPower, Jumping, Stamina, Strength, LongShots,
	Aggression, Interceptions, Positioning, Vision, Penalties, Composure,
	Marking, StandingTackle, SlidingTackle,
}

// Players is the player table layout.
var Players = Table{
	Key:    "players",
	Label:  "Players",
	Fields: playerFields(),
}

func playerFields() []FieldSpec {
	fields := []FieldSpec{
		{Name: PlayerID, Type: FieldNumeric},
		{Name: PlayerClubID, Type: FieldNumeric, Required: true},
		{Name: ShortName, Type: FieldText, Required: true},
		{Name: Age, Type: FieldNumeric},
		{Name: Positions, Type: FieldText},
		{Name: Overall, Type: FieldNumeric, Required: true},
		{Name: PreferredFoot, Type: FieldEnum, EnumValues: []string{"Left", "Right", "Both"}},
		{Name: Pace, Type: FieldNumeric},
		{Name: Shooting, Type: FieldNumeric},
		{Name: Passing, Type: FieldNumeric},
		{Name: Dribbling, Type: FieldNumeric},
		{Name: Defending, Type: FieldNumeric},
		{Name: Physic, Type: FieldNumeric},
		{Name: ContractUntil, Type: FieldNumeric},
		{Name: LoanedFrom, Type: FieldText},
	}
	for _, name := range GoalkeeperStats {
		fields = append(fields, FieldSpec{Name: name, Type: FieldNumeric})
	}
	for _, name := range DetailedAttributes {
		fields = append(fields, FieldSpec{Name: name, Type: FieldNumeric})
	}
	return fields
}

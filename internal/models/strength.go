package models

import "github.com/google/uuid"

// OffensiveStrength is a team's offensive aggregate over a lookback
// window (§3 OffensiveStrength, §4.2).
type OffensiveStrength struct {
	TeamID       uuid.UUID `json:"team_id"`
	Season       int       `json:"season"`
	Week         int       `json:"week"`
	GamesAnalyzed int      `json:"games_analyzed"`

	AvgPoints       float64 `json:"avg_points"`
	AvgTotalYards   float64 `json:"avg_total_yards"`
	AvgPassingYards float64 `json:"avg_passing_yards"`
	AvgRushingYards float64 `json:"avg_rushing_yards"`
	AvgPassTDs      float64 `json:"avg_pass_tds"`
	AvgRushTDs      float64 `json:"avg_rush_tds"`
	AvgTurnovers    float64 `json:"avg_turnovers"`
	AvgSacksAllowed float64 `json:"avg_sacks_allowed"`

	Composite float64 `json:"composite"` // [0,100]
}

// DefensiveStrength is a team's defensive aggregate over a lookback
// window (§3 DefensiveStrength, §4.2).
type DefensiveStrength struct {
	TeamID        uuid.UUID `json:"team_id"`
	Season        int       `json:"season"`
	Week          int       `json:"week"`
	GamesAnalyzed int       `json:"games_analyzed"`

	AvgPointsAllowed float64 `json:"avg_points_allowed"`
	AvgYardsAllowed  float64 `json:"avg_yards_allowed"`
	AvgTurnoversForced float64 `json:"avg_turnovers_forced"`
	AvgSacks         float64 `json:"avg_sacks"`

	Composite float64 `json:"composite"` // [0,100]
}

// MatchupClassification labels the offense/defense strength gap
// (§4.2 analyze_matchup).
type MatchupClassification string

const (
	MatchupStrongVsStrong MatchupClassification = "Strong vs Strong"
	MatchupStrongVsWeak   MatchupClassification = "Strong vs Weak"
	MatchupWeakVsStrong   MatchupClassification = "Weak vs Strong"
	MatchupWeakVsWeak     MatchupClassification = "Weak vs Weak"
	MatchupEven           MatchupClassification = "Even"
)

// MatchupStrength is the output of analyze_matchup (§4.2): the scalar
// modifiers FeatureBuilder folds into player/DST feature vectors.
type MatchupStrength struct {
	OffenseTeamID uuid.UUID `json:"offense_team_id"`
	DefenseTeamID uuid.UUID `json:"defense_team_id"`

	OffensiveAdvantage float64                `json:"offensive_advantage"`
	Classification     MatchupClassification  `json:"classification"`

	PointsModifier   float64 `json:"points_modifier"`   // clamp(1+off_adv/200, 0.5, 1.5)
	TurnoverModifier float64 `json:"turnover_modifier"` // clamp(1+def_adv/200, 0.5, 1.5)
	SackModifier     float64 `json:"sack_modifier"`     // clamp(1+(def_sacks-off_sacks_allowed)/5, 0.5, 1.5)
}

// PositionDefensiveProfile is a team's defensive profile broken down by
// opposing position, with league-relative ranks (§3 PositionDefensiveProfile,
// §4.2 position_profile).
type PositionDefensiveProfile struct {
	TeamID        uuid.UUID `json:"team_id"`
	Season        int       `json:"season"`
	Week          int       `json:"week"`
	GamesAnalyzed int       `json:"games_analyzed"`

	AvgPassYardsAllowed float64 `json:"avg_pass_yards_allowed"`
	AvgRushYardsAllowed float64 `json:"avg_rush_yards_allowed"`
	AvgPassTDsAllowed   float64 `json:"avg_pass_tds_allowed"`
	AvgRushTDsAllowed   float64 `json:"avg_rush_tds_allowed"`

	SackRate          float64 `json:"sack_rate"`          // sacks / opponent pass attempts
	InterceptionRate  float64 `json:"interception_rate"`  // ints / opponent pass attempts
	YardsPerCarryAllowed float64 `json:"yards_per_carry_allowed"`

	RBReceivingYardsAllowed float64 `json:"rb_receiving_yards_allowed"`
	WRReceivingYardsAllowed float64 `json:"wr_receiving_yards_allowed"`
	TEReceivingYardsAllowed float64 `json:"te_receiving_yards_allowed"`

	PointsAllowedRank     int `json:"points_allowed_rank"`     // 1 best .. 32 worst, ascending
	SackRateRank          int `json:"sack_rate_rank"`          // descending (more sacks = better rank)
	TurnoverCreationRank  int `json:"turnover_creation_rank"`  // descending
	RushDefenseRank       int `json:"rush_defense_rank"`       // approximated by points rank (§4.2)
}

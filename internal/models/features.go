package models

import "github.com/google/uuid"

// PlayerFeatures is the leak-free feature vector input for a skill
// position prediction (§3 PlayerFeatures, §4.3).
type PlayerFeatures struct {
	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Season   int       `json:"season"`
	Week     int       `json:"week"`
	Ruleset  string    `json:"ruleset"`
	Position Position  `json:"position"`

	AvgFantasyPointsL3   float64 `json:"avg_fp_l3"`
	AvgTargetsL3         float64 `json:"avg_targets_l3"`
	AvgCarriesL3         float64 `json:"avg_carries_l3"`
	AvgPassAttemptsL3    float64 `json:"avg_pass_attempts_l3"`
	TargetShareL3        float64 `json:"target_share_l3"`

	AvgFantasyPointsSeason float64 `json:"avg_fp_season"`
	GamesPlayedSeason      int     `json:"games_played_season"`

	PositionCode int `json:"position_code"` // QB=0 RB=1 WR=2 TE=3 other=4

	Consistency float64 `json:"consistency"` // population stddev of last-5 fantasy points
	Trend       float64 `json:"trend"`       // linear-regression slope of last-5 fantasy points

	// MatchupFeatures is the position's ordered matchup modifier map from
	// MatchupAnalyzer.position_matchup_features (§4.2); appended to the
	// base vector only when the artifact's feature schema declares
	// SupportsPositionFeatures.
	MatchupFeatures map[string]float64 `json:"matchup_features,omitempty"`
}

// PositionCodeFor maps a position to the integer encoding FeatureBuilder
// uses in the base feature vector (§4.3).
func PositionCodeFor(pos Position) int {
	switch pos {
	case PositionQB:
		return 0
	case PositionRB:
		return 1
	case PositionWR:
		return 2
	case PositionTE:
		return 3
	default:
		return 4
	}
}

// Vector returns the ordered base feature vector, optionally followed by
// the position's matchup features in matchupOrder order when
// includeMatchup is true (§4.3 feature vector contract).
func (f PlayerFeatures) Vector(includeMatchup bool, matchupOrder []string) []float64 {
	v := []float64{
		f.AvgFantasyPointsL3,
		f.AvgTargetsL3,
		f.AvgCarriesL3,
		f.AvgPassAttemptsL3,
		f.AvgFantasyPointsSeason,
		float64(f.GamesPlayedSeason),
		float64(f.PositionCode),
		f.TargetShareL3,
		f.Consistency,
		f.Trend,
	}
	if includeMatchup {
		for _, name := range matchupOrder {
			v = append(v, f.MatchupFeatures[name])
		}
	}
	return v
}

// DstFeatures is the leak-free feature vector input for a team-defense
// prediction (§3 DstFeatures, §4.3).
type DstFeatures struct {
	TeamID  uuid.UUID `json:"team_id"`
	Season  int       `json:"season"`
	Week    int        `json:"week"`
	Ruleset string    `json:"ruleset"`

	AvgPointsAllowedL3 float64 `json:"avg_points_allowed_l3"`
	AvgSacksL3         float64 `json:"avg_sacks_l3"`
	AvgTurnoversL3     float64 `json:"avg_turnovers_l3"`
	AvgFantasyPointsL3 float64 `json:"avg_fp_l3"`

	AvgPointsAllowedSeason float64 `json:"avg_points_allowed_season"`
	AvgSacksSeason         float64 `json:"avg_sacks_season"`
	AvgTurnoversSeason     float64 `json:"avg_turnovers_season"`
	AvgFantasyPointsSeason float64 `json:"avg_fp_season"`

	IsHome bool `json:"is_home"` // defaults true when unknown (§4.3)

	OpponentOffensiveScore float64            `json:"opponent_offensive_score"` // league default 21.0 (§9 Q2)
	MatchupFeatures        map[string]float64 `json:"matchup_features,omitempty"`

	Consistency float64 `json:"consistency"`
	Trend       float64 `json:"trend"`
}

// Vector returns the ordered DST feature vector.
func (f DstFeatures) Vector(matchupOrder []string) []float64 {
	home := 0.0
	if f.IsHome {
		home = 1.0
	}
	v := []float64{
		f.AvgPointsAllowedL3,
		f.AvgSacksL3,
		f.AvgTurnoversL3,
		f.AvgFantasyPointsL3,
		f.AvgPointsAllowedSeason,
		f.AvgSacksSeason,
		f.AvgTurnoversSeason,
		f.AvgFantasyPointsSeason,
		home,
		f.OpponentOffensiveScore,
		f.Consistency,
		f.Trend,
	}
	for _, name := range matchupOrder {
		v = append(v, f.MatchupFeatures[name])
	}
	return v
}

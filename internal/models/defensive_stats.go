package models

import (
	"github.com/google/uuid"
)

// TeamDefenseRow is a team's defensive statistics for one game (§3
// TeamDefenseRow, §6.1 team_defense_stats).
type TeamDefenseRow struct {
	TeamID uuid.UUID `json:"team_id"`
	GameID string    `json:"game_id"`
	Season int       `json:"season"`
	Week   int       `json:"week"`

	PointsAllowed          int `json:"points_allowed"`
	YardsAllowed           int `json:"yards_allowed"`
	PassingYardsAllowed    int `json:"passing_yards_allowed"`
	RushingYardsAllowed    int `json:"rushing_yards_allowed"`
	Sacks                  int `json:"sacks"`
	Interceptions          int `json:"interceptions"`
	FumblesRecovered       int `json:"fumbles_recovered"`
	DefensiveTouchdowns    int `json:"defensive_touchdowns"`
	PickSix                int `json:"pick_six"`
	FumbleTouchdowns       int `json:"fumble_touchdowns"`
	Safeties               int `json:"safeties"`
	ReturnTouchdowns       int `json:"return_touchdowns"`

	OpponentTeamID uuid.UUID `json:"opponent_team_id"`
	IsHome         bool      `json:"is_home"`

	// Opponent box-score aggregates over this game, used by
	// PositionDefensiveProfile to derive per-position yards allowed and
	// sack/interception rates (denominators live on the opponent's side
	// of the ledger, not the defense's own row).
	OpponentPassAttempts int `json:"-"`
	OpponentRushAttempts int `json:"-"`
	OpponentRBReceivingYards int `json:"-"`
	OpponentWRReceivingYards int `json:"-"`
	OpponentTEReceivingYards int `json:"-"`
}

// DefensiveRanking represents a team's rank in a specific defensive
// category over a lookback window (§4.2 position_profile ranks).
type DefensiveRanking struct {
	Rank     int       `json:"rank"`
	TeamID   uuid.UUID `json:"team_id"`
	Category string    `json:"category"`
	Value    float64   `json:"value"`
}

package models

import (
	"github.com/google/uuid"
)

// BoxScoreRow is a player's raw statistics for one game (§3 BoxScoreRow,
// §6.1 game_stats). It is the sole input to Scoring; every numeric field
// is tolerant of being zero-valued when a source feed omits it.
type BoxScoreRow struct {
	PlayerID uuid.UUID `json:"player_id"`
	GameID   string    `json:"game_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Season   int       `json:"season"`
	Week     int       `json:"week"`

	PassAttempts     int `json:"pass_attempts"`
	PassCompletions  int `json:"pass_completions"`
	PassYards        int `json:"pass_yards"`
	PassTDs          int `json:"pass_touchdowns"`
	PassInterceptions int `json:"pass_interceptions"`
	SacksTaken       int `json:"pass_sacks"`

	RushAttempts int `json:"rush_attempts"`
	RushYards    int `json:"rush_yards"`
	RushTDs      int `json:"rush_touchdowns"`
	RushFumbles  int `json:"rush_fumbles"`

	Receptions        int      `json:"receptions"`
	Targets           int      `json:"receiving_targets"`
	ReceivingYards    int      `json:"receiving_yards"`
	ReceivingTDs      int      `json:"receiving_touchdowns"`
	ReceivingFumbles  int      `json:"receiving_fumbles"`
	TargetShare       *float64 `json:"target_share,omitempty"`
}

package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Game represents an NFL game (§3 Game). ID is the official game
// identifier as stored in games.game_id; before ingest-time resolution a
// BoxScoreRow may carry a synthetic identifier instead (§6.1).
type Game struct {
	ID         string     `json:"id"`
	Season     int        `json:"season"`
	Week       int        `json:"week"` // >= 1
	Date       time.Time  `json:"date"`
	HomeTeamID uuid.UUID  `json:"home_team_id"`
	AwayTeamID uuid.UUID  `json:"away_team_id"`
	HomeScore  *int       `json:"home_score,omitempty"` // nullable until final
	AwayScore  *int       `json:"away_score,omitempty"` // nullable until final
}

// IsFinal reports whether both scores are set (required by I5 readiness).
func (g Game) IsFinal() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// syntheticGameIDPattern matches the ingest-time placeholder identifier
// format described in §6.1: "<season>_<week>_<T1>_vs_<T2>".
var syntheticGameIDPattern = regexp.MustCompile(`^\d{4}_\d{1,2}_[A-Z]{2,3}_vs_[A-Z]{2,3}$`)

// IsSyntheticGameID reports whether id matches the synthetic placeholder
// format that should have been normalized to an official game_id by
// ingestion before training or feature-building treats the week as ready.
func IsSyntheticGameID(id string) bool {
	return syntheticGameIDPattern.MatchString(id)
}

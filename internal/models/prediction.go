package models

import "github.com/google/uuid"

// PlayerPrediction is one player's raw or adjusted projection, carried
// through InjuryFilter and into LineupComposer (§4.6, §4.8).
type PlayerPrediction struct {
	PlayerID  uuid.UUID `json:"player_id"`
	PlayerName string   `json:"player_name"`
	Team      string    `json:"team"`
	Position  Position  `json:"position"`

	PredictedPoints float64 `json:"predicted_points"`

	// Ceiling/Floor are the §9.2 90th/10th-percentile projection band,
	// reported alongside PredictedPoints but never used for lineup
	// selection.
	Ceiling float64 `json:"ceiling"`
	Floor   float64 `json:"floor"`

	// InjuryAdjustment is the severity s applied by InjuryFilter.adjust,
	// present only when s > 0 (§4.6).
	InjuryAdjustment *float64 `json:"injury_adjustment,omitempty"`
}

// DstPrediction is one team defense's raw or adjusted projection,
// including the opponent-injury uplift (§4.6, §4.8).
type DstPrediction struct {
	TeamID   uuid.UUID `json:"team_id"`
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`

	BasePoints      float64  `json:"base_points"`
	OpponentBoost   float64  `json:"opponent_boost"` // multiplicative uplift, capped at 0.25
	PredictedPoints float64  `json:"predicted_points"`

	// Ceiling/Floor are the §9.2 90th/10th-percentile projection band,
	// reported alongside PredictedPoints but never used for lineup
	// selection.
	Ceiling float64 `json:"ceiling"`
	Floor   float64 `json:"floor"`
}

// InjuryReportSummary carries the counts and groupings the orchestrator
// attaches to gameday_predictions when injury adjustments are enabled
// (§4.8 injury_report).
type InjuryReportSummary struct {
	TotalReported int            `json:"total_reported"`
	FilteredOut   int            `json:"filtered_out"`
	Adjusted      int            `json:"adjusted"`
	ByStatus      map[string]int `json:"by_status"`
}

// PredictionSummary is the §4.8 summary block.
type PredictionSummary struct {
	PlayerCount     int     `json:"player_count"`
	DstCount        int     `json:"dst_count"`
	AveragePoints   float64 `json:"average_points"`
	TopPlayer       string  `json:"top_player,omitempty"`
	TopPlayerPoints float64 `json:"top_player_points,omitempty"`
	OptimalTotal    float64 `json:"optimal_total"`
}

// GamedayResult is the single structured return value of
// gameday_predictions (§4.8).
type GamedayResult struct {
	Timestamp string `json:"timestamp"`
	Season    int    `json:"season"`
	Week      int    `json:"week"`
	Ruleset   string `json:"ruleset"`

	InjuryReport *InjuryReportSummary `json:"injury_report,omitempty"`

	PlayerPredictions []PlayerPrediction `json:"player_predictions"`
	DstPredictions    []DstPrediction    `json:"dst_predictions"`

	OptimalLineup LineupResult `json:"optimal_lineup"`

	Summary PredictionSummary `json:"summary"`
}

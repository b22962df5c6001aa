// Package cutoff answers "which seasons should training use" and "is
// week (S,W) safe to train on" (§4.5 CutoffPolicy).
package cutoff

import (
	"context"

	"github.com/gridiron-projections/engine/internal/models"
)

// MinSeason is the earliest season training data is trusted from
// (§4.5 training_seasons: "Filter to seasons >= 2020").
const MinSeason = 2020

// MinCurrentSeasonGames is the threshold of completed games in
// current_season before it is included in training (§4.5).
const MinCurrentSeasonGames = 8

// DataSource is the narrow read surface CutoffPolicy needs.
type DataSource interface {
	GamesForWeek(ctx context.Context, season, week int) ([]models.Game, error)
	TeamDefenseRowCount(ctx context.Context, season, week int) (int, error)
	BoxScoreGameIDsForWeek(ctx context.Context, season, week int) ([]string, error)
	GamesCompletedCount(ctx context.Context, season int) (int, error)
}

// Policy implements CutoffPolicy (§4.5). It holds no state beyond its
// DataSource; verdicts are pure functions of current data.
type Policy struct {
	source DataSource
}

// New builds a Policy over source.
func New(source DataSource) *Policy {
	return &Policy{source: source}
}

// TrainingSeasons returns the seasons training should use for
// currentSeason: the three prior complete seasons, plus currentSeason
// itself once it has enough completed games, filtered to >= MinSeason
// (§4.5 training_seasons).
func (p *Policy) TrainingSeasons(ctx context.Context, currentSeason int) ([]int, error) {
	var seasons []int
	for s := currentSeason - 3; s < currentSeason; s++ {
		if s >= MinSeason {
			seasons = append(seasons, s)
		}
	}

	completed, err := p.source.GamesCompletedCount(ctx, currentSeason)
	if err != nil {
		return nil, err
	}
	if completed >= MinCurrentSeasonGames && currentSeason >= MinSeason {
		seasons = append(seasons, currentSeason)
	}

	return seasons, nil
}

// WeekReady reports whether week (season, week) is fully ingested and
// safe to train on (§4.5 week_ready, I5). It never errors: DB failures
// collapse to "not ready" per §4.5 Failure.
func (p *Policy) WeekReady(ctx context.Context, season, week int) bool {
	games, err := p.source.GamesForWeek(ctx, season, week)
	if err != nil || len(games) == 0 {
		return false
	}
	for _, g := range games {
		if !g.IsFinal() {
			return false
		}
	}

	defenseCount, err := p.source.TeamDefenseRowCount(ctx, season, week)
	if err != nil || defenseCount != 2*len(games) {
		return false
	}

	gameIDs, err := p.source.BoxScoreGameIDsForWeek(ctx, season, week)
	if err != nil {
		return false
	}
	for _, id := range gameIDs {
		if models.IsSyntheticGameID(id) {
			return false
		}
	}

	return true
}

// LatestReadyBefore scans weeks (season, week-1..1), then up to four
// prior seasons (week 18..1), returning the first ready (season, week)
// or (0, 0, false) if none is found (§4.5 latest_ready_before).
func (p *Policy) LatestReadyBefore(ctx context.Context, season, week int) (readySeason, readyWeek int, ok bool) {
	for w := week - 1; w >= 1; w-- {
		if p.WeekReady(ctx, season, w) {
			return season, w, true
		}
	}
	for s := season - 1; s >= season-4; s-- {
		for w := 18; w >= 1; w-- {
			if p.WeekReady(ctx, s, w) {
				return s, w, true
			}
		}
	}
	return 0, 0, false
}

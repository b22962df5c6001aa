// Package matchup produces team-level and position-level matchup
// signals for a (team, season, week): offensive/defensive strength
// composites, opponent lookups, and position-specific defensive
// profiles with matchup modifiers (§4.2).
package matchup

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
)

// DataSource is the narrow read surface MatchupAnalyzer needs; *store.Store
// satisfies it.
type DataSource interface {
	TeamBoxScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.BoxScoreRow, error)
	TeamScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (map[string]int, error)
	TeamDefenseRowsInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.TeamDefenseRow, error)
	LeagueTeamDefenseRowsInWindow(ctx context.Context, season, week, lookback int) ([]models.TeamDefenseRow, error)
	OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error)
}

// DefaultLookback is the lookback window used when none is supplied
// (§4.2 offensive_strength/defensive_strength default = 8).
const DefaultLookback = 8

// Analyzer implements MatchupAnalyzer (§4.2). It is stateless beyond its
// DataSource; strengths and profiles may be memoized by the caller per
// (team, season, week), per §3 Lifecycles.
type Analyzer struct {
	source DataSource
}

// New builds an Analyzer over source.
func New(source DataSource) *Analyzer {
	return &Analyzer{source: source}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OffensiveStrength aggregates a team's games with week < week and
// week >= week-lookback in season into a composite offensive score
// (§4.2 Algorithm (strengths)).
func (a *Analyzer) OffensiveStrength(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (models.OffensiveStrength, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	rows, err := a.source.TeamBoxScoresInWindow(ctx, teamID, season, week, lookback)
	if err != nil {
		return models.OffensiveStrength{}, err
	}
	scores, err := a.source.TeamScoresInWindow(ctx, teamID, season, week, lookback)
	if err != nil {
		return models.OffensiveStrength{}, err
	}

	games := distinctGames(rows)
	n := len(games)
	if n == 0 {
		return models.OffensiveStrength{TeamID: teamID, Season: season, Week: week}, nil
	}

	var totalYards, passYards, rushYards, passTDs, rushTDs, turnovers, sacksAllowed float64
	for _, r := range rows {
		passYards += float64(r.PassYards)
		rushYards += float64(r.RushYards)
		passTDs += float64(r.PassTDs)
		rushTDs += float64(r.RushTDs)
		turnovers += float64(r.PassInterceptions + r.RushFumbles + r.ReceivingFumbles)
		sacksAllowed += float64(r.SacksTaken)
	}
	totalYards = passYards + rushYards

	var points float64
	for _, g := range games {
		points += float64(scores[g])
	}

	avg := func(v float64) float64 { return v / float64(n) }

	s := models.OffensiveStrength{
		TeamID:          teamID,
		Season:          season,
		Week:            week,
		GamesAnalyzed:   n,
		AvgPoints:       avg(points),
		AvgTotalYards:   avg(totalYards),
		AvgPassingYards: avg(passYards),
		AvgRushingYards: avg(rushYards),
		AvgPassTDs:      avg(passTDs),
		AvgRushTDs:      avg(rushTDs),
		AvgTurnovers:    avg(turnovers),
		AvgSacksAllowed: avg(sacksAllowed),
	}

	s.Composite = 0.4*clamp(s.AvgPoints/30*100, 0, 100) +
		0.3*clamp(s.AvgTotalYards/400*100, 0, 100) +
		0.2*clamp((s.AvgPassTDs+s.AvgRushTDs)/3*100, 0, 100) +
		0.1*max0(100-s.AvgTurnovers*25)

	return s, nil
}

// DefensiveStrength aggregates a team's defensive rows over the lookback
// window into a composite defensive score (§4.2 Algorithm (strengths)).
func (a *Analyzer) DefensiveStrength(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (models.DefensiveStrength, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	rows, err := a.source.TeamDefenseRowsInWindow(ctx, teamID, season, week, lookback)
	if err != nil {
		return models.DefensiveStrength{}, err
	}
	n := len(rows)
	if n == 0 {
		return models.DefensiveStrength{TeamID: teamID, Season: season, Week: week}, nil
	}

	var pointsAllowed, yardsAllowed, turnoversForced, sacks float64
	for _, r := range rows {
		pointsAllowed += float64(r.PointsAllowed)
		yardsAllowed += float64(r.YardsAllowed)
		turnoversForced += float64(r.Interceptions + r.FumblesRecovered)
		sacks += float64(r.Sacks)
	}
	avg := func(v float64) float64 { return v / float64(n) }

	s := models.DefensiveStrength{
		TeamID:             teamID,
		Season:             season,
		Week:               week,
		GamesAnalyzed:      n,
		AvgPointsAllowed:   avg(pointsAllowed),
		AvgYardsAllowed:    avg(yardsAllowed),
		AvgTurnoversForced: avg(turnoversForced),
		AvgSacks:           avg(sacks),
	}

	s.Composite = 0.4*clamp(100-(s.AvgPointsAllowed-14)*3, 0, 100) +
		0.3*clamp(100-(s.AvgYardsAllowed-250)*0.2, 0, 100) +
		0.2*min(100, s.AvgTurnoversForced*40) +
		0.1*min(100, s.AvgSacks*25)

	return s, nil
}

// AnalyzeMatchup classifies the offense/defense strength gap and
// derives the scalar modifiers FeatureBuilder applies (§4.2 Algorithm
// (matchup)).
func (a *Analyzer) AnalyzeMatchup(ctx context.Context, offenseTeam, defenseTeam uuid.UUID, season, week int) (models.MatchupStrength, error) {
	off, err := a.OffensiveStrength(ctx, offenseTeam, season, week, DefaultLookback)
	if err != nil {
		return models.MatchupStrength{}, err
	}
	def, err := a.DefensiveStrength(ctx, defenseTeam, season, week, DefaultLookback)
	if err != nil {
		return models.MatchupStrength{}, err
	}

	offAdv := off.Composite - def.Composite
	defAdv := def.Composite - off.Composite

	class := classify(off.Composite, def.Composite)

	m := models.MatchupStrength{
		OffenseTeamID:      offenseTeam,
		DefenseTeamID:      defenseTeam,
		OffensiveAdvantage: offAdv,
		Classification:     class,
		PointsModifier:     clamp(1+offAdv/200, 0.5, 1.5),
		TurnoverModifier:   clamp(1+defAdv/200, 0.5, 1.5),
		SackModifier:       clamp(1+(def.AvgSacks-off.AvgSacksAllowed)/5, 0.5, 1.5),
	}
	return m, nil
}

func classify(off, def float64) models.MatchupClassification {
	const threshold = 70
	offStrong := off >= threshold
	defStrong := def >= threshold
	switch {
	case offStrong && defStrong:
		return models.MatchupStrongVsStrong
	case offStrong && !defStrong:
		return models.MatchupStrongVsWeak
	case !offStrong && defStrong:
		return models.MatchupWeakVsStrong
	case !offStrong && !defStrong && off < threshold && def < threshold:
		return models.MatchupWeakVsWeak
	default:
		return models.MatchupEven
	}
}

// OpponentFor returns the team a given team plays in (season, week), or
// nil if it has no game that week (§4.2 opponent_for).
func (a *Analyzer) OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error) {
	return a.source.OpponentFor(ctx, teamID, season, week)
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func distinctGames(rows []models.BoxScoreRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.GameID] = struct{}{}
	}
	games := make([]string, 0, len(seen))
	for g := range seen {
		games = append(games, g)
	}
	sort.Strings(games)
	return games
}

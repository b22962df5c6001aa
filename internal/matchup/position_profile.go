package matchup

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
)

// PositionProfile aggregates a team's defense-vs-position signals and
// league-relative ranks over the lookback window (§4.2 position_profile).
func (a *Analyzer) PositionProfile(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (models.PositionDefensiveProfile, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	rows, err := a.source.TeamDefenseRowsInWindow(ctx, teamID, season, week, lookback)
	if err != nil {
		return models.PositionDefensiveProfile{}, err
	}
	n := len(rows)
	if n == 0 {
		return models.PositionDefensiveProfile{TeamID: teamID, Season: season, Week: week}, nil
	}

	var passYards, rushYards, passTDs, rushTDs, sacks, ints, oppPassAttempts, carries float64
	var rbYards, wrYards, teYards float64
	for _, r := range rows {
		passYards += float64(r.PassingYardsAllowed)
		rushYards += float64(r.RushingYardsAllowed)
		sacks += float64(r.Sacks)
		ints += float64(r.Interceptions)
		oppPassAttempts += float64(r.OpponentPassAttempts)
		carries += float64(r.OpponentRushAttempts)
		rbYards += float64(r.OpponentRBReceivingYards)
		wrYards += float64(r.OpponentWRReceivingYards)
		teYards += float64(r.OpponentTEReceivingYards)
	}
	avg := func(v float64) float64 { return v / float64(n) }

	profile := models.PositionDefensiveProfile{
		TeamID:                  teamID,
		Season:                  season,
		Week:                    week,
		GamesAnalyzed:           n,
		AvgPassYardsAllowed:     avg(passYards),
		AvgRushYardsAllowed:     avg(rushYards),
		AvgPassTDsAllowed:       avg(passTDs),
		AvgRushTDsAllowed:       avg(rushTDs),
		RBReceivingYardsAllowed: avg(rbYards),
		WRReceivingYardsAllowed: avg(wrYards),
		TEReceivingYardsAllowed: avg(teYards),
	}
	if oppPassAttempts > 0 {
		profile.SackRate = sacks / oppPassAttempts
		profile.InterceptionRate = ints / oppPassAttempts
	}
	if carries > 0 {
		profile.YardsPerCarryAllowed = rushYards / carries
	}

	ranks, err := a.leagueRanks(ctx, season, week, lookback, teamID)
	if err != nil {
		return models.PositionDefensiveProfile{}, err
	}
	profile.PointsAllowedRank = ranks.pointsAllowed
	profile.SackRateRank = ranks.sackRate
	profile.TurnoverCreationRank = ranks.turnoverCreation
	profile.RushDefenseRank = ranks.pointsAllowed // approximated by points rank (§4.2)

	return profile, nil
}

type teamRanks struct {
	pointsAllowed    int
	sackRate         int
	turnoverCreation int
}

// leagueRanks computes the league-wide rank of teamID in three
// categories over the same lookback window (§4.2: "Assign ranks using
// the league-wide distribution over the same lookback").
func (a *Analyzer) leagueRanks(ctx context.Context, season, week, lookback int, teamID uuid.UUID) (teamRanks, error) {
	rows, err := a.source.LeagueTeamDefenseRowsInWindow(ctx, season, week, lookback)
	if err != nil {
		return teamRanks{}, err
	}

	type agg struct {
		teamID        uuid.UUID
		games         int
		pointsAllowed float64
		sacks         float64
		turnovers     float64
		passAttempts  float64
	}
	byTeam := make(map[uuid.UUID]*agg)
	for _, r := range rows {
		a, ok := byTeam[r.TeamID]
		if !ok {
			a = &agg{teamID: r.TeamID}
			byTeam[r.TeamID] = a
		}
		a.games++
		a.pointsAllowed += float64(r.PointsAllowed)
		a.sacks += float64(r.Sacks)
		a.turnovers += float64(r.Interceptions + r.FumblesRecovered)
		a.passAttempts += float64(r.OpponentPassAttempts)
	}

	teams := make([]*agg, 0, len(byTeam))
	for _, v := range byTeam {
		teams = append(teams, v)
	}

	rankBy := func(less func(i, j *agg) bool) int {
		sort.Slice(teams, func(i, j int) bool { return less(teams[i], teams[j]) })
		for i, t := range teams {
			if t.teamID == teamID {
				return i + 1
			}
		}
		return len(teams) + 1
	}

	avgPointsAllowed := func(a *agg) float64 {
		if a.games == 0 {
			return 0
		}
		return a.pointsAllowed / float64(a.games)
	}
	sackRate := func(a *agg) float64 {
		if a.passAttempts == 0 {
			return 0
		}
		return a.sacks / a.passAttempts
	}
	turnoverCreation := func(a *agg) float64 {
		if a.games == 0 {
			return 0
		}
		return a.turnovers / float64(a.games)
	}

	pointsRank := rankBy(func(i, j *agg) bool { return avgPointsAllowed(i) < avgPointsAllowed(j) })
	sackRateRank := rankBy(func(i, j *agg) bool { return sackRate(i) > sackRate(j) })
	turnoverRank := rankBy(func(i, j *agg) bool { return turnoverCreation(i) > turnoverCreation(j) })

	return teamRanks{pointsAllowed: pointsRank, sackRate: sackRateRank, turnoverCreation: turnoverRank}, nil
}

// PositionMatchupFeatures returns the small ordered modifier map for
// position against the defense's profile (§4.2 position_matchup_features).
func (a *Analyzer) PositionMatchupFeatures(ctx context.Context, position models.Position, offenseTeam, defenseTeam uuid.UUID, season, week int) (map[string]float64, error) {
	profile, err := a.PositionProfile(ctx, defenseTeam, season, week, DefaultLookback)
	if err != nil {
		return nil, err
	}

	topTier := profile.PointsAllowedRank <= 8
	bottomTier := profile.PointsAllowedRank >= 25 // "bottom 8" of 32

	switch position {
	case models.PositionQB:
		mod := rankModifier(profile.PointsAllowedRank, 0.7, 1.4)
		return map[string]float64{
			"opponent_pass_defense_rank": float64(profile.PointsAllowedRank),
			"opponent_pass_rush_pressure": profile.SackRate,
			"opponent_turnover_creation":  float64(profile.TurnoverCreationRank),
			"qb_efficiency_modifier":      mod,
			"qb_ceiling_modifier":         boolModifier(bottomTier, 1.4, boolModifier(topTier, 0.7, 1.0)),
		}, nil
	case models.PositionRB:
		mod := rankModifier(profile.RushDefenseRank, 0.6, 1.5)
		return map[string]float64{
			"opponent_rush_defense_rank":       float64(profile.RushDefenseRank),
			"opponent_rb_receiving_weakness":   profile.RBReceivingYardsAllowed,
			"rb_volume_modifier":               mod,
			"rb_efficiency_modifier":           mod,
			"rb_goal_line_advantage":           boolModifier(bottomTier, 1.3, 1.0),
		}, nil
	case models.PositionWR:
		mod := rankModifier(profile.PointsAllowedRank, 0.7, 1.4)
		return map[string]float64{
			"opponent_pass_defense_rank":    float64(profile.PointsAllowedRank),
			"opponent_wr_coverage_weakness": profile.WRReceivingYardsAllowed,
			"wr_pressure_impact":            profile.SackRate,
			"wr_efficiency_modifier":        mod,
			"wr_ceiling_modifier":           boolModifier(bottomTier, 1.4, boolModifier(topTier, 0.7, 1.0)),
		}, nil
	case models.PositionTE:
		mod := rankModifier(profile.PointsAllowedRank, 0.7, 1.3)
		return map[string]float64{
			"opponent_te_coverage_weakness": profile.TEReceivingYardsAllowed,
			"opponent_pass_defense_rank":    float64(profile.PointsAllowedRank),
			"te_checkdown_opportunity":      mod,
			"te_efficiency_modifier":        mod,
			"te_red_zone_advantage":         boolModifier(bottomTier, 1.2, 1.0),
		}, nil
	default:
		return map[string]float64{}, nil
	}
}

// rankModifier scales a 1..32 rank into [lo,hi], worse rank (higher
// number, weaker defense) yielding a higher modifier (§4.2: "Modifiers
// are computed from rank thresholds... and clamped per position").
func rankModifier(rank int, lo, hi float64) float64 {
	if rank <= 0 {
		return (lo + hi) / 2
	}
	frac := float64(rank-1) / 31.0 // 0 = best defense, 1 = worst
	return clamp(lo+frac*(hi-lo), lo, hi)
}

func boolModifier(cond bool, whenTrue, whenFalse float64) float64 {
	if cond {
		return whenTrue
	}
	return whenFalse
}

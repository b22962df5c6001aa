package features

import (
	"context"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/scoring"
)

func (b *Builder) priorDefenseRows(ctx context.Context, teamID uuid.UUID, season, week int) ([]models.TeamDefenseRow, error) {
	b.mu.Lock()
	rows, ok := b.dstCache[teamID]
	b.mu.Unlock()
	if ok {
		return rows, nil
	}

	rows, err := b.store.TeamDefenseRowsBefore(ctx, teamID, season, week, MaxDstHistory)
	if err != nil {
		return nil, errs.Wrap(errs.DataBackend, "team defense rows before", err)
	}
	b.mu.Lock()
	b.dstCache[teamID] = rows
	b.mu.Unlock()
	return rows, nil
}

// BuildDstFeatures builds DstFeatures for (team, season, week, ruleset),
// leak-free (I3) (§4.3 build_dst_features).
func (b *Builder) BuildDstFeatures(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (models.DstFeatures, error) {
	rows, err := b.priorDefenseRows(ctx, teamID, season, week)
	if err != nil {
		return models.DstFeatures{}, err
	}
	if len(rows) < MinPlayerHistory {
		return models.DstFeatures{}, errs.ErrNotEnoughHistory
	}

	rs, err := b.scores.Get(ruleset)
	if err != nil {
		return models.DstFeatures{}, err
	}

	fp := make([]float64, len(rows))
	for i, r := range rows {
		fp[i] = scoring.ScoreDST(r, rs).Total
	}

	l3 := minInt(3, len(rows))
	var pointsL3, sacksL3, turnoversL3, fpL3 float64
	for i := 0; i < l3; i++ {
		pointsL3 += float64(rows[i].PointsAllowed)
		sacksL3 += float64(rows[i].Sacks)
		turnoversL3 += float64(rows[i].Interceptions + rows[i].FumblesRecovered)
		fpL3 += fp[i]
	}
	pointsL3 /= float64(l3)
	sacksL3 /= float64(l3)
	turnoversL3 /= float64(l3)
	fpL3 /= float64(l3)

	var pointsSeason, sacksSeason, turnoversSeason, fpSeason float64
	var seasonGames int
	for i, r := range rows {
		if r.Season == season {
			pointsSeason += float64(r.PointsAllowed)
			sacksSeason += float64(r.Sacks)
			turnoversSeason += float64(r.Interceptions + r.FumblesRecovered)
			fpSeason += fp[i]
			seasonGames++
		}
	}
	if seasonGames > 0 {
		pointsSeason /= float64(seasonGames)
		sacksSeason /= float64(seasonGames)
		turnoversSeason /= float64(seasonGames)
		fpSeason /= float64(seasonGames)
	}

	l5 := minInt(5, len(rows))
	last5 := make([]float64, l5)
	for i := 0; i < l5; i++ {
		last5[l5-1-i] = fp[i]
	}
	consistency := populationStdDev(last5)
	trend := linregSlope(last5)

	isHome := true // defaults true when unknown (§4.3)
	if len(rows) > 0 {
		isHome = rows[0].IsHome
	}

	features := models.DstFeatures{
		TeamID:                 teamID,
		Season:                 season,
		Week:                   week,
		Ruleset:                ruleset,
		AvgPointsAllowedL3:     pointsL3,
		AvgSacksL3:             sacksL3,
		AvgTurnoversL3:         turnoversL3,
		AvgFantasyPointsL3:     fpL3,
		AvgPointsAllowedSeason: pointsSeason,
		AvgSacksSeason:         sacksSeason,
		AvgTurnoversSeason:     turnoversSeason,
		AvgFantasyPointsSeason: fpSeason,
		IsHome:                 isHome,
		OpponentOffensiveScore: LeagueAverageDstOpponentScore,
		Consistency:            consistency,
		Trend:                  trend,
	}

	// get_matchup_for_dst (§4.3): the DST analogue of position_matchup_features,
	// exposed here as the scalar modifiers from analyze_matchup rather
	// than a position-keyed map, since DST has no offense/defense split.
	opponent, err := b.matchup.OpponentFor(ctx, teamID, season, week)
	if err == nil && opponent != nil {
		if ms, err := b.matchup.AnalyzeMatchup(ctx, *opponent, teamID, season, week); err == nil {
			features.MatchupFeatures = map[string]float64{
				"points_modifier":   ms.PointsModifier,
				"turnover_modifier": ms.TurnoverModifier,
				"sack_modifier":     ms.SackModifier,
			}
		}
	}

	return features, nil
}

// Package orchestrator implements the single public
// gameday_predictions operation (§4.8 Orchestrator): wiring Scoring,
// MatchupAnalyzer, FeatureBuilder, ModelStore, CutoffPolicy,
// InjuryFilter, and LineupComposer into one request.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/injury"
	"github.com/gridiron-projections/engine/internal/lineup"
	"github.com/gridiron-projections/engine/internal/modelstore"
	"github.com/gridiron-projections/engine/internal/models"
	"golang.org/x/sync/singleflight"
)

// DataSource is the narrow read surface the orchestrator needs directly
// (eligible players, games, team names) beyond what ModelStore,
// CutoffPolicy, and FeatureBuilder already wrap.
type DataSource interface {
	EligiblePlayers(ctx context.Context, season, week int) ([]models.Player, error)
	GamesForWeek(ctx context.Context, season, week int) ([]models.Game, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// ModelStore is the subset of internal/modelstore.Store the orchestrator
// drives directly.
type ModelStore interface {
	Cutoff(ctx context.Context, ruleset string, season, week int, policy CutoffSource) (*models.ModelArtifact, error)
	PublishCurrent(ruleset string, season, week int, artifact *models.ModelArtifact) error
	PredictPlayer(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (*float64, error)
	PredictDst(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (*float64, error)
}

// CutoffSource is an alias of internal/modelstore.CutoffSource: the two
// must stay the exact same type (not merely structurally equivalent) for
// *modelstore.Store's Cutoff method to satisfy the ModelStore interface
// below.
type CutoffSource = modelstore.CutoffSource

// FeatureSource is the Prefetch-capable collaborator used to warm the
// feature cache before prediction (§4.8 step 4), and the source of the
// Consistency figure CeilingFloor needs to report a projection band
// (§9.2).
type FeatureSource interface {
	Prefetch(ctx context.Context, playerIDs []uuid.UUID, season, week int) error
	BuildPlayerFeatures(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (models.PlayerFeatures, error)
	BuildDstFeatures(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (models.DstFeatures, error)
}

// Orchestrator wires every core component into gameday_predictions.
type Orchestrator struct {
	data     DataSource
	models   ModelStore
	cutoff   CutoffSource
	features FeatureSource
	injuries injury.Source
	salary   lineup.SalaryEstimator

	sf singleflight.Group
}

// New builds an Orchestrator. salary may be nil, in which case the
// salary-aware composer degrades to the basic composer (DESIGN.md Q1).
func New(data DataSource, models ModelStore, cutoff CutoffSource, features FeatureSource, injuries injury.Source, salary lineup.SalaryEstimator) *Orchestrator {
	return &Orchestrator{data: data, models: models, cutoff: cutoff, features: features, injuries: injuries, salary: salary}
}

// GamedayPredictions is the single public operation (§4.8).
func (o *Orchestrator) GamedayPredictions(ctx context.Context, season, week int, ruleset string, includeInjuryAdjustments bool) (*models.GamedayResult, error) {
	key := fmt.Sprintf("%s|%d|%d", ruleset, season, week)
	v, err, _ := o.sf.Do(key, func() (interface{}, error) {
		return o.run(ctx, season, week, ruleset, includeInjuryAdjustments)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.GamedayResult), nil
}

func (o *Orchestrator) run(ctx context.Context, season, week int, ruleset string, includeInjuryAdjustments bool) (*models.GamedayResult, error) {
	// Step 1: current injury report (optional, degrades gracefully).
	var report *injury.Report
	if includeInjuryAdjustments && o.injuries != nil {
		records, err := o.injuries.CurrentInjuries(ctx, "")
		if err != nil {
			report = nil
		} else {
			report = injury.NewReport(records)
		}
	}

	// Step 2: eligible players for (season, week).
	players, err := o.data.EligiblePlayers(ctx, season, week)
	if err != nil {
		return nil, errs.Wrap(errs.DataBackend, "list eligible players", err)
	}

	// Step 3: ensure a cutoff artifact is resident, training if absent,
	// and publish it so PredictPlayer/PredictDst serve from it (§4.8
	// step 3: "train-with-cutoff and publish").
	artifact, err := o.models.Cutoff(ctx, ruleset, season, week, o.cutoff)
	if err != nil {
		if errs.Is(err, errs.SchemaMismatch) {
			return nil, err
		}
		return nil, errs.Wrap(errs.DataBackend, "ensure cutoff model", err)
	}
	if err := o.models.PublishCurrent(ruleset, season, week, artifact); err != nil {
		return nil, errs.Wrap(errs.DataBackend, "publish cutoff model", err)
	}

	// Step 4: prefetch feature cache for all eligible players.
	playerIDs := make([]uuid.UUID, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
	}
	if o.features != nil {
		_ = o.features.Prefetch(ctx, playerIDs, season, week)
	}

	// Step 5: predict each player's points, dropping Nones and
	// nonpositive results.
	teamNames := make(map[uuid.UUID]string)
	var predictions []models.PlayerPrediction
	for _, p := range players {
		points, err := o.models.PredictPlayer(ctx, p.ID, season, week, ruleset)
		if err != nil || points == nil || *points <= 0 {
			continue
		}
		team := o.teamCode(ctx, p.TeamID, teamNames)
		var ceiling, floor float64
		if o.features != nil {
			if f, err := o.features.BuildPlayerFeatures(ctx, p.ID, season, week, ruleset); err == nil {
				ceiling, floor = lineup.CeilingFloor(*points, f.Consistency)
			}
		}
		predictions = append(predictions, models.PlayerPrediction{
			PlayerID: p.ID, PlayerName: p.Name, Team: team, Position: p.Position, PredictedPoints: *points,
			Ceiling: ceiling, Floor: floor,
		})
	}

	// Step 6: InjuryFilter.filter_out, then InjuryFilter.adjust.
	filteredOutCount := 0
	if report != nil {
		before := len(predictions)
		predictions = injury.FilterOut(predictions, report)
		filteredOutCount = before - len(predictions)
		predictions = injury.Adjust(predictions, report)
	}
	adjustedCount := 0
	for _, p := range predictions {
		if p.InjuryAdjustment != nil {
			adjustedCount++
		}
	}

	// Step 7: DST predictions for both teams of each game, with
	// opponent-injury uplift applied after the base prediction.
	games, err := o.data.GamesForWeek(ctx, season, week)
	if err != nil {
		return nil, errs.Wrap(errs.DataBackend, "list games for week", err)
	}
	dstPredictions := o.buildDstPredictions(ctx, games, season, week, ruleset, report, teamNames)

	// Step 8: compose the optimal lineup.
	template := models.DefaultSlotTemplate()
	if len(dstPredictions) > 0 && o.salary != nil {
		template.DST = 1
	}
	var lineupResult models.LineupResult
	if o.salary != nil {
		lineupResult = lineup.SalaryAware(predictions, dstPredictions, template, 0, o.salary)
	} else {
		lineupResult = lineup.Basic(predictions, template)
	}

	// Step 9: assemble summary and return.
	result := &models.GamedayResult{
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		Season:            season,
		Week:              week,
		Ruleset:           ruleset,
		PlayerPredictions: predictions,
		DstPredictions:    dstPredictions,
		OptimalLineup:     lineupResult,
		Summary:           summarize(predictions, dstPredictions, lineupResult),
	}
	if includeInjuryAdjustments {
		result.InjuryReport = injury.Summarize(report, filteredOutCount, adjustedCount)
	}
	return result, nil
}

func (o *Orchestrator) teamCode(ctx context.Context, teamID *uuid.UUID, cache map[uuid.UUID]string) string {
	if teamID == nil {
		return ""
	}
	if code, ok := cache[*teamID]; ok {
		return code
	}
	team, err := o.data.GetTeam(ctx, *teamID)
	if err != nil || team == nil {
		return ""
	}
	cache[*teamID] = team.Code
	return team.Code
}

func (o *Orchestrator) buildDstPredictions(ctx context.Context, games []models.Game, season, week int, ruleset string, report *injury.Report, teamNames map[uuid.UUID]string) []models.DstPrediction {
	var out []models.DstPrediction
	for _, g := range games {
		for _, pair := range [][2]uuid.UUID{{g.HomeTeamID, g.AwayTeamID}, {g.AwayTeamID, g.HomeTeamID}} {
			teamID, oppID := pair[0], pair[1]
			base, err := o.models.PredictDst(ctx, teamID, season, week, ruleset)
			if err != nil || base == nil {
				continue
			}
			teamCode := o.teamCode(ctx, &teamID, teamNames)
			oppCode := o.teamCode(ctx, &oppID, teamNames)

			boost := injury.OpponentBoost(report, oppCode)
			predicted := *base * (1 + boost)

			var ceiling, floor float64
			if o.features != nil {
				if f, err := o.features.BuildDstFeatures(ctx, teamID, season, week, ruleset); err == nil {
					ceiling, floor = lineup.CeilingFloor(predicted, f.Consistency)
				}
			}

			out = append(out, models.DstPrediction{
				TeamID: teamID, Team: teamCode, Opponent: oppCode,
				BasePoints: *base, OpponentBoost: boost, PredictedPoints: predicted,
				Ceiling: ceiling, Floor: floor,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PredictedPoints > out[j].PredictedPoints })
	return out
}

func summarize(predictions []models.PlayerPrediction, dst []models.DstPrediction, optimal models.LineupResult) models.PredictionSummary {
	summary := models.PredictionSummary{PlayerCount: len(predictions), DstCount: len(dst), OptimalTotal: optimal.TotalProjectedPoints}
	if len(predictions) == 0 {
		return summary
	}
	var sum float64
	top := predictions[0]
	for _, p := range predictions {
		sum += p.PredictedPoints
		if p.PredictedPoints > top.PredictedPoints {
			top = p
		}
	}
	summary.AveragePoints = sum / float64(len(predictions))
	summary.TopPlayer = top.PlayerName
	summary.TopPlayerPoints = top.PredictedPoints
	return summary
}

// Package features assembles leak-free PlayerFeatures and DstFeatures
// from historical box scores and team-defense rows, combining Scoring
// and MatchupAnalyzer outputs (§4.3 FeatureBuilder).
package features

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/scoring"
)

// MaxPlayerHistory is the cap on prior rows queried per player
// (§4.3 Algorithm (player): "up to the most recent 50 BoxScoreRows").
const MaxPlayerHistory = 50

// MaxDstHistory is the cap on prior rows queried per defense
// (§4.3 Algorithm (DST): "prior team-defense rows (<=20)").
const MaxDstHistory = 20

// MinPlayerHistory is the minimum prior-row count before a player is
// buildable; fewer yields NotEnoughHistory (§4.3 Failure, B1).
const MinPlayerHistory = 3

// LeagueAverageDstOpponentScore is the fixed constant baseline for a
// DST's opponent offensive score when unavailable (§9 Q2, resolved:
// fixed 21.0 rather than a rolling league mean).
const LeagueAverageDstOpponentScore = 21.0

// DataSource is the narrow read surface FeatureBuilder needs.
type DataSource interface {
	BoxScoresBefore(ctx context.Context, playerID uuid.UUID, season, week, limit int) ([]models.BoxScoreRow, error)
	TeamDefenseRowsBefore(ctx context.Context, teamID uuid.UUID, season, week, limit int) ([]models.TeamDefenseRow, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// MatchupSource is the subset of MatchupAnalyzer FeatureBuilder calls.
type MatchupSource interface {
	OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error)
	PositionMatchupFeatures(ctx context.Context, position models.Position, offenseTeam, defenseTeam uuid.UUID, season, week int) (map[string]float64, error)
	AnalyzeMatchup(ctx context.Context, offenseTeam, defenseTeam uuid.UUID, season, week int) (models.MatchupStrength, error)
}

// Builder implements FeatureBuilder (§4.3). The prefetch cache is
// request-scoped: callers should construct a new Builder per request
// (§3 Lifecycles: "Feature cache: orchestrator-scoped").
type Builder struct {
	store   DataSource
	matchup MatchupSource
	scores  *scoring.Registry

	mu        sync.Mutex
	boxCache  map[uuid.UUID][]models.BoxScoreRow
	dstCache  map[uuid.UUID][]models.TeamDefenseRow
	workerCap int
}

// New builds a Builder. workerCap bounds prefetch fan-out; 0 defaults
// to runtime.NumCPU() (§5).
func New(store DataSource, matchup MatchupSource, scores *scoring.Registry, workerCap int) *Builder {
	if workerCap <= 0 {
		workerCap = runtime.NumCPU()
	}
	return &Builder{
		store:     store,
		matchup:   matchup,
		scores:    scores,
		boxCache:  make(map[uuid.UUID][]models.BoxScoreRow),
		dstCache:  make(map[uuid.UUID][]models.TeamDefenseRow),
		workerCap: workerCap,
	}
}

// Prefetch bulk-loads the union of players' historical rows so
// subsequent single-player builds are served from cache (§4.3 prefetch).
func (b *Builder) Prefetch(ctx context.Context, playerIDs []uuid.UUID, season, week int) error {
	sem := make(chan struct{}, b.workerCap)
	var wg sync.WaitGroup
	errCh := make(chan error, len(playerIDs))

	for _, id := range playerIDs {
		b.mu.Lock()
		_, cached := b.boxCache[id]
		b.mu.Unlock()
		if cached {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(playerID uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			rows, err := b.store.BoxScoresBefore(ctx, playerID, season, week, MaxPlayerHistory)
			if err != nil {
				errCh <- errs.Wrap(errs.DataBackend, "prefetch box scores", err)
				return
			}
			b.mu.Lock()
			b.boxCache[playerID] = rows
			b.mu.Unlock()
		}(id)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) priorBoxScores(ctx context.Context, playerID uuid.UUID, season, week int) ([]models.BoxScoreRow, error) {
	b.mu.Lock()
	rows, ok := b.boxCache[playerID]
	b.mu.Unlock()
	if ok {
		return rows, nil
	}

	rows, err := b.store.BoxScoresBefore(ctx, playerID, season, week, MaxPlayerHistory)
	if err != nil {
		return nil, errs.Wrap(errs.DataBackend, "box scores before", err)
	}
	b.mu.Lock()
	b.boxCache[playerID] = rows
	b.mu.Unlock()
	return rows, nil
}

// BuildPlayerFeatures builds PlayerFeatures for (player, season, week,
// ruleset), leak-free (I3) (§4.3 build_player_features).
func (b *Builder) BuildPlayerFeatures(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (models.PlayerFeatures, error) {
	rows, err := b.priorBoxScores(ctx, playerID, season, week)
	if err != nil {
		return models.PlayerFeatures{}, err
	}
	if len(rows) < MinPlayerHistory {
		return models.PlayerFeatures{}, errs.ErrNotEnoughHistory
	}

	rs, err := b.scores.Get(ruleset)
	if err != nil {
		return models.PlayerFeatures{}, err
	}

	fp := make([]float64, len(rows))
	for i, r := range rows {
		fp[i] = scoring.ScorePlayer(r, rs).Total
	}

	l3 := minInt(3, len(rows))
	var fpL3, targetsL3, carriesL3, passAttL3, shareL3 float64
	for i := 0; i < l3; i++ {
		fpL3 += fp[i]
		targetsL3 += float64(rows[i].Targets)
		carriesL3 += float64(rows[i].RushAttempts)
		passAttL3 += float64(rows[i].PassAttempts)
		if rows[i].TargetShare != nil {
			shareL3 += *rows[i].TargetShare
		}
	}
	fpL3 /= float64(l3)
	targetsL3 /= float64(l3)
	carriesL3 /= float64(l3)
	passAttL3 /= float64(l3)
	shareL3 /= float64(l3)

	var seasonFP float64
	var seasonGames int
	for i, r := range rows {
		if r.Season == season {
			seasonFP += fp[i]
			seasonGames++
		}
	}
	var avgSeasonFP float64
	if seasonGames > 0 {
		avgSeasonFP = seasonFP / float64(seasonGames)
	}

	l5 := minInt(5, len(rows))
	last5 := make([]float64, l5)
	for i := 0; i < l5; i++ {
		// rows[0] is most recent; chronological order for trend needs
		// oldest-to-newest, so reverse.
		last5[l5-1-i] = fp[i]
	}
	consistency := populationStdDev(last5)
	trend := linregSlope(last5)

	player, err := b.store.GetPlayer(ctx, playerID)
	if err != nil {
		return models.PlayerFeatures{}, errs.Wrap(errs.DataBackend, "get player", err)
	}
	teamID := rows[0].TeamID

	features := models.PlayerFeatures{
		PlayerID:               playerID,
		TeamID:                 teamID,
		Season:                 season,
		Week:                   week,
		Ruleset:                ruleset,
		Position:               player.Position,
		AvgFantasyPointsL3:     fpL3,
		AvgTargetsL3:           targetsL3,
		AvgCarriesL3:           carriesL3,
		AvgPassAttemptsL3:      passAttL3,
		TargetShareL3:          shareL3,
		AvgFantasyPointsSeason: avgSeasonFP,
		GamesPlayedSeason:      seasonGames,
		PositionCode:           models.PositionCodeFor(player.Position),
		Consistency:            consistency,
		Trend:                  trend,
	}

	opponent, err := b.matchup.OpponentFor(ctx, teamID, season, week)
	if err != nil {
		return models.PlayerFeatures{}, errs.Wrap(errs.DataBackend, "opponent lookup", err)
	}
	if opponent != nil {
		mf, err := b.matchup.PositionMatchupFeatures(ctx, player.Position, teamID, *opponent, season, week)
		if err != nil {
			return models.PlayerFeatures{}, errs.Wrap(errs.DataBackend, "matchup features", err)
		}
		features.MatchupFeatures = mf
	}

	return features, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func populationStdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	var variance float64
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}

// linregSlope fits a simple linear regression of vals against integer
// x = 0..n-1 and returns the slope (§4.3 "trend").
func linregSlope(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range vals {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	nf := float64(n)
	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (nf*sumXY - sumX*sumY) / denom
}

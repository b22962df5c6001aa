// Package modelstore trains, persists, loads, and serves per-position
// and DST regressors (§4.4 ModelStore).
package modelstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/scoring"
	"golang.org/x/sync/singleflight"
)

// MinRowsToTrain is the minimum number of rows a position or DST needs
// before a regressor is fit for it (§4.4 Fitting: "with >= 50 rows").
const MinRowsToTrain = 50

// SkipWeeksThrough drops rows from weeks this low or lower: too little
// history has accumulated for FeatureBuilder to produce a row
// (§4.4 Training rows: "skipping weeks <= 2").
const SkipWeeksThrough = 2

// playerMatchupFeatureOrder is the fixed, alphabetically sorted union of
// every position's MatchupAnalyzer.position_matchup_features key
// (§4.2), appended to the base player feature vector when the schema
// supports position features. Missing keys for a given position default
// to zero via the map lookup in PlayerFeatures.Vector.
var playerMatchupFeatureOrder = []string{
	"opponent_pass_defense_rank",
	"opponent_pass_rush_pressure",
	"opponent_rb_receiving_weakness",
	"opponent_rush_defense_rank",
	"opponent_te_coverage_weakness",
	"opponent_turnover_creation",
	"opponent_wr_coverage_weakness",
	"qb_ceiling_modifier",
	"qb_efficiency_modifier",
	"rb_efficiency_modifier",
	"rb_goal_line_advantage",
	"rb_volume_modifier",
	"te_checkdown_opportunity",
	"te_efficiency_modifier",
	"te_red_zone_advantage",
	"wr_ceiling_modifier",
	"wr_efficiency_modifier",
	"wr_pressure_impact",
}

// dstMatchupFeatureOrder is the DST analogue: analyze_matchup's three
// scalar modifiers, exposed via get_matchup_for_dst (§4.3 dst.go).
var dstMatchupFeatureOrder = []string{
	"points_modifier",
	"sack_modifier",
	"turnover_modifier",
}

var playerBaseFeatureNames = []string{
	"avg_fp_l3", "avg_targets_l3", "avg_carries_l3", "avg_pass_attempts_l3",
	"avg_fp_season", "games_played_season", "position_code", "target_share_l3",
	"consistency", "trend",
}

var dstBaseFeatureNames = []string{
	"avg_points_allowed_l3", "avg_sacks_l3", "avg_turnovers_l3", "avg_fp_l3",
	"avg_points_allowed_season", "avg_sacks_season", "avg_turnovers_season", "avg_fp_season",
	"is_home", "opponent_offensive_score", "consistency", "trend",
}

// TrainingDataSource is the narrow read surface ModelStore needs to
// assemble training rows.
type TrainingDataSource interface {
	BoxScoresForSeason(ctx context.Context, season int) ([]models.BoxScoreRow, error)
	TeamDefenseRowsForSeason(ctx context.Context, season int) ([]models.TeamDefenseRow, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// FeatureSource is the FeatureBuilder surface ModelStore depends on.
type FeatureSource interface {
	BuildPlayerFeatures(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (models.PlayerFeatures, error)
	BuildDstFeatures(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (models.DstFeatures, error)
}

// CutoffSource is the CutoffPolicy surface the cutoff lifecycle uses.
type CutoffSource interface {
	TrainingSeasons(ctx context.Context, currentSeason int) ([]int, error)
}

// Store implements ModelStore (§4.4).
type Store struct {
	baseDir string
	data    TrainingDataSource
	feature FeatureSource
	scores  *scoring.Registry

	locks sync.Map // ruleset -> *sync.Mutex, serializes training per ruleset
	sf    singleflight.Group
}

// New builds a Store rooted at baseDir (§4.4 persistence layout root).
func New(baseDir string, data TrainingDataSource, feature FeatureSource, scores *scoring.Registry) *Store {
	return &Store{baseDir: baseDir, data: data, feature: feature, scores: scores}
}

func (s *Store) lockFor(ruleset string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(ruleset, &sync.Mutex{})
	return v.(*sync.Mutex)
}

type trainingRow struct {
	features []float64
	target   float64
}

// Train builds training rows for every skill position and DST over
// seasons and fits regressors for each with enough rows (§4.4 train,
// Training rows, Fitting).
func (s *Store) Train(ctx context.Context, seasons []int, ruleset string, cutoff *models.CutoffModelKey) (*models.ModelArtifact, error) {
	lock := s.lockFor(ruleset)
	lock.Lock()
	defer lock.Unlock()

	rs, err := s.scores.Get(ruleset)
	if err != nil {
		return nil, err
	}

	artifact := &models.ModelArtifact{
		Ruleset:      ruleset,
		SeasonsUsed:  append([]int(nil), seasons...),
		TrainedAtUTC: time.Now().UTC(),
		LibraryVersions: map[string]string{
			"go":               runtime.Version(),
			"gonum.org/v1/gonum": "v0.14.0",
		},
		Positions: make(map[models.Position]models.PositionArtifact),
		Cutoff:    cutoff,
	}

	playerRows, lastSeason, lastWeek, err := s.collectPlayerRows(ctx, seasons, ruleset, rs, cutoff)
	if err != nil {
		return nil, err
	}
	for _, pos := range models.SkillPositions {
		rows := playerRows[pos]
		if len(rows) < MinRowsToTrain {
			continue // §4.4 Failure: insufficient rows logs and skips the position
		}
		pa, err := fitPosition(pos, rows)
		if err != nil {
			return nil, err
		}
		artifact.Positions[pos] = pa
	}

	dstRows, dstSeason, dstWeek, err := s.collectDstRows(ctx, seasons, ruleset, rs, cutoff)
	if err != nil {
		return nil, err
	}
	if dstSeason > lastSeason || (dstSeason == lastSeason && dstWeek > lastWeek) {
		lastSeason, lastWeek = dstSeason, dstWeek
	}
	if len(dstRows) >= MinRowsToTrain {
		pa, err := fitPosition(models.PositionDST, dstRows)
		if err != nil {
			return nil, err
		}
		artifact.Dst = &pa
	}

	artifact.LastDataSeason = lastSeason
	artifact.LastDataWeek = lastWeek
	artifact.Schema = models.FeatureSchema{
		SchemaVersion:            models.SchemaVersion,
		PlayerFeatureNames:       append(append([]string(nil), playerBaseFeatureNames...), playerMatchupFeatureOrder...),
		DstFeatureNames:          append(append([]string(nil), dstBaseFeatureNames...), dstMatchupFeatureOrder...),
		SupportsPositionFeatures: true,
	}

	return artifact, nil
}

func (s *Store) collectPlayerRows(ctx context.Context, seasons []int, ruleset string, rs models.ScoringRuleset, cutoff *models.CutoffModelKey) (map[models.Position][]trainingRow, int, int, error) {
	out := make(map[models.Position][]trainingRow)
	playerCache := make(map[uuid.UUID]models.Position)
	var lastSeason, lastWeek int

	for _, season := range seasons {
		rows, err := s.data.BoxScoresForSeason(ctx, season)
		if err != nil {
			return nil, 0, 0, errs.Wrap(errs.DataBackend, "box scores for season", err)
		}
		for _, row := range rows {
			if row.Week <= SkipWeeksThrough {
				continue
			}
			if cutoff != nil && (row.Season > cutoff.TargetSeason || (row.Season == cutoff.TargetSeason && row.Week >= cutoff.TargetWeek)) {
				continue
			}

			pos, ok := playerCache[row.PlayerID]
			if !ok {
				p, err := s.data.GetPlayer(ctx, row.PlayerID)
				if err != nil || p == nil {
					continue
				}
				pos = p.Position
				playerCache[row.PlayerID] = pos
			}
			if !models.IsSkillPosition(pos) {
				continue
			}

			feat, err := s.feature.BuildPlayerFeatures(ctx, row.PlayerID, row.Season, row.Week, ruleset)
			if err != nil {
				continue // NotEnoughHistory or similar: skip this row
			}
			vec := feat.Vector(true, playerMatchupFeatureOrder)
			target := scoring.ScorePlayer(row, rs).Total
			out[pos] = append(out[pos], trainingRow{features: vec, target: target})

			if row.Season > lastSeason || (row.Season == lastSeason && row.Week > lastWeek) {
				lastSeason, lastWeek = row.Season, row.Week
			}
		}
	}
	return out, lastSeason, lastWeek, nil
}

func (s *Store) collectDstRows(ctx context.Context, seasons []int, ruleset string, rs models.ScoringRuleset, cutoff *models.CutoffModelKey) ([]trainingRow, int, int, error) {
	var out []trainingRow
	var lastSeason, lastWeek int

	for _, season := range seasons {
		rows, err := s.data.TeamDefenseRowsForSeason(ctx, season)
		if err != nil {
			return nil, 0, 0, errs.Wrap(errs.DataBackend, "team defense rows for season", err)
		}
		for _, row := range rows {
			if row.Week <= SkipWeeksThrough {
				continue
			}
			if cutoff != nil && (row.Season > cutoff.TargetSeason || (row.Season == cutoff.TargetSeason && row.Week >= cutoff.TargetWeek)) {
				continue
			}

			feat, err := s.feature.BuildDstFeatures(ctx, row.TeamID, row.Season, row.Week, ruleset)
			if err != nil {
				continue
			}
			vec := feat.Vector(dstMatchupFeatureOrder)
			target := scoring.ScoreDST(row, rs).Total
			out = append(out, trainingRow{features: vec, target: target})

			if row.Season > lastSeason || (row.Season == lastSeason && row.Week > lastWeek) {
				lastSeason, lastWeek = row.Season, row.Week
			}
		}
	}
	return out, lastSeason, lastWeek, nil
}

// fitPosition splits rows 80/20, fits all three candidates, and keeps
// the one with the lowest held-out MAE (§4.4 Fitting).
func fitPosition(pos models.Position, rows []trainingRow) (models.PositionArtifact, error) {
	n := len(rows)
	features := make([][]float64, n)
	targets := make([]float64, n)
	for i, r := range rows {
		features[i] = r.features
		targets[i] = r.target
	}

	trainIdx, testIdx := trainTestSplit(n)
	trainFeatures := subsetRows(features, trainIdx)
	trainTargets := subsetTargets(targets, trainIdx)
	testFeatures := subsetRows(features, testIdx)
	testTargets := subsetTargets(targets, testIdx)

	mean, std := fitScaler(trainFeatures)
	scaledTrain := scaleRows(trainFeatures, mean, std)
	scaledTest := scaleRows(testFeatures, mean, std)

	numFeatures := len(features[0])
	candidates := newCandidates(numFeatures, splitSeed)

	var best regressor
	bestMAE := -1.0
	for _, c := range candidates {
		if c.needsScaler() {
			c.fit(scaledTrain, trainTargets)
		} else {
			c.fit(trainFeatures, trainTargets)
		}

		preds := make([]float64, len(testIdx))
		for i, x := range testFeatures {
			if c.needsScaler() {
				preds[i] = c.predict(scaledTest[i])
			} else {
				preds[i] = c.predict(x)
			}
		}
		mae := meanAbsoluteError(preds, testTargets)
		if best == nil || mae < bestMAE {
			best, bestMAE = c, mae
		}
	}

	modelBytes, err := best.marshal()
	if err != nil {
		return models.PositionArtifact{}, fmt.Errorf("modelstore: marshal %s model: %w", pos, err)
	}

	pa := models.PositionArtifact{
		Position:          pos,
		SelectedCandidate: best.name(),
		NeedsScaler:       best.needsScaler(),
		HeldOutMAE:        bestMAE,
		TrainingRows:      n,
		Model:             modelBytes,
	}
	if best.needsScaler() {
		pa.Scaler = &models.Scaler{Mean: mean, Std: std}
	}
	return pa, nil
}

func subsetRows(rows [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func subsetTargets(targets []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = targets[j]
	}
	return out
}

func scaleRows(rows [][]float64, mean, std []float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = applyScaler(r, mean, std)
	}
	return out
}

// Save persists artifact at (season, week) in the standard layout
// (§4.4 persistence layout, atomic writes).
func (s *Store) Save(ruleset string, season, week int, artifact *models.ModelArtifact) error {
	return s.save(ruleset, season, week, artifact)
}

// Load loads the artifact saved for (ruleset, season, week), or
// ErrNotFound-equivalent when absent, or a SchemaMismatch error when the
// stored artifact's schema version has drifted (§4.4 load, I4).
func (s *Store) Load(ruleset string, season, week int) (*models.ModelArtifact, error) {
	artifact, err := s.loadBlob(ruleset, season, week)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotFound, "model artifact not found")
		}
		return nil, errs.Wrap(errs.SchemaMismatch, "load model artifact", err)
	}
	return artifact, nil
}

// PublishCurrent atomically points CURRENT.json at the blob for
// (season, week) (§4.4 publish_current).
func (s *Store) PublishCurrent(ruleset string, season, week int, artifact *models.ModelArtifact) error {
	ptr := models.CurrentPointer{File: s.blobPath(ruleset, season, week), Metadata: *artifact}
	return s.writeCurrentPointer(ruleset, ptr)
}

// Current loads the artifact CURRENT.json points at for ruleset (§4.4
// current).
func (s *Store) Current(ruleset string) (*models.ModelArtifact, error) {
	ptr, err := s.loadCurrentPointer(ruleset)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotReady, "no published model for ruleset")
		}
		return nil, errs.Wrap(errs.DataBackend, "load current pointer", err)
	}

	data, err := os.ReadFile(ptr.File)
	if err != nil {
		return nil, errs.New(errs.NotReady, "current model file missing")
	}
	var artifact models.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, errs.Wrap(errs.SchemaMismatch, "unmarshal current artifact", err)
	}
	if artifact.Schema.SchemaVersion != models.SchemaVersion {
		return nil, errs.New(errs.SchemaMismatch, "current artifact schema version mismatch")
	}
	return &artifact, nil
}

// CutoffPath is the pure path builder for a cutoff-trained artifact
// (§4.4 cutoff_path).
func (s *Store) CutoffPath(ruleset string, season, week int) string {
	return s.blobPath(ruleset, season, week)
}

// Cutoff implements the cutoff lifecycle: load the artifact at
// (season, week) if it already exists, else train one over the policy's
// training_seasons and the cutoff parameter and save it (§4.4 Cutoff
// model lifecycle).
func (s *Store) Cutoff(ctx context.Context, ruleset string, season, week int, policy CutoffSource) (*models.ModelArtifact, error) {
	if _, err := os.Stat(s.CutoffPath(ruleset, season, week)); err == nil {
		return s.Load(ruleset, season, week)
	}

	seasons, err := policy.TrainingSeasons(ctx, season)
	if err != nil {
		return nil, errs.Wrap(errs.DataBackend, "training seasons", err)
	}

	key, err, _ := s.sf.Do(fmt.Sprintf("%s/%d/%d", ruleset, season, week), func() (any, error) {
		artifact, err := s.Train(ctx, seasons, ruleset, &models.CutoffModelKey{Ruleset: ruleset, TargetSeason: season, TargetWeek: week})
		if err != nil {
			return nil, err
		}
		if err := s.Save(ruleset, season, week, artifact); err != nil {
			return nil, err
		}
		return artifact, nil
	})
	if err != nil {
		return nil, err
	}
	return key.(*models.ModelArtifact), nil
}

// PredictPlayer predicts a player's fantasy points for (season, week)
// under ruleset using the currently published artifact, or nil when the
// position is unmodeled or features are unavailable (§4.4 predict_player).
func (s *Store) PredictPlayer(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (*float64, error) {
	artifact, err := s.Current(ruleset)
	if err != nil {
		return nil, err
	}

	player, err := s.data.GetPlayer(ctx, playerID)
	if err != nil || player == nil {
		return nil, errs.Wrap(errs.DataBackend, "get player", err)
	}
	pa, ok := artifact.Positions[player.Position]
	if !ok {
		return nil, nil
	}

	feat, err := s.feature.BuildPlayerFeatures(ctx, playerID, season, week, ruleset)
	if err != nil {
		if errs.Is(err, errs.NotEnoughHistory) {
			return nil, nil
		}
		return nil, err
	}

	reg, err := loadRegressor(pa.SelectedCandidate, pa.Model)
	if err != nil {
		return nil, errs.Wrap(errs.SchemaMismatch, "load regressor", err)
	}
	x := feat.Vector(artifact.Schema.SupportsPositionFeatures, playerMatchupFeatureOrder)
	if pa.NeedsScaler && pa.Scaler != nil {
		x = applyScaler(x, pa.Scaler.Mean, pa.Scaler.Std)
	}

	pred := reg.predict(x)
	if pred < 0 {
		pred = 0
	}
	return &pred, nil
}

// PredictDst predicts a team-defense's fantasy points for (season,
// week), clamped to [0,30] (§4.4 predict_dst).
func (s *Store) PredictDst(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (*float64, error) {
	artifact, err := s.Current(ruleset)
	if err != nil {
		return nil, err
	}
	if artifact.Dst == nil {
		return nil, nil
	}

	feat, err := s.feature.BuildDstFeatures(ctx, teamID, season, week, ruleset)
	if err != nil {
		if errs.Is(err, errs.NotEnoughHistory) {
			return nil, nil
		}
		return nil, err
	}

	reg, err := loadRegressor(artifact.Dst.SelectedCandidate, artifact.Dst.Model)
	if err != nil {
		return nil, errs.Wrap(errs.SchemaMismatch, "load dst regressor", err)
	}
	x := feat.Vector(dstMatchupFeatureOrder)
	if artifact.Dst.NeedsScaler && artifact.Dst.Scaler != nil {
		x = applyScaler(x, artifact.Dst.Scaler.Mean, artifact.Dst.Scaler.Std)
	}

	pred := reg.predict(x)
	pred = clampFloat(pred, 0, 30)
	return &pred, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

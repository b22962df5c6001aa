package modelstore

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/scoring"
)

type fakeTrainingData struct {
	box    map[int][]models.BoxScoreRow
	dst    map[int][]models.TeamDefenseRow
	player map[uuid.UUID]*models.Player
}

func (f *fakeTrainingData) BoxScoresForSeason(ctx context.Context, season int) ([]models.BoxScoreRow, error) {
	return f.box[season], nil
}
func (f *fakeTrainingData) TeamDefenseRowsForSeason(ctx context.Context, season int) ([]models.TeamDefenseRow, error) {
	return f.dst[season], nil
}
func (f *fakeTrainingData) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return f.player[id], nil
}

type fakeFeatureSource struct{}

func (fakeFeatureSource) BuildPlayerFeatures(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (models.PlayerFeatures, error) {
	return models.PlayerFeatures{
		PlayerID:           playerID,
		Season:             season,
		Week:               week,
		Position:           models.PositionRB,
		AvgCarriesL3:       float64(week),
		AvgFantasyPointsL3: float64(week) * 1.5,
	}, nil
}

func (fakeFeatureSource) BuildDstFeatures(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (models.DstFeatures, error) {
	return models.DstFeatures{
		TeamID:             teamID,
		Season:             season,
		Week:               week,
		AvgPointsAllowedL3: float64(week),
	}, nil
}

func fanDuelRuleset() models.ScoringRuleset {
	return models.ScoringRuleset{
		Name: "FanDuel", PassYardPoints: 0.04, PassTDPoints: 4, RushYardPoints: 0.1, RushTDPoints: 6,
		ReceptionPoints: 0.5, ReceivingYardPoints: 0.1, ReceivingTDPoints: 6,
	}
}

func syntheticRBRows(n int) []models.BoxScoreRow {
	playerID := uuid.New()
	rows := make([]models.BoxScoreRow, n)
	for i := 0; i < n; i++ {
		week := 3 + i%15
		rows[i] = models.BoxScoreRow{
			PlayerID: playerID, GameID: "g", TeamID: uuid.New(),
			Season: 2023, Week: week, RushYards: 50 + i, RushTDs: i % 2,
		}
	}
	return rows
}

func TestTrain_MinRowsGatesPositionAndDst(t *testing.T) {
	rows := syntheticRBRows(60)
	playerID := rows[0].PlayerID
	data := &fakeTrainingData{
		box:    map[int][]models.BoxScoreRow{2023: rows},
		player: map[uuid.UUID]*models.Player{playerID: {ID: playerID, Position: models.PositionRB}},
	}
	reg := scoring.NewRegistry([]models.ScoringRuleset{fanDuelRuleset()})
	store := New(t.TempDir(), data, fakeFeatureSource{}, reg)

	artifact, err := store.Train(context.Background(), []int{2023}, "FanDuel", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := artifact.Positions[models.PositionRB]; !ok {
		t.Fatal("expected RB position artifact with 60 rows >= MinRowsToTrain")
	}
	if artifact.Dst != nil {
		t.Fatal("expected no DST artifact: zero defense rows supplied")
	}
}

func TestSaveLoad_R1_MetadataRoundTrip(t *testing.T) {
	rows := syntheticRBRows(60)
	playerID := rows[0].PlayerID
	data := &fakeTrainingData{
		box:    map[int][]models.BoxScoreRow{2023: rows},
		player: map[uuid.UUID]*models.Player{playerID: {ID: playerID, Position: models.PositionRB}},
	}
	reg := scoring.NewRegistry([]models.ScoringRuleset{fanDuelRuleset()})
	store := New(t.TempDir(), data, fakeFeatureSource{}, reg)

	artifact, err := store.Train(context.Background(), []int{2023}, "FanDuel", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save("FanDuel", artifact.LastDataSeason, artifact.LastDataWeek, artifact); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load("FanDuel", artifact.LastDataSeason, artifact.LastDataWeek)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Ruleset != artifact.Ruleset || loaded.LastDataSeason != artifact.LastDataSeason || loaded.LastDataWeek != artifact.LastDataWeek {
		t.Fatalf("metadata mismatch after save/load: %+v vs %+v", loaded, artifact)
	}
	if len(loaded.Positions) != len(artifact.Positions) {
		t.Fatalf("position count mismatch: %d vs %d", len(loaded.Positions), len(artifact.Positions))
	}
}

func TestPredictDst_ClampsToZeroThirty(t *testing.T) {
	pred := clampFloat(999, 0, 30)
	if pred != 30 {
		t.Fatalf("clampFloat high = %v, want 30", pred)
	}
	pred = clampFloat(-5, 0, 30)
	if pred != 0 {
		t.Fatalf("clampFloat low = %v, want 0", pred)
	}
}

func TestFitScaler_ScaledValuesFinite(t *testing.T) {
	features := [][]float64{{1, 10}, {2, 20}, {3, 30}}
	mean, std := fitScaler(features)
	scaled := scaleRows(features, mean, std)
	for _, row := range scaled {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("scaled value not finite: %v", v)
			}
		}
	}
}

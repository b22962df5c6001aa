package orchestrator

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/injury"
	"github.com/gridiron-projections/engine/internal/models"
)

type fakeData struct {
	players []models.Player
	games   []models.Game
	teams   map[uuid.UUID]*models.Team
}

func (f *fakeData) EligiblePlayers(ctx context.Context, season, week int) ([]models.Player, error) {
	return f.players, nil
}
func (f *fakeData) GamesForWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	return f.games, nil
}
func (f *fakeData) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return f.teams[id], nil
}

type fakeModels struct {
	playerPoints map[uuid.UUID]float64
	dstPoints    map[uuid.UUID]float64
	published    int
}

func (f *fakeModels) Cutoff(ctx context.Context, ruleset string, season, week int, policy CutoffSource) (*models.ModelArtifact, error) {
	return &models.ModelArtifact{Ruleset: ruleset}, nil
}
func (f *fakeModels) PublishCurrent(ruleset string, season, week int, artifact *models.ModelArtifact) error {
	f.published++
	return nil
}
func (f *fakeModels) PredictPlayer(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (*float64, error) {
	v, ok := f.playerPoints[playerID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (f *fakeModels) PredictDst(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (*float64, error) {
	v, ok := f.dstPoints[teamID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fakeCutoff struct{}

func (fakeCutoff) TrainingSeasons(ctx context.Context, currentSeason int) ([]int, error) {
	return []int{currentSeason - 1}, nil
}

type fakeFeatures struct{ called bool }

func (f *fakeFeatures) Prefetch(ctx context.Context, playerIDs []uuid.UUID, season, week int) error {
	f.called = true
	return nil
}
func (f *fakeFeatures) BuildPlayerFeatures(ctx context.Context, playerID uuid.UUID, season, week int, ruleset string) (models.PlayerFeatures, error) {
	return models.PlayerFeatures{Consistency: 2}, nil
}
func (f *fakeFeatures) BuildDstFeatures(ctx context.Context, teamID uuid.UUID, season, week int, ruleset string) (models.DstFeatures, error) {
	return models.DstFeatures{Consistency: 1}, nil
}

func buildFixture() (*fakeData, *fakeModels, uuid.UUID, uuid.UUID) {
	kc := uuid.New()
	buf := uuid.New()
	qbID := uuid.New()
	rbID := uuid.New()

	data := &fakeData{
		players: []models.Player{
			{ID: qbID, Name: "Pat Mahomes", Position: models.PositionQB, TeamID: &kc},
			{ID: rbID, Name: "Ghost Runner", Position: models.PositionRB, TeamID: &kc},
		},
		games: []models.Game{{ID: "g1", HomeTeamID: kc, AwayTeamID: buf}},
		teams: map[uuid.UUID]*models.Team{
			kc:  {ID: kc, Code: "KC"},
			buf: {ID: buf, Code: "BUF"},
		},
	}
	ms := &fakeModels{
		playerPoints: map[uuid.UUID]float64{qbID: 24.5, rbID: -1},
		dstPoints:    map[uuid.UUID]float64{kc: 8, buf: 7},
	}
	return data, ms, kc, buf
}

// R2: gameday_predictions coalesces and returns a complete result with
// nonpositive predictions dropped.
func TestGamedayPredictions_R2_DropsNonpositive(t *testing.T) {
	data, modelStore, _, _ := buildFixture()
	o := New(data, modelStore, fakeCutoff{}, &fakeFeatures{}, nil, nil)

	result, err := o.GamedayPredictions(context.Background(), 2024, 5, "FanDuel", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.PlayerPredictions) != 1 || result.PlayerPredictions[0].PlayerName != "Pat Mahomes" {
		t.Fatalf("expected only the positive-points QB to remain, got %+v", result.PlayerPredictions)
	}
	if result.PlayerPredictions[0].Ceiling <= result.PlayerPredictions[0].PredictedPoints ||
		result.PlayerPredictions[0].Floor >= result.PlayerPredictions[0].PredictedPoints {
		t.Fatalf("expected a ceiling/floor band around predicted points, got %+v", result.PlayerPredictions[0])
	}
	if len(result.DstPredictions) != 2 {
		t.Fatalf("expected DST predictions for both teams, got %d", len(result.DstPredictions))
	}
	for _, d := range result.DstPredictions {
		if d.Ceiling <= d.PredictedPoints || d.Floor >= d.PredictedPoints {
			t.Fatalf("expected a ceiling/floor band around DST predicted points, got %+v", d)
		}
	}
	if modelStore.published != 1 {
		t.Fatalf("expected cutoff artifact to be published once, got %d", modelStore.published)
	}
}

func TestGamedayPredictions_InjuryAdjustmentDegradesGracefully(t *testing.T) {
	data, modelStore, _, _ := buildFixture()
	o := New(data, modelStore, fakeCutoff{}, &fakeFeatures{}, nil, nil)

	result, err := o.GamedayPredictions(context.Background(), 2024, 5, "FanDuel", true)
	if err != nil {
		t.Fatal(err)
	}
	if result.InjuryReport != nil {
		t.Fatalf("expected nil injury report with no injury source configured, got %+v", result.InjuryReport)
	}
}

type fakeInjurySource struct {
	records []models.InjuryRecord
}

func (f fakeInjurySource) CurrentInjuries(ctx context.Context, team string) ([]models.InjuryRecord, error) {
	return f.records, nil
}
func (f fakeInjurySource) HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error) {
	return f.records, nil
}
func (f fakeInjurySource) IsPlayerOut(ctx context.Context, playerName string) (bool, error) {
	return false, nil
}

var _ injury.Source = fakeInjurySource{}

func TestGamedayPredictions_AppliesInjuryUplift(t *testing.T) {
	data, modelStore, _, buf := buildFixture()
	source := fakeInjurySource{records: []models.InjuryRecord{
		{FullName: "Opponent QB", Team: "BUF", Position: "QB", Status: models.InjuryStatusOut},
	}}
	o := New(data, modelStore, fakeCutoff{}, &fakeFeatures{}, source, nil)

	result, err := o.GamedayPredictions(context.Background(), 2024, 5, "FanDuel", true)
	if err != nil {
		t.Fatal(err)
	}

	var kcDst *models.DstPrediction
	for i := range result.DstPredictions {
		if result.DstPredictions[i].Opponent == "BUF" {
			kcDst = &result.DstPredictions[i]
		}
	}
	if kcDst == nil {
		t.Fatal("expected a KC DST prediction with BUF as opponent")
	}
	if kcDst.OpponentBoost != 0.15 {
		t.Fatalf("opponent boost = %v, want 0.15 for one Out opposing QB", kcDst.OpponentBoost)
	}
	_ = buf
}

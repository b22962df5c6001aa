package features

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/scoring"
)

type fakeStore struct {
	box    map[uuid.UUID][]models.BoxScoreRow
	dst    map[uuid.UUID][]models.TeamDefenseRow
	player map[uuid.UUID]*models.Player
}

func (f *fakeStore) BoxScoresBefore(ctx context.Context, playerID uuid.UUID, season, week, limit int) ([]models.BoxScoreRow, error) {
	rows := f.box[playerID]
	var out []models.BoxScoreRow
	for _, r := range rows {
		if r.Season < season || (r.Season == season && r.Week < week) {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) TeamDefenseRowsBefore(ctx context.Context, teamID uuid.UUID, season, week, limit int) ([]models.TeamDefenseRow, error) {
	rows := f.dst[teamID]
	var out []models.TeamDefenseRow
	for _, r := range rows {
		if r.Season < season || (r.Season == season && r.Week < week) {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return f.player[id], nil
}

type fakeMatchup struct{}

func (fakeMatchup) OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error) {
	return nil, nil
}
func (fakeMatchup) PositionMatchupFeatures(ctx context.Context, position models.Position, offenseTeam, defenseTeam uuid.UUID, season, week int) (map[string]float64, error) {
	return map[string]float64{}, nil
}
func (fakeMatchup) AnalyzeMatchup(ctx context.Context, offenseTeam, defenseTeam uuid.UUID, season, week int) (models.MatchupStrength, error) {
	return models.MatchupStrength{}, nil
}

func fanDuel() models.ScoringRuleset {
	return models.ScoringRuleset{
		Name: "FanDuel", PassYardPoints: 0.04, PassTDPoints: 4, RushYardPoints: 0.1, RushTDPoints: 6,
		ReceptionPoints: 0.5, ReceivingYardPoints: 0.1, ReceivingTDPoints: 6,
	}
}

func TestBuildPlayerFeatures_B1_NotEnoughHistory(t *testing.T) {
	playerID := uuid.New()
	store := &fakeStore{
		box:    map[uuid.UUID][]models.BoxScoreRow{playerID: {{Season: 2024, Week: 1, PlayerID: playerID}}},
		player: map[uuid.UUID]*models.Player{playerID: {ID: playerID, Position: models.PositionRB}},
	}
	reg := scoring.NewRegistry([]models.ScoringRuleset{fanDuel()})
	b := New(store, fakeMatchup{}, reg, 1)

	_, err := b.BuildPlayerFeatures(context.Background(), playerID, 2024, 3, "FanDuel")
	if err != errs.ErrNotEnoughHistory {
		t.Fatalf("err = %v, want ErrNotEnoughHistory", err)
	}
}

func TestBuildPlayerFeatures_P3_LeakFree(t *testing.T) {
	playerID := uuid.New()
	rows := []models.BoxScoreRow{
		{Season: 2024, Week: 1, PlayerID: playerID, RushAttempts: 50},
		{Season: 2024, Week: 2, PlayerID: playerID, RushAttempts: 60},
		{Season: 2024, Week: 3, PlayerID: playerID, RushAttempts: 70},
		{Season: 2024, Week: 5, PlayerID: playerID, RushAttempts: 999}, // must never be consumed for week 4
	}
	store := &fakeStore{
		box:    map[uuid.UUID][]models.BoxScoreRow{playerID: rows},
		player: map[uuid.UUID]*models.Player{playerID: {ID: playerID, Position: models.PositionRB}},
	}
	reg := scoring.NewRegistry([]models.ScoringRuleset{fanDuel()})
	b := New(store, fakeMatchup{}, reg, 1)

	f, err := b.BuildPlayerFeatures(context.Background(), playerID, 2024, 4, "FanDuel")
	if err != nil {
		t.Fatal(err)
	}
	// avg_carries_l3 over weeks 1-3 is (50+60+70)/3 = 60, not touched by week 5's 999.
	if f.AvgCarriesL3 != 60 {
		t.Fatalf("avg_carries_l3 = %v, want 60 (leaked future row)", f.AvgCarriesL3)
	}
}

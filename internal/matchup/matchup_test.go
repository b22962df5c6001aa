package matchup

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
)

type fakeSource struct {
	boxScores map[uuid.UUID][]models.BoxScoreRow
	scores    map[uuid.UUID]map[string]int
	defense   map[uuid.UUID][]models.TeamDefenseRow
	opponents map[uuid.UUID]uuid.UUID
}

func (f *fakeSource) TeamBoxScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.BoxScoreRow, error) {
	return f.boxScores[teamID], nil
}
func (f *fakeSource) TeamScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (map[string]int, error) {
	return f.scores[teamID], nil
}
func (f *fakeSource) TeamDefenseRowsInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.TeamDefenseRow, error) {
	return f.defense[teamID], nil
}
func (f *fakeSource) LeagueTeamDefenseRowsInWindow(ctx context.Context, season, week, lookback int) ([]models.TeamDefenseRow, error) {
	var all []models.TeamDefenseRow
	for _, rows := range f.defense {
		all = append(all, rows...)
	}
	return all, nil
}
func (f *fakeSource) OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error) {
	if opp, ok := f.opponents[teamID]; ok {
		return &opp, nil
	}
	return nil, nil
}

func TestOffensiveStrength_P6_PermutationInvariant(t *testing.T) {
	team := uuid.New()
	rowsA := []models.BoxScoreRow{
		{GameID: "g1", PassYards: 250, PassTDs: 2},
		{GameID: "g2", RushYards: 90, RushTDs: 1},
		{GameID: "g3", ReceivingYards: 60},
	}
	rowsB := []models.BoxScoreRow{rowsA[2], rowsA[0], rowsA[1]}

	scores := map[string]int{"g1": 24, "g2": 17, "g3": 10}

	srcA := &fakeSource{
		boxScores: map[uuid.UUID][]models.BoxScoreRow{team: rowsA},
		scores:    map[uuid.UUID]map[string]int{team: scores},
	}
	srcB := &fakeSource{
		boxScores: map[uuid.UUID][]models.BoxScoreRow{team: rowsB},
		scores:    map[uuid.UUID]map[string]int{team: scores},
	}

	a := New(srcA)
	b := New(srcB)

	sa, err := a.OffensiveStrength(context.Background(), team, 2024, 10, 8)
	if err != nil {
		t.Fatal(err)
	}
	sb, err := b.OffensiveStrength(context.Background(), team, 2024, 10, 8)
	if err != nil {
		t.Fatal(err)
	}
	if sa.Composite != sb.Composite {
		t.Fatalf("composite changed with row order: %v != %v", sa.Composite, sb.Composite)
	}
}

func TestAnalyzeMatchup_ClampsModifiers(t *testing.T) {
	off := uuid.New()
	def := uuid.New()
	src := &fakeSource{
		boxScores: map[uuid.UUID][]models.BoxScoreRow{
			off: {{GameID: "g1", PassYards: 400, PassTDs: 4, RushYards: 200, RushTDs: 2}},
		},
		scores: map[uuid.UUID]map[string]int{off: {"g1": 45}},
		defense: map[uuid.UUID][]models.TeamDefenseRow{
			def: {{TeamID: def, PointsAllowed: 35, YardsAllowed: 450}},
		},
	}
	a := New(src)
	m, err := a.AnalyzeMatchup(context.Background(), off, def, 2024, 10)
	if err != nil {
		t.Fatal(err)
	}
	if m.PointsModifier < 0.5 || m.PointsModifier > 1.5 {
		t.Fatalf("points modifier out of range: %v", m.PointsModifier)
	}
	if m.TurnoverModifier < 0.5 || m.TurnoverModifier > 1.5 {
		t.Fatalf("turnover modifier out of range: %v", m.TurnoverModifier)
	}
}

func TestPositionProfile_YardsPerCarryAllowed(t *testing.T) {
	def := uuid.New()
	src := &fakeSource{
		defense: map[uuid.UUID][]models.TeamDefenseRow{
			def: {
				{TeamID: def, RushingYardsAllowed: 100, OpponentRushAttempts: 20},
				{TeamID: def, RushingYardsAllowed: 120, OpponentRushAttempts: 30},
			},
		},
	}
	a := New(src)
	profile, err := a.PositionProfile(context.Background(), def, 2024, 10, DefaultLookback)
	if err != nil {
		t.Fatal(err)
	}
	wantYPC := 220.0 / 50.0
	if profile.YardsPerCarryAllowed != wantYPC {
		t.Fatalf("YardsPerCarryAllowed = %v, want %v", profile.YardsPerCarryAllowed, wantYPC)
	}
}

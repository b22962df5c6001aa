package cutoff

import (
	"context"
	"testing"

	"github.com/gridiron-projections/engine/internal/models"
)

type fakeSource struct {
	games        map[int][]models.Game
	defenseCount map[int]int
	boxGameIDs   map[int][]string
	completed    map[int]int
}

func key(season, week int) int { return season*100 + week }

func (f *fakeSource) GamesForWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	return f.games[key(season, week)], nil
}
func (f *fakeSource) TeamDefenseRowCount(ctx context.Context, season, week int) (int, error) {
	return f.defenseCount[key(season, week)], nil
}
func (f *fakeSource) BoxScoreGameIDsForWeek(ctx context.Context, season, week int) ([]string, error) {
	return f.boxGameIDs[key(season, week)], nil
}
func (f *fakeSource) GamesCompletedCount(ctx context.Context, season int) (int, error) {
	return f.completed[season], nil
}

func finalGame(id string) models.Game {
	h, a := 20, 17
	return models.Game{ID: id, HomeScore: &h, AwayScore: &a}
}

func TestWeekReady_S4(t *testing.T) {
	games := make([]models.Game, 14)
	gameIDs := make([]string, 14)
	for i := range games {
		games[i] = finalGame("official")
		gameIDs[i] = "official"
	}

	src := &fakeSource{
		games:        map[int][]models.Game{key(2020, 9): games},
		defenseCount: map[int]int{key(2020, 9): 28},
		boxGameIDs:   map[int][]string{key(2020, 9): gameIDs},
	}
	p := New(src)
	if !p.WeekReady(context.Background(), 2020, 9) {
		t.Fatal("expected week ready with 14 games, 28 defense rows, no synthetic ids")
	}

	src.defenseCount[key(2020, 9)] = 27
	if p.WeekReady(context.Background(), 2020, 9) {
		t.Fatal("expected not ready with 27 defense rows")
	}
}

func TestWeekReady_SyntheticID(t *testing.T) {
	games := []models.Game{finalGame("g1")}
	src := &fakeSource{
		games:        map[int][]models.Game{key(2020, 9): games},
		defenseCount: map[int]int{key(2020, 9): 2},
		boxGameIDs:   map[int][]string{key(2020, 9): {"2020_9_KC_vs_SF"}},
	}
	p := New(src)
	if p.WeekReady(context.Background(), 2020, 9) {
		t.Fatal("expected not ready with synthetic game id present")
	}
}

func TestTrainingSeasons_FiltersAndIncludesCurrent(t *testing.T) {
	src := &fakeSource{completed: map[int]int{2019: 200}}
	p := New(src)
	seasons, err := p.TrainingSeasons(context.Background(), 2019)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range seasons {
		if s < MinSeason {
			t.Fatalf("season %d below MinSeason leaked through", s)
		}
	}

	src2 := &fakeSource{completed: map[int]int{2024: 10}}
	p2 := New(src2)
	seasons2, err := p2.TrainingSeasons(context.Background(), 2024)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range seasons2 {
		if s == 2024 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected current season included once >= 8 completed games")
	}
}

func TestLatestReadyBefore_P7(t *testing.T) {
	games := []models.Game{finalGame("g1")}
	src := &fakeSource{
		games:        map[int][]models.Game{key(2021, 5): games},
		defenseCount: map[int]int{key(2021, 5): 2},
		boxGameIDs:   map[int][]string{key(2021, 5): {"g1"}},
	}
	p := New(src)
	s, w, ok := p.LatestReadyBefore(context.Background(), 2021, 6)
	if !ok || s != 2021 || w != 5 {
		t.Fatalf("got (%d,%d,%v), want (2021,5,true)", s, w, ok)
	}
}

package scoring

import (
	"testing"

	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
)

func fanDuel() models.ScoringRuleset {
	return models.ScoringRuleset{
		Name:                "FanDuel",
		PassYardPoints:      0.04,
		PassTDPoints:        4,
		PassIntPoints:       -1,
		RushYardPoints:      0.1,
		RushTDPoints:        6,
		ReceptionPoints:     0.5,
		ReceivingYardPoints: 0.1,
		ReceivingTDPoints:   6,
		FumblePoints:        -2,
	}
}

func draftKings() models.ScoringRuleset {
	rs := fanDuel()
	rs.Name = "DraftKings"
	rs.ReceptionPoints = 1.0
	return rs
}

func ptr(f float64) *float64 { return &f }

func TestScorePlayer_S1_FanDuelPassing(t *testing.T) {
	row := models.BoxScoreRow{
		PassYards:         312,
		PassTDs:           2,
		PassInterceptions: 1,
		RushYards:         18,
	}
	got := ScorePlayer(row, fanDuel())
	want := 19.48
	if diff := got.Passing + got.Penalty - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("passing+penalty = %v, want %v", got.Passing+got.Penalty, want)
	}
	if got.Bonus != 3 {
		t.Fatalf("bonus = %v, want 3 (>=300 pass yards)", got.Bonus)
	}
	wantTotal := 24.28
	if diff := got.Total - wantTotal; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total = %v, want %v", got.Total, wantTotal)
	}
}

func TestScorePlayer_S2_DraftKingsReceiving(t *testing.T) {
	row := models.BoxScoreRow{
		Receptions:     8,
		ReceivingYards: 104,
		ReceivingTDs:   1,
		RushYards:      12,
	}
	got := ScorePlayer(row, draftKings())
	wantReceiving := 24.4
	if diff := got.Receiving - wantReceiving; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("receiving = %v, want %v", got.Receiving, wantReceiving)
	}
	wantRushing := 1.2
	if diff := got.Rushing - wantRushing; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("rushing = %v, want %v", got.Rushing, wantRushing)
	}
	if got.Bonus != 3 {
		t.Fatalf("bonus = %v, want 3 (>=100 receiving yards)", got.Bonus)
	}
	wantTotal := 28.6
	if diff := got.Total - wantTotal; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("total = %v, want %v", got.Total, wantTotal)
	}
}

func standardDST() models.ScoringRuleset {
	return models.ScoringRuleset{
		Name:               "FanDuel",
		Dst1To6Points:       ptr(7),
		Dst7To13Points:      ptr(4),
		IntPoints:           ptr(2),
		FumbleRecoveryPoints: ptr(2),
		SackPoints:          ptr(1.0),
		DefensiveTDPoints:   ptr(6),
	}
}

func TestScoreDST_S3_Tiers(t *testing.T) {
	row := models.TeamDefenseRow{
		PointsAllowed:       7,
		Sacks:               3,
		Interceptions:       2,
		FumblesRecovered:    1,
		DefensiveTouchdowns: 1,
	}
	got := ScoreDST(row, standardDST())
	if got.PointsAllowed != 4 {
		t.Fatalf("tier points = %v, want 4 (7 falls in 7-13 tier)", got.PointsAllowed)
	}
	wantTotal := 19.0
	if got.Total != wantTotal {
		t.Fatalf("total = %v, want %v", got.Total, wantTotal)
	}
}

func TestScoreDST_B3_TierBoundaries(t *testing.T) {
	rs := standardDST()
	cases := []struct {
		pointsAllowed int
		want          float64
	}{
		{0, 10},  // shutout tier (default 10, no Dst0 override set)
		{6, 7},   // upper edge of 1-6 tier
		{7, 4},   // lower edge of 7-13 tier
		{13, 4},  // upper edge of 7-13 tier
		{20, 1},  // upper edge of 14-20 tier (default, none set -> 1 per spec default)
	}
	for _, c := range cases {
		row := models.TeamDefenseRow{PointsAllowed: c.pointsAllowed}
		got := ScoreDST(row, rs)
		if got.PointsAllowed != c.want {
			t.Errorf("points_allowed=%d: tier points = %v, want %v", c.pointsAllowed, got.PointsAllowed, c.want)
		}
	}
}

func TestScoreDST_YardageBonus(t *testing.T) {
	rs := standardDST()
	rs.DstUnder100Bonus = 5
	rs.DstUnder300Bonus = 2

	cases := []struct {
		yardsAllowed int
		want         float64
	}{
		{50, 5},
		{99, 5},
		{100, 2},
		{299, 2},
		{300, 0},
		{400, 0},
	}
	for _, c := range cases {
		row := models.TeamDefenseRow{YardsAllowed: c.yardsAllowed}
		got := ScoreDST(row, rs)
		if got.Bonus != c.want {
			t.Errorf("yards_allowed=%d: bonus = %v, want %v", c.yardsAllowed, got.Bonus, c.want)
		}
		if got.Total != got.PointsAllowed+got.Turnovers+got.Sacks+got.Touchdowns+got.Safety+got.Bonus {
			t.Errorf("yards_allowed=%d: total does not include bonus", c.yardsAllowed)
		}
	}
}

func TestScorePlayer_UnknownRulesetFailsAtRegistry(t *testing.T) {
	reg := NewRegistry([]models.ScoringRuleset{fanDuel()})
	_, err := reg.Get("NoSuchLeague")
	if err != errs.ErrUnknownRuleset {
		t.Fatalf("err = %v, want ErrUnknownRuleset", err)
	}
}

func TestScorePlayer_P1_Determinism(t *testing.T) {
	row := models.BoxScoreRow{PassYards: 250, PassTDs: 2, RushYards: 40, Receptions: 3, ReceivingYards: 30}
	rs := fanDuel()
	a := ScorePlayer(row, rs)
	b := ScorePlayer(row, rs)
	if a != b {
		t.Fatalf("score_player is not deterministic: %v != %v", a, b)
	}
}

func TestScorePlayer_P2_MonotonePenalties(t *testing.T) {
	rs := fanDuel()
	base := models.BoxScoreRow{PassYards: 200, PassTDs: 1}
	moreInts := base
	moreInts.PassInterceptions = 2
	if ScorePlayer(moreInts, rs).Total > ScorePlayer(base, rs).Total {
		t.Fatalf("increasing interceptions raised total points")
	}

	moreYards := base
	moreYards.PassYards = 350
	if ScorePlayer(moreYards, rs).Total < ScorePlayer(base, rs).Total {
		t.Fatalf("increasing yards lowered total points")
	}
}

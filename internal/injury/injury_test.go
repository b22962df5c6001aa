package injury

import (
	"testing"
	"time"

	"github.com/gridiron-projections/engine/internal/models"
)

func samplePrediction(name string, points float64) models.PlayerPrediction {
	return models.PlayerPrediction{PlayerName: name, Team: "KC", Position: models.PositionRB, PredictedPoints: points}
}

func TestFilterOut_RemovesOutPlayers(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "Derrick Henry", Status: models.InjuryStatusOut, DateModified: time.Now()},
	})
	preds := []models.PlayerPrediction{samplePrediction("Derrick Henry", 18), samplePrediction("Josh Jacobs", 12)}

	out := FilterOut(preds, report)

	if len(out) != 1 || out[0].PlayerName != "Josh Jacobs" {
		t.Fatalf("expected only Josh Jacobs to remain, got %+v", out)
	}
}

func TestFilterOut_MatchesCaseInsensitively(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "derrick henry", Status: models.InjuryStatusOut, DateModified: time.Now()},
	})
	preds := []models.PlayerPrediction{samplePrediction("Derrick Henry", 18)}

	out := FilterOut(preds, report)

	if len(out) != 0 {
		t.Fatalf("expected case-insensitive match to remove the player, got %+v", out)
	}
}

// S5: severity mapping matches §4.6 exactly.
func TestSeverityMapping(t *testing.T) {
	cases := []struct {
		rec  models.InjuryRecord
		want float64
	}{
		{models.InjuryRecord{Status: models.InjuryStatusOut}, 1.0},
		{models.InjuryRecord{FantasyStatus: "INACTIVE"}, 1.0},
		{models.InjuryRecord{Status: models.InjuryStatusDoubtful}, 0.8},
		{models.InjuryRecord{Status: models.InjuryStatusQuestionable}, 0.3},
		{models.InjuryRecord{Status: models.InjuryStatusActive}, 0.0},
	}
	for _, c := range cases {
		if got := c.rec.Severity(); got != c.want {
			t.Errorf("Severity(%+v) = %v, want %v", c.rec, got, c.want)
		}
	}
}

// P5: InjuryFilter.adjust strictly lowers predicted points, equality
// iff no matching injury has severity > 0 (I7).
func TestAdjust_P5_Monotonicity(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "Questionable Guy", Status: models.InjuryStatusQuestionable, DateModified: time.Now()},
		{FullName: "Healthy Guy", Status: models.InjuryStatusActive, DateModified: time.Now()},
	})
	preds := []models.PlayerPrediction{
		samplePrediction("Questionable Guy", 20),
		samplePrediction("Healthy Guy", 15),
		samplePrediction("Unlisted Guy", 10),
	}

	adjusted := Adjust(preds, report)

	for i, p := range adjusted {
		if p.PredictedPoints > preds[i].PredictedPoints {
			t.Fatalf("adjust raised points for %s: %v > %v", p.PlayerName, p.PredictedPoints, preds[i].PredictedPoints)
		}
	}
	if adjusted[0].PredictedPoints != 14 || adjusted[0].InjuryAdjustment == nil || *adjusted[0].InjuryAdjustment != 0.3 {
		t.Fatalf("questionable player not adjusted as expected: %+v", adjusted[0])
	}
	if adjusted[1].PredictedPoints != preds[1].PredictedPoints || adjusted[1].InjuryAdjustment != nil {
		t.Fatalf("active player should pass through unchanged: %+v", adjusted[1])
	}
	if adjusted[2].PredictedPoints != preds[2].PredictedPoints || adjusted[2].InjuryAdjustment != nil {
		t.Fatalf("unlisted player should pass through unchanged: %+v", adjusted[2])
	}
}

// S6: DST opponent-injury boost sums the opponent's Out QB and Out OL
// terms and ignores other teams' injuries.
func TestOpponentBoost_S6_SumsOpponentQBAndOL(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "Opp QB", Team: "BUF", Position: "QB", Status: models.InjuryStatusOut},
		{FullName: "Opp OL1", Team: "BUF", Position: "T", Status: models.InjuryStatusOut},
		{FullName: "Opp OL2", Team: "BUF", Position: "G", Status: models.InjuryStatusOut},
		{FullName: "Opp OL3", Team: "BUF", Position: "C", Status: models.InjuryStatusOut},
		{FullName: "Other Team QB", Team: "MIA", Position: "QB", Status: models.InjuryStatusOut},
	})

	boost := OpponentBoost(report, "BUF")

	// 0.15 (QB out) + 0.03*3 (three OL out) = 0.24, under the cap.
	if boost != 0.24 {
		t.Fatalf("boost = %v, want 0.24", boost)
	}
}

func TestOpponentBoost_CapsAtQuarterWhenExceeded(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "Opp QB", Team: "BUF", Position: "QB", Status: models.InjuryStatusOut},
		{FullName: "Opp OL1", Team: "BUF", Position: "T", Status: models.InjuryStatusOut},
		{FullName: "Opp OL2", Team: "BUF", Position: "G", Status: models.InjuryStatusOut},
		{FullName: "Opp OL3", Team: "BUF", Position: "C", Status: models.InjuryStatusOut},
		{FullName: "Opp OL4", Team: "BUF", Position: "T", Status: models.InjuryStatusOut},
		{FullName: "Opp QB2", Team: "BUF", Position: "QB", Status: models.InjuryStatusQuestionable},
	})

	boost := OpponentBoost(report, "BUF")

	if boost != 0.25 {
		t.Fatalf("boost = %v, want capped 0.25", boost)
	}
}

func TestSummarize_CountsByStatus(t *testing.T) {
	report := NewReport([]models.InjuryRecord{
		{FullName: "A", Status: models.InjuryStatusOut},
		{FullName: "B", Status: models.InjuryStatusQuestionable},
		{FullName: "C", Status: models.InjuryStatusQuestionable},
	})

	summary := Summarize(report, 1, 2)

	if summary.TotalReported != 3 || summary.FilteredOut != 1 || summary.Adjusted != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.ByStatus["Questionable"] != 2 || summary.ByStatus["Out"] != 1 {
		t.Fatalf("unexpected status breakdown: %+v", summary.ByStatus)
	}
}

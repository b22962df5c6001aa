package lineup

import (
	"testing"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
)

func pred(name, team string, pos models.Position, points float64) models.PlayerPrediction {
	return models.PlayerPrediction{PlayerID: uuid.New(), PlayerName: name, Team: team, Position: pos, PredictedPoints: points}
}

// B4: basic composer fills the default template, top-k per position,
// descending by predicted points.
func TestBasic_B4_FillsDefaultTemplate(t *testing.T) {
	predictions := []models.PlayerPrediction{
		pred("QB1", "KC", models.PositionQB, 22),
		pred("QB2", "BUF", models.PositionQB, 18),
		pred("RB1", "KC", models.PositionRB, 20),
		pred("RB2", "SF", models.PositionRB, 15),
		pred("RB3", "DAL", models.PositionRB, 10),
		pred("WR1", "KC", models.PositionWR, 19),
		pred("WR2", "BUF", models.PositionWR, 17),
		pred("WR3", "SF", models.PositionWR, 12),
		pred("WR4", "DAL", models.PositionWR, 9),
		pred("TE1", "KC", models.PositionTE, 11),
		pred("TE2", "BUF", models.PositionTE, 8),
	}

	result := Basic(predictions, models.DefaultSlotTemplate())

	var qbCount, rbCount, wrCount, teCount, flexCount int
	for _, slot := range result.Slots {
		switch slot.Slot {
		case models.SlotQB:
			qbCount = len(slot.Players)
		case models.SlotRB:
			rbCount = len(slot.Players)
		case models.SlotWR:
			wrCount = len(slot.Players)
		case models.SlotTE:
			teCount = len(slot.Players)
		case models.SlotFLEX:
			flexCount = len(slot.Players)
		}
	}
	if qbCount != 1 || rbCount != 2 || wrCount != 3 || teCount != 1 || flexCount != 1 {
		t.Fatalf("unexpected slot counts: qb=%d rb=%d wr=%d te=%d flex=%d", qbCount, rbCount, wrCount, teCount, flexCount)
	}
	if result.TotalProjectedPoints <= 0 {
		t.Fatal("expected positive total projected points")
	}
}

func TestBasic_UnderFillsWhenPoolExhausted(t *testing.T) {
	predictions := []models.PlayerPrediction{
		pred("QB1", "KC", models.PositionQB, 22),
	}
	result := Basic(predictions, models.DefaultSlotTemplate())

	for _, slot := range result.Slots {
		if slot.Slot == models.SlotRB && !slot.UnderFilled {
			t.Fatal("expected RB slot to report under-filled with no RB predictions")
		}
	}
}

func TestEstimateSalary_ClampsToPositionBand(t *testing.T) {
	if got := estimateSalary(models.PositionRB, 1); got != 4000 {
		t.Fatalf("low RB salary = %d, want floor 4000", got)
	}
	if got := estimateSalary(models.PositionRB, 1000); got != 10000 {
		t.Fatalf("high RB salary = %d, want ceiling 10000", got)
	}
	if got := estimateDstSalary(1000); got != 6000 {
		t.Fatalf("high DST salary = %d, want ceiling 6000", got)
	}
	if got := estimateDstSalary(0); got != 2000 {
		t.Fatalf("low DST salary = %d, want floor 2000", got)
	}
}

func TestSalaryAware_RespectsSalaryCapAndTeamLimit(t *testing.T) {
	predictions := []models.PlayerPrediction{
		pred("QB1", "KC", models.PositionQB, 25),
		pred("RB1", "KC", models.PositionRB, 20),
		pred("RB2", "KC", models.PositionRB, 18),
		pred("WR1", "KC", models.PositionWR, 19),
		pred("WR2", "SF", models.PositionWR, 17),
		pred("WR3", "DAL", models.PositionWR, 15),
		pred("TE1", "BUF", models.PositionTE, 12),
	}
	template := models.DefaultSlotTemplate()

	result := SalaryAware(predictions, nil, template, 50000, HeuristicEstimator{})

	if result.TotalSalary == nil || *result.TotalSalary > 50000 {
		t.Fatalf("salary cap violated: %+v", result.TotalSalary)
	}
	for _, team := range result.TeamsUsed {
		count := 0
		for _, slot := range result.Slots {
			for _, p := range slot.Players {
				if p.Team == team {
					count++
				}
			}
		}
		if count > maxPlayersPerTeam {
			t.Fatalf("team %s has %d players, over the %d cap", team, count, maxPlayersPerTeam)
		}
	}
}

func TestDetectStacks_RequiresQBAndSkillPositionSameTeam(t *testing.T) {
	players := []models.PlayerPrediction{
		pred("QB1", "KC", models.PositionQB, 25),
		pred("WR1", "KC", models.PositionWR, 19),
		pred("RB1", "SF", models.PositionRB, 18),
	}

	stacks := DetectStacks(players)

	if len(stacks) != 1 || stacks[0].Team != "KC" {
		t.Fatalf("expected one KC stack, got %+v", stacks)
	}
}

func TestCeilingFloor_NeverNegative(t *testing.T) {
	ceiling, floor := CeilingFloor(5, 10)
	if floor != 0 {
		t.Fatalf("floor = %v, want clamped to 0", floor)
	}
	if ceiling <= 5 {
		t.Fatalf("ceiling = %v, want > projected", ceiling)
	}
}

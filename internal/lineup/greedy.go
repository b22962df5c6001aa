package lineup

import (
	"log"
	"sort"

	"github.com/gridiron-projections/engine/internal/models"
)

// SalaryAware greedily selects players by value (points per $1000 of
// salary) under a salary cap, distinct-team and per-team constraints
// (§4.7 Salary-aware composer), grounded on
// _examples/stitts-dev-dfs-sim/backend/internal/optimizer/algorithm.go's
// optimize_lineup_greedy: sort by value descending, then walk the list
// filling whichever position still needs a player and still fits
// budget and team caps.
//
// Per DESIGN.md Q1, when estimator is nil the salary-aware composer
// degrades to the fixed slot template (no FLEX, no salary accounting)
// since there is no salary data to rank by value.
func SalaryAware(predictions []models.PlayerPrediction, dst []models.DstPrediction, template models.SlotTemplate, cap int, estimator SalaryEstimator) models.LineupResult {
	if estimator == nil {
		result := Basic(predictions, models.SlotTemplate{QB: template.QB, RB: template.RB, WR: template.WR, TE: template.TE})
		return result
	}
	if cap <= 0 {
		cap = defaultSalaryCap
	}

	type candidate struct {
		pred   models.PlayerPrediction
		isDst  bool
		dst    models.DstPrediction
		salary int
		value  float64
	}

	var pool []candidate
	for _, p := range predictions {
		salary := estimator.PlayerSalary(p)
		pool = append(pool, candidate{pred: p, salary: salary, value: valuePerThousand(p.PredictedPoints, salary)})
	}
	if template.DST > 0 {
		for _, d := range dst {
			salary := estimator.DstSalary(d)
			pool = append(pool, candidate{
				isDst: true, dst: d, salary: salary,
				value: valuePerThousand(d.PredictedPoints, salary),
			})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].value > pool[j].value })

	needs := map[models.Position]int{
		models.PositionQB: template.QB, models.PositionRB: template.RB,
		models.PositionWR: template.WR, models.PositionTE: template.TE,
	}
	flexNeeded := template.FLEX
	dstNeeded := template.DST

	remainingSalary := cap
	teamCounts := make(map[string]int)
	teamsUsed := make(map[string]bool)

	var playerSelections map[models.Position][]models.PlayerPrediction = make(map[models.Position][]models.PlayerPrediction)
	var flexSelections []models.PlayerPrediction
	var dstSelections []models.DstPrediction

	canAffordTeam := func(team string) bool {
		return teamCounts[team] < maxPlayersPerTeam
	}

	for _, c := range pool {
		if c.salary > remainingSalary {
			continue
		}
		if c.isDst {
			if dstNeeded <= 0 {
				continue
			}
			if !canAffordTeam(c.dst.Team) {
				continue
			}
			dstSelections = append(dstSelections, c.dst)
			dstNeeded--
			remainingSalary -= c.salary
			teamCounts[c.dst.Team]++
			teamsUsed[c.dst.Team] = true
			continue
		}

		team := c.pred.Team
		if !canAffordTeam(team) {
			continue
		}
		if needs[c.pred.Position] > 0 {
			playerSelections[c.pred.Position] = append(playerSelections[c.pred.Position], c.pred)
			needs[c.pred.Position]--
			remainingSalary -= c.salary
			teamCounts[team]++
			teamsUsed[team] = true
			continue
		}
		if flexNeeded > 0 && flexEligible[c.pred.Position] {
			flexSelections = append(flexSelections, c.pred)
			flexNeeded--
			remainingSalary -= c.salary
			teamCounts[team]++
			teamsUsed[team] = true
		}
	}

	result := models.LineupResult{}
	var total float64
	addSlot := func(slot models.SlotName, required int, players []models.PlayerPrediction) {
		for _, p := range players {
			total += p.PredictedPoints
		}
		result.Slots = append(result.Slots, models.LineupSlotSelection{
			Slot: slot, Required: required, Players: players, UnderFilled: len(players) < required,
		})
	}
	if template.QB > 0 {
		addSlot(models.SlotQB, template.QB, playerSelections[models.PositionQB])
	}
	if template.RB > 0 {
		addSlot(models.SlotRB, template.RB, playerSelections[models.PositionRB])
	}
	if template.WR > 0 {
		addSlot(models.SlotWR, template.WR, playerSelections[models.PositionWR])
	}
	if template.TE > 0 {
		addSlot(models.SlotTE, template.TE, playerSelections[models.PositionTE])
	}
	if template.FLEX > 0 {
		addSlot(models.SlotFLEX, template.FLEX, flexSelections)
	}
	if template.DST > 0 {
		var dstPlayers []models.PlayerPrediction
		for _, d := range dstSelections {
			total += d.PredictedPoints
			dstPlayers = append(dstPlayers, models.PlayerPrediction{
				PlayerName: d.Team + " D/ST", Team: d.Team, Position: "DST", PredictedPoints: d.PredictedPoints,
			})
		}
		result.Slots = append(result.Slots, models.LineupSlotSelection{
			Slot: models.SlotDST, Required: template.DST, Players: dstPlayers, UnderFilled: len(dstPlayers) < template.DST,
		})
	}

	result.TotalProjectedPoints = total
	spent := cap - remainingSalary
	result.TotalSalary = &spent

	teams := make([]string, 0, len(teamsUsed))
	for t := range teamsUsed {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	result.TeamsUsed = teams
	if !satisfiesTeamDiversity(teams) {
		log.Printf("lineup: salary-aware composer produced only %d distinct team(s), below the %d minimum", len(teams), minDistinctTeams)
	}

	result.Stacks = DetectStacks(flattenSlots(result.Slots))
	return result
}

func valuePerThousand(points float64, salary int) float64 {
	if salary <= 0 {
		return 0
	}
	return points / (float64(salary) / 1000)
}

// Package lineup composes a starting lineup from adjusted predictions
// (§4.7 LineupComposer).
package lineup

import (
	"sort"

	"github.com/gridiron-projections/engine/internal/models"
)

const defaultSalaryCap = 50000
const maxPlayersPerTeam = 4

// minDistinctTeams is the §4.7 salary-aware constraint ("≥2 distinct
// teams across the lineup"). A full 9-slot lineup under
// maxPlayersPerTeam already forces at least 3 teams, so this is
// asserted rather than actively enforced during selection.
const minDistinctTeams = 2

func satisfiesTeamDiversity(teamsUsed []string) bool {
	return len(teamsUsed) >= minDistinctTeams
}

var flexEligible = map[models.Position]bool{
	models.PositionRB: true, models.PositionWR: true, models.PositionTE: true,
}

// partitionByPosition groups predictions by position, each group sorted
// by predicted points descending (§4.7 Basic composer).
func partitionByPosition(predictions []models.PlayerPrediction) map[models.Position][]models.PlayerPrediction {
	byPosition := make(map[models.Position][]models.PlayerPrediction)
	for _, p := range predictions {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for pos := range byPosition {
		group := byPosition[pos]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PredictedPoints > group[j].PredictedPoints
		})
	}
	return byPosition
}

// Basic fills the default slot template by taking the top-k predictions
// per position, descending by predicted points (§4.7 Basic composer).
// FLEX is filled from whichever RB/WR/TE remain after required slots,
// per DESIGN.md Q1: FLEX participates by default whenever a surplus
// exists.
func Basic(predictions []models.PlayerPrediction, template models.SlotTemplate) models.LineupResult {
	byPosition := partitionByPosition(predictions)

	result := models.LineupResult{}
	var total float64

	take := func(slot models.SlotName, pos models.Position, n int) models.LineupSlotSelection {
		avail := byPosition[pos]
		got := avail
		if len(got) > n {
			got = got[:n]
		}
		byPosition[pos] = avail[len(got):]
		for _, p := range got {
			total += p.PredictedPoints
		}
		return models.LineupSlotSelection{
			Slot: slot, Required: n, Players: got, UnderFilled: len(got) < n,
		}
	}

	if template.QB > 0 {
		result.Slots = append(result.Slots, take(models.SlotQB, models.PositionQB, template.QB))
	}
	if template.RB > 0 {
		result.Slots = append(result.Slots, take(models.SlotRB, models.PositionRB, template.RB))
	}
	if template.WR > 0 {
		result.Slots = append(result.Slots, take(models.SlotWR, models.PositionWR, template.WR))
	}
	if template.TE > 0 {
		result.Slots = append(result.Slots, take(models.SlotTE, models.PositionTE, template.TE))
	}
	if template.FLEX > 0 {
		flexPool := mergeFlexPool(byPosition)
		got := flexPool
		if len(got) > template.FLEX {
			got = got[:template.FLEX]
		}
		removeFlexSelections(byPosition, got)
		for _, p := range got {
			total += p.PredictedPoints
		}
		result.Slots = append(result.Slots, models.LineupSlotSelection{
			Slot: models.SlotFLEX, Required: template.FLEX, Players: got, UnderFilled: len(got) < template.FLEX,
		})
	}

	result.TotalProjectedPoints = total
	result.Stacks = DetectStacks(flattenSlots(result.Slots))
	return result
}

// mergeFlexPool merges the remaining RB/WR/TE predictions into one
// pool sorted by predicted points descending, for FLEX selection.
func mergeFlexPool(byPosition map[models.Position][]models.PlayerPrediction) []models.PlayerPrediction {
	var pool []models.PlayerPrediction
	for pos := range flexEligible {
		pool = append(pool, byPosition[pos]...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].PredictedPoints > pool[j].PredictedPoints
	})
	return pool
}

// removeFlexSelections deletes the chosen FLEX players from byPosition
// so a later caller never double-counts them.
func removeFlexSelections(byPosition map[models.Position][]models.PlayerPrediction, chosen []models.PlayerPrediction) {
	chosenIDs := make(map[string]bool, len(chosen))
	for _, p := range chosen {
		chosenIDs[p.PlayerID.String()] = true
	}
	for pos := range flexEligible {
		remaining := byPosition[pos][:0]
		for _, p := range byPosition[pos] {
			if !chosenIDs[p.PlayerID.String()] {
				remaining = append(remaining, p)
			}
		}
		byPosition[pos] = remaining
	}
}

func flattenSlots(slots []models.LineupSlotSelection) []models.PlayerPrediction {
	var all []models.PlayerPrediction
	for _, s := range slots {
		all = append(all, s.Players...)
	}
	return all
}

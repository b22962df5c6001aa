package lineup

import (
	"sort"

	"github.com/gridiron-projections/engine/internal/models"
)

// DetectStacks reports same-team QB+skill-position stacks in a
// composed lineup (§9.2 supplemented feature, grounded on
// original_source/src/lineup_optimizer.py's analyze_lineup
// stack_analysis). Informational only: it never constrains selection.
func DetectStacks(players []models.PlayerPrediction) []models.StackSummary {
	byTeam := make(map[string][]string)
	hasQB := make(map[string]bool)
	for _, p := range players {
		byTeam[p.Team] = append(byTeam[p.Team], string(p.Position))
		if p.Position == models.PositionQB {
			hasQB[p.Team] = true
		}
	}

	var stacks []models.StackSummary
	for team, positions := range byTeam {
		if !hasQB[team] || len(positions) < 2 {
			continue
		}
		sort.Strings(positions)
		stacks = append(stacks, models.StackSummary{Team: team, Positions: positions})
	}
	sort.Slice(stacks, func(i, j int) bool { return stacks[i].Team < stacks[j].Team })
	return stacks
}

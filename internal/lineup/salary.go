package lineup

import "github.com/gridiron-projections/engine/internal/models"

// SalaryEstimator maps a prediction to a salary. A real salary feed can
// implement this without the composer changing (§9.1: "exposed as a
// small interface ... so a real salary feed can replace it").
type SalaryEstimator interface {
	PlayerSalary(p models.PlayerPrediction) int
	DstSalary(p models.DstPrediction) int
}

// heuristicMultiplier, heuristicFloor, and heuristicCeiling are the
// §9.1 per-position salary-estimation constants, grounded on
// original_source/src/lineup_optimizer.py's _estimate_salary.
var (
	heuristicMultiplier = map[models.Position]float64{
		models.PositionQB: 600, models.PositionRB: 700,
		models.PositionWR: 700, models.PositionTE: 500,
	}
	heuristicFloor = map[models.Position]float64{
		models.PositionQB: 4500, models.PositionRB: 4000,
		models.PositionWR: 4000, models.PositionTE: 3500,
	}
	heuristicCeiling = map[models.Position]float64{
		models.PositionQB: 9000, models.PositionRB: 10000,
		models.PositionWR: 9500, models.PositionTE: 7500,
	}
)

const (
	dstSalaryMultiplier = 250
	dstSalaryFloor      = 2000
	dstSalaryCeiling     = 6000
)

// HeuristicEstimator is the default SalaryEstimator: a position-and-
// projection heuristic, not a real salary feed (§9.1).
type HeuristicEstimator struct{}

func (HeuristicEstimator) PlayerSalary(p models.PlayerPrediction) int {
	return estimateSalary(p.Position, p.PredictedPoints)
}

func (HeuristicEstimator) DstSalary(p models.DstPrediction) int {
	return estimateDstSalary(p.PredictedPoints)
}

// estimateSalary implements §9.1's skill-position clamp:
// salary = clamp(points*multiplier, floor, ceiling).
func estimateSalary(position models.Position, points float64) int {
	mult, ok := heuristicMultiplier[position]
	if !ok {
		mult = 600
	}
	floor := heuristicFloor[position]
	ceiling := heuristicCeiling[position]

	salary := points * mult
	if salary < floor {
		salary = floor
	}
	if salary > ceiling {
		salary = ceiling
	}
	return int(salary)
}

// estimateDstSalary implements §9.1's DST clamp: clamp(points*250, 2000, 6000).
func estimateDstSalary(points float64) int {
	salary := points * dstSalaryMultiplier
	if salary < dstSalaryFloor {
		salary = dstSalaryFloor
	}
	if salary > dstSalaryCeiling {
		salary = dstSalaryCeiling
	}
	return int(salary)
}

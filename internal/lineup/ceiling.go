package lineup

import "math"

// ceilingFloorMultiplier is the §9.2 supplemented band width: projected
// ± 1.3·stddev approximates the 90th/10th percentile under a normal
// assumption, grounded on original_source/src/lineup_optimizer.py's
// ceiling/floor calculation.
const ceilingFloorMultiplier = 1.3

// CeilingFloor reports a player's 90th/10th-percentile projection band
// from their already-computed last-5-game fantasy-point standard
// deviation (FeatureBuilder's Consistency field). Reported only,
// never used for lineup selection (§9.2).
func CeilingFloor(projected, consistency float64) (ceiling, floor float64) {
	ceiling = projected + ceilingFloorMultiplier*consistency
	floor = math.Max(0, projected-ceilingFloorMultiplier*consistency)
	return ceiling, floor
}

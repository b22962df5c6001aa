// Package scoring converts raw box-score rows into fantasy points under a
// configurable ruleset (§4.1). It is a pure function package: no state,
// no I/O, tolerant of missing numeric inputs.
package scoring

import (
	"math"
	"strconv"

	"github.com/gridiron-projections/engine/internal/errs"
	"github.com/gridiron-projections/engine/internal/models"
)

// Registry is an immutable, loaded-once table of known rulesets, keyed
// by name. It is populated at startup and never mutated afterward (§5
// "scoring rulesets loaded once at startup and treated as immutable").
type Registry struct {
	rulesets map[string]models.ScoringRuleset
}

// NewRegistry builds a Registry from the rows loaded from scoring_systems.
func NewRegistry(rulesets []models.ScoringRuleset) *Registry {
	r := &Registry{rulesets: make(map[string]models.ScoringRuleset, len(rulesets))}
	for _, rs := range rulesets {
		r.rulesets[rs.Name] = rs
	}
	return r
}

// Get returns the named ruleset or ErrUnknownRuleset.
func (r *Registry) Get(name string) (models.ScoringRuleset, error) {
	rs, ok := r.rulesets[name]
	if !ok {
		return models.ScoringRuleset{}, errs.ErrUnknownRuleset
	}
	return rs, nil
}

// ScorePlayer maps a BoxScoreRow to a decomposed fantasy score under
// ruleset (§4.1 score_player). Numeric inputs on BoxScoreRow are
// ordinary Go numeric types, so the "tolerant of nulls and non-numeric
// sentinel bytes" behavior of the original applies at ingestion time
// (where raw feed values are parsed into BoxScoreRow); this function only
// needs to tolerate a zero-valued row, which it does by construction.
func ScorePlayer(row models.BoxScoreRow, ruleset models.ScoringRuleset) models.ScoreBreakdown {
	passing := float64(row.PassYards)*ruleset.PassYardPoints + float64(row.PassTDs)*ruleset.PassTDPoints
	rushing := float64(row.RushYards)*ruleset.RushYardPoints + float64(row.RushTDs)*ruleset.RushTDPoints
	receiving := float64(row.Receptions)*ruleset.ReceptionPoints +
		float64(row.ReceivingYards)*ruleset.ReceivingYardPoints +
		float64(row.ReceivingTDs)*ruleset.ReceivingTDPoints

	fumblesLost := row.RushFumbles + row.ReceivingFumbles
	penalty := float64(row.PassInterceptions)*ruleset.PassIntPoints + float64(fumblesLost)*ruleset.FumblePoints

	var bonus float64
	if ruleset.IsBonusEligible() {
		if row.RushYards >= 100 {
			bonus += 3
		}
		if row.ReceivingYards >= 100 {
			bonus += 3
		}
		if row.PassYards >= 300 {
			bonus += 3
		}
	}

	total := passing + rushing + receiving + bonus + penalty
	return models.ScoreBreakdown{
		Passing:   passing,
		Rushing:   rushing,
		Receiving: receiving,
		Bonus:     bonus,
		Penalty:   penalty,
		Total:     total,
	}
}

// sysval returns the ruleset's value for the primary key if set,
// otherwise falls back to secondary, otherwise def. Mirrors the
// original's key-compatibility helper so either schema generation of
// scoring_systems scores identically (§6.1, §9 Q3-adjacent note).
func sysval(primary, secondary *float64, def float64) float64 {
	if primary != nil {
		return *primary
	}
	if secondary != nil {
		return *secondary
	}
	return def
}

// ScoreDST maps a TeamDefenseRow to a decomposed DST fantasy score
// (§4.1 score_dst).
func ScoreDST(row models.TeamDefenseRow, ruleset models.ScoringRuleset) models.DstScoreBreakdown {
	var pointsAllowed float64
	switch {
	case row.PointsAllowed == 0:
		pointsAllowed = sysval(ruleset.DstShutoutPoints, ruleset.DstPointsAllowed0Points, 10)
	case row.PointsAllowed <= 6:
		pointsAllowed = sysval(ruleset.Dst1To6Points, ruleset.DstPointsAllowed6Points, 7)
	case row.PointsAllowed <= 13:
		pointsAllowed = sysval(ruleset.Dst7To13Points, ruleset.DstPointsAllowed13Points, 4)
	case row.PointsAllowed <= 20:
		pointsAllowed = sysval(ruleset.Dst14To20Points, ruleset.DstPointsAllowed20Points, 1)
	case row.PointsAllowed <= 27:
		pointsAllowed = sysval(ruleset.Dst21To27Points, ruleset.DstPointsAllowed27Points, 0)
	case row.PointsAllowed <= 34:
		pointsAllowed = sysval(ruleset.Dst28To34Points, ruleset.DstPointsAllowed34Points, -1)
	default:
		pointsAllowed = sysval(ruleset.Dst35PlusPoints, ruleset.DstPointsAllowed35Points, -4)
	}

	turnovers := float64(row.Interceptions)*sysval(ruleset.IntPoints, ruleset.DstInterceptionPoints, 2) +
		float64(row.FumblesRecovered)*sysval(ruleset.FumbleRecoveryPoints, ruleset.DstFumbleRecoveryPoints, 2)

	sacks := float64(row.Sacks) * sysval(ruleset.SackPoints, ruleset.DstSackPoints, 1.0)

	totalTDs := row.DefensiveTouchdowns + row.PickSix + row.FumbleTouchdowns + row.ReturnTouchdowns
	touchdowns := float64(totalTDs) * sysval(ruleset.DefensiveTDPoints, ruleset.DstTouchdownPoints, 6)

	safety := float64(row.Safeties) * sysval(ruleset.SafetyPoints, ruleset.DstSafetyPoints, 2)

	var bonus float64
	if row.YardsAllowed < 100 {
		bonus = ruleset.DstUnder100Bonus
	} else if row.YardsAllowed < 300 {
		bonus = ruleset.DstUnder300Bonus
	}

	total := pointsAllowed + turnovers + sacks + touchdowns + safety + bonus
	return models.DstScoreBreakdown{
		PointsAllowed: pointsAllowed,
		Turnovers:     turnovers,
		Sacks:         sacks,
		Touchdowns:    touchdowns,
		Safety:        safety,
		Bonus:         bonus,
		Total:         total,
	}
}

// safeNumeric mirrors the original's null/bytes/non-numeric tolerance for
// callers assembling a BoxScoreRow or TeamDefenseRow from an untyped
// source (e.g. a dynamic ingestion payload) before the typed struct
// fields above take over.
func safeNumeric(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(x) {
			return def
		}
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case []byte:
		return parseFloatOr(string(x), def)
	case string:
		return parseFloatOr(x, def)
	default:
		return def
	}
}

func parseFloatOr(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

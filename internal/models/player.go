package models

import (
	"github.com/google/uuid"
)

// Position is a player's primary position (§3 Player).
type Position string

const (
	PositionQB    Position = "QB"
	PositionRB    Position = "RB"
	PositionWR    Position = "WR"
	PositionTE    Position = "TE"
	PositionK     Position = "K"
	PositionDST   Position = "DST"
	PositionOther Position = "other"
)

// SkillPositions are the positions FeatureBuilder and ModelStore model
// individually (DST is modeled separately, over TeamDefenseRow).
var SkillPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// IsSkillPosition reports whether pos is one ModelStore fits a
// per-position regressor for.
func IsSkillPosition(pos Position) bool {
	switch pos {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	default:
		return false
	}
}

// Player represents an NFL player (§3 Player).
type Player struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name" validate:"required"`
	Position Position   `json:"position" validate:"required"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

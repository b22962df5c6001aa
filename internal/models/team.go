package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents an NFL team (§3 Team). Teams are loaded once per
// ingestion pass and are effectively immutable within a run.
type Team struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code" validate:"required"` // short uppercase code, 2-3 chars (e.g. "KC", "SF")
	Name       string    `json:"name" validate:"required"`
	Division   string    `json:"division" validate:"required,oneof=North South East West"`
	Conference string    `json:"conference" validate:"required,oneof=AFC NFC"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

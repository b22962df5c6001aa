package models

import (
	"encoding/json"
	"time"
)

// SchemaVersion is the current artifact schema version; load() rejects
// any stored artifact with a different version as a SchemaMismatch (§9, I4).
const SchemaVersion = 1

// FeatureSchema is the ordered feature-name contract recorded at
// training time and required unchanged at prediction time (§3
// ModelArtifact, §4.4, GLOSSARY "Feature schema").
type FeatureSchema struct {
	SchemaVersion int `json:"schema_version"`

	PlayerFeatureNames []string `json:"player_feature_names"`
	DstFeatureNames    []string `json:"dst_feature_names"`

	SupportsPositionFeatures bool `json:"supports_position_features"`
}

// PositionArtifact is the trained regressor for one position (§3
// ModelArtifact: "per (ruleset, position) a trained regressor").
type PositionArtifact struct {
	Position          Position `json:"position"` // or "DST"
	SelectedCandidate string   `json:"selected_candidate"` // "bagged_tree" | "gradient_boosted" | "ridge"
	NeedsScaler       bool     `json:"needs_scaler"`
	HeldOutMAE        float64  `json:"held_out_mae"`
	TrainingRows      int      `json:"training_rows"`

	// Model is the opaque serialized regressor state (tree structures or
	// ridge coefficients); Scaler is populated only when NeedsScaler.
	Model  json.RawMessage `json:"model"`
	Scaler *Scaler         `json:"scaler,omitempty"`
}

// Scaler holds per-feature standardization parameters fit on the
// training split (§4.4: "standardized features" for the ridge candidate).
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// ModelArtifact bundles all position regressors for one ruleset plus
// training metadata (§3 ModelArtifact, §6.2).
type ModelArtifact struct {
	Ruleset string `json:"ruleset"`

	SeasonsUsed    []int `json:"seasons_used"`
	LastDataSeason int   `json:"last_data_season"`
	LastDataWeek   int   `json:"last_data_week"`

	TrainedAtUTC time.Time `json:"trained_at_utc"`

	LibraryVersions map[string]string `json:"library_versions"`

	Schema FeatureSchema `json:"feature_schema"`

	Positions map[Position]PositionArtifact `json:"positions"`
	Dst       *PositionArtifact             `json:"dst,omitempty"`

	// Cutoff is nil for the published CURRENT artifact; set for a
	// cutoff-specific artifact (§3 CutoffModelKey).
	Cutoff *CutoffModelKey `json:"cutoff,omitempty"`
}

// CutoffModelKey identifies a cutoff-trained artifact: trained using
// only data strictly prior to (TargetSeason, TargetWeek) (§3
// CutoffModelKey, I6).
type CutoffModelKey struct {
	Ruleset      string `json:"ruleset"`
	TargetSeason int    `json:"target_season"`
	TargetWeek   int    `json:"target_week"`
}

// CurrentPointer is the contents of CURRENT.json (§4.4 persistence
// layout): {file, metadata} pointing at the latest non-cutoff artifact.
type CurrentPointer struct {
	File     string        `json:"file"`
	Metadata ModelArtifact `json:"metadata"`
}

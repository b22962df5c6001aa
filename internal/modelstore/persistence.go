package modelstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridiron-projections/engine/internal/models"
)

// rulesetSlug lowercases a ruleset name and strips its spaces for
// filesystem paths (§4.4 persistence layout: "<ruleset-slug>").
func rulesetSlug(ruleset string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(ruleset)), " ", "")
}

func (s *Store) rulesetDir(ruleset string) string {
	return filepath.Join(s.baseDir, rulesetSlug(ruleset))
}

// blobPath is the "model blob" file for one (ruleset, season, week)
// training pass (§4.4: "data/models/<slug>/<slug>_<season>_wk<week>.pkl").
// It holds the full artifact, including every position's serialized
// regressor, JSON-encoded rather than pickled.
func (s *Store) blobPath(ruleset string, season, week int) string {
	slug := rulesetSlug(ruleset)
	return filepath.Join(s.rulesetDir(ruleset), fmt.Sprintf("%s_%d_wk%d.pkl", slug, season, week))
}

// sidecarPath is the lightweight metadata-only companion file.
func (s *Store) sidecarPath(ruleset string, season, week int) string {
	slug := rulesetSlug(ruleset)
	return filepath.Join(s.rulesetDir(ruleset), fmt.Sprintf("%s_%d_wk%d.json", slug, season, week))
}

func (s *Store) currentPointerPath(ruleset string) string {
	return filepath.Join(s.rulesetDir(ruleset), "CURRENT.json")
}

// legacyBlobPath is the flat, non-sharded layout accepted on load for
// backward compatibility (§4.4: "A legacy flat path is also accepted on
// load").
func (s *Store) legacyBlobPath(ruleset string, season, week int) string {
	slug := rulesetSlug(ruleset)
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_%d_wk%d.pkl", slug, season, week))
}

// atomicWriteFile writes data to a temp sibling of path, fsyncs it, then
// renames it into place (§4.4: "Writes are atomic: write to a temp
// sibling file, fsync, rename in place").
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("modelstore: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("modelstore: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("modelstore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("modelstore: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("modelstore: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("modelstore: rename into place: %w", err)
	}
	return nil
}

// artifactSidecar is the shallow metadata written to the .json
// companion file: everything in ModelArtifact except the heavy
// per-position model blobs (§4.4 persistence layout).
type artifactSidecar struct {
	Ruleset         string            `json:"ruleset"`
	SeasonsUsed     []int             `json:"seasons_used"`
	LastDataSeason  int               `json:"last_data_season"`
	LastDataWeek    int               `json:"last_data_week"`
	TrainedAtUTC    string            `json:"trained_at_utc"`
	LibraryVersions map[string]string `json:"library_versions"`
	Schema          models.FeatureSchema `json:"feature_schema"`
	Cutoff          *models.CutoffModelKey `json:"cutoff,omitempty"`
}

func toSidecar(a *models.ModelArtifact) artifactSidecar {
	return artifactSidecar{
		Ruleset:         a.Ruleset,
		SeasonsUsed:     a.SeasonsUsed,
		LastDataSeason:  a.LastDataSeason,
		LastDataWeek:    a.LastDataWeek,
		TrainedAtUTC:    a.TrainedAtUTC.UTC().Format("2006-01-02T15:04:05Z"),
		LibraryVersions: a.LibraryVersions,
		Schema:          a.Schema,
		Cutoff:          a.Cutoff,
	}
}

// save persists artifact's blob and sidecar at the (season, week) the
// caller passes, both written atomically.
func (s *Store) save(ruleset string, season, week int, artifact *models.ModelArtifact) error {
	blob, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("modelstore: marshal artifact: %w", err)
	}
	if err := atomicWriteFile(s.blobPath(ruleset, season, week), blob); err != nil {
		return err
	}

	sidecar, err := json.MarshalIndent(toSidecar(artifact), "", "  ")
	if err != nil {
		return fmt.Errorf("modelstore: marshal sidecar: %w", err)
	}
	return atomicWriteFile(s.sidecarPath(ruleset, season, week), sidecar)
}

// loadBlob loads an artifact from its sharded path, falling back to the
// legacy flat path (§4.4 "A legacy flat path is also accepted on load").
func (s *Store) loadBlob(ruleset string, season, week int) (*models.ModelArtifact, error) {
	data, err := os.ReadFile(s.blobPath(ruleset, season, week))
	if err != nil {
		data, err = os.ReadFile(s.legacyBlobPath(ruleset, season, week))
		if err != nil {
			return nil, err
		}
	}

	var artifact models.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("modelstore: unmarshal artifact: %w", err)
	}
	if artifact.Schema.SchemaVersion != models.SchemaVersion {
		return nil, fmt.Errorf("modelstore: schema version %d != %d", artifact.Schema.SchemaVersion, models.SchemaVersion)
	}
	return &artifact, nil
}

func (s *Store) loadCurrentPointer(ruleset string) (*models.CurrentPointer, error) {
	data, err := os.ReadFile(s.currentPointerPath(ruleset))
	if err != nil {
		return nil, err
	}
	var ptr models.CurrentPointer
	if err := json.Unmarshal(data, &ptr); err != nil {
		return nil, fmt.Errorf("modelstore: unmarshal current pointer: %w", err)
	}
	return &ptr, nil
}

func (s *Store) writeCurrentPointer(ruleset string, ptr models.CurrentPointer) error {
	data, err := json.MarshalIndent(ptr, "", "  ")
	if err != nil {
		return fmt.Errorf("modelstore: marshal current pointer: %w", err)
	}
	return atomicWriteFile(s.currentPointerPath(ruleset), data)
}

// Package injury adjusts a set of predictions against a current injury
// report (§4.6 InjuryFilter).
package injury

import (
	"log"
	"strings"

	"github.com/gridiron-projections/engine/internal/models"
)

// Report indexes a slice of injury records by lowercased player name for
// the case-insensitive lookups FilterOut and Adjust both need.
type Report struct {
	records []models.InjuryRecord
	byName  map[string]models.InjuryRecord
}

// NewReport builds a Report from raw injury records. When a player
// appears more than once (e.g. a corrected wire update), the most
// recently modified record wins.
func NewReport(records []models.InjuryRecord) *Report {
	byName := make(map[string]models.InjuryRecord, len(records))
	for _, rec := range records {
		key := strings.ToLower(strings.TrimSpace(rec.FullName))
		existing, ok := byName[key]
		if !ok || rec.DateModified.After(existing.DateModified) {
			byName[key] = rec
		}
	}
	return &Report{records: records, byName: byName}
}

func (r *Report) lookup(name string) (models.InjuryRecord, bool) {
	rec, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return rec, ok
}

// FilterOut removes predictions for any player the report marks Out or
// INACTIVE (§4.6 filter_out), logging the count removed.
func FilterOut(predictions []models.PlayerPrediction, report *Report) []models.PlayerPrediction {
	if report == nil {
		return predictions
	}

	kept := make([]models.PlayerPrediction, 0, len(predictions))
	removed := 0
	for _, p := range predictions {
		if rec, ok := report.lookup(p.PlayerName); ok && rec.IsOut() {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed > 0 {
		log.Printf("injury: filtered out %d player(s) ruled Out/INACTIVE", removed)
	}
	return kept
}

// Adjust scales each prediction's points down by its matching injury's
// severity (§4.6 adjust, I7: strictly lowers, never raises). Predictions
// with no matching record, or severity 0, pass through unchanged.
func Adjust(predictions []models.PlayerPrediction, report *Report) []models.PlayerPrediction {
	if report == nil {
		return predictions
	}

	adjusted := make([]models.PlayerPrediction, len(predictions))
	copy(adjusted, predictions)

	count := 0
	for i, p := range adjusted {
		rec, ok := report.lookup(p.PlayerName)
		if !ok {
			continue
		}
		s := rec.Severity()
		if s <= 0 {
			continue
		}
		adjusted[i].PredictedPoints = p.PredictedPoints * (1 - s)
		sev := s
		adjusted[i].InjuryAdjustment = &sev
		count++
	}
	if count > 0 {
		log.Printf("injury: adjusted %d prediction(s) for reported injuries", count)
	}
	return adjusted
}

// Summarize builds the §4.8 injury_report block: how many records came
// in, how many predictions were removed/adjusted, and a status
// breakdown of the report itself.
func Summarize(report *Report, filteredOut, adjusted int) *models.InjuryReportSummary {
	if report == nil {
		return nil
	}
	byStatus := make(map[string]int)
	for _, rec := range report.records {
		byStatus[string(rec.Status)]++
	}
	return &models.InjuryReportSummary{
		TotalReported: len(report.records),
		FilteredOut:   filteredOut,
		Adjusted:      adjusted,
		ByStatus:      byStatus,
	}
}

// offensiveLinePositions are the reported positions counted toward the
// DST opponent-injury boost's OL term (§4.6: "Out offensive lineman
// (C/G/T)").
var offensiveLinePositions = map[string]bool{"C": true, "G": true, "T": true}

// OpponentBoost computes the multiplicative DST uplift for the
// opponent's injured roster: +0.15 per Out QB, +0.05 per Questionable
// QB, +0.03 per Out offensive lineman, capped at +0.25 (§4.6 DST
// opponent-injury boost). It is applied outside FilterOut/Adjust, which
// only ever reduce.
func OpponentBoost(report *Report, opponentTeam string) float64 {
	if report == nil {
		return 0
	}
	var boost float64
	for _, rec := range report.records {
		if !strings.EqualFold(rec.Team, opponentTeam) {
			continue
		}
		switch {
		case rec.Position == string(models.PositionQB) && rec.Status == models.InjuryStatusOut:
			boost += 0.15
		case rec.Position == string(models.PositionQB) && rec.Status == models.InjuryStatusQuestionable:
			boost += 0.05
		case offensiveLinePositions[rec.Position] && rec.Status == models.InjuryStatusOut:
			boost += 0.03
		}
	}
	if boost > 0.25 {
		boost = 0.25
	}
	return boost
}

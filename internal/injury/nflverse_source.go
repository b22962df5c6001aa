package injury

import (
	"context"
	"strings"
	"time"

	"github.com/gridiron-projections/engine/internal/models"
	"github.com/gridiron-projections/engine/internal/nflverse"
)

// nflverseClient is the narrow surface NflverseSource needs from
// nflverse.Client.
type nflverseClient interface {
	FetchInjuries(ctx context.Context, season int, week int) ([]nflverse.Injury, error)
}

// NflverseSource adapts the nflverse injury feed into a Source. cmd/predict
// and cmd/server use it to serve the current week's report when no live
// feed is configured.
type NflverseSource struct {
	client        nflverseClient
	currentSeason int
	currentWeek   int
}

// NewNflverseSource builds a NflverseSource pinned to the season/week
// treated as "current" for CurrentInjuries.
func NewNflverseSource(client nflverseClient, currentSeason, currentWeek int) *NflverseSource {
	return &NflverseSource{client: client, currentSeason: currentSeason, currentWeek: currentWeek}
}

// CurrentInjuries returns the pinned current-week report, optionally
// filtered to one team.
func (s *NflverseSource) CurrentInjuries(ctx context.Context, team string) ([]models.InjuryRecord, error) {
	records, err := s.HistoricalInjuries(ctx, s.currentSeason, s.currentWeek)
	if err != nil || team == "" {
		return records, err
	}
	out := make([]models.InjuryRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Team, team) {
			out = append(out, r)
		}
	}
	return out, nil
}

// HistoricalInjuries fetches and converts one season/week's nflverse
// injury report.
func (s *NflverseSource) HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error) {
	raw, err := s.client.FetchInjuries(ctx, season, week)
	if err != nil {
		return nil, err
	}
	out := make([]models.InjuryRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, convertNflverseInjury(r))
	}
	return out, nil
}

// IsPlayerOut checks the pinned current-week report.
func (s *NflverseSource) IsPlayerOut(ctx context.Context, playerName string) (bool, error) {
	records, err := s.CurrentInjuries(ctx, "")
	if err != nil {
		return false, err
	}
	report := NewReport(records)
	rec, ok := report.lookup(playerName)
	return ok && rec.IsOut(), nil
}

func convertNflverseInjury(r nflverse.Injury) models.InjuryRecord {
	var gsisID *string
	if r.PlayerID != "" {
		id := r.PlayerID
		gsisID = &id
	}
	modified, _ := time.Parse("2006-01-02", r.DateModified)
	return models.InjuryRecord{
		Season:          r.Season,
		Week:            r.Week,
		GameType:        r.GameType,
		Team:            r.TeamAbbr,
		GsisID:          gsisID,
		FullName:        r.PlayerName,
		Position:        r.Position,
		Status:          parseInjuryStatus(r.ReportStatus),
		PrimaryInjury:   r.ReportPrimaryInjury,
		SecondaryInjury: r.ReportSecondaryInjury,
		PracticeStatus:  r.PracticeStatus,
		DateModified:    modified,
	}
}

func parseInjuryStatus(raw string) models.InjuryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out":
		return models.InjuryStatusOut
	case "doubtful":
		return models.InjuryStatusDoubtful
	case "questionable":
		return models.InjuryStatusQuestionable
	default:
		return models.InjuryStatusActive
	}
}

var _ Source = (*NflverseSource)(nil)

package injury

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gridiron-projections/engine/internal/models"
)

// Source is the injury-data collaborator the orchestrator depends on
// (§4.9, §6.3): current and historical injury reports, plus a quick
// Out check by player name.
type Source interface {
	CurrentInjuries(ctx context.Context, team string) ([]models.InjuryRecord, error)
	HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error)
	IsPlayerOut(ctx context.Context, playerName string) (bool, error)
}

// historicalStore is the narrow slice of internal/store.Store this
// package depends on, kept as an interface so tests can fake it.
type historicalStore interface {
	HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error)
}

// PostgresSource answers historical injury queries from the
// historical_injuries table and treats "current" as the season/week
// passed to NewPostgresSource, matching the teacher's pattern of a thin
// wrapper type around internal/store for one domain slice.
type PostgresSource struct {
	store        historicalStore
	currentSeason int
	currentWeek   int
}

// NewPostgresSource builds a PostgresSource pinned to the season/week
// the caller considers "current" for CurrentInjuries lookups.
func NewPostgresSource(store historicalStore, currentSeason, currentWeek int) *PostgresSource {
	return &PostgresSource{store: store, currentSeason: currentSeason, currentWeek: currentWeek}
}

func (s *PostgresSource) CurrentInjuries(ctx context.Context, team string) ([]models.InjuryRecord, error) {
	records, err := s.store.HistoricalInjuries(ctx, s.currentSeason, s.currentWeek)
	if err != nil {
		return nil, err
	}
	if team == "" {
		return records, nil
	}
	out := make([]models.InjuryRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Team, team) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *PostgresSource) HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error) {
	return s.store.HistoricalInjuries(ctx, season, week)
}

func (s *PostgresSource) IsPlayerOut(ctx context.Context, playerName string) (bool, error) {
	records, err := s.store.HistoricalInjuries(ctx, s.currentSeason, s.currentWeek)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if strings.EqualFold(r.FullName, playerName) && r.IsOut() {
			return true, nil
		}
	}
	return false, nil
}

// LiveFeedClient is a live injury-wire client. It follows the teacher's
// ESPN client idiom (typed http.Client with a fixed timeout,
// context-aware requests): CurrentInjuries makes one GET to the feed URL
// and decodes a JSON array of InjuryRecord, with no retry. Any failure is
// returned as an error, which the orchestrator treats as the source being
// unavailable. HistoricalInjuries always returns an error.
type LiveFeedClient struct {
	httpClient *http.Client
	feedURL    string
}

// NewLiveFeedClient builds a client pointed at feedURL; an empty feedURL
// makes every CurrentInjuries call return an error.
func NewLiveFeedClient(feedURL string) *LiveFeedClient {
	return &LiveFeedClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		feedURL:    feedURL,
	}
}

func (c *LiveFeedClient) CurrentInjuries(ctx context.Context, team string) ([]models.InjuryRecord, error) {
	if c.feedURL == "" {
		return nil, fmt.Errorf("injury: no live feed configured, source unavailable")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("injury: build feed request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("injury: live feed unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("injury: live feed returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("injury: read feed response: %w", err)
	}
	var records []models.InjuryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("injury: decode feed response: %w", err)
	}
	if team == "" {
		return records, nil
	}
	out := make([]models.InjuryRecord, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Team, team) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *LiveFeedClient) HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error) {
	return nil, fmt.Errorf("injury: live feed does not serve historical data")
}

func (c *LiveFeedClient) IsPlayerOut(ctx context.Context, playerName string) (bool, error) {
	records, err := c.CurrentInjuries(ctx, "")
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if strings.EqualFold(r.FullName, playerName) && r.IsOut() {
			return true, nil
		}
	}
	return false, nil
}

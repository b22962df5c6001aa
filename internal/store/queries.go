package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gridiron-projections/engine/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetTeam loads a single team by id.
func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	const q = `
		SELECT team_id, team_name, division, conference, created_at, updated_at
		FROM teams WHERE team_id = $1`
	var t models.Team
	if err := s.pool.QueryRow(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.Division, &t.Conference, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("store: get team: %w", err)
	}
	return &t, nil
}

// ListTeams loads every team (loaded once per ingestion pass, §3 Lifecycles).
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	const q = `SELECT team_id, team_name, division, conference, created_at, updated_at FROM teams`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Division, &t.Conference, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetPlayer loads a single player by id.
func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	const q = `SELECT player_id, player_name, position, team_id FROM players WHERE player_id = $1`
	var p models.Player
	if err := s.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Position, &p.TeamID); err != nil {
		return nil, fmt.Errorf("store: get player: %w", err)
	}
	return &p, nil
}

// EligiblePlayers returns skill-position players whose team has a game in
// (season, week) (§4.8 step 2).
func (s *Store) EligiblePlayers(ctx context.Context, season, week int) ([]models.Player, error) {
	const q = `
		SELECT DISTINCT p.player_id, p.player_name, p.position, p.team_id
		FROM players p
		JOIN games g ON p.team_id IN (g.home_team_id, g.away_team_id)
		WHERE g.season_id = $1 AND g.week = $2
		  AND p.position IN ('QB','RB','WR','TE')`
	rows, err := s.pool.Query(ctx, q, season, week)
	if err != nil {
		return nil, fmt.Errorf("store: eligible players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.TeamID); err != nil {
			return nil, fmt.Errorf("store: scan eligible player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// BoxScoresBefore returns up to limit of a player's most recent
// BoxScoreRows strictly preceding (season, week), most recent first
// (§4.3 build_player_features).
func (s *Store) BoxScoresBefore(ctx context.Context, playerID uuid.UUID, season, week, limit int) ([]models.BoxScoreRow, error) {
	const q = `
		SELECT gs.player_id, gs.game_id, gs.team_id, g.season_id, g.week,
		       gs.pass_attempts, gs.pass_completions, gs.pass_yards, gs.pass_touchdowns,
		       gs.pass_interceptions, gs.pass_sacks,
		       gs.rush_attempts, gs.rush_yards, gs.rush_touchdowns, gs.rush_fumbles,
		       gs.receptions, gs.receiving_targets, gs.receiving_yards, gs.receiving_touchdowns,
		       gs.receiving_fumbles, gs.target_share
		FROM game_stats gs
		JOIN games g ON gs.game_id = g.game_id
		WHERE gs.player_id = $1
		  AND (g.season_id < $2 OR (g.season_id = $2 AND g.week < $3))
		ORDER BY g.season_id DESC, g.week DESC
		LIMIT $4`
	rows, err := s.pool.Query(ctx, q, playerID, season, week, limit)
	if err != nil {
		return nil, fmt.Errorf("store: box scores before: %w", err)
	}
	defer rows.Close()

	var out []models.BoxScoreRow
	for rows.Next() {
		var r models.BoxScoreRow
		if err := rows.Scan(
			&r.PlayerID, &r.GameID, &r.TeamID, &r.Season, &r.Week,
			&r.PassAttempts, &r.PassCompletions, &r.PassYards, &r.PassTDs,
			&r.PassInterceptions, &r.SacksTaken,
			&r.RushAttempts, &r.RushYards, &r.RushTDs, &r.RushFumbles,
			&r.Receptions, &r.Targets, &r.ReceivingYards, &r.ReceivingTDs,
			&r.ReceivingFumbles, &r.TargetShare,
		); err != nil {
			return nil, fmt.Errorf("store: scan box score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TeamBoxScoresInWindow returns a team's box scores for games with week
// strictly less than week and week >= week-lookback in season
// (§4.2 offensive_strength/defensive_strength aggregation window).
func (s *Store) TeamBoxScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.BoxScoreRow, error) {
	return s.teamBoxScoresWindow(ctx, teamID, season, week-lookback, week)
}

// TeamScoresInWindow returns the team's own game scores (points scored)
// for the same window, keyed by game_id (§4.2 offensive_strength avg
// points).
func (s *Store) TeamScoresInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) (map[string]int, error) {
	const q = `
		SELECT game_id,
		       CASE WHEN home_team_id = $1 THEN home_score ELSE away_score END
		FROM games
		WHERE season_id = $2 AND week >= $3 AND week < $4
		  AND (home_team_id = $1 OR away_team_id = $1)
		  AND home_score IS NOT NULL AND away_score IS NOT NULL`
	rows, err := s.pool.Query(ctx, q, teamID, season, week-lookback, week)
	if err != nil {
		return nil, fmt.Errorf("store: team scores window: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var gameID string
		var score int
		if err := rows.Scan(&gameID, &score); err != nil {
			return nil, fmt.Errorf("store: scan team score: %w", err)
		}
		out[gameID] = score
	}
	return out, rows.Err()
}

func (s *Store) teamBoxScoresWindow(ctx context.Context, teamID uuid.UUID, season, minWeek, maxWeek int) ([]models.BoxScoreRow, error) {
	const q = `
		SELECT gs.player_id, gs.game_id, gs.team_id, g.season_id, g.week,
		       gs.pass_attempts, gs.pass_completions, gs.pass_yards, gs.pass_touchdowns,
		       gs.pass_interceptions, gs.pass_sacks,
		       gs.rush_attempts, gs.rush_yards, gs.rush_touchdowns, gs.rush_fumbles,
		       gs.receptions, gs.receiving_targets, gs.receiving_yards, gs.receiving_touchdowns,
		       gs.receiving_fumbles, gs.target_share
		FROM game_stats gs
		JOIN games g ON gs.game_id = g.game_id
		WHERE gs.team_id = $1 AND g.season_id = $2 AND g.week >= $3 AND g.week < $4`
	rows, err := s.pool.Query(ctx, q, teamID, season, minWeek, maxWeek)
	if err != nil {
		return nil, fmt.Errorf("store: team box scores window: %w", err)
	}
	defer rows.Close()

	var out []models.BoxScoreRow
	for rows.Next() {
		var r models.BoxScoreRow
		if err := rows.Scan(
			&r.PlayerID, &r.GameID, &r.TeamID, &r.Season, &r.Week,
			&r.PassAttempts, &r.PassCompletions, &r.PassYards, &r.PassTDs,
			&r.PassInterceptions, &r.SacksTaken,
			&r.RushAttempts, &r.RushYards, &r.RushTDs, &r.RushFumbles,
			&r.Receptions, &r.Targets, &r.ReceivingYards, &r.ReceivingTDs,
			&r.ReceivingFumbles, &r.TargetShare,
		); err != nil {
			return nil, fmt.Errorf("store: scan box score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// BoxScoresForSeason returns every skill-position player's box score row
// in season, restricted to skill-position players (§4.4 train:
// "iterate every (player, game) in seasons").
func (s *Store) BoxScoresForSeason(ctx context.Context, season int) ([]models.BoxScoreRow, error) {
	const q = `
		SELECT gs.player_id, gs.game_id, gs.team_id, g.season_id, g.week,
		       gs.pass_attempts, gs.pass_completions, gs.pass_yards, gs.pass_touchdowns,
		       gs.pass_interceptions, gs.pass_sacks,
		       gs.rush_attempts, gs.rush_yards, gs.rush_touchdowns, gs.rush_fumbles,
		       gs.receptions, gs.receiving_targets, gs.receiving_yards, gs.receiving_touchdowns,
		       gs.receiving_fumbles, gs.target_share
		FROM game_stats gs
		JOIN games g ON gs.game_id = g.game_id
		JOIN players p ON gs.player_id = p.player_id
		WHERE g.season_id = $1 AND p.position IN ('QB','RB','WR','TE')`
	rows, err := s.pool.Query(ctx, q, season)
	if err != nil {
		return nil, fmt.Errorf("store: box scores for season: %w", err)
	}
	defer rows.Close()

	var out []models.BoxScoreRow
	for rows.Next() {
		var r models.BoxScoreRow
		if err := rows.Scan(
			&r.PlayerID, &r.GameID, &r.TeamID, &r.Season, &r.Week,
			&r.PassAttempts, &r.PassCompletions, &r.PassYards, &r.PassTDs,
			&r.PassInterceptions, &r.SacksTaken,
			&r.RushAttempts, &r.RushYards, &r.RushTDs, &r.RushFumbles,
			&r.Receptions, &r.Targets, &r.ReceivingYards, &r.ReceivingTDs,
			&r.ReceivingFumbles, &r.TargetShare,
		); err != nil {
			return nil, fmt.Errorf("store: scan box score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TeamDefenseRowsForSeason returns every team-defense row in season
// (§4.4 train: "The DST path follows the same structure over
// team-defense rows").
func (s *Store) TeamDefenseRowsForSeason(ctx context.Context, season int) ([]models.TeamDefenseRow, error) {
	q := opponentAggregateQuery(`WHERE td.season_id = $1`)
	rows, err := s.pool.Query(ctx, q, season)
	if err != nil {
		return nil, fmt.Errorf("store: team defense rows for season: %w", err)
	}
	defer rows.Close()
	return scanTeamDefenseRows(rows)
}

// TeamDefenseRowsBefore returns up to limit of a team's most recent
// TeamDefenseRows strictly preceding (season, week), most recent first
// (§4.3 build_dst_features).
func (s *Store) TeamDefenseRowsBefore(ctx context.Context, teamID uuid.UUID, season, week, limit int) ([]models.TeamDefenseRow, error) {
	q := opponentAggregateQuery(`
		WHERE td.team_id = $1 AND (td.season_id < $2 OR (td.season_id = $2 AND td.week < $3))
		ORDER BY td.season_id DESC, td.week DESC
		LIMIT $4`)
	rows, err := s.pool.Query(ctx, q, teamID, season, week, limit)
	if err != nil {
		return nil, fmt.Errorf("store: team defense rows before: %w", err)
	}
	defer rows.Close()
	return scanTeamDefenseRows(rows)
}

// TeamDefenseRowsInWindow returns a team's defense rows for week in
// [week-lookback, week) within season (§4.2 defensive_strength/position_profile).
func (s *Store) TeamDefenseRowsInWindow(ctx context.Context, teamID uuid.UUID, season, week, lookback int) ([]models.TeamDefenseRow, error) {
	q := opponentAggregateQuery(`WHERE td.team_id = $1 AND td.season_id = $2 AND td.week >= $3 AND td.week < $4`)
	rows, err := s.pool.Query(ctx, q, teamID, season, week-lookback, week)
	if err != nil {
		return nil, fmt.Errorf("store: team defense rows window: %w", err)
	}
	defer rows.Close()
	return scanTeamDefenseRows(rows)
}

// LeagueTeamDefenseRowsInWindow returns every team's defense rows for
// the same window, used to compute league-relative ranks
// (§4.2 position_profile ranks).
func (s *Store) LeagueTeamDefenseRowsInWindow(ctx context.Context, season, week, lookback int) ([]models.TeamDefenseRow, error) {
	q := opponentAggregateQuery(`WHERE td.season_id = $1 AND td.week >= $2 AND td.week < $3`)
	rows, err := s.pool.Query(ctx, q, season, week-lookback, week)
	if err != nil {
		return nil, fmt.Errorf("store: league team defense rows window: %w", err)
	}
	defer rows.Close()
	return scanTeamDefenseRows(rows)
}

// opponentAggregateQuery builds a team_defense_stats query with a
// lateral join against the opposing team's game_stats for the same
// game, giving PositionDefensiveProfile the opponent pass/rush-attempt
// and per-position receiving-yard denominators it needs (§4.2: "the
// denominators live on the opponent's side of the ledger"). whereOrder
// is the WHERE/ORDER BY/LIMIT clause, written against the `td` alias.
func opponentAggregateQuery(whereOrder string) string {
	return `
		SELECT td.team_id, td.game_id, td.season_id, td.week, td.points_allowed, td.yards_allowed,
		       td.passing_yards_allowed, td.rushing_yards_allowed, td.interceptions, td.fumbles_recovered,
		       td.sacks, td.sack_yards, td.defensive_touchdowns, td.pick_six, td.fumble_touchdowns, td.safeties,
		       td.blocked_kicks, td.return_touchdowns, td.is_home, td.opponent_team_id,
		       COALESCE(opp.pass_attempts, 0), COALESCE(opp.rush_attempts, 0),
		       COALESCE(opp.rb_receiving_yards, 0), COALESCE(opp.wr_receiving_yards, 0),
		       COALESCE(opp.te_receiving_yards, 0)
		FROM team_defense_stats td
		LEFT JOIN LATERAL (
			SELECT
				SUM(gs.pass_attempts) AS pass_attempts,
				SUM(gs.rush_attempts) AS rush_attempts,
				SUM(gs.receiving_yards) FILTER (WHERE p.position = 'RB') AS rb_receiving_yards,
				SUM(gs.receiving_yards) FILTER (WHERE p.position = 'WR') AS wr_receiving_yards,
				SUM(gs.receiving_yards) FILTER (WHERE p.position = 'TE') AS te_receiving_yards
			FROM game_stats gs
			JOIN players p ON p.player_id = gs.player_id
			WHERE gs.team_id = td.opponent_team_id AND gs.game_id = td.game_id
		) opp ON true
		` + whereOrder
}

func scanTeamDefenseRows(rows pgx.Rows) ([]models.TeamDefenseRow, error) {
	var out []models.TeamDefenseRow
	for rows.Next() {
		var r models.TeamDefenseRow
		if err := rows.Scan(
			&r.TeamID, &r.GameID, &r.Season, &r.Week, &r.PointsAllowed, &r.YardsAllowed,
			&r.PassingYardsAllowed, &r.RushingYardsAllowed, &r.Interceptions, &r.FumblesRecovered,
			&r.Sacks, new(int), &r.DefensiveTouchdowns, &r.PickSix, &r.FumbleTouchdowns, &r.Safeties,
			new(int), &r.ReturnTouchdowns, &r.IsHome, &r.OpponentTeamID,
			&r.OpponentPassAttempts, &r.OpponentRushAttempts,
			&r.OpponentRBReceivingYards, &r.OpponentWRReceivingYards, &r.OpponentTEReceivingYards,
		); err != nil {
			return nil, fmt.Errorf("store: scan team defense row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GamesForWeek returns every game scheduled for (season, week).
func (s *Store) GamesForWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	const q = `
		SELECT game_id, season_id, week, game_date, home_team_id, away_team_id, home_score, away_score
		FROM games WHERE season_id = $1 AND week = $2`
	rows, err := s.pool.Query(ctx, q, season, week)
	if err != nil {
		return nil, fmt.Errorf("store: games for week: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.Season, &g.Week, &g.Date, &g.HomeTeamID, &g.AwayTeamID, &g.HomeScore, &g.AwayScore); err != nil {
			return nil, fmt.Errorf("store: scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// OpponentFor returns the team a given team plays in (season, week), or
// nil if it has no game that week (§4.2 opponent_for).
func (s *Store) OpponentFor(ctx context.Context, teamID uuid.UUID, season, week int) (*uuid.UUID, error) {
	const q = `
		SELECT CASE WHEN home_team_id = $1 THEN away_team_id ELSE home_team_id END
		FROM games
		WHERE season_id = $2 AND week = $3 AND (home_team_id = $1 OR away_team_id = $1)
		LIMIT 1`
	var opp uuid.UUID
	err := s.pool.QueryRow(ctx, q, teamID, season, week).Scan(&opp)
	if err != nil {
		return nil, nil // no game this week is not an error (§4.2 Failure: no exceptions cross the boundary)
	}
	return &opp, nil
}

// TeamDefenseRowCount reports how many team_defense_stats rows exist for
// (season, week) (§4.5 week_ready: expects exactly 2 per game).
func (s *Store) TeamDefenseRowCount(ctx context.Context, season, week int) (int, error) {
	const q = `SELECT COUNT(*) FROM team_defense_stats WHERE season_id = $1 AND week = $2`
	var n int
	if err := s.pool.QueryRow(ctx, q, season, week).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: team defense row count: %w", err)
	}
	return n, nil
}

// BoxScoreGameIDsForWeek returns the distinct game_id values carried by
// game_stats rows for (season, week), used by CutoffPolicy to detect
// synthetic identifiers (§4.5 week_ready).
func (s *Store) BoxScoreGameIDsForWeek(ctx context.Context, season, week int) ([]string, error) {
	const q = `SELECT DISTINCT gs.game_id FROM game_stats gs
		JOIN games g ON gs.game_id = g.game_id
		WHERE g.season_id = $1 AND g.week = $2`
	rows, err := s.pool.Query(ctx, q, season, week)
	if err != nil {
		return nil, fmt.Errorf("store: box score game ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GamesCompletedCount reports how many games in season have both scores set.
func (s *Store) GamesCompletedCount(ctx context.Context, season int) (int, error) {
	const q = `SELECT COUNT(*) FROM games WHERE season_id = $1 AND home_score IS NOT NULL AND away_score IS NOT NULL`
	var n int
	if err := s.pool.QueryRow(ctx, q, season).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: games completed count: %w", err)
	}
	return n, nil
}

// ScoringRuleset loads a single named ruleset row from scoring_systems.
// RowToStructByNameLax tolerates either the new or legacy DST column
// names being absent (they map to nil pointer fields, per sysval).
func (s *Store) ScoringRuleset(ctx context.Context, name string) (*models.ScoringRuleset, error) {
	rows, err := s.pool.Query(ctx, `SELECT * FROM scoring_systems WHERE system_name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("store: scoring ruleset: %w", err)
	}
	defer rows.Close()

	rs, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[models.ScoringRuleset])
	if err != nil {
		return nil, fmt.Errorf("store: scoring ruleset %q: %w", name, err)
	}
	return rs, nil
}

// ListScoringRulesets loads every row from scoring_systems (loaded once
// at startup into an immutable registry, §5).
func (s *Store) ListScoringRulesets(ctx context.Context) ([]models.ScoringRuleset, error) {
	rows, err := s.pool.Query(ctx, `SELECT * FROM scoring_systems`)
	if err != nil {
		return nil, fmt.Errorf("store: list scoring rulesets: %w", err)
	}
	defer rows.Close()

	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.ScoringRuleset])
	if err != nil {
		return nil, fmt.Errorf("store: list scoring rulesets: %w", err)
	}
	return out, nil
}

// HistoricalInjuries loads historical_injuries rows for (season, week)
// (§4.6, §6.1, §6.3).
func (s *Store) HistoricalInjuries(ctx context.Context, season, week int) ([]models.InjuryRecord, error) {
	const q = `
		SELECT season, game_type, team, week, gsis_id, position, full_name,
		       report_primary_injury, report_status, practice_status, date_modified
		FROM historical_injuries
		WHERE season = $1 AND week = $2`
	rows, err := s.pool.Query(ctx, q, season, week)
	if err != nil {
		return nil, fmt.Errorf("store: historical injuries: %w", err)
	}
	defer rows.Close()

	var out []models.InjuryRecord
	for rows.Next() {
		var r models.InjuryRecord
		var status string
		if err := rows.Scan(
			&r.Season, &r.GameType, &r.Team, &r.Week, &r.GsisID, &r.Position, &r.FullName,
			&r.PrimaryInjury, &status, &r.PracticeStatus, &r.DateModified,
		); err != nil {
			return nil, fmt.Errorf("store: scan injury record: %w", err)
		}
		r.Status = models.InjuryStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

// MatchupRepository handles the per-team matchup records.
type MatchupRepository struct {
	pool DatabasePool
}

// NewMatchupRepository creates a new matchup repository.
func NewMatchupRepository(pool DatabasePool) *MatchupRepository {
	return &MatchupRepository{pool: pool}
}

// ReplaceForDate swaps the date's matchup records inside one transaction,
// making re-runs of the matchup stage idempotent.
func (r *MatchupRepository) ReplaceForDate(ctx context.Context, gameDate time.Time, rows []*models.GameMatchup) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM analysis.game_matchup WHERE game_date_est = $1`, gameDate); err != nil {
		return 0, fmt.Errorf("failed to clear matchup rows for date: %w", err)
	}

	query := `
		INSERT INTO analysis.game_matchup
			(game_date_est, team_name, opp_team_name, is_home, team_id, opp_team_id, horizons, calc_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, m := range rows {
		horizons, err := json.Marshal(m.Horizons)
		if err != nil {
			return 0, fmt.Errorf("failed to encode matchup horizons for %s: %w", m.TeamName, err)
		}
		if _, err := tx.Exec(ctx, query,
			gameDate, m.TeamName, m.OppTeamName, m.IsHome, m.TeamID, m.OppTeamID, horizons, m.CalcVersion,
		); err != nil {
			return 0, fmt.Errorf("failed to insert matchup row for %s: %w", m.TeamName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit matchup rows: %w", err)
	}
	return len(rows), nil
}

// ForDate returns the date's matchup records.
func (r *MatchupRepository) ForDate(ctx context.Context, gameDate time.Time) ([]*models.GameMatchup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT game_date_est, team_name, opp_team_name, is_home, team_id, opp_team_id, horizons, calc_version
		FROM analysis.game_matchup
		WHERE game_date_est = $1
		ORDER BY team_name`,
		gameDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchup rows: %w", err)
	}
	defer rows.Close()

	var out []*models.GameMatchup
	for rows.Next() {
		var m models.GameMatchup
		var horizons []byte
		if err := rows.Scan(&m.GameDate, &m.TeamName, &m.OppTeamName, &m.IsHome, &m.TeamID, &m.OppTeamID, &horizons, &m.CalcVersion); err != nil {
			return nil, fmt.Errorf("failed to scan matchup row: %w", err)
		}
		if err := json.Unmarshal(horizons, &m.Horizons); err != nil {
			return nil, fmt.Errorf("failed to decode matchup horizons: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matchup rows: %w", err)
	}
	return out, nil
}

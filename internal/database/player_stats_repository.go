package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

// PlayerStatsRepository handles the per-horizon player snapshot tables.
type PlayerStatsRepository struct {
	pool DatabasePool
}

// NewPlayerStatsRepository creates a new player stats repository.
func NewPlayerStatsRepository(pool DatabasePool) *PlayerStatsRepository {
	return &PlayerStatsRepository{pool: pool}
}

// ReplaceForHorizon swaps the horizon's snapshot set for rows inside one
// transaction.
func (r *PlayerStatsRepository) ReplaceForHorizon(ctx context.Context, h models.Horizon, rows []*models.PlayerStats) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM player_data.player_stats WHERE horizon = $1`, string(h)); err != nil {
		return 0, fmt.Errorf("failed to clear player stats for %s: %w", h, err)
	}

	query := `
		INSERT INTO player_data.player_stats (horizon, player_id, snapshot_date, player, team, stats)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, ps := range rows {
		payload, err := json.Marshal(ps)
		if err != nil {
			return 0, fmt.Errorf("failed to encode player stats for %s: %w", ps.Player, err)
		}
		if _, err := tx.Exec(ctx, query, string(h), ps.PlayerID, ps.SnapshotDate, ps.Player, ps.Team, payload); err != nil {
			return 0, fmt.Errorf("failed to insert player stats for %s: %w", ps.Player, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit player stats: %w", err)
	}
	return len(rows), nil
}

// ForHorizon returns every stored player snapshot for the horizon.
func (r *PlayerStatsRepository) ForHorizon(ctx context.Context, h models.Horizon) ([]*models.PlayerStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT stats FROM player_data.player_stats WHERE horizon = $1 ORDER BY player`, string(h))
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats for %s: %w", h, err)
	}
	defer rows.Close()

	var out []*models.PlayerStats
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan player stats row: %w", err)
		}
		var ps models.PlayerStats
		if err := json.Unmarshal(payload, &ps); err != nil {
			return nil, fmt.Errorf("failed to decode player stats row: %w", err)
		}
		out = append(out, &ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player stats rows: %w", err)
	}
	return out, nil
}

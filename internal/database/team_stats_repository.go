package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/namematch"
)

// TeamStatsRepository handles the per-horizon team snapshot tables.
type TeamStatsRepository struct {
	pool DatabasePool
}

// NewTeamStatsRepository creates a new team stats repository.
func NewTeamStatsRepository(pool DatabasePool) *TeamStatsRepository {
	return &TeamStatsRepository{pool: pool}
}

// ReplaceForHorizon swaps the horizon's snapshot set for rows inside one
// transaction, so readers never observe a partially refreshed horizon.
func (r *TeamStatsRepository) ReplaceForHorizon(ctx context.Context, h models.Horizon, rows []*models.TeamStats) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM team_data.team_stats WHERE horizon = $1`, string(h)); err != nil {
		return 0, fmt.Errorf("failed to clear team stats for %s: %w", h, err)
	}

	query := `
		INSERT INTO team_data.team_stats (horizon, team_id, snapshot_date, team_name, stats)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, ts := range rows {
		payload, err := json.Marshal(ts)
		if err != nil {
			return 0, fmt.Errorf("failed to encode team stats for %s: %w", ts.TeamName, err)
		}
		if _, err := tx.Exec(ctx, query, string(h), ts.TeamID, ts.SnapshotDate, ts.TeamName, payload); err != nil {
			return 0, fmt.Errorf("failed to insert team stats for %s: %w", ts.TeamName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit team stats: %w", err)
	}
	return len(rows), nil
}

// StatsMap returns the horizon's snapshots keyed by normalized team name.
func (r *TeamStatsRepository) StatsMap(ctx context.Context, h models.Horizon) (map[string]*models.TeamStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT stats FROM team_data.team_stats WHERE horizon = $1`, string(h))
	if err != nil {
		return nil, fmt.Errorf("failed to query team stats for %s: %w", h, err)
	}
	defer rows.Close()

	out := make(map[string]*models.TeamStats)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan team stats row: %w", err)
		}
		var ts models.TeamStats
		if err := json.Unmarshal(payload, &ts); err != nil {
			return nil, fmt.Errorf("failed to decode team stats row: %w", err)
		}
		out[namematch.NormalizeTeamName(ts.TeamName)] = &ts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team stats rows: %w", err)
	}
	return out, nil
}

// LeagueBaseline derives the league-average pace and offensive rating for a
// horizon from the stored snapshots.
func (r *TeamStatsRepository) LeagueBaseline(ctx context.Context, h models.Horizon) (models.LeagueBaseline, error) {
	statsMap, err := r.StatsMap(ctx, h)
	if err != nil {
		return models.LeagueBaseline{}, err
	}
	if len(statsMap) == 0 {
		return models.LeagueBaseline{}, fmt.Errorf("no team stats stored for %s", h)
	}

	var paceSum, pp100Sum float64
	for _, ts := range statsMap {
		ratings := ts.Ratings()
		paceSum += ratings.Pace
		pp100Sum += ratings.OffRtg
	}
	n := float64(len(statsMap))
	return models.LeagueBaseline{Pace: paceSum / n, PP100: pp100Sum / n}, nil
}

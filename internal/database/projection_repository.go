package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

// ProjectionRepository handles the persisted player projection records.
type ProjectionRepository struct {
	pool DatabasePool
}

// NewProjectionRepository creates a new projection repository.
func NewProjectionRepository(pool DatabasePool) *ProjectionRepository {
	return &ProjectionRepository{pool: pool}
}

const projectionColumns = `game_date, player, db_player, pos, team, team_full_name, opp, opp_full_name,
		status, game_info, salary, proj_mins, ownership, fp_proj, projected_value,
		team_salary, salary_share, team_ownership, team_minutes, minutes_avail, horizons, calc_version`

// ReplaceForDate swaps the date's projection records inside one transaction,
// making re-runs of the projection stage idempotent.
func (r *ProjectionRepository) ReplaceForDate(ctx context.Context, gameDate time.Time, rows []*models.PlayerProjection) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM analysis.player_projection WHERE game_date = $1`, gameDate); err != nil {
		return 0, fmt.Errorf("failed to clear projection rows for date: %w", err)
	}

	query := `
		INSERT INTO analysis.player_projection (` + projectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	for _, p := range rows {
		horizons, err := json.Marshal(p.Horizons)
		if err != nil {
			return 0, fmt.Errorf("failed to encode projection horizons for %s: %w", p.Player, err)
		}
		if _, err := tx.Exec(ctx, query,
			gameDate, p.Player, p.DBPlayer, p.Pos, p.Team, p.TeamFullName, p.Opp, p.OppFullName,
			p.Status, p.GameInfo, p.Salary, p.ProjMins, p.Ownership, p.FPProj, p.ProjectedValue,
			p.TeamSalary, p.SalaryShare, p.TeamOwnership, p.TeamMinutes, p.MinutesAvail, horizons, p.CalcVersion,
		); err != nil {
			return 0, fmt.Errorf("failed to insert projection row for %s: %w", p.Player, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit projection rows: %w", err)
	}
	return len(rows), nil
}

// ForDate returns the date's projection records ordered by projected
// fantasy points, highest first.
func (r *ProjectionRepository) ForDate(ctx context.Context, gameDate time.Time) ([]*models.PlayerProjection, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectionColumns+`
		FROM analysis.player_projection
		WHERE game_date = $1
		ORDER BY fp_proj DESC`,
		gameDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projection rows: %w", err)
	}
	defer rows.Close()

	var out []*models.PlayerProjection
	for rows.Next() {
		var p models.PlayerProjection
		var horizons []byte
		if err := rows.Scan(
			&p.GameDate, &p.Player, &p.DBPlayer, &p.Pos, &p.Team, &p.TeamFullName, &p.Opp, &p.OppFullName,
			&p.Status, &p.GameInfo, &p.Salary, &p.ProjMins, &p.Ownership, &p.FPProj, &p.ProjectedValue,
			&p.TeamSalary, &p.SalaryShare, &p.TeamOwnership, &p.TeamMinutes, &p.MinutesAvail, &horizons, &p.CalcVersion,
		); err != nil {
			return nil, fmt.Errorf("failed to scan projection row: %w", err)
		}
		if err := json.Unmarshal(horizons, &p.Horizons); err != nil {
			return nil, fmt.Errorf("failed to decode projection horizons: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projection rows: %w", err)
	}
	return out, nil
}

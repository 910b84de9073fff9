package database

import (
	"context"
	"fmt"
	"time"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

// ScheduleRepository handles the daily game schedule table.
type ScheduleRepository struct {
	pool DatabasePool
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(pool DatabasePool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// ReplaceForDate swaps the date's scheduled games inside one transaction.
func (r *ScheduleRepository) ReplaceForDate(ctx context.Context, gameDate time.Time, games []models.ScheduledGame) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM analysis.game_schedule WHERE game_date_est = $1`, gameDate); err != nil {
		return 0, fmt.Errorf("failed to clear schedule for date: %w", err)
	}

	query := `
		INSERT INTO analysis.game_schedule (game_date_est, home_team, away_team)
		VALUES ($1, $2, $3)
	`
	for _, g := range games {
		if _, err := tx.Exec(ctx, query, gameDate, g.HomeTeam, g.AwayTeam); err != nil {
			return 0, fmt.Errorf("failed to insert scheduled game %s vs %s: %w", g.HomeTeam, g.AwayTeam, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit schedule: %w", err)
	}
	return len(games), nil
}

// GamesForDate returns the date's scheduled games.
func (r *ScheduleRepository) GamesForDate(ctx context.Context, gameDate time.Time) ([]models.ScheduledGame, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT game_date_est, home_team, away_team FROM analysis.game_schedule WHERE game_date_est = $1 ORDER BY home_team`,
		gameDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	var games []models.ScheduledGame
	for rows.Next() {
		var g models.ScheduledGame
		if err := rows.Scan(&g.GameDate, &g.HomeTeam, &g.AwayTeam); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduled games: %w", err)
	}
	return games, nil
}

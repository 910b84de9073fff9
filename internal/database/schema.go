package database

import (
	"context"
	"fmt"
)

// Schema bootstrap. Snapshot tables keep the full API payload as JSONB next
// to the columns the pipeline queries on; analysis tables keep the scalar
// outputs queryable and the per-horizon metric blocks as JSONB.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS team_data`,
	`CREATE SCHEMA IF NOT EXISTS player_data`,
	`CREATE SCHEMA IF NOT EXISTS analysis`,

	`CREATE TABLE IF NOT EXISTS team_data.team_stats (
		horizon       TEXT        NOT NULL,
		team_id       INTEGER     NOT NULL,
		snapshot_date DATE        NOT NULL,
		team_name     TEXT        NOT NULL,
		stats         JSONB       NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (horizon, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS player_data.player_stats (
		horizon       TEXT        NOT NULL,
		player_id     INTEGER     NOT NULL,
		snapshot_date DATE        NOT NULL,
		player        TEXT        NOT NULL,
		team          TEXT        NOT NULL,
		stats         JSONB       NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (horizon, player_id)
	)`,

	`CREATE TABLE IF NOT EXISTS analysis.game_schedule (
		game_date_est DATE NOT NULL,
		home_team     TEXT NOT NULL,
		away_team     TEXT NOT NULL,
		PRIMARY KEY (game_date_est, home_team, away_team)
	)`,

	`CREATE TABLE IF NOT EXISTS analysis.game_matchup (
		game_date_est DATE        NOT NULL,
		team_name     TEXT        NOT NULL,
		opp_team_name TEXT        NOT NULL,
		is_home       BOOLEAN     NOT NULL,
		team_id       INTEGER,
		opp_team_id   INTEGER,
		horizons      JSONB       NOT NULL,
		calc_version  TEXT        NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (game_date_est, team_name, opp_team_name)
	)`,

	`CREATE TABLE IF NOT EXISTS analysis.player_projection (
		game_date       DATE             NOT NULL,
		player          TEXT             NOT NULL,
		db_player       TEXT             NOT NULL DEFAULT '',
		pos             TEXT             NOT NULL DEFAULT '',
		team            TEXT             NOT NULL,
		team_full_name  TEXT             NOT NULL DEFAULT '',
		opp             TEXT             NOT NULL DEFAULT '',
		opp_full_name   TEXT             NOT NULL DEFAULT '',
		status          TEXT             NOT NULL DEFAULT '',
		game_info       TEXT             NOT NULL DEFAULT '',
		salary          DOUBLE PRECISION NOT NULL,
		proj_mins       DOUBLE PRECISION NOT NULL,
		ownership       DOUBLE PRECISION NOT NULL,
		fp_proj         DOUBLE PRECISION NOT NULL,
		projected_value DOUBLE PRECISION NOT NULL,
		team_salary     DOUBLE PRECISION NOT NULL,
		salary_share    DOUBLE PRECISION NOT NULL,
		team_ownership  DOUBLE PRECISION NOT NULL,
		team_minutes    DOUBLE PRECISION NOT NULL,
		minutes_avail   DOUBLE PRECISION NOT NULL,
		horizons        JSONB            NOT NULL,
		calc_version    TEXT             NOT NULL,
		created_at      TIMESTAMPTZ      NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (game_date, player, team)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_game_matchup_date ON analysis.game_matchup (game_date_est)`,
	`CREATE INDEX IF NOT EXISTS idx_player_projection_date ON analysis.player_projection (game_date)`,
	`CREATE INDEX IF NOT EXISTS idx_player_projection_proj ON analysis.player_projection (game_date, fp_proj DESC)`,
}

// EnsureSchema creates the schemas and tables the pipeline writes to.
// Idempotent; run at startup.
func EnsureSchema(ctx context.Context, pool DatabasePool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

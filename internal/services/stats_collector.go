package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

// Measure types merged into one snapshot row, in fetch order. Later tables
// overwrite shared columns; player TOV% from Usage replaces the team TOV%
// that Advanced carries under the same schema name.
var (
	teamMeasureTypes    = []string{"Base", "Advanced"}
	playerMeasureTypes  = []string{"Base", "Advanced", "Usage", "Misc"}
	playerTrackingTypes = []string{"Possessions", "PostTouch", "ElbowTouch", "PaintTouch"}
)

// API header → snapshot column for team tables.
var teamColumnMap = map[string]string{
	"TEAM_ID": "team_id", "TEAM_NAME": "team_name",
	"GP": "gp", "W": "w", "L": "l", "MIN": "min", "PTS": "pts",
	"FGM": "fgm", "FGA": "fga", "FG_PCT": "fg_pct",
	"FG3M": "three_pm", "FG3A": "three_pa", "FG3_PCT": "three_p_pct",
	"FTM": "ftm", "FTA": "fta", "FT_PCT": "ft_pct",
	"OREB": "oreb", "DREB": "dreb", "REB": "reb",
	"AST": "ast", "TOV": "tov", "STL": "stl", "BLK": "blk", "PF": "pf",
	"PLUS_MINUS": "plus_minus",
	"OFF_RATING": "offrtg", "DEF_RATING": "defrtg", "NET_RATING": "netrtg",
	"AST_PCT": "ast_pct", "AST_TO": "ast_to", "AST_RATIO": "ast_ratio",
	"OREB_PCT": "oreb_pct", "DREB_PCT": "dreb_pct", "REB_PCT": "reb_pct",
	"TM_TOV_PCT": "tov_pct", "EFG_PCT": "efg_pct", "TS_PCT": "ts_pct",
	"PACE": "pace", "PIE": "pie", "POSS": "poss",
}

// API header → snapshot column for player tables, tracking included.
var playerColumnMap = map[string]string{
	"PLAYER_ID": "player_id", "PLAYER_NAME": "player", "TEAM_ABBREVIATION": "team",
	"AGE": "age", "GP": "gp", "W": "w", "L": "l", "MIN": "min", "PTS": "pts",
	"FGM": "fgm", "FGA": "fga", "FG_PCT": "fg_pct",
	"FG3M": "three_pm", "FG3A": "three_pa", "FG3_PCT": "three_p_pct",
	"FTM": "ftm", "FTA": "fta", "FT_PCT": "ft_pct",
	"OREB": "oreb", "DREB": "dreb", "REB": "reb",
	"AST": "ast", "TOV": "tov", "STL": "stl", "BLK": "blk", "PF": "pf",
	"NBA_FANTASY_PTS": "fp", "DD2": "dd2", "TD3": "td3", "PLUS_MINUS": "plus_minus",
	"OFF_RATING": "offrtg", "DEF_RATING": "defrtg", "NET_RATING": "netrtg",
	"AST_PCT": "ast_pct", "AST_TO": "ast_to", "AST_RATIO": "ast_ratio",
	"OREB_PCT": "oreb_pct", "DREB_PCT": "dreb_pct", "REB_PCT": "reb_pct",
	"TM_TOV_PCT": "tov_pct", "TOV_PCT": "tov_pct",
	"EFG_PCT": "efg_pct", "TS_PCT": "ts_pct", "USG_PCT": "usg_pct",
	"PACE": "pace", "PIE": "pie", "POSS": "poss",
	"TOUCHES": "touches", "FRONT_CT_TOUCHES": "front_ct_touches",
	"TIME_OF_POSS": "time_of_poss", "AVG_SEC_PER_TOUCH": "avg_sec_per_touch",
	"AVG_DRIB_PER_TOUCH": "avg_drib_per_touch", "PTS_PER_TOUCH": "pts_per_touch",
	"ELBOW_TOUCHES": "elbow_touches", "POST_TOUCHES": "post_ups", "PAINT_TOUCHES": "paint_touches",
	"PTS_PER_ELBOW_TOUCH": "pts_per_elbow_touch", "PTS_PER_POST_TOUCH": "pts_per_post_touch",
	"PTS_PER_PAINT_TOUCH": "pts_per_paint_touch",
}

// TeamStatsWriter persists refreshed team snapshots.
type TeamStatsWriter interface {
	ReplaceForHorizon(ctx context.Context, h models.Horizon, rows []*models.TeamStats) (int, error)
}

// PlayerStatsWriter persists refreshed player snapshots.
type PlayerStatsWriter interface {
	ReplaceForHorizon(ctx context.Context, h models.Horizon, rows []*models.PlayerStats) (int, error)
}

// StatsCollector refreshes the per-horizon team and player snapshot tables
// by fetching and merging the upstream stat tables.
type StatsCollector struct {
	client  *StatsAPIClient
	teams   TeamStatsWriter
	players PlayerStatsWriter
	logger  *logrus.Logger
}

// NewStatsCollector creates a stats collector.
func NewStatsCollector(client *StatsAPIClient, teams TeamStatsWriter, players PlayerStatsWriter, logger *logrus.Logger) *StatsCollector {
	return &StatsCollector{client: client, teams: teams, players: players, logger: logger}
}

// CollectTeamStats refreshes every horizon's team snapshots. Each horizon is
// built by merging the Base and Advanced tables on team identity.
func (c *StatsCollector) CollectTeamStats(ctx context.Context) error {
	snapshotDate := dateOnly(time.Now())
	for _, h := range models.Horizons {
		merged := make(map[int]statsRow)
		var order []int
		for _, measure := range teamMeasureTypes {
			rows, err := c.client.TeamTable(ctx, measure, h.LastNGames())
			if err != nil {
				return fmt.Errorf("failed to fetch team %s table for %s: %w", measure, h, err)
			}
			order = mergeRows(merged, order, rows, "TEAM_ID", teamColumnMap)
		}

		snapshots := make([]*models.TeamStats, 0, len(order))
		for _, id := range order {
			var ts models.TeamStats
			if err := decodeRow(merged[id], &ts); err != nil {
				return fmt.Errorf("failed to decode team snapshot: %w", err)
			}
			ts.SnapshotDate = snapshotDate
			snapshots = append(snapshots, &ts)
		}

		written, err := c.teams.ReplaceForHorizon(ctx, h, snapshots)
		if err != nil {
			return err
		}
		c.logger.WithFields(logrus.Fields{"horizon": h, "teams": written}).Info("Team snapshots refreshed")
	}
	return nil
}

// CollectPlayerStats refreshes every horizon's player snapshots, merging the
// four measure-type tables and the four tracking tables on player identity.
func (c *StatsCollector) CollectPlayerStats(ctx context.Context) error {
	snapshotDate := dateOnly(time.Now())
	for _, h := range models.Horizons {
		merged := make(map[int]statsRow)
		var order []int
		for _, measure := range playerMeasureTypes {
			rows, err := c.client.PlayerTable(ctx, measure, h.LastNGames())
			if err != nil {
				return fmt.Errorf("failed to fetch player %s table for %s: %w", measure, h, err)
			}
			order = mergeRows(merged, order, rows, "PLAYER_ID", playerColumnMap)
		}
		for _, measure := range playerTrackingTypes {
			rows, err := c.client.PlayerTrackingTable(ctx, measure, h.LastNGames())
			if err != nil {
				return fmt.Errorf("failed to fetch player tracking %s table for %s: %w", measure, h, err)
			}
			order = mergeRows(merged, order, rows, "PLAYER_ID", playerColumnMap)
		}

		snapshots := make([]*models.PlayerStats, 0, len(order))
		for _, id := range order {
			var ps models.PlayerStats
			if err := decodeRow(merged[id], &ps); err != nil {
				return fmt.Errorf("failed to decode player snapshot: %w", err)
			}
			ps.SnapshotDate = snapshotDate
			snapshots = append(snapshots, &ps)
		}

		written, err := c.players.ReplaceForHorizon(ctx, h, snapshots)
		if err != nil {
			return err
		}
		c.logger.WithFields(logrus.Fields{"horizon": h, "players": written}).Info("Player snapshots refreshed")
	}
	return nil
}

// mergeRows folds one fetched table into the accumulated snapshot rows,
// remapping API headers to schema columns. Later tables overwrite earlier
// values for the same column. Returns the insertion order of new keys.
func mergeRows(merged map[int]statsRow, order []int, rows []statsRow, idHeader string, columnMap map[string]string) []int {
	for _, row := range rows {
		id, ok := numericID(row[idHeader])
		if !ok {
			continue
		}
		target, exists := merged[id]
		if !exists {
			target = make(statsRow)
			merged[id] = target
			order = append(order, id)
		}
		for header, value := range row {
			column, mapped := columnMap[header]
			if !mapped || value == nil {
				continue
			}
			target[column] = value
		}
	}
	return order
}

// decodeRow converts an accumulated schema-keyed row into a snapshot struct
// through its JSON tags.
func decodeRow(row statsRow, out interface{}) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

func numericID(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/namematch"
)

// PlayerNameMatchThreshold is the similarity floor for mapping slate names
// onto the historical player tables. Slate spellings are noisy, so this
// sits below the resolver default.
const PlayerNameMatchThreshold = 0.80

// PlayerStatsStore reads per-horizon player snapshots.
type PlayerStatsStore interface {
	ForHorizon(ctx context.Context, h models.Horizon) ([]*models.PlayerStats, error)
}

// ProjectionStore persists and reads player projection records.
type ProjectionStore interface {
	// ReplaceForDate atomically swaps the date's record set for rows.
	ReplaceForDate(ctx context.Context, gameDate time.Time, rows []*models.PlayerProjection) (int, error)
	ForDate(ctx context.Context, gameDate time.Time) ([]*models.PlayerProjection, error)
}

// RunReport summarizes a projection run for logging and the admin API.
type RunReport struct {
	RunID            string    `json:"run_id"`
	GameDate         time.Time `json:"game_date"`
	SlatePlayers     int       `json:"slate_players"`
	ProjectedPlayers int       `json:"projected_players"`
	UnmatchedPlayers []string  `json:"unmatched_players,omitempty"`
	DroppedPlayers   int       `json:"dropped_players"`
	MatchupsMissing  bool      `json:"matchups_missing"`
	RowsWritten      int       `json:"rows_written"`
}

// ProjectionService runs the player-projection pipeline for one slate.
type ProjectionService struct {
	players     PlayerStatsStore
	teams       TeamStatsStore
	matchups    MatchupStore
	projections ProjectionStore
	logger      *logrus.Logger
}

// NewProjectionService wires the projection pipeline stage.
func NewProjectionService(
	players PlayerStatsStore,
	teams TeamStatsStore,
	matchups MatchupStore,
	projections ProjectionStore,
	logger *logrus.Logger,
) *ProjectionService {
	return &ProjectionService{
		players:     players,
		teams:       teams,
		matchups:    matchups,
		projections: projections,
		logger:      logger,
	}
}

// Run computes projections for every slate entry and replaces the date's
// persisted records. The computation is deterministic for fixed inputs;
// re-running a date yields an identical record set.
func (s *ProjectionService) Run(ctx context.Context, gameDate time.Time, slate []models.SlateEntry) ([]*models.PlayerProjection, *RunReport, error) {
	report := &RunReport{
		RunID:        uuid.New().String(),
		GameDate:     gameDate,
		SlatePlayers: len(slate),
	}
	log := s.logger.WithFields(logrus.Fields{
		"component": "projection_service",
		"run_id":    report.RunID,
		"game_date": gameDate.Format("2006-01-02"),
	})
	log.WithField("players", len(slate)).Info("Starting projection run")

	playerStats, err := s.loadPlayerStats(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := rowsFromSlate(gameDate, slate)
	report.UnmatchedPlayers = s.mergePlayerStats(rows, playerStats, log)

	kept := rows[:0]
	for _, row := range rows {
		if backfillBaseStats(row) {
			kept = append(kept, row)
		} else {
			report.DroppedPlayers++
		}
	}
	rows = kept
	if report.DroppedPlayers > 0 {
		log.WithField("dropped", report.DroppedPlayers).Info("Dropped players with no historical data")
	}

	matchupsByTeam, err := s.loadMatchups(ctx, gameDate)
	if err != nil {
		return nil, nil, err
	}
	if len(matchupsByTeam) == 0 {
		report.MatchupsMissing = true
		log.Warn("No matchup records for date; implied-possession touch estimates default to 0")
	}

	for _, h := range models.Horizons {
		teamPossMap, err := s.teamPossessions(ctx, h)
		if err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			computeRateStats(row, h)
			computeTeamContext(row, h, resolveTeamPoss(teamPossMap, row.TeamFullName))
			computeTouchProjections(row, h, lookupImpliedPoss(matchupsByTeam, row.TeamFullName, h))
			computeFantasyProjections(row, h)
		}
		computeTeamFantasyContext(rows, h)
	}

	computeTeamAggregates(rows)
	for _, row := range rows {
		computeFinalProjection(row)
	}
	report.ProjectedPlayers = len(rows)

	written, err := s.projections.ReplaceForDate(ctx, gameDate, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to persist projections: %w", err)
	}
	report.RowsWritten = written
	log.WithField("rows", written).Info("Projection run complete")
	return rows, report, nil
}

func (s *ProjectionService) loadPlayerStats(ctx context.Context) (map[models.Horizon][]*models.PlayerStats, error) {
	out := make(map[models.Horizon][]*models.PlayerStats, len(models.Horizons))
	for _, h := range models.Horizons {
		stats, err := s.players.ForHorizon(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("failed to load player stats for %s: %w", h, err)
		}
		out[h] = stats
	}
	return out, nil
}

// mergePlayerStats maps slate names onto the season-long player table by
// fuzzy match, then fills each row's per-horizon base stats. Unmatched
// players keep zeroed base stats and are reported, not failed.
func (s *ProjectionService) mergePlayerStats(
	rows []*models.PlayerProjection,
	playerStats map[models.Horizon][]*models.PlayerStats,
	log *logrus.Entry,
) []string {
	dbNames := make([]string, 0, len(playerStats[models.HorizonSeasonLong]))
	seen := make(map[string]struct{})
	for _, ps := range playerStats[models.HorizonSeasonLong] {
		if _, dup := seen[ps.Player]; !dup {
			seen[ps.Player] = struct{}{}
			dbNames = append(dbNames, ps.Player)
		}
	}

	slateNames := make([]string, 0, len(rows))
	seenSlate := make(map[string]struct{})
	for _, row := range rows {
		if _, dup := seenSlate[row.Player]; !dup {
			seenSlate[row.Player] = struct{}{}
			slateNames = append(slateNames, row.Player)
		}
	}

	nameMap := namematch.BuildNameMap(slateNames, dbNames, PlayerNameMatchThreshold)

	var unmatched []string
	for _, name := range slateNames {
		if _, ok := nameMap[name]; !ok {
			unmatched = append(unmatched, name)
		}
	}
	if len(unmatched) > 0 {
		sample := unmatched
		if len(sample) > 10 {
			sample = sample[:10]
		}
		log.WithFields(logrus.Fields{"count": len(unmatched), "sample": sample}).
			Warn("Slate players could not be matched to historical tables")
	}

	baseByHorizon := make(map[models.Horizon]map[string]models.BaseStats, len(models.Horizons))
	for _, h := range models.Horizons {
		lookup := make(map[string]models.BaseStats, len(playerStats[h]))
		for _, ps := range playerStats[h] {
			if _, dup := lookup[ps.Player]; !dup {
				lookup[ps.Player] = ps.Base()
			}
		}
		baseByHorizon[h] = lookup
	}

	for _, row := range rows {
		dbName, matched := nameMap[row.Player]
		if matched {
			row.DBPlayer = dbName
		}
		for _, h := range models.Horizons {
			base := models.BaseStats{}
			if matched {
				base = baseByHorizon[h][dbName]
			}
			row.SetBaseStats(h, base)
		}
	}
	return unmatched
}

func (s *ProjectionService) loadMatchups(ctx context.Context, gameDate time.Time) (map[string]*models.GameMatchup, error) {
	records, err := s.matchups.ForDate(ctx, gameDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load matchup records: %w", err)
	}
	byTeam := make(map[string]*models.GameMatchup, len(records))
	for _, rec := range records {
		byTeam[namematch.NormalizeTeamName(rec.TeamName)] = rec
	}
	return byTeam, nil
}

// teamPossessions builds the horizon's team-possession lookup keyed by
// normalized team name.
func (s *ProjectionService) teamPossessions(ctx context.Context, h models.Horizon) (map[string]float64, error) {
	statsMap, err := s.teams.StatsMap(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("failed to load team stats for %s: %w", h, err)
	}
	out := make(map[string]float64, len(statsMap))
	for key, ts := range statsMap {
		if ts.Poss != nil {
			out[key] = *ts.Poss
		}
	}
	return out, nil
}

// resolveTeamPoss looks up a team's possessions through alias resolution,
// defaulting to 0 when the team cannot be resolved.
func resolveTeamPoss(teamPoss map[string]float64, teamFullName string) float64 {
	if teamFullName == "" {
		return 0
	}
	poss, _, ok := namematch.ResolveTeam(teamPoss, teamFullName)
	if !ok {
		return 0
	}
	return poss
}

// lookupImpliedPoss reads the implied possessions for a team/horizon from
// the day's matchup records, defaulting to 0 when no record exists.
func lookupImpliedPoss(matchups map[string]*models.GameMatchup, teamFullName string, h models.Horizon) float64 {
	if teamFullName == "" {
		return 0
	}
	rec, ok := matchups[namematch.NormalizeTeamName(teamFullName)]
	if !ok {
		return 0
	}
	return rec.ImpliedPoss(h)
}

// rowsFromSlate seeds projection rows from the filtered slate.
func rowsFromSlate(gameDate time.Time, slate []models.SlateEntry) []*models.PlayerProjection {
	rows := make([]*models.PlayerProjection, 0, len(slate))
	for _, entry := range slate {
		rows = append(rows, &models.PlayerProjection{
			GameDate:     gameDate,
			Player:       entry.Player,
			Pos:          entry.Pos,
			Team:         entry.Team,
			TeamFullName: entry.TeamFullName,
			Opp:          entry.Opp,
			OppFullName:  entry.OppFullName,
			Status:       entry.Status,
			GameInfo:     entry.GameInfo,
			Salary:       entry.Salary,
			ProjMins:     entry.ProjMins,
			Ownership:    entry.Ownership,
			CalcVersion:  CalcVersion,
		})
	}
	return rows
}

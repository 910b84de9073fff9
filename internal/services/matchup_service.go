package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/namematch"
)

// ScheduleStore reads the daily game schedule.
type ScheduleStore interface {
	GamesForDate(ctx context.Context, gameDate time.Time) ([]models.ScheduledGame, error)
}

// TeamStatsStore reads per-horizon team snapshots and league baselines.
type TeamStatsStore interface {
	// StatsMap returns the horizon's snapshots keyed by normalized team name.
	StatsMap(ctx context.Context, h models.Horizon) (map[string]*models.TeamStats, error)
	LeagueBaseline(ctx context.Context, h models.Horizon) (models.LeagueBaseline, error)
}

// MatchupStore persists and reads matchup records.
type MatchupStore interface {
	// ReplaceForDate atomically swaps the date's record set for rows.
	ReplaceForDate(ctx context.Context, gameDate time.Time, rows []*models.GameMatchup) (int, error)
	ForDate(ctx context.Context, gameDate time.Time) ([]*models.GameMatchup, error)
}

// teamPayload aggregates one team's resolved snapshots across all horizons
// for a single game. A nil map entry means the horizon could not be
// resolved for this team.
type teamPayload struct {
	name     string
	teamID   *int
	horizons map[models.Horizon]*models.TeamStats
}

// MatchupService builds the per-team matchup records for a slate date.
type MatchupService struct {
	calc     *MatchupCalculator
	schedule ScheduleStore
	teams    TeamStatsStore
	matchups MatchupStore
	logger   *logrus.Logger
}

// NewMatchupService wires the matchup pipeline stage.
func NewMatchupService(schedule ScheduleStore, teams TeamStatsStore, matchups MatchupStore, logger *logrus.Logger) *MatchupService {
	return &MatchupService{
		calc:     NewMatchupCalculator(),
		schedule: schedule,
		teams:    teams,
		matchups: matchups,
		logger:   logger,
	}
}

// BuildForDate computes and persists both sides of every scheduled game for
// the date, returning the number of rows written. Existing rows for the
// date are fully replaced.
func (s *MatchupService) BuildForDate(ctx context.Context, gameDate time.Time) (int, error) {
	log := s.logger.WithFields(logrus.Fields{"component": "matchup_service", "game_date": gameDate.Format("2006-01-02")})

	schedule, err := s.schedule.GamesForDate(ctx, gameDate)
	if err != nil {
		return 0, fmt.Errorf("failed to load schedule: %w", err)
	}
	if len(schedule) == 0 {
		log.Warn("No scheduled games for date, nothing to compute")
		return 0, nil
	}

	statsMaps := make(map[models.Horizon]map[string]*models.TeamStats, len(models.Horizons))
	baselines := make(map[models.Horizon]models.LeagueBaseline, len(models.Horizons))
	for _, h := range models.Horizons {
		statsMaps[h], err = s.teams.StatsMap(ctx, h)
		if err != nil {
			return 0, fmt.Errorf("failed to load team stats for %s: %w", h, err)
		}
		baselines[h], err = s.teams.LeagueBaseline(ctx, h)
		if err != nil {
			return 0, fmt.Errorf("failed to compute league baseline for %s: %w", h, err)
		}
	}

	rows := make([]*models.GameMatchup, 0, 2*len(schedule))
	for _, game := range schedule {
		home := s.resolveTeam(statsMaps, game.HomeTeam, log)
		away := s.resolveTeam(statsMaps, game.AwayTeam, log)

		rows = append(rows,
			s.buildRow(gameDate, true, home, away, baselines),
			s.buildRow(gameDate, false, home, away, baselines),
		)
	}

	written, err := s.matchups.ReplaceForDate(ctx, gameDate, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to persist matchup rows: %w", err)
	}
	log.WithField("rows", written).Info("Matchup records replaced")
	return written, nil
}

// resolveTeam collects a team's snapshot per horizon via alias resolution.
// An unresolved horizon stays nil so the row carries null metrics for it.
func (s *MatchupService) resolveTeam(
	statsMaps map[models.Horizon]map[string]*models.TeamStats,
	scheduleName string,
	log *logrus.Entry,
) teamPayload {
	payload := teamPayload{
		name:     scheduleName,
		horizons: make(map[models.Horizon]*models.TeamStats, len(models.Horizons)),
	}
	resolvedAny := false
	for _, h := range models.Horizons {
		rec, _, ok := namematch.ResolveTeam(statsMaps[h], scheduleName)
		if !ok {
			payload.horizons[h] = nil
			continue
		}
		resolvedAny = true
		payload.horizons[h] = rec
		if payload.teamID == nil {
			id := rec.TeamID
			payload.teamID = &id
		}
	}
	if !resolvedAny {
		log.WithField("team", scheduleName).Warn("Team name unresolved against stats tables, emitting null metrics")
	}
	return payload
}

// buildRow builds one side's record. Each horizon is computed only when
// both sides resolved for it; otherwise the block stays null.
func (s *MatchupService) buildRow(
	gameDate time.Time,
	isHome bool,
	home, away teamPayload,
	baselines map[models.Horizon]models.LeagueBaseline,
) *models.GameMatchup {
	team, opp := home, away
	if !isHome {
		team, opp = away, home
	}

	row := &models.GameMatchup{
		GameDate:    gameDate,
		TeamName:    team.name,
		OppTeamName: opp.name,
		IsHome:      isHome,
		TeamID:      team.teamID,
		OppTeamID:   opp.teamID,
		Horizons:    make(map[models.Horizon]*models.MatchupMetrics, len(models.Horizons)),
		CalcVersion: CalcVersion,
	}

	for _, h := range models.Horizons {
		teamStats := team.horizons[h]
		oppStats := opp.horizons[h]
		if teamStats == nil || oppStats == nil {
			row.Horizons[h] = nil
			continue
		}
		row.Horizons[h] = s.calc.ComputeHorizon(teamStats.Ratings(), oppStats.Ratings(), baselines[h], isHome)
	}
	return row
}

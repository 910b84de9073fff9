package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/cache"
)

// PipelineReport summarizes one end-to-end pipeline run.
type PipelineReport struct {
	RunID          string     `json:"run_id"`
	GameDate       time.Time  `json:"game_date"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     time.Time  `json:"finished_at"`
	ScheduledGames int        `json:"scheduled_games"`
	MatchupRows    int        `json:"matchup_rows"`
	SlateMissing   bool       `json:"slate_missing"`
	Projection     *RunReport `json:"projection,omitempty"`
}

// PipelineService chains the daily stages: schedule refresh, stats refresh,
// matchup build, then projections when a slate has been uploaded.
type PipelineService struct {
	schedule    *ScheduleCollector
	stats       *StatsCollector
	matchups    *MatchupService
	projections *ProjectionService
	slates      *cache.SlateCache
	projCache   *cache.ProjectionCache
	logger      *logrus.Logger
}

// NewPipelineService wires the full pipeline.
func NewPipelineService(
	schedule *ScheduleCollector,
	stats *StatsCollector,
	matchups *MatchupService,
	projections *ProjectionService,
	slates *cache.SlateCache,
	projCache *cache.ProjectionCache,
	logger *logrus.Logger,
) *PipelineService {
	return &PipelineService{
		schedule:    schedule,
		stats:       stats,
		matchups:    matchups,
		projections: projections,
		slates:      slates,
		projCache:   projCache,
		logger:      logger,
	}
}

// Today returns the current slate date in the schedule timezone.
func (s *PipelineService) Today() time.Time {
	return s.schedule.LocalDate(time.Now())
}

// RunDailyUpdate refreshes schedule, team stats, player stats and matchup
// records for today's slate date.
func (s *PipelineService) RunDailyUpdate(ctx context.Context) (*PipelineReport, error) {
	report := &PipelineReport{
		RunID:     uuid.New().String(),
		GameDate:  s.Today(),
		StartedAt: time.Now(),
	}
	log := s.logger.WithFields(logrus.Fields{
		"component": "pipeline",
		"run_id":    report.RunID,
		"game_date": report.GameDate.Format("2006-01-02"),
	})
	log.Info("Starting daily update")

	games, err := s.schedule.CollectForDate(ctx, report.GameDate)
	if err != nil {
		return report, fmt.Errorf("schedule refresh failed: %w", err)
	}
	report.ScheduledGames = games

	if err := s.stats.CollectTeamStats(ctx); err != nil {
		return report, fmt.Errorf("team stats refresh failed: %w", err)
	}
	if err := s.stats.CollectPlayerStats(ctx); err != nil {
		return report, fmt.Errorf("player stats refresh failed: %w", err)
	}

	rows, err := s.matchups.BuildForDate(ctx, report.GameDate)
	if err != nil {
		return report, fmt.Errorf("matchup build failed: %w", err)
	}
	report.MatchupRows = rows
	report.FinishedAt = time.Now()
	log.WithFields(logrus.Fields{"games": games, "matchup_rows": rows}).Info("Daily update complete")
	return report, nil
}

// RunProjections runs the projection stage for gameDate against the last
// uploaded slate. A missing slate is reported, not an error, so scheduled
// runs don't fail on days nobody uploaded one.
func (s *PipelineService) RunProjections(ctx context.Context, gameDate time.Time) (*PipelineReport, error) {
	report := &PipelineReport{
		RunID:     uuid.New().String(),
		GameDate:  gameDate,
		StartedAt: time.Now(),
	}

	slate, err := s.slates.Load(ctx, gameDate)
	if errors.Is(err, cache.ErrNotFound) {
		report.SlateMissing = true
		report.FinishedAt = time.Now()
		s.logger.WithField("game_date", gameDate.Format("2006-01-02")).
			Warn("No slate uploaded for date, skipping projections")
		return report, nil
	}
	if err != nil {
		return report, err
	}

	rows, projReport, err := s.projections.Run(ctx, gameDate, slate)
	if err != nil {
		return report, err
	}
	report.Projection = projReport

	if err := s.projCache.Save(ctx, gameDate, rows); err != nil {
		// The persisted rows are authoritative; a cache write failure only
		// costs read latency.
		s.logger.WithError(err).Warn("Failed to cache projection run")
	}
	report.FinishedAt = time.Now()
	return report, nil
}

// RunFull runs the daily update and then projections for the same date.
func (s *PipelineService) RunFull(ctx context.Context) (*PipelineReport, error) {
	report, err := s.RunDailyUpdate(ctx)
	if err != nil {
		return report, err
	}

	projReport, err := s.RunProjections(ctx, report.GameDate)
	if err != nil {
		return report, err
	}
	report.SlateMissing = projReport.SlateMissing
	report.Projection = projReport.Projection
	report.FinishedAt = time.Now()
	return report, nil
}

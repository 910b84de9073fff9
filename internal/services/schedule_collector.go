package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/config"
	"github.com/nbasharp/nba-sharp-go/internal/models"
)

const oddsSportKey = "basketball_nba"

// oddsEvent is one scheduled game from the odds API events feed.
type oddsEvent struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// ScheduleWriter persists the refreshed daily schedule.
type ScheduleWriter interface {
	ReplaceForDate(ctx context.Context, gameDate time.Time, games []models.ScheduledGame) (int, error)
}

// ScheduleCollector refreshes the daily game schedule from the odds API
// events feed. "Today" is interpreted in the slate timezone (Eastern by
// default) and converted to a UTC commence-time window.
type ScheduleCollector struct {
	client   *resty.Client
	cfg      config.OddsAPIConfig
	location *time.Location
	schedule ScheduleWriter
	logger   *logrus.Logger
}

// NewScheduleCollector creates a schedule collector.
func NewScheduleCollector(cfg config.OddsAPIConfig, schedule ScheduleWriter, logger *logrus.Logger) (*ScheduleCollector, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", cfg.Timezone, err)
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		client.SetQueryParam("apiKey", cfg.APIKey)
	}

	return &ScheduleCollector{
		client:   client,
		cfg:      cfg,
		location: loc,
		schedule: schedule,
		logger:   logger,
	}, nil
}

// CollectForDate fetches the games commencing on gameDate's local calendar
// day and replaces the stored schedule for that date.
func (c *ScheduleCollector) CollectForDate(ctx context.Context, gameDate time.Time) (int, error) {
	from, to := localDayWindowUTC(gameDate, c.location)
	localDate := c.LocalDate(gameDate)

	var events []oddsEvent
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"commenceTimeFrom": from.Format(time.RFC3339),
			"commenceTimeTo":   to.Format(time.RFC3339),
			"dateFormat":       "iso",
		}).
		SetResult(&events).
		Get(fmt.Sprintf("/%s/events", oddsSportKey))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("events API returned %s", resp.Status())
	}

	games := make([]models.ScheduledGame, 0, len(events))
	for _, ev := range events {
		if ev.HomeTeam == "" || ev.AwayTeam == "" {
			continue
		}
		games = append(games, models.ScheduledGame{
			GameDate: localDate,
			HomeTeam: ev.HomeTeam,
			AwayTeam: ev.AwayTeam,
		})
	}

	written, err := c.schedule.ReplaceForDate(ctx, localDate, games)
	if err != nil {
		return 0, fmt.Errorf("failed to persist schedule: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"game_date": localDate.Format("2006-01-02"),
		"games":     written,
	}).Info("Schedule refreshed")
	return written, nil
}

// LocalDate reduces an instant to its calendar date in the slate timezone,
// stored at midnight UTC for stable date keys.
func (c *ScheduleCollector) LocalDate(t time.Time) time.Time {
	y, m, d := t.In(c.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// localDayWindowUTC returns the UTC instants covering the local calendar
// day of t in loc, inclusive of the day's last second.
func localDayWindowUTC(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.Add(24*time.Hour - time.Second)
	return start.UTC(), end.UTC()
}

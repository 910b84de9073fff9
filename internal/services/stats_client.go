package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/nbasharp/nba-sharp-go/internal/config"
)

// Stats API endpoints.
const (
	endpointPlayerStats   = "leaguedashplayerstats"
	endpointTeamStats     = "leaguedashteamstats"
	endpointTrackingStats = "leaguedashptstats"
)

// statsRow is one row of a stats table keyed by the API's header names.
type statsRow map[string]interface{}

type statsResponse struct {
	ResultSets []struct {
		Name    string          `json:"name"`
		Headers []string        `json:"headers"`
		RowSet  [][]interface{} `json:"rowSet"`
	} `json:"resultSets"`
}

// StatsAPIClient fetches league-wide stat tables. Calls go through a
// circuit breaker so a flaky upstream fails fast instead of stalling the
// daily update, and requests are spaced out to stay polite.
type StatsAPIClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	cfg     config.StatsAPIConfig
	logger  *logrus.Logger
}

// NewStatsAPIClient creates a stats API client.
func NewStatsAPIClient(cfg config.StatsAPIConfig, logger *logrus.Logger) *StatsAPIClient {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	client.SetHeaders(map[string]string{
		"User-Agent":         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
		"Referer":            "https://www.nba.com/",
		"Accept":             "application/json",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	})

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "stats-api",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker":    name,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Stats API circuit breaker state changed")
		},
	})

	return &StatsAPIClient{client: client, breaker: breaker, cfg: cfg, logger: logger}
}

// commonParams are shared by every stats table request. lastNGames 0 means
// the full season.
func (c *StatsAPIClient) commonParams(lastNGames int) map[string]string {
	return map[string]string{
		"Season":     c.cfg.Season,
		"SeasonType": c.cfg.SeasonType,
		"PerMode":    c.cfg.PerMode,
		"LeagueID":   "00",
		"LastNGames": fmt.Sprintf("%d", lastNGames),
	}
}

// PlayerTable fetches one leaguedashplayerstats table for a measure type.
func (c *StatsAPIClient) PlayerTable(ctx context.Context, measureType string, lastNGames int) ([]statsRow, error) {
	params := c.commonParams(lastNGames)
	params["MeasureType"] = measureType
	return c.fetchRows(ctx, endpointPlayerStats, params)
}

// TeamTable fetches one leaguedashteamstats table for a measure type.
func (c *StatsAPIClient) TeamTable(ctx context.Context, measureType string, lastNGames int) ([]statsRow, error) {
	params := c.commonParams(lastNGames)
	params["MeasureType"] = measureType
	return c.fetchRows(ctx, endpointTeamStats, params)
}

// PlayerTrackingTable fetches one leaguedashptstats table for a tracking
// measure type.
func (c *StatsAPIClient) PlayerTrackingTable(ctx context.Context, ptMeasureType string, lastNGames int) ([]statsRow, error) {
	params := c.commonParams(lastNGames)
	params["PlayerOrTeam"] = "Player"
	params["PtMeasureType"] = ptMeasureType
	return c.fetchRows(ctx, endpointTrackingStats, params)
}

func (c *StatsAPIClient) fetchRows(ctx context.Context, endpoint string, params map[string]string) ([]statsRow, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var payload statsResponse
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(&payload).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("stats API returned %s", resp.Status())
		}
		return &payload, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}

	payload := result.(*statsResponse)
	if len(payload.ResultSets) == 0 {
		return nil, fmt.Errorf("empty result sets from %s", endpoint)
	}

	// Space out successive requests.
	if c.cfg.RequestDelay > 0 {
		select {
		case <-time.After(c.cfg.RequestDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	set := payload.ResultSets[0]
	rows := make([]statsRow, 0, len(set.RowSet))
	for _, raw := range set.RowSet {
		row := make(statsRow, len(set.Headers))
		for i, header := range set.Headers {
			if i < len(raw) {
				row[header] = raw[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

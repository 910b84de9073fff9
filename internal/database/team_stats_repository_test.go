package database

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

func teamStatsFixture(id int, name string, pace, offRtg, defRtg float64) *models.TeamStats {
	return &models.TeamStats{
		TeamID:       id,
		SnapshotDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		TeamName:     name,
		Pace:         &pace,
		OffRtg:       &offRtg,
		DefRtg:       &defRtg,
	}
}

func teamStatsRows(t *testing.T, teams ...*models.TeamStats) *pgxmock.Rows {
	t.Helper()
	rows := pgxmock.NewRows([]string{"stats"})
	for _, ts := range teams {
		payload, err := json.Marshal(ts)
		require.NoError(t, err)
		rows.AddRow(payload)
	}
	return rows
}

func TestTeamStatsRepositoryReplaceForHorizon(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ts := teamStatsFixture(1, "Boston Celtics", 100.0, 112.0, 110.0)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM team_data.team_stats").
		WithArgs("last_5").
		WillReturnResult(pgxmock.NewResult("DELETE", 30))
	mock.ExpectExec("INSERT INTO team_data.team_stats").
		WithArgs("last_5", ts.TeamID, ts.SnapshotDate, ts.TeamName, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewTeamStatsRepository(mock)
	written, err := repo.ReplaceForHorizon(context.Background(), models.HorizonLast5, []*models.TeamStats{ts})
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamStatsRepositoryStatsMapKeysNormalized(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT stats FROM team_data.team_stats").
		WithArgs("season_long").
		WillReturnRows(teamStatsRows(t,
			teamStatsFixture(1, "LA Clippers", 99.0, 111.0, 109.0),
		))

	repo := NewTeamStatsRepository(mock)
	statsMap, err := repo.StatsMap(context.Background(), models.HorizonSeasonLong)
	require.NoError(t, err)

	ts, ok := statsMap["la clippers"]
	require.True(t, ok)
	assert.Equal(t, 1, ts.TeamID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamStatsRepositoryLeagueBaseline(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT stats FROM team_data.team_stats").
		WithArgs("season_long").
		WillReturnRows(teamStatsRows(t,
			teamStatsFixture(1, "Boston Celtics", 100.0, 112.0, 110.0),
			teamStatsFixture(2, "Miami Heat", 98.0, 108.0, 114.0),
		))

	repo := NewTeamStatsRepository(mock)
	baseline, err := repo.LeagueBaseline(context.Background(), models.HorizonSeasonLong)
	require.NoError(t, err)
	assert.InDelta(t, 99.0, baseline.Pace, 1e-9)
	assert.InDelta(t, 110.0, baseline.PP100, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamStatsRepositoryLeagueBaselineEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT stats FROM team_data.team_stats").
		WithArgs("last_3").
		WillReturnRows(pgxmock.NewRows([]string{"stats"}))

	repo := NewTeamStatsRepository(mock)
	_, err = repo.LeagueBaseline(context.Background(), models.HorizonLast3)
	assert.Error(t, err)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

func TestTotalBlendWeight(t *testing.T) {
	assert.Equal(t, 30.0, TotalBlendWeight())
}

func TestBackfillBaseStatsCascade(t *testing.T) {
	row := &models.PlayerProjection{}
	sl := models.BaseStats{GP: 60, UsgPct: 24.5, FP: 38.2, Touches: 62.1, Min: 33.0, Poss: 4100}
	l10 := models.BaseStats{GP: 10, UsgPct: 26.0, FP: 41.0, Touches: 64.0, Min: 34.0, Poss: 700}
	row.SetBaseStats(models.HorizonSeasonLong, sl)
	row.SetBaseStats(models.HorizonLast10, l10)
	// last_5 and last_3 are untouched: all-zero.

	require.True(t, backfillBaseStats(row))

	// last_5 takes last_10's stats. last_3 copied last_5 before the fill
	// reached it, so it stays zero: the cascade is single-step per run, not
	// transitive.
	assert.Equal(t, l10, row.BaseStats(models.HorizonLast5))
	assert.Equal(t, models.BaseStats{}, row.BaseStats(models.HorizonLast3))
	// Populated horizons stay untouched.
	assert.Equal(t, sl, row.BaseStats(models.HorizonSeasonLong))
	assert.Equal(t, l10, row.BaseStats(models.HorizonLast10))
}

func TestBackfillBaseStatsSingleStep(t *testing.T) {
	row := &models.PlayerProjection{}
	l5 := models.BaseStats{GP: 5, UsgPct: 27.0, FP: 42.0, Touches: 66.0, Min: 35.0, Poss: 360}
	row.SetBaseStats(models.HorizonSeasonLong, models.BaseStats{GP: 60, FP: 38.0})
	row.SetBaseStats(models.HorizonLast10, models.BaseStats{GP: 10, FP: 41.0})
	row.SetBaseStats(models.HorizonLast5, l5)

	require.True(t, backfillBaseStats(row))

	// An empty last_3 borrows from an already-filled last_5 directly.
	assert.Equal(t, l5, row.BaseStats(models.HorizonLast3))
}

func TestBackfillBaseStatsPartialHorizonIsNotOverwritten(t *testing.T) {
	row := &models.PlayerProjection{}
	// A single nonzero field means the horizon has real data.
	partial := models.BaseStats{GP: 2}
	row.SetBaseStats(models.HorizonLast3, partial)
	row.SetBaseStats(models.HorizonLast5, models.BaseStats{GP: 5, FP: 30})

	require.True(t, backfillBaseStats(row))
	assert.Equal(t, partial, row.BaseStats(models.HorizonLast3))
}

func TestBackfillBaseStatsDropsEmptyPlayer(t *testing.T) {
	row := &models.PlayerProjection{}
	assert.False(t, backfillBaseStats(row))
}

func TestComputeRateStats(t *testing.T) {
	row := &models.PlayerProjection{}
	row.SetBaseStats(models.HorizonLast5, models.BaseStats{
		GP: 5, FP: 40.0, Touches: 60.0, Min: 32.0, Poss: 350.0,
	})

	computeRateStats(row, models.HorizonLast5)
	blk := row.HorizonBlock(models.HorizonLast5)

	assert.InDelta(t, 40.0/32.0, blk.FPPM, 1e-9)
	assert.InDelta(t, 40.0/60.0, blk.FPPT, 1e-9)
	// Possessions normalize to per-game first: 350/5 = 70.
	assert.InDelta(t, 40.0/70.0, blk.FPPP, 1e-9)
	assert.InDelta(t, 60.0/32.0, blk.TPM, 1e-9)
	assert.InDelta(t, 60.0/70.0, blk.TPP, 1e-9)
}

func TestComputeRateStatsZeroDenominators(t *testing.T) {
	row := &models.PlayerProjection{}
	row.SetBaseStats(models.HorizonLast3, models.BaseStats{FP: 12.0, Touches: 20.0})

	computeRateStats(row, models.HorizonLast3)
	blk := row.HorizonBlock(models.HorizonLast3)

	assert.Zero(t, blk.FPPM)
	assert.Zero(t, blk.TPM)
	// GP is zero so possessions per game defaults to 1.0, not 0.
	assert.InDelta(t, 12.0, blk.FPPP, 1e-9)
	assert.InDelta(t, 20.0, blk.TPP, 1e-9)
}

func TestComputeTouchProjections(t *testing.T) {
	row := &models.PlayerProjection{ProjMins: 34.0}
	blk := row.HorizonBlock(models.HorizonLast5)
	blk.PossPct = 8.5
	blk.TPP = 0.86
	blk.TPM = 1.88

	computeTouchProjections(row, models.HorizonLast5, 99.0)

	assert.Equal(t, 99.0, blk.ImpliedPoss)
	assert.InDelta(t, 0.085*0.86*99.0, blk.TouchesIP, 1e-9)
	assert.InDelta(t, 1.88*34.0, blk.TouchesTPM, 1e-9)
}

func TestComputeTouchProjectionsNoMatchupData(t *testing.T) {
	row := &models.PlayerProjection{ProjMins: 30.0}
	blk := row.HorizonBlock(models.HorizonLast10)
	blk.PossPct = 10.0
	blk.TPP = 0.9
	blk.TPM = 2.0

	computeTouchProjections(row, models.HorizonLast10, 0)

	// IP collapses to zero without a matchup; TPM still projects.
	assert.Zero(t, blk.TouchesIP)
	assert.InDelta(t, 60.0, blk.TouchesTPM, 1e-9)
}

func TestComputeTeamFantasyContext(t *testing.T) {
	a := &models.PlayerProjection{Team: "BOS"}
	a.HorizonBlock(models.HorizonSeasonLong).FP = 40.0
	b := &models.PlayerProjection{Team: "BOS"}
	b.HorizonBlock(models.HorizonSeasonLong).FP = 10.0
	c := &models.PlayerProjection{Team: "MIA"}
	c.HorizonBlock(models.HorizonSeasonLong).FP = 25.0

	computeTeamFantasyContext([]*models.PlayerProjection{a, b, c}, models.HorizonSeasonLong)

	assert.Equal(t, 50.0, a.HorizonBlock(models.HorizonSeasonLong).TeamFP)
	assert.InDelta(t, 80.0, a.HorizonBlock(models.HorizonSeasonLong).FPPer, 1e-9)
	assert.InDelta(t, 20.0, b.HorizonBlock(models.HorizonSeasonLong).FPPer, 1e-9)
	assert.Equal(t, 25.0, c.HorizonBlock(models.HorizonSeasonLong).TeamFP)
	assert.InDelta(t, 100.0, c.HorizonBlock(models.HorizonSeasonLong).FPPer, 1e-9)
}

func TestComputeTeamAggregates(t *testing.T) {
	a := &models.PlayerProjection{Team: "BOS", Salary: 9000, Ownership: 25.0, ProjMins: 36.0}
	b := &models.PlayerProjection{Team: "BOS", Salary: 3000, Ownership: 5.0, ProjMins: 20.0}

	computeTeamAggregates([]*models.PlayerProjection{a, b})

	assert.Equal(t, 12000.0, a.TeamSalary)
	assert.InDelta(t, 75.0, a.SalaryShare, 1e-9)
	assert.InDelta(t, 25.0, b.SalaryShare, 1e-9)
	assert.Equal(t, 30.0, a.TeamOwnership)
	assert.Equal(t, 56.0, a.TeamMinutes)
	assert.Equal(t, 184.0, a.MinutesAvail)
}

func TestComputeFinalProjectionIsConvexBlend(t *testing.T) {
	row := &models.PlayerProjection{Salary: 8000}
	for _, h := range models.Horizons {
		blk := row.HorizonBlock(h)
		blk.FPProjIP = 40.0
		blk.FPProjTPM = 40.0
	}

	computeFinalProjection(row)

	// Identical estimates blend to themselves: weights are convex.
	assert.InDelta(t, 40.0, row.FPProj, 1e-9)
	assert.InDelta(t, 5.0, row.ProjectedValue, 1e-9)
}

func TestComputeFinalProjectionWeighting(t *testing.T) {
	row := &models.PlayerProjection{Salary: 5000}
	// Only the last-5 TPM estimate is nonzero; its weight is 8 of 30.
	row.HorizonBlock(models.HorizonLast5).FPProjTPM = 30.0

	computeFinalProjection(row)

	assert.InDelta(t, 30.0*8.0/30.0, row.FPProj, 1e-9)
}

func TestComputeFinalProjectionZeroSalary(t *testing.T) {
	row := &models.PlayerProjection{}
	row.HorizonBlock(models.HorizonLast5).FPProjIP = 30.0

	computeFinalProjection(row)
	assert.Zero(t, row.ProjectedValue)
}

package services

import (
	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/utils"
)

// Blend weights per horizon and method. Higher means more influence on the
// final projection; last-5 carries the most as the best read on current
// form. The eight weights sum to 30.
var (
	ipWeights = map[models.Horizon]float64{
		models.HorizonSeasonLong: 1,
		models.HorizonLast10:     3,
		models.HorizonLast5:      6,
		models.HorizonLast3:      3,
	}
	tpmWeights = map[models.Horizon]float64{
		models.HorizonSeasonLong: 1,
		models.HorizonLast10:     4,
		models.HorizonLast5:      8,
		models.HorizonLast3:      4,
	}
)

// TotalBlendWeight is the sum of all eight blend weights.
func TotalBlendWeight() float64 {
	var total float64
	for _, h := range models.Horizons {
		total += ipWeights[h] + tpmWeights[h]
	}
	return total
}

// backfillBaseStats runs the missing-data cascade from the shortest horizon
// to the longest: a horizon whose base stats are all exactly zero takes the
// next longer horizon's. Returns false when the player has no signal in any
// horizon after the cascade and must be dropped from the run.
func backfillBaseStats(row *models.PlayerProjection) bool {
	cascade := models.HorizonsShortestFirst
	for i := 0; i < len(cascade)-1; i++ {
		if row.BaseStats(cascade[i]).IsZero() {
			row.SetBaseStats(cascade[i], row.BaseStats(cascade[i+1]))
		}
	}

	for _, h := range models.Horizons {
		if !row.BaseStats(h).IsZero() {
			return true
		}
	}
	return false
}

// computeRateStats derives the per-minute/per-touch/per-possession rates
// for one horizon. Possession-based rates normalize possessions per game
// first, defaulting the inner division to 1.0 so a missing games-played
// count cannot amplify the rate.
func computeRateStats(row *models.PlayerProjection, h models.Horizon) {
	blk := row.HorizonBlock(h)

	blk.FPPM = utils.SafeDivide(blk.FP, blk.Min, 0)
	blk.FPPT = utils.SafeDivide(blk.FP, blk.Touches, 0)

	possPerGame := utils.SafeDivide(blk.Poss, blk.GP, 1.0)
	blk.FPPP = utils.SafeDivide(blk.FP, possPerGame, 0)

	blk.TPM = utils.SafeDivide(blk.Touches, blk.Min, 0)
	blk.TPP = utils.SafeDivide(blk.Touches, possPerGame, 0)
}

// computeTeamContext fills the player's share of team possessions for one
// horizon. teamPoss is the resolved team-possession total for the player's
// team, zero when the team lookup failed.
func computeTeamContext(row *models.PlayerProjection, h models.Horizon, teamPoss float64) {
	blk := row.HorizonBlock(h)
	blk.TeamPoss = teamPoss
	blk.PossPct = utils.SafeDivide(blk.Poss, teamPoss, 0) * 100.0
}

// computeTouchProjections produces both touch estimates for one horizon.
// impliedPoss comes from the team's matchup record; a missing record means
// zero implied possessions and therefore zero touches by the IP method.
func computeTouchProjections(row *models.PlayerProjection, h models.Horizon, impliedPoss float64) {
	blk := row.HorizonBlock(h)
	blk.ImpliedPoss = impliedPoss
	blk.TouchesIP = (blk.PossPct / 100.0) * blk.TPP * impliedPoss
	blk.TouchesTPM = blk.TPM * row.ProjMins
}

// computeFantasyProjections converts both touch estimates to fantasy
// points at the horizon's points-per-touch rate.
func computeFantasyProjections(row *models.PlayerProjection, h models.Horizon) {
	blk := row.HorizonBlock(h)
	blk.FPProjIP = blk.FPPT * blk.TouchesIP
	blk.FPProjTPM = blk.FPPT * blk.TouchesTPM
}

// computeTeamFantasyContext fills each player's share of their team's
// historical fantasy points for one horizon, grouping by slate team
// abbreviation.
func computeTeamFantasyContext(rows []*models.PlayerProjection, h models.Horizon) {
	teamFP := make(map[string]float64)
	for _, row := range rows {
		teamFP[row.Team] += row.HorizonBlock(h).FP
	}
	for _, row := range rows {
		blk := row.HorizonBlock(h)
		blk.TeamFP = teamFP[row.Team]
		blk.FPPer = utils.SafeDivide(blk.FP, blk.TeamFP, 0) * 100.0
	}
}

// computeTeamAggregates fills the slate-wide team sums: salary, ownership
// and projected minutes, plus each player's salary share and the minutes
// left over out of a regulation game's 240.
func computeTeamAggregates(rows []*models.PlayerProjection) {
	type teamTotals struct {
		salary    float64
		ownership float64
		minutes   float64
	}
	totals := make(map[string]*teamTotals)
	for _, row := range rows {
		t, ok := totals[row.Team]
		if !ok {
			t = &teamTotals{}
			totals[row.Team] = t
		}
		t.salary += row.Salary
		t.ownership += row.Ownership
		t.minutes += row.ProjMins
	}

	for _, row := range rows {
		t := totals[row.Team]
		row.TeamSalary = t.salary
		row.SalaryShare = utils.SafeDivide(row.Salary, t.salary, 0) * 100.0
		row.TeamOwnership = t.ownership
		row.TeamMinutes = t.minutes
		row.MinutesAvail = 240.0 - t.minutes
	}
}

// computeFinalProjection blends the eight per-horizon estimates into the
// final fantasy-point projection and derives value as points per $1000 of
// salary.
func computeFinalProjection(row *models.PlayerProjection) {
	total := TotalBlendWeight()
	var proj float64
	for _, h := range models.Horizons {
		blk := row.HorizonBlock(h)
		proj += blk.FPProjIP * ipWeights[h] / total
		proj += blk.FPProjTPM * tpmWeights[h] / total
	}
	row.FPProj = proj
	row.ProjectedValue = utils.SafeDivide(row.FPProj, row.Salary/1000.0, 0)
}

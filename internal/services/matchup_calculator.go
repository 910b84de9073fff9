package services

import (
	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/utils"
)

// Home-court advantage offsets. The home side gains possessions and
// efficiency, the away side loses the same amounts. Fixed by the model,
// not configurable.
const (
	hcaPossAdj  = 0.3
	hcaPP100Adj = 0.5
)

// CalcVersion tags every persisted matchup and projection row with the
// model revision that produced it.
const CalcVersion = "v1"

// MatchupCalculator turns two teams' pace/efficiency ratings for one
// horizon into a home-court-adjusted expected-points model for one side of
// a game.
type MatchupCalculator struct{}

// NewMatchupCalculator creates a calculator instance.
func NewMatchupCalculator() *MatchupCalculator {
	return &MatchupCalculator{}
}

// ComputeHorizon computes the full metric block for one side. The formula
// is symmetric: calling it with team/opp swapped and isHome negated yields
// the opponent's row with all HCA signs reversed.
func (c *MatchupCalculator) ComputeHorizon(
	team, opp models.TeamRatings,
	baseline models.LeagueBaseline,
	isHome bool,
) *models.MatchupMetrics {
	possAdj := hcaPossAdj
	pp100Adj := hcaPP100Adj
	if !isHome {
		possAdj = -hcaPossAdj
		pp100Adj = -hcaPP100Adj
	}
	oppPossAdj := -possAdj
	oppPP100Adj := -pp100Adj

	teamPaceAdj := team.Pace + possAdj
	oppPaceAdj := opp.Pace + oppPossAdj
	impliedPoss := (teamPaceAdj + oppPaceAdj) / 2.0

	// Possessions above league use the raw, unadjusted pace.
	possAboveLg := team.Pace - baseline.Pace

	expPP100 := baseline.PP100 +
		0.5*(team.OffRtg-baseline.PP100) +
		0.5*(baseline.PP100-opp.DefRtg) +
		pp100Adj
	oppExpPP100 := baseline.PP100 +
		0.5*(opp.OffRtg-baseline.PP100) +
		0.5*(baseline.PP100-team.DefRtg) +
		oppPP100Adj

	projPts := expPP100 * impliedPoss / 100.0
	oppProjPts := oppExpPP100 * impliedPoss / 100.0

	return &models.MatchupMetrics{
		Pace:         utils.Round2(team.Pace),
		OppPace:      utils.Round2(opp.Pace),
		LgPace:       utils.Round2(baseline.Pace),
		PossAboveLg:  utils.Round2(possAboveLg),
		ImpliedPoss:  utils.Round2(impliedPoss),
		OffRtg:       utils.Round2(team.OffRtg),
		DefRtg:       utils.Round2(team.DefRtg),
		OppOffRtg:    utils.Round2(opp.OffRtg),
		OppDefRtg:    utils.Round2(opp.DefRtg),
		LgPP100:      utils.Round2(baseline.PP100),
		HCAPossAdj:   utils.Round2(possAdj),
		HCAPP100Adj:  utils.Round2(pp100Adj),
		ExpPP100:     utils.Round2(expPP100),
		OppExpPP100:  utils.Round2(oppExpPP100),
		ProjPts:      utils.Round2(projPts),
		OppProjPts:   utils.Round2(oppProjPts),
		ProjTotal:    utils.Round2(projPts + oppProjPts),
		Matchup:      utils.Round2(projPts - oppProjPts),
		PtsAllowedPG: utils.Round2(team.DefRtg * team.Pace / 100.0),
	}
}

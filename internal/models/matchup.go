package models

import "time"

// ScheduledGame is one row of the daily game schedule.
type ScheduledGame struct {
	GameDate time.Time `json:"game_date_est" db:"game_date_est"`
	HomeTeam string    `json:"home_team" db:"home_team"`
	AwayTeam string    `json:"away_team" db:"away_team"`
}

// MatchupMetrics is the full metric block the matchup model produces for one
// team's side of one game over one horizon. All values are rounded to two
// decimals for storage.
type MatchupMetrics struct {
	Pace          float64 `json:"pace"`
	OppPace       float64 `json:"opp_pace"`
	LgPace        float64 `json:"lg_pace"`
	PossAboveLg   float64 `json:"poss_above_lg"`
	ImpliedPoss   float64 `json:"implied_poss"`
	OffRtg        float64 `json:"offrtg"`
	DefRtg        float64 `json:"defrtg"`
	OppOffRtg     float64 `json:"opp_offrtg"`
	OppDefRtg     float64 `json:"opp_defrtg"`
	LgPP100       float64 `json:"lg_pp100"`
	HCAPossAdj    float64 `json:"hca_poss_adj"`
	HCAPP100Adj   float64 `json:"hca_pp100_adj"`
	ExpPP100      float64 `json:"exp_pp100"`
	OppExpPP100   float64 `json:"opp_exp_pp100"`
	ProjPts       float64 `json:"proj_pts"`
	OppProjPts    float64 `json:"opp_proj_pts"`
	ProjTotal     float64 `json:"proj_total"`
	Matchup       float64 `json:"matchup"`
	PtsAllowedPG  float64 `json:"pts_allowed_pg"`
}

// GameMatchup is one team's view of one scheduled game, keyed by
// (date, team, opponent). A horizon with missing data on either side keeps a
// nil metric block; zero-filling would be numerically misleading.
type GameMatchup struct {
	GameDate    time.Time                   `json:"game_date_est"`
	TeamName    string                      `json:"team_name"`
	OppTeamName string                      `json:"opp_team_name"`
	IsHome      bool                        `json:"is_home"`
	TeamID      *int                        `json:"team_id,omitempty"`
	OppTeamID   *int                        `json:"opp_team_id,omitempty"`
	Horizons    map[Horizon]*MatchupMetrics `json:"horizons"`
	CalcVersion string                      `json:"calc_version"`
}

// ImpliedPoss returns the implied possessions for a horizon, or 0 when the
// horizon block is null. Downstream touch projections treat the missing
// case as zero possessions.
func (m *GameMatchup) ImpliedPoss(h Horizon) float64 {
	if m == nil {
		return 0
	}
	if blk, ok := m.Horizons[h]; ok && blk != nil {
		return blk.ImpliedPoss
	}
	return 0
}

package models

import "time"

// TeamStats is a per-horizon snapshot of one team's counting and advanced
// stats, refreshed once per day from the stats API. Pace, OffRtg and DefRtg
// feed the matchup model; the remaining columns are carried for reporting.
type TeamStats struct {
	TeamID       int       `json:"team_id" db:"team_id"`
	SnapshotDate time.Time `json:"current_date" db:"current_date"`
	TeamName     string    `json:"team_name" db:"team_name"`

	GP        *int     `json:"gp" db:"gp"`
	W         *int     `json:"w" db:"w"`
	L         *int     `json:"l" db:"l"`
	Min       *float64 `json:"min" db:"min"`
	Pts       *float64 `json:"pts" db:"pts"`
	FGM       *float64 `json:"fgm" db:"fgm"`
	FGA       *float64 `json:"fga" db:"fga"`
	FGPct     *float64 `json:"fg_pct" db:"fg_pct"`
	ThreePM   *float64 `json:"three_pm" db:"three_pm"`
	ThreePA   *float64 `json:"three_pa" db:"three_pa"`
	ThreePPct *float64 `json:"three_p_pct" db:"three_p_pct"`
	FTM       *float64 `json:"ftm" db:"ftm"`
	FTA       *float64 `json:"fta" db:"fta"`
	FTPct     *float64 `json:"ft_pct" db:"ft_pct"`
	OReb      *float64 `json:"oreb" db:"oreb"`
	DReb      *float64 `json:"dreb" db:"dreb"`
	Reb       *float64 `json:"reb" db:"reb"`
	Ast       *float64 `json:"ast" db:"ast"`
	Tov       *float64 `json:"tov" db:"tov"`
	Stl       *float64 `json:"stl" db:"stl"`
	Blk       *float64 `json:"blk" db:"blk"`
	PF        *float64 `json:"pf" db:"pf"`
	PlusMinus *float64 `json:"plus_minus" db:"plus_minus"`

	OffRtg   *float64 `json:"offrtg" db:"offrtg"`
	DefRtg   *float64 `json:"defrtg" db:"defrtg"`
	NetRtg   *float64 `json:"netrtg" db:"netrtg"`
	AstPct   *float64 `json:"ast_pct" db:"ast_pct"`
	AstTo    *float64 `json:"ast_to" db:"ast_to"`
	AstRatio *float64 `json:"ast_ratio" db:"ast_ratio"`
	ORebPct  *float64 `json:"oreb_pct" db:"oreb_pct"`
	DRebPct  *float64 `json:"dreb_pct" db:"dreb_pct"`
	RebPct   *float64 `json:"reb_pct" db:"reb_pct"`
	TovPct   *float64 `json:"tov_pct" db:"tov_pct"`
	EFGPct   *float64 `json:"efg_pct" db:"efg_pct"`
	TSPct    *float64 `json:"ts_pct" db:"ts_pct"`
	Pace     *float64 `json:"pace" db:"pace"`
	PIE      *float64 `json:"pie" db:"pie"`
	Poss     *float64 `json:"poss" db:"poss"`
}

// TeamRatings is the slice of a TeamStats row the matchup model consumes.
type TeamRatings struct {
	TeamID   int
	TeamName string
	Pace     float64
	OffRtg   float64
	DefRtg   float64
}

// Ratings projects the matchup inputs out of a snapshot, coercing missing
// columns to zero the way the source tables do for partially filled rows.
func (t *TeamStats) Ratings() TeamRatings {
	r := TeamRatings{TeamID: t.TeamID, TeamName: t.TeamName}
	if t.Pace != nil {
		r.Pace = *t.Pace
	}
	if t.OffRtg != nil {
		r.OffRtg = *t.OffRtg
	}
	if t.DefRtg != nil {
		r.DefRtg = *t.DefRtg
	}
	return r
}

// LeagueBaseline holds the league-average pace and points-per-100 for one
// horizon, derived by averaging every team snapshot in that horizon.
// Recomputed on every run, never persisted.
type LeagueBaseline struct {
	Pace  float64
	PP100 float64
}

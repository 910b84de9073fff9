package models

import "time"

// PlayerStats is a per-horizon snapshot of one player's stats. The
// projection engine only reads the base stats (GP, UsgPct, FP, Touches, Min,
// Poss); everything else is descriptive and passed through to storage.
type PlayerStats struct {
	PlayerID     int       `json:"player_id" db:"player_id"`
	SnapshotDate time.Time `json:"current_date" db:"current_date"`
	Player       string    `json:"player" db:"player"`
	Team         string    `json:"team" db:"team"`
	Age          *int      `json:"age" db:"age"`

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
	FP        *float64 `json:"fp" db:"fp"`
	DD2       *int     `json:"dd2" db:"dd2"`
	TD3       *int     `json:"td3" db:"td3"`
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
	UsgPct   *float64 `json:"usg_pct" db:"usg_pct"`
	Pace     *float64 `json:"pace" db:"pace"`
	PIE      *float64 `json:"pie" db:"pie"`
	Poss     *float64 `json:"poss" db:"poss"`

	Touches          *float64 `json:"touches" db:"touches"`
	FrontCtTouches   *float64 `json:"front_ct_touches" db:"front_ct_touches"`
	TimeOfPoss       *float64 `json:"time_of_poss" db:"time_of_poss"`
	AvgSecPerTouch   *float64 `json:"avg_sec_per_touch" db:"avg_sec_per_touch"`
	AvgDribPerTouch  *float64 `json:"avg_drib_per_touch" db:"avg_drib_per_touch"`
	PtsPerTouch      *float64 `json:"pts_per_touch" db:"pts_per_touch"`
	ElbowTouches     *float64 `json:"elbow_touches" db:"elbow_touches"`
	PostUps          *float64 `json:"post_ups" db:"post_ups"`
	PaintTouches     *float64 `json:"paint_touches" db:"paint_touches"`
	PtsPerElbowTouch *float64 `json:"pts_per_elbow_touch" db:"pts_per_elbow_touch"`
	PtsPerPostTouch  *float64 `json:"pts_per_post_touch" db:"pts_per_post_touch"`
	PtsPerPaintTouch *float64 `json:"pts_per_paint_touch" db:"pts_per_paint_touch"`
}

// BaseStats is the subset of a player snapshot the projection math runs on.
// Missing columns read as zero, matching the defaulting the lookup layer
// applies for unmatched players.
type BaseStats struct {
	GP      float64
	UsgPct  float64
	FP      float64
	Touches float64
	Min     float64
	Poss    float64
}

// Base extracts the projection inputs from a snapshot.
func (p *PlayerStats) Base() BaseStats {
	b := BaseStats{}
	if p.GP != nil {
		b.GP = float64(*p.GP)
	}
	if p.UsgPct != nil {
		b.UsgPct = *p.UsgPct
	}
	if p.FP != nil {
		b.FP = *p.FP
	}
	if p.Touches != nil {
		b.Touches = *p.Touches
	}
	if p.Min != nil {
		b.Min = *p.Min
	}
	if p.Poss != nil {
		b.Poss = *p.Poss
	}
	return b
}

// IsZero reports whether every base stat is exactly zero, meaning the
// horizon carries no signal for this player.
func (b BaseStats) IsZero() bool {
	return b.GP == 0 && b.UsgPct == 0 && b.FP == 0 && b.Touches == 0 && b.Min == 0 && b.Poss == 0
}

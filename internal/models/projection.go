package models

import "time"

// SlateEntry is one row of the daily player slate after filtering. Rows
// missing a salary or projected under the minutes floor never reach the
// projection engine.
type SlateEntry struct {
	Player       string  `json:"player"`
	Pos          string  `json:"pos"`
	Team         string  `json:"team"`
	Opp          string  `json:"opp"`
	TeamFullName string  `json:"team_full_name"`
	OppFullName  string  `json:"opp_full_name"`
	Salary       float64 `json:"salary"`
	ProjMins     float64 `json:"proj_mins"`
	Ownership    float64 `json:"ownership"`
	Status       string  `json:"status"`
	GameInfo     string  `json:"game_info"`
}

// ProjectionHorizon carries every per-horizon metric for one player: the
// (possibly backfilled) base stats, derived rates, team context, the two
// touch estimates and their fantasy-point conversions.
type ProjectionHorizon struct {
	// Base stats after the backfill cascade.
	GP      float64 `json:"gp"`
	UsgPct  float64 `json:"usg_pct"`
	FP      float64 `json:"fp"`
	Touches float64 `json:"touches"`
	Min     float64 `json:"min"`
	Poss    float64 `json:"poss"`

	// Rate stats.
	FPPM float64 `json:"fppm"`
	FPPT float64 `json:"fppt"`
	FPPP float64 `json:"fppp"`
	TPM  float64 `json:"tpm"`
	TPP  float64 `json:"tpp"`

	// Team context.
	TeamPoss float64 `json:"team_poss"`
	PossPct  float64 `json:"poss_pct"`

	// Touch projections.
	ImpliedPoss float64 `json:"implied_poss"`
	TouchesIP   float64 `json:"touches_ip"`
	TouchesTPM  float64 `json:"touches_tpm"`

	// Fantasy-point estimates per method.
	FPProjIP  float64 `json:"fp_proj_ip"`
	FPProjTPM float64 `json:"fp_proj_tpm"`

	// Team fantasy-point context.
	TeamFP float64 `json:"team_fp"`
	FPPer  float64 `json:"fp_per"`
}

// PlayerProjection is the persisted per-player output record, keyed by
// (date, player, team). Re-running a date fully replaces prior records.
type PlayerProjection struct {
	GameDate     time.Time `json:"game_date"`
	Player       string    `json:"player"`
	DBPlayer     string    `json:"db_player"`
	Pos          string    `json:"pos"`
	Team         string    `json:"team"`
	TeamFullName string    `json:"team_full_name"`
	Opp          string    `json:"opp"`
	OppFullName  string    `json:"opp_full_name"`
	Status       string    `json:"status"`
	GameInfo     string    `json:"game_info"`

	Salary    float64 `json:"salary"`
	ProjMins  float64 `json:"proj_mins"`
	Ownership float64 `json:"ownership"`

	// Final outputs.
	FPProj         float64 `json:"fp_proj"`
	ProjectedValue float64 `json:"projected_value"`

	// Slate-wide team aggregates.
	TeamSalary    float64 `json:"team_salary"`
	SalaryShare   float64 `json:"salary_share"`
	TeamOwnership float64 `json:"team_ownership"`
	TeamMinutes   float64 `json:"team_minutes"`
	MinutesAvail  float64 `json:"minutes_avail"`

	Horizons map[Horizon]*ProjectionHorizon `json:"horizons"`

	CalcVersion string `json:"calc_version"`
}

// HorizonBlock returns the metric block for a horizon, allocating it on
// first access so computation stages can fill fields incrementally.
func (p *PlayerProjection) HorizonBlock(h Horizon) *ProjectionHorizon {
	if p.Horizons == nil {
		p.Horizons = make(map[Horizon]*ProjectionHorizon, len(Horizons))
	}
	blk, ok := p.Horizons[h]
	if !ok {
		blk = &ProjectionHorizon{}
		p.Horizons[h] = blk
	}
	return blk
}

// BaseStats reads the base-stat slice of a horizon block.
func (p *PlayerProjection) BaseStats(h Horizon) BaseStats {
	blk := p.HorizonBlock(h)
	return BaseStats{
		GP:      blk.GP,
		UsgPct:  blk.UsgPct,
		FP:      blk.FP,
		Touches: blk.Touches,
		Min:     blk.Min,
		Poss:    blk.Poss,
	}
}

// SetBaseStats overwrites the base-stat slice of a horizon block, used by
// the initial merge and by the backfill cascade.
func (p *PlayerProjection) SetBaseStats(h Horizon, b BaseStats) {
	blk := p.HorizonBlock(h)
	blk.GP = b.GP
	blk.UsgPct = b.UsgPct
	blk.FP = b.FP
	blk.Touches = b.Touches
	blk.Min = b.Min
	blk.Poss = b.Poss
}

// Package export writes projection runs out as CSV for lineup tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

var header = []string{
	"player", "pos", "team", "opp", "salary", "fp_proj", "projected_value",
	"proj_mins", "ownership", "status", "game_info",
	"team_salary", "salary_share", "team_ownership", "team_minutes", "minutes_avail",
}

// WriteCSV writes rows as CSV sorted by projected fantasy points, highest
// first. Floats are written with two decimals. The input slice is not
// modified.
func WriteCSV(w io.Writer, rows []*models.PlayerProjection) error {
	sorted := make([]*models.PlayerProjection, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FPProj > sorted[j].FPProj
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, p := range sorted {
		record := []string{
			p.Player, p.Pos, p.Team, p.Opp,
			f2(p.Salary), f2(p.FPProj), f2(p.ProjectedValue),
			f2(p.ProjMins), f2(p.Ownership), p.Status, p.GameInfo,
			f2(p.TeamSalary), f2(p.SalaryShare), f2(p.TeamOwnership), f2(p.TeamMinutes), f2(p.MinutesAvail),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write export row for %s: %w", p.Player, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

func f2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

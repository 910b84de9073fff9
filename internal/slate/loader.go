// Package slate parses the daily fantasy slate CSV into the entries the
// projection pipeline runs on.
package slate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nbasharp/nba-sharp-go/internal/models"
	"github.com/nbasharp/nba-sharp-go/internal/namematch"
	"github.com/nbasharp/nba-sharp-go/internal/utils"
)

// MinProjectedMinutes is the floor below which slate rows are discarded;
// sub-rotation players carry no usable projection signal.
const MinProjectedMinutes = 15.0

// Column aliases, matched case-insensitively against the CSV header. Slate
// exports vary between sites and seasons.
var columnAliases = map[string][]string{
	"player":    {"name", "player", "player name"},
	"pos":       {"pos", "position"},
	"team":      {"team", "tm"},
	"opp":       {"opp", "opponent"},
	"salary":    {"salary", "sal"},
	"proj_mins": {"min", "minutes", "proj min", "proj minutes"},
	"ownership": {"adj own", "own", "ownership", "proj own"},
	"status":    {"status", "injury status"},
	"game_info": {"gameinfo", "game info", "game"},
}

// Loader parses slate CSVs.
type Loader struct {
	logger *logrus.Logger
}

// NewLoader creates a slate loader.
func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// Result carries the parsed slate plus the filter counts for reporting.
type Result struct {
	Entries         []models.SlateEntry
	DroppedNoSalary int
	DroppedLowMins  int
	UnmappedTeams   []string
}

// Load parses a slate CSV. Rows without a salary or with projected minutes
// under the floor are dropped; team abbreviations map to the full names the
// stats tables use, with unmapped abbreviations reported and kept blank.
func (l *Loader) Load(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read slate header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	unmapped := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read slate row: %w", err)
		}

		entry := models.SlateEntry{
			Player:   field(record, cols, "player"),
			Pos:      field(record, cols, "pos"),
			Team:     strings.ToUpper(field(record, cols, "team")),
			Opp:      strings.ToUpper(field(record, cols, "opp")),
			Status:   field(record, cols, "status"),
			GameInfo: field(record, cols, "game_info"),
		}
		if entry.Player == "" {
			continue
		}

		entry.Salary = numeric(field(record, cols, "salary"))
		if entry.Salary == 0 {
			res.DroppedNoSalary++
			continue
		}
		entry.ProjMins = numeric(field(record, cols, "proj_mins"))
		if entry.ProjMins < MinProjectedMinutes {
			res.DroppedLowMins++
			continue
		}
		entry.Ownership = numeric(field(record, cols, "ownership"))

		if full, ok := namematch.TeamFullName(entry.Team); ok {
			entry.TeamFullName = full
		} else if entry.Team != "" {
			unmapped[entry.Team] = struct{}{}
		}
		if full, ok := namematch.TeamFullName(entry.Opp); ok {
			entry.OppFullName = full
		} else if entry.Opp != "" {
			unmapped[entry.Opp] = struct{}{}
		}

		res.Entries = append(res.Entries, entry)
	}

	for abbr := range unmapped {
		res.UnmappedTeams = append(res.UnmappedTeams, abbr)
	}
	if len(res.UnmappedTeams) > 0 {
		l.logger.WithField("teams", res.UnmappedTeams).Warn("Slate team abbreviations not recognized")
	}
	l.logger.WithFields(logrus.Fields{
		"entries":           len(res.Entries),
		"dropped_no_salary": res.DroppedNoSalary,
		"dropped_low_mins":  res.DroppedLowMins,
	}).Info("Slate loaded")
	return res, nil
}

// mapColumns resolves the header into canonical column indexes. Player,
// team and salary are required; everything else is optional.
func mapColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				cols[canonical] = idx
				break
			}
		}
	}

	for _, required := range []string{"player", "team", "salary"} {
		if _, ok := cols[required]; !ok {
			return nil, utils.NewValidationErrorf("slate header missing required column %q", required)
		}
	}
	return cols, nil
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// numeric coerces a CSV cell to float64, tolerating currency symbols,
// thousands separators and percent signs. Unparseable cells read as 0.
func numeric(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

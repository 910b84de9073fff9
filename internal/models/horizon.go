package models

// Horizon identifies one of the four historical look-back windows every
// stats snapshot and projection metric is computed over.
type Horizon string

const (
	HorizonSeasonLong Horizon = "season_long"
	HorizonLast10     Horizon = "last_10"
	HorizonLast5      Horizon = "last_5"
	HorizonLast3      Horizon = "last_3"
)

// Horizons lists all horizons from longest to shortest window. Column
// suffixes and storage ordering follow this order.
var Horizons = []Horizon{HorizonSeasonLong, HorizonLast10, HorizonLast5, HorizonLast3}

// HorizonsShortestFirst is the processing order for the missing-data
// backfill cascade: a horizon with no signal borrows from the next longer one.
var HorizonsShortestFirst = []Horizon{HorizonLast3, HorizonLast5, HorizonLast10, HorizonSeasonLong}

// Key returns the short column suffix used in table and CSV column names
// (sl, l10, l5, l3).
func (h Horizon) Key() string {
	switch h {
	case HorizonSeasonLong:
		return "sl"
	case HorizonLast10:
		return "l10"
	case HorizonLast5:
		return "l5"
	case HorizonLast3:
		return "l3"
	}
	return string(h)
}

// LastNGames returns the stats-API LastNGames parameter for the horizon.
// Season-long is 0 (no window).
func (h Horizon) LastNGames() int {
	switch h {
	case HorizonLast10:
		return 10
	case HorizonLast5:
		return 5
	case HorizonLast3:
		return 3
	}
	return 0
}

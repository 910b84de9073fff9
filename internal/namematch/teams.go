package namematch

import "strings"

// TeamAbbreviations maps slate abbreviations to the full franchise names
// used as keys in the stats tables. Duplicate abbreviations exist because
// slate providers disagree (GS vs GSW, NO vs NOP).
var TeamAbbreviations = map[string]string{
	"ATL": "Atlanta Hawks",
	"BOS": "Boston Celtics",
	"BKN": "Brooklyn Nets",
	"CHA": "Charlotte Hornets",
	"CHI": "Chicago Bulls",
	"CLE": "Cleveland Cavaliers",
	"DAL": "Dallas Mavericks",
	"DEN": "Denver Nuggets",
	"DET": "Detroit Pistons",
	"GS":  "Golden State Warriors",
	"GSW": "Golden State Warriors",
	"HOU": "Houston Rockets",
	"IND": "Indiana Pacers",
	"LAC": "LA Clippers",
	"LAL": "Los Angeles Lakers",
	"MEM": "Memphis Grizzlies",
	"MIA": "Miami Heat",
	"MIL": "Milwaukee Bucks",
	"MIN": "Minnesota Timberwolves",
	"NO":  "New Orleans Pelicans",
	"NOP": "New Orleans Pelicans",
	"NY":  "New York Knicks",
	"NYK": "New York Knicks",
	"OKC": "Oklahoma City Thunder",
	"ORL": "Orlando Magic",
	"PHI": "Philadelphia 76ers",
	"PHO": "Phoenix Suns",
	"PHX": "Phoenix Suns",
	"POR": "Portland Trail Blazers",
	"SA":  "San Antonio Spurs",
	"SAS": "San Antonio Spurs",
	"SAC": "Sacramento Kings",
	"TOR": "Toronto Raptors",
	"UTA": "Utah Jazz",
	"WAS": "Washington Wizards",
}

// TeamFullName resolves a slate abbreviation to the franchise name used in
// the stats tables.
func TeamFullName(abbr string) (string, bool) {
	full, ok := TeamAbbreviations[strings.ToUpper(strings.TrimSpace(abbr))]
	return full, ok
}

// Alias variants for franchises whose schedule spelling diverges from the
// stats-table key. Keys and values are normalized names.
var teamAliasVariants = map[string][]string{
	"los angeles clippers": {"la clippers", "los angeles clippers", "lac clippers", "los angeles clipper", "la clipper"},
	"la clippers":          {"la clippers", "los angeles clippers"},
	"los angeles lakers":   {"la lakers", "los angeles lakers", "lal lakers", "los angeles laker", "la laker"},
	"la lakers":            {"la lakers", "los angeles lakers"},
	"new york knicks":      {"ny knicks", "new york knicks", "n.y. knicks"},
	"brooklyn nets":        {"bk nets", "ny nets", "brooklyn nets", "brooklyn net"},
	"golden state warriors": {"golden st warriors", "gs warriors", "gsw warriors", "golden state warriors", "golden state warrior"},
	"new orleans pelicans": {"no pelicans", "nola pelicans", "new orleans pelicans", "new orleans pelican"},
	"oklahoma city thunder": {"okc thunder", "oklahoma city thunder", "okc thunders"},
	"portland trail blazers": {"portland trailblazers", "portland blazers", "portland trail blazers", "portland trailblazer"},
	"san antonio spurs":    {"sa spurs", "san antonio spurs", "s.a. spurs"},
	"sacramento kings":     {"sac kings", "sacramento kings"},
	"dallas mavericks":     {"dallas mavs", "dal mavericks", "dallas mavericks"},
	"philadelphia 76ers":   {"philadelphia sixers", "phila 76ers", "philly 76ers", "76ers", "philadelphia 76ers"},
	"minnesota timberwolves": {"minnesota t-wolves", "minnesota wolves", "minnesota timberwolves"},
	"cleveland cavaliers":  {"cleveland cavs", "cleveland cavaliers"},
	"atlanta hawks":        {"atl hawks", "atlanta hawks"},
	"boston celtics":       {"bos celtics", "boston celtics"},
	"charlotte hornets":    {"cha hornets", "charlotte hornets"},
	"chicago bulls":        {"chi bulls", "chicago bulls"},
	"denver nuggets":       {"den nuggets", "denver nuggets"},
	"detroit pistons":      {"det pistons", "detroit pistons"},
	"houston rockets":      {"hou rockets", "houston rockets"},
	"indiana pacers":       {"ind pacers", "indiana pacers"},
	"memphis grizzlies":    {"mem grizzlies", "memphis grizzlies"},
	"miami heat":           {"mia heat", "miami heat"},
	"milwaukee bucks":      {"mil bucks", "milwaukee bucks"},
	"orlando magic":        {"orl magic", "orlando magic"},
	"phoenix suns":         {"phx suns", "phoenix suns"},
	"toronto raptors":      {"tor raptors", "toronto raptors"},
	"utah jazz":            {"uta jazz", "utah jazz"},
	"washington wizards":   {"wsh wizards", "washington wizards"},
}

// Generic city-phrase substitutions tried when a name has no alias entry.
var cityPhraseSubs = map[string][]string{
	"los angeles":   {"la", "los angeles"},
	"new york":      {"ny", "new york"},
	"san antonio":   {"sa", "san antonio"},
	"golden state":  {"gs", "golden st", "golden state"},
	"new orleans":   {"no", "nola", "new orleans"},
	"oklahoma city": {"okc", "oklahoma city"},
}

// NormalizeTeamName lowercases and collapses whitespace; team keys are
// matched on this form.
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), " "))
}

// candidateKeys expands a normalized team name into the lookup keys worth
// trying, in priority order and de-duplicated.
func candidateKeys(nameNorm string) []string {
	if variants, ok := teamAliasVariants[nameNorm]; ok {
		out := make([]string, 0, len(variants))
		seen := make(map[string]struct{}, len(variants))
		for _, v := range variants {
			norm := NormalizeTeamName(v)
			if _, dup := seen[norm]; !dup {
				seen[norm] = struct{}{}
				out = append(out, norm)
			}
		}
		return out
	}

	out := []string{nameNorm}
	seen := map[string]struct{}{nameNorm: {}}
	for phrase, variants := range cityPhraseSubs {
		if !strings.Contains(nameNorm, phrase) {
			continue
		}
		for _, v := range variants {
			norm := NormalizeTeamName(strings.ReplaceAll(nameNorm, phrase, v))
			if _, dup := seen[norm]; !dup {
				seen[norm] = struct{}{}
				out = append(out, norm)
			}
		}
	}
	return out
}

// ResolveTeam maps a schedule team name to an entry of statsMap, which is
// keyed by normalized team name. Resolution order: exact key, alias
// variants, then a unique last-token (nickname) match. The boolean result
// distinguishes resolution failure from a match on an empty record so the
// caller can emit null metrics instead of silent zeros.
func ResolveTeam[T any](statsMap map[string]T, scheduleName string) (T, string, bool) {
	var zero T
	norm := NormalizeTeamName(scheduleName)
	if rec, ok := statsMap[norm]; ok {
		return rec, norm, true
	}

	for _, cand := range candidateKeys(norm) {
		if rec, ok := statsMap[cand]; ok {
			return rec, cand, true
		}
	}

	// Nickname fallback: accept only when exactly one key carries the token.
	parts := strings.Fields(norm)
	if len(parts) > 0 {
		nickname := parts[len(parts)-1]
		var matches []string
		for key := range statsMap {
			for _, tok := range strings.Fields(key) {
				if tok == nickname {
					matches = append(matches, key)
					break
				}
			}
		}
		if len(matches) == 1 {
			return statsMap[matches[0]], matches[0], true
		}
	}

	return zero, "", false
}

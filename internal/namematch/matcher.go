// Package namematch resolves player and team name strings across the
// heterogeneous sources the pipeline consumes: the daily slate, the game
// schedule and the historical stats tables all spell names differently.
package namematch

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum similarity score a candidate must reach
// to be accepted as a match. Callers working with noisier sources may lower
// it (the slate mapper uses 0.80).
const DefaultThreshold = 0.85

// Generational suffixes and the variants each canonicalizes from. The table
// is immutable static configuration; the compiled patterns below are built
// once at package init.
var suffixVariations = map[string][]string{
	"jr": {"jr", "junior"},
	"sr": {"sr", "senior"},
	"ii": {"ii", "2", "the second"},
	"iii": {"iii", "3", "the third"},
	"iv": {"iv", "4", "the fourth"},
	"v": {"v", "5", "the fifth"},
}

type suffixRule struct {
	re       *regexp.Regexp
	standard string
}

var suffixRules []suffixRule

func init() {
	for standard, variants := range suffixVariations {
		for _, v := range variants {
			suffixRules = append(suffixRules, suffixRule{
				re:       regexp.MustCompile(`\b` + regexp.QuoteMeta(v) + `\b`),
				standard: standard,
			})
		}
	}
}

// NormalizeName lowercases, collapses whitespace, strips periods and
// apostrophes, turns hyphens into spaces and canonicalizes generational
// suffixes so "P.J. Washington Jr." and "PJ Washington Junior" compare equal.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.Join(strings.Fields(name), " ")
	for _, rule := range suffixRules {
		name = rule.re.ReplaceAllString(name, rule.standard)
	}
	return strings.Join(strings.Fields(name), " ")
}

// StripSuffix removes any generational suffix from a normalized name.
func StripSuffix(name string) string {
	normalized := NormalizeName(name)
	for _, rule := range suffixRules {
		normalized = rule.re.ReplaceAllString(normalized, "")
	}
	return strings.TrimSpace(strings.Join(strings.Fields(normalized), " "))
}

// SimilarityScore scores two names in [0, 1]. Exact normalized match is
// 1.0, equality after suffix stripping is 0.95, anything else falls through
// to a character-level sequence ratio (difflib, same algorithm family as a
// longest-common-subsequence ratio; deliberately not edit distance).
func SimilarityScore(name1, name2 string) float64 {
	norm1 := NormalizeName(name1)
	norm2 := NormalizeName(name2)
	if norm1 == "" || norm2 == "" {
		return 0
	}
	if norm1 == norm2 {
		return 1.0
	}

	stripped1 := StripSuffix(name1)
	stripped2 := StripSuffix(name2)
	if stripped1 != "" && stripped1 == stripped2 {
		return 0.95
	}

	m := difflib.NewMatcher(strings.Split(norm1, ""), strings.Split(norm2, ""))
	return m.Ratio()
}

// FindBestMatch returns the candidate with the strictly highest similarity
// to target, provided it clears the threshold. Ties keep the first
// candidate encountered, which makes the result stable for a fixed input
// order without implying any deliberate priority.
func FindBestMatch(target string, candidates []string, threshold float64) (string, float64, bool) {
	if target == "" || len(candidates) == 0 {
		return "", 0, false
	}

	var best string
	var bestScore float64
	for _, candidate := range candidates {
		if score := SimilarityScore(target, candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore >= threshold {
		return best, bestScore, true
	}
	return "", 0, false
}

// BuildNameMap maps each source name to its best target-list match. Source
// names with no candidate at or above the threshold are omitted; the caller
// treats those rows as having no historical data.
func BuildNameMap(sourceNames, targetNames []string, threshold float64) map[string]string {
	nameMap := make(map[string]string, len(sourceNames))
	for _, source := range sourceNames {
		if match, _, ok := FindBestMatch(source, targetNames, threshold); ok {
			nameMap[source] = match
		}
	}
	return nameMap
}

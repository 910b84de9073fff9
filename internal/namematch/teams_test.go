package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamFullName(t *testing.T) {
	full, ok := TeamFullName("GSW")
	require.True(t, ok)
	assert.Equal(t, "Golden State Warriors", full)

	full, ok = TeamFullName("gs")
	require.True(t, ok)
	assert.Equal(t, "Golden State Warriors", full)

	_, ok = TeamFullName("XYZ")
	assert.False(t, ok)
}

func TestNormalizeTeamName(t *testing.T) {
	assert.Equal(t, "la clippers", NormalizeTeamName("  LA   Clippers "))
	assert.Equal(t, "boston celtics", NormalizeTeamName("Boston Celtics"))
}

func statsMapFor(keys ...string) map[string]int {
	m := make(map[string]int, len(keys))
	for i, k := range keys {
		m[NormalizeTeamName(k)] = i + 1
	}
	return m
}

func TestResolveTeamExact(t *testing.T) {
	m := statsMapFor("Boston Celtics", "Miami Heat")

	rec, key, ok := ResolveTeam(m, "Boston Celtics")
	require.True(t, ok)
	assert.Equal(t, 1, rec)
	assert.Equal(t, "boston celtics", key)
}

func TestResolveTeamAliasVariant(t *testing.T) {
	// Schedule says "Los Angeles Clippers" but the stats table keys on
	// "LA Clippers".
	m := statsMapFor("LA Clippers", "Los Angeles Lakers")

	rec, key, ok := ResolveTeam(m, "Los Angeles Clippers")
	require.True(t, ok)
	assert.Equal(t, 1, rec)
	assert.Equal(t, "la clippers", key)
}

func TestResolveTeamGenericPhraseSubstitution(t *testing.T) {
	m := map[string]string{"okc thunder": "rec"}

	rec, key, ok := ResolveTeam(m, "Oklahoma City Thunder")
	require.True(t, ok)
	assert.Equal(t, "rec", rec)
	assert.Equal(t, "okc thunder", key)
}

func TestResolveTeamNicknameFallback(t *testing.T) {
	m := statsMapFor("Utah Jazz", "Miami Heat")

	rec, key, ok := ResolveTeam(m, "The Jazz")
	require.True(t, ok)
	assert.Equal(t, 1, rec)
	assert.Equal(t, "utah jazz", key)
}

func TestResolveTeamNicknameAmbiguous(t *testing.T) {
	// Two keys carry the "sox" token; ambiguity must fail resolution.
	m := statsMapFor("Chicago White Sox", "Boston Red Sox")

	_, _, ok := ResolveTeam(m, "Sox")
	assert.False(t, ok)
}

func TestResolveTeamFailureIsExplicit(t *testing.T) {
	m := statsMapFor("Boston Celtics")

	rec, key, ok := ResolveTeam(m, "Springfield Tip-Offs")
	assert.False(t, ok)
	assert.Zero(t, rec)
	assert.Empty(t, key)
}

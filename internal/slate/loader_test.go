package slate

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader() *Loader {
	log := logrus.New()
	log.SetOutput(discard{})
	return NewLoader(log)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

const slateCSV = `Name,Pos,Team,Opp,Salary,Min,Adj Own,Status,gameInfo
Jayson Tatum,F,BOS,MIA,"$10,500",36.5,25.3,,BOS@MIA 7:30PM
Bam Adebayo,C,MIA,BOS,8500,34.0,18.1,GTD,BOS@MIA 7:30PM
Deep Bench Guy,G,BOS,MIA,3000,8.0,0.1,,BOS@MIA 7:30PM
No Salary Guy,G,MIA,BOS,,22.0,1.0,,BOS@MIA 7:30PM
`

func TestLoadParsesAndFilters(t *testing.T) {
	res, err := testLoader().Load(strings.NewReader(slateCSV))
	require.NoError(t, err)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, 1, res.DroppedLowMins)
	assert.Equal(t, 1, res.DroppedNoSalary)
	assert.Empty(t, res.UnmappedTeams)

	tatum := res.Entries[0]
	assert.Equal(t, "Jayson Tatum", tatum.Player)
	assert.Equal(t, "BOS", tatum.Team)
	assert.Equal(t, "Boston Celtics", tatum.TeamFullName)
	assert.Equal(t, "Miami Heat", tatum.OppFullName)
	assert.Equal(t, 10500.0, tatum.Salary)
	assert.Equal(t, 36.5, tatum.ProjMins)
	assert.Equal(t, 25.3, tatum.Ownership)

	bam := res.Entries[1]
	assert.Equal(t, "GTD", bam.Status)
}

func TestLoadHeaderAliasesCaseInsensitive(t *testing.T) {
	csv := "PLAYER NAME,POSITION,TM,OPPONENT,SAL,MINUTES,OWN,INJURY STATUS\n" +
		"Bam Adebayo,C,mia,bos,8500,34.0,18.1,\n"

	res, err := testLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "MIA", res.Entries[0].Team)
	assert.Equal(t, "Miami Heat", res.Entries[0].TeamFullName)
}

func TestLoadUnmappedTeamReported(t *testing.T) {
	csv := "Name,Team,Opp,Salary,Min\nSomeone,XYZ,BOS,5000,30\n"

	res, err := testLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Empty(t, res.Entries[0].TeamFullName)
	assert.Equal(t, []string{"XYZ"}, res.UnmappedTeams)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	csv := "Name,Pos,Opp,Salary\nSomeone,G,BOS,5000\n"

	_, err := testLoader().Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team")
}

func TestLoadExactMinutesFloorKept(t *testing.T) {
	csv := "Name,Team,Opp,Salary,Min\nFringe Player,BOS,MIA,4000,15.0\n"

	res, err := testLoader().Load(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Zero(t, res.DroppedLowMins)
}

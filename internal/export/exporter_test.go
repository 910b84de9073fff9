package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbasharp/nba-sharp-go/internal/models"
)

func TestWriteCSVSortsByProjection(t *testing.T) {
	rows := []*models.PlayerProjection{
		{Player: "Role Player", Team: "BOS", Salary: 4000, FPProj: 21.456},
		{Player: "Star Player", Team: "MIA", Salary: 10000, FPProj: 52.104, ProjectedValue: 5.2104},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "player", records[0][0])
	assert.Equal(t, "Star Player", records[1][0])
	assert.Equal(t, "Role Player", records[2][0])

	// Two-decimal formatting throughout.
	assert.Equal(t, "52.10", records[1][5])
	assert.Equal(t, "5.21", records[1][6])
	assert.Equal(t, "21.46", records[2][5])

	// Input order untouched.
	assert.Equal(t, "Role Player", rows[0].Player)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() HistoryParams {
	return HistoryParams{
		Seed:      7,
		Sectors:   10,
		Days:      60,
		End:       time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		RingCount: 10,
		FillRate:  0.5,
		Drift:     0.5,
	}
}

func TestGenerateHistoryDeterministic(t *testing.T) {
	a := generateHistory(testParams())
	b := generateHistory(testParams())
	assert.Equal(t, a.Sectors, b.Sectors)
	assert.Equal(t, a.ScoresByDate, b.ScoresByDate)

	p := testParams()
	p.Seed = 8
	c := generateHistory(p)
	assert.NotEqual(t, a.Sectors[0].ID, c.Sectors[0].ID)
}

func TestGenerateHistoryShape(t *testing.T) {
	snap := generateHistory(testParams())
	require.NoError(t, snap.Validate(10))
	require.Len(t, snap.Sectors, 10)
	assert.Equal(t, "Health", snap.Sectors[0].Name)
	assert.Equal(t, "Sector 9", snap.Sectors[8].Name)

	dates := snap.ScoresByDate.Dates()
	require.NotEmpty(t, dates)
	assert.GreaterOrEqual(t, dates[0], "2026-08-20")
	assert.LessOrEqual(t, dates[len(dates)-1], "2026-10-18")
	for _, day := range snap.ScoresByDate {
		for _, v := range day {
			assert.True(t, v >= 1 && v <= 10, "level %d", v)
		}
	}
}

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routinely/internal/models"
)

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{0, 0},
		{0.01, 1},
		{0.3, 1},
		{0.31, 2},
		{0.6, 2},
		{0.75, 3},
		{0.9, 3},
		{0.91, 4},
		{1, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntensityLevel(tt.rate), "rate %v", tt.rate)
	}
}

func TestHeatmap(t *testing.T) {
	tasks, habits := fixture()
	cells, err := Heatmap(NewIndex(tasks, habits), "2024-06-12", 365)
	require.NoError(t, err)
	require.Len(t, cells, 365)
	assert.Equal(t, "2023-06-14", cells[0].Date)
	assert.Equal(t, "2024-06-12", cells[364].Date)
	assert.Equal(t, 2, cells[364].Level)
	assert.Equal(t, 4, cells[363].Level)
	assert.Equal(t, 0, cells[0].Level)

	empty, err := Heatmap(NewIndex(nil, nil), "2024-06-12", 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = Heatmap(NewIndex(nil, nil), "bad", 7)
	assert.Error(t, err)
}

func TestBuildMonthGrid(t *testing.T) {
	tasks, habits := fixture()
	grid, err := BuildMonthGrid(NewIndex(tasks, habits), 2024, time.June, "2024-06-12")
	require.NoError(t, err)

	// June 1st 2024 is a Saturday: five Monday-first padding cells.
	assert.Equal(t, 5, grid.Leading)
	require.Len(t, grid.Days, 30)
	assert.Equal(t, "2024-06-11", grid.Days[10].Date)
	assert.True(t, grid.Days[10].AllDone)
	assert.True(t, grid.Days[11].IsToday)
	assert.False(t, grid.Days[11].AllDone)

	weeks := grid.Weeks()
	assert.Len(t, weeks, 5)
	assert.Empty(t, weeks[0][0].Date)
	assert.Equal(t, 1, weeks[0][5].Day)

	_, err = BuildMonthGrid(NewIndex(nil, nil), 2024, 13, "")
	assert.Error(t, err)
}

func TestStreak(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Recurrence: models.DailyRecurrence(), StartDate: "2024-06-01",
			CompletedDates: []string{"2024-06-03", "2024-06-05", "2024-06-06", "2024-06-07"}},
	}
	idx := NewIndex(nil, habits)
	assert.Equal(t, 3, Streak(idx, "2024-06-07"))
	assert.Equal(t, 0, Streak(idx, "2024-06-04"))
	assert.Equal(t, 0, Streak(NewIndex(nil, nil), "2024-06-07"))
}

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

func habit(start string, rec models.Recurrence, done ...string) models.Habit {
	return models.Habit{
		ID:             "h-" + start,
		Title:          "habit",
		Category:       "Routine",
		Recurrence:     rec,
		StartDate:      start,
		CompletedDates: done,
	}
}

func TestIsDue_NeverBeforeStart(t *testing.T) {
	rules := []models.Recurrence{
		models.DailyRecurrence(),
		models.EveryNDays(3),
		models.WeeklyQuota(2),
		models.NoRecurrence(),
	}
	for _, rec := range rules {
		h := habit("2024-06-10", rec)
		for i := 1; i <= 40; i++ {
			d, _ := utils.AddDays(h.StartDate, -i)
			assert.False(t, IsDue(h, d), "%s due on %s", rec, d)
		}
	}
}

func TestIsDue_Daily(t *testing.T) {
	h := habit("2024-06-10", models.DailyRecurrence())
	for i := 0; i < 60; i++ {
		d, _ := utils.AddDays(h.StartDate, i)
		assert.True(t, IsDue(h, d), d)
	}
}

func TestIsDue_EveryNDays(t *testing.T) {
	for _, n := range []int{2, 3, 7} {
		h := habit("2024-02-27", models.EveryNDays(n))
		start := h.StartDate
		plusOne, _ := utils.AddDays(start, 1)
		plusN, _ := utils.AddDays(start, n)
		plus2N, _ := utils.AddDays(start, 2*n)

		assert.True(t, IsDue(h, start), "n=%d start", n)
		assert.False(t, IsDue(h, plusOne), "n=%d start+1", n)
		assert.True(t, IsDue(h, plusN), "n=%d start+n", n)
		assert.True(t, IsDue(h, plus2N), "n=%d start+2n", n)
	}
}

func TestIsDue_EveryNDaysLongSpan(t *testing.T) {
	h := habit("1700-01-01", models.EveryNDays(2))
	// 118704 days separate 1700-01-01 and 2025-01-01.
	assert.True(t, IsDue(h, "2025-01-01"))
	assert.False(t, IsDue(h, "2025-01-02"))
	assert.True(t, IsDue(h, "2025-01-03"))
	assert.False(t, IsDue(h, "2025-01-04"))
}

func TestIsDue_IntervalTooSmallActsDaily(t *testing.T) {
	// Hand-built values bypass the constructor; the evaluator must still not
	// divide by zero.
	for _, n := range []int{0, 1, -4} {
		h := habit("2024-06-10", models.Recurrence{Type: constants.RecurrenceInterval, Value: n})
		assert.NotPanics(t, func() { IsDue(h, "2024-06-13") })
		assert.True(t, IsDue(h, "2024-06-13"), "n=%d", n)
	}
}

func TestIsDue_WeeklyQuotaAlwaysDueOnceStarted(t *testing.T) {
	h := habit("2024-06-12", models.WeeklyQuota(3), "2024-06-12", "2024-06-13", "2024-06-14")
	assert.False(t, IsDue(h, "2024-06-11"))
	assert.True(t, IsDue(h, "2024-06-12"))
	assert.True(t, IsDue(h, "2024-06-15"), "quota met, still due")
}

func TestIsDue_NoneAndMalformed(t *testing.T) {
	assert.False(t, IsDue(habit("2024-06-10", models.NoRecurrence()), "2024-06-10"))
	assert.False(t, IsDue(habit("not-a-date", models.DailyRecurrence()), "2024-06-10"))
	assert.False(t, IsDue(habit("2024-06-10", models.DailyRecurrence()), "2024/06/11"))
	assert.False(t, IsDue(habit("2024-06-10", models.Recurrence{Type: "hourly"}), "2024-06-11"))
}

func TestDueHabits(t *testing.T) {
	habits := []models.Habit{
		habit("2024-06-10", models.DailyRecurrence()),
		habit("2024-06-11", models.EveryNDays(2)),
		habit("2024-06-20", models.DailyRecurrence()),
	}
	due := DueHabits(habits, "2024-06-13")
	assert.Len(t, due, 2)
	assert.Empty(t, DueHabits(habits, "2024-06-01"))
}

// Package stats turns task and habit snapshots into completion figures for
// single days, calendars and summaries. Every function is pure.
//
// Habits are evaluated against their current rule for any past date on or
// after their start date. There is no record of a habit's rule history, so
// editing a habit's recurrence rewrites its past.
package stats

import (
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/scheduler"
)

// Completion summarizes one date. Rate is zero when nothing is due.
type Completion struct {
	Date           string  `json:"date"`
	TotalDue       int     `json:"totalDue"`
	TotalCompleted int     `json:"totalCompleted"`
	Rate           float64 `json:"rate"`
}

// AllDone reports whether something was due and all of it was completed.
func (c Completion) AllDone() bool {
	return c.TotalDue > 0 && c.TotalCompleted == c.TotalDue
}

// Percent is Rate rounded to a whole percent.
func (c Completion) Percent() int {
	return int(c.Rate*100 + 0.5)
}

func newCompletion(date string, due, completed int) Completion {
	c := Completion{Date: date, TotalDue: due, TotalCompleted: completed}
	if due > 0 {
		c.Rate = float64(completed) / float64(due)
	}
	return c
}

// AggregateCompletion counts the habits due on date and the tasks scheduled
// on it, and how many of those were completed.
func AggregateCompletion(tasks []models.Task, habits []models.Habit, date string) Completion {
	dueHabits := scheduler.DueHabits(habits, date)
	due, completed := len(dueHabits), 0
	for _, h := range dueHabits {
		if h.IsCompletedOn(date) {
			completed++
		}
	}
	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		due++
		if t.Completed {
			completed++
		}
	}
	return newCompletion(date, due, completed)
}

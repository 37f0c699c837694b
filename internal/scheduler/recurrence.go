package scheduler

import (
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// IsDue reports whether h is scheduled on date. A habit is never due before
// its start date. Malformed keys are never due.
func IsDue(h models.Habit, date string) bool {
	if !utils.IsDateKey(date) || !utils.IsDateKey(h.StartDate) {
		return false
	}
	if date < h.StartDate {
		return false
	}

	rec := h.Recurrence
	switch rec.Type {
	case constants.RecurrenceDaily:
		return true
	case constants.RecurrenceInterval:
		if rec.Value <= 1 {
			return true
		}
		days, err := utils.DaysBetween(h.StartDate, date)
		if err != nil {
			return false
		}
		return days%rec.Value == 0
	case constants.RecurrenceWeekly:
		// The quota is judged over the week; each day is a chance to count.
		return true
	default:
		return false
	}
}

// DueHabits returns the habits scheduled on date, in input order.
func DueHabits(habits []models.Habit, date string) []models.Habit {
	var due []models.Habit
	for _, h := range habits {
		if IsDue(h, date) {
			due = append(due, h)
		}
	}
	return due
}

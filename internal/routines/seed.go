package routines

import (
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
)

const seedStartDate = "2025-01-01"

// DefaultHabits returns the first-run habits.
func DefaultHabits() []models.Habit {
	return []models.Habit{
		{
			ID:             "h1",
			Title:          "Morning stretch",
			Category:       "Exercise",
			Recurrence:     models.DailyRecurrence(),
			StartDate:      seedStartDate,
			CompletedDates: []string{},
		},
		{
			ID:             "h2",
			Title:          "Read for 30 minutes",
			Category:       "Study",
			Recurrence:     models.DailyRecurrence(),
			StartDate:      seedStartDate,
			CompletedDates: []string{},
			Quantity:       30,
			Unit:           "min",
		},
		{
			ID:             "h3",
			Title:          "Run 3x a week",
			Category:       "Exercise",
			Recurrence:     models.WeeklyQuota(3),
			StartDate:      seedStartDate,
			CompletedDates: []string{},
			Quantity:       5,
			Unit:           "km",
		},
	}
}

// Seed writes the default habits into an empty store. It reports whether
// anything was written.
func (s *Service) Seed() (bool, error) {
	tasks, habits, err := s.items()
	if err != nil {
		return false, err
	}
	if len(tasks) > 0 || len(habits) > 0 {
		return false, nil
	}
	if err := s.store.SaveHabits(DefaultHabits()); err != nil {
		return false, err
	}
	logger.Info("Seeded default habits")
	return true, nil
}

package routines

import (
	"time"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/stats"
	"github.com/julianstephens/routinely/internal/utils"
)

// Completion returns the aggregate completion for date (today when empty).
func (s *Service) Completion(date string) (stats.Completion, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return stats.Completion{}, err
	}
	tasks, habits, err := s.items()
	if err != nil {
		return stats.Completion{}, err
	}
	return stats.AggregateCompletion(tasks, habits, date), nil
}

func (s *Service) Summary() (stats.Summary, error) {
	tasks, habits, err := s.items()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(tasks, habits, s.Today())
}

// Heatmap returns `days` cells ending today.
func (s *Service) Heatmap(days int) ([]stats.HeatmapCell, error) {
	tasks, habits, err := s.items()
	if err != nil {
		return nil, err
	}
	return stats.Heatmap(stats.NewIndex(tasks, habits), s.Today(), days)
}

// MonthGrid returns the calendar page for year and month. Zero values mean
// the current month.
func (s *Service) MonthGrid(year int, month time.Month) (stats.MonthGrid, error) {
	now := s.clock.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	tasks, habits, err := s.items()
	if err != nil {
		return stats.MonthGrid{}, err
	}
	return stats.BuildMonthGrid(stats.NewIndex(tasks, habits), year, month, utils.ToDateKey(now))
}

func (s *Service) Streak() (int, error) {
	tasks, habits, err := s.items()
	if err != nil {
		return 0, err
	}
	return stats.Streak(stats.NewIndex(tasks, habits), s.Today()), nil
}

// Upcoming returns incomplete tasks dated after today. A limit of zero
// returns all of them.
func (s *Service) Upcoming(limit int) ([]models.Task, error) {
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return nil, err
	}
	return stats.UpcomingTasks(tasks, s.Today(), limit), nil
}

func (s *Service) items() ([]models.Task, []models.Habit, error) {
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return nil, nil, err
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return nil, nil, err
	}
	return tasks, habits, nil
}

package routines

import (
	"slices"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/exercise"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// ExerciseDay is the exercise tab's view of one date.
type ExerciseDay struct {
	Date    string                  `json:"date"`
	Minutes int                     `json:"minutes"`
	Records []models.ExerciseRecord `json:"records"`
}

// LogExercise records a workout. Empty Date means today and empty Time means
// the current clock time.
func (s *Service) LogExercise(in exercise.Input) (models.ExerciseRecord, error) {
	now := s.clock.Now()
	date, err := s.ResolveDate(in.Date)
	if err != nil {
		return models.ExerciseRecord{}, err
	}
	in.Date = date
	if in.Time == "" {
		in.Time = now.Format("15:04")
	}
	rec, err := exercise.Build(in, now)
	if err != nil {
		return models.ExerciseRecord{}, err
	}
	records, err := s.store.LoadExercise()
	if err != nil {
		return models.ExerciseRecord{}, err
	}
	if err := s.store.SaveExercise(append(records, rec)); err != nil {
		return models.ExerciseRecord{}, err
	}
	logger.Debug("Exercise logged", "kind", rec.Kind, "date", rec.Date)
	return rec, nil
}

func (s *Service) DeleteExercise(id string) error {
	records, err := s.store.LoadExercise()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(records, func(r models.ExerciseRecord) bool { return r.ID == id })
	if i < 0 {
		return notFound("exercise record", id)
	}
	return s.store.SaveExercise(slices.Delete(records, i, i+1))
}

// ExerciseOn returns the records of date (today when empty), newest first.
func (s *Service) ExerciseOn(date string) (ExerciseDay, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return ExerciseDay{}, err
	}
	records, err := s.store.LoadExercise()
	if err != nil {
		return ExerciseDay{}, err
	}
	return ExerciseDay{
		Date:    date,
		Minutes: exercise.TotalMinutes(records, date),
		Records: exercise.OnDate(records, date),
	}, nil
}

func (s *Service) ExerciseToday() (ExerciseDay, error) {
	return s.ExerciseOn("")
}

// ExerciseWeek returns timed minutes for the seven days ending today.
func (s *Service) ExerciseWeek() ([]exercise.DayMinutes, error) {
	records, err := s.store.LoadExercise()
	if err != nil {
		return nil, err
	}
	return exercise.WeekChart(records, s.Today())
}

// ExerciseWeekKinds counts workouts per kind over the same seven days as
// ExerciseWeek, untimed ones included.
func (s *Service) ExerciseWeekKinds() (map[constants.ExerciseKind]int, error) {
	records, err := s.store.LoadExercise()
	if err != nil {
		return nil, err
	}
	end := s.Today()
	start, err := utils.AddDays(end, -(constants.WeeklyChartDays - 1))
	if err != nil {
		return nil, err
	}
	week := slices.DeleteFunc(records, func(r models.ExerciseRecord) bool {
		return r.Date < start || r.Date > end
	})
	return exercise.ByKind(week), nil
}

// ExerciseHistory returns every record, newest first.
func (s *Service) ExerciseHistory() ([]models.ExerciseRecord, error) {
	records, err := s.store.LoadExercise()
	if err != nil {
		return nil, err
	}
	exercise.SortNewestFirst(records)
	return records, nil
}

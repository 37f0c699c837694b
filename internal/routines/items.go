package routines

import (
	"fmt"
	"slices"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/scheduler"
	"github.com/julianstephens/routinely/internal/utils"
)

// TaskInput holds the fields of a new task. Empty Date means today and empty
// Category means the default category from settings.
type TaskInput struct {
	Title    string
	Category string
	Date     string
	Quantity float64
	Unit     string
}

// HabitInput holds the fields of a new habit. Empty StartDate means today.
type HabitInput struct {
	Title      string
	Category   string
	StartDate  string
	Recurrence models.Recurrence
	Quantity   float64
	Unit       string
}

// ToggleResult reports the state of an item after a toggle.
type ToggleResult struct {
	ID        string             `json:"id"`
	Kind      constants.ItemKind `json:"kind"`
	Date      string             `json:"date"`
	Completed bool               `json:"isCompleted"`
}

func (s *Service) Tasks() ([]models.Task, error) {
	return s.store.LoadTasks()
}

func (s *Service) Habits() ([]models.Habit, error) {
	return s.store.LoadHabits()
}

func (s *Service) AddTask(in TaskInput) (models.Task, error) {
	date, err := s.ResolveDate(in.Date)
	if err != nil {
		return models.Task{}, err
	}
	category := in.Category
	if category == "" {
		category = s.defaultCategory()
	}

	task, err := models.NewTask(in.Title, category, date)
	if err != nil {
		return models.Task{}, err
	}
	task.Quantity = in.Quantity
	task.Unit = in.Unit

	tasks, err := s.store.LoadTasks()
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.SaveTasks(append(tasks, task)); err != nil {
		return models.Task{}, err
	}
	s.warnUnknownCategory(category)
	logger.Debug("Task added", "id", task.ID, "date", task.Date)
	return task, nil
}

func (s *Service) EditTask(id string, e models.ItemEdit) (models.Task, error) {
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return models.Task{}, err
	}
	i, ok := models.FindTask(tasks, id)
	if !ok {
		return models.Task{}, notFound("task", id)
	}
	if err := tasks[i].Edit(e); err != nil {
		return models.Task{}, err
	}
	if err := s.store.SaveTasks(tasks); err != nil {
		return models.Task{}, err
	}
	s.warnUnknownCategory(tasks[i].Category)
	return tasks[i], nil
}

func (s *Service) DeleteTask(id string) error {
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return err
	}
	i, ok := models.FindTask(tasks, id)
	if !ok {
		return notFound("task", id)
	}
	return s.store.SaveTasks(slices.Delete(tasks, i, i+1))
}

func (s *Service) AddHabit(in HabitInput) (models.Habit, error) {
	start, err := s.ResolveDate(in.StartDate)
	if err != nil {
		return models.Habit{}, err
	}
	category := in.Category
	if category == "" {
		category = s.defaultCategory()
	}

	habit, err := models.NewHabit(in.Title, category, start, in.Recurrence)
	if err != nil {
		return models.Habit{}, err
	}
	habit.Quantity = in.Quantity
	habit.Unit = in.Unit

	habits, err := s.store.LoadHabits()
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.store.SaveHabits(append(habits, habit)); err != nil {
		return models.Habit{}, err
	}
	s.warnUnknownCategory(category)
	logger.Debug("Habit added", "id", habit.ID, "recurrence", habit.Recurrence.String())
	return habit, nil
}

func (s *Service) EditHabit(id string, e models.ItemEdit) (models.Habit, error) {
	habits, err := s.store.LoadHabits()
	if err != nil {
		return models.Habit{}, err
	}
	i, ok := models.FindHabit(habits, id)
	if !ok {
		return models.Habit{}, notFound("habit", id)
	}
	if err := habits[i].Edit(e); err != nil {
		return models.Habit{}, err
	}
	if err := s.store.SaveHabits(habits); err != nil {
		return models.Habit{}, err
	}
	s.warnUnknownCategory(habits[i].Category)
	return habits[i], nil
}

func (s *Service) DeleteHabit(id string) error {
	habits, err := s.store.LoadHabits()
	if err != nil {
		return err
	}
	i, ok := models.FindHabit(habits, id)
	if !ok {
		return notFound("habit", id)
	}
	return s.store.SaveHabits(slices.Delete(habits, i, i+1))
}

// Toggle flips the completion of the task or habit with id. For a habit the
// completion is recorded against date (today when empty); for a task the
// date is ignored and the task's own flag flips.
func (s *Service) Toggle(id, date string) (ToggleResult, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return ToggleResult{}, err
	}

	habits, err := s.store.LoadHabits()
	if err != nil {
		return ToggleResult{}, err
	}
	if i, ok := models.FindHabit(habits, id); ok {
		if err := habits[i].Toggle(date); err != nil {
			return ToggleResult{}, err
		}
		if err := s.store.SaveHabits(habits); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{ID: id, Kind: constants.ItemHabit, Date: date, Completed: habits[i].IsCompletedOn(date)}, nil
	}

	tasks, err := s.store.LoadTasks()
	if err != nil {
		return ToggleResult{}, err
	}
	if i, ok := models.FindTask(tasks, id); ok {
		tasks[i].Toggle()
		if err := s.store.SaveTasks(tasks); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{ID: id, Kind: constants.ItemTask, Date: tasks[i].Date, Completed: tasks[i].Completed}, nil
	}

	return ToggleResult{}, notFound("item", id)
}

// ConvertToTask replaces the habit with a one-off task on date (today when
// empty). The habit's recurrence and completion log are dropped.
func (s *Service) ConvertToTask(id, date string) (models.Task, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return models.Task{}, err
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return models.Task{}, err
	}
	i, ok := models.FindHabit(habits, id)
	if !ok {
		return models.Task{}, notFound("habit", id)
	}
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return models.Task{}, err
	}

	task := models.HabitToTask(habits[i], date)
	// The two saves are separate writes. The new item goes first and is
	// undone if removing the old one fails, so the item never vanishes or
	// shows up twice.
	if err := s.store.SaveTasks(append(tasks, task)); err != nil {
		return models.Task{}, err
	}
	if err := s.store.SaveHabits(slices.Delete(habits, i, i+1)); err != nil {
		return models.Task{}, s.undoConvert(err, func() error { return s.store.SaveTasks(tasks) })
	}
	logger.Info("Habit converted to task", "id", id, "date", date)
	return task, nil
}

// ConvertToHabit replaces the task with a habit starting on the task's date.
func (s *Service) ConvertToHabit(id string, rec models.Recurrence) (models.Habit, error) {
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return models.Habit{}, err
	}
	i, ok := models.FindTask(tasks, id)
	if !ok {
		return models.Habit{}, notFound("task", id)
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.TaskToHabit(tasks[i], rec)
	if err := s.store.SaveHabits(append(habits, habit)); err != nil {
		return models.Habit{}, err
	}
	if err := s.store.SaveTasks(slices.Delete(tasks, i, i+1)); err != nil {
		return models.Habit{}, s.undoConvert(err, func() error { return s.store.SaveHabits(habits) })
	}
	logger.Info("Task converted to habit", "id", id, "recurrence", habit.Recurrence.String())
	return habit, nil
}

// undoConvert restores the collection written first after the second write
// of a conversion failed.
func (s *Service) undoConvert(cause error, restore func() error) error {
	if err := restore(); err != nil {
		logger.Error("Failed to undo partial conversion", "error", err)
		return fmt.Errorf("%w (undo also failed: %v)", cause, err)
	}
	return cause
}

// Plan returns the due list for date (today when empty).
func (s *Service) Plan(date string) (scheduler.DayPlan, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return scheduler.DayPlan{}, err
	}
	tasks, err := s.store.LoadTasks()
	if err != nil {
		return scheduler.DayPlan{}, err
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return scheduler.DayPlan{}, err
	}
	return scheduler.PlanDay(date, tasks, habits)
}

// Quota returns the weekly progress of a habit for the week holding date.
func (s *Service) Quota(id, date string) (scheduler.QuotaProgress, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return scheduler.QuotaProgress{}, err
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return scheduler.QuotaProgress{}, err
	}
	i, ok := models.FindHabit(habits, id)
	if !ok {
		return scheduler.QuotaProgress{}, notFound("habit", id)
	}
	return scheduler.WeeklyQuotaProgress(habits[i], date), nil
}

// HabitWeek is one habit's completion row for a Monday-Sunday week.
type HabitWeek struct {
	Habit models.Habit             `json:"habit"`
	Days  []string                 `json:"days"`
	Done  []bool                   `json:"done"`
	Due   []bool                   `json:"due"`
	Quota *scheduler.QuotaProgress `json:"quota,omitempty"`
}

// HabitLog returns the week holding date for every habit.
func (s *Service) HabitLog(date string) ([]HabitWeek, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	monday, sunday, err := utils.WeekBounds(date)
	if err != nil {
		return nil, err
	}
	days, err := utils.DateRange(monday, sunday)
	if err != nil {
		return nil, err
	}
	habits, err := s.store.LoadHabits()
	if err != nil {
		return nil, err
	}

	out := make([]HabitWeek, 0, len(habits))
	for _, h := range habits {
		row := HabitWeek{Habit: h, Days: days}
		for _, d := range days {
			row.Done = append(row.Done, d >= h.StartDate && h.IsCompletedOn(d))
			row.Due = append(row.Due, scheduler.IsDue(h, d))
		}
		if h.Recurrence.IsWeeklyQuota() {
			q := scheduler.WeeklyQuotaProgress(h, date)
			row.Quota = &q
		}
		out = append(out, row)
	}
	return out, nil
}

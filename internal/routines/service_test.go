package routines

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/exercise"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

// Wednesday 2025-06-11 09:30 UTC.
var testNow = time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "routinely.json"))
	require.NoError(t, store.Init())
	return New(store, utils.FixedClock{At: testNow})
}

func TestAddTask_Defaults(t *testing.T) {
	s := newTestService(t)

	task, err := s.AddTask(TaskInput{Title: "  Buy milk "})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2025-06-11", task.Date)
	assert.Equal(t, constants.DefaultCategory, task.Category)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestAddTask_Rejects(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddTask(TaskInput{Title: "x", Date: "2025-13-01"})
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	_, err = s.AddTask(TaskInput{Title: "   "})
	assert.ErrorIs(t, err, models.ErrEmptyTitle)
}

func TestAddHabit_RequiresRecurrence(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddHabit(HabitInput{Title: "Meditate", Recurrence: models.NoRecurrence()})
	assert.ErrorIs(t, err, models.ErrHabitNeedsRecurring)
}

func TestEditAndDelete(t *testing.T) {
	s := newTestService(t)
	task, err := s.AddTask(TaskInput{Title: "Draft"})
	require.NoError(t, err)

	edited, err := s.EditTask(task.ID, models.ItemEdit{Title: "Final", Category: "Study", Date: "2025-06-12"})
	require.NoError(t, err)
	assert.Equal(t, "Final", edited.Title)
	assert.Equal(t, "2025-06-12", edited.Date)

	require.NoError(t, s.DeleteTask(task.ID))
	assert.True(t, IsNotFound(s.DeleteTask(task.ID)))

	_, err = s.EditHabit("missing", models.ItemEdit{Title: "x"})
	assert.True(t, IsNotFound(err))
}

func TestToggle(t *testing.T) {
	s := newTestService(t)
	task, err := s.AddTask(TaskInput{Title: "Call mom"})
	require.NoError(t, err)
	habit, err := s.AddHabit(HabitInput{Title: "Floss", StartDate: "2025-06-01", Recurrence: models.DailyRecurrence()})
	require.NoError(t, err)

	res, err := s.Toggle(task.ID, "")
	require.NoError(t, err)
	assert.Equal(t, constants.ItemTask, res.Kind)
	assert.True(t, res.Completed)

	res, err = s.Toggle(habit.ID, "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, constants.ItemHabit, res.Kind)
	assert.Equal(t, "2025-06-10", res.Date)
	assert.True(t, res.Completed)

	res, err = s.Toggle(habit.ID, "2025-06-10")
	require.NoError(t, err)
	assert.False(t, res.Completed)

	_, err = s.Toggle(habit.ID, "2025-05-31")
	assert.ErrorIs(t, err, models.ErrBeforeStart)

	_, err = s.Toggle("nope", "")
	assert.True(t, IsNotFound(err))
}

func TestConvert_KeepsID(t *testing.T) {
	s := newTestService(t)
	habit, err := s.AddHabit(HabitInput{Title: "Journal", StartDate: "2025-06-01", Recurrence: models.DailyRecurrence()})
	require.NoError(t, err)
	_, err = s.Toggle(habit.ID, "2025-06-02")
	require.NoError(t, err)

	task, err := s.ConvertToTask(habit.ID, "")
	require.NoError(t, err)
	assert.Equal(t, habit.ID, task.ID)
	assert.Equal(t, "2025-06-11", task.Date)

	habits, err := s.Habits()
	require.NoError(t, err)
	assert.Empty(t, habits)

	back, err := s.ConvertToHabit(task.ID, models.WeeklyQuota(2))
	require.NoError(t, err)
	assert.Equal(t, task.ID, back.ID)
	assert.Equal(t, "2025-06-11", back.StartDate)
	assert.Empty(t, back.CompletedDates)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// failingStore fails the named save after the real store has been set up.
type failingStore struct {
	storage.Provider
	failHabits bool
	failTasks  bool
}

var errWrite = errors.New("disk full")

func (f *failingStore) SaveHabits(h []models.Habit) error {
	if f.failHabits {
		return errWrite
	}
	return f.Provider.SaveHabits(h)
}

func (f *failingStore) SaveTasks(t []models.Task) error {
	if f.failTasks {
		return errWrite
	}
	return f.Provider.SaveTasks(t)
}

func TestConvert_UndoesFirstWriteOnFailure(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "routinely.json"))
	require.NoError(t, store.Init())
	fs := &failingStore{Provider: store}
	s := New(fs, utils.FixedClock{At: testNow})

	habit, err := s.AddHabit(HabitInput{Title: "Journal", StartDate: "2025-06-01", Recurrence: models.DailyRecurrence()})
	require.NoError(t, err)
	task, err := s.AddTask(TaskInput{Title: "Pay rent"})
	require.NoError(t, err)

	fs.failHabits = true
	_, err = s.ConvertToTask(habit.ID, "")
	require.ErrorIs(t, err, errWrite)
	fs.failHabits = false

	tasks, err := s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1, "the added task is rolled back")
	assert.Equal(t, task.ID, tasks[0].ID)
	habits, err := s.Habits()
	require.NoError(t, err)
	assert.Len(t, habits, 1)

	fs.failTasks = true
	_, err = s.ConvertToHabit(task.ID, models.DailyRecurrence())
	require.ErrorIs(t, err, errWrite)
	fs.failTasks = false

	habits, err = s.Habits()
	require.NoError(t, err)
	require.Len(t, habits, 1, "the added habit is rolled back")
	assert.Equal(t, habit.ID, habits[0].ID)
	tasks, err = s.Tasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestPlanAndCompletion(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddHabit(HabitInput{Title: "Stretch", StartDate: "2025-06-01", Recurrence: models.DailyRecurrence()})
	require.NoError(t, err)
	task, err := s.AddTask(TaskInput{Title: "Dentist"})
	require.NoError(t, err)
	_, err = s.AddTask(TaskInput{Title: "Tomorrow", Date: "2025-06-12"})
	require.NoError(t, err)
	_, err = s.Toggle(task.ID, "")
	require.NoError(t, err)

	plan, err := s.Plan("")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", plan.Date)
	assert.Equal(t, 2, plan.Total)
	assert.Equal(t, 1, plan.Completed)
	assert.Equal(t, 50, plan.Percent())

	c, err := s.Completion("")
	require.NoError(t, err)
	assert.Equal(t, 50, c.Percent())

	upcoming, err := s.Upcoming(0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Tomorrow", upcoming[0].Title)
}

func TestQuotaAndHabitLog(t *testing.T) {
	s := newTestService(t)
	habit, err := s.AddHabit(HabitInput{Title: "Run", StartDate: "2025-06-01", Recurrence: models.WeeklyQuota(2)})
	require.NoError(t, err)
	for _, d := range []string{"2025-06-08", "2025-06-09", "2025-06-10"} {
		_, err := s.Toggle(habit.ID, d)
		require.NoError(t, err)
	}

	q, err := s.Quota(habit.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", q.WeekStart)
	assert.Equal(t, 2, q.CompletedInWeek)
	assert.True(t, q.QuotaMet)

	log, err := s.HabitLog("")
	require.NoError(t, err)
	require.Len(t, log, 1)
	require.Len(t, log[0].Days, 7)
	assert.Equal(t, []bool{true, true, false, false, false, false, false}, log[0].Done)
	require.NotNil(t, log[0].Quota)

	_, err = s.Quota("missing", "")
	assert.True(t, IsNotFound(err))
}

func TestSeed_Idempotent(t *testing.T) {
	s := newTestService(t)

	wrote, err := s.Seed()
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = s.Seed()
	require.NoError(t, err)
	assert.False(t, wrote)

	habits, err := s.Habits()
	require.NoError(t, err)
	require.Len(t, habits, 3)
	assert.Equal(t, "h3", habits[2].ID)
	assert.True(t, habits[2].Recurrence.IsWeeklyQuota())
}

func TestSeed_SkipsWhenTasksExist(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddTask(TaskInput{Title: "Existing"})
	require.NoError(t, err)

	wrote, err := s.Seed()
	require.NoError(t, err)
	assert.False(t, wrote)
}

func TestCategories(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.AddCategory("Work"))
	assert.ErrorIs(t, s.AddCategory("Work"), models.ErrDuplicateCategory)
	assert.ErrorIs(t, s.AddCategory("Exercise"), models.ErrDuplicateCategory)

	all, err := s.Categories()
	require.NoError(t, err)
	assert.Equal(t, "Work", all[len(all)-1])

	task, err := s.AddTask(TaskInput{Title: "Report", Category: "Work"})
	require.NoError(t, err)
	require.NoError(t, s.RemoveCategory("Work"))
	assert.ErrorIs(t, s.RemoveCategory("Routine"), models.ErrUnknownCategory)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Equal(t, "Work", tasks[0].Category, "items keep removed labels")
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestSleep(t *testing.T) {
	s := newTestService(t)

	first, err := s.LogSleep("", "23:00", "07:00", 0)
	require.NoError(t, err)
	assert.Equal(t, 8.0, first.DurationHours)
	assert.Equal(t, 3, first.Quality)

	_, err = s.LogSleep("", "23:30", "06:30", 4)
	require.NoError(t, err)

	sessions, err := s.SleepSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2, "sessions on the same date are appended")

	report, err := s.SleepReport()
	require.NoError(t, err)
	assert.True(t, report.Score.HasData())
	assert.Equal(t, 2, report.Week.Sessions)
	assert.Equal(t, constants.DefaultSleepTargetHours, report.TargetHours)

	require.NoError(t, s.DeleteSleep(first.ID))
	assert.True(t, IsNotFound(s.DeleteSleep(first.ID)))

	_, err = s.LogSleep("", "25:00", "07:00", 3)
	assert.Error(t, err)
}

func TestExercise(t *testing.T) {
	s := newTestService(t)

	rec, err := s.LogExercise(exercise.Input{Kind: constants.ExerciseGym, Minutes: 45, BodyPart: "Legs"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", rec.Date)
	assert.Equal(t, "09:30", rec.Time)

	_, err = s.LogExercise(exercise.Input{Kind: constants.ExerciseSport, Notes: "Tennis"})
	require.NoError(t, err)

	_, err = s.LogExercise(exercise.Input{Kind: constants.ExerciseRunning, Minutes: 20})
	assert.ErrorIs(t, err, models.ErrInvalidExercise)

	day, err := s.ExerciseToday()
	require.NoError(t, err)
	assert.Equal(t, 45, day.Minutes)
	assert.Len(t, day.Records, 2)

	week, err := s.ExerciseWeek()
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, 45, week[6].Minutes)

	_, err = s.LogExercise(exercise.Input{Kind: constants.ExerciseSport, Date: "2025-01-01", Notes: "Skiing"})
	require.NoError(t, err)
	kinds, err := s.ExerciseWeekKinds()
	require.NoError(t, err)
	assert.Equal(t, 1, kinds[constants.ExerciseGym])
	assert.Equal(t, 1, kinds[constants.ExerciseSport], "records outside the last seven days are not counted")
	assert.Len(t, kinds, 2)

	require.NoError(t, s.DeleteExercise(rec.ID))
	assert.True(t, IsNotFound(s.DeleteExercise(rec.ID)))
}

func TestSaveSettings_Validates(t *testing.T) {
	s := newTestService(t)
	settings, err := s.Settings()
	require.NoError(t, err)

	settings.Timezone = "Mars/Olympus"
	assert.Error(t, s.SaveSettings(settings))

	settings.Timezone = "UTC"
	settings.SleepTargetHours = 8
	require.NoError(t, s.SaveSettings(settings))

	got, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.SleepTargetHours)
}

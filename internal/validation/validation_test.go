package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
)

func conflictTypes(r ValidationResult) []constants.ConflictType {
	out := make([]constants.ConflictType, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		out = append(out, c.Type)
	}
	return out
}

func TestValidateSnapshot_Clean(t *testing.T) {
	s := models.Snapshot{
		Tasks:  []models.Task{{ID: "t1", Title: "Dentist", Category: "Other", Date: "2024-06-12"}},
		Habits: []models.Habit{{ID: "h1", Title: "Water", Category: "Routine", Recurrence: models.DailyRecurrence(), StartDate: "2024-06-01", CompletedDates: []string{"2024-06-02"}}},
		Sleep:  []models.SleepSession{{ID: "s1", Date: "2024-06-12", BedTime: 1380, WakeTime: 420, DurationHours: 8, Quality: 3}},
		Exercise: []models.ExerciseRecord{
			{ID: "e1", Date: "2024-06-12", Kind: constants.ExerciseGym, DurationMinutes: 30, BodyPart: "legs"},
		},
	}
	r := New(models.NewCategoryRegistry(nil)).ValidateSnapshot(s)
	assert.False(t, r.HasConflicts(), r.FormatReport())
	assert.Equal(t, "No conflicts detected.", r.FormatReport())
}

func TestValidateSnapshot_DuplicateAndMissingIDs(t *testing.T) {
	s := models.Snapshot{
		Tasks:  []models.Task{{ID: "x", Title: "A", Date: "2024-06-12"}, {ID: "", Title: "B", Date: "2024-06-12"}},
		Habits: []models.Habit{{ID: "x", Title: "C", Recurrence: models.DailyRecurrence(), StartDate: "2024-06-01"}},
	}
	r := New(nil).ValidateSnapshot(s)
	assert.ElementsMatch(t, []constants.ConflictType{constants.ConflictMissingID, constants.ConflictDuplicateID}, conflictTypes(r))
	assert.True(t, r.HasErrors())
}

func TestValidateSnapshot_HabitProblems(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Title: "None", Recurrence: models.NoRecurrence(), StartDate: "2024-06-01"},
		{ID: "h2", Title: "Bad interval", Recurrence: models.Recurrence{Type: constants.RecurrenceInterval, Value: 0}, StartDate: "2024-06-01"},
		{ID: "h3", Title: "Early", Recurrence: models.DailyRecurrence(), StartDate: "2024-06-10", CompletedDates: []string{"2024-06-01", "junk"}},
		{ID: "h4", Title: "Bad start", Recurrence: models.DailyRecurrence(), StartDate: "soon"},
	}
	r := New(nil).ValidateHabits(habits)
	assert.ElementsMatch(t, []constants.ConflictType{
		constants.ConflictInvalidRecurrence,
		constants.ConflictInvalidRecurrence,
		constants.ConflictInvalidDate,
		constants.ConflictCompletedBeforeRun,
		constants.ConflictInvalidDate,
	}, conflictTypes(r))
}

func TestValidateSnapshot_UnknownCategoryIsWarning(t *testing.T) {
	r := New(models.NewCategoryRegistry(nil)).ValidateTasks([]models.Task{
		{ID: "t1", Title: "Guitar", Category: "Music", Date: "2024-06-12"},
	})
	require.Len(t, r.Conflicts, 1)
	assert.Equal(t, SeverityWarning, r.Conflicts[0].Severity)
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Errors())
	assert.True(t, strings.Contains(r.FormatReport(), "[warning]"))
}

func TestValidateSnapshot_SleepAndExercise(t *testing.T) {
	s := models.Snapshot{
		Sleep: []models.SleepSession{{ID: "s1", Date: "2024-06-12", BedTime: 1500, WakeTime: 420, Quality: 0}},
		Exercise: []models.ExerciseRecord{
			{ID: "e1", Date: "2024-06-12", Kind: constants.ExerciseRunning, DurationMinutes: 30},
			{ID: "e2", Date: "2024-06-12", Kind: "SWIM"},
		},
	}
	r := New(nil).ValidateSnapshot(s)
	assert.Equal(t, []constants.ConflictType{
		constants.ConflictInvalidSleep,
		constants.ConflictInvalidExercise,
		constants.ConflictInvalidExercise,
	}, conflictTypes(r))
	assert.Contains(t, r.Conflicts[0].Description, "bed time 1500 out of range")
	assert.Contains(t, r.Conflicts[0].Description, "quality 0 out of range")
}

func TestAutoFixHabits(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Title: "Early", Recurrence: models.DailyRecurrence(), StartDate: "2024-06-10", CompletedDates: []string{"2024-06-01", "2024-06-11"}},
		{ID: "h2", Title: "Bad interval", Recurrence: models.Recurrence{Type: constants.RecurrenceInterval, Value: 1}, StartDate: "2024-06-01"},
		{ID: "h3", Title: "None", Recurrence: models.NoRecurrence(), StartDate: "2024-06-01"},
	}
	r := New(nil).ValidateHabits(habits)
	actions := AutoFixHabits(r.Conflicts, habits)
	assert.Len(t, actions, 3)
	assert.Equal(t, []string{"2024-06-11"}, habits[0].CompletedDates)
	assert.Equal(t, models.DailyRecurrence(), habits[1].Recurrence)
	assert.Equal(t, models.DailyRecurrence(), habits[2].Recurrence)

	again := New(nil).ValidateHabits(habits)
	assert.False(t, again.HasConflicts(), again.FormatReport())
}

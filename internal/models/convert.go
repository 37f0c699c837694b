package models

// HabitToTask turns a habit into a one-off task on date, keeping its id.
// The recurrence, start date and completion log are discarded and the task
// starts incomplete. The conversion is lossy: TaskToHabit cannot restore them.
func HabitToTask(h Habit, date string) Task {
	return Task{
		ID:        h.ID,
		Title:     h.Title,
		Category:  h.Category,
		Date:      date,
		Completed: false,
		Quantity:  h.Quantity,
		Unit:      h.Unit,
	}
}

// TaskToHabit turns a task into a habit starting on the task's date, keeping
// its id. The completion log starts empty. A None rule becomes Daily since a
// habit must recur.
func TaskToHabit(t Task, rec Recurrence) Habit {
	rec = rec.Normalize()
	if rec.IsNone() {
		rec = DailyRecurrence()
	}
	return Habit{
		ID:             t.ID,
		Title:          t.Title,
		Category:       t.Category,
		Recurrence:     rec,
		StartDate:      t.Date,
		CompletedDates: []string{},
		Quantity:       t.Quantity,
		Unit:           t.Unit,
	}
}

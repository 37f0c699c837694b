package stats

import (
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/scheduler"
)

type indexedHabit struct {
	habit models.Habit
	done  map[string]struct{}
}

// Index answers Completion queries for many dates without rescanning every
// task each time. Its results are identical to AggregateCompletion.
type Index struct {
	tasksByDate map[string][]models.Task
	habits      []indexedHabit
}

func NewIndex(tasks []models.Task, habits []models.Habit) *Index {
	idx := &Index{
		tasksByDate: make(map[string][]models.Task),
		habits:      make([]indexedHabit, 0, len(habits)),
	}
	for _, t := range tasks {
		idx.tasksByDate[t.Date] = append(idx.tasksByDate[t.Date], t)
	}
	for _, h := range habits {
		done := make(map[string]struct{}, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			done[d] = struct{}{}
		}
		idx.habits = append(idx.habits, indexedHabit{habit: h, done: done})
	}
	return idx
}

func (idx *Index) Completion(date string) Completion {
	due, completed := 0, 0
	for _, ih := range idx.habits {
		if !scheduler.IsDue(ih.habit, date) {
			continue
		}
		due++
		if _, ok := ih.done[date]; ok {
			completed++
		}
	}
	for _, t := range idx.tasksByDate[date] {
		due++
		if t.Completed {
			completed++
		}
	}
	return newCompletion(date, due, completed)
}

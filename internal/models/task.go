package models

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/utils"
)

// Task is a one-off item scheduled on a single calendar day.
type Task struct {
	ID        string  `json:"id" bson:"id"`
	Title     string  `json:"title" bson:"title"`
	Category  string  `json:"category" bson:"category"`
	Date      string  `json:"date" bson:"date"` // YYYY-MM-DD
	Completed bool    `json:"isCompleted" bson:"isCompleted"`
	Quantity  float64 `json:"value,omitempty" bson:"value,omitempty"`
	Unit      string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// ItemEdit carries the user-editable fields of a task or habit. Edits replace
// every field wholesale.
type ItemEdit struct {
	Title      string
	Category   string
	Quantity   float64
	Unit       string
	Date       string
	Recurrence Recurrence
}

func NewTask(title, category, date string) (Task, error) {
	t := Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Category: category,
		Date:     date,
	}
	if t.Title == "" {
		return Task{}, ErrEmptyTitle
	}
	if !utils.IsDateKey(date) {
		return Task{}, ErrInvalidDate
	}
	return t, nil
}

func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// Edit replaces title, category, quantity, unit and date. The completion flag
// is kept.
func (t *Task) Edit(e ItemEdit) error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if e.Date != "" && !utils.IsDateKey(e.Date) {
		return ErrInvalidDate
	}
	t.Title = title
	t.Category = e.Category
	t.Quantity = e.Quantity
	t.Unit = e.Unit
	if e.Date != "" {
		t.Date = e.Date
	}
	return nil
}

func FindTask(tasks []Task, id string) (int, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

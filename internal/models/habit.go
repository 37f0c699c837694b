package models

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/utils"
)

// Habit is a recurring item. CompletedDates is a set of date keys; order is
// not significant, but Toggle keeps it sorted for stable storage.
type Habit struct {
	ID             string     `json:"id" bson:"id"`
	Title          string     `json:"title" bson:"title"`
	Category       string     `json:"category" bson:"category"`
	Recurrence     Recurrence `json:"frequency" bson:"frequency"`
	StartDate      string     `json:"startDate" bson:"startDate"` // YYYY-MM-DD, inclusive
	CompletedDates []string   `json:"completedDates" bson:"completedDates"`
	Quantity       float64    `json:"value,omitempty" bson:"value,omitempty"`
	Unit           string     `json:"unit,omitempty" bson:"unit,omitempty"`
}

func NewHabit(title, category, startDate string, rec Recurrence) (Habit, error) {
	h := Habit{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(title),
		Category:       category,
		Recurrence:     rec.Normalize(),
		StartDate:      startDate,
		CompletedDates: []string{},
	}
	if h.Title == "" {
		return Habit{}, ErrEmptyTitle
	}
	if !utils.IsDateKey(startDate) {
		return Habit{}, ErrInvalidDate
	}
	if h.Recurrence.IsNone() {
		return Habit{}, ErrHabitNeedsRecurring
	}
	return h, nil
}

func (h Habit) IsCompletedOn(date string) bool {
	return slices.Contains(h.CompletedDates, date)
}

// Toggle flips completion for date. Dates before the start date are rejected
// so the log never holds entries the evaluator would ignore.
func (h *Habit) Toggle(date string) error {
	if !utils.IsDateKey(date) {
		return ErrInvalidDate
	}
	if date < h.StartDate {
		return ErrBeforeStart
	}
	if i := slices.Index(h.CompletedDates, date); i >= 0 {
		h.CompletedDates = slices.Delete(h.CompletedDates, i, i+1)
		return nil
	}
	h.CompletedDates = append(h.CompletedDates, date)
	slices.Sort(h.CompletedDates)
	return nil
}

// Edit replaces title, category, quantity, unit and recurrence. Start date and
// completion log are kept.
func (h *Habit) Edit(e ItemEdit) error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	rec := e.Recurrence.Normalize()
	if rec.IsNone() {
		return ErrHabitNeedsRecurring
	}
	h.Title = title
	h.Category = e.Category
	h.Quantity = e.Quantity
	h.Unit = e.Unit
	h.Recurrence = rec
	return nil
}

// PruneBeforeStart drops log entries earlier than the start date and reports
// how many were removed.
func (h *Habit) PruneBeforeStart() int {
	kept := h.CompletedDates[:0]
	removed := 0
	for _, d := range h.CompletedDates {
		if d < h.StartDate {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	h.CompletedDates = kept
	return removed
}

func FindHabit(habits []Habit, id string) (int, bool) {
	for i := range habits {
		if habits[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

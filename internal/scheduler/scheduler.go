package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// DueItem is one row of a day's list: either a task scheduled that day or a
// habit due that day.
type DueItem struct {
	ID           string             `json:"id"`
	Kind         constants.ItemKind `json:"kind"`
	Title        string             `json:"title"`
	Category     string             `json:"category"`
	Quantity     float64            `json:"value,omitempty"`
	Unit         string             `json:"unit,omitempty"`
	Completed    bool               `json:"isCompleted"`
	Recurrence   models.Recurrence  `json:"frequency"`
	Quota        *QuotaProgress     `json:"weeklyProgress,omitempty"`
	Deemphasized bool               `json:"isQuotaMet"`
}

func (i DueItem) IsHabit() bool {
	return i.Kind == constants.ItemHabit
}

// Done reports whether the item sorts to the end of the list.
func (i DueItem) Done() bool {
	return i.Completed || i.Deemphasized
}

// DayPlan is the live view of a single date.
type DayPlan struct {
	Date      string    `json:"date"`
	Items     []DueItem `json:"items"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// Percent is the share of listed items completed, rounded to a whole percent.
// Quota-met items that were not toggled today do not count as completed.
func (p DayPlan) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(float64(p.Completed)/float64(p.Total)*100 + 0.5)
}

// DueItems lists the habits due on date followed by the tasks scheduled on
// it. Completed and quota-met items move to the end; order is otherwise kept.
func DueItems(tasks []models.Task, habits []models.Habit, date string) []DueItem {
	items := make([]DueItem, 0, len(habits)+len(tasks))

	for _, h := range habits {
		if !IsDue(h, date) {
			continue
		}
		item := DueItem{
			ID:         h.ID,
			Kind:       constants.ItemHabit,
			Title:      h.Title,
			Category:   h.Category,
			Quantity:   h.Quantity,
			Unit:       h.Unit,
			Completed:  h.IsCompletedOn(date),
			Recurrence: h.Recurrence,
		}
		if h.Recurrence.IsWeeklyQuota() {
			q := WeeklyQuotaProgress(h, date)
			item.Quota = &q
			item.Deemphasized = q.QuotaMet
		}
		items = append(items, item)
	}

	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		items = append(items, DueItem{
			ID:         t.ID,
			Kind:       constants.ItemTask,
			Title:      t.Title,
			Category:   t.Category,
			Quantity:   t.Quantity,
			Unit:       t.Unit,
			Completed:  t.Completed,
			Recurrence: models.NoRecurrence(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return !items[i].Done() && items[j].Done()
	})
	return items
}

// FilterByCategory keeps the items labelled category, in order. An empty
// category keeps everything. It narrows what is listed only: a DayPlan's
// Completed and Total still count the whole day.
func FilterByCategory(items []DueItem, category string) []DueItem {
	out := make([]DueItem, 0, len(items))
	for _, it := range items {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// PlanDay builds the DayPlan for date.
func PlanDay(date string, tasks []models.Task, habits []models.Habit) (DayPlan, error) {
	if !utils.IsDateKey(date) {
		return DayPlan{}, fmt.Errorf("invalid date format: %q", date)
	}
	plan := DayPlan{Date: date, Items: DueItems(tasks, habits, date)}
	for _, it := range plan.Items {
		plan.Total++
		if it.Completed {
			plan.Completed++
		}
	}
	return plan, nil
}

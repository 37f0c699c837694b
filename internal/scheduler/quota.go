package scheduler

import (
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// QuotaProgress is a weekly habit's standing within one Monday-Sunday week.
type QuotaProgress struct {
	WeekStart       string `json:"weekStart"`
	WeekEnd         string `json:"weekEnd"`
	CompletedInWeek int    `json:"current"`
	Target          int    `json:"target"`
	QuotaMet        bool   `json:"quotaMet"`
}

// WeeklyQuotaProgress counts h's completions in the week containing date.
// Habits without a weekly rule report a target of zero and are never met.
func WeeklyQuotaProgress(h models.Habit, date string) QuotaProgress {
	mon, sun, err := utils.WeekBounds(date)
	if err != nil {
		return QuotaProgress{}
	}
	p := QuotaProgress{WeekStart: mon, WeekEnd: sun}
	for _, d := range h.CompletedDates {
		if utils.InRange(d, mon, sun) {
			p.CompletedInWeek++
		}
	}
	if !h.Recurrence.IsWeeklyQuota() {
		return p
	}
	p.Target = h.Recurrence.Value
	p.QuotaMet = p.CompletedInWeek >= p.Target
	return p
}

// Package optimizer suggests recurrence changes for habits from their recent
// completion history.
package optimizer

import (
	"fmt"
	"slices"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/scheduler"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

// OptimizationType represents the type of optimization suggested
type OptimizationType string

const (
	OptimizationReduceFrequency   OptimizationType = "reduce_frequency"
	OptimizationIncreaseFrequency OptimizationType = "increase_frequency"
	OptimizationLowerQuota        OptimizationType = "lower_quota"
	OptimizationRaiseQuota        OptimizationType = "raise_quota"
	OptimizationRemoveHabit       OptimizationType = "remove_habit"
)

// Thresholds on the share of due days completed.
const (
	lowAdherence  = 0.40
	highAdherence = 0.90
	// weekly quotas averaging below this share of the target get lowered
	lowQuotaShare = 0.50
)

// Optimization represents a suggested change to one habit. Suggested is nil
// for removals.
type Optimization struct {
	HabitID   string             `json:"habit_id"`
	HabitName string             `json:"habit_name"`
	Type      OptimizationType   `json:"type"`
	Reason    string             `json:"reason"`
	Current   models.Recurrence  `json:"current"`
	Suggested *models.Recurrence `json:"suggested,omitempty"`
}

// HabitAnalyzer analyzes habit completion logs and suggests optimizations
type HabitAnalyzer struct {
	store  storage.Provider
	clock  utils.Clock
	window int
}

func NewHabitAnalyzer(store storage.Provider, clock utils.Clock) *HabitAnalyzer {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &HabitAnalyzer{store: store, clock: clock, window: constants.OptimizeWindowDays}
}

// WithWindow sets how many days back the analyzer looks.
func (a *HabitAnalyzer) WithWindow(days int) *HabitAnalyzer {
	if days > 0 {
		a.window = days
	}
	return a
}

// Adherence is the completion record of a habit over the analysis window.
type Adherence struct {
	From      string
	To        string
	Due       int
	Completed int
}

func (a Adherence) Rate() float64 {
	if a.Due == 0 {
		return 0
	}
	return float64(a.Completed) / float64(a.Due)
}

// MeasureAdherence counts the due days of h between the later of its start
// date and `window` days before today, and yesterday. Today is left out so an
// unfinished day does not count against the habit.
func MeasureAdherence(h models.Habit, today string, window int) (Adherence, error) {
	to, err := utils.AddDays(today, -1)
	if err != nil {
		return Adherence{}, err
	}
	from, err := utils.AddDays(today, -window)
	if err != nil {
		return Adherence{}, err
	}
	if h.StartDate > from {
		from = h.StartDate
	}
	adh := Adherence{From: from, To: to}
	if from > to {
		return adh, nil
	}
	days, err := utils.DateRange(from, to)
	if err != nil {
		return Adherence{}, err
	}
	for _, d := range days {
		if !scheduler.IsDue(h, d) {
			continue
		}
		adh.Due++
		if h.IsCompletedOn(d) {
			adh.Completed++
		}
	}
	return adh, nil
}

// AnalyzeHabit returns the suggestions for one habit as of today.
func (a *HabitAnalyzer) AnalyzeHabit(h models.Habit, today string) ([]Optimization, error) {
	if h.Recurrence.IsWeeklyQuota() {
		return a.analyzeQuota(h, today)
	}

	adh, err := MeasureAdherence(h, today, a.window)
	if err != nil {
		return nil, fmt.Errorf("failed to measure adherence: %w", err)
	}
	// Not enough history to judge
	if adh.Due < constants.OptimizeMinDueDays {
		return nil, nil
	}

	rate := adh.Rate()
	base := Optimization{HabitID: h.ID, HabitName: h.Title, Current: h.Recurrence}

	if adh.Completed == 0 && adh.Due >= 2*constants.OptimizeMinDueDays {
		base.Type = OptimizationRemoveHabit
		base.Reason = fmt.Sprintf("not completed on any of the last %d due days", adh.Due)
		return []Optimization{base}, nil
	}

	if rate < lowAdherence {
		var next models.Recurrence
		switch h.Recurrence.Type {
		case constants.RecurrenceDaily:
			next = models.EveryNDays(2)
		case constants.RecurrenceInterval:
			next = models.EveryNDays(h.Recurrence.Value + 2)
		default:
			return nil, nil
		}
		base.Type = OptimizationReduceFrequency
		base.Reason = fmt.Sprintf("completed %d of %d due days (%.0f%%)", adh.Completed, adh.Due, rate*100)
		base.Suggested = &next
		return []Optimization{base}, nil
	}

	if rate >= highAdherence && h.Recurrence.Type == constants.RecurrenceInterval {
		next := models.EveryNDays(h.Recurrence.Value - 1)
		base.Type = OptimizationIncreaseFrequency
		base.Reason = fmt.Sprintf("completed %d of %d due days (%.0f%%)", adh.Completed, adh.Due, rate*100)
		base.Suggested = &next
		return []Optimization{base}, nil
	}

	return nil, nil
}

// analyzeQuota judges a weekly quota habit by the full Monday-Sunday weeks
// inside the window. The current week is still open and is skipped.
func (a *HabitAnalyzer) analyzeQuota(h models.Habit, today string) ([]Optimization, error) {
	monday, _, err := utils.WeekBounds(today)
	if err != nil {
		return nil, err
	}
	target := h.Recurrence.Value
	var counts []int
	for w := 1; w*7 <= a.window; w++ {
		weekStart, err := utils.AddDays(monday, -7*w)
		if err != nil {
			return nil, err
		}
		if weekStart < h.StartDate {
			break
		}
		counts = append(counts, scheduler.WeeklyQuotaProgress(h, weekStart).CompletedInWeek)
	}
	if len(counts) < constants.OptimizeMinWeeks {
		return nil, nil
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	avg := float64(total) / float64(len(counts))
	base := Optimization{HabitID: h.ID, HabitName: h.Title, Current: h.Recurrence}

	switch {
	case total == 0 && len(counts)*7 >= 2*constants.OptimizeMinDueDays:
		base.Type = OptimizationRemoveHabit
		base.Reason = fmt.Sprintf("no completions in the last %d weeks", len(counts))
	case avg < float64(target)*lowQuotaShare && target > 1:
		next := models.WeeklyQuota(target - 1)
		base.Type = OptimizationLowerQuota
		base.Reason = fmt.Sprintf("averaged %.1f of %d per week over %d weeks", avg, target, len(counts))
		base.Suggested = &next
	case slices.IndexFunc(counts, func(c int) bool { return c <= target }) < 0 && target < 7:
		next := models.WeeklyQuota(target + 1)
		base.Type = OptimizationRaiseQuota
		base.Reason = fmt.Sprintf("beat the target of %d every week for %d weeks", target, len(counts))
		base.Suggested = &next
	default:
		return nil, nil
	}
	return []Optimization{base}, nil
}

// AnalyzeAllHabits analyzes every stored habit as of today.
func (a *HabitAnalyzer) AnalyzeAllHabits() ([]Optimization, error) {
	habits, err := a.store.LoadHabits()
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	today := utils.Today(a.clock)

	var all []Optimization
	for _, h := range habits {
		opts, err := a.AnalyzeHabit(h, today)
		if err != nil {
			logger.Warn("Skipping habit during analysis", "id", h.ID, "error", err)
			continue
		}
		all = append(all, opts...)
	}
	return all, nil
}

// Apply writes opt back to the store. Removals delete the habit; every other
// type replaces its recurrence.
func (a *HabitAnalyzer) Apply(opt Optimization) error {
	habits, err := a.store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	i, ok := models.FindHabit(habits, opt.HabitID)
	if !ok {
		return fmt.Errorf("habit %s: %w", opt.HabitID, models.ErrNotFound)
	}

	if opt.Type == OptimizationRemoveHabit {
		habits = slices.Delete(habits, i, i+1)
	} else {
		if opt.Suggested == nil {
			return fmt.Errorf("optimization %s for %s has no suggested rule", opt.Type, opt.HabitID)
		}
		habits[i].Recurrence = opt.Suggested.Normalize()
	}

	if err := a.store.SaveHabits(habits); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	logger.Info("Applied habit optimization", "id", opt.HabitID, "type", opt.Type)
	return nil
}

package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in a snapshot
type Conflict struct {
	Type        constants.ConflictType
	Severity    Severity
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles involved
	IDs         []string // IDs of records involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is an error rather than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-level conflicts
func (vr *ValidationResult) Errors() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Severity, c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks snapshots before they reach the scheduling code
type Validator struct {
	categories *models.CategoryRegistry
}

// New creates a new Validator. A nil registry skips category checks.
func New(categories *models.CategoryRegistry) *Validator {
	return &Validator{categories: categories}
}

// ValidateSnapshot runs every check over s
func (v *Validator) ValidateSnapshot(s models.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.checkIDs(&result, s.Tasks, s.Habits)
	v.checkTasks(&result, s.Tasks)
	v.checkHabits(&result, s.Habits)
	v.checkSleep(&result, s.Sleep)
	v.checkExercise(&result, s.Exercise)
	return result
}

// ValidateTasks checks tasks on their own
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	return v.ValidateSnapshot(models.Snapshot{Tasks: tasks})
}

// ValidateHabits checks habits on their own
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	return v.ValidateSnapshot(models.Snapshot{Habits: habits})
}

func (v *Validator) checkIDs(result *ValidationResult, tasks []models.Task, habits []models.Habit) {
	seen := make(map[string][]string)
	var order []string
	note := func(id, title string) {
		if id == "" {
			result.add(Conflict{
				Type:        constants.ConflictMissingID,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Item %q has no ID", title),
				Items:       []string{title},
			})
			return
		}
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
		seen[id] = append(seen[id], title)
	}
	for _, t := range tasks {
		note(t.ID, t.Title)
	}
	for _, h := range habits {
		note(h.ID, h.Title)
	}
	for _, id := range order {
		if titles := seen[id]; len(titles) > 1 {
			result.add(Conflict{
				Type:        constants.ConflictDuplicateID,
				Severity:    SeverityError,
				Description: fmt.Sprintf("ID %s is shared by %d items: %s", id, len(titles), strings.Join(titles, ", ")),
				Items:       titles,
				IDs:         []string{id},
			})
		}
	}
}

func (v *Validator) checkCategory(result *ValidationResult, id, title, category string) {
	if v.categories == nil || category == "" || v.categories.Contains(category) {
		return
	}
	result.add(Conflict{
		Type:        constants.ConflictUnknownCategory,
		Severity:    SeverityWarning,
		Description: fmt.Sprintf("%q uses category %q which is not in the category list", title, category),
		Items:       []string{title},
		IDs:         []string{id},
	})
}

func (v *Validator) checkTasks(result *ValidationResult, tasks []models.Task) {
	for _, t := range tasks {
		if !utils.IsDateKey(t.Date) {
			result.add(Conflict{
				Type:        constants.ConflictInvalidDate,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Task %q has invalid date: %q", t.Title, t.Date),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
		}
		v.checkCategory(result, t.ID, t.Title, t.Category)
	}
}

func (v *Validator) checkHabits(result *ValidationResult, habits []models.Habit) {
	for _, h := range habits {
		if !utils.IsDateKey(h.StartDate) {
			result.add(Conflict{
				Type:        constants.ConflictInvalidDate,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Habit %q has invalid start date: %q", h.Title, h.StartDate),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
		if h.Recurrence.IsNone() {
			result.add(Conflict{
				Type:        constants.ConflictInvalidRecurrence,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Habit %q has no recurrence", h.Title),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		} else if err := h.Recurrence.Validate(); err != nil {
			result.add(Conflict{
				Type:        constants.ConflictInvalidRecurrence,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Habit %q: %v", h.Title, err),
				Items:       []string{h.Title},
				IDs:         []string{h.ID},
			})
		}
		for _, d := range h.CompletedDates {
			if !utils.IsDateKey(d) {
				result.add(Conflict{
					Type:        constants.ConflictInvalidDate,
					Severity:    SeverityError,
					Description: fmt.Sprintf("Habit %q has invalid completion date: %q", h.Title, d),
					Date:        d,
					Items:       []string{h.Title},
					IDs:         []string{h.ID},
				})
				continue
			}
			if d < h.StartDate {
				result.add(Conflict{
					Type:        constants.ConflictCompletedBeforeRun,
					Severity:    SeverityWarning,
					Description: fmt.Sprintf("Habit %q is marked done on %s, before it starts on %s", h.Title, d, h.StartDate),
					Date:        d,
					Items:       []string{h.Title},
					IDs:         []string{h.ID},
				})
			}
		}
		v.checkCategory(result, h.ID, h.Title, h.Category)
	}
}

func (v *Validator) checkSleep(result *ValidationResult, sessions []models.SleepSession) {
	for _, s := range sessions {
		var problems []string
		if !utils.IsDateKey(s.Date) {
			problems = append(problems, fmt.Sprintf("invalid date %q", s.Date))
		}
		if s.BedTime < 0 || s.BedTime >= constants.MinutesPerDay {
			problems = append(problems, fmt.Sprintf("bed time %d out of range", s.BedTime))
		}
		if s.WakeTime < 0 || s.WakeTime >= constants.MinutesPerDay {
			problems = append(problems, fmt.Sprintf("wake time %d out of range", s.WakeTime))
		}
		if s.Quality < 1 || s.Quality > 5 {
			problems = append(problems, fmt.Sprintf("quality %d out of range", s.Quality))
		}
		if s.DurationHours < 0 {
			problems = append(problems, "negative duration")
		}
		if len(problems) > 0 {
			result.add(Conflict{
				Type:        constants.ConflictInvalidSleep,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Sleep session %s: %s", s.ID, strings.Join(problems, ", ")),
				Date:        s.Date,
				IDs:         []string{s.ID},
			})
		}
	}
}

func (v *Validator) checkExercise(result *ValidationResult, records []models.ExerciseRecord) {
	for _, r := range records {
		var problem string
		switch {
		case !utils.IsDateKey(r.Date):
			problem = fmt.Sprintf("invalid date %q", r.Date)
		case r.Timed() && r.DurationMinutes <= 0:
			problem = "missing duration"
		case r.Kind == constants.ExerciseGym && r.BodyPart == "":
			problem = "missing body part"
		case r.Kind == constants.ExerciseRunning && r.SpeedKmh <= 0:
			problem = "missing speed"
		default:
			if _, ok := models.ParseExerciseKind(string(r.Kind)); !ok {
				problem = fmt.Sprintf("unknown type %q", r.Kind)
			}
		}
		if problem != "" {
			result.add(Conflict{
				Type:        constants.ConflictInvalidExercise,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Exercise record %s: %s", r.ID, problem),
				Date:        r.Date,
				IDs:         []string{r.ID},
			})
		}
	}
}

// AutoFixHabits repairs what can be repaired without user input: it drops
// completion dates before a habit's start and normalizes out-of-range rules.
// habits is modified in place.
func AutoFixHabits(conflicts []Conflict, habits []models.Habit) []FixAction {
	var actions []FixAction
	for _, c := range conflicts {
		if c.Type != constants.ConflictCompletedBeforeRun && c.Type != constants.ConflictInvalidRecurrence {
			continue
		}
		for _, id := range c.IDs {
			i, ok := models.FindHabit(habits, id)
			if !ok {
				continue
			}
			h := &habits[i]
			switch c.Type {
			case constants.ConflictCompletedBeforeRun:
				if n := h.PruneBeforeStart(); n > 0 {
					actions = append(actions, FixAction{
						Action:         fmt.Sprintf("Removed %d completion(s) before start from %q", n, h.Title),
						SourceConflict: c,
					})
				}
			case constants.ConflictInvalidRecurrence:
				fixed := h.Recurrence.Normalize()
				if fixed.IsNone() {
					fixed = models.DailyRecurrence()
				}
				if fixed != h.Recurrence {
					h.Recurrence = fixed
					actions = append(actions, FixAction{
						Action:         fmt.Sprintf("Set recurrence of %q to %s", h.Title, fixed),
						SourceConflict: c,
					})
				}
			}
		}
	}
	return actions
}

package optimizer

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// mockStore is an in-memory storage.Provider holding only habits
type mockStore struct {
	habits    []models.Habit
	saveCalls int
}

func (m *mockStore) Init() error                                    { return nil }
func (m *mockStore) Load() error                                    { return nil }
func (m *mockStore) Close() error                                   { return nil }
func (m *mockStore) GetSettings() (models.Settings, error)          { return models.DefaultSettings(), nil }
func (m *mockStore) SaveSettings(models.Settings) error             { return nil }
func (m *mockStore) LoadTasks() ([]models.Task, error)              { return nil, nil }
func (m *mockStore) SaveTasks([]models.Task) error                  { return nil }
func (m *mockStore) LoadSleep() ([]models.SleepSession, error)      { return nil, nil }
func (m *mockStore) SaveSleep([]models.SleepSession) error          { return nil }
func (m *mockStore) LoadExercise() ([]models.ExerciseRecord, error) { return nil, nil }
func (m *mockStore) SaveExercise([]models.ExerciseRecord) error     { return nil }
func (m *mockStore) LoadCategories() ([]string, error)              { return nil, nil }
func (m *mockStore) SaveCategories([]string) error                  { return nil }
func (m *mockStore) GetConfigPath() string                          { return "" }

func (m *mockStore) LoadHabits() ([]models.Habit, error) {
	out := make([]models.Habit, len(m.habits))
	copy(out, m.habits)
	return out, nil
}

func (m *mockStore) SaveHabits(h []models.Habit) error {
	m.saveCalls++
	m.habits = h
	return nil
}

// Wednesday
const today = "2025-06-11"

var testClock = utils.FixedClock{At: time.Date(2025, time.June, 11, 12, 0, 0, 0, time.UTC)}

func days(t *testing.T, from, to string) []string {
	t.Helper()
	out, err := utils.DateRange(from, to)
	if err != nil {
		t.Fatalf("DateRange(%s, %s): %v", from, to, err)
	}
	return out
}

func habit(id string, rec models.Recurrence, start string, done ...string) models.Habit {
	return models.Habit{ID: id, Title: "Habit " + id, Category: "Routine", Recurrence: rec, StartDate: start, CompletedDates: done}
}

func TestAnalyzeHabit_NotEnoughHistory(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	h := habit("h1", models.DailyRecurrence(), "2025-06-08")
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("expected no optimizations, got %d", len(opts))
	}
}

func TestAnalyzeHabit_LowDailyAdherence(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	h := habit("h1", models.DailyRecurrence(), "2025-01-01", days(t, "2025-06-01", "2025-06-05")...)
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected 1 optimization, got %d", len(opts))
	}

	opt := opts[0]
	if opt.Type != OptimizationReduceFrequency {
		t.Errorf("expected OptimizationReduceFrequency, got %v", opt.Type)
	}
	if opt.Suggested == nil || *opt.Suggested != models.EveryNDays(2) {
		t.Errorf("expected every 2 days, got %v", opt.Suggested)
	}
}

func TestAnalyzeHabit_LowIntervalAdherence(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	// due every 2 days from 05-14: 14 due days, 2 completed
	h := habit("h1", models.EveryNDays(2), "2025-05-14", "2025-05-14", "2025-05-16")
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].Type != OptimizationReduceFrequency {
		t.Fatalf("expected a reduce_frequency suggestion, got %+v", opts)
	}
	if got := opts[0].Suggested.Value; got != 4 {
		t.Errorf("expected interval 4, got %d", got)
	}
}

func TestAnalyzeHabit_NeverCompleted(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	h := habit("h1", models.DailyRecurrence(), "2025-01-01")
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].Type != OptimizationRemoveHabit {
		t.Fatalf("expected a remove_habit suggestion, got %+v", opts)
	}
	if opts[0].Suggested != nil {
		t.Errorf("expected no suggested rule for a removal")
	}
}

func TestAnalyzeHabit_IntervalOnTrack(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	done := []string{
		"2025-05-14", "2025-05-17", "2025-05-20", "2025-05-23", "2025-05-26",
		"2025-05-29", "2025-06-01", "2025-06-04", "2025-06-07", "2025-06-10",
	}
	h := habit("h1", models.EveryNDays(3), "2025-05-14", done...)
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].Type != OptimizationIncreaseFrequency {
		t.Fatalf("expected an increase_frequency suggestion, got %+v", opts)
	}
	if *opts[0].Suggested != models.EveryNDays(2) {
		t.Errorf("expected every 2 days, got %v", *opts[0].Suggested)
	}
}

func TestAnalyzeHabit_DailyOnTrack(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	h := habit("h1", models.DailyRecurrence(), "2025-01-01", days(t, "2025-05-14", "2025-06-10")...)
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("expected no optimizations for a daily habit on track, got %+v", opts)
	}
}

func TestAnalyzeHabit_WeeklyQuota(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		done     []string
		wantType OptimizationType
		wantNext int
	}{
		{
			name:   "beats target every week",
			target: 3,
			done: []string{
				"2025-05-12", "2025-05-13", "2025-05-14", "2025-05-15",
				"2025-05-19", "2025-05-20", "2025-05-21", "2025-05-22",
				"2025-05-26", "2025-05-27", "2025-05-28", "2025-05-29",
				"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05",
			},
			wantType: OptimizationRaiseQuota,
			wantNext: 4,
		},
		{
			name:     "far below target",
			target:   4,
			done:     []string{"2025-05-12", "2025-05-19", "2025-05-26", "2025-06-02"},
			wantType: OptimizationLowerQuota,
			wantNext: 3,
		},
		{
			name:     "no completions",
			target:   2,
			wantType: OptimizationRemoveHabit,
		},
		{
			name:   "meets target",
			target: 2,
			done: []string{
				"2025-05-12", "2025-05-13", "2025-05-19", "2025-05-20",
				"2025-05-26", "2025-05-27", "2025-06-02", "2025-06-03",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewHabitAnalyzer(&mockStore{}, testClock)
			h := habit("w1", models.WeeklyQuota(tt.target), "2025-01-01", tt.done...)

			opts, err := analyzer.AnalyzeHabit(h, today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantType == "" {
				if len(opts) != 0 {
					t.Errorf("expected no optimizations, got %+v", opts)
				}
				return
			}
			if len(opts) != 1 {
				t.Fatalf("expected 1 optimization, got %d", len(opts))
			}
			if opts[0].Type != tt.wantType {
				t.Errorf("expected %v, got %v", tt.wantType, opts[0].Type)
			}
			if tt.wantNext > 0 && opts[0].Suggested.Value != tt.wantNext {
				t.Errorf("expected target %d, got %d", tt.wantNext, opts[0].Suggested.Value)
			}
		})
	}
}

func TestAnalyzeHabit_WeeklyQuotaTooNew(t *testing.T) {
	analyzer := NewHabitAnalyzer(&mockStore{}, testClock)

	// only the week of 06-02 is complete since the start
	h := habit("w1", models.WeeklyQuota(3), "2025-06-01")
	opts, err := analyzer.AnalyzeHabit(h, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("expected no optimizations, got %+v", opts)
	}
}

func TestAnalyzeAllHabits(t *testing.T) {
	store := &mockStore{
		habits: []models.Habit{
			habit("h1", models.DailyRecurrence(), "2025-01-01"),
			habit("h2", models.DailyRecurrence(), "2025-06-10"),
		},
	}
	analyzer := NewHabitAnalyzer(store, testClock)

	opts, err := analyzer.AnalyzeAllHabits()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].HabitID != "h1" {
		t.Errorf("expected one suggestion for h1, got %+v", opts)
	}
}

func TestApply(t *testing.T) {
	store := &mockStore{
		habits: []models.Habit{
			habit("h1", models.DailyRecurrence(), "2025-01-01"),
			habit("h2", models.WeeklyQuota(3), "2025-01-01"),
		},
	}
	analyzer := NewHabitAnalyzer(store, testClock)

	next := models.EveryNDays(2)
	err := analyzer.Apply(Optimization{HabitID: "h1", Type: OptimizationReduceFrequency, Suggested: &next})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.habits[0].Recurrence.Type != constants.RecurrenceInterval || store.habits[0].Recurrence.Value != 2 {
		t.Errorf("expected every 2 days, got %v", store.habits[0].Recurrence)
	}

	if err := analyzer.Apply(Optimization{HabitID: "h2", Type: OptimizationRemoveHabit}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.habits) != 1 {
		t.Errorf("expected 1 habit left, got %d", len(store.habits))
	}

	err = analyzer.Apply(Optimization{HabitID: "missing", Type: OptimizationRemoveHabit})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = analyzer.Apply(Optimization{HabitID: "h1", Type: OptimizationLowerQuota})
	if err == nil {
		t.Error("expected an error for a missing suggested rule")
	}
	if store.saveCalls != 2 {
		t.Errorf("expected 2 saves, got %d", store.saveCalls)
	}
}

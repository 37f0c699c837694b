package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/scheduler"
	"github.com/julianstephens/routinely/internal/stats"
	"github.com/julianstephens/routinely/internal/tui/components/habits"
	"github.com/julianstephens/routinely/internal/tui/components/sleep"
	statsview "github.com/julianstephens/routinely/internal/tui/components/stats"
	"github.com/julianstephens/routinely/internal/tui/components/today"
	"github.com/julianstephens/routinely/internal/validation"
)

// TaskFormModel represents the form model for task creation
type TaskFormModel struct {
	Title    string
	Category string
	Date     string
	Quantity string
	Unit     string
}

// HabitFormModel represents the form model for habit creation
type HabitFormModel struct {
	Title     string
	Category  string
	StartDate string
	Kind      constants.RecurrenceType
	Value     string
}

// SleepFormModel represents the form model for logging a night
type SleepFormModel struct {
	Date    string
	Bed     string
	Wake    string
	Quality int
}

// PendingDelete is the item awaiting confirmation.
type PendingDelete struct {
	ID    string
	Kind  constants.ItemKind
	Title string
}

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// Model represents the shared state for the TUI
type Model struct {
	Service       *routines.Service
	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model
	TodayModel    today.Model
	HabitsModel   habits.Model
	SleepModel    sleep.Model
	StatsModel    statsview.Model
	Form          *huh.Form
	TaskForm      *TaskFormModel
	HabitForm     *HabitFormModel
	SleepForm     *SleepFormModel
	Delete        PendingDelete
	// Date is the day shown on the Today view.
	Date                string
	Quitting            bool
	Width               int
	Height              int
	ValidationWarning   string
	ValidationConflicts []validation.Conflict
	StatusMessage       string
	FormError           string
}

// New creates a new state Model
func New(svc *routines.Service) Model {
	m := Model{
		Service:     svc,
		State:       constants.StateToday,
		Keys:        DefaultKeyMap(),
		Help:        help.New(),
		Date:        svc.Today(),
		TodayModel:  today.New(scheduler.DayPlan{}, 0, 0),
		HabitsModel: habits.New(nil, "", 0, 0),
		SleepModel:  sleep.New(0, 0),
		StatsModel:  statsview.New(stats.Summary{}, 0, 0),
	}
	m.Refresh()
	return m
}

// Refresh reloads every view from the service. Failures are shown in the
// status line and leave the previous data in place.
func (m *Model) Refresh() {
	m.StatusMessage = ""

	if plan, err := m.Service.Plan(m.Date); err == nil {
		m.TodayModel.SetPlan(plan)
	} else {
		m.StatusMessage = "Failed to load day: " + err.Error()
	}

	today := m.Service.Today()
	if weeks, err := m.Service.HabitLog(today); err == nil {
		m.HabitsModel.SetHabits(weeks, today)
	} else {
		m.StatusMessage = "Failed to load habits: " + err.Error()
	}

	report, reportErr := m.Service.SleepReport()
	sessions, sessionsErr := m.Service.SleepSessions()
	if reportErr == nil && sessionsErr == nil {
		m.SleepModel.SetData(report, sessions)
	} else {
		m.StatusMessage = "Failed to load sleep data"
	}

	if summary, err := m.Service.Summary(); err == nil {
		m.StatsModel.SetSummary(summary)
	} else {
		m.StatusMessage = "Failed to load stats: " + err.Error()
	}

	m.UpdateValidationStatus()
}

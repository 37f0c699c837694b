// Package tui is the interactive terminal interface: a tabbed view of the
// day, the habit week, sleep and stats, with forms for adding items.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/tui/components/habits"
	"github.com/julianstephens/routinely/internal/tui/components/today"
	"github.com/julianstephens/routinely/internal/tui/state"
)

var logSleepKey = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log sleep"))

type Model struct {
	state.Model
}

func NewModel(svc *routines.Service) Model {
	return Model{Model: state.New(svc)}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateToday:
		tk := today.DefaultKeyMap()
		keys = append(keys, tk.Toggle, tk.AddTask, tk.AddHabit)
	case constants.StateHabits:
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Toggle, hk.Add)
	case constants.StateSleep:
		keys = append(keys, logSleepKey)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down}

	var actions []key.Binding
	switch m.State {
	case constants.StateToday:
		tk := today.DefaultKeyMap()
		actions = []key.Binding{tk.Toggle, tk.AddTask, tk.AddHabit, tk.Delete, tk.PrevDay, tk.NextDay, tk.Today}
	case constants.StateHabits:
		hk := habits.DefaultKeyMap()
		actions = []key.Binding{hk.Toggle, hk.Add, hk.Delete}
	case constants.StateSleep:
		actions = []key.Binding{logSleepKey}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// filtering reports whether the active list is capturing typed input.
func (m Model) filtering() bool {
	switch m.State {
	case constants.StateToday:
		return m.TodayModel.Filtering()
	case constants.StateHabits:
		return m.HabitsModel.Filtering()
	}
	return false
}

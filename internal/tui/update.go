package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/tui/handlers"
)

// chromeHeight is the rows taken by the tab bar, status line and help.
const chromeHeight = 5

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	switch m.State {
	case constants.StateAddTask:
		return m, handlers.HandleAddTaskState(&m.Model, msg)
	case constants.StateAddHabit:
		return m, handlers.HandleAddHabitState(&m.Model, msg)
	case constants.StateLogSleep:
		return m, handlers.HandleLogSleepState(&m.Model, msg)
	case constants.StateConfirmDelete:
		return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, keyMsg); handled {
			return m, cmd
		}
	}

	if handled, cmd := handlers.HandleTodayMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleHabitMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSleepMessages(&m.Model, msg); handled {
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateToday:
		m.TodayModel, cmd = m.TodayModel.Update(msg)
	case constants.StateHabits:
		m.HabitsModel, cmd = m.HabitsModel.Update(msg)
	case constants.StateSleep:
		m.SleepModel, cmd = m.SleepModel.Update(msg)
	case constants.StateStats:
		m.StatsModel, cmd = m.StatsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Help.Width = width

	h, v := docStyle.GetFrameSize()
	contentWidth := max(width-h, 0)
	contentHeight := max(height-v-chromeHeight, 0)
	m.TodayModel.SetSize(contentWidth, contentHeight)
	m.HabitsModel.SetSize(contentWidth, contentHeight)
	m.SleepModel.SetSize(contentWidth, contentHeight)
	m.StatsModel.SetSize(contentWidth, contentHeight)
}

package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/tui/state"
)

// HandleGlobalKeys handles key presses shared by every main view. Forms and
// confirmations never reach it.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Tab):
		m.State = cycleView(m.State, 1)
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		m.State = cycleView(m.State, -1)
		return true, nil
	}
	return false, nil
}

func cycleView(current constants.SessionState, step int) constants.SessionState {
	views := constants.MainViews
	for i, v := range views {
		if v == current {
			return views[(i+step+len(views))%len(views)]
		}
	}
	return current
}

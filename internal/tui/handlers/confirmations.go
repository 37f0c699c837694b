package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		var err error
		if m.Delete.Kind == constants.ItemHabit {
			err = m.Service.DeleteHabit(m.Delete.ID)
		} else {
			err = m.Service.DeleteTask(m.Delete.ID)
		}
		m.Delete = state.PendingDelete{}
		m.State = m.PreviousState
		m.Refresh()
		if err != nil {
			m.StatusMessage = "Delete failed: " + err.Error()
		}
	case "n", "N", "esc":
		m.Delete = state.PendingDelete{}
		m.State = m.PreviousState
	}
	return nil
}

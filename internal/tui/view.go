package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routinely/internal/constants"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateToday:  "Today",
	constants.StateHabits: "Habits",
	constants.StateSleep:  "Sleep",
	constants.StateStats:  "Stats",
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateToday:
		content = docStyle.Render(m.TodayModel.View())
	case constants.StateHabits:
		content = docStyle.Render(m.HabitsModel.View())
	case constants.StateSleep:
		content = docStyle.Render(m.SleepModel.View())
	case constants.StateStats:
		content = m.StatsModel.View()
	case constants.StateAddTask, constants.StateAddHabit, constants.StateLogSleep:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, view := range constants.MainViews {
		title := tabTitles[view]
		if m.State == view || (m.PreviousState == view && !isMainView(m.State)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.StatusMessage != "":
		return dangerStyle.Render(m.StatusMessage)
	case m.ValidationWarning != "":
		return warningStyle.Render(m.ValidationWarning)
	default:
		return statusStyle.Render(m.Date)
	}
}

func (m Model) viewForm() string {
	if m.Form == nil {
		return ""
	}
	view := m.Form.View()
	if m.FormError != "" {
		view = dangerStyle.Render("Error: "+m.FormError) + "\n\n" + view
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.Width, max(m.Height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s %q?", m.Delete.Kind, m.Delete.Title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func isMainView(s constants.SessionState) bool {
	_, ok := tabTitles[s]
	return ok
}

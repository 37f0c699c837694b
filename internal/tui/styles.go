package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	// TodayMarker highlights the current day in calendar output.
	TodayMarker = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	// heatColors run from nothing completed to everything completed.
	heatColors = []lipgloss.Color{"236", "22", "28", "34", "40"}
)

// HeatCell renders one day of a completion heatmap at intensity level 0-4.
// Out-of-range levels are clamped.
func HeatCell(level int) string {
	level = min(max(level, 0), len(heatColors)-1)
	return lipgloss.NewStyle().Foreground(heatColors[level]).Render("■")
}

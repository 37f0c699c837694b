package stats

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routinely/internal/stats"
)

const barWidth = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

type Model struct {
	summary stats.Summary
	width   int
	height  int
}

func New(summary stats.Summary, width, height int) Model {
	return Model{summary: summary, width: width, height: height}
}

func (m *Model) SetSummary(summary stats.Summary) {
	m.summary = summary
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	s := m.summary

	var sections []string

	overview := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Today:", fmt.Sprintf("%d/%d (%d%%)", s.Today.TotalCompleted, s.Today.TotalDue, int(s.Today.Rate*100+0.5))),
		row("7-day average:", fmt.Sprintf("%d%%", s.WeekAverage)),
		row("Streak:", fmt.Sprintf("%d day(s)", s.Streak)),
		row("Items:", fmt.Sprintf("%d", s.TotalItems)),
		row("Upcoming tasks:", fmt.Sprintf("%d", s.UpcomingCount)),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Overview")+"\n"+overview+"\n\n"+s.Message))

	var week strings.Builder
	for _, d := range s.Week {
		filled := d.Percent * barWidth / 100
		fmt.Fprintf(&week, "%-4s %s%s %3d%%\n",
			d.Label,
			barStyle.Render(strings.Repeat("█", filled)),
			strings.Repeat("░", barWidth-filled),
			d.Percent,
		)
	}
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Last 7 days")+"\n"+week.String()))

	if len(s.Categories) > 0 {
		var cats []string
		for _, c := range s.Categories {
			cats = append(cats, row(c.Name+":", fmt.Sprintf("%d", c.Count)))
		}
		sections = append(sections, sectionStyle.Render(titleStyle.Render("Categories")+"\n"+lipgloss.JoinVertical(lipgloss.Left, cats...)))
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 4).Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
	)
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

package sleep

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/utils"
)

var (
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const recentSessions = 7

type LogSleepMsg struct{}

type Model struct {
	viewport viewport.Model
	report   routines.SleepReport
	sessions []models.SleepSession
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "l" {
		return m, func() tea.Msg { return LogSleepMsg{} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetData shows report and the most recent sessions, newest first.
func (m *Model) SetData(report routines.SleepReport, sessions []models.SleepSession) {
	m.report = report
	m.sessions = slices.Clone(sessions)
	slices.SortStableFunc(m.sessions, func(a, b models.SleepSession) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(m.sessions) > recentSessions {
		m.sessions = m.sessions[:recentSessions]
	}
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	score := m.report.Score
	if score.HasData() {
		b.WriteString(scoreStyle.Render(fmt.Sprintf("Sleep score %d (%s)", score.Score, score.Grade)))
	} else {
		b.WriteString(scoreStyle.Render("Sleep score N/A"))
	}
	b.WriteString("\n" + score.Message + "\n\n")

	week := m.report.Week
	fmt.Fprintf(&b, "%s %.1fh (target %.1fh)\n", labelStyle.Render("Avg duration:"), week.DurationHours, m.report.TargetHours)
	if week.Sessions > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Avg bed time:"), week.BedTime)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Avg wake time:"), week.WakeTime)
	}
	fmt.Fprintf(&b, "%s %d\n\n", labelStyle.Render("Nights this week:"), week.Sessions)

	if len(m.sessions) == 0 {
		b.WriteString(dimStyle.Render("No sleep recorded yet. Press 'l' to log a night."))
	} else {
		b.WriteString("Recent nights\n")
		for _, s := range m.sessions {
			fmt.Fprintf(&b, "  %s  %s - %s  %4.1fh  %s\n",
				s.Date,
				utils.MinutesToTime(s.BedTime),
				utils.MinutesToTime(s.WakeTime),
				s.DurationHours,
				strings.Repeat("★", s.Quality),
			)
		}
		b.WriteString("\n" + dimStyle.Render("Press 'l' to log a night."))
	}
	m.viewport.SetContent(b.String())
}

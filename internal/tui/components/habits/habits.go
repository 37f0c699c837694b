package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/routines"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID    string
	Title string
}

var weekdayLetters = []string{"M", "T", "W", "T", "F", "S", "S"}

type Item struct {
	Week  routines.HabitWeek
	Today string
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  (%s)", i.Week.Habit.Title, i.Week.Habit.Recurrence)
}

// Description draws the week as one cell per day: ✓ done, ○ due and open,
// · not due. Today's cell is bracketed.
func (i Item) Description() string {
	var b strings.Builder
	for d, day := range i.Week.Days {
		mark := "·"
		switch {
		case i.Week.Done[d]:
			mark = "✓"
		case i.Week.Due[d]:
			mark = "○"
		}
		cell := weekdayLetters[d%7] + mark
		if day == i.Today {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(cell)
	}
	if q := i.Week.Quota; q != nil {
		fmt.Fprintf(&b, "  %d/%d this week", q.CompletedInWeek, q.Target)
	}
	return b.String()
}

func (i Item) FilterValue() string { return i.Week.Habit.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today string
}

func New(weeks []routines.HabitWeek, today string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	m := Model{list: l, keys: keys}
	m.SetHabits(weeks, today)
	return m
}

func (m *Model) SetHabits(weeks []routines.HabitWeek, today string) {
	m.today = today
	items := make([]list.Item, len(weeks))
	for i, w := range weeks {
		items[i] = Item{Week: w, Today: today}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx < len(items) {
		m.list.Select(idx)
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Week.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Week.Habit.ID, Title: i.Week.Habit.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

// Filtering reports whether the list is taking typed filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

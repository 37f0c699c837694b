package today

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/scheduler"
)

type AddTaskMsg struct{}

type AddHabitMsg struct{}

type ToggleItemMsg struct {
	ID string
}

type DeleteItemMsg struct {
	ID    string
	Kind  constants.ItemKind
	Title string
}

// ShiftDayMsg moves the viewed date by Days; zero returns to today.
type ShiftDayMsg struct {
	Days int
}

type Item struct {
	DueItem scheduler.DueItem
}

func (i Item) Title() string {
	switch {
	case i.DueItem.Completed:
		return "✓ " + i.DueItem.Title
	case i.DueItem.Deemphasized:
		return "· " + i.DueItem.Title
	default:
		return "○ " + i.DueItem.Title
	}
}

func (i Item) Description() string {
	parts := []string{i.DueItem.Category}
	if i.DueItem.Quantity != 0 {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%g %s", i.DueItem.Quantity, i.DueItem.Unit)))
	}
	if i.DueItem.IsHabit() {
		parts = append(parts, i.DueItem.Recurrence.String())
	}
	if q := i.DueItem.Quota; q != nil {
		progress := fmt.Sprintf("%d/%d this week", q.CompletedInWeek, q.Target)
		if q.QuotaMet {
			progress += ", target met"
		}
		parts = append(parts, progress)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.DueItem.Title }

type KeyMap struct {
	AddTask  key.Binding
	AddHabit key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Category key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		AddTask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		AddHabit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "add habit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	plan     scheduler.DayPlan
	category string // "" lists every category
}

func New(plan scheduler.DayPlan, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.AddTask, keys.AddHabit}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.AddTask, keys.AddHabit, keys.Delete, keys.PrevDay, keys.NextDay, keys.Today, keys.Category}
	}

	m := Model{list: l, keys: keys}
	m.SetPlan(plan)
	return m
}

// SetPlan replaces the listed items, keeping the cursor where it was.
func (m *Model) SetPlan(plan scheduler.DayPlan) {
	m.plan = plan
	m.refreshItems()
}

func (m Model) Plan() scheduler.DayPlan { return m.plan }

// Category is the category the list is narrowed to, "" for all.
func (m Model) Category() string { return m.category }

// Categories lists the distinct categories of the plan's items, sorted.
func (m Model) Categories() []string {
	var out []string
	for _, it := range m.plan.Items {
		if it.Category != "" && !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	slices.Sort(out)
	return out
}

// cycleCategory steps all -> each category in turn -> all.
func (m *Model) cycleCategory() {
	cats := m.Categories()
	next := ""
	if i := slices.Index(cats, m.category); i+1 < len(cats) {
		next = cats[i+1]
	}
	m.category = next
	m.list.Select(0)
	m.refreshItems()
}

func (m *Model) refreshItems() {
	shown := scheduler.FilterByCategory(m.plan.Items, m.category)
	items := make([]list.Item, len(shown))
	for i, it := range shown {
		items[i] = Item{DueItem: it}
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
		case key.Matches(msg, m.keys.AddTask):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.AddHabit):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.PrevDay):
			return m, func() tea.Msg { return ShiftDayMsg{Days: -1} }
		case key.Matches(msg, m.keys.NextDay):
			return m, func() tea.Msg { return ShiftDayMsg{Days: 1} }
		case key.Matches(msg, m.keys.Today):
			return m, func() tea.Msg { return ShiftDayMsg{} }
		case key.Matches(msg, m.keys.Category):
			m.cycleCategory()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleItemMsg{ID: i.DueItem.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return DeleteItemMsg{ID: i.DueItem.ID, Kind: i.DueItem.Kind, Title: i.DueItem.Title}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := fmt.Sprintf("%s  %d/%d done (%d%%)", m.plan.Date, m.plan.Completed, m.plan.Total, m.plan.Percent())
	if m.category != "" {
		header += "  [" + m.category + "]"
	}
	header += "\n\n"
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		if m.category != "" {
			return header + "  Nothing due in " + m.category + ".\n  Press 'c' to show another category."
		}
		return header + "  Nothing due.\n  Press 'a' to add a task or 'h' to add a habit."
	}
	return header + m.list.View()
}

// Filtering reports whether the list is taking typed filter input.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, max(height-2, 0))
}

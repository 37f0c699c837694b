package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/tui/components/today"
	"github.com/julianstephens/routinely/internal/tui/state"
	"github.com/julianstephens/routinely/internal/utils"
)

// NewTaskForm creates a new form for adding a task
func NewTaskForm(m *state.Model, fm *state.TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(huh.ValidateNotEmpty()),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(m)...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for the viewed day").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Quantity").
				Description("Optional, e.g. 20").
				Value(&fm.Quantity).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Unit").
				Description("Optional, e.g. pages").
				Value(&fm.Unit),
		),
	)
}

// HandleAddTaskState handles the add task state
func HandleAddTaskState(m *state.Model, msg tea.Msg) tea.Cmd {
	return updateForm(m, msg, func() error {
		date := strings.TrimSpace(m.TaskForm.Date)
		if date == "" {
			date = m.Date
		}
		_, err := m.Service.AddTask(routines.TaskInput{
			Title:    m.TaskForm.Title,
			Category: m.TaskForm.Category,
			Date:     date,
			Quantity: parseQuantity(m.TaskForm.Quantity),
			Unit:     strings.TrimSpace(m.TaskForm.Unit),
		})
		return err
	}, func() *huh.Form { return NewTaskForm(m, m.TaskForm) })
}

// HandleTodayMessages handles messages from the today component
func HandleTodayMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case today.AddTaskMsg:
		m.TaskForm = &state.TaskFormModel{Date: m.Date}
		return true, openForm(m, constants.StateAddTask, NewTaskForm(m, m.TaskForm))

	case today.AddHabitMsg:
		m.HabitForm = newHabitFormModel(m.Date)
		return true, openForm(m, constants.StateAddHabit, NewHabitForm(m, m.HabitForm))

	case today.ToggleItemMsg:
		if _, err := m.Service.Toggle(msg.ID, m.Date); err != nil {
			m.Refresh()
			m.StatusMessage = "Toggle failed: " + err.Error()
			return true, nil
		}
		m.Refresh()
		return true, nil

	case today.DeleteItemMsg:
		m.Delete = state.PendingDelete{ID: msg.ID, Kind: msg.Kind, Title: msg.Title}
		m.PreviousState = m.State
		m.State = constants.StateConfirmDelete
		return true, nil

	case today.ShiftDayMsg:
		if msg.Days == 0 {
			m.Date = m.Service.Today()
		} else if next, err := utils.AddDays(m.Date, msg.Days); err == nil {
			m.Date = next
		}
		m.Refresh()
		return true, nil
	}
	return false, nil
}

package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/tui/components/habits"
	"github.com/julianstephens/routinely/internal/tui/state"
)

func newHabitFormModel(startDate string) *state.HabitFormModel {
	return &state.HabitFormModel{StartDate: startDate, Kind: constants.RecurrenceDaily}
}

// NewHabitForm creates a new form for adding a habit
func NewHabitForm(m *state.Model, fm *state.HabitFormModel) *huh.Form {
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
				Title("Start date").
				Description("YYYY-MM-DD, blank for today").
				Value(&fm.StartDate).
				Validate(validateDate),
			huh.NewSelect[constants.RecurrenceType]().
				Title("Recurrence").
				Options(
					huh.NewOption("Daily", constants.RecurrenceDaily),
					huh.NewOption("Every N days", constants.RecurrenceInterval),
					huh.NewOption("N times per week", constants.RecurrenceWeekly),
				).
				Value(&fm.Kind),
			huh.NewInput().
				Title("N").
				Description("Days between (2+) or completions per week (1-7)").
				Value(&fm.Value).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("N must be a whole number")
					}
					return nil
				}),
		),
	)
}

// habitRecurrence builds the rule chosen in fm.
func habitRecurrence(fm *state.HabitFormModel) (models.Recurrence, error) {
	n := 0
	if v := strings.TrimSpace(fm.Value); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil {
			return models.Recurrence{}, err
		}
	}
	raw := models.Recurrence{Type: fm.Kind, Value: n}
	if err := raw.Validate(); err != nil {
		return models.Recurrence{}, err
	}
	return raw.Normalize(), nil
}

// HandleAddHabitState handles the add habit state
func HandleAddHabitState(m *state.Model, msg tea.Msg) tea.Cmd {
	return updateForm(m, msg, func() error {
		rec, err := habitRecurrence(m.HabitForm)
		if err != nil {
			return err
		}
		_, err = m.Service.AddHabit(routines.HabitInput{
			Title:      m.HabitForm.Title,
			Category:   m.HabitForm.Category,
			StartDate:  strings.TrimSpace(m.HabitForm.StartDate),
			Recurrence: rec,
		})
		return err
	}, func() *huh.Form { return NewHabitForm(m, m.HabitForm) })
}

// HandleHabitMessages handles messages from the habits component
func HandleHabitMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.HabitForm = newHabitFormModel(m.Service.Today())
		return true, openForm(m, constants.StateAddHabit, NewHabitForm(m, m.HabitForm))

	case habits.ToggleHabitMsg:
		_, err := m.Service.Toggle(msg.ID, m.Service.Today())
		m.Refresh()
		if err != nil {
			m.StatusMessage = "Toggle failed: " + err.Error()
		}
		return true, nil

	case habits.DeleteHabitMsg:
		m.Delete = state.PendingDelete{ID: msg.ID, Kind: constants.ItemHabit, Title: msg.Title}
		m.PreviousState = m.State
		m.State = constants.StateConfirmDelete
		return true, nil
	}
	return false, nil
}

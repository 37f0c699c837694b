package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/sleep"
	"github.com/julianstephens/routinely/internal/tui/state"
	"github.com/julianstephens/routinely/internal/utils"
)

// updateForm feeds msg to the open form. Esc aborts and returns to the
// previous view. submit runs once the form completes; when it fails the form
// is rebuilt by reopen so the user can correct the input.
func updateForm(m *state.Model, msg tea.Msg, submit func() error, reopen func() *huh.Form) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		closeForm(m)
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}

	switch m.Form.State {
	case huh.StateCompleted:
		if err := submit(); err != nil {
			m.FormError = err.Error()
			m.Form = reopen()
			return m.Form.Init()
		}
		closeForm(m)
		m.Refresh()
	case huh.StateAborted:
		closeForm(m)
	}
	return cmd
}

func openForm(m *state.Model, next constants.SessionState, form *huh.Form) tea.Cmd {
	if !isMainView(m.State) {
		return nil
	}
	m.PreviousState = m.State
	m.State = next
	m.FormError = ""
	m.Form = form
	return m.Form.Init()
}

func closeForm(m *state.Model) {
	m.FormError = ""
	m.Form = nil
	m.State = m.PreviousState
}

func isMainView(s constants.SessionState) bool {
	for _, v := range constants.MainViews {
		if v == s {
			return true
		}
	}
	return false
}

func categoryOptions(m *state.Model) []huh.Option[string] {
	categories, err := m.Service.Categories()
	if err != nil || len(categories) == 0 {
		categories = models.DefaultCategories
	}
	return huh.NewOptions(categories...)
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || utils.IsDateKey(s) {
		return nil
	}
	return fmt.Errorf("use YYYY-MM-DD")
}

func validateQuantity(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("quantity must be a number")
	}
	if v < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

func parseQuantity(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func validateClock(s string) error {
	_, err := sleep.ParseClock(strings.TrimSpace(s), "")
	return err
}

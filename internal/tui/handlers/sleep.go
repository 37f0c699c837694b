package handlers

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routinely/internal/constants"
	sleepcalc "github.com/julianstephens/routinely/internal/sleep"
	"github.com/julianstephens/routinely/internal/tui/components/sleep"
	"github.com/julianstephens/routinely/internal/tui/state"
)

// NewSleepForm creates a new form for logging a night of sleep
func NewSleepForm(fm *state.SleepFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bed time").
				Description("HH:MM, 24-hour").
				Value(&fm.Bed).
				Validate(validateClock),
			huh.NewInput().
				Title("Wake time").
				Description("HH:MM, 24-hour").
				Value(&fm.Wake).
				Validate(validateClock),
			huh.NewSelect[int]().
				Title("Quality").
				Options(
					huh.NewOption("1 - poor", 1),
					huh.NewOption("2", 2),
					huh.NewOption("3 - okay", 3),
					huh.NewOption("4", 4),
					huh.NewOption("5 - great", 5),
				).
				Value(&fm.Quality),
			huh.NewInput().
				Title("Date").
				Description("Wake date, YYYY-MM-DD, blank for today").
				Value(&fm.Date).
				Validate(validateDate),
		),
	)
}

// HandleLogSleepState handles the log sleep state
func HandleLogSleepState(m *state.Model, msg tea.Msg) tea.Cmd {
	return updateForm(m, msg, func() error {
		bed, err := sleepcalc.ParseClock(m.SleepForm.Bed, "")
		if err != nil {
			return err
		}
		wake, err := sleepcalc.ParseClock(m.SleepForm.Wake, "")
		if err != nil {
			return err
		}
		_, err = m.Service.LogSleep(strings.TrimSpace(m.SleepForm.Date), bed, wake, m.SleepForm.Quality)
		return err
	}, func() *huh.Form { return NewSleepForm(m.SleepForm) })
}

// HandleSleepMessages handles messages from the sleep component
func HandleSleepMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	if _, ok := msg.(sleep.LogSleepMsg); ok {
		m.SleepForm = &state.SleepFormModel{Quality: 3}
		return true, openForm(m, constants.StateLogSleep, NewSleepForm(m.SleepForm))
	}
	return false, nil
}

package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/scheduler"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpPlan     *DebugDumpPlanCmd     `cmd:"" help:"Dump the due list of a day as JSON."`
	DumpTask     *DebugDumpTaskCmd     `cmd:"" help:"Dump task data as JSON."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump habit data as JSON."`
	DumpSleep    *DebugDumpSleepCmd    `cmd:"" help:"Dump the sleep sessions of a day as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	DumpAll      *DebugDumpAllCmd      `cmd:"" help:"Dump every collection as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// resolveDay accepts YYYY-MM-DD or "today".
func resolveDay(ctx *cli.Context, day string) (string, error) {
	if day == "today" {
		svc, err := ctx.Service()
		if err != nil {
			return "", err
		}
		return svc.Today(), nil
	}
	if !utils.IsDateKey(day) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", day)
	}
	return day, nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpPlanCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpPlanCmd) Run(ctx *cli.Context) error {
	date, err := resolveDay(ctx, cmd.Date)
	if err != nil {
		return err
	}
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	habits, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	plan, err := scheduler.PlanDay(date, tasks, habits)
	if err != nil {
		return err
	}
	return printJSON(plan)
}

type DebugDumpTaskCmd struct {
	ID string `arg:"" help:"ID of the task to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	i, ok := models.FindTask(tasks, cmd.ID)
	if !ok {
		return fmt.Errorf("task not found: %s", cmd.ID)
	}
	return printJSON(tasks[i])
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.LoadHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	i, ok := models.FindHabit(habits, cmd.ID)
	if !ok {
		return fmt.Errorf("habit not found: %s", cmd.ID)
	}
	return printJSON(habits[i])
}

type DebugDumpSleepCmd struct {
	Date string `arg:"" help:"Date of the sessions to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpSleepCmd) Run(ctx *cli.Context) error {
	date, err := resolveDay(ctx, cmd.Date)
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.LoadSleep()
	if err != nil {
		return fmt.Errorf("failed to load sleep sessions: %w", err)
	}
	var out []models.SleepSession
	for _, s := range sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fmt.Errorf("no sleep sessions found for date: %s", date)
	}
	return printJSON(out)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

type DebugDumpAllCmd struct{}

func (cmd *DebugDumpAllCmd) Run(ctx *cli.Context) error {
	snapshot, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}
	return printJSON(snapshot)
}

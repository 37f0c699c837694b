package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/cli/backups"
	"github.com/julianstephens/routinely/internal/cli/calendar"
	"github.com/julianstephens/routinely/internal/cli/categories"
	"github.com/julianstephens/routinely/internal/cli/exercise"
	"github.com/julianstephens/routinely/internal/cli/habits"
	"github.com/julianstephens/routinely/internal/cli/optimize"
	"github.com/julianstephens/routinely/internal/cli/plans"
	"github.com/julianstephens/routinely/internal/cli/settings"
	"github.com/julianstephens/routinely/internal/cli/sleep"
	"github.com/julianstephens/routinely/internal/cli/system"
	"github.com/julianstephens/routinely/internal/cli/tasks"
	"github.com/julianstephens/routinely/internal/constants"
	apperrors "github.com/julianstephens/routinely/internal/errors"
	"github.com/julianstephens/routinely/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store location: a SQLite file, a .json file, or a PostgreSQL, Redis or MongoDB connection string. Credentials must NOT be embedded in PostgreSQL connection strings; use the OS keyring instead." type:"string" env:"ROUTINELY_CONFIG"`
	Verbose  bool   `short:"v" help:"Log debug output to stderr as well as the log file."`
	LogLevel string `help:"Minimum log level." enum:"debug,info,warn,error" default:"info" env:"ROUTINELY_LOG_LEVEL"`

	Init     system.InitCmd         `cmd:"" help:"Initialize routinely storage."`
	Migrate  system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    plans.TodayCmd         `cmd:"" help:"Show the items due on a day."`
	Task     tasks.TaskCmd          `cmd:"" help:"Manage one-off tasks."`
	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits and habit tracking."`
	Sleep    sleep.SleepCmd         `cmd:"" help:"Track sleep and view the sleep score."`
	Exercise exercise.ExerciseCmd   `cmd:"" help:"Log workouts and view exercise totals."`
	Category categories.CategoryCmd `cmd:"" help:"Manage categories."`
	Calendar calendar.CalendarCmd   `cmd:"" help:"Month calendar, completion heatmap and upcoming tasks."`
	Stats    calendar.StatsCmd      `cmd:"" help:"Show the completion summary."`
	Report   calendar.ReportCmd     `cmd:"" help:"Render the weekly report."`
	Serve    system.ServeCmd        `cmd:"" help:"Serve the JSON API."`
	Validate system.ValidateCmd     `cmd:"" help:"Validate stored data for conflicts."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Optimize optimize.OptimizeCmd   `cmd:"" help:"Suggest recurrence changes from habit history."`
	Backup   backups.BackupCmd      `cmd:"" help:"Manage local store backups."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether a connection string is stored." default:"1"`
	} `cmd:"" help:"Manage the connection string stored in the OS keyring."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send due-item notifications (used by the scheduler)."`
}

// noLoad lists commands that open the store themselves or never touch it.
var noLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"doctor":  true,
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to read .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habits, routines, sleep and exercise in one daily checklist"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"heatmap_days":    strconv.Itoa(constants.HeatmapDays),
			"upcoming_limit":  strconv.Itoa(constants.UpcomingTaskLimit),
			"optimize_window": strconv.Itoa(constants.OptimizeWindowDays),
		},
	)

	config := cli.ResolveConfig(CLI.Config, constants.DefaultConfigPath)
	store, err := cli.OpenStore(config, config != CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose,
		ConfigDir: cli.ConfigDir(store),
		Level:     CLI.LogLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{Store: store}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && !noLoad[ctx.Selected().Name] && !noLoad[rootCommand(ctx)] {
		if err := store.Load(); err != nil {
			logger.Error("Failed to load store", "config", store.GetConfigPath(), "error", err)
			store.Close()
			apperrors.Fatal(err)
		}
	}

	runErr := ctx.Run(appCtx)
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	if runErr != nil {
		logger.Error("Command failed", "command", ctx.Command())
		apperrors.Fatal(runErr)
	}
}

// rootCommand is the first word of the selected command path.
func rootCommand(ctx *kong.Context) string {
	for _, p := range ctx.Path {
		if p.Command != nil {
			return p.Command.Name
		}
	}
	return ""
}

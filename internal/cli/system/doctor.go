package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/routinely/internal/backup"
	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/keyring"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
	"github.com/julianstephens/routinely/internal/validation"
)

type DoctorCmd struct{}

// check is one diagnostic. needsDB checks are skipped when the store cannot
// be loaded; warnOnly checks never fail the run.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	{name: "Habit integrity", needsDB: true, run: checkHabitsIntegrity},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Environment", warnOnly: true, run: checkEnvironment},
}

// knownEnv are the ROUTINELY_* variables read by the CLI and the test suites.
var knownEnv = map[string]bool{
	"CONFIG":            true,
	"LOG_LEVEL":         true,
	"ADDR":              true,
	"REPORT_STYLE":      true,
	"POSTGRES_TEST_URL": true,
	"REDIS_TEST_URL":    true,
	"MONGO_TEST_URL":    true,
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		// key-value stores have no schema
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'routinely migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return fmt.Errorf("backups are not managed for this store: %v", err)
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'routinely backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snapshot, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}
	result := validation.New(models.NewCategoryRegistry(snapshot.Categories)).ValidateSnapshot(snapshot)
	if errs := result.Errors(); len(errs) > 0 {
		descriptions := make([]string, 0, len(errs))
		for _, c := range errs {
			descriptions = append(descriptions, c.Description)
		}
		return fmt.Errorf("%d problem(s), run 'routinely validate': %s", len(errs), strings.Join(descriptions, "; "))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not recognized", settings.Timezone)
	}
	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	var bad []string
	for _, h := range habits {
		if h.Recurrence.IsNone() {
			bad = append(bad, fmt.Sprintf("%q has no recurring rule", h.Title))
			continue
		}
		for _, d := range h.CompletedDates {
			if d < h.StartDate {
				bad = append(bad, fmt.Sprintf("%q has completions before %s", h.Title, h.StartDate))
				break
			}
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%s (run 'routinely validate --fix')", strings.Join(bad, "; "))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; remote connection strings must be passed with --config")
	}
	return nil
}

func checkEnvironment(ctx *cli.Context) error {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		suffix, ok := strings.CutPrefix(name, constants.EnvPrefix)
		if ok && !knownEnv[suffix] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unrecognized variables (typo?): %s", strings.Join(unknown, ", "))
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/routinely/internal/backup"
	"github.com/julianstephens/routinely/internal/keyring"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/migration"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/storage/mongo"
	"github.com/julianstephens/routinely/internal/storage/postgres"
	"github.com/julianstephens/routinely/internal/storage/redis"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
	"github.com/julianstephens/routinely/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Clock overrides the settings-derived clock. Tests set it.
	Clock utils.Clock

	service *routines.Service
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	RunMigrations(logFn func(string)) error
	MigrationStatus() (migration.Status, error)
}

// Service returns the routines service for the loaded store, creating it on
// first use.
func (c *Context) Service() (*routines.Service, error) {
	if c.service != nil {
		return c.service, nil
	}
	if c.Clock != nil {
		c.service = routines.New(c.Store, c.Clock)
		return c.service, nil
	}
	svc, err := routines.NewForSettings(c.Store)
	if err != nil {
		return nil, err
	}
	c.service = svc
	return svc, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		// remote stores have no local file to copy
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveConfig picks the store location. An explicit config wins, then a
// connection string saved in the OS keyring, then the default SQLite path.
func ResolveConfig(config, fallback string) string {
	if config != "" {
		return config
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return connStr
	}
	return fallback
}

// OpenStore returns the backend for config without loading it. fromKeyring
// permits credentials embedded in a PostgreSQL connection string.
func OpenStore(config string, fromKeyring bool) (storage.Provider, error) {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		if valid, err := postgres.ValidateConnString(config); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && fromKeyring {
				return postgres.New(config), nil
			}
			return nil, err
		}
		return postgres.New(config), nil
	case strings.HasPrefix(config, "redis://"), strings.HasPrefix(config, "rediss://"):
		return redis.New(config), nil
	case strings.HasPrefix(config, "mongodb://"), strings.HasPrefix(config, "mongodb+srv://"):
		return mongo.New(config), nil
	case strings.Contains(config, "://"):
		return nil, fmt.Errorf("%w: %s", keyring.ErrUnsupportedScheme, config)
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is the directory holding logs and backups for a local store.
// Remote stores fall back to the user config directory.
func ConfigDir(store storage.Provider) string {
	path := store.GetConfigPath()
	if !strings.Contains(path, "://") && path != "" {
		return filepath.Dir(path)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "routinely")
	}
	return "."
}

// RecurrenceFlags is embedded by commands that accept a recurrence rule.
type RecurrenceFlags struct {
	Daily  bool `help:"Due every day." xor:"recurrence"`
	Every  int  `help:"Due every N days (N >= 2)." placeholder:"N" xor:"recurrence"`
	Weekly int  `help:"Complete N times per Monday-Sunday week." placeholder:"N" xor:"recurrence"`
}

// Set reports whether any recurrence flag was given.
func (f RecurrenceFlags) Set() bool {
	return f.Daily || f.Every != 0 || f.Weekly != 0
}

// Recurrence builds the rule. With no flag set it returns a daily rule.
func (f RecurrenceFlags) Recurrence() (models.Recurrence, error) {
	switch {
	case f.Every < 0 || f.Weekly < 0:
		return models.Recurrence{}, fmt.Errorf("recurrence values must be positive")
	case f.Weekly > 7:
		return models.Recurrence{}, fmt.Errorf("weekly target cannot exceed 7, got %d", f.Weekly)
	case f.Every != 0:
		return models.EveryNDays(f.Every), nil
	case f.Weekly != 0:
		return models.WeeklyQuota(f.Weekly), nil
	default:
		return models.DailyRecurrence(), nil
	}
}

// FormatQuantity renders an optional quantity such as "20 pages".
func FormatQuantity(quantity float64, unit string) string {
	if quantity == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%g %s", quantity, unit))
}

// ShortID trims a UUID for table output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Check returns a completion mark.
func Check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// ResolveID expands a unique ID prefix against the stored tasks and habits.
// Full IDs are returned unchanged.
func (c *Context) ResolveID(prefix string) (string, error) {
	tasks, err := c.Store.LoadTasks()
	if err != nil {
		return "", err
	}
	habits, err := c.Store.LoadHabits()
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks)+len(habits))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return MatchID(prefix, ids)
}

// MatchID returns the one id equal to or starting with prefix.
func MatchID(prefix string, ids []string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("an item id is required")
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item %s: %w", prefix, models.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d items", prefix, len(matches))
	}
}

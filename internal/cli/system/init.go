package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
	NoSeed bool   `help:"Do not add the starter habits to an empty store."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	local := !strings.Contains(dbPath, "://")

	if c.Force {
		if !local {
			return fmt.Errorf("--force only applies to local stores; clear remote stores with their own tools")
		}
		// Don't delete if it's the source (user error protection)
		if c.Source != "" && samePath(dbPath, c.Source) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized routinely storage at: %s\n", dbPath)

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := migrateData(ctx.Store, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
		return nil
	}

	if c.NoSeed {
		return nil
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	seeded, err := svc.Seed()
	if err != nil {
		return fmt.Errorf("failed to add starter habits: %w", err)
	}
	if seeded {
		fmt.Println("Added starter habits. Edit or delete them with 'routinely habit'.")
	}
	return nil
}

func migrateData(dst storage.Provider, source string) error {
	src, err := cli.OpenStore(source, false)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	if err := storage.Copy(dst, src); err != nil {
		return err
	}
	snapshot, err := storage.LoadSnapshot(dst)
	if err != nil {
		return fmt.Errorf("failed to read migrated data: %w", err)
	}
	fmt.Println("  Migrated settings")
	fmt.Printf("  Migrated %d tasks\n", len(snapshot.Tasks))
	fmt.Printf("  Migrated %d habits\n", len(snapshot.Habits))
	fmt.Printf("  Migrated %d sleep sessions\n", len(snapshot.Sleep))
	fmt.Printf("  Migrated %d exercise records\n", len(snapshot.Exercise))
	fmt.Printf("  Migrated %d custom categories\n", len(snapshot.Categories))
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

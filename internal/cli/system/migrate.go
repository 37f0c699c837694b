package system

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version without applying anything."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}

	before, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if c.Status {
		fmt.Printf("Schema version: %d (latest %d)\n", before.Current, before.Latest)
		for _, p := range before.Pending {
			fmt.Printf("  pending: %03d %s\n", p.Version, p.Name)
		}
		return nil
	}

	if err := m.RunMigrations(func(msg string) {
		fmt.Println(msg)
	}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if len(before.Pending) == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", len(before.Pending))
	}

	return nil
}

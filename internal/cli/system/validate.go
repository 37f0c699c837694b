package system

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Repair habit conflicts that do not need user input."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	snapshot, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	fmt.Println("Validating tasks, habits, sleep and exercise records...")
	result := validation.New(models.NewCategoryRegistry(snapshot.Categories)).ValidateSnapshot(snapshot)

	fmt.Println()
	fmt.Println(result.FormatReport())

	if !cmd.Fix || !result.HasConflicts() {
		return nil
	}

	actions := validation.AutoFixHabits(result.Conflicts, snapshot.Habits)
	if len(actions) == 0 {
		fmt.Println("Nothing to fix automatically.")
		return nil
	}
	if err := ctx.Store.SaveHabits(snapshot.Habits); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	fmt.Println("Applied fixes:")
	for _, a := range actions {
		fmt.Printf("  ✓ %s\n", a.Action)
	}
	return nil
}

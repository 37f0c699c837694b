package tasks

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID or unique ID prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return err
	}
	i, ok := models.FindTask(tasks, id)
	if !ok {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, models.ErrNotFound)
	}
	title := tasks[i].Title

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.DeleteTask(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task: %s (ID: %s)\n", title, id)
	return nil
}

package tasks

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
)

type TaskEditCmd struct {
	ID       string   `arg:"" help:"Task ID or unique ID prefix."`
	Title    *string  `help:"New title."`
	Date     *string  `short:"d" help:"New date (YYYY-MM-DD)."`
	Category *string  `short:"c" help:"New category."`
	Value    *float64 `help:"New target quantity. Use 0 to clear."`
	Unit     *string  `help:"New unit."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return err
	}
	i, ok := models.FindTask(tasks, id)
	if !ok {
		return fmt.Errorf("failed to find task: %s is not a task", c.ID)
	}
	task := tasks[i]

	edit := models.ItemEdit{
		Title:    task.Title,
		Category: task.Category,
		Quantity: task.Quantity,
		Unit:     task.Unit,
	}
	if c.Title != nil {
		edit.Title = *c.Title
	}
	if c.Date != nil {
		edit.Date = *c.Date
	}
	if c.Category != nil {
		edit.Category = *c.Category
	}
	if c.Value != nil {
		if *c.Value < 0 {
			return fmt.Errorf("value cannot be negative")
		}
		edit.Quantity = *c.Value
	}
	if c.Unit != nil {
		edit.Unit = *c.Unit
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	updated, err := svc.EditTask(id, edit)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task updated: %s\n", updated.Title)
	return nil
}

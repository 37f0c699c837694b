package tasks

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
)

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID or unique ID prefix."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	result, err := svc.Toggle(id, "")
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	state := "not done"
	if result.Completed {
		state = "done"
	}
	fmt.Printf("%s Task %s marked %s\n", cli.Check(result.Completed), cli.ShortID(result.ID), state)
	return nil
}

type TaskToHabitCmd struct {
	ID string `arg:"" help:"Task ID or unique ID prefix."`
	cli.RecurrenceFlags `embed:""`
}

func (c *TaskToHabitCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return err
	}
	if _, ok := models.FindTask(tasks, id); !ok {
		return fmt.Errorf("%s is not a task", c.ID)
	}

	rec, err := c.Recurrence()
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.ConvertToHabit(id, rec)
	if err != nil {
		return fmt.Errorf("failed to convert task: %w", err)
	}

	fmt.Printf("Converted to habit: %s (%s, starting %s)\n", habit.Title, habit.Recurrence, habit.StartDate)
	return nil
}

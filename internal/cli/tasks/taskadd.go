package tasks

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/routines"
)

type TaskCmd struct {
	Add     TaskAddCmd     `cmd:"" help:"Add a one-off task."`
	List    TaskListCmd    `cmd:"" help:"List tasks."`
	Edit    TaskEditCmd    `cmd:"" help:"Edit an existing task."`
	Delete  TaskDeleteCmd  `cmd:"" help:"Delete a task."`
	Toggle  TaskToggleCmd  `cmd:"" help:"Mark a task done or not done."`
	ToHabit TaskToHabitCmd `cmd:"" name:"to-habit" help:"Turn a task into a recurring habit."`
}

type TaskAddCmd struct {
	Title    string  `arg:"" help:"Task title."`
	Date     string  `short:"d" help:"Date the task is scheduled for (YYYY-MM-DD). Defaults to today."`
	Category string  `short:"c" help:"Category. Defaults to the configured default category."`
	Value    float64 `help:"Optional target quantity, e.g. 20."`
	Unit     string  `help:"Unit for the quantity, e.g. pages."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Value < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	task, err := svc.AddTask(routines.TaskInput{
		Title:    c.Title,
		Category: c.Category,
		Date:     c.Date,
		Quantity: c.Value,
		Unit:     c.Unit,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s on %s (ID: %s)\n", task.Title, task.Date, task.ID)
	return nil
}

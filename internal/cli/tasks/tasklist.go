package tasks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
)

type TaskListCmd struct {
	Date    string `short:"d" help:"Only show tasks scheduled for this date (YYYY-MM-DD)."`
	Pending bool   `help:"Hide completed tasks."`
	ShowIDs bool   `help:"Show full task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Date != "" && t.Date != c.Date {
			continue
		}
		if c.Pending && t.Completed {
			continue
		}
		filtered = append(filtered, t)
	}
	if len(filtered) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	slices.SortStableFunc(filtered, func(a, b models.Task) int {
		return strings.Compare(a.Date, b.Date)
	})

	fmt.Println("Tasks:")
	for _, t := range filtered {
		id := cli.ShortID(t.ID)
		if c.ShowIDs {
			id = t.ID
		}
		line := fmt.Sprintf("  %s %s  %s  %s (%s)", cli.Check(t.Completed), id, t.Date, t.Title, t.Category)
		if q := cli.FormatQuantity(t.Quantity, t.Unit); q != "" {
			line += " - " + q
		}
		fmt.Println(line)
	}
	return nil
}

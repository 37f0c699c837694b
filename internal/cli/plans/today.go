package plans

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/scheduler"
)

type TodayCmd struct {
	Date     string `short:"d" help:"Show another day (YYYY-MM-DD)."`
	Category string `short:"c" help:"Only list items in this category."`
	ShowIDs  bool   `help:"Show item IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	// Perform automatic backup once a day view loads
	ctx.PerformAutomaticBackup()

	plan, err := svc.Plan(c.Date)
	if err != nil {
		return err
	}

	c.render(os.Stdout, plan, svc.Today())
	return nil
}

// render lists the (category-filtered) items; the done count covers the whole day.
func (c *TodayCmd) render(w io.Writer, plan scheduler.DayPlan, today string) {
	label := plan.Date
	if plan.Date == today {
		label = "Today, " + plan.Date
	}
	if c.Category != "" {
		label += " [" + c.Category + "]"
	}
	fmt.Fprintf(w, "%s\n\n", label)

	items := scheduler.FilterByCategory(plan.Items, c.Category)
	if len(items) == 0 {
		fmt.Fprintln(w, "Nothing due.")
	} else {
		for _, item := range items {
			fmt.Fprintln(w, c.formatItem(item))
		}
	}
	if plan.Total > 0 {
		fmt.Fprintf(w, "\nDone: %d/%d (%d%%)\n", plan.Completed, plan.Total, plan.Percent())
	}
}

func (c *TodayCmd) formatItem(item scheduler.DueItem) string {
	line := cli.Check(item.Completed) + " "
	if c.ShowIDs {
		line += cli.ShortID(item.ID) + "  "
	}
	line += item.Title
	if item.Category != "" {
		line += " (" + item.Category + ")"
	}
	if q := cli.FormatQuantity(item.Quantity, item.Unit); q != "" {
		line += " - " + q
	}
	if item.IsHabit() {
		line += "  [" + item.Recurrence.String() + "]"
	}
	if item.Quota != nil {
		line += fmt.Sprintf("  %d/%d this week", item.Quota.CompletedInWeek, item.Quota.Target)
		if item.Deemphasized && !item.Completed {
			line += ", target met"
		}
	}
	return line
}

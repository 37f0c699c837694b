package calendar

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	summary, err := svc.Summary()
	if err != nil {
		return err
	}

	fmt.Println(summary.Message)
	fmt.Println()
	fmt.Printf("Today:        %d/%d (%d%%)\n", summary.Today.TotalCompleted, summary.Today.TotalDue, summary.Today.Percent())
	fmt.Printf("Week average: %d%%\n", summary.WeekAverage)
	fmt.Printf("Streak:       %d day(s)\n", summary.Streak)
	fmt.Printf("Items:        %d (%d upcoming task(s))\n", summary.TotalItems, summary.UpcomingCount)

	fmt.Println("\nLast 7 days:")
	for _, bar := range summary.Week {
		fmt.Printf("  %-3s %3d%% %s\n", bar.Label, bar.Percent, strings.Repeat("#", bar.Percent/5))
	}

	if len(summary.Categories) > 0 {
		fmt.Println("\nBy category:")
		for _, cat := range summary.Categories {
			fmt.Printf("  %-16s %d\n", cat.Name, cat.Count)
		}
	}
	return nil
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/stats"
	"github.com/julianstephens/routinely/internal/tui"
	"github.com/julianstephens/routinely/internal/utils"
)

type CalendarCmd struct {
	Month    MonthCmd    `cmd:"" help:"Show a month with per-day completion." default:"withargs"`
	Heatmap  HeatmapCmd  `cmd:"" help:"Show the completion heatmap."`
	Upcoming UpcomingCmd `cmd:"" help:"List incomplete tasks after today."`
}

type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM, default: this month)."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	var year int
	var month time.Month
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	grid, err := svc.MonthGrid(year, month)
	if err != nil {
		return err
	}

	fmt.Print(RenderMonth(grid))
	return nil
}

// RenderMonth draws the grid with one cell per day: the day number and a
// mark, "*" when everything due was done and "." when something was left.
func RenderMonth(grid stats.MonthGrid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", grid.Month, grid.Year)
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")
	for _, week := range grid.Weeks() {
		for _, d := range week {
			if d.Day == 0 {
				b.WriteString("    ")
				continue
			}
			mark := " "
			switch {
			case d.AllDone:
				mark = "*"
			case d.TotalDue > 0:
				mark = "."
			}
			cell := fmt.Sprintf("%2d%s ", d.Day, mark)
			if d.IsToday {
				cell = tui.TodayMarker.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n* all done   . some left\n")
	return b.String()
}

type HeatmapCmd struct {
	Days int `short:"n" help:"Number of days to show." default:"${heatmap_days}"`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > constants.HeatmapDays {
		return fmt.Errorf("days must be between 1 and %d", constants.HeatmapDays)
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	cells, err := svc.Heatmap(c.Days)
	if err != nil {
		return err
	}
	out, err := RenderHeatmap(cells)
	if err != nil {
		return err
	}
	fmt.Print(out)

	streak, err := svc.Streak()
	if err != nil {
		return err
	}
	fmt.Printf("\nCurrent streak: %d day(s)\n", streak)
	return nil
}

// RenderHeatmap lays cells out in Monday-first columns, one column per week.
func RenderHeatmap(cells []stats.HeatmapCell) (string, error) {
	if len(cells) == 0 {
		return "", nil
	}
	first, err := utils.ParseDateKey(cells[0].Date)
	if err != nil {
		return "", err
	}
	lead := (int(first.Weekday()) + 6) % 7
	weeks := (lead + len(cells) + 6) / 7

	var rows [7]strings.Builder
	labels := []string{"Mon", "   ", "Wed", "   ", "Fri", "   ", "Sun"}
	for i := range rows {
		rows[i].WriteString(labels[i] + " ")
	}
	for col := 0; col < weeks; col++ {
		for row := 0; row < 7; row++ {
			i := col*7 + row - lead
			if i < 0 || i >= len(cells) {
				rows[row].WriteString("  ")
				continue
			}
			rows[row].WriteString(tui.HeatCell(cells[i].Level) + " ")
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s to %s\n", cells[0].Date, cells[len(cells)-1].Date)
	for i := range rows {
		b.WriteString(strings.TrimRight(rows[i].String(), " "))
		b.WriteString("\n")
	}
	b.WriteString("Less ")
	for level := 0; level <= 4; level++ {
		b.WriteString(tui.HeatCell(level) + " ")
	}
	b.WriteString("More\n")
	return b.String(), nil
}

type UpcomingCmd struct {
	Limit int `short:"n" help:"Maximum number of tasks to show." default:"${upcoming_limit}"`
}

func (c *UpcomingCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	tasks, err := svc.Upcoming(c.Limit)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No upcoming tasks.")
		return nil
	}

	fmt.Println("Upcoming tasks:")
	for _, t := range tasks {
		fmt.Printf("  %s  %s %s (%s)\n", t.Date, utils.WeekdayLabel(t.Date), t.Title, t.Category)
	}
	return nil
}

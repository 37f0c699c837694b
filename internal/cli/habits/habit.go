package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a recurring habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion log."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done for a day."`
	ToTask HabitToTaskCmd `cmd:"" name:"to-task" help:"Turn a habit into a one-off task."`
	Log    HabitLogCmd    `cmd:"" help:"Show the Monday-Sunday completion grid."`
}

type HabitAddCmd struct {
	Title    string  `arg:"" help:"Habit title."`
	Start    string  `short:"s" help:"First day the habit is due (YYYY-MM-DD). Defaults to today."`
	Category string  `short:"c" help:"Category. Defaults to the configured default category."`
	Value    float64 `help:"Optional target quantity, e.g. 8."`
	Unit     string  `help:"Unit for the quantity, e.g. glasses."`
	cli.RecurrenceFlags `embed:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if c.Value < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	rec, err := c.Recurrence()
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	habit, err := svc.AddHabit(routines.HabitInput{
		Title:      c.Title,
		Category:   c.Category,
		StartDate:  c.Start,
		Recurrence: rec,
		Quantity:   c.Value,
		Unit:       c.Unit,
	})
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("Added habit: %s (%s, starting %s, ID: %s)\n", habit.Title, habit.Recurrence, habit.StartDate, habit.ID)
	return nil
}

type HabitListCmd struct {
	ShowIDs bool `help:"Show full habit IDs." name:"show-ids"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.LoadHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		id := cli.ShortID(h.ID)
		if c.ShowIDs {
			id = h.ID
		}
		line := fmt.Sprintf("%s  %s (%s) - %s since %s, %d completion(s)",
			id, h.Title, h.Category, h.Recurrence, h.StartDate, len(h.CompletedDates))
		if q := cli.FormatQuantity(h.Quantity, h.Unit); q != "" {
			line += ", " + q
		}
		fmt.Println(line)
	}
	return nil
}

type HabitEditCmd struct {
	ID       string   `arg:"" help:"Habit ID or unique ID prefix."`
	Title    *string  `help:"New title."`
	Category *string  `short:"c" help:"New category."`
	Value    *float64 `help:"New target quantity. Use 0 to clear."`
	Unit     *string  `help:"New unit."`
	cli.RecurrenceFlags `embed:""`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	edit := models.ItemEdit{
		Title:      habit.Title,
		Category:   habit.Category,
		Quantity:   habit.Quantity,
		Unit:       habit.Unit,
		Recurrence: habit.Recurrence,
	}
	if c.Title != nil {
		edit.Title = *c.Title
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
	if c.RecurrenceFlags.Set() {
		rec, err := c.Recurrence()
		if err != nil {
			return err
		}
		edit.Recurrence = rec
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	updated, err := svc.EditHabit(habit.ID, edit)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	fmt.Printf("Habit updated: %s (%s)\n", updated.Title, updated.Recurrence)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit ID or unique ID prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.DeleteHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}

type HabitToggleCmd struct {
	ID   string `arg:"" help:"Habit ID or unique ID prefix."`
	Date string `short:"d" help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	result, err := svc.Toggle(habit.ID, c.Date)
	if err != nil {
		return fmt.Errorf("failed to toggle habit: %w", err)
	}

	if result.Completed {
		fmt.Printf("Marked habit %q for %s\n", habit.Title, result.Date)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Title, result.Date)
	}

	if habit.Recurrence.IsWeeklyQuota() {
		progress, err := svc.Quota(habit.ID, result.Date)
		if err != nil {
			return err
		}
		fmt.Printf("This week: %d/%d\n", progress.CompletedInWeek, progress.Target)
	}
	return nil
}

type HabitToTaskCmd struct {
	ID   string `arg:"" help:"Habit ID or unique ID prefix."`
	Date string `short:"d" help:"Date for the new task (default: today)."`
}

func (c *HabitToTaskCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	task, err := svc.ConvertToTask(habit.ID, c.Date)
	if err != nil {
		return fmt.Errorf("failed to convert habit: %w", err)
	}

	fmt.Printf("Converted to task: %s on %s\n", task.Title, task.Date)
	fmt.Println("(The habit's completion log was discarded)")
	return nil
}

type HabitLogCmd struct {
	Date string `short:"d" help:"Any date in the week to show (default: this week)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	weeks, err := svc.HabitLog(c.Date)
	if err != nil {
		return err
	}
	if len(weeks) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	const nameWidth = 20
	fmt.Printf("Habit log for %s to %s:\n\n", weeks[0].Days[0], weeks[0].Days[len(weeks[0].Days)-1])
	fmt.Print(strings.Repeat(" ", nameWidth))
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		fmt.Printf("  %s", day)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", nameWidth+5*7))

	for _, w := range weeks {
		fmt.Print(padName(w.Habit.Title, nameWidth))
		for i := range w.Days {
			mark := " "
			switch {
			case w.Done[i]:
				mark = "x"
			case w.Due[i]:
				mark = "."
			}
			fmt.Printf("   %s ", mark)
		}
		if w.Quota != nil {
			fmt.Printf("  %d/%d", w.Quota.CompletedInWeek, w.Quota.Target)
		}
		fmt.Println()
	}
	fmt.Println("\nx = done, . = due")
	return nil
}

func padName(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-len(r))
}

func findHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	id, err := ctx.ResolveID(ref)
	if err != nil {
		return models.Habit{}, err
	}
	habits, err := ctx.Store.LoadHabits()
	if err != nil {
		return models.Habit{}, err
	}
	i, ok := models.FindHabit(habits, id)
	if !ok {
		return models.Habit{}, fmt.Errorf("%s is not a habit", ref)
	}
	return habits[i], nil
}

package exercise

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"

	workout "github.com/julianstephens/routinely/internal/exercise"
)

type ExerciseCmd struct {
	Log    ExerciseLogCmd    `cmd:"" help:"Record a workout."`
	List   ExerciseListCmd   `cmd:"" help:"List workouts, newest first."`
	Delete ExerciseDeleteCmd `cmd:"" help:"Delete a workout."`
	Today  ExerciseTodayCmd  `cmd:"" help:"Show today's workouts and minutes."`
	Week   ExerciseWeekCmd   `cmd:"" help:"Show timed minutes for the last seven days."`
}

type ExerciseLogCmd struct {
	Kind     string  `arg:"" help:"Workout type: gym, running, sport or other."`
	Date     string  `short:"d" help:"Date (YYYY-MM-DD, default: today)."`
	Time     string  `short:"t" help:"Start time (HH:MM, default: now)."`
	Minutes  int     `short:"m" help:"Duration in minutes (gym, running)."`
	BodyPart string  `short:"b" help:"Body part trained (gym)."`
	Speed    float64 `short:"s" help:"Average speed in km/h (running)."`
	Notes    string  `short:"n" help:"Description (sport, other)."`
}

func (c *ExerciseLogCmd) Run(ctx *cli.Context) error {
	kind, ok := models.ParseExerciseKind(strings.ToUpper(c.Kind))
	if !ok {
		return fmt.Errorf("unknown workout type %q, expected gym, running, sport or other", c.Kind)
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	rec, err := svc.LogExercise(workout.Input{
		Kind:     kind,
		Date:     c.Date,
		Time:     c.Time,
		Minutes:  c.Minutes,
		BodyPart: c.BodyPart,
		SpeedKmh: c.Speed,
		Notes:    c.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to log workout: %w", err)
	}

	fmt.Printf("Logged %s on %s at %s\n", strings.ToLower(string(rec.Kind)), rec.Date, rec.Time)
	return nil
}

type ExerciseListCmd struct {
	Limit int `short:"n" help:"Show only the most recent N workouts." default:"20"`
}

func (c *ExerciseListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	records, err := svc.ExerciseHistory()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No workouts recorded.")
		return nil
	}
	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}

	for _, r := range records {
		fmt.Printf("%s  %s %s  %s\n", cli.ShortID(r.ID), r.Date, r.Time, describe(r))
	}
	return nil
}

type ExerciseDeleteCmd struct {
	ID string `arg:"" help:"Workout ID or unique ID prefix."`
}

func (c *ExerciseDeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	records, err := svc.ExerciseHistory()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	id, err := cli.MatchID(c.ID, ids)
	if err != nil {
		return err
	}
	if err := svc.DeleteExercise(id); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	fmt.Printf("✓ Workout deleted: %s\n", cli.ShortID(id))
	return nil
}

type ExerciseTodayCmd struct{}

func (c *ExerciseTodayCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	day, err := svc.ExerciseToday()
	if err != nil {
		return err
	}

	fmt.Printf("Exercise for %s: %d min\n", day.Date, day.Minutes)
	if len(day.Records) == 0 {
		fmt.Println("No workouts yet.")
		return nil
	}
	for _, r := range day.Records {
		fmt.Printf("  %s  %s\n", r.Time, describe(r))
	}
	return nil
}

type ExerciseWeekCmd struct{}

func (c *ExerciseWeekCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	week, err := svc.ExerciseWeek()
	if err != nil {
		return err
	}

	total := 0
	for _, d := range week {
		total += d.Minutes
		fmt.Printf("%-4s %s %4d min %s\n", d.Label, d.Date[5:], d.Minutes, strings.Repeat("#", d.Minutes/10))
	}
	fmt.Printf("\nTotal: %d min\n", total)

	kinds, err := svc.ExerciseWeekKinds()
	if err != nil {
		return err
	}
	if summary := kindSummary(kinds); summary != "" {
		fmt.Printf("Workouts: %s\n", summary)
	}
	return nil
}

// kindSummary renders counts as "gym 2, running 1", skipping kinds not done.
func kindSummary(counts map[constants.ExerciseKind]int) string {
	var parts []string
	for _, k := range []constants.ExerciseKind{constants.ExerciseGym, constants.ExerciseRunning, constants.ExerciseSport, constants.ExerciseOther} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", strings.ToLower(string(k)), n))
		}
	}
	return strings.Join(parts, ", ")
}

func describe(r models.ExerciseRecord) string {
	kind := strings.ToLower(string(r.Kind))
	switch {
	case r.BodyPart != "":
		return fmt.Sprintf("%s %d min (%s)", kind, r.DurationMinutes, r.BodyPart)
	case r.SpeedKmh > 0:
		return fmt.Sprintf("%s %d min at %.1f km/h", kind, r.DurationMinutes, r.SpeedKmh)
	default:
		return fmt.Sprintf("%s: %s", kind, r.Notes)
	}
}

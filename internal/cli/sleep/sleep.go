package sleep

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"

	sleepcalc "github.com/julianstephens/routinely/internal/sleep"
)

type SleepCmd struct {
	Log    SleepLogCmd    `cmd:"" help:"Record a night of sleep."`
	List   SleepListCmd   `cmd:"" help:"List recorded sessions."`
	Delete SleepDeleteCmd `cmd:"" help:"Delete a session."`
	Score  SleepScoreCmd  `cmd:"" help:"Show the sleep score of the last seven days."`
	Stats  SleepStatsCmd  `cmd:"" help:"Show average duration per day, week or month."`
}

type SleepLogCmd struct {
	Bed          string `arg:"" help:"Bed time (HH:MM, or hmm/hhmm with --bed-meridiem)."`
	Wake         string `arg:"" help:"Wake time (HH:MM, or hmm/hhmm with --wake-meridiem)."`
	Date         string `short:"d" help:"Date of the session, usually the wake date (default: today)."`
	Quality      int    `short:"q" help:"Quality rating from 1 to 5." default:"3"`
	BedMeridiem  string `help:"AM or PM for a compact bed time."`
	WakeMeridiem string `help:"AM or PM for a compact wake time."`
}

func (c *SleepLogCmd) Run(ctx *cli.Context) error {
	bed, err := sleepcalc.ParseClock(c.Bed, strings.ToUpper(c.BedMeridiem))
	if err != nil {
		return fmt.Errorf("bed time: %w", err)
	}
	wake, err := sleepcalc.ParseClock(c.Wake, strings.ToUpper(c.WakeMeridiem))
	if err != nil {
		return fmt.Errorf("wake time: %w", err)
	}

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	session, err := svc.LogSleep(c.Date, bed, wake, c.Quality)
	if err != nil {
		return fmt.Errorf("failed to log sleep: %w", err)
	}

	fmt.Printf("Logged sleep for %s: %s to %s, %.1fh (quality %d)\n",
		session.Date, bed, wake, session.DurationHours, session.Quality)
	return nil
}

type SleepListCmd struct {
	Limit int `short:"n" help:"Show only the most recent N sessions." default:"14"`
}

func (c *SleepListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	sessions, err := svc.SleepSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sleep sessions recorded.")
		return nil
	}
	slices.SortStableFunc(sessions, func(a, b models.SleepSession) int {
		return strings.Compare(b.Date, a.Date)
	})
	if c.Limit > 0 && len(sessions) > c.Limit {
		sessions = sessions[:c.Limit]
	}

	fmt.Printf("%-10s %-10s %-6s %-6s %-6s %s\n", "ID", "Date", "Bed", "Wake", "Hours", "Quality")
	fmt.Println(strings.Repeat("-", 50))
	for _, s := range sessions {
		fmt.Printf("%-10s %-10s %-6s %-6s %-6.1f %s\n",
			cli.ShortID(s.ID), s.Date, utils.MinutesToTime(s.BedTime), utils.MinutesToTime(s.WakeTime),
			s.DurationHours, strings.Repeat("*", s.Quality))
	}
	return nil
}

type SleepDeleteCmd struct {
	ID string `arg:"" help:"Session ID or unique ID prefix."`
}

func (c *SleepDeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	sessions, err := svc.SleepSessions()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	id, err := cli.MatchID(c.ID, ids)
	if err != nil {
		return err
	}
	if err := svc.DeleteSleep(id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Printf("✓ Sleep session deleted: %s\n", cli.ShortID(id))
	return nil
}

type SleepScoreCmd struct{}

func (c *SleepScoreCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	report, err := svc.SleepReport()
	if err != nil {
		return err
	}

	score := report.Score
	if !score.HasData() {
		fmt.Println("Sleep score: N/A")
		fmt.Println(score.Message)
		return nil
	}

	fmt.Printf("Sleep score: %d (%s)\n", score.Score, score.Grade)
	fmt.Println(score.Message)
	fmt.Println()
	fmt.Printf("  Duration:    %.0f/100\n", score.DurationScore)
	fmt.Printf("  Consistency: %.0f/100 (bed time spread %.0f min)\n", score.ConsistencyScore, score.BedtimeStdDev)
	fmt.Printf("  Sessions:    %d since %s\n", score.Sessions, score.WindowStart)

	week := report.Week
	if week.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Last %d days: %.1fh average (target %.1fh), bed %s, wake %s\n",
			week.Days, week.DurationHours, report.TargetHours, week.BedTime, week.WakeTime)
	}
	return nil
}

type SleepStatsCmd struct {
	Period string `arg:"" help:"Grouping: daily, weekly or monthly." default:"daily" enum:"daily,weekly,monthly"`
}

func (c *SleepStatsCmd) Run(ctx *cli.Context) error {
	period, err := sleepcalc.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	buckets, err := svc.SleepStats(period)
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		fmt.Println("No sleep sessions recorded.")
		return nil
	}

	for _, b := range buckets {
		bar := strings.Repeat("#", int(b.Average+0.5))
		fmt.Printf("%-12s %4.1fh %s (%d)\n", b.Label, b.Average, bar, b.Sessions)
	}
	return nil
}

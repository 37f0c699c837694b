// Package report builds the weekly markdown summary.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/routinely/internal/exercise"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/stats"
)

// Weekly gathers everything the weekly report shows.
type Weekly struct {
	Date     string
	Summary  stats.Summary
	Habits   []routines.HabitWeek
	Sleep    routines.SleepReport
	Exercise []exercise.DayMinutes
}

func Build(svc *routines.Service) (Weekly, error) {
	summary, err := svc.Summary()
	if err != nil {
		return Weekly{}, fmt.Errorf("summary: %w", err)
	}
	habits, err := svc.HabitLog("")
	if err != nil {
		return Weekly{}, fmt.Errorf("habit log: %w", err)
	}
	sleepReport, err := svc.SleepReport()
	if err != nil {
		return Weekly{}, fmt.Errorf("sleep: %w", err)
	}
	week, err := svc.ExerciseWeek()
	if err != nil {
		return Weekly{}, fmt.Errorf("exercise: %w", err)
	}
	return Weekly{
		Date:     svc.Today(),
		Summary:  summary,
		Habits:   habits,
		Sleep:    sleepReport,
		Exercise: week,
	}, nil
}

func (w Weekly) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly report, %s\n\n", w.Date)
	fmt.Fprintf(&b, "_%s_\n\n", w.Summary.Message)

	b.WriteString("## Completion\n\n")
	fmt.Fprintf(&b, "- Today: **%d/%d** (%d%%)\n", w.Summary.Today.TotalCompleted, w.Summary.Today.TotalDue, w.Summary.Today.Percent())
	fmt.Fprintf(&b, "- 7-day average: **%d%%**\n", w.Summary.WeekAverage)
	fmt.Fprintf(&b, "- Streak: **%d** day(s)\n\n", w.Summary.Streak)
	if len(w.Summary.Week) > 0 {
		b.WriteString("| Day | Date | Done |\n|---|---|---|\n")
		for _, d := range w.Summary.Week {
			fmt.Fprintf(&b, "| %s | %s | %d%% |\n", d.Label, d.Date, d.Percent)
		}
		b.WriteString("\n")
	}

	if len(w.Habits) > 0 {
		b.WriteString("## Habits this week\n\n")
		b.WriteString("| Habit | Rule | Done |\n|---|---|---|\n")
		for _, h := range w.Habits {
			done := 0
			for _, d := range h.Done {
				if d {
					done++
				}
			}
			progress := fmt.Sprintf("%d", done)
			if h.Quota != nil {
				progress = fmt.Sprintf("%d/%d", h.Quota.CompletedInWeek, h.Quota.Target)
				if h.Quota.QuotaMet {
					progress += " ✓"
				}
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escape(h.Habit.Title), h.Habit.Recurrence, progress)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sleep\n\n")
	if score := w.Sleep.Score; score.HasData() {
		fmt.Fprintf(&b, "- Score: **%d** (%s)\n", score.Score, score.Grade)
		fmt.Fprintf(&b, "- %s\n", score.Message)
	} else {
		b.WriteString("- No sleep recorded in the last 30 days\n")
	}
	if week := w.Sleep.Week; week.Sessions > 0 {
		fmt.Fprintf(&b, "- Average: %.1fh of %.1fh target, bed %s, wake %s\n", week.DurationHours, w.Sleep.TargetHours, week.BedTime, week.WakeTime)
	}
	b.WriteString("\n")

	b.WriteString("## Exercise\n\n")
	total := 0
	for _, d := range w.Exercise {
		total += d.Minutes
	}
	fmt.Fprintf(&b, "- %d timed minute(s) over the last 7 days\n", total)

	return b.String()
}

// Render styles md for the terminal. On a rendering error the plain
// markdown is returned.
func Render(md, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return out
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

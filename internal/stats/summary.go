package stats

import (
	"sort"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// DayBar is one bar of the weekly chart.
type DayBar struct {
	Date    string `json:"date"`
	Label   string `json:"day"`
	Percent int    `json:"rate"`
}

// WeeklyBars returns the seven days ending at end, oldest first.
func WeeklyBars(idx *Index, end string) ([]DayBar, error) {
	start, err := utils.AddDays(end, -(constants.WeeklyChartDays - 1))
	if err != nil {
		return nil, err
	}
	keys, err := utils.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	bars := make([]DayBar, 0, len(keys))
	for _, k := range keys {
		bars = append(bars, DayBar{Date: k, Label: utils.WeekdayLabel(k), Percent: idx.Completion(k).Percent()})
	}
	return bars, nil
}

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

// CategoryDistribution counts tasks and habits per category label, largest
// first and then by name.
func CategoryDistribution(tasks []models.Task, habits []models.Habit) []CategoryCount {
	counts := map[string]int{}
	for _, t := range tasks {
		counts[t.Category]++
	}
	for _, h := range habits {
		counts[h.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// UpcomingTasks returns incomplete tasks scheduled after today, soonest
// first, at most limit of them (limit <= 0 means no limit).
func UpcomingTasks(tasks []models.Task, today string, limit int) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Date > today && !t.Completed {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FeedbackMessage returns the encouragement shown for a completion percent.
func FeedbackMessage(percent int) string {
	switch {
	case percent >= 80:
		return "Amazing! You've nearly hit today's goal."
	case percent >= 50:
		return "Nice work, keep the momentum going!"
	default:
		return "Every start counts. Pick one small thing and do it."
	}
}

// Summary is the dashboard header: today's figures, the trailing week and
// the current streak.
type Summary struct {
	Today         Completion      `json:"today"`
	WeekAverage   int             `json:"weekAverage"`
	Streak        int             `json:"streak"`
	TotalItems    int             `json:"totalItems"`
	Message       string          `json:"message"`
	Week          []DayBar        `json:"week"`
	Categories    []CategoryCount `json:"categories"`
	UpcomingCount int             `json:"upcoming"`
}

func Summarize(tasks []models.Task, habits []models.Habit, today string) (Summary, error) {
	idx := NewIndex(tasks, habits)
	week, err := WeeklyBars(idx, today)
	if err != nil {
		return Summary{}, err
	}
	total := 0
	for _, b := range week {
		total += b.Percent
	}
	s := Summary{
		Today:         idx.Completion(today),
		WeekAverage:   total / len(week),
		Streak:        Streak(idx, today),
		TotalItems:    len(tasks) + len(habits),
		Week:          week,
		Categories:    CategoryDistribution(tasks, habits),
		UpcomingCount: len(UpcomingTasks(tasks, today, 0)),
	}
	s.Message = FeedbackMessage(s.Today.Percent())
	return s, nil
}

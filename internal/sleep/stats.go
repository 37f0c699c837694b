package sleep

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// Averages summarizes recent sessions.
type Averages struct {
	Days          int     `json:"days"`
	Sessions      int     `json:"sessions"`
	DurationHours float64 `json:"duration"`
	BedTime       string  `json:"bedTime"`
	WakeTime      string  `json:"wakeTime"`
}

// Average covers sessions dated within `days` days up to now. Bed times are
// averaged on the evening-negative scale so 23:00 and 01:00 average to 00:00.
func Average(sessions []models.SleepSession, now time.Time, days int) Averages {
	from, err := utils.AddDays(utils.ToDateKey(now), -days)
	if err != nil {
		return Averages{Days: days}
	}
	window := InWindow(sessions, from)
	a := Averages{Days: days, Sessions: len(window)}
	if len(window) == 0 {
		return a
	}
	var dur, bed, wake float64
	for _, s := range window {
		dur += s.DurationHours
		bed += float64(BedtimeOffset(s.BedTime))
		wake += float64(s.WakeTime)
	}
	n := float64(len(window))
	a.DurationHours = round1(dur / n)
	a.BedTime = utils.MinutesToTime(int(math.Round(bed / n)))
	a.WakeTime = utils.MinutesToTime(int(math.Round(wake / n)))
	return a
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q, expected daily, weekly or monthly", s)
}

// Bucket is an average sleep duration over a labelled span.
type Bucket struct {
	Label    string  `json:"name"`
	Key      string  `json:"key"`
	Average  float64 `json:"avg"`
	Sessions int     `json:"count"`
}

const (
	weeklyBuckets  = 5
	monthlyBuckets = 6
)

// Stats groups sessions by period:
//
//	daily    the last 7 days ending today, zero for days without a session
//	weekly   week-of-month buckets (Sunday-started, as on a wall calendar), last 5
//	monthly  calendar months, last 6
func Stats(sessions []models.SleepSession, now time.Time, period Period) ([]Bucket, error) {
	switch period {
	case PeriodDaily:
		return dailyStats(sessions, now)
	case PeriodWeekly:
		return groupStats(sessions, weekOfMonthKey, weeklyBuckets), nil
	case PeriodMonthly:
		return groupStats(sessions, monthKey, monthlyBuckets), nil
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}
}

func dailyStats(sessions []models.SleepSession, now time.Time) ([]Bucket, error) {
	today := utils.ToDateKey(now)
	from, err := utils.AddDays(today, -(constants.WeeklyChartDays - 1))
	if err != nil {
		return nil, err
	}
	keys, err := utils.DateRange(from, today)
	if err != nil {
		return nil, err
	}
	byDate := map[string][]float64{}
	for _, s := range sessions {
		byDate[s.Date] = append(byDate[s.Date], s.DurationHours)
	}
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		vals := byDate[k]
		out = append(out, Bucket{
			Label:    fmt.Sprintf("%s %s", k[5:], utils.WeekdayLabel(k)),
			Key:      k,
			Average:  mean(vals),
			Sessions: len(vals),
		})
	}
	return out, nil
}

func weekOfMonthKey(date string) (key, label string, ok bool) {
	t, err := utils.ParseDateKey(date)
	if err != nil {
		return "", "", false
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	week := (t.Day() + int(first.Weekday()) + 6) / 7
	return fmt.Sprintf("%04d-%02d-W%d", t.Year(), t.Month(), week),
		fmt.Sprintf("%s W%d", t.Month().String()[:3], week), true
}

func monthKey(date string) (key, label string, ok bool) {
	t, err := utils.ParseDateKey(date)
	if err != nil {
		return "", "", false
	}
	return fmt.Sprintf("%04d-%02d", t.Year(), t.Month()), t.Month().String()[:3], true
}

func groupStats(sessions []models.SleepSession, keyFn func(string) (string, string, bool), keep int) []Bucket {
	type acc struct {
		label string
		vals  []float64
	}
	groups := map[string]*acc{}
	for _, s := range sessions {
		key, label, ok := keyFn(s.Date)
		if !ok {
			continue
		}
		g, exists := groups[key]
		if !exists {
			g = &acc{label: label}
			groups[key] = g
		}
		g.vals = append(g.vals, s.DurationHours)
	}
	out := make([]Bucket, 0, len(groups))
	for key, g := range groups {
		out = append(out, Bucket{Label: g.label, Key: key, Average: mean(g.vals), Sessions: len(g.vals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if len(out) > keep {
		out = out[len(out)-keep:]
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return round1(sum / float64(len(vals)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

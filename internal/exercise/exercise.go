// Package exercise builds and summarizes workout records.
package exercise

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

// Input holds the raw fields of a new record. Only the fields relevant to
// Kind are read.
type Input struct {
	Kind     constants.ExerciseKind
	Date     string
	Time     string
	Minutes  int
	BodyPart string
	SpeedKmh float64
	Notes    string
}

// Build validates in and returns a new record stamped with at.
func Build(in Input, at time.Time) (models.ExerciseRecord, error) {
	if !utils.IsDateKey(in.Date) {
		return models.ExerciseRecord{}, models.ErrInvalidDate
	}
	if !utils.ValidateTimeFormat(in.Time) {
		return models.ExerciseRecord{}, fmt.Errorf("%w: time must be HH:MM", models.ErrInvalidExercise)
	}
	rec := models.ExerciseRecord{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Time:      in.Time,
		Kind:      in.Kind,
		CreatedAt: at.UnixMilli(),
	}

	switch in.Kind {
	case constants.ExerciseGym:
		if in.Minutes <= 0 || strings.TrimSpace(in.BodyPart) == "" {
			return models.ExerciseRecord{}, fmt.Errorf("%w: gym needs minutes and a body part", models.ErrInvalidExercise)
		}
		rec.DurationMinutes = in.Minutes
		rec.BodyPart = strings.TrimSpace(in.BodyPart)
	case constants.ExerciseRunning:
		if in.Minutes <= 0 || in.SpeedKmh <= 0 {
			return models.ExerciseRecord{}, fmt.Errorf("%w: running needs minutes and a speed", models.ErrInvalidExercise)
		}
		rec.DurationMinutes = in.Minutes
		rec.SpeedKmh = in.SpeedKmh
	case constants.ExerciseSport, constants.ExerciseOther:
		if strings.TrimSpace(in.Notes) == "" {
			return models.ExerciseRecord{}, fmt.Errorf("%w: %s needs notes", models.ErrInvalidExercise, strings.ToLower(string(in.Kind)))
		}
		rec.Notes = strings.TrimSpace(in.Notes)
	default:
		return models.ExerciseRecord{}, fmt.Errorf("%w: unknown type %q", models.ErrInvalidExercise, in.Kind)
	}
	return rec, nil
}

// TotalMinutes sums the timed records on date.
func TotalMinutes(records []models.ExerciseRecord, date string) int {
	total := 0
	for _, r := range records {
		if r.Date == date && r.Timed() {
			total += r.DurationMinutes
		}
	}
	return total
}

// OnDate returns the records of date, most recent first.
func OnDate(records []models.ExerciseRecord, date string) []models.ExerciseRecord {
	var out []models.ExerciseRecord
	for _, r := range records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders records by date, then time, then creation stamp,
// newest first.
func SortNewestFirst(records []models.ExerciseRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return a.CreatedAt > b.CreatedAt
	})
}

// DayMinutes is one bar of the weekly exercise chart.
type DayMinutes struct {
	Date    string `json:"date"`
	Label   string `json:"name"`
	Minutes int    `json:"value"`
}

// WeekChart returns timed minutes for the seven days ending at end.
func WeekChart(records []models.ExerciseRecord, end string) ([]DayMinutes, error) {
	start, err := utils.AddDays(end, -(constants.WeeklyChartDays - 1))
	if err != nil {
		return nil, err
	}
	keys, err := utils.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]DayMinutes, 0, len(keys))
	for _, k := range keys {
		out = append(out, DayMinutes{Date: k, Label: utils.WeekdayLabel(k), Minutes: TotalMinutes(records, k)})
	}
	return out, nil
}

// ByKind counts records per kind.
func ByKind(records []models.ExerciseRecord) map[constants.ExerciseKind]int {
	out := map[constants.ExerciseKind]int{}
	for _, r := range records {
		out[r.Kind]++
	}
	return out
}

// Package sleep scores and summarizes sleep sessions.
package sleep

import (
	"math"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

type Grade string

const (
	GradeS    Grade = "S"
	GradeA    Grade = "A"
	GradeB    Grade = "B"
	GradeC    Grade = "C"
	GradeD    Grade = "D"
	GradeF    Grade = "F"
	GradeNone Grade = "N/A"
)

const (
	maxSubScore = 50.0

	pointsFull    = 1.67
	pointsOkay    = 0.8
	pointsShort   = 0.0
	pointsPenalty = -2.0
	pointsScale   = 30.0
)

var gradeMessages = map[Grade]string{
	GradeS:    "Are you a machine? A flawless sleep pattern.",
	GradeA:    "Top-tier sleep habits. Excellent work.",
	GradeB:    "Solid, but S is still a long way off.",
	GradeC:    "Average. Don't miss your 7.5 hours.",
	GradeD:    "Pick it up. Sleep debt is piling up.",
	GradeF:    "Your body is screaming. Please get some sleep.",
	GradeNone: "No sleep data in the last 30 days.",
}

// Result is a sleep score. A Result without data has grade GradeNone and no
// numeric score; check HasData before reading Score.
type Result struct {
	Score            int     `json:"score"`
	Grade            Grade   `json:"grade"`
	Message          string  `json:"message"`
	DurationScore    float64 `json:"durationScore"`
	ConsistencyScore float64 `json:"consistencyScore"`
	BedtimeStdDev    float64 `json:"bedtimeStdDev"`
	Sessions         int     `json:"sessions"`
	WindowStart      string  `json:"windowStart"`
}

// NoData is returned when the window holds no sessions.
var NoData = Result{Grade: GradeNone, Message: gradeMessages[GradeNone]}

func (r Result) HasData() bool {
	return r.Grade != GradeNone && r.Sessions > 0
}

// Evaluate scores the sessions dated within the 30 days up to now.
// Duration and bedtime consistency each contribute up to 50 points.
func Evaluate(sessions []models.SleepSession, now time.Time) Result {
	from, err := utils.AddDays(utils.ToDateKey(now), -constants.SleepWindowDays)
	if err != nil {
		return NoData
	}
	window := InWindow(sessions, from)
	if len(window) == 0 {
		return NoData
	}

	duration := DurationScore(window)
	sd := BedtimeStdDev(window)
	consistency := ConsistencyScore(sd)
	score := int(math.Min(100, math.Round(duration+consistency)))
	grade := GradeFor(score)

	return Result{
		Score:            score,
		Grade:            grade,
		Message:          gradeMessages[grade],
		DurationScore:    duration,
		ConsistencyScore: consistency,
		BedtimeStdDev:    sd,
		Sessions:         len(window),
		WindowStart:      from,
	}
}

// InWindow returns the sessions dated on or after from.
func InWindow(sessions []models.SleepSession, from string) []models.SleepSession {
	var out []models.SleepSession
	for _, s := range sessions {
		if s.Date >= from {
			out = append(out, s)
		}
	}
	return out
}

func durationPoints(hours float64) float64 {
	switch {
	case hours >= 7.5:
		return pointsFull
	case hours >= 7.0:
		return pointsOkay
	case hours >= 6.0:
		return pointsShort
	default:
		return pointsPenalty
	}
}

// DurationScore averages per-session points, scales by 30 and clamps the
// result to [0, 50].
func DurationScore(sessions []models.SleepSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range sessions {
		total += durationPoints(s.DurationHours)
	}
	raw := total / float64(len(sessions)) * pointsScale
	return math.Max(0, math.Min(maxSubScore, raw))
}

// BedtimeOffset maps a bedtime onto a scale that does not wrap at midnight:
// evening times (18:00 onwards) become negative minutes before midnight.
func BedtimeOffset(minuteOfDay int) int {
	if minuteOfDay/60 >= constants.EveningCutoffHour {
		return minuteOfDay - constants.MinutesPerDay
	}
	return minuteOfDay
}

// BedtimeStdDev is the population standard deviation of bedtime offsets.
func BedtimeStdDev(sessions []models.SleepSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	n := float64(len(sessions))
	mean := 0.0
	for _, s := range sessions {
		mean += float64(BedtimeOffset(s.BedTime))
	}
	mean /= n
	variance := 0.0
	for _, s := range sessions {
		d := float64(BedtimeOffset(s.BedTime)) - mean
		variance += d * d
	}
	return math.Sqrt(variance / n)
}

// ConsistencyScore maps a bedtime standard deviation in minutes to points.
func ConsistencyScore(stdDev float64) float64 {
	switch {
	case stdDev <= 15:
		return 50
	case stdDev <= 30:
		return 40 + (10 - (stdDev-15)/1.5)
	case stdDev <= 60:
		return 20 + (20 - (stdDev-30)/1.5)
	default:
		return math.Max(0, 20-(stdDev-60))
	}
}

func GradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeS
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 60:
		return GradeC
	case score >= 40:
		return GradeD
	default:
		return GradeF
	}
}

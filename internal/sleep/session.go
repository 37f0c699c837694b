package sleep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/utils"
)

const DefaultQuality = 3

// NewSession builds a session from bed and wake clock times. A wake time
// earlier than the bed time is taken to be on the next day. A quality of
// zero means "not rated" and becomes DefaultQuality.
func NewSession(date, bed, wake string, quality int) (models.SleepSession, error) {
	if !utils.IsDateKey(date) {
		return models.SleepSession{}, models.ErrInvalidDate
	}
	bedMin, err := utils.ParseTimeToMinutes(bed)
	if err != nil {
		return models.SleepSession{}, fmt.Errorf("bed time: %w", err)
	}
	wakeMin, err := utils.ParseTimeToMinutes(wake)
	if err != nil {
		return models.SleepSession{}, fmt.Errorf("wake time: %w", err)
	}
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 5 {
		return models.SleepSession{}, models.ErrInvalidQuality
	}
	return models.SleepSession{
		ID:            uuid.NewString(),
		Date:          date,
		BedTime:       bedMin,
		WakeTime:      wakeMin,
		DurationHours: DurationHours(bedMin, wakeMin),
		Quality:       quality,
	}, nil
}

// DurationHours is the time from bed to wake in hours, rounded to one
// decimal place.
func DurationHours(bedMin, wakeMin int) float64 {
	diff := wakeMin - bedMin
	if diff < 0 {
		diff += constants.MinutesPerDay
	}
	return math.Round(float64(diff)/60*10) / 10
}

// ParseClock accepts "HH:MM" or a compact "hmm"/"hhmm" with an AM/PM marker,
// as typed on a phone keypad ("1130" "PM" is 23:30). It returns HH:MM.
func ParseClock(input, meridiem string) (string, error) {
	input = strings.TrimSpace(input)
	if strings.Contains(input, ":") && meridiem == "" {
		if !utils.ValidateTimeFormat(input) {
			return "", fmt.Errorf("invalid time %q", input)
		}
		return input, nil
	}

	digits := strings.ReplaceAll(input, ":", "")
	if len(digits) < 3 || len(digits) > 4 {
		return "", fmt.Errorf("invalid time %q", input)
	}
	hh, err := strconv.Atoi(digits[:len(digits)-2])
	if err != nil {
		return "", fmt.Errorf("invalid hour in %q", input)
	}
	mm, err := strconv.Atoi(digits[len(digits)-2:])
	if err != nil || mm > 59 {
		return "", fmt.Errorf("invalid minute in %q", input)
	}

	switch strings.ToUpper(meridiem) {
	case "PM":
		if hh < 12 {
			hh += 12
		}
	case "AM":
		if hh == 12 {
			hh = 0
		}
	case "":
	default:
		return "", fmt.Errorf("invalid meridiem %q, expected AM or PM", meridiem)
	}
	if hh > 23 {
		return "", fmt.Errorf("invalid hour in %q", input)
	}
	return fmt.Sprintf("%02d:%02d", hh, mm), nil
}

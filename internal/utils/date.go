package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
)

const secondsPerDay = 24 * 60 * 60

var weekdayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ToDateKey renders the calendar date of t, in t's own location, as YYYY-MM-DD.
// Callers convert to the user's timezone before calling.
func ToDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a YYYY-MM-DD key into midnight UTC. The result is only
// meant for day arithmetic, which is why it never carries a local zone.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", key, err)
	}
	return t, nil
}

// IsDateKey reports whether key is a well-formed calendar-day key.
func IsDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// AddDays returns the key n days after key (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return ToDateKey(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of whole days from a to b. It is zero when
// the keys are equal and positive when b is after a.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDateKey(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDateKey(b)
	if err != nil {
		return 0, err
	}
	// Unix seconds, not time.Duration, which overflows past ~292 years.
	return int((tb.Unix() - ta.Unix()) / secondsPerDay), nil
}

// WeekBounds returns the Monday and Sunday keys of the week containing key.
func WeekBounds(key string) (monday, sunday string, err error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", "", err
	}
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	start := t.AddDate(0, 0, -offset)
	return ToDateKey(start), ToDateKey(start.AddDate(0, 0, 6)), nil
}

// WeekdayLabel returns the short English weekday name for key (Mon..Sun).
func WeekdayLabel(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return ""
	}
	return weekdayLabels[t.Weekday()]
}

// DateRange returns every key from `from` to `to`, both inclusive. An empty
// slice is returned when to is before from.
func DateRange(from, to string) ([]string, error) {
	n, err := DaysBetween(from, to)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return []string{}, nil
	}
	start, _ := ParseDateKey(from)
	keys := make([]string, 0, n+1)
	for i := 0; i <= n; i++ {
		keys = append(keys, ToDateKey(start.AddDate(0, 0, i)))
	}
	return keys, nil
}

// InRange reports whether key lies within [from, to]. Keys compare
// lexicographically because the format is fixed-width.
func InRange(key, from, to string) bool {
	return key >= from && key <= to
}

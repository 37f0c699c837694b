package models

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/constants"
)

// Recurrence is a closed set of scheduling rules. Build values with the
// constructors below so that N always satisfies the kind's invariant:
//
//	None         one-off task, never evaluated for habits
//	Daily        every day from the start date
//	EveryNDays   every N days from the start date, N >= 2
//	WeeklyQuota  N completions per Monday-Sunday week, N >= 1
type Recurrence struct {
	Type  constants.RecurrenceType `json:"type" bson:"type"`
	Value int                      `json:"value,omitempty" bson:"value,omitempty"`
}

func NoRecurrence() Recurrence {
	return Recurrence{Type: constants.RecurrenceNone}
}

func DailyRecurrence() Recurrence {
	return Recurrence{Type: constants.RecurrenceDaily}
}

// EveryNDays returns an interval rule. An interval of one day or less is
// indistinguishable from Daily and is normalized to it.
func EveryNDays(n int) Recurrence {
	if n <= 1 {
		return DailyRecurrence()
	}
	return Recurrence{Type: constants.RecurrenceInterval, Value: n}
}

// WeeklyQuota returns a weekly quota rule. Targets below one are raised to one.
func WeeklyQuota(n int) Recurrence {
	if n < 1 {
		n = 1
	}
	return Recurrence{Type: constants.RecurrenceWeekly, Value: n}
}

// ParseRecurrence builds a rule from its stored type name and value,
// normalizing out-of-range values the same way the constructors do.
func ParseRecurrence(kind string, value int) (Recurrence, error) {
	switch constants.RecurrenceType(kind) {
	case "", constants.RecurrenceNone:
		return NoRecurrence(), nil
	case constants.RecurrenceDaily:
		return DailyRecurrence(), nil
	case constants.RecurrenceInterval:
		return EveryNDays(value), nil
	case constants.RecurrenceWeekly:
		return WeeklyQuota(value), nil
	default:
		return Recurrence{}, fmt.Errorf("unknown recurrence type %q", kind)
	}
}

// Normalize returns r with the constructor invariants applied. Records decoded
// straight from storage go through this before they reach the evaluator.
func (r Recurrence) Normalize() Recurrence {
	n, err := ParseRecurrence(string(r.Type), r.Value)
	if err != nil {
		return r
	}
	return n
}

func (r Recurrence) IsNone() bool {
	return r.Type == "" || r.Type == constants.RecurrenceNone
}

func (r Recurrence) IsWeeklyQuota() bool {
	return r.Type == constants.RecurrenceWeekly
}

// Validate reports rules that the constructors would never produce.
func (r Recurrence) Validate() error {
	switch r.Type {
	case "", constants.RecurrenceNone, constants.RecurrenceDaily:
		return nil
	case constants.RecurrenceInterval:
		if r.Value < 2 {
			return fmt.Errorf("interval recurrence needs at least 2 days, got %d", r.Value)
		}
		return nil
	case constants.RecurrenceWeekly:
		if r.Value < 1 {
			return fmt.Errorf("weekly quota must be at least 1, got %d", r.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown recurrence type %q", r.Type)
	}
}

func (r Recurrence) String() string {
	switch r.Type {
	case constants.RecurrenceDaily:
		return "daily"
	case constants.RecurrenceInterval:
		return fmt.Sprintf("every %d days", r.Value)
	case constants.RecurrenceWeekly:
		return fmt.Sprintf("%dx per week", r.Value)
	default:
		return "once"
	}
}

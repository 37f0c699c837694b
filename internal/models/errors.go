package models

import "errors"

var (
	ErrNotFound            = errors.New("models: item not found")
	ErrBeforeStart         = errors.New("models: date is before the habit start date")
	ErrInvalidDate         = errors.New("models: invalid date key")
	ErrEmptyTitle          = errors.New("models: title is required")
	ErrHabitNeedsRecurring = errors.New("models: habit requires a recurring rule")
	ErrDuplicateCategory   = errors.New("models: category already exists")
	ErrUnknownCategory     = errors.New("models: category does not exist")
	ErrEmptyCategory       = errors.New("models: category name is required")
	ErrInvalidQuality      = errors.New("models: quality rating must be between 1 and 5")
	ErrInvalidClock        = errors.New("models: minute of day must be between 0 and 1439")
	ErrInvalidExercise     = errors.New("models: invalid exercise record")
)

package models

import "github.com/julianstephens/routinely/internal/constants"

// ExerciseRecord is a single workout. Which optional fields apply depends on
// Kind: DurationMinutes and BodyPart for GYM, DurationMinutes and SpeedKmh
// for RUNNING, Notes for SPORT and OTHER.
type ExerciseRecord struct {
	ID              string                 `json:"id" bson:"id"`
	Date            string                 `json:"date" bson:"date"` // YYYY-MM-DD
	Time            string                 `json:"time" bson:"time"` // HH:MM
	Kind            constants.ExerciseKind `json:"type" bson:"type"`
	DurationMinutes int                    `json:"duration,omitempty" bson:"duration,omitempty"`
	BodyPart        string                 `json:"bodyPart,omitempty" bson:"bodyPart,omitempty"`
	SpeedKmh        float64                `json:"speed,omitempty" bson:"speed,omitempty"`
	Notes           string                 `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       int64                  `json:"createdAt" bson:"createdAt"` // unix millis
}

// Timed reports whether the record's kind carries a duration.
func (r ExerciseRecord) Timed() bool {
	return r.Kind == constants.ExerciseGym || r.Kind == constants.ExerciseRunning
}

func ParseExerciseKind(s string) (constants.ExerciseKind, bool) {
	switch k := constants.ExerciseKind(s); k {
	case constants.ExerciseGym, constants.ExerciseRunning, constants.ExerciseSport, constants.ExerciseOther:
		return k, true
	}
	return "", false
}

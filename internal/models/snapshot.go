package models

// Snapshot is the full set of user records at one point in time. Storage
// backends load and save whole collections; nothing is patched in place.
type Snapshot struct {
	Tasks      []Task           `json:"tasks" bson:"tasks"`
	Habits     []Habit          `json:"habits" bson:"habits"`
	Sleep      []SleepSession   `json:"sleep" bson:"sleep"`
	Exercise   []ExerciseRecord `json:"exercise" bson:"exercise"`
	Categories []string         `json:"categories" bson:"categories"`
}

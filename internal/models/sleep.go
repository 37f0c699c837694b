package models

// SleepSession is one night of sleep. BedTime and WakeTime are minutes from
// midnight (0-1439). DurationHours is derived from them when the session is
// built and is not independently trusted.
type SleepSession struct {
	ID            string  `json:"id" bson:"id"`
	Date          string  `json:"date" bson:"date"` // YYYY-MM-DD, usually the wake date
	BedTime       int     `json:"bedTime" bson:"bedTime"`
	WakeTime      int     `json:"wakeTime" bson:"wakeTime"`
	DurationHours float64 `json:"duration" bson:"duration"`
	Quality       int     `json:"quality" bson:"quality"`
}

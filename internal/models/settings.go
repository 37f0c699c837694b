package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string  `json:"timezone" bson:"timezone"`                           // IANA timezone name, or "Local" for the system timezone
	DefaultCategory      string  `json:"default_category" bson:"default_category"`           // category preselected for new items
	NotificationsEnabled bool    `json:"notifications_enabled" bson:"notifications_enabled"` // whether `routinely notify` sends anything
	SleepTargetHours     float64 `json:"sleep_target_hours" bson:"sleep_target_hours"`       // shown next to sleep averages
}

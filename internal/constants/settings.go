package constants

const (
	// General Settings
	SettingTimezone             = "timezone"
	SettingDefaultCategory      = "default_category"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingSleepTargetHours     = "sleep_target_hours"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultCategory             = "Routine"
	DefaultNotificationsEnabled = true
	DefaultSleepTargetHours     = 7.5
)

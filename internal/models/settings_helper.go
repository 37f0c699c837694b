package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/routinely/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultCategory:
			settings.DefaultCategory = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingSleepTargetHours:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing sleep_target_hours: %w", err)
			}
			settings.SleepTargetHours = v
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingDefaultCategory:      settings.DefaultCategory,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingSleepTargetHours:     strconv.FormatFloat(settings.SleepTargetHours, 'f', -1, 64),
	}
}

// DefaultSettings returns the settings written by `routinely init`.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		DefaultCategory:      constants.DefaultCategory,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		SleepTargetHours:     constants.DefaultSleepTargetHours,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultCategory == "" {
		settings.DefaultCategory = constants.DefaultCategory
	}
	if settings.SleepTargetHours == 0 {
		settings.SleepTargetHours = constants.DefaultSleepTargetHours
	}
}

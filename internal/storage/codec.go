package storage

import (
	"encoding/json"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
)

// CollectionKeys are the collection keys of the key-value backends (JSON file
// and Redis). A JSON export can be loaded into Redis key by key.
var CollectionKeys = []string{
	constants.StorageKeyTasks,
	constants.StorageKeyHabits,
	constants.StorageKeySleep,
	constants.StorageKeyExercise,
	constants.StorageKeyCategories,
}

// DecodeCollection parses a JSON array stored under key. Missing or
// malformed data yields an empty collection; malformed data is logged.
func DecodeCollection[T any](key string, raw []byte) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("Discarding unreadable collection", "key", key, "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// EncodeCollection marshals items, writing an empty array for nil slices.
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// DecodeSettings parses stored settings, falling back to defaults.
func DecodeSettings(raw []byte) models.Settings {
	settings := models.DefaultSettings()
	if len(raw) == 0 {
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		logger.Warn("Discarding unreadable settings", "error", err)
		return models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}

// NormalizeHabits applies the recurrence constructor rules and fills nil
// completion logs for habits decoded from untyped storage.
func NormalizeHabits(habits []models.Habit) []models.Habit {
	for i := range habits {
		habits[i].Recurrence = habits[i].Recurrence.Normalize()
		if habits[i].CompletedDates == nil {
			habits[i].CompletedDates = []string{}
		}
	}
	return habits
}

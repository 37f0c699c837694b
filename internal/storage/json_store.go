package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
)

const jsonStoreVersion = 1

// JSONStore keeps every collection in one JSON document on disk, keyed the
// same way as the Redis backend. It backs `--config foo.json` and exports.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = map[string]json.RawMessage{}
	for _, key := range CollectionKeys {
		s.doc[key] = json.RawMessage("[]")
	}
	settings, err := json.Marshal(models.DefaultSettings())
	if err != nil {
		return err
	}
	s.doc[constants.StorageKeySettings] = settings
	return s.saveLocked()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Storage file is not valid JSON, starting empty", "path", s.path, "error", err)
		doc = map[string]json.RawMessage{}
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) saveLocked() error {
	s.doc["version"] = json.RawMessage(fmt.Sprintf("%d", jsonStoreVersion))
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc[key], nil
}

func (s *JSONStore) put(key string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc[key] = raw
	return s.saveLocked()
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	raw, err := s.get(constants.StorageKeySettings)
	if err != nil {
		return models.Settings{}, err
	}
	return DecodeSettings(raw), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.put(constants.StorageKeySettings, raw)
}

func (s *JSONStore) LoadTasks() ([]models.Task, error) {
	raw, err := s.get(constants.StorageKeyTasks)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[models.Task](constants.StorageKeyTasks, raw), nil
}

func (s *JSONStore) SaveTasks(tasks []models.Task) error {
	return saveCollection(s, constants.StorageKeyTasks, tasks)
}

func (s *JSONStore) LoadHabits() ([]models.Habit, error) {
	raw, err := s.get(constants.StorageKeyHabits)
	if err != nil {
		return nil, err
	}
	return NormalizeHabits(DecodeCollection[models.Habit](constants.StorageKeyHabits, raw)), nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	return saveCollection(s, constants.StorageKeyHabits, habits)
}

func (s *JSONStore) LoadSleep() ([]models.SleepSession, error) {
	raw, err := s.get(constants.StorageKeySleep)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[models.SleepSession](constants.StorageKeySleep, raw), nil
}

func (s *JSONStore) SaveSleep(sessions []models.SleepSession) error {
	return saveCollection(s, constants.StorageKeySleep, sessions)
}

func (s *JSONStore) LoadExercise() ([]models.ExerciseRecord, error) {
	raw, err := s.get(constants.StorageKeyExercise)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[models.ExerciseRecord](constants.StorageKeyExercise, raw), nil
}

func (s *JSONStore) SaveExercise(records []models.ExerciseRecord) error {
	return saveCollection(s, constants.StorageKeyExercise, records)
}

func (s *JSONStore) LoadCategories() ([]string, error) {
	raw, err := s.get(constants.StorageKeyCategories)
	if err != nil {
		return nil, err
	}
	return DecodeCollection[string](constants.StorageKeyCategories, raw), nil
}

func (s *JSONStore) SaveCategories(categories []string) error {
	return saveCollection(s, constants.StorageKeyCategories, categories)
}

func saveCollection[T any](s *JSONStore, key string, items []T) error {
	raw, err := EncodeCollection(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.put(key, raw)
}

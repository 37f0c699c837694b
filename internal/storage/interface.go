package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/routinely/internal/models"
)

var ErrNotInitialized = errors.New("storage not initialized, run 'routinely init' first")

// Provider persists whole collections. Every Save call replaces the stored
// collection with the given slice; callers load, mutate and save back.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Collections
	LoadTasks() ([]models.Task, error)
	SaveTasks([]models.Task) error
	LoadHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error
	LoadSleep() ([]models.SleepSession, error)
	SaveSleep([]models.SleepSession) error
	LoadExercise() ([]models.ExerciseRecord, error)
	SaveExercise([]models.ExerciseRecord) error

	// Custom categories only; defaults are never stored.
	LoadCategories() ([]string, error)
	SaveCategories([]string) error

	// Utils
	GetConfigPath() string
}

// LoadSnapshot reads every collection from p.
func LoadSnapshot(p Provider) (models.Snapshot, error) {
	var (
		s   models.Snapshot
		err error
	)
	if s.Tasks, err = p.LoadTasks(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading tasks: %w", err)
	}
	if s.Habits, err = p.LoadHabits(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading habits: %w", err)
	}
	if s.Sleep, err = p.LoadSleep(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading sleep sessions: %w", err)
	}
	if s.Exercise, err = p.LoadExercise(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading exercise records: %w", err)
	}
	if s.Categories, err = p.LoadCategories(); err != nil {
		return models.Snapshot{}, fmt.Errorf("loading categories: %w", err)
	}
	return s, nil
}

// SaveSnapshot writes every collection of s to p.
func SaveSnapshot(p Provider, s models.Snapshot) error {
	if err := p.SaveTasks(s.Tasks); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	if err := p.SaveHabits(s.Habits); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}
	if err := p.SaveSleep(s.Sleep); err != nil {
		return fmt.Errorf("saving sleep sessions: %w", err)
	}
	if err := p.SaveExercise(s.Exercise); err != nil {
		return fmt.Errorf("saving exercise records: %w", err)
	}
	if err := p.SaveCategories(s.Categories); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// Copy moves a full snapshot and the settings from src into dst.
func Copy(dst, src Provider) error {
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	snap, err := LoadSnapshot(src)
	if err != nil {
		return err
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return SaveSnapshot(dst, snap)
}

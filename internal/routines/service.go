// Package routines applies user actions to stored snapshots. Each call loads
// the collections it needs, mutates them with the pure model functions and
// saves whole collections back.
package routines

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

type Service struct {
	store storage.Provider
	clock utils.Clock
}

func New(store storage.Provider, clock utils.Clock) *Service {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &Service{store: store, clock: clock}
}

// NewForSettings builds a service whose clock uses the timezone stored in
// settings.
func NewForSettings(store storage.Provider) (*Service, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	clock, err := utils.ClockIn(settings.Timezone)
	if err != nil {
		return nil, err
	}
	return New(store, clock), nil
}

func (s *Service) Store() storage.Provider { return s.store }

func (s *Service) Now() time.Time { return s.clock.Now() }

func (s *Service) Clock() utils.Clock { return s.clock }

// Today returns the current date key.
func (s *Service) Today() string {
	return utils.Today(s.clock)
}

// ResolveDate returns date, or today when date is empty.
func (s *Service) ResolveDate(date string) (string, error) {
	if date == "" {
		return s.Today(), nil
	}
	if !utils.IsDateKey(date) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidDate, date)
	}
	return date, nil
}

// Snapshot loads every collection.
func (s *Service) Snapshot() (models.Snapshot, error) {
	return storage.LoadSnapshot(s.store)
}

func (s *Service) Settings() (models.Settings, error) {
	return s.store.GetSettings()
}

func (s *Service) SaveSettings(settings models.Settings) error {
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.SleepTargetHours <= 0 || settings.SleepTargetHours > 24 {
		return fmt.Errorf("sleep target must be between 0 and 24 hours")
	}
	return s.store.SaveSettings(settings)
}

func (s *Service) defaultCategory() string {
	settings, err := s.store.GetSettings()
	if err != nil || settings.DefaultCategory == "" {
		return constants.DefaultCategory
	}
	return settings.DefaultCategory
}

// warnUnknownCategory logs labels missing from the registry. Unknown labels
// are kept; the registry is advisory.
func (s *Service) warnUnknownCategory(category string) {
	custom, err := s.store.LoadCategories()
	if err != nil {
		return
	}
	if !models.NewCategoryRegistry(custom).Contains(category) {
		logger.Warn("Item uses a category that is not in the category list", "category", category)
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

// IsNotFound reports whether err came from a missing task, habit or record.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
